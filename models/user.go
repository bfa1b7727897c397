package models

import "time"

// User represents a customer account.
type User struct {
	ID           string     `bson:"id" json:"id"`
	Username     string     `bson:"username" json:"username"`
	Email        string     `bson:"email" json:"email"`
	PhoneNumber  string     `bson:"phoneNumber" json:"phoneNumber"`
	Password     string     `bson:"-" json:"password,omitempty"`
	PasswordHash string     `bson:"passwordHash" json:"-"`
	ProfileImage string     `bson:"profileImage" json:"profileImage,omitempty"`
	Address      string     `bson:"address" json:"address,omitempty"`
	Status       string     `bson:"status" json:"status"` // "active" or "deleted"
	FCMToken     string     `bson:"fcmToken" json:"-"`
	Devices      []Device   `bson:"devices,omitempty" json:"devices,omitempty"`
	DeletedAt    *time.Time `bson:"deletedAt,omitempty" json:"-"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

const (
	AccountStatusActive  = "active"
	AccountStatusDeleted = "deleted"
)

// UserBasicRegistrationData carries the fields collected at the start of registration.
type UserBasicRegistrationData struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// UserRegistrationSession is the staged registration state kept in Redis until
// the OTP is verified and the account finalized.
type UserRegistrationSession struct {
	TempID        string                     `json:"tempId"`
	BasicData     *UserBasicRegistrationData `json:"basicData"`
	OTPStatus     string                     `json:"otpStatus"` // "pending" or "verified"
	Devices       []Device                   `json:"devices"`
	CreatedAt     time.Time                  `json:"createdAt"`
	LastUpdatedAt time.Time                  `json:"lastUpdatedAt"`
}

// UserUpdateRequest is the mutable subset of a user profile.
type UserUpdateRequest struct {
	ID           string `json:"id"`
	Username     string `json:"username,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	Address      string `json:"address,omitempty"`
}
