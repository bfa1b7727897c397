package models

import "time"

// ProviderProfile holds the public-facing fields of a provider.
type ProviderProfile struct {
	ProviderName string  `bson:"providerName" json:"providerName"`
	Email        string  `bson:"email" json:"email,omitempty"`
	PhoneNumber  string  `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	ProfileImage string  `bson:"profileImage" json:"profileImage,omitempty"`
	Address      string  `bson:"address" json:"address,omitempty"`
	Bio          string  `bson:"bio,omitempty" json:"bio,omitempty"`
	Rating       float64 `bson:"rating" json:"rating"`
	ReviewCount  int     `bson:"reviewCount" json:"reviewCount"`
}

// ProviderSecurity holds credentials; never serialized to clients.
type ProviderSecurity struct {
	Password     string   `bson:"-" json:"password,omitempty"`
	PasswordHash string   `bson:"passwordHash" json:"-"`
	FCMToken     string   `bson:"fcmToken" json:"-"`
	Devices      []Device `bson:"devices,omitempty" json:"-"`
}

// Verification tracks the know-your-provider document check.
type Verification struct {
	LegalName          string `bson:"legalName" json:"legalName,omitempty"`
	KYPDocument        string `bson:"kypDocument" json:"kypDocument,omitempty"` // storage public ID
	VerificationStatus string `bson:"verificationStatus" json:"verificationStatus,omitempty"`
}

const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// PayoutDetails describes how a provider gets paid.
type PayoutDetails struct {
	PaymentMethods  []string  `bson:"paymentMethods" json:"paymentMethods"`   // e.g. ["cash", "card"]
	PreferredMethod string    `bson:"preferredMethod" json:"preferredMethod"` // e.g. "card"
	Currency        string    `bson:"currency" json:"currency"`
	StripeAccountID string    `bson:"stripeAccountID,omitempty" json:"stripeAccountID,omitempty"`
	StripeVerified  bool      `bson:"stripeVerified" json:"stripeVerified"`
	AcceptsCash     bool      `bson:"acceptsCash" json:"acceptsCash"`
	LastUpdated     time.Time `bson:"lastUpdated" json:"lastUpdated"`
}

// Provider represents a service provider account.
type Provider struct {
	ID                string           `bson:"id" json:"id"`
	Profile           ProviderProfile  `bson:"profile" json:"profile"`
	Security          ProviderSecurity `bson:"security" json:"security,omitzero"`
	Verification      Verification     `bson:"verification" json:"verification,omitzero"`
	PayoutDetails     PayoutDetails    `bson:"payoutDetails" json:"payoutDetails,omitzero"`
	CompletedBookings int              `bson:"completedBookings" json:"completedBookings"`
	Status            string           `bson:"status" json:"status"`
	DeletedAt         *time.Time       `bson:"deletedAt,omitempty" json:"-"`
	CreatedAt         time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// ProviderRegistrationRequest is the payload for provider sign-up.
type ProviderRegistrationRequest struct {
	ProviderName string `json:"providerName" binding:"required"`
	LegalName    string `json:"legalName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	PhoneNumber  string `json:"phoneNumber" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Address      string `json:"address"`
	AcceptsCash  bool   `json:"acceptsCash"`
	Currency     string `json:"currency"`
}

// ProviderUpdateRequest is the mutable subset of a provider profile.
type ProviderUpdateRequest struct {
	ID           string `json:"id"`
	ProviderName string `json:"providerName,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	Address      string `json:"address,omitempty"`
	Bio          string `json:"bio,omitempty"`
}
