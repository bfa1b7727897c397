package models

import "time"

// Device records a signed-in device for a user or provider account.
// Auth tokens are bound to a device: the SHA-256 hash of the issued JWT is
// stored here and checked on every authenticated request.
type Device struct {
	DeviceID   string    `bson:"deviceId" json:"deviceId"`
	DeviceName string    `bson:"deviceName" json:"deviceName"`
	IP         string    `bson:"ip,omitempty" json:"ip,omitempty"`
	TokenHash  string    `bson:"tokenHash" json:"-"`
	Creator    bool      `bson:"creator" json:"creator"` // device that created the account
	LastLogin  time.Time `bson:"lastLogin" json:"lastLogin"`
}
