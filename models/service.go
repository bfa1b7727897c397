package models

import "time"

// Service is a catalogue entry offered by a provider.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	ProviderID  string    `bson:"providerId" json:"providerId"`
	Category    string    `bson:"category" json:"category"` // e.g. "cleaning", "plumbing"
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description,omitempty"`
	UnitType    string    `bson:"unitType" json:"unitType"` // e.g. "hour", "visit", "kg"
	BaseRate    float64   `bson:"baseRate" json:"baseRate"` // price per unit
	Currency    string    `bson:"currency" json:"currency"`
	Active      bool      `bson:"active" json:"active"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ServiceRequest is the payload to create or update a catalogue service.
type ServiceRequest struct {
	Category    string  `json:"category" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	UnitType    string  `json:"unitType" binding:"required"`
	BaseRate    float64 `json:"baseRate" binding:"required"`
	Currency    string  `json:"currency"`
	Active      *bool   `json:"active"`
}
