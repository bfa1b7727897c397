package models

import "time"

// Notification is a persisted in-app notification for a user or provider.
type Notification struct {
	ID            string            `bson:"id" json:"id"`
	RecipientID   string            `bson:"recipientId" json:"recipientId"`
	RecipientRole string            `bson:"recipientRole" json:"recipientRole"` // "user" or "provider"
	Type          string            `bson:"type" json:"type"`
	Title         string            `bson:"title" json:"title"`
	Body          string            `bson:"body" json:"body"`
	Data          map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	Read          bool              `bson:"read" json:"read"`
	CreatedAt     time.Time         `bson:"createdAt" json:"createdAt"`
}

// ReminderPayload is the asynq task payload for a scheduled reminder push.
type ReminderPayload struct {
	ReminderID string `json:"reminderId"`
	Target     string `json:"target"` // "user" or "provider"
	ID         string `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	FireDate   string `json:"fireDate"`
}

// ReceiptPayload is the asynq task payload for a post-payment receipt push.
type ReceiptPayload struct {
	InvoiceID string  `json:"invoiceId"`
	UserID    string  `json:"userId"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Method    string  `json:"method"`
}
