package model

import (
	"time"

	"gorm.io/datatypes"
)

// WebhookStatus represents the processing status of a webhook
type WebhookStatus string

const (
	WebhookStatusReceived  WebhookStatus = "received"
	WebhookStatusProcessed WebhookStatus = "processed"
	WebhookStatusFailed    WebhookStatus = "failed"
)

// StripeWebhookEvent is the delivery log of Stripe events
type StripeWebhookEvent struct {
	ID              int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID         string         `gorm:"column:event_id;size:255;not null;uniqueIndex" json:"event_id"`
	EventType       string         `gorm:"size:100;not null;index" json:"event_type"`
	Status          WebhookStatus  `gorm:"size:20;not null;default:'received';index" json:"status"`
	Payload         datatypes.JSON `json:"payload"`
	APIVersion      string         `gorm:"column:api_version;size:20" json:"api_version,omitempty"`
	Attempts        int            `gorm:"not null;default:0" json:"attempts"`
	LastError       *string        `json:"last_error,omitempty"`
	NextRetryAt     *time.Time     `gorm:"index" json:"next_retry_at,omitempty"`
	ProcessedAt     *time.Time     `json:"processed_at,omitempty"`
	StripeCreatedAt *time.Time     `json:"stripe_created_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (StripeWebhookEvent) TableName() string {
	return "stripe_webhook_events"
}

// AllModels lists the gorm models backed by the SQL migrations
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Company{},
		&StripeCustomer{},
		&StripeSubscription{},
		&StripeOrder{},
		&StripeWebhookEvent{},
	}
}
