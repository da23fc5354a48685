package entity

import (
	"errors"
	"time"
)

// NotificationType 알림 유형 정의
type NotificationType string

const (
	TypeEmail NotificationType = "email"
)

// Email templates rendered by the dispatcher
const (
	TemplateClaimAccount  = "claim_account"
	TemplateWelcome       = "welcome"
	TemplatePaymentFailed = "payment_failed"
)

// Notification is a queued outbound message
type Notification struct {
	ID        string            `json:"id"`
	Type      NotificationType  `json:"type"`
	To        string            `json:"to"`
	Template  string            `json:"template"`
	Data      map[string]string `json:"data"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewEmailNotification validates and builds an email notification
func NewEmailNotification(id, to, template string, data map[string]string) (*Notification, error) {
	if to == "" {
		return nil, errors.New("notification recipient is required")
	}
	if template == "" {
		return nil, errors.New("notification template is required")
	}
	return &Notification{
		ID:        id,
		Type:      TypeEmail,
		To:        to,
		Template:  template,
		Data:      data,
		CreatedAt: time.Now(),
	}, nil
}
