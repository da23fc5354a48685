package model

import "time"

// StripeOrder is one row per checkout session or paid/failed invoice.
// Checkout rows are keyed by CheckoutSessionID, invoice rows by PaymentIntentID
// (which holds the invoice id when the invoice has no payment intent).
type StripeOrder struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CheckoutSessionID *string   `gorm:"column:checkout_session_id;size:255;uniqueIndex" json:"checkout_session_id,omitempty"`
	PaymentIntentID   *string   `gorm:"column:payment_intent_id;size:255;uniqueIndex" json:"payment_intent_id,omitempty"`
	InvoiceID         *string   `gorm:"column:invoice_id;size:255;index" json:"invoice_id,omitempty"`
	StripeCustomerID  string    `gorm:"column:stripe_customer_id;size:100;index" json:"stripe_customer_id"`
	UserID            *int64    `gorm:"index" json:"user_id,omitempty"`
	AmountSubtotal    int64     `gorm:"not null;default:0" json:"amount_subtotal"`
	AmountTotal       int64     `gorm:"not null;default:0" json:"amount_total"`
	Currency          string    `gorm:"size:10" json:"currency"`
	PaymentStatus     string    `gorm:"size:50" json:"payment_status"`
	Status            string    `gorm:"size:50" json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (StripeOrder) TableName() string {
	return "stripe_orders"
}
