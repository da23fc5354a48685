package model

import "time"

// StripeCustomer links a Stripe customer to a local user
type StripeCustomer struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	StripeCustomerID string    `gorm:"column:stripe_customer_id;size:100;not null;uniqueIndex" json:"stripe_customer_id"`
	Email            string    `gorm:"size:255;index" json:"email"`
	Name             string    `gorm:"size:255" json:"name"`
	UserID           *int64    `gorm:"index" json:"user_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (StripeCustomer) TableName() string {
	return "stripe_customers"
}
