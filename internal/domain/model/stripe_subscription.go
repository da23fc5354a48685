package model

import "time"

// Subscription statuses that count as a live subscription
var LiveSubscriptionStatuses = []string{"active", "trialing", "past_due"}

// StripeSubscription mirrors a Stripe subscription. Status is copied verbatim from the vendor.
type StripeSubscription struct {
	ID                   int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	StripeSubscriptionID string     `gorm:"column:stripe_subscription_id;size:100;not null;uniqueIndex" json:"stripe_subscription_id"`
	UserID               *int64     `gorm:"index" json:"user_id,omitempty"`
	StripeCustomerID     string     `gorm:"column:stripe_customer_id;size:100;not null;index" json:"stripe_customer_id"`
	Status               string     `gorm:"size:50;not null" json:"status"`
	PriceID              string     `gorm:"size:100" json:"price_id"`
	CurrentPeriodStart   *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd    bool       `gorm:"not null;default:false" json:"cancel_at_period_end"`
	PaymentMethodBrand   string     `gorm:"size:50" json:"payment_method_brand"`
	PaymentMethodLast4   string     `gorm:"column:payment_method_last4;size:4" json:"payment_method_last4"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (StripeSubscription) TableName() string {
	return "stripe_subscriptions"
}

// IsLive reports whether the subscription still grants access
func (s *StripeSubscription) IsLive() bool {
	for _, status := range LiveSubscriptionStatuses {
		if s.Status == status {
			return true
		}
	}
	return false
}
