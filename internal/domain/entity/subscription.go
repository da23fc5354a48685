package entity

import (
	"time"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
)

// Subscription is the caller-facing view of a local subscription row
type Subscription struct {
	ID                 string     `json:"id"`
	CustomerID         string     `json:"customer_id"`
	Status             string     `json:"status"`
	PriceID            string     `json:"price_id"`
	PlanSlug           string     `json:"plan_slug,omitempty"`
	PlanName           string     `json:"plan_name,omitempty"`
	CurrentPeriodStart *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
	PaymentMethodBrand string     `json:"payment_method_brand,omitempty"`
	PaymentMethodLast4 string     `json:"payment_method_last4,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func NewSubscription(m *model.StripeSubscription, plan *Plan) *Subscription {
	if m == nil {
		return nil
	}
	s := &Subscription{
		ID:                 m.StripeSubscriptionID,
		CustomerID:         m.StripeCustomerID,
		Status:             m.Status,
		PriceID:            m.PriceID,
		CurrentPeriodStart: m.CurrentPeriodStart,
		CurrentPeriodEnd:   m.CurrentPeriodEnd,
		CancelAtPeriodEnd:  m.CancelAtPeriodEnd,
		PaymentMethodBrand: m.PaymentMethodBrand,
		PaymentMethodLast4: m.PaymentMethodLast4,
		UpdatedAt:          m.UpdatedAt,
	}
	if plan != nil {
		s.PlanSlug = plan.Slug
		s.PlanName = plan.Name
	}
	return s
}

// SetupIntent is returned to the browser to collect a new card
type SetupIntent struct {
	ID           string `json:"setup_intent_id"`
	ClientSecret string `json:"client_secret"`
}
