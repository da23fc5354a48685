package entity

import "github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"

// Registration is an explicit signup payload sent with process-session.
// It is the only way a checkout-provisioned account gets a caller-chosen password.
type Registration struct {
	Name     string        `json:"name" validate:"omitempty,max=255"`
	Email    string        `json:"email" validate:"omitempty,email"`
	Password string        `json:"password" validate:"omitempty,min=8,max=72"`
	Company  *CompanyInput `json:"company" validate:"omitempty"`
}

// ReconcileResult summarises what a checkout session produced locally
type ReconcileResult struct {
	SessionID    string                    `json:"session_id"`
	Customer     *model.StripeCustomer     `json:"customer,omitempty"`
	Subscription *model.StripeSubscription `json:"subscription,omitempty"`
	Order        *model.StripeOrder        `json:"order,omitempty"`
	User         *User                     `json:"user,omitempty"`
	Company      *Company                  `json:"company,omitempty"`
	Provisioned  bool                      `json:"provisioned"`
}
