package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/provider"
	"github.com/stripe/stripe-go/v79"
)

// CustomerRef points at a Stripe customer either by id or by an already
// expanded object. Exactly one of the two is set.
type CustomerRef struct {
	id       string
	customer *stripe.Customer
}

func CustomerByID(id string) CustomerRef {
	return CustomerRef{id: id}
}

func CustomerObject(c *stripe.Customer) CustomerRef {
	return CustomerRef{customer: c}
}

// customerRefOf turns an expandable field into a ref. stripe-go leaves
// Object empty when the payload only carried the id.
func customerRefOf(c *stripe.Customer) CustomerRef {
	if c == nil {
		return CustomerRef{}
	}
	if c.Object == "customer" {
		return CustomerObject(c)
	}
	return CustomerByID(c.ID)
}

func (r CustomerRef) ID() string {
	if r.customer != nil {
		return r.customer.ID
	}
	return r.id
}

func (r CustomerRef) IsZero() bool {
	return r.ID() == ""
}

// resolve returns the customer object, fetching it when only the id is known
func (r CustomerRef) resolve(ctx context.Context, billing provider.BillingProvider) (*stripe.Customer, error) {
	if r.customer != nil {
		return r.customer, nil
	}
	if r.id == "" {
		return nil, errors.New("empty customer reference")
	}
	c, err := billing.GetCustomer(ctx, r.id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer %s: %w", r.id, err)
	}
	return c, nil
}
