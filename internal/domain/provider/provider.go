package provider

import (
	"context"

	"github.com/stripe/stripe-go/v79"
)

// BillingProvider is the subset of the Stripe API the service relies on.
// Objects are returned as stripe-go types; callers never talk to Stripe directly.
type BillingProvider interface {
	// ConstructEvent verifies the Stripe-Signature header and decodes the event
	ConstructEvent(payload []byte, signature string) (stripe.Event, error)

	GetCustomer(ctx context.Context, customerID string) (*stripe.Customer, error)
	CreateCustomer(ctx context.Context, email, name string, metadata map[string]string) (*stripe.Customer, error)

	// GetSubscription expands default_payment_method
	GetSubscription(ctx context.Context, subscriptionID string) (*stripe.Subscription, error)
	ListActiveSubscriptions(ctx context.Context, customerID string) ([]*stripe.Subscription, error)
	SetCancelAtPeriodEnd(ctx context.Context, subscriptionID string, cancel bool) (*stripe.Subscription, error)
	ChangeSubscriptionPrice(ctx context.Context, subscriptionID, itemID, priceID string) (*stripe.Subscription, error)
	SetDefaultPaymentMethod(ctx context.Context, customerID, subscriptionID, paymentMethodID string) (*stripe.Subscription, error)

	GetPaymentMethod(ctx context.Context, paymentMethodID string) (*stripe.PaymentMethod, error)
	AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) (*stripe.PaymentMethod, error)
	CreateSetupIntent(ctx context.Context, customerID string) (*stripe.SetupIntent, error)

	// GetCheckoutSession expands customer and subscription
	GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
	CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*stripe.CheckoutSession, error)

	ListProducts(ctx context.Context) ([]*stripe.Product, error)
	// ListPrices returns active recurring prices with the product expanded
	ListPrices(ctx context.Context) ([]*stripe.Price, error)
}

// CheckoutSessionRequest represents a subscription-mode checkout
type CheckoutSessionRequest struct {
	PriceID           string
	CustomerID        string
	CustomerEmail     string
	ClientReferenceID string
	SuccessURL        string
	CancelURL         string
	Metadata          map[string]string
}
