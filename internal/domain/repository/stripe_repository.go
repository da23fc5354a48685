package repository

import (
	"context"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
)

// Every Stripe-derived table is written with INSERT ... ON CONFLICT (vendor id) DO UPDATE.

type StripeCustomerRepository interface {
	// Upsert keeps an existing user link when customer.UserID is nil.
	Upsert(ctx context.Context, customer *model.StripeCustomer) error
	GetByStripeID(ctx context.Context, stripeCustomerID string) (*model.StripeCustomer, error)
	GetByUserID(ctx context.Context, userID int64) (*model.StripeCustomer, error)
}

type StripeSubscriptionRepository interface {
	Upsert(ctx context.Context, subscription *model.StripeSubscription) error
	GetByStripeID(ctx context.Context, stripeSubscriptionID string) (*model.StripeSubscription, error)
	// GetCurrentByUserID prefers the newest live subscription and falls back to the newest row.
	GetCurrentByUserID(ctx context.Context, userID int64) (*model.StripeSubscription, error)
	ListByCustomerID(ctx context.Context, stripeCustomerID string, statuses []string) ([]*model.StripeSubscription, error)
}

type StripeOrderRepository interface {
	UpsertByCheckoutSession(ctx context.Context, order *model.StripeOrder) error
	UpsertByPaymentIntent(ctx context.Context, order *model.StripeOrder) error
	GetByCheckoutSession(ctx context.Context, sessionID string) (*model.StripeOrder, error)
	ListByUserID(ctx context.Context, userID int64) ([]*model.StripeOrder, error)
}

type WebhookEventRepository interface {
	// Record stores the event once; later deliveries of the same event id are ignored.
	Record(ctx context.Context, event *model.StripeWebhookEvent) error
	GetByEventID(ctx context.Context, eventID string) (*model.StripeWebhookEvent, error)
	MarkProcessed(ctx context.Context, eventID string) error
	// MarkFailed schedules a retry with exponential backoff.
	MarkFailed(ctx context.Context, eventID string, cause error) error
	// ListRetryable returns failed events whose retry time has passed and
	// that have fewer than maxAttempts attempts.
	ListRetryable(ctx context.Context, maxAttempts, limit int) ([]*model.StripeWebhookEvent, error)
}
