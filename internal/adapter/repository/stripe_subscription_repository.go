package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type stripeSubscriptionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStripeSubscriptionRepository creates a new Stripe subscription repository
func NewStripeSubscriptionRepository(db *gorm.DB, logger *zap.Logger) repository.StripeSubscriptionRepository {
	return &stripeSubscriptionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *stripeSubscriptionRepository) Upsert(ctx context.Context, subscription *model.StripeSubscription) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "stripe_subscription_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"user_id":              gorm.Expr("COALESCE(excluded.user_id, stripe_subscriptions.user_id)"),
				"stripe_customer_id":   gorm.Expr("excluded.stripe_customer_id"),
				"status":               gorm.Expr("excluded.status"),
				"price_id":             gorm.Expr("excluded.price_id"),
				"current_period_start": gorm.Expr("excluded.current_period_start"),
				"current_period_end":   gorm.Expr("excluded.current_period_end"),
				"cancel_at_period_end": gorm.Expr("excluded.cancel_at_period_end"),
				// a payload without a resolvable payment method keeps the last known card
				"payment_method_brand": gorm.Expr("COALESCE(NULLIF(excluded.payment_method_brand, ''), stripe_subscriptions.payment_method_brand)"),
				"payment_method_last4": gorm.Expr("COALESCE(NULLIF(excluded.payment_method_last4, ''), stripe_subscriptions.payment_method_last4)"),
				"updated_at":           gorm.Expr("excluded.updated_at"),
			}),
		}).
		Create(subscription).Error
	if err != nil {
		r.logger.Error("Failed to upsert stripe subscription",
			zap.String("stripe_subscription_id", subscription.StripeSubscriptionID),
			zap.Error(err))
		return fmt.Errorf("failed to upsert stripe subscription: %w", err)
	}
	return nil
}

func (r *stripeSubscriptionRepository) GetByStripeID(ctx context.Context, stripeSubscriptionID string) (*model.StripeSubscription, error) {
	var subscription model.StripeSubscription
	err := r.db.WithContext(ctx).
		Where("stripe_subscription_id = ?", stripeSubscriptionID).
		First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stripe subscription: %w", err)
	}
	return &subscription, nil
}

func (r *stripeSubscriptionRepository) GetCurrentByUserID(ctx context.Context, userID int64) (*model.StripeSubscription, error) {
	var subscriptions []*model.StripeSubscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&subscriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriptions by user: %w", err)
	}
	if len(subscriptions) == 0 {
		return nil, nil
	}

	for _, s := range subscriptions {
		if s.IsLive() {
			return s, nil
		}
	}
	return subscriptions[0], nil
}

func (r *stripeSubscriptionRepository) ListByCustomerID(ctx context.Context, stripeCustomerID string, statuses []string) ([]*model.StripeSubscription, error) {
	query := r.db.WithContext(ctx).Where("stripe_customer_id = ?", stripeCustomerID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var subscriptions []*model.StripeSubscription
	if err := query.Order("id ASC").Find(&subscriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions by customer: %w", err)
	}
	return subscriptions, nil
}
