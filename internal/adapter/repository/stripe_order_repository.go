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

// columns refreshed when an order row is seen again
var orderUpdateAssignments = map[string]interface{}{
	"stripe_customer_id": gorm.Expr("COALESCE(NULLIF(excluded.stripe_customer_id, ''), stripe_orders.stripe_customer_id)"),
	"user_id":            gorm.Expr("COALESCE(excluded.user_id, stripe_orders.user_id)"),
	"invoice_id":         gorm.Expr("COALESCE(excluded.invoice_id, stripe_orders.invoice_id)"),
	"amount_subtotal":    gorm.Expr("excluded.amount_subtotal"),
	"amount_total":       gorm.Expr("excluded.amount_total"),
	"currency":           gorm.Expr("excluded.currency"),
	"payment_status":     gorm.Expr("excluded.payment_status"),
	"status":             gorm.Expr("excluded.status"),
	"updated_at":         gorm.Expr("excluded.updated_at"),
}

type stripeOrderRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStripeOrderRepository creates a new Stripe order repository
func NewStripeOrderRepository(db *gorm.DB, logger *zap.Logger) repository.StripeOrderRepository {
	return &stripeOrderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *stripeOrderRepository) UpsertByCheckoutSession(ctx context.Context, order *model.StripeOrder) error {
	if order.CheckoutSessionID == nil || *order.CheckoutSessionID == "" {
		return errors.New("checkout session id is required")
	}
	return r.upsert(ctx, order, "checkout_session_id")
}

func (r *stripeOrderRepository) UpsertByPaymentIntent(ctx context.Context, order *model.StripeOrder) error {
	if order.PaymentIntentID == nil || *order.PaymentIntentID == "" {
		return errors.New("payment intent id is required")
	}
	return r.upsert(ctx, order, "payment_intent_id")
}

func (r *stripeOrderRepository) upsert(ctx context.Context, order *model.StripeOrder, key string) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: key}},
			DoUpdates: clause.Assignments(orderUpdateAssignments),
		}).
		Create(order).Error
	if err != nil {
		r.logger.Error("Failed to upsert stripe order",
			zap.String("conflict_key", key),
			zap.Error(err))
		return fmt.Errorf("failed to upsert stripe order: %w", err)
	}
	return nil
}

func (r *stripeOrderRepository) GetByCheckoutSession(ctx context.Context, sessionID string) (*model.StripeOrder, error) {
	var order model.StripeOrder
	err := r.db.WithContext(ctx).
		Where("checkout_session_id = ?", sessionID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stripe order: %w", err)
	}
	return &order, nil
}

func (r *stripeOrderRepository) ListByUserID(ctx context.Context, userID int64) ([]*model.StripeOrder, error) {
	var orders []*model.StripeOrder
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stripe orders: %w", err)
	}
	return orders, nil
}
