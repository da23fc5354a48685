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

type stripeCustomerRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStripeCustomerRepository creates a new Stripe customer repository
func NewStripeCustomerRepository(db *gorm.DB, logger *zap.Logger) repository.StripeCustomerRepository {
	return &stripeCustomerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *stripeCustomerRepository) Upsert(ctx context.Context, customer *model.StripeCustomer) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "stripe_customer_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"email":      gorm.Expr("excluded.email"),
				"name":       gorm.Expr("excluded.name"),
				"user_id":    gorm.Expr("COALESCE(excluded.user_id, stripe_customers.user_id)"),
				"updated_at": gorm.Expr("excluded.updated_at"),
			}),
		}).
		Create(customer).Error
	if err != nil {
		r.logger.Error("Failed to upsert stripe customer",
			zap.String("stripe_customer_id", customer.StripeCustomerID),
			zap.Error(err))
		return fmt.Errorf("failed to upsert stripe customer: %w", err)
	}
	return nil
}

func (r *stripeCustomerRepository) GetByStripeID(ctx context.Context, stripeCustomerID string) (*model.StripeCustomer, error) {
	var customer model.StripeCustomer
	err := r.db.WithContext(ctx).
		Where("stripe_customer_id = ?", stripeCustomerID).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stripe customer: %w", err)
	}
	return &customer, nil
}

func (r *stripeCustomerRepository) GetByUserID(ctx context.Context, userID int64) (*model.StripeCustomer, error) {
	var customer model.StripeCustomer
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stripe customer by user: %w", err)
	}
	return &customer, nil
}
