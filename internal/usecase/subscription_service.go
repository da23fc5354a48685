package usecase

import (
	"context"
	"errors"
	"strconv"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	domainErrors "github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/errors"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/provider"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/repository"
	apperrors "github.com/fpcgarcias/site-ticketwise-sub000/pkg/errors"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
)

// SubscriptionService handles subscription self-service. Actions are allowed
// only on rows whose user_id is the caller, and every Stripe mutation is
// written back through the reconciliation upsert.
type SubscriptionService struct {
	billing          provider.BillingProvider
	userRepo         repository.UserRepository
	customerRepo     repository.StripeCustomerRepository
	subscriptionRepo repository.StripeSubscriptionRepository
	reconciler       *BillingService
	catalog          *Catalog
	logger           *zap.Logger
}

// NewSubscriptionService creates a new subscription service instance
func NewSubscriptionService(
	billing provider.BillingProvider,
	userRepo repository.UserRepository,
	customerRepo repository.StripeCustomerRepository,
	subscriptionRepo repository.StripeSubscriptionRepository,
	reconciler *BillingService,
	catalog *Catalog,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		billing:          billing,
		userRepo:         userRepo,
		customerRepo:     customerRepo,
		subscriptionRepo: subscriptionRepo,
		reconciler:       reconciler,
		catalog:          catalog,
		logger:           logger,
	}
}

// Get returns the caller's current subscription, or nil when there is none
func (s *SubscriptionService) Get(ctx context.Context, userID int64) (*entity.Subscription, error) {
	row, err := s.subscriptionRepo.GetCurrentByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to get subscription", err)
	}
	return s.toEntity(row), nil
}

// Cancel schedules cancellation at the end of the current period
func (s *SubscriptionService) Cancel(ctx context.Context, userID int64, subscriptionID string) (*entity.Subscription, error) {
	row, err := s.owned(ctx, userID, subscriptionID)
	if err != nil {
		return nil, err
	}
	if row.CancelAtPeriodEnd {
		return nil, appError(domainErrors.ErrAlreadyScheduledForCancellation, "")
	}

	updated, err := s.billing.SetCancelAtPeriodEnd(ctx, row.StripeSubscriptionID, true)
	if err != nil {
		s.logger.Error("Failed to cancel subscription",
			zap.String("stripe_subscription_id", row.StripeSubscriptionID),
			zap.Error(err))
		return nil, vendorError(err)
	}

	s.logger.Info("Subscription canceled successfully",
		zap.String("stripe_subscription_id", updated.ID),
		zap.Int64("user_id", userID),
		zap.Bool("cancel_at_period_end", updated.CancelAtPeriodEnd))
	return s.writeBack(ctx, updated)
}

// Reactivate clears a scheduled cancellation
func (s *SubscriptionService) Reactivate(ctx context.Context, userID int64, subscriptionID string) (*entity.Subscription, error) {
	row, err := s.owned(ctx, userID, subscriptionID)
	if err != nil {
		return nil, err
	}
	if !row.CancelAtPeriodEnd {
		return nil, appError(domainErrors.ErrNotScheduledForCancellation, "")
	}

	updated, err := s.billing.SetCancelAtPeriodEnd(ctx, row.StripeSubscriptionID, false)
	if err != nil {
		s.logger.Error("Failed to reactivate subscription",
			zap.String("stripe_subscription_id", row.StripeSubscriptionID),
			zap.Error(err))
		return nil, vendorError(err)
	}

	s.logger.Info("Subscription reactivated",
		zap.String("stripe_subscription_id", updated.ID),
		zap.Int64("user_id", userID))
	return s.writeBack(ctx, updated)
}

// UpdatePaymentMethod attaches the card to the customer and makes it the default
func (s *SubscriptionService) UpdatePaymentMethod(ctx context.Context, userID int64, paymentMethodID string) (*entity.Subscription, error) {
	row, err := s.owned(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	if _, err := s.billing.AttachPaymentMethod(ctx, paymentMethodID, row.StripeCustomerID); err != nil {
		s.logger.Error("Failed to attach payment method",
			zap.String("stripe_customer_id", row.StripeCustomerID),
			zap.Error(err))
		return nil, vendorError(err)
	}

	updated, err := s.billing.SetDefaultPaymentMethod(ctx, row.StripeCustomerID, row.StripeSubscriptionID, paymentMethodID)
	if err != nil {
		s.logger.Error("Failed to set default payment method",
			zap.String("stripe_subscription_id", row.StripeSubscriptionID),
			zap.Error(err))
		return nil, vendorError(err)
	}

	s.logger.Info("Payment method updated",
		zap.String("stripe_subscription_id", updated.ID),
		zap.Int64("user_id", userID))
	return s.writeBack(ctx, updated)
}

// ChangePlan swaps the price of the subscription item, prorating the difference
func (s *SubscriptionService) ChangePlan(ctx context.Context, userID int64, priceID, subscriptionID string) (*entity.Subscription, error) {
	if !s.catalog.AllowsPrice(priceID) {
		return nil, appError(domainErrors.ErrUnknownPrice, "")
	}

	row, err := s.owned(ctx, userID, subscriptionID)
	if err != nil {
		return nil, err
	}
	if row.PriceID == priceID {
		return nil, appError(domainErrors.ErrSamePrice, "")
	}

	current, err := s.billing.GetSubscription(ctx, row.StripeSubscriptionID)
	if err != nil {
		return nil, vendorError(err)
	}
	itemID := subscriptionItemID(current)
	if itemID == "" {
		return nil, apperrors.Internal("subscription has no items", nil)
	}

	updated, err := s.billing.ChangeSubscriptionPrice(ctx, row.StripeSubscriptionID, itemID, priceID)
	if err != nil {
		s.logger.Error("Failed to change subscription plan",
			zap.String("stripe_subscription_id", row.StripeSubscriptionID),
			zap.String("price_id", priceID),
			zap.Error(err))
		return nil, vendorError(err)
	}

	s.logger.Info("Subscription plan changed",
		zap.String("stripe_subscription_id", updated.ID),
		zap.String("from_price_id", row.PriceID),
		zap.String("to_price_id", priceID))
	return s.writeBack(ctx, updated)
}

// SetupIntent lets the browser collect a card, creating the Stripe customer
// on first use
func (s *SubscriptionService) SetupIntent(ctx context.Context, userID int64) (*entity.SetupIntent, error) {
	if s.billing == nil {
		return nil, appError(domainErrors.ErrBillingDisabled, "")
	}

	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to create setup intent", err)
	}

	customerID := ""
	if customer != nil {
		customerID = customer.StripeCustomerID
	} else {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, apperrors.Internal("failed to create setup intent", err)
		}
		if user == nil {
			return nil, appError(domainErrors.ErrUserNotFound, "")
		}

		created, err := s.billing.CreateCustomer(ctx, user.Email, user.Name, map[string]string{
			metaUserID: strconv.FormatInt(user.ID, 10),
		})
		if err != nil {
			return nil, vendorError(err)
		}
		if _, err := s.reconciler.syncCustomer(ctx, CustomerObject(created), &user.ID); err != nil {
			return nil, apperrors.Internal("failed to save customer", err)
		}
		customerID = created.ID
	}

	intent, err := s.billing.CreateSetupIntent(ctx, customerID)
	if err != nil {
		s.logger.Error("Failed to create setup intent",
			zap.String("stripe_customer_id", customerID),
			zap.Error(err))
		return nil, vendorError(err)
	}
	return &entity.SetupIntent{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

// owned loads the subscription the caller may act on. Without an explicit id
// it is the caller's live subscription.
func (s *SubscriptionService) owned(ctx context.Context, userID int64, subscriptionID string) (*model.StripeSubscription, error) {
	if s.billing == nil {
		return nil, appError(domainErrors.ErrBillingDisabled, "")
	}

	if subscriptionID == "" {
		row, err := s.subscriptionRepo.GetCurrentByUserID(ctx, userID)
		if err != nil {
			return nil, apperrors.Internal("failed to load subscription", err)
		}
		if row == nil || !row.IsLive() {
			return nil, appError(domainErrors.ErrNoActiveSubscription, "")
		}
		return row, nil
	}

	row, err := s.subscriptionRepo.GetByStripeID(ctx, subscriptionID)
	if err != nil {
		return nil, apperrors.Internal("failed to load subscription", err)
	}
	if row == nil {
		return nil, appError(domainErrors.ErrSubscriptionNotFound, "")
	}
	if row.UserID == nil || *row.UserID != userID {
		s.logger.Warn("Subscription ownership check failed",
			zap.String("stripe_subscription_id", subscriptionID),
			zap.Int64("user_id", userID))
		return nil, appError(domainErrors.ErrSubscriptionNotOwned, "")
	}
	return row, nil
}

func (s *SubscriptionService) writeBack(ctx context.Context, sub *stripe.Subscription) (*entity.Subscription, error) {
	row, err := s.reconciler.syncSubscription(ctx, sub)
	if err != nil {
		return nil, apperrors.Internal("failed to save subscription", err)
	}
	if row == nil {
		return nil, apperrors.Internal("failed to save subscription", errors.New("customer mapping missing"))
	}
	return s.toEntity(row), nil
}

func (s *SubscriptionService) toEntity(row *model.StripeSubscription) *entity.Subscription {
	if row == nil {
		return nil
	}
	return entity.NewSubscription(row, s.catalog.PlanByPrice(row.PriceID))
}
