package http

import (
	"context"
	"net/http"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/middleware/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SubscriptionUseCase interface {
	Get(ctx context.Context, userID int64) (*entity.Subscription, error)
	Cancel(ctx context.Context, userID int64, subscriptionID string) (*entity.Subscription, error)
	Reactivate(ctx context.Context, userID int64, subscriptionID string) (*entity.Subscription, error)
	UpdatePaymentMethod(ctx context.Context, userID int64, paymentMethodID string) (*entity.Subscription, error)
	ChangePlan(ctx context.Context, userID int64, priceID, subscriptionID string) (*entity.Subscription, error)
	SetupIntent(ctx context.Context, userID int64) (*entity.SetupIntent, error)
}

type SubscriptionHandler struct {
	logger  *zap.Logger
	service SubscriptionUseCase
}

func NewSubscriptionHandler(logger *zap.Logger, service SubscriptionUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{logger: logger, service: service}
}

type subscriptionActionRequest struct {
	SubscriptionID string `json:"subscription_id" validate:"omitempty,max=100"`
}

type updatePaymentMethodRequest struct {
	PaymentMethodID string `json:"payment_method_id" validate:"required,max=100"`
}

type changePlanRequest struct {
	PriceID        string `json:"price_id" validate:"required,max=100"`
	SubscriptionID string `json:"subscription_id" validate:"omitempty,max=100"`
}

// GetCurrentSubscription GET /api/subscription
func (h *SubscriptionHandler) GetCurrentSubscription(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	sub, err := h.service.Get(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	if sub == nil {
		return nullableData(c, nil)
	}
	return success(c, http.StatusOK, sub)
}

// CancelSubscription POST /api/subscription/cancel
func (h *SubscriptionHandler) CancelSubscription(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req subscriptionActionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sub, err := h.service.Cancel(c.Request().Context(), user.ID, req.SubscriptionID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, sub)
}

// ReactivateSubscription POST /api/subscription/reactivate
func (h *SubscriptionHandler) ReactivateSubscription(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req subscriptionActionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sub, err := h.service.Reactivate(c.Request().Context(), user.ID, req.SubscriptionID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, sub)
}

// UpdatePaymentMethod POST /api/subscription/update-payment-method
func (h *SubscriptionHandler) UpdatePaymentMethod(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req updatePaymentMethodRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sub, err := h.service.UpdatePaymentMethod(c.Request().Context(), user.ID, req.PaymentMethodID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, sub)
}

// ChangePlan POST /api/subscription/change-plan
func (h *SubscriptionHandler) ChangePlan(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req changePlanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sub, err := h.service.ChangePlan(c.Request().Context(), user.ID, req.PriceID, req.SubscriptionID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, sub)
}

// CreateSetupIntent POST /api/subscription/setup-intent
func (h *SubscriptionHandler) CreateSetupIntent(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	intent, err := h.service.SetupIntent(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, intent)
}
