package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	apperrors "github.com/fpcgarcias/site-ticketwise-sub000/pkg/errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// MaxWebhookBodyBytes caps the raw body read for signature verification
const MaxWebhookBodyBytes = 64 << 10

type BillingUseCase interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	ProcessSession(ctx context.Context, sessionID string, reg *entity.Registration) (*entity.ReconcileResult, error)
}

type WebhookHandler struct {
	logger  *zap.Logger
	service BillingUseCase
}

func NewWebhookHandler(logger *zap.Logger, service BillingUseCase) *WebhookHandler {
	return &WebhookHandler{logger: logger, service: service}
}

// HandleWebhook POST /api/stripe/webhook. The body is read raw; only a failed
// signature check produces a non-200 reply.
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, MaxWebhookBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("Webhook payload too large", zap.Int64("limit", tooLarge.Limit))
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "payload too large")
		}
		h.logger.Error("Failed to read webhook body", zap.Error(err))
		return apperrors.InvalidArgument("failed to read request body", err)
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if signature == "" {
		h.logger.Warn("Webhook received without signature")
		return apperrors.InvalidArgument("missing Stripe-Signature header", nil)
	}

	if err := h.service.HandleWebhook(c.Request().Context(), body, signature); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"received": true})
}

type processSessionRequest struct {
	SessionID    string               `json:"session_id" validate:"required"`
	Registration *entity.Registration `json:"registration" validate:"omitempty"`
}

// ProcessSession POST /api/stripe/process-session
func (h *WebhookHandler) ProcessSession(c echo.Context) error {
	var req processSessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.ProcessSession(c.Request().Context(), req.SessionID, req.Registration)
	if err != nil {
		return err
	}

	h.logger.Info("Checkout session processed",
		zap.String("session_id", req.SessionID),
		zap.Bool("provisioned", result.Provisioned))
	return success(c, http.StatusOK, result)
}
