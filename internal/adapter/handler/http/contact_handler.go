package http

import (
	"context"
	"net/http"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ContactUseCase interface {
	Send(ctx context.Context, req *entity.ContactRequest) (*entity.ContactReceipt, error)
	Newsletter(ctx context.Context, email string) error
}

type ContactHandler struct {
	logger  *zap.Logger
	service ContactUseCase
}

func NewContactHandler(logger *zap.Logger, service ContactUseCase) *ContactHandler {
	return &ContactHandler{logger: logger, service: service}
}

// Send POST /api/contact/send
func (h *ContactHandler) Send(c echo.Context) error {
	var req entity.ContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	receipt, err := h.service.Send(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, receipt)
}

// Newsletter POST /api/contact/newsletter
func (h *ContactHandler) Newsletter(c echo.Context) error {
	var req entity.NewsletterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.Newsletter(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"subscribed": true})
}
