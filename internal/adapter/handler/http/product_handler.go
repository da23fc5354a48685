package http

import (
	"context"
	"net/http"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/middleware/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ProductUseCase interface {
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	ListPrices(ctx context.Context) ([]*entity.Price, error)
	CreateCheckout(ctx context.Context, req *entity.CheckoutRequest) (*entity.CheckoutSession, error)
}

// ProductHandler serves the public catalog and starts checkouts
type ProductHandler struct {
	logger  *zap.Logger
	service ProductUseCase
}

func NewProductHandler(logger *zap.Logger, service ProductUseCase) *ProductHandler {
	return &ProductHandler{logger: logger, service: service}
}

// GetProducts GET /api/stripe/products
func (h *ProductHandler) GetProducts(c echo.Context) error {
	products, err := h.service.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, products)
}

// GetPrices GET /api/stripe/prices
func (h *ProductHandler) GetPrices(c echo.Context) error {
	prices, err := h.service.ListPrices(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, prices)
}

// CreateCheckout POST /api/stripe/checkout. The user id only ever comes from
// the bearer token.
func (h *ProductHandler) CreateCheckout(c echo.Context) error {
	var req entity.CheckoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if user := auth.UserFromContext(c); user != nil {
		req.UserID = &user.ID
		if req.Email == "" {
			req.Email = user.Email
		}
		if req.Name == "" {
			req.Name = user.Name
		}
	}

	session, err := h.service.CreateCheckout(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, session)
}
