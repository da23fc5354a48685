package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/middleware/auth"
	apperrors "github.com/fpcgarcias/site-ticketwise-sub000/pkg/errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CompanyUseCase interface {
	Register(ctx context.Context, caller *model.User, in *entity.CompanyInput) (*entity.Company, error)
	List(ctx context.Context, params entity.PaginationParams) (*entity.PaginatedCompanies, error)
	Get(ctx context.Context, caller *model.User, id int64) (*entity.Company, error)
}

type CompanyHandler struct {
	logger  *zap.Logger
	service CompanyUseCase
}

func NewCompanyHandler(logger *zap.Logger, service CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{logger: logger, service: service}
}

// Register POST /api/company/register
func (h *CompanyHandler) Register(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req entity.CompanyInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	company, err := h.service.Register(c.Request().Context(), user, &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, company)
}

// List GET /api/company/list?page=&limit=
func (h *CompanyHandler) List(c echo.Context) error {
	var params entity.PaginationParams
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &params); err != nil {
		return apperrors.InvalidArgument("invalid pagination parameters", err)
	}

	page, err := h.service.List(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"data":       page.Data,
		"pagination": page.Pagination,
	})
}

// Get GET /api/company/:id
func (h *CompanyHandler) Get(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperrors.InvalidArgument("invalid company id", err)
	}

	company, err := h.service.Get(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, company)
}
