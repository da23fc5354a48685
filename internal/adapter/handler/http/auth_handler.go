package http

import (
	"context"
	"net/http"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/middleware/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthUseCase is the account API consumed by AuthHandler
type AuthUseCase interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResult, error)
	Login(ctx context.Context, email, password string) (*entity.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, error)
	Logout(ctx context.Context, userID int64) error
	Me(ctx context.Context, userID int64) (*entity.User, error)
	ChangePassword(ctx context.Context, userID int64, req *entity.ChangePasswordRequest) error
	CheckUser(ctx context.Context, email string) (*entity.UserStatus, error)
	PreCheckoutRegister(ctx context.Context, req *entity.PreCheckoutRegisterRequest) (*entity.AuthResult, error)
	Claim(ctx context.Context, token, password string) (*entity.AuthResult, error)
}

type AuthHandler struct {
	logger  *zap.Logger
	service AuthUseCase
}

func NewAuthHandler(logger *zap.Logger, service AuthUseCase) *AuthHandler {
	return &AuthHandler{logger: logger, service: service}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req entity.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Register(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, result)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req entity.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, result)
}

// Refresh POST /api/auth/refresh
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req entity.RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tokens, err := h.service.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"tokens": tokens})
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	if err := h.service.Logout(c.Request().Context(), user.ID); err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"message": "logged out"})
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	me, err := h.service.Me(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, me)
}

// ChangePassword POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req entity.ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.ChangePassword(c.Request().Context(), user.ID, &req); err != nil {
		return err
	}
	h.logger.Info("Password changed", zap.Int64("user_id", user.ID))
	return success(c, http.StatusOK, echo.Map{"message": "password updated"})
}

// CheckUser POST /api/auth/check-user
func (h *AuthHandler) CheckUser(c echo.Context) error {
	var req entity.CheckUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	status, err := h.service.CheckUser(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, status)
}

// PreCheckoutRegister POST /api/auth/pre-checkout-register
func (h *AuthHandler) PreCheckoutRegister(c echo.Context) error {
	var req entity.PreCheckoutRegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.PreCheckoutRegister(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, result)
}

// Claim POST /api/auth/claim
func (h *AuthHandler) Claim(c echo.Context) error {
	var req entity.ClaimRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Claim(c.Request().Context(), req.Token, req.Password)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, result)
}
