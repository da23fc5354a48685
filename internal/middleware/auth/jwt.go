package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/usecase"
	apperrors "github.com/fpcgarcias/site-ticketwise-sub000/pkg/errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// contextKey is used for storing user in context
type contextKey string

const (
	userContextKey contextKey = "authenticated_user"
)

// UserLoader re-reads the token subject so deleted users lose access immediately
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// JWTConfig holds the configuration for JWT middleware
type JWTConfig struct {
	Tokens    *usecase.TokenService
	Users     UserLoader
	Logger    *zap.Logger
	SkipPaths []string // Paths to skip JWT validation
}

func unauthorized(c echo.Context, message, code string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"success": false,
		"error":   message,
		"code":    code,
	})
}

// bearerToken returns the token of an "Authorization: Bearer" header
func bearerToken(c echo.Context) (token string, present bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token = strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return "", true
	}
	return strings.TrimSpace(token), true
}

// authenticate resolves the access token to a live user
func (config JWTConfig) authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := config.Tokens.Parse(token, usecase.TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	user, err := config.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d no longer exists", claims.UserID)
	}
	return user, nil
}

func setUser(c echo.Context, user *model.User) {
	ctx := context.WithValue(c.Request().Context(), userContextKey, user)
	c.SetRequest(c.Request().WithContext(ctx))
	c.Set("user_id", user.ID)
}

// JWTMiddleware requires a valid access token and loads its user
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if strings.HasPrefix(path, skipPath) {
					return next(c)
				}
			}

			token, present := bearerToken(c)
			if !present {
				config.Logger.Warn("Missing authorization header",
					zap.String("path", path),
					zap.String("method", c.Request().Method))
				return unauthorized(c, "Authorization header required", "MISSING_AUTH_HEADER")
			}
			if token == "" {
				config.Logger.Warn("Invalid authorization header format",
					zap.String("path", path))
				return unauthorized(c, "Invalid authorization header format. Expected: Bearer <token>", "INVALID_AUTH_FORMAT")
			}

			user, err := config.authenticate(c.Request().Context(), token)
			if err != nil {
				config.Logger.Warn("JWT validation failed",
					zap.Error(err),
					zap.String("path", path))
				return unauthorized(c, "Invalid or expired token", "INVALID_TOKEN")
			}

			setUser(c, user)
			config.Logger.Debug("User authenticated successfully",
				zap.Int64("user_id", user.ID),
				zap.String("path", path))

			return next(c)
		}
	}
}

// OptionalAuth loads the user when a valid token is sent and otherwise lets
// the request through anonymously
func OptionalAuth(config JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, _ := bearerToken(c)
			if token == "" {
				return next(c)
			}
			user, err := config.authenticate(c.Request().Context(), token)
			if err != nil {
				config.Logger.Debug("Ignoring invalid optional token",
					zap.String("path", c.Request().URL.Path),
					zap.Error(err))
				return next(c)
			}
			setUser(c, user)
			return next(c)
		}
	}
}

// RequireRole lets through only users holding one of roles. It must run
// after JWTMiddleware.
func RequireRole(roles ...model.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFromContext(c)
			if user == nil {
				return unauthorized(c, "Authentication required", "AUTH_REQUIRED")
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, echo.Map{
				"success": false,
				"error":   "Insufficient permissions",
				"code":    "FORBIDDEN",
			})
		}
	}
}

// UserFromContext returns the authenticated user or nil
func UserFromContext(c echo.Context) *model.User {
	user, _ := c.Request().Context().Value(userContextKey).(*model.User)
	return user
}

// GetUserFromContext extracts the authenticated user from the request context
func GetUserFromContext(c echo.Context) (*model.User, error) {
	user := UserFromContext(c)
	if user == nil {
		return nil, fmt.Errorf("no authenticated user found in context")
	}
	return user, nil
}

// RequireAuth returns the user or an UNAUTHENTICATED error for the error handler
func RequireAuth(c echo.Context) (*model.User, error) {
	user, err := GetUserFromContext(c)
	if err != nil {
		return nil, apperrors.Unauthenticated("authentication required", err)
	}
	return user, nil
}
