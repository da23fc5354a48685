package entity

import (
	"time"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
)

// User is the public representation of an account
type User struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	CompanyID       *int64     `json:"company_id,omitempty"`
	Company         *Company   `json:"company,omitempty"`
	MustSetPassword bool       `json:"must_set_password"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewUser converts a user row, dropping the password hash
func NewUser(m *model.User) *User {
	if m == nil {
		return nil
	}
	return &User{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		Role:            string(m.Role),
		CompanyID:       m.CompanyID,
		MustSetPassword: m.MustSetPassword,
		LastLogin:       m.LastLogin,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// TokenPair is returned by register, login, refresh and claim
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	TokenType        string    `json:"token_type"`
	ExpiresAt        time.Time `json:"expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// AuthResult bundles a user with freshly issued tokens
type AuthResult struct {
	User    *User      `json:"user"`
	Company *Company   `json:"company,omitempty"`
	Tokens  *TokenPair `json:"tokens"`
}

// UserStatus answers check-user
type UserStatus struct {
	Exists     bool `json:"exists"`
	HasCompany bool `json:"has_company"`
}
