package repository

import (
	"context"
	"time"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
)

type UserRepository interface {
	// Create returns domain ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdateLastLogout(ctx context.Context, id int64, at time.Time) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	// ClaimPassword sets the password only while must_set_password is true.
	// It reports false when the account was already claimed.
	ClaimPassword(ctx context.Context, id int64, passwordHash string) (bool, error)
}
