package repository

import (
	"context"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
)

type CompanyRepository interface {
	// CreateForUser inserts the company and attaches it to the user in one
	// transaction. It fails with ErrUserAlreadyHasCompany, leaving nothing
	// behind, when the user already has a company_id.
	CreateForUser(ctx context.Context, company *model.Company, userID int64, role model.UserRole) error
	// CreateWithOwner inserts a new user and a company it administers in one
	// transaction. A taken email yields ErrEmailAlreadyExists.
	CreateWithOwner(ctx context.Context, company *model.Company, owner *model.User) error
	GetByID(ctx context.Context, id int64) (*model.Company, error)
	// FindByEmailOrCNPJ ignores empty arguments; both empty returns nil.
	FindByEmailOrCNPJ(ctx context.Context, email, cnpj string) (*model.Company, error)
	// List returns one page ordered newest first, plus the total row count.
	List(ctx context.Context, offset, limit int) ([]*model.Company, int64, error)
}
