package repository

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/errors"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type companyRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB, logger *zap.Logger) repository.CompanyRepository {
	return &companyRepository{
		db:     db,
		logger: logger,
	}
}

func (r *companyRepository) CreateForUser(ctx context.Context, company *model.Company, userID int64, role model.UserRole) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(company).Error; err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}

		updates := map[string]interface{}{"company_id": company.ID}
		if role != "" {
			updates["role"] = role
		}

		// company_id is only ever set once
		result := tx.Model(&model.User{}).
			Where("id = ? AND company_id IS NULL", userID).
			Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to attach company to user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domainErrors.ErrUserAlreadyHasCompany
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domainErrors.ErrUserAlreadyHasCompany) {
			r.logger.Error("Failed to create company for user",
				zap.Int64("user_id", userID),
				zap.String("company_email", company.Email),
				zap.Error(err))
		}
		company.ID = 0
		return err
	}

	r.logger.Info("Company created",
		zap.Int64("company_id", company.ID),
		zap.Int64("user_id", userID))
	return nil
}

func (r *companyRepository) GetByID(ctx context.Context, id int64) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).First(&company, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &company, nil
}

func (r *companyRepository) FindByEmailOrCNPJ(ctx context.Context, email, cnpj string) (*model.Company, error) {
	query := r.db.WithContext(ctx).Model(&model.Company{})
	switch {
	case email != "" && cnpj != "":
		query = query.Where("email = ? OR cnpj = ?", email, cnpj)
	case email != "":
		query = query.Where("email = ?", email)
	case cnpj != "":
		query = query.Where("cnpj = ?", cnpj)
	default:
		return nil, nil
	}

	var company model.Company
	err := query.Order("id ASC").First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return &company, nil
}

func (r *companyRepository) List(ctx context.Context, offset, limit int) ([]*model.Company, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Company{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	var companies []*model.Company
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&companies).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, total, nil
}

func (r *companyRepository) CreateWithOwner(ctx context.Context, company *model.Company, owner *model.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner.CompanyID = nil
		if err := tx.Create(owner).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domainErrors.ErrEmailAlreadyExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		if err := tx.Create(company).Error; err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}

		err := tx.Model(&model.User{}).
			Where("id = ?", owner.ID).
			Updates(map[string]interface{}{
				"company_id": company.ID,
				"role":       model.RoleCompanyAdmin,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to attach company to user: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domainErrors.ErrEmailAlreadyExists) {
			r.logger.Error("Failed to create company with owner",
				zap.String("owner_email", owner.Email),
				zap.String("company_email", company.Email),
				zap.Error(err))
		}
		owner.ID = 0
		company.ID = 0
		return err
	}

	owner.CompanyID = &company.ID
	owner.Role = model.RoleCompanyAdmin
	r.logger.Info("Company created with owner",
		zap.Int64("company_id", company.ID),
		zap.Int64("user_id", owner.ID))
	return nil
}
