package usecase

import (
	"context"
	"strings"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	domainErrors "github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/errors"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/repository"
	apperrors "github.com/fpcgarcias/site-ticketwise-sub000/pkg/errors"
	"go.uber.org/zap"
)

type CompanyService struct {
	companyRepo repository.CompanyRepository
	catalog     *Catalog
	logger      *zap.Logger
}

func NewCompanyService(companyRepo repository.CompanyRepository, catalog *Catalog, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		catalog:     catalog,
		logger:      logger,
	}
}

// Register creates a company for the caller, who becomes its company_admin
func (s *CompanyService) Register(ctx context.Context, caller *model.User, in *entity.CompanyInput) (*entity.Company, error) {
	if caller.CompanyID != nil {
		return nil, appError(domainErrors.ErrUserAlreadyHasCompany, "")
	}

	company := companyFromInput(in, caller.Email)
	if plan := s.catalog.PlanBySlug(company.PlanContracted); plan != nil {
		company.PlanContracted = plan.Name
	}

	existing, err := s.companyRepo.FindByEmailOrCNPJ(ctx, company.Email, company.CNPJ)
	if err != nil {
		return nil, apperrors.Internal("failed to register company", err)
	}
	if existing != nil {
		return nil, appError(domainErrors.ErrCompanyAlreadyExists, "")
	}

	if err := s.companyRepo.CreateForUser(ctx, company, caller.ID, model.RoleCompanyAdmin); err != nil {
		return nil, appError(err, "failed to register company")
	}

	s.logger.Info("Company registered",
		zap.Int64("company_id", company.ID),
		zap.Int64("user_id", caller.ID))
	return entity.NewCompany(company), nil
}

// List is restricted to admins by the router
func (s *CompanyService) List(ctx context.Context, params entity.PaginationParams) (*entity.PaginatedCompanies, error) {
	params = params.Normalize()
	rows, total, err := s.companyRepo.List(ctx, params.Offset(), params.Limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list companies", err)
	}

	out := &entity.PaginatedCompanies{
		Data:       make([]*entity.Company, 0, len(rows)),
		Pagination: entity.NewPaginationMeta(params, total),
	}
	for _, row := range rows {
		out.Data = append(out.Data, entity.NewCompany(row))
	}
	return out, nil
}

// Get allows admins and members of the company
func (s *CompanyService) Get(ctx context.Context, caller *model.User, id int64) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to get company", err)
	}
	if company == nil {
		return nil, appError(domainErrors.ErrCompanyNotFound, "")
	}

	member := caller.CompanyID != nil && *caller.CompanyID == company.ID
	if caller.Role != model.RoleAdmin && !member {
		return nil, appError(domainErrors.ErrCompanyAccessDenied, "")
	}
	return entity.NewCompany(company), nil
}

// companyFromInput normalizes a registration payload; the company email
// falls back to the owner's email.
func companyFromInput(in *entity.CompanyInput, fallbackEmail string) *model.Company {
	if in == nil {
		in = &entity.CompanyInput{}
	}
	email := normalizeEmail(in.Email)
	if email == "" {
		email = normalizeEmail(fallbackEmail)
	}
	return &model.Company{
		Name:           strings.TrimSpace(in.Name),
		Email:          email,
		CNPJ:           normalizeCNPJ(in.CNPJ),
		Phone:          strings.TrimSpace(in.Phone),
		PlanContracted: strings.TrimSpace(in.Plan),
		EmployeeCount:  in.EmployeeCount,
		RazaoSocial:    strings.TrimSpace(in.RazaoSocial),
	}
}

// normalizeCNPJ keeps digits only so "12.345.678/0001-90" and "12345678000190" match
func normalizeCNPJ(cnpj string) string {
	var b strings.Builder
	for _, r := range cnpj {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
