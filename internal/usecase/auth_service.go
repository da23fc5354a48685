package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	domainErrors "github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/errors"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/repository"
	apperrors "github.com/fpcgarcias/site-ticketwise-sub000/pkg/errors"
	"go.uber.org/zap"
)

// AuthService handles accounts and tokens
type AuthService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	tokens      *TokenService
	notifier    *NotificationService
	logger      *zap.Logger
	now         func() time.Time
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	tokens *TokenService,
	notifier *NotificationService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		tokens:      tokens,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. Admin accounts cannot be created this way.
func (s *AuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResult, error) {
	role := model.RoleUser
	if req.Role != "" {
		role = model.UserRole(req.Role)
	}
	if !role.Valid() {
		return nil, apperrors.InvalidArgument("invalid role", nil)
	}
	if role == model.RoleAdmin {
		return nil, appError(domainErrors.ErrRoleNotAllowed, "")
	}
	if len(req.Password) < MinPasswordLength {
		return nil, appError(domainErrors.ErrPasswordTooShort, "")
	}

	if req.CompanyID != nil {
		company, err := s.companyRepo.GetByID(ctx, *req.CompanyID)
		if err != nil {
			return nil, apperrors.Internal("failed to register user", err)
		}
		if company == nil {
			return nil, appError(domainErrors.ErrCompanyNotFound, "")
		}
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to register user", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         role,
		CompanyID:    req.CompanyID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, appError(err, "failed to register user")
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)))
	s.notifier.SendWelcome(ctx, user)

	return s.authResult(ctx, user)
}

// Login answers ErrInvalidCredentials for an unknown email and for a wrong password alike
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, apperrors.Internal("failed to login", err)
	}
	if user == nil || !CheckPassword(user.PasswordHash, password) {
		return nil, appError(domainErrors.ErrInvalidCredentials, "")
	}

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("Failed to update last login", zap.Int64("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLogin = &now
	}

	return s.authResult(ctx, user)
}

// Refresh re-issues a pair from a refresh token. Old tokens are not revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	claims, err := s.tokens.Parse(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, appError(domainErrors.ErrInvalidToken, "")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Internal("failed to refresh token", err)
	}
	if user == nil {
		return nil, appError(domainErrors.ErrInvalidToken, "")
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, apperrors.Internal("failed to refresh token", err)
	}
	return pair, nil
}

// Logout only records the timestamp
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.userRepo.UpdateLastLogout(ctx, userID, s.now()); err != nil {
		return appError(err, "failed to logout")
	}
	return nil
}

// Me returns the user with the company attached
func (s *AuthService) Me(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, appError(domainErrors.ErrUserNotFound, "")
	}

	out := entity.NewUser(user)
	company, err := s.companyOf(ctx, user)
	if err != nil {
		return nil, apperrors.Internal("failed to load user", err)
	}
	out.Company = entity.NewCompany(company)
	return out, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *entity.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return apperrors.Internal("failed to change password", err)
	}
	if user == nil {
		return appError(domainErrors.ErrUserNotFound, "")
	}
	if !CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return appError(domainErrors.ErrWrongPassword, "")
	}
	if len(req.NewPassword) < MinPasswordLength {
		return appError(domainErrors.ErrPasswordTooShort, "")
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.Internal("failed to change password", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return appError(err, "failed to change password")
	}

	s.logger.Info("Password changed", zap.Int64("user_id", userID))
	return nil
}

func (s *AuthService) CheckUser(ctx context.Context, email string) (*entity.UserStatus, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, apperrors.Internal("failed to check user", err)
	}
	if user == nil {
		return &entity.UserStatus{}, nil
	}
	return &entity.UserStatus{Exists: true, HasCompany: user.CompanyID != nil}, nil
}

// PreCheckoutRegister creates the user and its company before the buyer pays
func (s *AuthService) PreCheckoutRegister(ctx context.Context, req *entity.PreCheckoutRegisterRequest) (*entity.AuthResult, error) {
	email := normalizeEmail(req.Email)
	if len(req.Password) < MinPasswordLength {
		return nil, appError(domainErrors.ErrPasswordTooShort, "")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("failed to register", err)
	}
	if existing != nil {
		return nil, appError(domainErrors.ErrEmailAlreadyExists, "")
	}

	company := companyFromInput(req.Company, email)
	found, err := s.companyRepo.FindByEmailOrCNPJ(ctx, company.Email, company.CNPJ)
	if err != nil {
		return nil, apperrors.Internal("failed to register", err)
	}
	if found != nil {
		return nil, appError(domainErrors.ErrCompanyAlreadyExists, "")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to register", err)
	}
	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if err := s.companyRepo.CreateWithOwner(ctx, company, user); err != nil {
		return nil, appError(err, "failed to register")
	}

	s.logger.Info("Pre-checkout registration completed",
		zap.Int64("user_id", user.ID),
		zap.Int64("company_id", company.ID))
	s.notifier.SendWelcome(ctx, user)

	return s.authResult(ctx, user)
}

// Claim sets the first password of an account created by a paid checkout
func (s *AuthService) Claim(ctx context.Context, token, password string) (*entity.AuthResult, error) {
	claims, err := s.tokens.Parse(token, TokenTypeClaim)
	if err != nil {
		return nil, appError(domainErrors.ErrInvalidToken, "")
	}
	if len(password) < MinPasswordLength {
		return nil, appError(domainErrors.ErrPasswordTooShort, "")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Internal("failed to claim account", err)
	}
	if user == nil {
		return nil, appError(domainErrors.ErrInvalidToken, "")
	}
	if !user.MustSetPassword {
		return nil, appError(domainErrors.ErrAccountAlreadyClaimed, "")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, apperrors.Internal("failed to claim account", err)
	}
	ok, err := s.userRepo.ClaimPassword(ctx, user.ID, hash)
	if err != nil {
		return nil, apperrors.Internal("failed to claim account", err)
	}
	if !ok {
		return nil, appError(domainErrors.ErrAccountAlreadyClaimed, "")
	}
	user.PasswordHash = hash
	user.MustSetPassword = false

	s.logger.Info("Account claimed", zap.Int64("user_id", user.ID))
	return s.authResult(ctx, user)
}

func (s *AuthService) authResult(ctx context.Context, user *model.User) (*entity.AuthResult, error) {
	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, apperrors.Internal("failed to issue tokens", err)
	}

	result := &entity.AuthResult{User: entity.NewUser(user), Tokens: pair}
	company, err := s.companyOf(ctx, user)
	if err != nil {
		s.logger.Warn("Failed to load company for user", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	result.Company = entity.NewCompany(company)
	result.User.Company = result.Company
	return result, nil
}

func (s *AuthService) companyOf(ctx context.Context, user *model.User) (*model.Company, error) {
	if user.CompanyID == nil {
		return nil, nil
	}
	company, err := s.companyRepo.GetByID(ctx, *user.CompanyID)
	if err != nil {
		return nil, err
	}
	return company, nil
}
