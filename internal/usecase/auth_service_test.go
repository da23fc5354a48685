package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	apperrors "github.com/fpcgarcias/site-ticketwise-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newAuthService(f *fixture) *AuthService {
	return NewAuthService(f.repos.Users, f.repos.Companies, f.tokens, f.notifier, zap.NewNop())
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newAuthService(f)

	result, err := svc.Register(ctx, &entity.RegisterRequest{
		Name:     " Ana ",
		Email:    "Ana@Example.com",
		Password: "senha-forte",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", result.User.Email)
	assert.Equal(t, "Ana", result.User.Name)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.Equal(t, []string{entity.TemplateWelcome}, f.publisher.templates())

	stored, err := f.repos.Users.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "senha-forte", stored.PasswordHash)

	missingCompany := int64(404)
	tests := []struct {
		name     string
		req      *entity.RegisterRequest
		wantCode string
	}{
		{
			name:     "duplicate email",
			req:      &entity.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "outra-senha"},
			wantCode: apperrors.ErrConflict,
		},
		{
			name:     "admin role",
			req:      &entity.RegisterRequest{Name: "Root", Email: "root@example.com", Password: "senha-forte", Role: "admin"},
			wantCode: apperrors.ErrUnauthorized,
		},
		{
			name:     "unknown company",
			req:      &entity.RegisterRequest{Name: "Bia", Email: "bia@example.com", Password: "senha-forte", CompanyID: &missingCompany},
			wantCode: apperrors.ErrNotFound,
		},
		{
			name:     "short password",
			req:      &entity.RegisterRequest{Name: "Bia", Email: "bia@example.com", Password: "curta"},
			wantCode: apperrors.ErrInvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
		})
	}
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newAuthService(f)

	_, err := svc.Register(ctx, &entity.RegisterRequest{Name: "Caio", Email: "caio@example.com", Password: "senha-correta"})
	require.NoError(t, err)

	_, unknownErr := svc.Login(ctx, "ninguem@example.com", "senha-correta")
	_, wrongErr := svc.Login(ctx, "caio@example.com", "senha-errada")
	require.Error(t, unknownErr)
	require.Error(t, wrongErr)

	assert.Equal(t, apperrors.ErrUnauthenticated, apperrors.CodeOf(unknownErr))
	assert.Equal(t, apperrors.CodeOf(unknownErr), apperrors.CodeOf(wrongErr))
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())

	result, err := svc.Login(ctx, " CAIO@example.com ", "senha-correta")
	require.NoError(t, err)
	assert.NotNil(t, result.User.LastLogin)
}

func TestAuthService_RefreshAndClaim(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newAuthService(f)

	registered, err := svc.Register(ctx, &entity.RegisterRequest{Name: "Duda", Email: "duda@example.com", Password: "senha-forte"})
	require.NoError(t, err)

	pair, err := svc.Refresh(ctx, registered.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	_, err = svc.Refresh(ctx, registered.Tokens.AccessToken)
	assert.Equal(t, apperrors.ErrUnauthenticated, apperrors.CodeOf(err))

	hash, err := UnusablePasswordHash()
	require.NoError(t, err)
	provisioned := &model.User{Name: "Edu", Email: "edu@example.com", PasswordHash: hash, Role: model.RoleUser, MustSetPassword: true}
	require.NoError(t, f.repos.Users.Create(ctx, provisioned))

	token, _, err := f.tokens.IssueClaimToken(provisioned)
	require.NoError(t, err)

	claimed, err := svc.Claim(ctx, token, "minha-senha")
	require.NoError(t, err)
	assert.False(t, claimed.User.MustSetPassword)

	_, err = svc.Login(ctx, "edu@example.com", "minha-senha")
	require.NoError(t, err)

	_, err = svc.Claim(ctx, token, "outra-senha")
	assert.Equal(t, apperrors.ErrConflict, apperrors.CodeOf(err))
}

func TestAuthService_PreCheckoutRegister(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newAuthService(f)

	req := &entity.PreCheckoutRegisterRequest{
		Name:     "Fabi",
		Email:    "fabi@loja.com.br",
		Password: "senha-forte",
		Company:  &entity.CompanyInput{Name: "Loja", CNPJ: "98.765.432/0001-10"},
	}
	result, err := svc.PreCheckoutRegister(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, result.Company)
	assert.Equal(t, "98765432000110", result.Company.CNPJ)
	assert.Equal(t, string(model.RoleCompanyAdmin), result.User.Role)

	_, err = svc.PreCheckoutRegister(ctx, req)
	assert.Equal(t, apperrors.ErrConflict, apperrors.CodeOf(err))

	// same CNPJ under another email
	req.Email = "outra@loja.com.br"
	_, err = svc.PreCheckoutRegister(ctx, req)
	assert.Equal(t, apperrors.ErrConflict, apperrors.CodeOf(err))
	assert.Equal(t, int64(1), f.count(t, &model.Company{}))
}

func TestAuthService_PreCheckoutRegisterRollsBackUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newAuthService(f)

	err := f.db.Callback().Create().Before("gorm:create").Register("test:fail_companies", func(tx *gorm.DB) {
		if tx.Statement.Table == "companies" {
			_ = tx.AddError(errors.New("disk full"))
		}
	})
	require.NoError(t, err)

	req := &entity.PreCheckoutRegisterRequest{
		Name:     "Hugo",
		Email:    "hugo@loja.com.br",
		Password: "senha-forte",
		Company:  &entity.CompanyInput{Name: "Loja do Hugo"},
	}
	result, err := svc.PreCheckoutRegister(ctx, req)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrInternal, apperrors.CodeOf(err))
	assert.Equal(t, int64(0), f.count(t, &model.User{}))
	assert.Equal(t, int64(0), f.count(t, &model.Company{}))

	// the email stays free for a retry
	require.NoError(t, f.db.Callback().Create().Remove("test:fail_companies"))
	result, err = svc.PreCheckoutRegister(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, result.Company)
	assert.Equal(t, string(model.RoleCompanyAdmin), result.User.Role)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newAuthService(f)

	registered, err := svc.Register(ctx, &entity.RegisterRequest{Name: "Gil", Email: "gil@example.com", Password: "senha-antiga"})
	require.NoError(t, err)
	userID := registered.User.ID

	err = svc.ChangePassword(ctx, userID, &entity.ChangePasswordRequest{CurrentPassword: "errada", NewPassword: "senha-nova"})
	assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))

	require.NoError(t, svc.ChangePassword(ctx, userID, &entity.ChangePasswordRequest{CurrentPassword: "senha-antiga", NewPassword: "senha-nova"}))
	_, err = svc.Login(ctx, "gil@example.com", "senha-nova")
	assert.NoError(t, err)

	status, err := svc.CheckUser(ctx, "gil@example.com")
	require.NoError(t, err)
	assert.True(t, status.Exists)
	assert.False(t, status.HasCompany)
}
