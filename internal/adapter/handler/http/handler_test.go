package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/middleware/auth"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/usecase"
	apperrors "github.com/fpcgarcias/site-ticketwise-sub000/pkg/errors"
	"github.com/fpcgarcias/site-ticketwise-sub000/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockAuthUseCase is a mock implementation of AuthUseCase
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*entity.AuthResult)
	return res, args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (*entity.AuthResult, error) {
	args := m.Called(ctx, email, password)
	res, _ := args.Get(0).(*entity.AuthResult)
	return res, args.Error(1)
}

func (m *MockAuthUseCase) Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	res, _ := args.Get(0).(*entity.TokenPair)
	return res, args.Error(1)
}

func (m *MockAuthUseCase) Logout(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthUseCase) Me(ctx context.Context, userID int64) (*entity.User, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).(*entity.User)
	return res, args.Error(1)
}

func (m *MockAuthUseCase) ChangePassword(ctx context.Context, userID int64, req *entity.ChangePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

func (m *MockAuthUseCase) CheckUser(ctx context.Context, email string) (*entity.UserStatus, error) {
	args := m.Called(ctx, email)
	res, _ := args.Get(0).(*entity.UserStatus)
	return res, args.Error(1)
}

func (m *MockAuthUseCase) PreCheckoutRegister(ctx context.Context, req *entity.PreCheckoutRegisterRequest) (*entity.AuthResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*entity.AuthResult)
	return res, args.Error(1)
}

func (m *MockAuthUseCase) Claim(ctx context.Context, token, password string) (*entity.AuthResult, error) {
	args := m.Called(ctx, token, password)
	res, _ := args.Get(0).(*entity.AuthResult)
	return res, args.Error(1)
}

// MockBillingUseCase is a mock implementation of BillingUseCase
type MockBillingUseCase struct {
	mock.Mock
}

func (m *MockBillingUseCase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	return m.Called(ctx, payload, signature).Error(0)
}

func (m *MockBillingUseCase) ProcessSession(ctx context.Context, sessionID string, reg *entity.Registration) (*entity.ReconcileResult, error) {
	args := m.Called(ctx, sessionID, reg)
	res, _ := args.Get(0).(*entity.ReconcileResult)
	return res, args.Error(1)
}

// MockSubscriptionUseCase is a mock implementation of SubscriptionUseCase
type MockSubscriptionUseCase struct {
	mock.Mock
}

func (m *MockSubscriptionUseCase) Get(ctx context.Context, userID int64) (*entity.Subscription, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).(*entity.Subscription)
	return res, args.Error(1)
}

func (m *MockSubscriptionUseCase) Cancel(ctx context.Context, userID int64, subscriptionID string) (*entity.Subscription, error) {
	args := m.Called(ctx, userID, subscriptionID)
	res, _ := args.Get(0).(*entity.Subscription)
	return res, args.Error(1)
}

func (m *MockSubscriptionUseCase) Reactivate(ctx context.Context, userID int64, subscriptionID string) (*entity.Subscription, error) {
	args := m.Called(ctx, userID, subscriptionID)
	res, _ := args.Get(0).(*entity.Subscription)
	return res, args.Error(1)
}

func (m *MockSubscriptionUseCase) UpdatePaymentMethod(ctx context.Context, userID int64, paymentMethodID string) (*entity.Subscription, error) {
	args := m.Called(ctx, userID, paymentMethodID)
	res, _ := args.Get(0).(*entity.Subscription)
	return res, args.Error(1)
}

func (m *MockSubscriptionUseCase) ChangePlan(ctx context.Context, userID int64, priceID, subscriptionID string) (*entity.Subscription, error) {
	args := m.Called(ctx, userID, priceID, subscriptionID)
	res, _ := args.Get(0).(*entity.Subscription)
	return res, args.Error(1)
}

func (m *MockSubscriptionUseCase) SetupIntent(ctx context.Context, userID int64) (*entity.SetupIntent, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).(*entity.SetupIntent)
	return res, args.Error(1)
}

type stubUsers map[int64]*model.User

func (s stubUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	return s[id], nil
}

type testServer struct {
	echo   *echo.Echo
	tokens *usecase.TokenService
	user   *model.User
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	e := echo.New()
	e.Validator = NewRequestValidator()
	logger.WithEchoLogger(e, zap.NewNop())

	return &testServer{
		echo:   e,
		tokens: usecase.NewTokenService(usecase.TokenConfig{Secret: "handler-secret", Issuer: "ticketwise"}),
		user:   &model.User{ID: 42, Name: "Ana", Email: "ana@example.com", Role: model.RoleUser},
	}
}

func (s *testServer) jwt() auth.JWTConfig {
	return auth.JWTConfig{Tokens: s.tokens, Users: stubUsers{s.user.ID: s.user}, Logger: zap.NewNop()}
}

func (s *testServer) do(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authed {
		pair, err := s.tokens.IssuePair(s.user)
		require.NoError(t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+pair.AccessToken)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(m *MockAuthUseCase)
		wantStatus int
		wantError  string
	}{
		{
			name: "created",
			body: `{"name":"Ana","email":"ana@example.com","password":"secret123"}`,
			setup: func(m *MockAuthUseCase) {
				m.On("Register", mock.Anything, mock.MatchedBy(func(r *entity.RegisterRequest) bool {
					return r.Email == "ana@example.com"
				})).Return(&entity.AuthResult{User: &entity.User{ID: 1, Email: "ana@example.com"}}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "short password",
			body:       `{"name":"Ana","email":"ana@example.com","password":"short"}`,
			setup:      func(m *MockAuthUseCase) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "password must be at least 8 characters",
		},
		{
			name:       "invalid email",
			body:       `{"name":"Ana","email":"nope","password":"secret123"}`,
			setup:      func(m *MockAuthUseCase) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "email must be a valid email",
		},
		{
			name: "duplicate email",
			body: `{"name":"Ana","email":"ana@example.com","password":"secret123"}`,
			setup: func(m *MockAuthUseCase) {
				m.On("Register", mock.Anything, mock.Anything).
					Return(nil, apperrors.Conflict("email already registered", nil))
			},
			wantStatus: http.StatusConflict,
			wantError:  "email already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			svc := new(MockAuthUseCase)
			tt.setup(svc)
			h := NewAuthHandler(zap.NewNop(), svc)
			srv.echo.POST("/api/auth/register", h.Register)

			rec := srv.do(t, http.MethodPost, "/api/auth/register", tt.body, false)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode(t, rec)
			if tt.wantError != "" {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tt.wantError, body["error"])
			} else {
				assert.Equal(t, true, body["success"])
				assert.NotNil(t, body["data"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_LoginFailureIsGeneric(t *testing.T) {
	srv := newTestServer(t)
	svc := new(MockAuthUseCase)
	svc.On("Login", mock.Anything, "ana@example.com", "wrong-pass").
		Return(nil, apperrors.Unauthenticated("invalid credentials", nil))
	h := NewAuthHandler(zap.NewNop(), svc)
	srv.echo.POST("/api/auth/login", h.Login)

	rec := srv.do(t, http.MethodPost, "/api/auth/login", `{"email":"ana@example.com","password":"wrong-pass"}`, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decode(t, rec)["error"])
}

func TestAuthHandler_MeRequiresToken(t *testing.T) {
	srv := newTestServer(t)
	svc := new(MockAuthUseCase)
	svc.On("Me", mock.Anything, int64(42)).Return(&entity.User{ID: 42, Email: "ana@example.com"}, nil)
	h := NewAuthHandler(zap.NewNop(), svc)
	srv.echo.GET("/api/auth/me", h.Me, auth.JWTMiddleware(srv.jwt()))

	rec := srv.do(t, http.MethodGet, "/api/auth/me", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/auth/me", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, float64(42), data["id"])
}

func TestWebhookHandler_HandleWebhook(t *testing.T) {
	payload := `{"id":"evt_1","type":"invoice.payment_succeeded"}`

	t.Run("accepted", func(t *testing.T) {
		srv := newTestServer(t)
		svc := new(MockBillingUseCase)
		svc.On("HandleWebhook", mock.Anything, []byte(payload), "t=1,v1=abc").Return(nil)
		h := NewWebhookHandler(zap.NewNop(), svc)
		srv.echo.POST("/api/stripe/webhook", h.HandleWebhook)

		req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", strings.NewReader(payload))
		req.Header.Set("Stripe-Signature", "t=1,v1=abc")
		rec := httptest.NewRecorder()
		srv.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decode(t, rec)["received"])
		svc.AssertExpectations(t)
	})

	t.Run("bad signature", func(t *testing.T) {
		srv := newTestServer(t)
		svc := new(MockBillingUseCase)
		svc.On("HandleWebhook", mock.Anything, mock.Anything, "bad").
			Return(apperrors.InvalidArgument("webhook signature verification failed", nil))
		h := NewWebhookHandler(zap.NewNop(), svc)
		srv.echo.POST("/api/stripe/webhook", h.HandleWebhook)

		req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", strings.NewReader(payload))
		req.Header.Set("Stripe-Signature", "bad")
		rec := httptest.NewRecorder()
		srv.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing signature", func(t *testing.T) {
		srv := newTestServer(t)
		svc := new(MockBillingUseCase)
		h := NewWebhookHandler(zap.NewNop(), svc)
		srv.echo.POST("/api/stripe/webhook", h.HandleWebhook)

		rec := srv.do(t, http.MethodPost, "/api/stripe/webhook", payload, false)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "HandleWebhook", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("oversized body", func(t *testing.T) {
		srv := newTestServer(t)
		svc := new(MockBillingUseCase)
		h := NewWebhookHandler(zap.NewNop(), svc)
		srv.echo.POST("/api/stripe/webhook", h.HandleWebhook)

		big := strings.Repeat("a", MaxWebhookBodyBytes+1)
		req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", strings.NewReader(big))
		req.Header.Set("Stripe-Signature", "t=1,v1=abc")
		rec := httptest.NewRecorder()
		srv.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		svc.AssertNotCalled(t, "HandleWebhook", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWebhookHandler_ProcessSession(t *testing.T) {
	srv := newTestServer(t)
	svc := new(MockBillingUseCase)
	svc.On("ProcessSession", mock.Anything, "cs_123", mock.MatchedBy(func(r *entity.Registration) bool {
		return r != nil && r.Email == "ana@example.com"
	})).Return(&entity.ReconcileResult{SessionID: "cs_123", Provisioned: true}, nil)
	h := NewWebhookHandler(zap.NewNop(), svc)
	srv.echo.POST("/api/stripe/process-session", h.ProcessSession)

	rec := srv.do(t, http.MethodPost, "/api/stripe/process-session",
		`{"session_id":"cs_123","registration":{"email":"ana@example.com","password":"secret123"}}`, false)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "cs_123", data["session_id"])
	assert.Equal(t, true, data["provisioned"])

	rec = srv.do(t, http.MethodPost, "/api/stripe/process-session", `{}`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubscriptionHandler(t *testing.T) {
	t.Run("no subscription yields null data", func(t *testing.T) {
		srv := newTestServer(t)
		svc := new(MockSubscriptionUseCase)
		svc.On("Get", mock.Anything, int64(42)).Return(nil, nil)
		h := NewSubscriptionHandler(zap.NewNop(), svc)
		srv.echo.GET("/api/subscription", h.GetCurrentSubscription, auth.JWTMiddleware(srv.jwt()))

		rec := srv.do(t, http.MethodGet, "/api/subscription", "", true)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, true, body["success"])
		data, present := body["data"]
		assert.True(t, present)
		assert.Nil(t, data)
	})

	t.Run("reactivate not scheduled", func(t *testing.T) {
		srv := newTestServer(t)
		svc := new(MockSubscriptionUseCase)
		svc.On("Reactivate", mock.Anything, int64(42), "").
			Return(nil, apperrors.InvalidArgument("subscription is not scheduled for cancellation", nil))
		h := NewSubscriptionHandler(zap.NewNop(), svc)
		srv.echo.POST("/api/subscription/reactivate", h.ReactivateSubscription, auth.JWTMiddleware(srv.jwt()))

		rec := srv.do(t, http.MethodPost, "/api/subscription/reactivate", `{}`, true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "subscription is not scheduled for cancellation", decode(t, rec)["error"])
	})

	t.Run("cancel passes subscription id", func(t *testing.T) {
		srv := newTestServer(t)
		svc := new(MockSubscriptionUseCase)
		svc.On("Cancel", mock.Anything, int64(42), "sub_1").
			Return(&entity.Subscription{ID: "sub_1", CancelAtPeriodEnd: true}, nil)
		h := NewSubscriptionHandler(zap.NewNop(), svc)
		srv.echo.POST("/api/subscription/cancel", h.CancelSubscription, auth.JWTMiddleware(srv.jwt()))

		rec := srv.do(t, http.MethodPost, "/api/subscription/cancel", `{"subscription_id":"sub_1"}`, true)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("not owned", func(t *testing.T) {
		srv := newTestServer(t)
		svc := new(MockSubscriptionUseCase)
		svc.On("ChangePlan", mock.Anything, int64(42), "price_pro", "sub_other").
			Return(nil, apperrors.Forbidden("subscription does not belong to user"))
		h := NewSubscriptionHandler(zap.NewNop(), svc)
		srv.echo.POST("/api/subscription/change-plan", h.ChangePlan, auth.JWTMiddleware(srv.jwt()))

		rec := srv.do(t, http.MethodPost, "/api/subscription/change-plan",
			`{"price_id":"price_pro","subscription_id":"sub_other"}`, true)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
