package usecase

import (
	"context"
	"encoding/json"
	"testing"

	repoimpl "github.com/fpcgarcias/site-ticketwise-sub000/internal/adapter/repository"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/provider"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockBillingProvider is a mock implementation of provider.BillingProvider
type MockBillingProvider struct {
	mock.Mock
}

var _ provider.BillingProvider = (*MockBillingProvider)(nil)

func (m *MockBillingProvider) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	args := m.Called(payload, signature)
	return args.Get(0).(stripe.Event), args.Error(1)
}

func (m *MockBillingProvider) GetCustomer(ctx context.Context, customerID string) (*stripe.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Customer), args.Error(1)
}

func (m *MockBillingProvider) CreateCustomer(ctx context.Context, email, name string, metadata map[string]string) (*stripe.Customer, error) {
	args := m.Called(ctx, email, name, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Customer), args.Error(1)
}

func (m *MockBillingProvider) GetSubscription(ctx context.Context, subscriptionID string) (*stripe.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Subscription), args.Error(1)
}

func (m *MockBillingProvider) ListActiveSubscriptions(ctx context.Context, customerID string) ([]*stripe.Subscription, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stripe.Subscription), args.Error(1)
}

func (m *MockBillingProvider) SetCancelAtPeriodEnd(ctx context.Context, subscriptionID string, cancel bool) (*stripe.Subscription, error) {
	args := m.Called(ctx, subscriptionID, cancel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Subscription), args.Error(1)
}

func (m *MockBillingProvider) ChangeSubscriptionPrice(ctx context.Context, subscriptionID, itemID, priceID string) (*stripe.Subscription, error) {
	args := m.Called(ctx, subscriptionID, itemID, priceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Subscription), args.Error(1)
}

func (m *MockBillingProvider) SetDefaultPaymentMethod(ctx context.Context, customerID, subscriptionID, paymentMethodID string) (*stripe.Subscription, error) {
	args := m.Called(ctx, customerID, subscriptionID, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Subscription), args.Error(1)
}

func (m *MockBillingProvider) GetPaymentMethod(ctx context.Context, paymentMethodID string) (*stripe.PaymentMethod, error) {
	args := m.Called(ctx, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.PaymentMethod), args.Error(1)
}

func (m *MockBillingProvider) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) (*stripe.PaymentMethod, error) {
	args := m.Called(ctx, paymentMethodID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.PaymentMethod), args.Error(1)
}

func (m *MockBillingProvider) CreateSetupIntent(ctx context.Context, customerID string) (*stripe.SetupIntent, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.SetupIntent), args.Error(1)
}

func (m *MockBillingProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}

func (m *MockBillingProvider) CreateCheckoutSession(ctx context.Context, req *provider.CheckoutSessionRequest) (*stripe.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}

func (m *MockBillingProvider) ListProducts(ctx context.Context) ([]*stripe.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stripe.Product), args.Error(1)
}

func (m *MockBillingProvider) ListPrices(ctx context.Context) ([]*stripe.Price, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stripe.Price), args.Error(1)
}

// recordingPublisher keeps every notification it is handed
type recordingPublisher struct {
	sent []*entity.Notification
}

func (p *recordingPublisher) PublishNotification(_ context.Context, n *entity.Notification) error {
	p.sent = append(p.sent, n)
	return nil
}

func (p *recordingPublisher) templates() []string {
	out := make([]string, 0, len(p.sent))
	for _, n := range p.sent {
		out = append(out, n.Template)
	}
	return out
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return db
}

type fixture struct {
	db        *gorm.DB
	repos     BillingRepositories
	billing   *MockBillingProvider
	tokens    *TokenService
	publisher *recordingPublisher
	notifier  *NotificationService
	catalog   *Catalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	db := newTestDB(t)

	catalog, err := NewCatalog([]entity.Plan{
		{Slug: "basic", Name: "Básico", PriceID: "price_basic", Interval: "month"},
		{Slug: "pro", Name: "Profissional", PriceID: "price_pro", Interval: "month"},
	})
	require.NoError(t, err)

	publisher := &recordingPublisher{}
	return &fixture{
		db: db,
		repos: BillingRepositories{
			Users:         repoimpl.NewUserRepository(db, logger),
			Companies:     repoimpl.NewCompanyRepository(db, logger),
			Customers:     repoimpl.NewStripeCustomerRepository(db, logger),
			Subscriptions: repoimpl.NewStripeSubscriptionRepository(db, logger),
			Orders:        repoimpl.NewStripeOrderRepository(db, logger),
			Events:        repoimpl.NewWebhookRepository(db, logger),
		},
		billing:   &MockBillingProvider{},
		tokens:    NewTokenService(TokenConfig{Secret: "test-secret", Issuer: "ticketwise"}),
		publisher: publisher,
		notifier:  NewNotificationService(publisher, "https://app.example.com", logger),
		catalog:   catalog,
	}
}

func (f *fixture) billingService() *BillingService {
	return NewBillingService(f.billing, f.repos, f.tokens, f.notifier, f.catalog, zap.NewNop())
}

func (f *fixture) count(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

// stripeEvent wraps an object the way Stripe delivers it
func stripeEvent(t *testing.T, id string, typ stripe.EventType, object interface{}) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(object)
	require.NoError(t, err)
	return stripe.Event{
		ID:         id,
		Type:       typ,
		APIVersion: stripe.APIVersion,
		Created:    1717236000,
		Data:       &stripe.EventData{Raw: raw},
	}
}
