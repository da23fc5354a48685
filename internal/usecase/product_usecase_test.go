package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/provider"
	apperrors "github.com/fpcgarcias/site-ticketwise-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
)

// memoryCache stores JSON like the redis cache does
type memoryCache struct {
	data map[string][]byte
}

func (c *memoryCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func TestProductUseCase_ListPricesIsCached(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cache := &memoryCache{data: map[string][]byte{}}
	uc := NewProductUseCase(f.billing, f.repos.Customers, f.catalog, cache, time.Minute, "https://app.example.com", zap.NewNop())

	f.billing.On("ListPrices", mock.Anything).Return([]*stripe.Price{{
		ID:         "price_basic",
		UnitAmount: 11900,
		Currency:   stripe.CurrencyBRL,
		Product:    &stripe.Product{ID: "prod_1", Name: "TicketWise Básico"},
		Recurring:  &stripe.PriceRecurring{Interval: stripe.PriceRecurringIntervalMonth, IntervalCount: 1},
	}}, nil).Once()

	for i := 0; i < 2; i++ {
		prices, err := uc.ListPrices(ctx)
		require.NoError(t, err)
		require.Len(t, prices, 1)
		assert.Equal(t, "119.00", prices[0].Amount)
		assert.Equal(t, "basic", prices[0].PlanSlug)
		assert.Equal(t, "month", prices[0].Interval)
		assert.Equal(t, "TicketWise Básico", prices[0].ProductName)
	}
	f.billing.AssertNumberOfCalls(t, "ListPrices", 1)
}

func TestProductUseCase_CreateCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous buyer", func(t *testing.T) {
		f := newFixture(t)
		uc := NewProductUseCase(f.billing, f.repos.Customers, f.catalog, nil, 0, "https://app.example.com/", zap.NewNop())

		employees := 12
		f.billing.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(req *provider.CheckoutSessionRequest) bool {
			return req.PriceID == "price_basic" &&
				req.CustomerEmail == "buyer@example.com" &&
				req.CustomerID == "" &&
				req.ClientReferenceID == "" &&
				req.SuccessURL == "https://app.example.com/checkout/success?session_id={CHECKOUT_SESSION_ID}" &&
				req.CancelURL == "https://app.example.com/pricing" &&
				req.Metadata["company_name"] == "Acme" &&
				req.Metadata["company_employee_count"] == "12" &&
				req.Metadata["plan"] == "basic"
		})).Return(&stripe.CheckoutSession{ID: "cs_new", URL: "https://checkout.stripe.com/c/cs_new"}, nil)

		session, err := uc.CreateCheckout(ctx, &entity.CheckoutRequest{
			PriceID: "price_basic",
			Email:   "Buyer@Example.com",
			Company: &entity.CompanyInput{Name: "Acme", EmployeeCount: &employees},
		})
		require.NoError(t, err)
		assert.Equal(t, "cs_new", session.SessionID)
		f.billing.AssertExpectations(t)
	})

	t.Run("known customer", func(t *testing.T) {
		f := newFixture(t)
		uc := NewProductUseCase(f.billing, f.repos.Customers, f.catalog, nil, 0, "https://app.example.com", zap.NewNop())

		userID := int64(7)
		require.NoError(t, f.repos.Customers.Upsert(ctx, &model.StripeCustomer{StripeCustomerID: "cus_7", UserID: &userID}))

		f.billing.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(req *provider.CheckoutSessionRequest) bool {
			return req.CustomerID == "cus_7" && req.CustomerEmail == "" &&
				req.ClientReferenceID == "7" && req.Metadata["user_id"] == "7"
		})).Return(&stripe.CheckoutSession{ID: "cs_7"}, nil)

		_, err := uc.CreateCheckout(ctx, &entity.CheckoutRequest{PriceID: "price_pro", Email: "x@example.com", UserID: &userID})
		require.NoError(t, err)
	})

	t.Run("unknown price", func(t *testing.T) {
		f := newFixture(t)
		uc := NewProductUseCase(f.billing, f.repos.Customers, f.catalog, nil, 0, "", zap.NewNop())

		_, err := uc.CreateCheckout(ctx, &entity.CheckoutRequest{PriceID: "price_other"})
		assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
		f.billing.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
	})

	t.Run("vendor error", func(t *testing.T) {
		f := newFixture(t)
		uc := NewProductUseCase(f.billing, f.repos.Customers, f.catalog, nil, 0, "", zap.NewNop())

		f.billing.On("CreateCheckoutSession", mock.Anything, mock.Anything).
			Return(nil, &stripe.Error{Msg: "No such price: 'price_basic'", HTTPStatusCode: 400})

		_, err := uc.CreateCheckout(ctx, &entity.CheckoutRequest{PriceID: "price_basic"})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrUpstream, apperrors.CodeOf(err))
		assert.Contains(t, err.Error(), "No such price")
	})
}
