package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	domainErrors "github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/errors"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/provider"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/repository"
	apperrors "github.com/fpcgarcias/site-ticketwise-sub000/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
)

const (
	productsCacheKey = "catalog:products"
	pricesCacheKey   = "catalog:prices"
)

// Cache stores JSON values with a TTL
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ProductUseCase lists the Stripe catalog and starts checkouts
type ProductUseCase struct {
	billing      provider.BillingProvider
	customerRepo repository.StripeCustomerRepository
	catalog      *Catalog
	cache        Cache
	cacheTTL     time.Duration
	frontendURL  string
	logger       *zap.Logger
}

// NewProductUseCase creates a new ProductUseCase instance. billing may be nil
// when Stripe is not configured.
func NewProductUseCase(
	billing provider.BillingProvider,
	customerRepo repository.StripeCustomerRepository,
	catalog *Catalog,
	cache Cache,
	cacheTTL time.Duration,
	frontendURL string,
	logger *zap.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		billing:      billing,
		customerRepo: customerRepo,
		catalog:      catalog,
		cache:        cache,
		cacheTTL:     cacheTTL,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
		logger:       logger,
	}
}

func (u *ProductUseCase) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	if u.billing == nil {
		return nil, appError(domainErrors.ErrBillingDisabled, "")
	}

	var cached []*entity.Product
	if u.cacheGet(ctx, productsCacheKey, &cached) {
		return cached, nil
	}

	products, err := u.billing.ListProducts(ctx)
	if err != nil {
		u.logger.Error("Failed to list products", zap.Error(err))
		return nil, vendorError(err)
	}

	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		out = append(out, &entity.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Images:      p.Images,
			Metadata:    p.Metadata,
		})
	}
	u.cacheSet(ctx, productsCacheKey, out)
	return out, nil
}

func (u *ProductUseCase) ListPrices(ctx context.Context) ([]*entity.Price, error) {
	if u.billing == nil {
		return nil, appError(domainErrors.ErrBillingDisabled, "")
	}

	var cached []*entity.Price
	if u.cacheGet(ctx, pricesCacheKey, &cached) {
		return cached, nil
	}

	prices, err := u.billing.ListPrices(ctx)
	if err != nil {
		u.logger.Error("Failed to list prices", zap.Error(err))
		return nil, vendorError(err)
	}

	out := make([]*entity.Price, 0, len(prices))
	for _, p := range prices {
		out = append(out, u.toPrice(p))
	}
	u.cacheSet(ctx, pricesCacheKey, out)
	return out, nil
}

func (u *ProductUseCase) toPrice(p *stripe.Price) *entity.Price {
	price := &entity.Price{
		ID:         p.ID,
		UnitAmount: p.UnitAmount,
		Amount:     FormatAmount(p.UnitAmount, string(p.Currency)),
		Currency:   string(p.Currency),
		Nickname:   p.Nickname,
	}
	if p.Product != nil {
		price.ProductID = p.Product.ID
		price.ProductName = p.Product.Name
	}
	if p.Recurring != nil {
		price.Interval = string(p.Recurring.Interval)
		price.IntervalCount = p.Recurring.IntervalCount
	}
	if plan := u.catalog.PlanByPrice(p.ID); plan != nil {
		price.PlanSlug = plan.Slug
	}
	return price
}

// CreateCheckout starts a subscription-mode checkout session. The user id and
// company payload travel in the session metadata and are read back on completion.
func (u *ProductUseCase) CreateCheckout(ctx context.Context, req *entity.CheckoutRequest) (*entity.CheckoutSession, error) {
	if u.billing == nil {
		return nil, appError(domainErrors.ErrBillingDisabled, "")
	}
	if !u.catalog.AllowsPrice(req.PriceID) {
		return nil, appError(domainErrors.ErrUnknownPrice, "")
	}

	plan := u.catalog.PlanByPrice(req.PriceID)
	sessionReq := &provider.CheckoutSessionRequest{
		PriceID:       req.PriceID,
		CustomerEmail: normalizeEmail(req.Email),
		SuccessURL:    req.SuccessURL,
		CancelURL:     req.CancelURL,
		Metadata:      encodeCheckoutMetadata(req.UserID, strings.TrimSpace(req.Name), req.Company, plan),
	}
	if sessionReq.SuccessURL == "" {
		sessionReq.SuccessURL = u.frontendURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	}
	if sessionReq.CancelURL == "" {
		sessionReq.CancelURL = u.frontendURL + "/pricing"
	}

	if req.UserID != nil {
		sessionReq.ClientReferenceID = strconv.FormatInt(*req.UserID, 10)
		customer, err := u.customerRepo.GetByUserID(ctx, *req.UserID)
		if err != nil {
			return nil, apperrors.Internal("failed to create checkout", err)
		}
		if customer != nil {
			// Stripe rejects customer and customer_email together
			sessionReq.CustomerID = customer.StripeCustomerID
			sessionReq.CustomerEmail = ""
		}
	}

	session, err := u.billing.CreateCheckoutSession(ctx, sessionReq)
	if err != nil {
		u.logger.Error("Failed to create checkout session",
			zap.String("price_id", req.PriceID),
			zap.Error(err))
		return nil, vendorError(err)
	}

	u.logger.Info("Checkout session created",
		zap.String("session_id", session.ID),
		zap.String("price_id", req.PriceID))
	return &entity.CheckoutSession{SessionID: session.ID, URL: session.URL}, nil
}

func (u *ProductUseCase) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if u.cache == nil {
		return false
	}
	hit, err := u.cache.GetJSON(ctx, key, dest)
	if err != nil {
		u.logger.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (u *ProductUseCase) cacheSet(ctx context.Context, key string, value interface{}) {
	if u.cache == nil {
		return
	}
	if err := u.cache.SetJSON(ctx, key, value, u.cacheTTL); err != nil {
		u.logger.Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Stripe amounts for these currencies are already whole units
var zeroDecimalCurrencies = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true,
	"krw": true, "mga": true, "pyg": true, "rwf": true, "ugx": true, "vnd": true,
	"vuv": true, "xaf": true, "xof": true, "xpf": true,
}

// FormatAmount renders a Stripe minor-unit amount, e.g. 11900 brl -> "119.00"
func FormatAmount(amount int64, currency string) string {
	if zeroDecimalCurrencies[strings.ToLower(currency)] {
		return decimal.NewFromInt(amount).String()
	}
	return decimal.New(amount, -2).StringFixed(2)
}
