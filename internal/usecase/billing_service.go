package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	domainErrors "github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/errors"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/provider"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/repository"
	apperrors "github.com/fpcgarcias/site-ticketwise-sub000/pkg/errors"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// BillingRepositories groups the tables touched by reconciliation
type BillingRepositories struct {
	Users         repository.UserRepository
	Companies     repository.CompanyRepository
	Customers     repository.StripeCustomerRepository
	Subscriptions repository.StripeSubscriptionRepository
	Orders        repository.StripeOrderRepository
	Events        repository.WebhookEventRepository
}

// BillingService mirrors Stripe state into the local tables. Every write is an
// upsert keyed on the Stripe id, so the webhook path, the process-session path
// and retries converge on the same rows.
type BillingService struct {
	billing  provider.BillingProvider
	repos    BillingRepositories
	tokens   *TokenService
	notifier *NotificationService
	catalog  *Catalog
	logger   *zap.Logger
}

func NewBillingService(
	billing provider.BillingProvider,
	repos BillingRepositories,
	tokens *TokenService,
	notifier *NotificationService,
	catalog *Catalog,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		billing:  billing,
		repos:    repos,
		tokens:   tokens,
		notifier: notifier,
		catalog:  catalog,
		logger:   logger,
	}
}

// HandleWebhook verifies and processes one delivery. Only a bad signature is
// reported to the caller; processing failures are recorded for retry.
func (s *BillingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.billing == nil {
		return appError(domainErrors.ErrBillingDisabled, "")
	}

	event, err := s.billing.ConstructEvent(payload, signature)
	if err != nil {
		webhookEventsTotal.WithLabelValues("unknown", outcomeRejected).Inc()
		s.logger.Warn("Webhook signature verification failed", zap.Error(err))
		return apperrors.InvalidArgument("webhook signature verification failed", err)
	}

	eventType := string(event.Type)
	log := s.logger.With(zap.String("event_id", event.ID), zap.String("event_type", eventType))
	log.Info("Webhook event received")

	record := &model.StripeWebhookEvent{
		EventID:    event.ID,
		EventType:  eventType,
		Status:     model.WebhookStatusReceived,
		Payload:    datatypes.JSON(payload),
		APIVersion: event.APIVersion,
	}
	if event.Created > 0 {
		created := time.Unix(event.Created, 0).UTC()
		record.StripeCreatedAt = &created
	}

	logged := true
	if err := s.repos.Events.Record(ctx, record); err != nil {
		// processing still goes ahead; the upserts make it safe
		log.Error("Failed to record webhook event", zap.Error(err))
		logged = false
	} else {
		stored, err := s.repos.Events.GetByEventID(ctx, event.ID)
		if err != nil {
			log.Warn("Failed to load webhook event", zap.Error(err))
		} else if stored != nil && stored.Status == model.WebhookStatusProcessed {
			webhookEventsTotal.WithLabelValues(eventType, outcomeDuplicate).Inc()
			log.Info("Webhook event already processed")
			return nil
		}
	}

	s.process(ctx, event, logged, log)
	return nil
}

// ReplayEvent reprocesses a stored event that failed earlier
func (s *BillingService) ReplayEvent(ctx context.Context, record *model.StripeWebhookEvent) error {
	var event stripe.Event
	if err := json.Unmarshal(record.Payload, &event); err != nil {
		if markErr := s.repos.Events.MarkFailed(ctx, record.EventID, err); markErr != nil {
			s.logger.Error("Failed to mark webhook as failed", zap.String("event_id", record.EventID), zap.Error(markErr))
		}
		return fmt.Errorf("failed to decode stored event %s: %w", record.EventID, err)
	}

	log := s.logger.With(zap.String("event_id", event.ID), zap.String("event_type", string(event.Type)))
	webhookEventsTotal.WithLabelValues(string(event.Type), outcomeRetried).Inc()
	log.Info("Replaying webhook event", zap.Int("attempts", record.Attempts))
	return s.process(ctx, event, true, log)
}

func (s *BillingService) process(ctx context.Context, event stripe.Event, logged bool, log *zap.Logger) error {
	eventType := string(event.Type)
	err := s.HandleEvent(ctx, event)
	if err != nil {
		webhookEventsTotal.WithLabelValues(eventType, outcomeFailed).Inc()
		log.Error("Webhook event processing failed", zap.Error(err))
		if logged {
			if markErr := s.repos.Events.MarkFailed(ctx, event.ID, err); markErr != nil {
				log.Error("Failed to mark webhook as failed", zap.Error(markErr))
			}
		}
		return err
	}

	webhookEventsTotal.WithLabelValues(eventType, outcomeProcessed).Inc()
	if logged {
		if markErr := s.repos.Events.MarkProcessed(ctx, event.ID); markErr != nil {
			log.Error("Failed to mark webhook as processed", zap.Error(markErr))
		}
	}
	return nil
}

// HandleEvent routes a verified event to its handler
func (s *BillingService) HandleEvent(ctx context.Context, event stripe.Event) error {
	if event.Data == nil {
		return fmt.Errorf("event %s has no data", event.ID)
	}
	raw := event.Data.Raw

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted, stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(raw, &session); err != nil {
			return fmt.Errorf("failed to parse checkout session: %w", err)
		}
		_, err := s.reconcileSession(ctx, &session, nil)
		return err

	case stripe.EventTypeCustomerSubscriptionCreated,
		stripe.EventTypeCustomerSubscriptionUpdated,
		stripe.EventTypeCustomerSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(raw, &sub); err != nil {
			return fmt.Errorf("failed to parse subscription: %w", err)
		}
		_, err := s.syncSubscription(ctx, &sub)
		return err

	case stripe.EventTypeInvoicePaymentSucceeded, stripe.EventTypeInvoicePaymentFailed:
		var invoice stripe.Invoice
		if err := json.Unmarshal(raw, &invoice); err != nil {
			return fmt.Errorf("failed to parse invoice: %w", err)
		}
		return s.handleInvoice(ctx, &invoice, event.Type == stripe.EventTypeInvoicePaymentFailed)

	case stripe.EventTypeCustomerUpdated:
		var customer stripe.Customer
		if err := json.Unmarshal(raw, &customer); err != nil {
			return fmt.Errorf("failed to parse customer: %w", err)
		}
		_, err := s.syncCustomer(ctx, CustomerObject(&customer), nil)
		return err

	case stripe.EventTypePaymentMethodAttached:
		var pm stripe.PaymentMethod
		if err := json.Unmarshal(raw, &pm); err != nil {
			return fmt.Errorf("failed to parse payment method: %w", err)
		}
		return s.handlePaymentMethodAttached(ctx, &pm)

	default:
		s.logger.Debug("Unhandled webhook event type", zap.String("event_type", string(event.Type)))
		return nil
	}
}

// ProcessSession is the manual reconciliation path for a completed checkout
func (s *BillingService) ProcessSession(ctx context.Context, sessionID string, reg *entity.Registration) (*entity.ReconcileResult, error) {
	if s.billing == nil {
		return nil, appError(domainErrors.ErrBillingDisabled, "")
	}

	session, err := s.billing.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		s.logger.Error("Failed to fetch checkout session", zap.String("session_id", sessionID), zap.Error(err))
		return nil, vendorError(err)
	}
	if session.Status != stripe.CheckoutSessionStatusComplete {
		return nil, apperrors.InvalidArgument("checkout session is not complete", nil)
	}

	result, err := s.reconcileSession(ctx, session, reg)
	if err != nil {
		return nil, appError(err, "failed to reconcile checkout session")
	}
	return result, nil
}

// reconcileSession runs the checkout.session.completed steps. Each step is
// isolated: a failure is logged and the remaining steps still run.
func (s *BillingService) reconcileSession(ctx context.Context, session *stripe.CheckoutSession, reg *entity.Registration) (*entity.ReconcileResult, error) {
	log := s.logger.With(zap.String("session_id", session.ID))
	result := &entity.ReconcileResult{SessionID: session.ID}
	var errs []error

	hint := userIDHint(session.Metadata, session.ClientReferenceID)

	// customer first: it is the link between the Stripe buyer and a local user
	ref := customerRefOf(session.Customer)
	var vendorCustomer *stripe.Customer
	if !ref.IsZero() {
		c, err := ref.resolve(ctx, s.billing)
		if err != nil {
			log.Error("Failed to resolve checkout customer", zap.Error(err))
			errs = append(errs, err)
			ref = CustomerRef{}
		} else {
			vendorCustomer = c
			ref = CustomerObject(c)
			if result.Customer, err = s.syncCustomer(ctx, ref, hint); err != nil {
				log.Error("Failed to sync checkout customer", zap.Error(err))
				errs = append(errs, err)
			}
		}
	}

	user, company, created, err := s.provision(ctx, session, vendorCustomer, reg, hint)
	if err != nil {
		log.Error("Failed to provision account from checkout", zap.Error(err))
		errs = append(errs, err)
	}
	if user != nil {
		result.User = entity.NewUser(user)
		result.Provisioned = created

		// link the customer to an account created just now or found by hint
		if !ref.IsZero() && (result.Customer == nil || result.Customer.UserID == nil) {
			if result.Customer, err = s.syncCustomer(ctx, ref, &user.ID); err != nil {
				log.Error("Failed to link customer to user", zap.Int64("user_id", user.ID), zap.Error(err))
				errs = append(errs, err)
			}
		}
	}
	result.Company = entity.NewCompany(company)

	if session.Subscription != nil && session.Subscription.ID != "" {
		sub, err := s.billing.GetSubscription(ctx, session.Subscription.ID)
		if err != nil {
			log.Error("Failed to fetch checkout subscription",
				zap.String("stripe_subscription_id", session.Subscription.ID),
				zap.Error(err))
			errs = append(errs, err)
		} else if result.Subscription, err = s.syncSubscription(ctx, sub); err != nil {
			errs = append(errs, err)
		}
	}

	// the order row is written whatever happened above
	order := &model.StripeOrder{
		CheckoutSessionID: stripe.String(session.ID),
		StripeCustomerID:  ref.ID(),
		AmountSubtotal:    session.AmountSubtotal,
		AmountTotal:       session.AmountTotal,
		Currency:          string(session.Currency),
		PaymentStatus:     string(session.PaymentStatus),
		Status:            string(session.Status),
	}
	switch {
	case user != nil:
		order.UserID = &user.ID
	case result.Customer != nil:
		order.UserID = result.Customer.UserID
	}
	if order.StripeCustomerID == "" && session.Customer != nil {
		order.StripeCustomerID = session.Customer.ID
	}
	if err := s.repos.Orders.UpsertByCheckoutSession(ctx, order); err != nil {
		log.Error("Failed to upsert checkout order", zap.Error(err))
		errs = append(errs, err)
	} else {
		result.Order = order
	}

	log.Info("Checkout session reconciled",
		zap.String("stripe_customer_id", ref.ID()),
		zap.Bool("provisioned", result.Provisioned),
		zap.Int("errors", len(errs)))
	return result, errors.Join(errs...)
}

// provision resolves the buyer to a local user, creating one if needed, and
// creates the company when the checkout carried one. A user that already has
// a company is never given a second one. created reports whether a user or a
// company was inserted by this call.
func (s *BillingService) provision(
	ctx context.Context,
	session *stripe.CheckoutSession,
	customer *stripe.Customer,
	reg *entity.Registration,
	hint *int64,
) (user *model.User, company *model.Company, created bool, err error) {
	email := checkoutEmail(session, customer, reg)
	log := s.logger.With(zap.String("session_id", session.ID))

	if hint != nil {
		if user, err = s.repos.Users.GetByID(ctx, *hint); err != nil {
			return nil, nil, false, err
		}
	}
	if user == nil && email != "" {
		if user, err = s.repos.Users.GetByEmail(ctx, email); err != nil {
			return nil, nil, false, err
		}
	}
	if user == nil {
		if email == "" {
			log.Warn("Checkout has no email; skipping account provisioning")
			return nil, nil, false, nil
		}
		if user, created, err = s.createCheckoutUser(ctx, session, customer, reg, email); err != nil {
			return nil, nil, false, err
		}
		if user == nil {
			return nil, nil, false, fmt.Errorf("no account resolved for %s", email)
		}
	}

	if user.CompanyID != nil {
		if company, err = s.repos.Companies.GetByID(ctx, *user.CompanyID); err != nil {
			return user, nil, created, err
		}
		log.Debug("User already has a company", zap.Int64("user_id", user.ID))
		return user, company, created, nil
	}

	input := companyFromMetadata(session.Metadata)
	if reg != nil && reg.Company != nil {
		input = reg.Company
	}
	if input == nil {
		return user, nil, created, nil
	}

	company = companyFromInput(input, user.Email)
	company.PlanContracted = s.planName(company.PlanContracted, session)

	existing, err := s.repos.Companies.FindByEmailOrCNPJ(ctx, company.Email, company.CNPJ)
	if err != nil {
		return user, nil, created, err
	}
	if existing != nil {
		log.Info("Company already exists; not creating another",
			zap.Int64("company_id", existing.ID),
			zap.Int64("user_id", user.ID))
		return user, nil, created, nil
	}

	err = s.repos.Companies.CreateForUser(ctx, company, user.ID, model.RoleCompanyAdmin)
	if errors.Is(err, domainErrors.ErrUserAlreadyHasCompany) {
		// a concurrent delivery attached a company first
		refreshed, getErr := s.repos.Users.GetByID(ctx, user.ID)
		if getErr != nil || refreshed == nil {
			return user, nil, created, getErr
		}
		return refreshed, nil, created, nil
	}
	if err != nil {
		return user, nil, created, err
	}

	user.CompanyID = &company.ID
	user.Role = model.RoleCompanyAdmin
	provisionedAccountsTotal.WithLabelValues("company").Inc()
	log.Info("Company provisioned from checkout",
		zap.Int64("company_id", company.ID),
		zap.Int64("user_id", user.ID))
	return user, company, true, nil
}

// createCheckoutUser creates the buyer's account. Without a password from the
// client the account gets an unusable hash and a claim email.
func (s *BillingService) createCheckoutUser(
	ctx context.Context,
	session *stripe.CheckoutSession,
	customer *stripe.Customer,
	reg *entity.Registration,
	email string,
) (*model.User, bool, error) {
	user := &model.User{
		Name:  checkoutName(session, customer, reg, email),
		Email: email,
		Role:  model.RoleUser,
	}

	var err error
	if reg != nil && reg.Password != "" {
		if len(reg.Password) < MinPasswordLength {
			return nil, false, domainErrors.ErrPasswordTooShort
		}
		user.PasswordHash, err = HashPassword(reg.Password)
	} else {
		user.PasswordHash, err = UnusablePasswordHash()
		user.MustSetPassword = true
	}
	if err != nil {
		return nil, false, err
	}

	if err := s.repos.Users.Create(ctx, user); err != nil {
		if errors.Is(err, domainErrors.ErrEmailAlreadyExists) {
			// created by a concurrent delivery of the same checkout
			existing, getErr := s.repos.Users.GetByEmail(ctx, email)
			if getErr != nil {
				return nil, false, getErr
			}
			if existing == nil {
				// the unique index still holds a soft-deleted row
				return nil, false, domainErrors.ErrEmailOfDeletedUser
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	provisionedAccountsTotal.WithLabelValues("user").Inc()
	s.logger.Info("User provisioned from checkout",
		zap.String("session_id", session.ID),
		zap.Int64("user_id", user.ID),
		zap.Bool("must_set_password", user.MustSetPassword))

	if user.MustSetPassword {
		token, expiresAt, err := s.tokens.IssueClaimToken(user)
		if err != nil {
			s.logger.Error("Failed to issue claim token", zap.Int64("user_id", user.ID), zap.Error(err))
		} else {
			s.notifier.SendClaimAccount(ctx, user, token, expiresAt)
		}
	} else {
		s.notifier.SendWelcome(ctx, user)
	}
	return user, true, nil
}

// syncCustomer is the only writer of stripe_customers. user_id comes from the
// local user with the same email, else from userHint.
func (s *BillingService) syncCustomer(ctx context.Context, ref CustomerRef, userHint *int64) (*model.StripeCustomer, error) {
	customer, err := ref.resolve(ctx, s.billing)
	if err != nil {
		return nil, err
	}

	row := &model.StripeCustomer{
		StripeCustomerID: customer.ID,
		Email:            normalizeEmail(customer.Email),
		Name:             customer.Name,
	}

	if row.Email != "" {
		user, err := s.repos.Users.GetByEmail(ctx, row.Email)
		if err != nil {
			return nil, err
		}
		if user != nil {
			row.UserID = &user.ID
		}
	}
	if row.UserID == nil && userHint != nil {
		user, err := s.repos.Users.GetByID(ctx, *userHint)
		if err != nil {
			return nil, err
		}
		if user != nil {
			row.UserID = &user.ID
		}
	}

	if err := s.repos.Customers.Upsert(ctx, row); err != nil {
		return nil, err
	}

	stored, err := s.repos.Customers.GetByStripeID(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Customer synced",
		zap.String("stripe_customer_id", customer.ID),
		zap.Bool("linked", stored != nil && stored.UserID != nil))
	return stored, nil
}

// syncSubscription upserts the subscription row from a Stripe object. Without
// a local customer row the subscription cannot be attributed and is skipped.
func (s *BillingService) syncSubscription(ctx context.Context, sub *stripe.Subscription) (*model.StripeSubscription, error) {
	log := s.logger.With(zap.String("stripe_subscription_id", sub.ID))
	if sub.Customer == nil || sub.Customer.ID == "" {
		log.Warn("Subscription has no customer; skipping")
		return nil, nil
	}
	customerID := sub.Customer.ID
	log = log.With(zap.String("stripe_customer_id", customerID))

	var syncErr error
	vendorCustomer, err := customerRefOf(sub.Customer).resolve(ctx, s.billing)
	if err != nil {
		syncErr = err
	} else {
		_, syncErr = s.syncCustomer(ctx, CustomerObject(vendorCustomer), nil)
	}
	if syncErr != nil {
		log.Error("Failed to sync subscription customer", zap.Error(syncErr))
	}

	mapping, err := s.repos.Customers.GetByStripeID(ctx, customerID)
	if err != nil {
		return nil, errors.Join(syncErr, err)
	}
	if mapping == nil {
		log.Warn("No customer mapping for subscription; skipping")
		return nil, syncErr
	}

	brand, last4 := s.paymentMethodCard(ctx, sub, vendorCustomer)
	row := &model.StripeSubscription{
		StripeSubscriptionID: sub.ID,
		UserID:               mapping.UserID,
		StripeCustomerID:     customerID,
		Status:               string(sub.Status),
		PriceID:              subscriptionPriceID(sub),
		CurrentPeriodStart:   unixTime(sub.CurrentPeriodStart),
		CurrentPeriodEnd:     unixTime(sub.CurrentPeriodEnd),
		CancelAtPeriodEnd:    sub.CancelAtPeriodEnd,
		PaymentMethodBrand:   brand,
		PaymentMethodLast4:   last4,
	}
	if err := s.repos.Subscriptions.Upsert(ctx, row); err != nil {
		return nil, err
	}

	stored, err := s.repos.Subscriptions.GetByStripeID(ctx, sub.ID)
	if err != nil {
		return nil, err
	}
	log.Info("Subscription synced",
		zap.String("status", row.Status),
		zap.Bool("cancel_at_period_end", row.CancelAtPeriodEnd))
	return stored, nil
}

// paymentMethodCard prefers the subscription default and falls back to the
// customer's invoice default. Lookups that fail leave the card empty.
func (s *BillingService) paymentMethodCard(ctx context.Context, sub *stripe.Subscription, customer *stripe.Customer) (string, string) {
	pm := sub.DefaultPaymentMethod
	if pm == nil && customer != nil && customer.InvoiceSettings != nil {
		pm = customer.InvoiceSettings.DefaultPaymentMethod
	}
	if pm == nil || pm.ID == "" && pm.Card == nil {
		return "", ""
	}
	if pm.Card == nil {
		fetched, err := s.billing.GetPaymentMethod(ctx, pm.ID)
		if err != nil {
			s.logger.Warn("Failed to fetch payment method",
				zap.String("payment_method_id", pm.ID),
				zap.Error(err))
			return "", ""
		}
		pm = fetched
	}
	if pm.Card == nil {
		return "", ""
	}
	return string(pm.Card.Brand), pm.Card.Last4
}

// handleInvoice records one order row per invoice payment attempt, keyed by
// payment intent or by invoice id when there is none.
func (s *BillingService) handleInvoice(ctx context.Context, invoice *stripe.Invoice, failed bool) error {
	log := s.logger.With(zap.String("invoice_id", invoice.ID))
	var errs []error

	customerID := ""
	var userID *int64
	customerEmail := normalizeEmail(invoice.CustomerEmail)
	customerName := invoice.CustomerName
	if invoice.Customer != nil && invoice.Customer.ID != "" {
		customerID = invoice.Customer.ID
		customer, err := s.syncCustomer(ctx, customerRefOf(invoice.Customer), nil)
		if err != nil {
			log.Error("Failed to sync invoice customer", zap.String("stripe_customer_id", customerID), zap.Error(err))
			errs = append(errs, err)
		} else if customer != nil {
			userID = customer.UserID
			if customerEmail == "" {
				customerEmail = customer.Email
			}
			if customerName == "" {
				customerName = customer.Name
			}
		}
	}

	key := invoice.ID
	if invoice.PaymentIntent != nil && invoice.PaymentIntent.ID != "" {
		key = invoice.PaymentIntent.ID
	}

	order := &model.StripeOrder{
		PaymentIntentID:  stripe.String(key),
		InvoiceID:        stripe.String(invoice.ID),
		StripeCustomerID: customerID,
		UserID:           userID,
		AmountSubtotal:   invoice.Subtotal,
		AmountTotal:      invoice.AmountPaid,
		Currency:         string(invoice.Currency),
		PaymentStatus:    "paid",
		Status:           string(invoice.Status),
	}
	if failed {
		order.AmountTotal = invoice.AmountDue
		order.PaymentStatus = "unpaid"
		order.Status = "failed"
	}

	if err := s.repos.Orders.UpsertByPaymentIntent(ctx, order); err != nil {
		log.Error("Failed to upsert invoice order", zap.Error(err))
		errs = append(errs, err)
	} else {
		log.Info("Invoice order recorded",
			zap.String("payment_intent_id", key),
			zap.Int64("amount_total", order.AmountTotal),
			zap.String("status", order.Status))
	}

	if failed && customerEmail != "" {
		s.notifier.SendPaymentFailed(ctx, customerEmail, customerName, invoice.AmountDue, string(invoice.Currency))
	}
	return errors.Join(errs...)
}

// handlePaymentMethodAttached refreshes the card shown on every active
// subscription of the customer
func (s *BillingService) handlePaymentMethodAttached(ctx context.Context, pm *stripe.PaymentMethod) error {
	if pm.Customer == nil || pm.Customer.ID == "" {
		return nil
	}

	subs, err := s.billing.ListActiveSubscriptions(ctx, pm.Customer.ID)
	if err != nil {
		return fmt.Errorf("failed to list subscriptions for %s: %w", pm.Customer.ID, err)
	}

	var errs []error
	for _, sub := range subs {
		if _, err := s.syncSubscription(ctx, sub); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *BillingService) planName(requested string, session *stripe.CheckoutSession) string {
	if plan := s.catalog.PlanBySlug(requested); plan != nil {
		return plan.Name
	}
	if requested != "" {
		return requested
	}
	if session.Subscription != nil {
		if plan := s.catalog.PlanByPrice(subscriptionPriceID(session.Subscription)); plan != nil {
			return plan.Name
		}
	}
	return ""
}

// checkoutEmail prefers what Stripe collected over what the client sent
func checkoutEmail(session *stripe.CheckoutSession, customer *stripe.Customer, reg *entity.Registration) string {
	candidates := []string{}
	if session.CustomerDetails != nil {
		candidates = append(candidates, session.CustomerDetails.Email)
	}
	candidates = append(candidates, session.CustomerEmail)
	if customer != nil {
		candidates = append(candidates, customer.Email)
	}
	if reg != nil {
		candidates = append(candidates, reg.Email)
	}
	for _, c := range candidates {
		if e := normalizeEmail(c); e != "" {
			return e
		}
	}
	return ""
}

func checkoutName(session *stripe.CheckoutSession, customer *stripe.Customer, reg *entity.Registration, email string) string {
	candidates := []string{}
	if reg != nil {
		candidates = append(candidates, reg.Name)
	}
	candidates = append(candidates, session.Metadata[metaRegistrantName])
	if session.CustomerDetails != nil {
		candidates = append(candidates, session.CustomerDetails.Name)
	}
	if customer != nil {
		candidates = append(candidates, customer.Name)
	}
	for _, c := range candidates {
		if n := strings.TrimSpace(c); n != "" {
			return n
		}
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}

func subscriptionPriceID(sub *stripe.Subscription) string {
	if sub.Items == nil {
		return ""
	}
	for _, item := range sub.Items.Data {
		if item != nil && item.Price != nil && item.Price.ID != "" {
			return item.Price.ID
		}
	}
	return ""
}

func subscriptionItemID(sub *stripe.Subscription) string {
	if sub.Items == nil {
		return ""
	}
	for _, item := range sub.Items.Data {
		if item != nil && item.ID != "" {
			return item.ID
		}
	}
	return ""
}

func unixTime(ts int64) *time.Time {
	if ts <= 0 {
		return nil
	}
	t := time.Unix(ts, 0).UTC()
	return &t
}
