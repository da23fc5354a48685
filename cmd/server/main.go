package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	handlers "github.com/fpcgarcias/site-ticketwise-sub000/internal/adapter/handler/http"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/config"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/provider"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/infrastructure/cache"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/infrastructure/database"
	httpServer "github.com/fpcgarcias/site-ticketwise-sub000/internal/infrastructure/http"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/infrastructure/mail"
	notifications "github.com/fpcgarcias/site-ticketwise-sub000/internal/infrastructure/messaging"
	stripeProvider "github.com/fpcgarcias/site-ticketwise-sub000/internal/infrastructure/provider/stripe"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/middleware/auth"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/usecase"
	"github.com/fpcgarcias/site-ticketwise-sub000/pkg/logger"
	"github.com/fpcgarcias/site-ticketwise-sub000/pkg/messaging"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.DefaultZapLogger().Fatal("Failed to load config", zap.Error(err))
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		FilePath:    cfg.Log.FilePath,
		Development: cfg.Log.Development,
	})
	if err != nil {
		logger.DefaultZapLogger().Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer zapLogger.Sync()
	zapLogger = zapLogger.With(zap.String("service", cfg.Service.Name), zap.String("version", cfg.Service.Version))

	// Run database migrations
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(&cfg.Database, zapLogger); err != nil {
			zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
		}
	}

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	repos := database.NewRepositories(db, zapLogger)

	catalog, err := usecase.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		zapLogger.Fatal("Failed to load plan catalog", zap.String("path", cfg.Catalog.Path), zap.Error(err))
	}
	zapLogger.Info("Plan catalog loaded", zap.Int("plans", len(catalog.Plans())))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var workers sync.WaitGroup

	// Mail and notifications
	var mailer usecase.Mailer
	contactInbox := ""
	if cfg.SMTP.Enabled() {
		smtpMailer, err := mail.NewSMTPMailer(cfg.SMTP, zapLogger.Named("mail"))
		if err != nil {
			zapLogger.Fatal("Failed to initialize mailer", zap.Error(err))
		}
		mailer = smtpMailer
		contactInbox = cfg.SMTP.ContactTo
	} else {
		zapLogger.Warn("SMTP is not configured, emails are disabled")
		mailer = mail.NewDisabledMailer(zapLogger.Named("mail"))
	}
	dispatcher := notifications.NewDispatcher(mailer, zapLogger.Named("dispatcher"))

	var (
		redisClient  *redis.Client
		catalogCache usecase.Cache
		publisher    usecase.NotificationPublisher
		direct       *notifications.DirectPublisher
	)
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		pingCancel()
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}

		pubsub := messaging.WrapRedisClient(redisClient)
		catalogCache = cache.NewRedisCache(redisClient)
		publisher = notifications.NewRedisNotificationPublisher(pubsub, notifications.EmailChannel)

		workers.Add(1)
		go func() {
			defer workers.Done()
			if err := dispatcher.Run(ctx, pubsub, notifications.EmailChannel); err != nil {
				zapLogger.Error("Notification dispatcher failed", zap.Error(err))
			}
		}()
	} else {
		direct = notifications.NewDirectPublisher(dispatcher)
		publisher = direct
	}

	// Billing vendor
	var billing provider.BillingProvider
	if cfg.Stripe.Enabled() {
		billing = stripeProvider.NewStripeProvider(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, zapLogger.Named("stripe"))
	} else {
		zapLogger.Warn("Stripe is not configured, billing endpoints are disabled")
	}

	// Services
	tokens := usecase.NewTokenService(usecase.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
		ClaimTTL:   cfg.JWT.ClaimTTL,
	})
	notifier := usecase.NewNotificationService(publisher, cfg.Service.FrontendURL, zapLogger.Named("notification"))
	authService := usecase.NewAuthService(repos.User, repos.Company, tokens, notifier, zapLogger.Named("auth"))
	companyService := usecase.NewCompanyService(repos.Company, catalog, zapLogger.Named("company"))
	contactService := usecase.NewContactService(mailer, contactInbox, zapLogger.Named("contact"))
	productUseCase := usecase.NewProductUseCase(billing, repos.Customer, catalog, catalogCache, cfg.Redis.CacheTTL, cfg.Service.FrontendURL, zapLogger.Named("catalog"))
	billingService := usecase.NewBillingService(billing, usecase.BillingRepositories{
		Users:         repos.User,
		Companies:     repos.Company,
		Customers:     repos.Customer,
		Subscriptions: repos.Subscription,
		Orders:        repos.Order,
		Events:        repos.WebhookEvent,
	}, tokens, notifier, catalog, zapLogger.Named("billing"))
	subscriptionService := usecase.NewSubscriptionService(billing, repos.User, repos.Customer, repos.Subscription, billingService, catalog, zapLogger.Named("subscription"))

	if billing != nil {
		retrier := usecase.NewWebhookRetrier(repos.WebhookEvent, billingService,
			cfg.Billing.RetryInterval, cfg.Billing.MaxAttempts, cfg.Billing.RetryBatch, zapLogger)
		workers.Add(1)
		go func() {
			defer workers.Done()
			retrier.Run(ctx)
		}()
	}

	// HTTP server
	srv := httpServer.NewServer(cfg, zapLogger, httpServer.Handlers{
		Auth:         handlers.NewAuthHandler(zapLogger, authService),
		Company:      handlers.NewCompanyHandler(zapLogger, companyService),
		Contact:      handlers.NewContactHandler(zapLogger, contactService),
		Product:      handlers.NewProductHandler(zapLogger, productUseCase),
		Webhook:      handlers.NewWebhookHandler(zapLogger, billingService),
		Subscription: handlers.NewSubscriptionHandler(zapLogger, subscriptionService),
	}, auth.JWTConfig{
		Tokens: tokens,
		Users:  repos.User,
		Logger: zapLogger.Named("jwt"),
	}, func(ctx context.Context) error {
		return database.Ping(ctx, db)
	})

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	cancel()
	workers.Wait()
	if direct != nil {
		direct.Wait()
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zapLogger.Error("Failed to close Redis client", zap.Error(err))
		}
	}

	if err := database.Close(db, zapLogger); err != nil {
		zapLogger.Error("Failed to close database connection", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}
