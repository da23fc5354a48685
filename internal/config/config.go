package config

import (
	"errors"
	"fmt"
	"time"

	pkgconfig "github.com/fpcgarcias/site-ticketwise-sub000/pkg/config"
)

// ServiceName is used for the config file name and the env prefix.
const ServiceName = "ticketwise"

type Config struct {
	Service  ServiceConfig
	Database DatabaseConfig
	Server   ServerConfig
	Log      LogConfig
	JWT      JWTConfig
	Stripe   StripeConfig
	SMTP     SMTPConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Billing  BillingConfig
}

var defaults = map[string]interface{}{
	"service.name":        ServiceName,
	"service.environment": "dev",
	"service.version":     "dev",
	"frontend.url":        "http://localhost:5173",

	"server.host":             "0.0.0.0",
	"server.port":             8080,
	"server.read_timeout":     "15s",
	"server.write_timeout":    "30s",
	"server.shutdown_timeout": "10s",
	"server.body_limit":       "1M",
	"server.cors_origins":     []string{},

	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  "30m",
	"database.conn_max_idle_time": "5m",
	"database.auto_migrate":       true,
	"database.log_level":          "warn",

	"log.level":  "info",
	"log.format": "json",
	"log.output": "stdout",

	"jwt.issuer":      "ticketwise",
	"jwt.access_ttl":  "168h",
	"jwt.refresh_ttl": "720h",
	"jwt.claim_ttl":   "72h",

	"smtp.port":      587,
	"smtp.from_name": "TicketWise",

	"redis.db":        0,
	"redis.cache_ttl": "5m",

	"catalog.path": "configs/plans.yaml",

	"billing.retry_interval": "1m",
	"billing.max_attempts":   8,
	"billing.retry_batch":    50,
}

// envAliases binds the unprefixed variables used by deployments.
var envAliases = map[string][]string{
	"database.url":          {"DATABASE_URL"},
	"jwt.secret":            {"JWT_SECRET"},
	"stripe.secret_key":     {"STRIPE_SECRET_KEY"},
	"stripe.webhook_secret": {"STRIPE_WEBHOOK_SECRET"},
	"smtp.host":             {"SMTP_HOST"},
	"smtp.port":             {"SMTP_PORT"},
	"smtp.username":         {"SMTP_USER"},
	"smtp.password":         {"SMTP_PASS"},
	"smtp.from":             {"SMTP_FROM", "EMAIL_FROM"},
	"smtp.contact_to":       {"CONTACT_EMAIL"},
	"frontend.url":          {"FRONTEND_URL"},
	"redis.addr":            {"REDIS_ADDR"},
	"redis.password":        {"REDIS_PASSWORD"},
	"server.port":           {"PORT"},
	"log.level":             {"LOG_LEVEL"},
}

// LoadConfig reads configs/<APP_ENV>/ticketwise.yaml, .env and the environment.
func LoadConfig() (*Config, error) {
	src, err := pkgconfig.Load(ServiceName,
		pkgconfig.WithDefaults(defaults),
		pkgconfig.WithEnvAliases(envAliases),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := FromSource(src)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabaseConfig loads only the database section, for tools that do not
// need secrets such as the JWT key.
func LoadDatabaseConfig() (*DatabaseConfig, error) {
	src, err := pkgconfig.Load(ServiceName,
		pkgconfig.WithDefaults(defaults),
		pkgconfig.WithEnvAliases(envAliases),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db := FromSource(src).Database
	if db.URL == "" {
		return nil, errors.New("database.url (DATABASE_URL) is required")
	}
	return &db, nil
}

// FromSource maps raw settings onto the typed config.
func FromSource(src pkgconfig.Config) *Config {
	return &Config{
		Service: ServiceConfig{
			Name:        src.GetString("service.name"),
			Environment: src.GetString("service.environment"),
			Version:     src.GetString("service.version"),
			FrontendURL: src.GetString("frontend.url"),
		},
		Database: DatabaseConfig{
			URL:             src.GetString("database.url"),
			MaxOpenConns:    src.GetInt("database.max_open_conns"),
			MaxIdleConns:    src.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: src.GetDuration("database.conn_max_lifetime"),
			ConnMaxIdleTime: src.GetDuration("database.conn_max_idle_time"),
			AutoMigrate:     src.GetBool("database.auto_migrate"),
			LogLevel:        src.GetString("database.log_level"),
		},
		Server: ServerConfig{
			Host:            src.GetString("server.host"),
			Port:            src.GetInt("server.port"),
			ReadTimeout:     src.GetDuration("server.read_timeout"),
			WriteTimeout:    src.GetDuration("server.write_timeout"),
			ShutdownTimeout: src.GetDuration("server.shutdown_timeout"),
			BodyLimit:       src.GetString("server.body_limit"),
			CORSOrigins:     src.GetStringSlice("server.cors_origins"),
		},
		Log: LogConfig{
			Level:       src.GetString("log.level"),
			Format:      src.GetString("log.format"),
			Output:      src.GetString("log.output"),
			FilePath:    src.GetString("log.file_path"),
			Development: src.GetBool("log.development"),
		},
		JWT: JWTConfig{
			Secret:     src.GetString("jwt.secret"),
			Issuer:     src.GetString("jwt.issuer"),
			AccessTTL:  src.GetDuration("jwt.access_ttl"),
			RefreshTTL: src.GetDuration("jwt.refresh_ttl"),
			ClaimTTL:   src.GetDuration("jwt.claim_ttl"),
		},
		Stripe: StripeConfig{
			SecretKey:     src.GetString("stripe.secret_key"),
			WebhookSecret: src.GetString("stripe.webhook_secret"),
		},
		SMTP: SMTPConfig{
			Host:      src.GetString("smtp.host"),
			Port:      src.GetInt("smtp.port"),
			Username:  src.GetString("smtp.username"),
			Password:  src.GetString("smtp.password"),
			From:      src.GetString("smtp.from"),
			FromName:  src.GetString("smtp.from_name"),
			ContactTo: src.GetString("smtp.contact_to"),
		},
		Redis: RedisConfig{
			Addr:     src.GetString("redis.addr"),
			Password: src.GetString("redis.password"),
			DB:       src.GetInt("redis.db"),
			CacheTTL: src.GetDuration("redis.cache_ttl"),
		},
		Catalog: CatalogConfig{
			Path: src.GetString("catalog.path"),
		},
		Billing: BillingConfig{
			RetryInterval: src.GetDuration("billing.retry_interval"),
			MaxAttempts:   src.GetInt("billing.max_attempts"),
			RetryBatch:    src.GetInt("billing.retry_batch"),
		},
	}
}

// Validate checks the settings the process cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.URL == "" {
		errs = append(errs, errors.New("database.url (DATABASE_URL) is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret (JWT_SECRET) is required"))
	}
	if c.Stripe.Enabled() && c.Stripe.WebhookSecret == "" {
		errs = append(errs, errors.New("stripe.webhook_secret (STRIPE_WEBHOOK_SECRET) is required when billing is enabled"))
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		errs = append(errs, errors.New("jwt token lifetimes must be positive"))
	}
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("invalid server.port %d", c.Server.Port))
	}
	return errors.Join(errs...)
}

// ShutdownTimeout falls back to 10s.
func (c *Config) ShutdownTimeout() time.Duration {
	if c.Server.ShutdownTimeout <= 0 {
		return 10 * time.Second
	}
	return c.Server.ShutdownTimeout
}
