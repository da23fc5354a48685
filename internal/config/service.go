package config

import "time"

type ServiceConfig struct {
	Name        string
	Environment string
	Version     string
	// FrontendURL is the SPA origin used for checkout redirects and email links.
	FrontendURL string
}

type JWTConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	ClaimTTL   time.Duration
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

// Enabled reports whether billing endpoints can reach Stripe.
func (c StripeConfig) Enabled() bool {
	return c.SecretKey != ""
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	// ContactTo receives contact-form and newsletter notices.
	ContactTo string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type CatalogConfig struct {
	Path string
}

// BillingConfig controls replay of webhook events whose processing failed.
type BillingConfig struct {
	RetryInterval time.Duration
	MaxAttempts   int
	RetryBatch    int
}
