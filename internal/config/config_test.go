package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{URL: "postgres://localhost/ticketwise"},
		Server:   ServerConfig{Port: 8080},
		JWT: JWTConfig{
			Secret:     "secret",
			AccessTTL:  7 * 24 * time.Hour,
			RefreshTTL: 30 * 24 * time.Hour,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "missing database url",
			mutate:  func(c *Config) { c.Database.URL = "" },
			wantErr: "DATABASE_URL",
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.JWT.Secret = "" },
			wantErr: "JWT_SECRET",
		},
		{
			name:    "stripe without webhook secret",
			mutate:  func(c *Config) { c.Stripe.SecretKey = "sk_test_1" },
			wantErr: "STRIPE_WEBHOOK_SECRET",
		},
		{
			name: "stripe fully configured",
			mutate: func(c *Config) {
				c.Stripe.SecretKey = "sk_test_1"
				c.Stripe.WebhookSecret = "whsec_1"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestShutdownTimeoutDefault(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
	cfg.Server.ShutdownTimeout = time.Second
	assert.Equal(t, time.Second, cfg.ShutdownTimeout())
}
