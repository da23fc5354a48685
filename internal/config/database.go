package config

import "time"

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// URL is a libpq connection string or postgres:// URL.
	URL string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// AutoMigrate applies pending migrations on server start.
	AutoMigrate bool
	// LogLevel for gorm statements: silent, error, warn, info.
	LogLevel string
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return c.URL
}
