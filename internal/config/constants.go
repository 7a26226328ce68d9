package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Per-request timeout for individual Instagram Graph API calls
const InstagramRequestTimeout = 15 * time.Second

// Telegram long-poll timeout in seconds
const TelegramPollTimeout = 30

// Background job intervals
const StagingSweepInterval = 5 * time.Minute
