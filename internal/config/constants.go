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
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for startup and health checks
const DBPingTimeout = 5 * time.Second

// MaxRequestBodyBytes bounds JSON request bodies.
const MaxRequestBodyBytes = 1 << 20

// Admin sessions
const (
	AdminSessionLifetime = 24 * time.Hour
	MinPasswordLength    = 6
	MaxPasswordBytes     = 72 // bcrypt rejects longer inputs
)

// Uploads
const (
	UploadURLLifetime = 15 * time.Minute
)

// Background job intervals
const CleanupJobInterval = 30 * time.Minute
