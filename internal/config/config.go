// Package config provides centralized configuration management for the application.
// Settings come from environment variables (optionally seeded from a .env file)
// and are validated on startup so a misconfigured server never starts.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Session  SessionConfig
	Sort     SortConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// UploadConfig holds inventory file upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum accepted file size in bytes (default: 20MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"20971520"`

	// MaxConcurrent bounds how many files are parsed at once (default: 4)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long an upload waits for a parse slot (default: 10s)
	MaxWaitTime time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"10s"`

	// Timeout caps a single parse/filter/normalize run (default: 1m)
	Timeout time.Duration `env:"UPLOAD_TIMEOUT" default:"1m"`
}

// SessionConfig controls the in-memory per-browser state.
type SessionConfig struct {
	CookieName string `env:"SESSION_COOKIE_NAME" default:"cardsort_session"`

	// CookieSecure sets the Secure flag; enable behind TLS.
	CookieSecure bool `env:"SESSION_COOKIE_SECURE" default:"false"`

	// TTL is how long an idle session keeps its dataset (default: 2h)
	TTL time.Duration `env:"SESSION_TTL" default:"2h"`

	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" default:"5m"`
}

// SortConfig holds sorting and variant defaults.
type SortConfig struct {
	// Locale is the BCP 47 tag used for collation. Empty means detect from host.
	Locale string `env:"SORT_LOCALE"`

	// MaxKeys is the number of sort-key slots offered by the UI (default: 3)
	MaxKeys int `env:"SORT_MAX_KEYS" default:"3"`

	// DefaultVariant preselects a pipeline variant in the UI.
	DefaultVariant string `env:"DEFAULT_VARIANT" default:"cards"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool `env:"RATE_LIMIT_ENABLED" default:"true"`
	RequestsPerMinute int  `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
