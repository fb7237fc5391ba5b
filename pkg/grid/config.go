// Package grid provides a Go client for a remote tabular-data REST API
// (bases, tables and records filtered with a formula language), together
// with the record search logic shared by the MCP and REST front-ends.
package grid

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the API root used when no base URL is configured.
const DefaultBaseURL = "https://api.airtable.com/v0"

// Config holds the configuration for a client connection.
type Config struct {
	// BaseURL is the API root (e.g., "https://api.airtable.com/v0")
	BaseURL string
	// Token is the bearer credential forwarded on every request
	Token string
	// Timeout for HTTP requests
	Timeout time.Duration
	// UserAgent sent with every request
	UserAgent string
	// Logger receives debug output for remote calls
	Logger zerolog.Logger
	// Safety defines protection parameters to prevent unintended modifications
	Safety SafetyConfig
}

// Option is a functional option for configuring the client.
type Option func(*Config)

// WithBaseURL overrides the API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		if baseURL != "" {
			c.BaseURL = baseURL
		}
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithLogger sets the logger used for remote call tracing.
func WithLogger(lg zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = lg
	}
}

// WithSafety sets the safety configuration.
func WithSafety(safety SafetyConfig) Option {
	return func(c *Config) {
		c.Safety = safety
	}
}

// WithReadOnly enables read-only mode (blocks create, update and delete).
func WithReadOnly() Option {
	return func(c *Config) {
		c.Safety.ReadOnly = true
	}
}

// WithAllowedBases restricts operations to specific bases.
// Supports wildcards: "appX*" matches every base starting with appX.
func WithAllowedBases(bases ...string) Option {
	return func(c *Config) {
		c.Safety.AllowedBases = bases
	}
}

// HasToken returns true if a bearer credential is configured.
func (c *Config) HasToken() bool {
	return c.Token != ""
}

// NewConfig creates a new Config with the given token and optional
// configuration options.
func NewConfig(token string, opts ...Option) *Config {
	cfg := &Config{
		BaseURL:   DefaultBaseURL,
		Token:     token,
		Timeout:   30 * time.Second,
		UserAgent: "gridbridge",
		Logger:    zerolog.Nop(),
		Safety:    UnrestrictedSafetyConfig(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// NewHTTPClient creates an http.Client configured for the given Config.
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   c.Timeout,
	}
}
