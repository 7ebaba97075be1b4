package maileroo

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/maileroo/maileroo-go-sdk/internal/api"
)

const (
	// DefaultBaseURL is the Maileroo v2 API root.
	DefaultBaseURL = api.DefaultBaseURL
	// DefaultTimeout bounds each API call unless WithTimeout says otherwise.
	DefaultTimeout = 30 * time.Second
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	random     io.Reader
	userAgent  string
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. Its own Timeout, if any, still
// applies on top of the per-call timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-call timeout. Zero or negative disables it, leaving
// the caller's context as the only bound.
// Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger for request tracing. Records are emitted at
// debug level. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithRandomSource sets the randomness source for generated reference ids.
// Default: crypto/rand. See NewSeededRandomSource for a reproducible source.
func WithRandomSource(r io.Reader) Option {
	return func(c *clientConfig) {
		c.random = r
	}
}

// WithUserAgent overrides the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}
