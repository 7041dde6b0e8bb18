package fireauth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/fireauth/pkg/httpx"
)

const (
	defaultIdentityURL    = "https://identitytoolkit.googleapis.com/v1"
	defaultSecureTokenURL = "https://securetoken.googleapis.com/v1"

	defaultConnectTimeout = 10 * time.Second
	defaultRequestTimeout = 60 * time.Second
)

// Config holds the endpoint configuration for a Client. The API key is the
// only required field; everything else has a sensible default.
type Config struct {
	// APIKey is the Firebase project's web API key. Required.
	APIKey string

	// ConnectTimeout bounds connection establishment (default 10s).
	ConnectTimeout time.Duration

	// RequestTimeout bounds a whole request/response exchange (default
	// 60s). A timeout surfaces as a transport failure and is never
	// retried by the SDK.
	RequestTimeout time.Duration

	// Locale, when set, is sent as the X-Firebase-Locale header on the
	// operations that trigger templated provider email.
	Locale string

	// Logger receives one Debug line per remote exchange and a Warn line
	// per refresh retry. Defaults to slog.Default().
	Logger *slog.Logger

	// RateLimit enables a client-side token bucket across all calls made
	// through this Client and its Sessions. Nil disables limiting.
	RateLimit *httpx.RateLimitConfig

	// HTTPClient overrides the constructed client entirely, ignoring the
	// timeout and rate-limit fields. Intended for tests.
	HTTPClient *http.Client

	// IdentityBaseURL and SecureTokenBaseURL override the provider hosts.
	// Intended for tests against a fake provider.
	IdentityBaseURL    string
	SecureTokenBaseURL string
}

// withDefaults fills the zero-valued fields.
func (c Config) withDefaults() Config {
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.IdentityBaseURL == "" {
		c.IdentityBaseURL = defaultIdentityURL
	}
	if c.SecureTokenBaseURL == "" {
		c.SecureTokenBaseURL = defaultSecureTokenURL
	}
	return c
}

// buildHTTPClient assembles the shared HTTP client: base transport, then
// rate limiting, then request logging (outermost, so waits imposed by the
// limiter show up in the logged duration).
func (c Config) buildHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}

	client := httpx.NewClient(c.ConnectTimeout, c.RequestTimeout, nil)

	rt := client.Transport
	if c.RateLimit != nil {
		rt = httpx.NewRateLimitTransport(rt, *c.RateLimit)
	}
	rt = httpx.NewLoggingTransport(rt, c.Logger)
	client.Transport = rt

	return client
}
