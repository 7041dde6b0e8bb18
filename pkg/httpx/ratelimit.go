package httpx

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig defines the client-side rate limiting parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int
	// Window is the time window for rate limiting
	Window time.Duration
	// Burst allows for temporary bursts above the rate limit
	Burst int
}

// DefaultLimit is a conservative profile for authentication endpoints.
// Remote identity providers throttle aggressively (and surface it as a
// terminal error, not a retryable one), so staying under their ceiling
// client-side is cheaper than handling the rejection.
var DefaultLimit = RateLimitConfig{
	RequestsPerWindow: 60,
	Window:            time.Minute,
	Burst:             10,
}

// RateLimitTransport is a RoundTripper that delays outgoing requests to
// honour a token-bucket limit. The wait respects the request context, so
// cancellation or deadline expiry surfaces as the usual transport error.
type RateLimitTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

// NewRateLimitTransport wraps base with the given limit configuration.
// The limiter is owned by the returned transport; callers that share the
// transport share the budget.
func NewRateLimitTransport(base http.RoundTripper, config RateLimitConfig) *RateLimitTransport {
	if base == nil {
		base = http.DefaultTransport
	}

	ratePerSecond := float64(config.RequestsPerWindow) / config.Window.Seconds()

	return &RateLimitTransport{
		base:    base,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), config.Burst),
	}
}

// RoundTrip implements http.RoundTripper.
func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}
