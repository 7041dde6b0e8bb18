// Package httpx provides the outbound HTTP plumbing shared by the SDK:
// timeout-configured client construction and composable RoundTripper
// decorators for rate limiting and structured request logging.
package httpx

import (
	"net"
	"net/http"
	"time"
)

// NewClient builds an *http.Client with a separate connection timeout and
// total request timeout. The returned client owns a fresh connection pool;
// callers are expected to construct one client per endpoint configuration
// and share it across calls.
func NewClient(connectTimeout, requestTimeout time.Duration, base http.RoundTripper) *http.Client {
	if base == nil {
		dialer := &net.Dialer{Timeout: connectTimeout}
		base = &http.Transport{
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: connectTimeout,
			ForceAttemptHTTP2:   true,
		}
	}

	return &http.Client{
		Transport: base,
		Timeout:   requestTimeout,
	}
}
