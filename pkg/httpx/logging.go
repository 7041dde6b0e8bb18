package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/fireauth/pkg/idx"
)

// LoggingTransport is a RoundTripper that emits one structured log line
// per exchange, keyed by a ULID request id so the retry of a call can be
// correlated with its original attempt.
type LoggingTransport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

// NewLoggingTransport wraps base so every request is logged to logger at
// Debug (Error on transport failure). Query strings are not logged; the
// provider carries its API key there.
func NewLoggingTransport(base http.RoundTripper, logger *slog.Logger) *LoggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LoggingTransport{base: base, logger: logger}
}

// RoundTrip implements http.RoundTripper.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	reqID := idx.New()

	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start).Milliseconds()

	if err != nil {
		t.logger.Error("http_request_failed",
			"req_id", reqID.String(),
			"method", req.Method,
			"host", req.URL.Host,
			"path", req.URL.Path,
			"duration_ms", duration,
			"error", err,
		)
		return nil, err
	}

	t.logger.Debug("http_request",
		"req_id", reqID.String(),
		"method", req.Method,
		"host", req.URL.Host,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", duration,
	)

	return resp, nil
}
