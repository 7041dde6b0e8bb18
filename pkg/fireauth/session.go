package fireauth

import (
	"context"
	"log/slog"
	"net/url"
	"sync/atomic"
)

// refreshRetryLimit bounds the renewal-and-retry protocol. The provider
// invalidates ID tokens unpredictably (revocation, clock skew, short
// TTLs), so every authenticated operation tolerates exactly one
// "credential invalid" rejection by renewing the token pair and repeating
// the call once. The limit is fixed policy, not configuration.
const refreshRetryLimit = 1

// Session is an authenticated handle: the shared transport plus the
// current token pair. A Session value is never mutated. Every operation
// that could rotate credentials consumes the receiver and returns a
// successor, so one owned handle is always the single source of truth
// for the logical session's state.
//
// A Session is not safe for concurrent use. Callers that share one across
// goroutines must serialise access themselves; invoking an operation on an
// already-consumed handle fails with ErrSessionConsumed instead of
// silently reusing stale credentials.
type Session struct {
	transport *transport
	logger    *slog.Logger
	tokens    TokenPair

	consumed atomic.Bool
}

// Tokens returns the session's current token pair.
func (s *Session) Tokens() TokenPair { return s.tokens }

// AccessToken returns the current ID token.
func (s *Session) AccessToken() string { return s.tokens.IDToken }

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string { return s.tokens.RefreshToken }

// consume claims the handle. It succeeds exactly once.
func (s *Session) consume() bool {
	return s.consumed.CompareAndSwap(false, true)
}

// successor builds the next Session generation carrying tokens. The
// transport handle is shared, never copied or mutated.
func (s *Session) successor(tokens TokenPair) *Session {
	return &Session{
		transport: s.transport,
		logger:    s.logger,
		tokens:    tokens,
	}
}

// Refresh explicitly exchanges the refresh token for a new token pair,
// consuming the session and returning its successor. Operations renew
// automatically on a credential-invalid rejection; Refresh exists for
// callers that want to schedule renewal themselves.
func (s *Session) Refresh(ctx context.Context) (*Session, error) {
	if !s.consume() {
		return nil, ErrSessionConsumed
	}
	return s.exchangeRefreshToken(ctx)
}

// exchangeRefreshToken performs the token-exchange grant against the
// secure-token host and yields a successor carrying a wholly new pair
// (the provider may rotate the refresh token too). Failures here are
// terminal for the enclosing retry cycle: they propagate without a
// further attempt, which is what bounds the retry loop.
func (s *Session) exchangeRefreshToken(ctx context.Context) (*Session, error) {
	data := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {s.tokens.RefreshToken},
	}

	var resp tokenExchangeResponse
	if err := s.transport.postForm(ctx, data, &resp); err != nil {
		return nil, err
	}

	pair, err := newTokenPair(resp.IDToken, resp.RefreshToken, resp.ExpiresIn)
	if err != nil {
		return nil, err
	}
	return s.successor(pair), nil
}

// callWithRefresh is the uniform call protocol for authenticated
// operations. It consumes s, runs call against the current session state,
// and on a credential-invalid classification renews the token pair once
// and repeats the call. Any other failure, a second credential-invalid
// rejection, or a renewal failure propagates immediately; the handle is
// then terminally consumed and no successor exists.
func callWithRefresh[T any](ctx context.Context, s *Session, call func(context.Context, *Session) (T, error)) (*Session, T, error) {
	var zero T

	if !s.consume() {
		return nil, zero, ErrSessionConsumed
	}

	cur := s.successor(s.tokens)
	attempts := 0
	for {
		result, err := call(ctx, cur)
		if err == nil {
			return cur, result, nil
		}

		if !isRetryableError(err) || attempts >= refreshRetryLimit {
			return nil, zero, err
		}

		s.logger.Warn("fireauth: access credential rejected, renewing",
			"attempt", attempts+1,
		)

		refreshed, rerr := cur.exchangeRefreshToken(ctx)
		if rerr != nil {
			return nil, zero, rerr
		}
		cur = refreshed
		attempts++
	}
}

// callSessionOnly adapts callWithRefresh for operations whose success
// carries no payload: the successor session is the whole result.
func callSessionOnly(ctx context.Context, s *Session, call func(context.Context, *Session) error) (*Session, error) {
	next, _, err := callWithRefresh(ctx, s, func(ctx context.Context, cur *Session) (struct{}, error) {
		return struct{}{}, call(ctx, cur)
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// callRotating adapts callWithRefresh for operations whose success value
// is itself a rotated token pair (the link operations): the successor is
// built from the pair the primitive returned, not from the pair the call
// was made with.
func callRotating(ctx context.Context, s *Session, call func(context.Context, *Session) (TokenPair, error)) (*Session, error) {
	next, pair, err := callWithRefresh(ctx, s, call)
	if err != nil {
		return nil, err
	}
	return next.successor(pair), nil
}

// DeleteAccount permanently deletes the signed-in account. The session is
// consumed with no successor: success and failure are both terminal
// states for the handle.
func (s *Session) DeleteAccount(ctx context.Context) error {
	_, _, err := callWithRefresh(ctx, s, func(ctx context.Context, cur *Session) (struct{}, error) {
		return struct{}{}, cur.transport.postJSON(ctx, "accounts:delete", deleteAccountRequest{
			IDToken: cur.tokens.IDToken,
		}, nil, false)
	})
	return err
}
