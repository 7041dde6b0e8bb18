package fireauth

import (
	"context"
	"log/slog"
)

// Client talks to the provider's unauthenticated operations and mints
// authenticated Sessions. It is safe for concurrent use; the Sessions it
// returns are not (see Session).
type Client struct {
	transport *transport
	logger    *slog.Logger
}

// NewClient validates the configuration and builds a client. The
// underlying connection pool is created once here and shared by every
// Session this client produces.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg = cfg.withDefaults()

	return &Client{
		transport: &transport{
			client:         cfg.buildHTTPClient(),
			apiKey:         cfg.APIKey,
			locale:         cfg.Locale,
			identityURL:    cfg.IdentityBaseURL,
			secureTokenURL: cfg.SecureTokenBaseURL,
		},
		logger: cfg.Logger,
	}, nil
}

// SignUpWithEmailPassword creates a new email/password account and returns
// a Session for it.
func (c *Client) SignUpWithEmailPassword(ctx context.Context, email, password string) (*Session, error) {
	var resp signUpResponse
	err := c.transport.postJSON(ctx, "accounts:signUp", signUpRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &resp, false)
	if err != nil {
		return nil, err
	}

	return c.newSession(resp.IDToken, resp.RefreshToken, resp.ExpiresIn)
}

// SignInWithEmailPassword signs in an existing email/password account.
func (c *Client) SignInWithEmailPassword(ctx context.Context, email, password string) (*Session, error) {
	var resp signInWithPasswordResponse
	err := c.transport.postJSON(ctx, "accounts:signInWithPassword", signInWithPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &resp, false)
	if err != nil {
		return nil, err
	}

	return c.newSession(resp.IDToken, resp.RefreshToken, resp.ExpiresIn)
}

// SignInAnonymously creates a temporary anonymous account. The resulting
// Session can later be upgraded with one of the Link operations.
func (c *Client) SignInAnonymously(ctx context.Context) (*Session, error) {
	var resp signUpResponse
	err := c.transport.postJSON(ctx, "accounts:signUp", signUpRequest{
		ReturnSecureToken: true,
	}, &resp, false)
	if err != nil {
		return nil, err
	}

	return c.newSession(resp.IDToken, resp.RefreshToken, resp.ExpiresIn)
}

// SignInWithCustomToken exchanges a developer-minted custom token for a
// Session.
func (c *Client) SignInWithCustomToken(ctx context.Context, token string) (*Session, error) {
	var resp signInWithCustomTokenResponse
	err := c.transport.postJSON(ctx, "accounts:signInWithCustomToken", signInWithCustomTokenRequest{
		Token:             token,
		ReturnSecureToken: true,
	}, &resp, false)
	if err != nil {
		return nil, err
	}

	return c.newSession(resp.IDToken, resp.RefreshToken, resp.ExpiresIn)
}

// SignInWithOAuthCredential signs in with an IdP credential obtained from
// an OAuth flow. requestURI is the URI the IdP redirected the user back to.
func (c *Client) SignInWithOAuthCredential(ctx context.Context, requestURI string, cred IdpCredential) (*Session, error) {
	var resp signInWithIdpResponse
	err := c.transport.postJSON(ctx, "accounts:signInWithIdp", signInWithIdpRequest{
		RequestURI:          requestURI,
		PostBody:            cred.postBody(),
		ReturnSecureToken:   true,
		ReturnIdpCredential: true,
	}, &resp, false)
	if err != nil {
		return nil, err
	}

	return c.newSession(resp.IDToken, resp.RefreshToken, resp.ExpiresIn)
}

// SessionFromTokens resumes a Session from a token pair the caller already
// holds, without a remote call. The pair is trusted as-is; an invalidated
// ID token will be refreshed on first use by the usual retry protocol.
func (c *Client) SessionFromTokens(pair TokenPair) *Session {
	return &Session{
		transport: c.transport,
		logger:    c.logger,
		tokens:    pair,
	}
}

// newSession builds a Session from a sign-in response's raw token fields.
func (c *Client) newSession(idToken, refreshToken, expiresIn string) (*Session, error) {
	pair, err := newTokenPair(idToken, refreshToken, expiresIn)
	if err != nil {
		return nil, err
	}

	return &Session{
		transport: c.transport,
		logger:    c.logger,
		tokens:    pair,
	}, nil
}
