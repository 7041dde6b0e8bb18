package fireauth

import "context"

// LinkWithEmailPassword attaches an email/password credential to the
// signed-in account, turning an anonymous or IdP-only account into one
// that can also sign in with a password. The token pair rotates on
// success.
func (s *Session) LinkWithEmailPassword(ctx context.Context, email, password string) (*Session, error) {
	return callRotating(ctx, s, func(ctx context.Context, cur *Session) (TokenPair, error) {
		var resp linkWithPasswordResponse
		err := cur.transport.postJSON(ctx, "accounts:update", linkWithPasswordRequest{
			IDToken:           cur.tokens.IDToken,
			Email:             email,
			Password:          password,
			ReturnSecureToken: true,
		}, &resp, false)
		if err != nil {
			return TokenPair{}, err
		}
		return newTokenPair(resp.IDToken, resp.RefreshToken, resp.ExpiresIn)
	})
}

// LinkWithOAuthCredential attaches a federated identity credential to the
// signed-in account. The token pair rotates on success.
func (s *Session) LinkWithOAuthCredential(ctx context.Context, requestURI string, cred IdpCredential) (*Session, error) {
	return callRotating(ctx, s, func(ctx context.Context, cur *Session) (TokenPair, error) {
		var resp signInWithIdpResponse
		err := cur.transport.postJSON(ctx, "accounts:signInWithIdp", linkWithIdpRequest{
			IDToken:             cur.tokens.IDToken,
			RequestURI:          requestURI,
			PostBody:            cred.postBody(),
			ReturnSecureToken:   true,
			ReturnIdpCredential: true,
		}, &resp, false)
		if err != nil {
			return TokenPair{}, err
		}
		return newTokenPair(resp.IDToken, resp.RefreshToken, resp.ExpiresIn)
	})
}

// UnlinkProviders detaches the given sign-in providers from the account.
// At least one provider must remain afterwards or the provider rejects
// the request.
func (s *Session) UnlinkProviders(ctx context.Context, providers ...ProviderID) (*Session, error) {
	return callSessionOnly(ctx, s, func(ctx context.Context, cur *Session) error {
		ids := make([]string, 0, len(providers))
		for _, p := range providers {
			ids = append(ids, string(p))
		}
		return cur.transport.postJSON(ctx, "accounts:update", updateAccountRequest{
			IDToken:        cur.tokens.IDToken,
			DeleteProvider: ids,
		}, nil, false)
	})
}
