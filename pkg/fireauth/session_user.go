package fireauth

import "context"

// GetUserData fetches the account profile for the signed-in user. The
// lookup endpoint answers with a list keyed by the presented ID token;
// an empty list means the token resolved to no account.
func (s *Session) GetUserData(ctx context.Context) (*Session, *UserData, error) {
	return callWithRefresh(ctx, s, func(ctx context.Context, cur *Session) (*UserData, error) {
		var resp lookupResponse
		err := cur.transport.postJSON(ctx, "accounts:lookup", lookupRequest{
			IDToken: cur.tokens.IDToken,
		}, &resp, false)
		if err != nil {
			return nil, err
		}
		if len(resp.Users) == 0 {
			return nil, ErrMissingUserData
		}
		return &resp.Users[0], nil
	})
}

// ChangeEmail updates the account's email address. The successor keeps
// the current token pair; the provider invalidates it out-of-band later,
// at which point the usual renewal protocol picks up the change.
func (s *Session) ChangeEmail(ctx context.Context, newEmail string) (*Session, error) {
	return callSessionOnly(ctx, s, func(ctx context.Context, cur *Session) error {
		return cur.transport.postJSON(ctx, "accounts:update", updateAccountRequest{
			IDToken: cur.tokens.IDToken,
			Email:   newEmail,
		}, nil, true)
	})
}

// ChangePassword updates the account's password. As with ChangeEmail the
// successor keeps the current token pair.
func (s *Session) ChangePassword(ctx context.Context, newPassword string) (*Session, error) {
	return callSessionOnly(ctx, s, func(ctx context.Context, cur *Session) error {
		return cur.transport.postJSON(ctx, "accounts:update", updateAccountRequest{
			IDToken:  cur.tokens.IDToken,
			Password: newPassword,
		}, nil, false)
	})
}

// UpdateProfile sets the display name and photo URL. Passing a
// DeleteAttribute clears the corresponding field server-side; an empty
// string argument leaves the field untouched.
func (s *Session) UpdateProfile(ctx context.Context, displayName, photoURL string, deleteAttrs ...DeleteAttribute) (*Session, error) {
	return callSessionOnly(ctx, s, func(ctx context.Context, cur *Session) error {
		return cur.transport.postJSON(ctx, "accounts:update", updateAccountRequest{
			IDToken:         cur.tokens.IDToken,
			DisplayName:     displayName,
			PhotoURL:        photoURL,
			DeleteAttribute: deleteAttrs,
		}, nil, false)
	})
}

// FetchSignInMethods reports which providers can sign in the given email
// address, through the session's uniform call protocol. The same query is
// available without a session as Client.FetchSignInMethodsForEmail.
func (s *Session) FetchSignInMethods(ctx context.Context, email, continueURI string) (*Session, SignInMethods, error) {
	return callWithRefresh(ctx, s, func(ctx context.Context, cur *Session) (SignInMethods, error) {
		var resp createAuthURIResponse
		err := cur.transport.postJSON(ctx, "accounts:createAuthUri", createAuthURIRequest{
			Identifier:  email,
			ContinueURI: continueURI,
		}, &resp, false)
		if err != nil {
			return SignInMethods{}, err
		}

		methods := SignInMethods{Registered: resp.Registered}
		for _, p := range resp.AllProviders {
			methods.Providers = append(methods.Providers, ProviderID(p))
		}
		return methods, nil
	})
}

// SendEmailVerification asks the provider to mail a verification link to
// the account's address. The session's locale, if configured, selects the
// template language.
func (s *Session) SendEmailVerification(ctx context.Context) (*Session, error) {
	return callSessionOnly(ctx, s, func(ctx context.Context, cur *Session) error {
		return cur.transport.postJSON(ctx, "accounts:sendOobCode", sendOOBCodeRequest{
			RequestType: oobTypeVerifyEmail,
			IDToken:     cur.tokens.IDToken,
		}, nil, true)
	})
}
