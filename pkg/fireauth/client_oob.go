package fireauth

import "context"

// Out-of-band account operations. None of these involve a Session: they
// act on an email address or a one-time action code the provider mailed
// to the user.

// SendPasswordResetEmail asks the provider to mail a password-reset code
// to email. The configured locale selects the email template language.
func (c *Client) SendPasswordResetEmail(ctx context.Context, email string) error {
	var resp sendOOBCodeResponse
	return c.transport.postJSON(ctx, "accounts:sendOobCode", sendOOBCodeRequest{
		RequestType: oobTypePasswordReset,
		Email:       email,
	}, &resp, true)
}

// VerifyPasswordResetCode checks a reset code without consuming it and
// returns the email address it was issued for.
func (c *Client) VerifyPasswordResetCode(ctx context.Context, oobCode string) (string, error) {
	var resp resetPasswordResponse
	err := c.transport.postJSON(ctx, "accounts:resetPassword", resetPasswordRequest{
		OOBCode: oobCode,
	}, &resp, false)
	if err != nil {
		return "", err
	}
	return resp.Email, nil
}

// ConfirmPasswordReset consumes a reset code and sets the new password.
// Returns the email address of the affected account.
func (c *Client) ConfirmPasswordReset(ctx context.Context, oobCode, newPassword string) (string, error) {
	var resp resetPasswordResponse
	err := c.transport.postJSON(ctx, "accounts:resetPassword", resetPasswordRequest{
		OOBCode:     oobCode,
		NewPassword: newPassword,
	}, &resp, false)
	if err != nil {
		return "", err
	}
	return resp.Email, nil
}

// ConfirmEmailVerification consumes an email-verification code.
func (c *Client) ConfirmEmailVerification(ctx context.Context, oobCode string) error {
	var resp updateAccountResponse
	return c.transport.postJSON(ctx, "accounts:update", updateAccountRequest{
		OOBCode: oobCode,
	}, &resp, false)
}

// SignInMethods is the result of FetchSignInMethodsForEmail.
type SignInMethods struct {
	// Providers lists the sign-in providers usable for the email. Provider
	// strings the SDK does not know are surfaced verbatim.
	Providers []ProviderID

	// Registered reports whether an account exists for the email.
	Registered bool
}

// FetchSignInMethodsForEmail reports which providers can sign in the given
// email address. continueURI is the caller's redirect URI, as required by
// accounts:createAuthUri.
func (c *Client) FetchSignInMethodsForEmail(ctx context.Context, email, continueURI string) (SignInMethods, error) {
	var resp createAuthURIResponse
	err := c.transport.postJSON(ctx, "accounts:createAuthUri", createAuthURIRequest{
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
}
