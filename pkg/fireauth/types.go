package fireauth

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// ============================================================================
// Token Types
// ============================================================================

// TokenPair is the provider-issued credential bundle: a short-lived ID
// token authorizing calls, the number of seconds it lives for, and the
// long-lived refresh token that can mint a replacement pair. A TokenPair
// is always built as a unit from a single provider response; its fields
// are never updated independently.
type TokenPair struct {
	// IDToken is the bearer credential attached to authenticated calls.
	IDToken string

	// RefreshToken mints a new TokenPair at the token endpoint. The
	// provider may rotate it on every exchange.
	RefreshToken string

	// ExpiresIn is the server-declared ID token lifetime.
	ExpiresIn time.Duration

	// IssuedAt is the client-side timestamp at which the pair was received.
	// The SDK never refreshes proactively from it; it is informational.
	IssuedAt time.Time
}

// newTokenPair parses the provider's string-encoded expiry and stamps the
// receipt time.
func newTokenPair(idToken, refreshToken, expiresIn string) (TokenPair, error) {
	var seconds int64
	if expiresIn != "" {
		var err error
		seconds, err = strconv.ParseInt(expiresIn, 10, 64)
		if err != nil {
			return TokenPair{}, fmt.Errorf("fireauth: parse expiresIn %q: %w", expiresIn, err)
		}
	}

	return TokenPair{
		IDToken:      idToken,
		RefreshToken: refreshToken,
		ExpiresIn:    time.Duration(seconds) * time.Second,
		IssuedAt:     time.Now(),
	}, nil
}

// ============================================================================
// Provider IDs
// ============================================================================

// ProviderID identifies a sign-in method linked to an account.
type ProviderID string

const (
	ProviderPassword ProviderID = "password"
	ProviderGoogle   ProviderID = "google.com"
	ProviderFacebook ProviderID = "facebook.com"
	ProviderTwitter  ProviderID = "twitter.com"
	ProviderGithub   ProviderID = "github.com"
	ProviderApple    ProviderID = "apple.com"
)

// ParseProviderID validates a provider identifier string.
func ParseProviderID(s string) (ProviderID, error) {
	switch p := ProviderID(s); p {
	case ProviderPassword, ProviderGoogle, ProviderFacebook,
		ProviderTwitter, ProviderGithub, ProviderApple:
		return p, nil
	}
	return "", fmt.Errorf("fireauth: %q is not a known provider id", s)
}

// String returns the wire form of the provider identifier.
func (p ProviderID) String() string { return string(p) }

// ============================================================================
// IdP Credentials
// ============================================================================

// IdpCredential is the OAuth credential handed to accounts:signInWithIdp.
// On the wire it is a form-encoded fragment naming the provider and its
// token material.
type IdpCredential struct {
	provider ProviderID
	values   url.Values
}

// GoogleIDToken builds the credential for a Google OpenID token.
func GoogleIDToken(idToken string) IdpCredential {
	return IdpCredential{
		provider: ProviderGoogle,
		values:   url.Values{"id_token": {idToken}},
	}
}

// FacebookAccessToken builds the credential for a Facebook access token.
func FacebookAccessToken(accessToken string) IdpCredential {
	return IdpCredential{
		provider: ProviderFacebook,
		values:   url.Values{"access_token": {accessToken}},
	}
}

// TwitterAccessToken builds the credential for a Twitter token/secret pair.
func TwitterAccessToken(accessToken, tokenSecret string) IdpCredential {
	return IdpCredential{
		provider: ProviderTwitter,
		values: url.Values{
			"access_token":       {accessToken},
			"oauth_token_secret": {tokenSecret},
		},
	}
}

// Provider returns the provider this credential belongs to.
func (c IdpCredential) Provider() ProviderID { return c.provider }

// postBody renders the form-encoded fragment the provider expects in the
// JSON request's postBody field.
func (c IdpCredential) postBody() string {
	v := url.Values{}
	for key, vals := range c.values {
		for _, val := range vals {
			v.Add(key, val)
		}
	}
	v.Set("providerId", c.provider.String())
	return v.Encode()
}

// ============================================================================
// Account Data
// ============================================================================

// ProviderUserInfo describes one linked identity provider on an account.
type ProviderUserInfo struct {
	ProviderID  string `json:"providerId"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	FederatedID string `json:"federatedId,omitempty"`
	Email       string `json:"email,omitempty"`
	RawID       string `json:"rawId,omitempty"`
	ScreenName  string `json:"screenName,omitempty"`
}

// UserData is the account record returned by accounts:lookup.
type UserData struct {
	// LocalID is the uid of the account.
	LocalID string `json:"localId"`

	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"emailVerified,omitempty"`
	DisplayName   string `json:"displayName,omitempty"`
	PhotoURL      string `json:"photoUrl,omitempty"`

	// ProviderUserInfo lists every linked provider.
	ProviderUserInfo []ProviderUserInfo `json:"providerUserInfo,omitempty"`

	PasswordHash string `json:"passwordHash,omitempty"`

	// PasswordUpdatedAt is a millisecond epoch timestamp.
	PasswordUpdatedAt float64 `json:"passwordUpdatedAt,omitempty"`

	// ValidSince marks the boundary (seconds since epoch, as a string)
	// before which ID tokens are considered revoked.
	ValidSince string `json:"validSince,omitempty"`

	Disabled bool `json:"disabled,omitempty"`

	// LastLoginAt and CreatedAt are millisecond epoch timestamps encoded
	// as strings.
	LastLoginAt   string `json:"lastLoginAt,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
	LastRefreshAt string `json:"lastRefreshAt,omitempty"`

	CustomAuth bool `json:"customAuth,omitempty"`
}

// DeleteAttribute names a profile attribute removable via UpdateProfile.
type DeleteAttribute string

const (
	DeleteDisplayName DeleteAttribute = "DISPLAY_NAME"
	DeletePhotoURL    DeleteAttribute = "PHOTO_URL"
)

// ============================================================================
// Request / Response Payloads (internal wire shapes)
// ============================================================================

type signUpRequest struct {
	Email             string `json:"email,omitempty"`
	Password          string `json:"password,omitempty"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signUpResponse struct {
	IDToken      string `json:"idToken"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
}

type signInWithPasswordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInWithPasswordResponse struct {
	IDToken      string `json:"idToken"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
	Registered   bool   `json:"registered"`
}

type signInWithCustomTokenRequest struct {
	Token             string `json:"token"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInWithCustomTokenResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type signInWithIdpRequest struct {
	RequestURI          string `json:"requestUri"`
	PostBody            string `json:"postBody"`
	ReturnSecureToken   bool   `json:"returnSecureToken"`
	ReturnIdpCredential bool   `json:"returnIdpCredential"`
}

type signInWithIdpResponse struct {
	FederatedID      string `json:"federatedId"`
	ProviderID       string `json:"providerId"`
	LocalID          string `json:"localId"`
	EmailVerified    bool   `json:"emailVerified"`
	Email            string `json:"email,omitempty"`
	OauthIDToken     string `json:"oauthIdToken,omitempty"`
	OauthAccessToken string `json:"oauthAccessToken,omitempty"`
	OauthTokenSecret string `json:"oauthTokenSecret,omitempty"`
	RawUserInfo      string `json:"rawUserInfo,omitempty"`
	FirstName        string `json:"firstName,omitempty"`
	LastName         string `json:"lastName,omitempty"`
	FullName         string `json:"fullName,omitempty"`
	DisplayName      string `json:"displayName,omitempty"`
	PhotoURL         string `json:"photoUrl,omitempty"`
	IDToken          string `json:"idToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        string `json:"expiresIn"`
	NeedConfirmation bool   `json:"needConfirmation,omitempty"`
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type lookupResponse struct {
	Users []UserData `json:"users"`
}

// updateAccountRequest covers the accounts:update variants: change email,
// change password, update profile, unlink providers, and confirm email
// verification. Unused fields stay empty and are omitted on the wire.
type updateAccountRequest struct {
	IDToken           string            `json:"idToken,omitempty"`
	Email             string            `json:"email,omitempty"`
	Password          string            `json:"password,omitempty"`
	DisplayName       string            `json:"displayName,omitempty"`
	PhotoURL          string            `json:"photoUrl,omitempty"`
	DeleteAttribute   []DeleteAttribute `json:"deleteAttribute,omitempty"`
	DeleteProvider    []string          `json:"deleteProvider,omitempty"`
	OOBCode           string            `json:"oobCode,omitempty"`
	ReturnSecureToken bool              `json:"returnSecureToken,omitempty"`
}

type updateAccountResponse struct {
	LocalID          string             `json:"localId"`
	Email            string             `json:"email,omitempty"`
	DisplayName      string             `json:"displayName,omitempty"`
	PhotoURL         string             `json:"photoUrl,omitempty"`
	PasswordHash     string             `json:"passwordHash,omitempty"`
	ProviderUserInfo []ProviderUserInfo `json:"providerUserInfo,omitempty"`
	EmailVerified    bool               `json:"emailVerified,omitempty"`
	IDToken          string             `json:"idToken,omitempty"`
	RefreshToken     string             `json:"refreshToken,omitempty"`
	ExpiresIn        string             `json:"expiresIn,omitempty"`
}

type linkWithPasswordRequest struct {
	IDToken           string `json:"idToken"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type linkWithPasswordResponse struct {
	LocalID          string             `json:"localId"`
	Email            string             `json:"email,omitempty"`
	DisplayName      string             `json:"displayName,omitempty"`
	PhotoURL         string             `json:"photoUrl,omitempty"`
	PasswordHash     string             `json:"passwordHash,omitempty"`
	ProviderUserInfo []ProviderUserInfo `json:"providerUserInfo,omitempty"`
	EmailVerified    bool               `json:"emailVerified,omitempty"`
	IDToken          string             `json:"idToken"`
	RefreshToken     string             `json:"refreshToken"`
	ExpiresIn        string             `json:"expiresIn"`
}

type linkWithIdpRequest struct {
	IDToken             string `json:"idToken"`
	RequestURI          string `json:"requestUri"`
	PostBody            string `json:"postBody"`
	ReturnSecureToken   bool   `json:"returnSecureToken"`
	ReturnIdpCredential bool   `json:"returnIdpCredential"`
}

type deleteAccountRequest struct {
	IDToken string `json:"idToken"`
}

type sendOOBCodeRequest struct {
	RequestType string `json:"requestType"`
	Email       string `json:"email,omitempty"`
	IDToken     string `json:"idToken,omitempty"`
}

type sendOOBCodeResponse struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	OOBCode     string `json:"oobCode"`
	NewPassword string `json:"newPassword,omitempty"`
}

type resetPasswordResponse struct {
	Email       string `json:"email"`
	RequestType string `json:"requestType,omitempty"`
}

type createAuthURIRequest struct {
	Identifier  string `json:"identifier"`
	ContinueURI string `json:"continueUri"`
}

type createAuthURIResponse struct {
	AllProviders []string `json:"allProviders,omitempty"`
	Registered   bool     `json:"registered"`
}

// tokenExchangeResponse is the secure-token host's reply. Unlike the
// identity-toolkit host it uses snake_case field names.
type tokenExchangeResponse struct {
	ExpiresIn    string `json:"expires_in"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	UserID       string `json:"user_id"`
	ProjectID    string `json:"project_id"`
}

// OOB request types accepted by accounts:sendOobCode.
const (
	oobTypePasswordReset = "PASSWORD_RESET"
	oobTypeVerifyEmail   = "VERIFY_EMAIL"
)
