package idtoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// FirebaseClaims is the provider-specific claim block nested under the
// "firebase" key of every ID token.
type FirebaseClaims struct {
	SignInProvider string              `json:"sign_in_provider,omitempty"`
	Identities     map[string][]string `json:"identities,omitempty"`
	Tenant         string              `json:"tenant,omitempty"`
}

// Claims is the decoded payload of a Firebase ID token. UserID mirrors
// the registered subject claim and is the stable account identifier.
type Claims struct {
	jwt.RegisteredClaims

	UserID        string           `json:"user_id,omitempty"`
	Email         string           `json:"email,omitempty"`
	EmailVerified bool             `json:"email_verified,omitempty"`
	Name          string           `json:"name,omitempty"`
	Picture       string           `json:"picture,omitempty"`
	AuthTime      *jwt.NumericDate `json:"auth_time,omitempty"`
	Firebase      FirebaseClaims   `json:"firebase,omitempty"`
}

// ValidateIssuer checks the iss claim against the expected issuer.
func (c *Claims) ValidateIssuer(expected string) error {
	if c.Issuer != expected {
		return fmt.Errorf("idtoken: issuer mismatch: got %q, want %q", c.Issuer, expected)
	}
	return nil
}

// ValidateAudience checks that the aud claim contains the expected
// audience (the Firebase project ID).
func (c *Claims) ValidateAudience(expected string) error {
	for _, aud := range c.Audience {
		if aud == expected {
			return nil
		}
	}
	return fmt.Errorf("idtoken: audience mismatch: want %q", expected)
}

// ValidateExpiry checks exp and, when present, iat.
func (c *Claims) ValidateExpiry() error {
	now := time.Now()
	if c.ExpiresAt == nil {
		return errors.New("idtoken: missing exp claim")
	}
	if now.After(c.ExpiresAt.Time) {
		return errors.New("idtoken: token expired")
	}
	if c.IssuedAt != nil && c.IssuedAt.Time.After(now.Add(time.Minute)) {
		return errors.New("idtoken: token issued in the future")
	}
	return nil
}
