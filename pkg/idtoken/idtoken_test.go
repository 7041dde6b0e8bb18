package idtoken

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testProject = "demo-project"

// signTestToken mints an RS256 token the way the securetoken service
// does: kid in the header, issuer and audience bound to the project.
func signTestToken(t *testing.T, key *rsa.PrivateKey, kid string, mutate func(*Claims)) string {
	t.Helper()

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://securetoken.google.com/" + testProject,
			Audience:  jwt.ClaimStrings{testProject},
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID:        "user-1",
		Email:         "user@example.com",
		EmailVerified: true,
		Firebase: FirebaseClaims{
			SignInProvider: "password",
			Identities:     map[string][]string{"email": {"user@example.com"}},
		},
	}
	if mutate != nil {
		mutate(claims)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid

	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func newTestVerifier(t *testing.T, key *rsa.PrivateKey, kid string) *Verifier {
	t.Helper()

	jwks := keyfunc.NewGiven(map[string]keyfunc.GivenKey{
		kid: keyfunc.NewGivenCustom(&key.PublicKey, keyfunc.GivenKeyOptions{
			Algorithm: "RS256",
		}),
	})
	return NewVerifierFromJWKS(jwks, testProject)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	t.Run("extracts claims without verification", func(t *testing.T) {
		signed := signTestToken(t, key, "kid-1", nil)

		claims, err := Decode(signed)
		require.NoError(t, err)
		require.Equal(t, "user-1", claims.UserID)
		require.Equal(t, "user@example.com", claims.Email)
		require.True(t, claims.EmailVerified)
		require.Equal(t, "password", claims.Firebase.SignInProvider)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := Decode("not.a.jwt")
		require.Error(t, err)
	})

	t.Run("subject falls back from user_id to sub", func(t *testing.T) {
		signed := signTestToken(t, key, "kid-1", func(c *Claims) {
			c.UserID = ""
		})

		sub, err := Subject(signed)
		require.NoError(t, err)
		require.Equal(t, "user-1", sub)
	})
}

func TestVerify(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		verifier := newTestVerifier(t, key, "kid-1")
		signed := signTestToken(t, key, "kid-1", nil)

		claims, err := verifier.Verify(signed)
		require.NoError(t, err)
		require.Equal(t, "user-1", claims.UserID)
	})

	t.Run("unknown kid", func(t *testing.T) {
		verifier := newTestVerifier(t, key, "kid-1")
		signed := signTestToken(t, key, "kid-other", nil)

		_, err := verifier.Verify(signed)
		require.Error(t, err)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)

		verifier := newTestVerifier(t, key, "kid-1")
		signed := signTestToken(t, otherKey, "kid-1", nil)

		_, err = verifier.Verify(signed)
		require.Error(t, err)
	})

	t.Run("wrong audience", func(t *testing.T) {
		verifier := newTestVerifier(t, key, "kid-1")
		signed := signTestToken(t, key, "kid-1", func(c *Claims) {
			c.Audience = jwt.ClaimStrings{"another-project"}
		})

		_, err := verifier.Verify(signed)
		require.ErrorContains(t, err, "audience")
	})

	t.Run("wrong issuer", func(t *testing.T) {
		verifier := newTestVerifier(t, key, "kid-1")
		signed := signTestToken(t, key, "kid-1", func(c *Claims) {
			c.Issuer = "https://securetoken.google.com/another-project"
		})

		_, err := verifier.Verify(signed)
		require.ErrorContains(t, err, "issuer")
	})

	t.Run("expired token", func(t *testing.T) {
		verifier := newTestVerifier(t, key, "kid-1")
		signed := signTestToken(t, key, "kid-1", func(c *Claims) {
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		})

		_, err := verifier.Verify(signed)
		require.Error(t, err)
	})

	t.Run("rejects non-RS256 algorithms", func(t *testing.T) {
		verifier := newTestVerifier(t, key, "kid-1")

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
		token.Header["kid"] = "kid-1"
		signed, err := token.SignedString([]byte("shared-secret"))
		require.NoError(t, err)

		_, err = verifier.Verify(signed)
		require.Error(t, err)
	})
}

func TestClaimsValidation(t *testing.T) {
	t.Parallel()

	t.Run("missing exp", func(t *testing.T) {
		c := &Claims{}
		require.Error(t, c.ValidateExpiry())
	})

	t.Run("future iat", func(t *testing.T) {
		c := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		require.Error(t, c.ValidateExpiry())
	})

	t.Run("valid window", func(t *testing.T) {
		c := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		}}
		require.NoError(t, c.ValidateExpiry())
	})
}
