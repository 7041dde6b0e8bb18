package fireauth

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewTokenPair(t *testing.T) {
	t.Parallel()

	t.Run("parses expiry seconds", func(t *testing.T) {
		before := time.Now()
		pair, err := newTokenPair("id-1", "refresh-1", "3600")
		require.NoError(t, err)

		require.Equal(t, "id-1", pair.IDToken)
		require.Equal(t, "refresh-1", pair.RefreshToken)
		require.Equal(t, time.Hour, pair.ExpiresIn)
		require.False(t, pair.IssuedAt.Before(before))
	})

	t.Run("empty expiry tolerated", func(t *testing.T) {
		pair, err := newTokenPair("id-1", "refresh-1", "")
		require.NoError(t, err)
		require.Zero(t, pair.ExpiresIn)
	})

	t.Run("malformed expiry rejected", func(t *testing.T) {
		// Strict parse: trailing garbage after the digits is an error too.
		for _, in := range []string{"soon", "3600oops", "36 00", "0x10"} {
			_, err := newTokenPair("id-1", "refresh-1", in)
			require.Error(t, err, "expiresIn %q", in)
		}
	})
}

func TestParseProviderID(t *testing.T) {
	t.Parallel()

	for _, known := range []string{
		"password", "google.com", "facebook.com", "twitter.com", "github.com", "apple.com",
	} {
		p, err := ParseProviderID(known)
		require.NoError(t, err)
		require.Equal(t, known, p.String())
	}

	_, err := ParseProviderID("myspace.com")
	require.Error(t, err)
}

func TestIdpCredentialPostBody(t *testing.T) {
	t.Parallel()

	t.Run("google id token", func(t *testing.T) {
		values, err := url.ParseQuery(GoogleIDToken("g-token").postBody())
		require.NoError(t, err)
		require.Equal(t, "g-token", values.Get("id_token"))
		require.Equal(t, "google.com", values.Get("providerId"))
	})

	t.Run("facebook access token", func(t *testing.T) {
		values, err := url.ParseQuery(FacebookAccessToken("fb-token").postBody())
		require.NoError(t, err)
		require.Equal(t, "fb-token", values.Get("access_token"))
		require.Equal(t, "facebook.com", values.Get("providerId"))
	})

	t.Run("twitter token and secret", func(t *testing.T) {
		values, err := url.ParseQuery(TwitterAccessToken("tw-token", "tw-secret").postBody())
		require.NoError(t, err)
		require.Equal(t, "tw-token", values.Get("access_token"))
		require.Equal(t, "tw-secret", values.Get("oauth_token_secret"))
		require.Equal(t, "twitter.com", values.Get("providerId"))
	})

	t.Run("values are escaped", func(t *testing.T) {
		values, err := url.ParseQuery(GoogleIDToken("a&b=c d").postBody())
		require.NoError(t, err)
		require.Equal(t, "a&b=c d", values.Get("id_token"))
	})
}
