package fireauth

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendPasswordResetEmail(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	provider.handle("accounts:sendOobCode", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		require.Equal(t, "PASSWORD_RESET", body["requestType"])
		require.Equal(t, "user@example.com", body["email"])
		require.Equal(t, "fr", r.Header.Get("X-Firebase-Locale"))
		writeJSON(w, http.StatusOK, `{"email":"user@example.com"}`)
	})

	client := newTestClient(t, provider)
	require.NoError(t, client.SendPasswordResetEmail(context.Background(), "user@example.com"))
}

func TestVerifyPasswordResetCode(t *testing.T) {
	t.Parallel()

	t.Run("valid code", func(t *testing.T) {
		provider := newFakeProvider()
		provider.handle("accounts:resetPassword", func(w http.ResponseWriter, r *http.Request) {
			body := decodeBody(t, r)
			require.Equal(t, "oob-123", body["oobCode"])
			require.NotContains(t, body, "newPassword")
			writeJSON(w, http.StatusOK, `{"email":"user@example.com","requestType":"PASSWORD_RESET"}`)
		})

		client := newTestClient(t, provider)
		email, err := client.VerifyPasswordResetCode(context.Background(), "oob-123")
		require.NoError(t, err)
		require.Equal(t, "user@example.com", email)
	})

	t.Run("expired code", func(t *testing.T) {
		provider := newFakeProvider()
		provider.handle("accounts:resetPassword", rejectWith(http.StatusBadRequest, "EXPIRED_OOB_CODE"))

		client := newTestClient(t, provider)
		_, err := client.VerifyPasswordResetCode(context.Background(), "oob-stale")

		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		require.Equal(t, ErrorCodeExpiredOOBCode, apiErr.Code)
	})
}

func TestConfirmPasswordReset(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	provider.handle("accounts:resetPassword", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		require.Equal(t, "oob-123", body["oobCode"])
		require.Equal(t, "new password", body["newPassword"])
		writeJSON(w, http.StatusOK, `{"email":"user@example.com"}`)
	})

	client := newTestClient(t, provider)
	email, err := client.ConfirmPasswordReset(context.Background(), "oob-123", "new password")
	require.NoError(t, err)
	require.Equal(t, "user@example.com", email)
}

func TestConfirmEmailVerification(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	provider.handle("accounts:update", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		require.Equal(t, "oob-456", body["oobCode"])
		require.NotContains(t, body, "idToken")
		writeJSON(w, http.StatusOK, `{"localId":"local-1","emailVerified":true}`)
	})

	client := newTestClient(t, provider)
	require.NoError(t, client.ConfirmEmailVerification(context.Background(), "oob-456"))
}

func TestFetchSignInMethodsForEmail(t *testing.T) {
	t.Parallel()

	t.Run("registered account", func(t *testing.T) {
		provider := newFakeProvider()
		provider.handle("accounts:createAuthUri", func(w http.ResponseWriter, r *http.Request) {
			body := decodeBody(t, r)
			require.Equal(t, "user@example.com", body["identifier"])
			require.Equal(t, "https://app.example.com", body["continueUri"])
			writeJSON(w, http.StatusOK,
				`{"allProviders":["password","google.com"],"registered":true,"sessionId":"s1"}`)
		})

		client := newTestClient(t, provider)
		methods, err := client.FetchSignInMethodsForEmail(context.Background(), "user@example.com", "https://app.example.com")
		require.NoError(t, err)
		require.True(t, methods.Registered)
		require.Equal(t, []ProviderID{ProviderPassword, ProviderGoogle}, methods.Providers)
	})

	t.Run("unknown email", func(t *testing.T) {
		provider := newFakeProvider()
		provider.handle("accounts:createAuthUri", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"registered":false,"sessionId":"s2"}`)
		})

		client := newTestClient(t, provider)
		methods, err := client.FetchSignInMethodsForEmail(context.Background(), "nobody@example.com", "https://app.example.com")
		require.NoError(t, err)
		require.False(t, methods.Registered)
		require.Empty(t, methods.Providers)
	})
}
