package fireauth_test

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/fireauth/pkg/fireauth"
	"github.com/aussiebroadwan/fireauth/pkg/idx"
)

// liveClient builds a client against the real provider, or skips the test
// when no API key is configured. A .env at the repo root is honoured so
// the suite can run locally without exporting anything.
func liveClient(t *testing.T) *fireauth.Client {
	t.Helper()

	_ = godotenv.Load("../../../.env")

	apiKey := os.Getenv("FIREBASE_API_KEY")
	if apiKey == "" {
		t.Skip("FIREBASE_API_KEY is not set, skipping live provider test")
	}

	client, err := fireauth.NewClient(fireauth.Config{APIKey: apiKey})
	require.NoError(t, err)
	return client
}

// throwawayCredentials returns a unique email/password pair for a
// disposable test account.
func throwawayCredentials() (string, string) {
	tag := strings.ToLower(idx.New().String())
	return fmt.Sprintf("e2e-%s@example.com", tag), "pw-" + tag
}
