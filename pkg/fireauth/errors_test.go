package fireauth

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("known messages", func(t *testing.T) {
		cases := map[string]ErrorCode{
			"OPERATION_NOT_ALLOWED":            ErrorCodeOperationNotAllowed,
			"TOO_MANY_ATTEMPTS_TRY_LATER":      ErrorCodeTooManyAttempts,
			"INVALID_API_KEY":                  ErrorCodeInvalidAPIKey,
			"INVALID_CUSTOM_TOKEN":             ErrorCodeInvalidCustomToken,
			"INVALID_ID_TOKEN":                 ErrorCodeInvalidIDToken,
			"INVALID_REFRESH_TOKEN":            ErrorCodeInvalidRefreshToken,
			"INVALID_GRANT_TYPE":               ErrorCodeInvalidGrantType,
			"INVALID_PASSWORD":                 ErrorCodeInvalidPassword,
			"INVALID_IDP_RESPONSE":             ErrorCodeInvalidIdpResponse,
			"INVALID_EMAIL":                    ErrorCodeInvalidEmail,
			"INVALID_LOGIN_CREDENTIALS":        ErrorCodeInvalidLoginCredentials,
			"CREDENTIAL_MISMATCH":              ErrorCodeCredentialMismatch,
			"CREDENTIAL_TOO_OLD_LOGIN_AGAIN":   ErrorCodeCredentialTooOld,
			"TOKEN_EXPIRED":                    ErrorCodeTokenExpired,
			"USER_DISABLED":                    ErrorCodeUserDisabled,
			"USER_NOT_FOUND":                   ErrorCodeUserNotFound,
			"MISSING_REFRESH_TOKEN":            ErrorCodeMissingRefreshToken,
			"EMAIL_EXISTS":                     ErrorCodeEmailExists,
			"EMAIL_NOT_FOUND":                  ErrorCodeEmailNotFound,
			"WEAK_PASSWORD":                    ErrorCodeWeakPassword,
			"FEDERATED_USER_ID_ALREADY_LINKED": ErrorCodeFederatedUserAlreadyLinked,
			"EXPIRED_OOB_CODE":                 ErrorCodeExpiredOOBCode,
			"INVALID_OOB_CODE":                 ErrorCodeInvalidOOBCode,
		}

		for message, want := range cases {
			require.Equal(t, want, classifyErrorCode(message), "message %q", message)
		}
	})

	t.Run("invalid JSON payload matches by prefix", func(t *testing.T) {
		message := `Invalid JSON payload received. Unknown name "emial": Cannot find field.`
		require.Equal(t, ErrorCodeInvalidJSONPayload, classifyErrorCode(message))
	})

	t.Run("unrecognised message falls back to unknown", func(t *testing.T) {
		require.Equal(t, ErrorCodeUnknown, classifyErrorCode("SOME_NEW_PROVIDER_ERROR"))
		require.Equal(t, ErrorCodeUnknown, classifyErrorCode(""))
	})

	t.Run("classification is exact, not substring", func(t *testing.T) {
		// Messages that merely contain a known code do not classify as it.
		require.Equal(t, ErrorCodeUnknown, classifyErrorCode("WEAK_PASSWORD : Password should be at least 6 characters"))
		require.Equal(t, ErrorCodeUnknown, classifyErrorCode("prefix INVALID_ID_TOKEN"))
	})
}

func TestNewAPIError(t *testing.T) {
	t.Parallel()

	envelope := ErrorResponse{
		Error: ErrorDetail{
			Code:    400,
			Message: "EMAIL_EXISTS",
			Errors: []ErrorElement{
				{Domain: "global", Reason: "invalid", Message: "EMAIL_EXISTS"},
			},
		},
	}

	apiErr := newAPIError(400, envelope)
	require.Equal(t, 400, apiErr.StatusCode)
	require.Equal(t, ErrorCodeEmailExists, apiErr.Code)
	require.Equal(t, "EMAIL_EXISTS", apiErr.Message)
	require.Equal(t, envelope, apiErr.Response)
	require.Contains(t, apiErr.Error(), "EMAIL_EXISTS")
}

func TestAPIErrorPreservesUnknownMessage(t *testing.T) {
	t.Parallel()

	raw := "BRAND_NEW_FAILURE_MODE: something odd"
	apiErr := newAPIError(400, ErrorResponse{Error: ErrorDetail{Code: 400, Message: raw}})

	require.Equal(t, ErrorCodeUnknown, apiErr.Code)
	require.Equal(t, raw, apiErr.Message)
	require.Contains(t, apiErr.Error(), raw)
}

func TestAPIErrorRetryable(t *testing.T) {
	t.Parallel()

	retryable := &APIError{Code: ErrorCodeInvalidIDToken}
	require.True(t, retryable.Retryable())

	for _, code := range []ErrorCode{
		ErrorCodeTokenExpired,
		ErrorCodeCredentialTooOld,
		ErrorCodeUserNotFound,
		ErrorCodeTooManyAttempts,
		ErrorCodeUnknown,
	} {
		require.False(t, (&APIError{Code: code}).Retryable(), "code %s", code)
	}
}

func TestAsAPIError(t *testing.T) {
	t.Parallel()

	apiErr := &APIError{StatusCode: 401, Code: ErrorCodeInvalidIDToken, Message: "INVALID_ID_TOKEN"}
	wrapped := fmt.Errorf("lookup account: %w", apiErr)

	got, ok := AsAPIError(wrapped)
	require.True(t, ok)
	require.Same(t, apiErr, got)

	_, ok = AsAPIError(errors.New("plain failure"))
	require.False(t, ok)

	require.True(t, isRetryableError(wrapped))
	require.False(t, isRetryableError(errors.New("plain failure")))
}
