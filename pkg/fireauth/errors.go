package fireauth

import (
	"errors"
	"fmt"
	"strings"
)

// ============================================================================
// Error Codes
// ============================================================================

// ErrorCode is a classified Firebase Auth error code. The provider signals
// errors through the message string of its error envelope; classification
// maps that string onto this closed set. Unrecognised messages classify as
// ErrorCodeUnknown with the original text preserved.
type ErrorCode string

const (
	// ErrorCodeOperationNotAllowed: the operation is disabled for this project.
	ErrorCodeOperationNotAllowed ErrorCode = "OPERATION_NOT_ALLOWED"

	// ErrorCodeTooManyAttempts: all requests from this device have been
	// blocked due to unusual activity.
	ErrorCodeTooManyAttempts ErrorCode = "TOO_MANY_ATTEMPTS_TRY_LATER"

	// ErrorCodeInvalidAPIKey: the API key is not valid.
	ErrorCodeInvalidAPIKey ErrorCode = "INVALID_API_KEY"

	// ErrorCodeInvalidCustomToken: the custom token format is incorrect or
	// the token is invalid (expired, bad signature, etc).
	ErrorCodeInvalidCustomToken ErrorCode = "INVALID_CUSTOM_TOKEN"

	// ErrorCodeInvalidIDToken: the user's credential is no longer valid.
	// This is the single retry-eligible code; Session operations renew the
	// tokens once and repeat the call when they see it.
	ErrorCodeInvalidIDToken ErrorCode = "INVALID_ID_TOKEN"

	// ErrorCodeInvalidRefreshToken: an invalid refresh token was provided.
	ErrorCodeInvalidRefreshToken ErrorCode = "INVALID_REFRESH_TOKEN"

	// ErrorCodeInvalidGrantType: the grant type specified is invalid.
	ErrorCodeInvalidGrantType ErrorCode = "INVALID_GRANT_TYPE"

	// ErrorCodeInvalidPassword: the password is invalid or the user does
	// not have a password.
	ErrorCodeInvalidPassword ErrorCode = "INVALID_PASSWORD"

	// ErrorCodeInvalidIdpResponse: the supplied auth credential is
	// malformed or has expired.
	ErrorCodeInvalidIdpResponse ErrorCode = "INVALID_IDP_RESPONSE"

	// ErrorCodeInvalidEmail: the email address is badly formatted.
	ErrorCodeInvalidEmail ErrorCode = "INVALID_EMAIL"

	// ErrorCodeInvalidLoginCredentials: the supplied credentials are
	// malformed or have expired.
	ErrorCodeInvalidLoginCredentials ErrorCode = "INVALID_LOGIN_CREDENTIALS"

	// ErrorCodeCredentialMismatch: the custom token corresponds to a
	// different Firebase project.
	ErrorCodeCredentialMismatch ErrorCode = "CREDENTIAL_MISMATCH"

	// ErrorCodeCredentialTooOld: the user's credential is no longer valid
	// and the user must sign in again.
	ErrorCodeCredentialTooOld ErrorCode = "CREDENTIAL_TOO_OLD_LOGIN_AGAIN"

	// ErrorCodeTokenExpired: the user's credential has expired.
	ErrorCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"

	// ErrorCodeUserDisabled: the account has been disabled by an
	// administrator.
	ErrorCodeUserDisabled ErrorCode = "USER_DISABLED"

	// ErrorCodeUserNotFound: no user corresponds to the given identifier
	// or refresh token. The user may have been deleted.
	ErrorCodeUserNotFound ErrorCode = "USER_NOT_FOUND"

	// ErrorCodeMissingRefreshToken: no refresh token was provided.
	ErrorCodeMissingRefreshToken ErrorCode = "MISSING_REFRESH_TOKEN"

	// ErrorCodeEmailExists: the email address is already in use by another
	// account.
	ErrorCodeEmailExists ErrorCode = "EMAIL_EXISTS"

	// ErrorCodeEmailNotFound: no user record corresponds to this email.
	ErrorCodeEmailNotFound ErrorCode = "EMAIL_NOT_FOUND"

	// ErrorCodeWeakPassword: the password must be 6 characters long or more.
	ErrorCodeWeakPassword ErrorCode = "WEAK_PASSWORD"

	// ErrorCodeFederatedUserAlreadyLinked: this credential is already
	// associated with a different user account.
	ErrorCodeFederatedUserAlreadyLinked ErrorCode = "FEDERATED_USER_ID_ALREADY_LINKED"

	// ErrorCodeExpiredOOBCode: the action code has expired.
	ErrorCodeExpiredOOBCode ErrorCode = "EXPIRED_OOB_CODE"

	// ErrorCodeInvalidOOBCode: the action code is malformed, expired, or
	// has already been used.
	ErrorCodeInvalidOOBCode ErrorCode = "INVALID_OOB_CODE"

	// ErrorCodeInvalidJSONPayload: the provider rejected the request body.
	// The message embeds the offending field name, so classification is by
	// prefix rather than exact match and the full text is preserved.
	ErrorCodeInvalidJSONPayload ErrorCode = "INVALID_JSON_PAYLOAD"

	// ErrorCodeUnknown: the message did not match any known code. The
	// original text is preserved on the APIError.
	ErrorCodeUnknown ErrorCode = "UNKNOWN"
)

// invalidJSONPayloadPrefix is the fixed prefix of the one provider message
// that embeds dynamic field names.
const invalidJSONPayloadPrefix = "Invalid JSON payload received. Unknown name"

// exact-match classification table.
var errorCodeTable = map[string]ErrorCode{
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

// classifyErrorCode maps a raw provider error message onto the closed
// ErrorCode set. It is total: every input yields a code, with
// ErrorCodeUnknown as the fallback. The caller keeps the raw message
// alongside the code, so no information is lost by classification.
func classifyErrorCode(message string) ErrorCode {
	if strings.HasPrefix(message, invalidJSONPayloadPrefix) {
		return ErrorCodeInvalidJSONPayload
	}
	if code, ok := errorCodeTable[message]; ok {
		return code
	}
	return ErrorCodeUnknown
}

// ============================================================================
// API Error
// ============================================================================

// ErrorResponse is the provider's structured error envelope:
//
//	{ "error": { "code": 400, "message": "...", "errors": [...] } }
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is the inner error object of the envelope.
type ErrorDetail struct {
	Code    int64          `json:"code"`
	Message string         `json:"message"`
	Errors  []ErrorElement `json:"errors,omitempty"`
}

// ErrorElement is an individual entry of the envelope's errors list.
type ErrorElement struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// APIError is a classified failure reported by the provider. It carries the
// HTTP status, the classified code, and the raw envelope so callers can
// inspect unrecognised messages.
type APIError struct {
	// StatusCode is the HTTP status of the failed response.
	StatusCode int

	// Code is the classified error code.
	Code ErrorCode

	// Message is the raw provider message, preserved verbatim.
	Message string

	// Response is the decoded error envelope.
	Response ErrorResponse
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("fireauth: api error (%d) %s: %s", e.StatusCode, e.Code, e.Message)
}

// Retryable reports whether this failure is eligible for the one-shot
// refresh-and-retry protocol. Only an invalidated ID token qualifies;
// everything else, including rate limiting, propagates to the caller.
func (e *APIError) Retryable() bool {
	return e.Code == ErrorCodeInvalidIDToken
}

// AsAPIError unwraps err into an *APIError if one is in its chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// newAPIError classifies the envelope message and builds the error value.
func newAPIError(statusCode int, envelope ErrorResponse) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       classifyErrorCode(envelope.Error.Message),
		Message:    envelope.Error.Message,
		Response:   envelope,
	}
}

// ============================================================================
// Sentinel Errors
// ============================================================================

var (
	// ErrMissingAPIKey is returned by NewClient when no API key is set.
	ErrMissingAPIKey = errors.New("fireauth: missing API key")

	// ErrSessionConsumed is returned when an operation is invoked on a
	// Session that has already been consumed by a previous operation. The
	// successor returned by that operation is the only live handle.
	ErrSessionConsumed = errors.New("fireauth: session already consumed, use the returned successor")

	// ErrMissingUserData is returned when an accounts:lookup success
	// response carries no users.
	ErrMissingUserData = errors.New("fireauth: lookup returned no user data")
)

// isRetryableError reports whether err classifies as the single
// retry-eligible failure kind. Transport and decode failures never do.
func isRetryableError(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Retryable()
}
