package fireauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// localeHeader is attached to the operations that cause the provider to
// send templated email (verification, password reset, change notices).
const localeHeader = "X-Firebase-Locale"

// transport performs a single request/response exchange against a named
// remote operation. It is the one resource shared by a Client and every
// Session generation it produces: logically read-only after construction,
// so successor Sessions reuse it freely.
type transport struct {
	client         *http.Client
	apiKey         string
	locale         string
	identityURL    string
	secureTokenURL string
}

// postJSON sends a JSON request to a named identity-toolkit operation
// (e.g. "accounts:signUp") and decodes the success payload into out.
// Non-2xx responses decode the provider's error envelope and classify it.
func (t *transport) postJSON(ctx context.Context, op string, in, out any, withLocale bool) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("fireauth: encode %s request: %w", op, err)
	}

	endpoint := fmt.Sprintf("%s/%s?key=%s", t.identityURL, op, url.QueryEscape(t.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("fireauth: build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if withLocale && t.locale != "" {
		req.Header.Set(localeHeader, t.locale)
	}

	return t.do(req, op, out)
}

// postForm sends a form-encoded grant to the secure-token host's token
// endpoint. The token exchange is the one operation that lives on a
// different host and body encoding.
func (t *transport) postForm(ctx context.Context, data url.Values, out any) error {
	endpoint := fmt.Sprintf("%s/token?key=%s", t.secureTokenURL, url.QueryEscape(t.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("fireauth: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return t.do(req, "token", out)
}

// do executes the request and decodes either the success payload or the
// error envelope. The body is read once so error parsing and decoding
// work from the same bytes.
func (t *transport) do(req *http.Request, op string, out any) error {
	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("fireauth: %s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("fireauth: read %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope ErrorResponse
		if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Message == "" {
			return fmt.Errorf("fireauth: %s failed with status %d: undecodable error body %q",
				op, resp.StatusCode, string(body))
		}
		return newAPIError(resp.StatusCode, envelope)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("fireauth: decode %s response: %w", op, err)
	}

	return nil
}
