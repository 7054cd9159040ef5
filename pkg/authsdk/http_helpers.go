package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// url joins path onto the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doRequest sends an unauthenticated request.
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
	opts ...func(*http.Request),
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// doAuthRequest sends a request carrying the session's bearer token.
//
// Scopes are checked client side first (see SDKClient.CheckScopes). If the
// server answers 401 invalid_token and the session holds credentials, the
// session re-authenticates once and replays the request. This covers a
// server that restarted with a new signing key.
func (s *Session) doAuthRequest(
	ctx context.Context,
	method, path string,
	body []byte,
	headers map[string]string,
	requiredScopes ...string,
) (*http.Response, error) {
	if err := s.checkScopes(requiredScopes...); err != nil {
		return nil, err
	}

	send := func() (*http.Response, error) {
		token, err := s.getValidToken(ctx)
		if err != nil {
			return nil, err
		}

		var r io.Reader
		if body != nil {
			r = bytes.NewReader(body)
		}
		return s.client.doRequest(ctx, method, path, r, headers, func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		})
	}

	resp, err := send()
	if err != nil || resp.StatusCode != http.StatusUnauthorized || !s.canRenew() {
		return resp, err
	}

	// Peek at the rejection; anything but invalid_token goes back to the caller.
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	var oe *OAuth2Error
	if !errors.As(parseErrorResponse(resp, raw), &oe) || oe.Code != ErrorCodeInvalidToken {
		resp.Body = io.NopCloser(bytes.NewReader(raw))
		return resp, nil
	}

	s.expire()
	return send()
}

// jsonBody marshals v for doAuthRequest along with its Content-Type header.
func jsonBody(v any) ([]byte, map[string]string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return b, map[string]string{"Content-Type": "application/json"}, nil
}

// decodeJSON reads resp into target when it has the expected status, or
// turns it into an *OAuth2Error otherwise.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// checkStatusNoContent expects a 204.
func checkStatusNoContent(resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, bodyBytes)
	}
	return nil
}
