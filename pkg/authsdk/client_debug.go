package authsdk

import (
	"context"
	"net/http"
)

// Debug endpoints are only mounted when the server enables them.

// GetNow returns the server clock.
func (c *SDKClient) GetNow(ctx context.Context) (*NowResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/debug/now", nil, nil)
	if err != nil {
		return nil, err
	}

	var now NowResponse
	if err := decodeJSON(resp, &now, http.StatusOK); err != nil {
		return nil, err
	}
	return &now, nil
}

// WhoAmI returns the principal the server resolved from the session token.
func (s *Session) WhoAmI(ctx context.Context) (*WhoAmIResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/debug/whoami", nil, nil)
	if err != nil {
		return nil, err
	}

	var who WhoAmIResponse
	if err := decodeJSON(resp, &who, http.StatusOK); err != nil {
		return nil, err
	}
	return &who, nil
}
