package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the FamilyTree authentication service.
// It provides access to unauthenticated operations and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// CheckScopes determines whether to perform client-side scope validation
	// before making API requests. Set to false in tests that exercise the
	// server-side checks.
	// Default: true
	CheckScopes bool
}

// NewSDKClient creates a new auth service client with scope checking enabled.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		CheckScopes: true,
	}
}

// AuthenticateWithClientCredentials creates an authenticated session using
// the client_credentials grant. The session re-authenticates with the same
// credentials when its token is about to expire.
func (c *SDKClient) AuthenticateWithClientCredentials(
	ctx context.Context,
	clientID, clientSecret string,
	scopes []string,
) (*Session, error) {
	tokenResp, err := c.ClientCredentialsGrant(ctx, clientID, clientSecret, scopes)
	if err != nil {
		return nil, err
	}

	return newSession(c, credentials{id: clientID, secret: clientSecret, scopes: scopes}, tokenResp), nil
}

// NewSessionFromToken wraps an existing access token. The session cannot
// renew it.
func (c *SDKClient) NewSessionFromToken(accessToken, scope string, expiresIn int64) *Session {
	return newSession(c, credentials{}, &TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		Scope:       scope,
	})
}
