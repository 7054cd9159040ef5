package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// ClientCredentialsGrant requests an access token using the OAuth2
// client_credentials grant. Credentials are sent with HTTP Basic auth.
// A nil or empty scopes asks for every scope the client is allowed.
//
// No refresh token is returned; clients re-authenticate instead.
func (c *SDKClient) ClientCredentialsGrant(
	ctx context.Context,
	clientID, clientSecret string,
	scopes []string,
) (*TokenResponse, error) {
	data := url.Values{
		"grant_type": {"client_credentials"},
	}
	if len(scopes) > 0 {
		data.Set("scope", strings.Join(scopes, " "))
	}

	return c.RequestToken(ctx, data, func(req *http.Request) {
		req.SetBasicAuth(clientID, clientSecret)
	})
}

// RequestToken posts form to the token endpoint. Each option may decorate
// the request, e.g. to add client authentication.
func (c *SDKClient) RequestToken(ctx context.Context, form url.Values, opts ...func(*http.Request)) (*TokenResponse, error) {
	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/oauth2/token", strings.NewReader(form.Encode()), headers, opts...)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &tokenResp, nil
}
