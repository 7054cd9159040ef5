package http

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
)

var errMalformedBasic = errors.New("malformed basic authorization header")

// clientCredentials resolves the caller's client credentials.
//
// An "Authorization: Basic base64(id:secret)" header wins; the scheme is
// matched case-insensitively and the decoded value is split on the first
// colon. Without an Authorization header, non-empty client_id and
// client_secret form fields are accepted. r.ParseForm must have run.
//
// Returns nil, nil when no credentials were presented.
func clientCredentials(r *http.Request) (*domain.ClientCredentials, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		id := strings.TrimSpace(r.PostForm.Get("client_id"))
		secret := r.PostForm.Get("client_secret")
		if id == "" || secret == "" {
			return nil, nil
		}
		return &domain.ClientCredentials{ID: domain.ClientID(id), Secret: secret}, nil
	}

	scheme, encoded, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "basic") {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, errMalformedBasic
	}

	id, secret, ok := strings.Cut(string(raw), ":")
	if !ok {
		return nil, errMalformedBasic
	}

	return &domain.ClientCredentials{ID: domain.ClientID(id), Secret: secret}, nil
}
