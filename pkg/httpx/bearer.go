package httpx

import (
	"net/http"
	"strings"
)

const bearerScheme = "bearer"

// BearerToken returns the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively. ok is false when the
// header is absent or uses another scheme.
func BearerToken(r *http.Request) (token string, ok bool) {
	scheme, rest, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// WriteBearerError writes an RFC 6750 challenge together with the OAuth2
// error envelope.
func WriteBearerError(w http.ResponseWriter, status int, code, desc string) {
	challenge := `Bearer error="` + code + `"`
	if desc != "" {
		challenge += `, error_description="` + desc + `"`
	}
	w.Header().Set("WWW-Authenticate", challenge)
	WriteJSON(w, status, bearerError{Code: code, Description: desc})
}

type bearerError struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}
