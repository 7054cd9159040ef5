package authsdk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// expiryBuffer renews a token this long before it actually expires.
const expiryBuffer = 30 * time.Second

// ErrSessionExpired is returned when the access token has expired and the
// session holds no credentials to obtain another.
var ErrSessionExpired = errors.New("authsdk: access token expired and session cannot re-authenticate")

type credentials struct {
	id     string
	secret string
	scopes []string
}

// Session represents an authenticated client session.
// Sessions created from client credentials re-authenticate automatically
// when the access token expires.
type Session struct {
	client *SDKClient
	creds  credentials

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
	scopes      map[string]bool // Granted scopes for fast lookup
}

// newSession creates a new authenticated session from a token response.
func newSession(client *SDKClient, creds credentials, tokenResp *TokenResponse) *Session {
	s := &Session{client: client, creds: creds}
	s.apply(tokenResp)
	return s
}

func (s *Session) apply(tokenResp *TokenResponse) {
	s.accessToken = tokenResp.AccessToken
	s.expiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - expiryBuffer)
	s.scopes = parseScopes(tokenResp.Scope)
}

// parseScopes parses a space-delimited scope string into a map for fast lookup.
func parseScopes(scopeStr string) map[string]bool {
	parts := strings.Fields(scopeStr)
	scopes := make(map[string]bool, len(parts))
	for _, scope := range parts {
		scopes[scope] = true
	}
	return scopes
}

// getValidToken returns a valid access token, re-authenticating if expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock (another goroutine may have renewed)
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	if s.creds.id == "" {
		return "", ErrSessionExpired
	}

	tokenResp, err := s.client.ClientCredentialsGrant(ctx, s.creds.id, s.creds.secret, s.creds.scopes)
	if err != nil {
		return "", fmt.Errorf("failed to renew token: %w", err)
	}
	s.apply(tokenResp)

	return s.accessToken, nil
}

func (s *Session) canRenew() bool { return s.creds.id != "" }

// expire forces the next request to fetch a fresh token.
func (s *Session) expire() {
	s.mu.Lock()
	s.expiresAt = time.Time{}
	s.mu.Unlock()
}

// AccessToken returns the current access token without checking expiration.
// For most use cases, prefer using the Session methods which renew automatically.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// Scopes returns a copy of the current granted scopes as a slice.
func (s *Session) Scopes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scopes := make([]string, 0, len(s.scopes))
	for scope := range s.scopes {
		scopes = append(scopes, scope)
	}
	return scopes
}

// HasScope returns true if the session has the specified scope.
func (s *Session) HasScope(scope string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scopes[scope]
}

// HasAnyScope returns true if the session has at least one of the specified scopes.
func (s *Session) HasAnyScope(scopes ...string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, scope := range scopes {
		if s.scopes[scope] {
			return true
		}
	}
	return false
}

// checkScopes checks if the session has all required scopes.
// Returns an error if scope checking is enabled and scopes are missing.
func (s *Session) checkScopes(required ...string) error {
	if !s.client.CheckScopes || len(required) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var missing []string
	for _, scope := range required {
		if !s.scopes[scope] {
			missing = append(missing, scope)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required scope(s): %s", strings.Join(missing, ", "))
	}

	return nil
}
