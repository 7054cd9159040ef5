package authsdk

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse is the OAuth2 error envelope as it appears on the wire.
// Client code should use OAuth2Error instead.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenResponse represents the OAuth2 token endpoint response per RFC 6749.
// Returned from POST /v1/oauth2/token.
type TokenResponse struct {
	// AccessToken is the signed access token used to authenticate API requests
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the remaining lifetime of the access token in seconds
	ExpiresIn int64 `json:"expires_in"`

	// Scope is the space-delimited, sorted list of granted scopes
	Scope string `json:"scope"`

	// RefreshToken is never issued by this service; present for wire compatibility.
	RefreshToken string `json:"refresh_token,omitempty"`

	State string `json:"state,omitempty"`
}

// ============================================================================
// Debug Types
// ============================================================================

// NowResponse is returned from GET /v1/debug/now.
type NowResponse struct {
	Now string `json:"now" example:"2025-06-01T12:00:00Z"`
}

// WhoAmIResponse describes the caller as seen by GET /v1/debug/whoami.
// Anonymous callers get only Authenticated=false.
type WhoAmIResponse struct {
	Authenticated bool     `json:"authenticated"`
	UserID        string   `json:"user_id,omitempty"`
	ClientID      string   `json:"client_id,omitempty"`
	TokenID       string   `json:"token_id,omitempty"`
	Scope         string   `json:"scope,omitempty"`
	Authorities   []string `json:"authorities,omitempty"`
	ExpiresAt     string   `json:"expires_at,omitempty"`
}

// ============================================================================
// Client Types
// ============================================================================

// CreateClientRequest represents the request to register a new client.
type CreateClientRequest struct {
	// Name is the human-readable name for the client (defaults to the id)
	Name string `json:"name"`

	// Owner is the user the client acts for. Empty means the client acts as itself.
	Owner string `json:"owner,omitempty"`

	// Scopes is the list of scopes this client may be granted
	Scopes []string `json:"scopes"`
}

// CreateClientResponse contains the created client's ID and secret.
type CreateClientResponse struct {
	ClientID string `json:"client_id"`

	// ClientSecret is the plaintext secret. It is only returned once.
	ClientSecret string `json:"client_secret"`

	Scopes []string `json:"scopes"`
}

// ClientInfo represents a registered client. Secrets are never included.
type ClientInfo struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Owner  string   `json:"owner,omitempty"`
	Scopes []string `json:"scopes"`

	// CreatedAt and UpdatedAt are RFC3339 timestamps
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ListClientsResponse contains a list of clients, newest first.
type ListClientsResponse struct {
	Clients []ClientInfo `json:"clients"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Store indicates the client store connection status
	Store string `json:"store"`

	// Signer indicates the token signing capability status
	Signer string `json:"signer"`
}
