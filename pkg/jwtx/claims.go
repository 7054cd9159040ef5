package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the default lifetime for access tokens.
const DefaultAccessTokenTTL = time.Hour

// Claim names as they appear on the wire.
const (
	ClaimIssuer    = "iss"
	ClaimSubject   = "sub"
	ClaimAudience  = "aud"
	ClaimExpiresAt = "exp"
	ClaimNotBefore = "nbf"
	ClaimIssuedAt  = "iat"
	ClaimID        = "jti"
	ClaimScope     = "scope"
)

// Claims are the access-token claims. Scope is a pointer so an absent claim
// can be told apart from an empty scope string.
type Claims struct {
	jwt.RegisteredClaims

	// Canonical space-delimited scope string, "a b c".
	Scope *string `json:"scope,omitempty"`
}

// NewAccessClaims builds the full set of claims for an access token.
// NotBefore is pinned to issuedAt.
func NewAccessClaims(
	issuer, subject, audience, jti, scope string,
	issuedAt, expiresAt time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        jti,
		},
		Scope: &scope,
	}
}

// ValidateIssuer fails only when an issuer is present and differs from the
// expected value. A missing issuer is reported by ValidateRequired.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" || c.Issuer == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry checks exp then nbf against now. A token is valid while
// now < exp. Leeway widens both bounds.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}

// ValidateRequired reports the first absent claim out of jti, aud, sub,
// exp, iat, iss and scope.
func (c *Claims) ValidateRequired() error {
	switch {
	case c.ID == "":
		return &MissingClaimError{Claim: ClaimID}
	case len(c.Audience) == 0 || c.Audience[0] == "":
		return &MissingClaimError{Claim: ClaimAudience}
	case c.Subject == "":
		return &MissingClaimError{Claim: ClaimSubject}
	case c.ExpiresAt == nil:
		return &MissingClaimError{Claim: ClaimExpiresAt}
	case c.IssuedAt == nil:
		return &MissingClaimError{Claim: ClaimIssuedAt}
	case c.Issuer == "":
		return &MissingClaimError{Claim: ClaimIssuer}
	case c.Scope == nil:
		return &MissingClaimError{Claim: ClaimScope}
	}
	return nil
}

// Validate runs the claim checks in order: issuer, expiry, not-before,
// then required claims. The first failure wins.
func (c *Claims) Validate(opts VerifyOptions) error {
	if err := c.ValidateIssuer(opts.Issuer); err != nil {
		return err
	}
	if err := c.ValidateExpiry(opts.now(), opts.Leeway); err != nil {
		return err
	}
	return c.ValidateRequired()
}
