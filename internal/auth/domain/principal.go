package domain

import (
	"errors"
	"slices"
	"time"
)

// RolePrefix marks an authority derived from a granted scope.
const RolePrefix = "ROLE_"

// ErrPrincipalRejected is wrapped by an authentication manager that refuses
// a candidate principal. Any other error from the manager is a fault.
var ErrPrincipalRejected = errors.New("principal rejected")

// Principal is the caller identity attached to a request once its bearer
// token has been decoded.
type Principal struct {
	UserID        UserID
	ClientID      ClientID
	TokenID       string
	Scopes        Scopes
	Authorities   []string
	ExpiresAt     time.Time
	Authenticated bool
}

// NewCandidatePrincipal builds an unauthenticated principal from a decoded
// token. An authentication manager decides whether to accept it.
func NewCandidatePrincipal(tok AccessToken) Principal {
	return Principal{
		UserID:      tok.UserID,
		ClientID:    tok.ClientID,
		TokenID:     tok.ID,
		Scopes:      tok.Scopes,
		Authorities: AuthoritiesFor(tok.Scopes),
		ExpiresAt:   tok.ExpiresAt,
	}
}

// AuthoritiesFor prefixes every scope with RolePrefix.
func AuthoritiesFor(scopes Scopes) []string {
	if scopes.IsEmpty() {
		return nil
	}
	out := make([]string, 0, scopes.Len())
	for _, s := range scopes.Slice() {
		out = append(out, RolePrefix+s)
	}
	return out
}

// HasAuthority reports whether the principal holds authority.
func (p Principal) HasAuthority(authority string) bool {
	return slices.Contains(p.Authorities, authority)
}

// HasAnyAuthority reports whether the principal holds at least one of the
// given authorities.
func (p Principal) HasAnyAuthority(authorities ...string) bool {
	return slices.ContainsFunc(authorities, p.HasAuthority)
}
