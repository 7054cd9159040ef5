// Package security turns bearer tokens into request-scoped principals and
// guards routes on them.
package security

import (
	"context"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
)

type ctxKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFromContext returns the authenticated principal for the request,
// if any.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(domain.Principal)
	if !ok || !p.Authenticated {
		return domain.Principal{}, false
	}
	return p, true
}
