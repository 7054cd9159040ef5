package security

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	"github.com/aussiebroadwan/familytree/pkg/authsdk"
	"github.com/aussiebroadwan/familytree/pkg/httpx"
)

// RequireAuthenticated rejects anonymous requests with 401.
func RequireAuthenticated() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFromContext(r.Context()); !ok {
				httpx.WriteBearerError(w, http.StatusUnauthorized, "invalid_token", "missing bearer token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyAuthority lets the request through when the principal holds at
// least one of authorities. Anonymous callers are stopped by
// RequireAuthenticated with 401; authenticated callers without the authority
// get 403 access_denied.
func RequireAnyAuthority(authorities ...string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		check := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, _ := PrincipalFromContext(r.Context())
			if !p.HasAnyAuthority(authorities...) {
				w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+requiredScopes(authorities)+`"`)
				authsdk.ErrAccessDenied.WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
		return RequireAuthenticated()(check)
	}
}

// requiredScopes strips the role marker to name the scopes a caller needs.
func requiredScopes(authorities []string) string {
	scopes := make([]string, 0, len(authorities))
	for _, a := range authorities {
		scopes = append(scopes, strings.TrimPrefix(a, domain.RolePrefix))
	}
	return strings.Join(scopes, " ")
}
