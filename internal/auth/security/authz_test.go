package security_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	"github.com/aussiebroadwan/familytree/internal/auth/security"
	"github.com/aussiebroadwan/familytree/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func guarded(mw httpx.Middleware, c *capture) http.Handler {
	decoder := fakeDecoder{tokens: map[string]domain.AccessToken{
		"good":  goodToken,
		"admin": {ID: "jti-2", ClientID: "admin", UserID: "admin", Scopes: domain.NewScopes("admin:read")},
	}}
	return httpx.Chain(c.handler(), security.AccessTokenFilter(decoder, &fakeManager{}), mw)
}

func TestRequireAuthenticated(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		var c capture
		rec := serve(guarded(security.RequireAuthenticated(), &c), "")

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.False(t, c.called)
		require.Equal(t, `Bearer error="invalid_token", error_description="missing bearer token"`, rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("authenticated", func(t *testing.T) {
		var c capture
		rec := serve(guarded(security.RequireAuthenticated(), &c), "Bearer good")

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.True(t, c.called)
	})
}

func TestRequireAnyAuthority(t *testing.T) {
	mw := security.RequireAnyAuthority("ROLE_admin:read", "ROLE_admin:write")

	t.Run("anonymous is 401", func(t *testing.T) {
		var c capture
		rec := serve(guarded(mw, &c), "")

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.False(t, c.called)
		require.Equal(t, `Bearer error="invalid_token", error_description="missing bearer token"`, rec.Header().Get("WWW-Authenticate"))
		code, _ := errorCode(t, rec)
		require.Equal(t, "invalid_token", code)
	})

	t.Run("missing authority is 403", func(t *testing.T) {
		var c capture
		rec := serve(guarded(mw, &c), "Bearer good")

		require.Equal(t, http.StatusForbidden, rec.Code)
		require.False(t, c.called)
		require.Equal(t, `Bearer error="insufficient_scope", scope="admin:read admin:write"`, rec.Header().Get("WWW-Authenticate"))
		code, desc := errorCode(t, rec)
		require.Equal(t, "access_denied", code)
		require.Equal(t, "Access is denied", desc)
	})

	t.Run("any one authority is enough", func(t *testing.T) {
		var c capture
		rec := serve(guarded(mw, &c), "Bearer admin")

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.True(t, c.called)
		require.Equal(t, "admin", c.subject)
	})
}
