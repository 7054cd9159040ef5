package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/familytree/internal/auth/security"
	"github.com/aussiebroadwan/familytree/pkg/authsdk"
	"github.com/aussiebroadwan/familytree/pkg/httpx"
)

// NowHandler godoc
//
//	@Summary		Server Clock
//	@Description	Returns the clock the token issuer uses. Only mounted when debug endpoints are enabled.
//	@Tags			Debug
//	@Produce		json
//	@Success		200	{object}	authsdk.NowResponse
//	@Router			/v1/debug/now [get].
func NowHandler(now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.NowResponse{
			Now: now().UTC().Format(time.RFC3339),
		})
	}
}

// WhoAmIHandler godoc
//
//	@Summary		Current Principal
//	@Description	Returns the principal resolved from the bearer token, or authenticated=false for anonymous requests.
//	@Tags			Debug
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.WhoAmIResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"invalid_token"
//	@Router			/v1/debug/whoami [get].
func WhoAmIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := security.PrincipalFromContext(r.Context())
		if !ok {
			httpx.WriteJSON(w, http.StatusOK, authsdk.WhoAmIResponse{Authenticated: false})
			return
		}

		httpx.WriteJSON(w, http.StatusOK, authsdk.WhoAmIResponse{
			Authenticated: true,
			UserID:        string(p.UserID),
			ClientID:      string(p.ClientID),
			TokenID:       p.TokenID,
			Scope:         p.Scopes.String(),
			Authorities:   p.Authorities,
			ExpiresAt:     p.ExpiresAt.UTC().Format(time.RFC3339),
		})
	}
}
