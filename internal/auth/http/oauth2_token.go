package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	"github.com/aussiebroadwan/familytree/internal/auth/service"
	"github.com/aussiebroadwan/familytree/pkg/authsdk"
	"github.com/aussiebroadwan/familytree/pkg/httpx"
	"github.com/aussiebroadwan/familytree/pkg/slogx"
)

// TokenHandler serves POST /v1/oauth2/token
// Accepts application/x-www-form-urlencoded per the RFC 6749 framework.
type TokenHandler struct {
	ClientService *service.ClientService
	TokenService  *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 Token Endpoint
//	@Description	Issues access tokens using the client_credentials grant. authorization_code, password and refresh_token are recognised and rejected.
//	@Tags			OAuth2
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Security		BasicAuth
//	@Param			grant_type		formData	string					true	"Grant type"	Enums(client_credentials, authorization_code, password, refresh_token)
//	@Param			scope			formData	string					false	"Space-delimited list of scopes; omitted means every allowed scope"
//	@Param			client_id		formData	string					false	"Client identifier (when not using Basic auth)"
//	@Param			client_secret	formData	string					false	"Client secret (when not using Basic auth)"
//	@Param			code			formData	string					false	"Authorization code (authorization_code grant)"
//	@Param			redirect_uri	formData	string					false	"Redirect URI (authorization_code grant)"
//	@Param			username		formData	string					false	"Username (password grant)"
//	@Param			password		formData	string					false	"Password (password grant)"
//	@Param			refresh_token	formData	string					false	"Refresh token (refresh_token grant)"
//	@Success		200				{object}	authsdk.TokenResponse	"access_token, token_type, expires_in, scope"
//	@Failure		400				{object}	authsdk.ErrorResponse	"invalid_request, unsupported_grant_type, invalid_scope"
//	@Failure		401				{object}	authsdk.ErrorResponse	"invalid_client"
//	@Failure		500				{object}	authsdk.ErrorResponse	"server_error"
//	@Header			200				{string}	Cache-Control			"no-store"
//	@Header			200				{string}	Pragma					"no-cache"
//	@Router			/v1/oauth2/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// 1. Ensure the right content-type
	if !httpx.HasMediaType(r, "application/x-www-form-urlencoded", true) {
		authsdk.ErrInvalidContentType.WriteError(w)
		return
	}

	// 2. Parse the form body
	if err := r.ParseForm(); err != nil {
		authsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	// 3. Authenticate the client, if it presented credentials
	creds, err := clientCredentials(r)
	if err != nil {
		log.Info("rejected client credentials", "error", err)
		authsdk.ErrInvalidRequest.WithDescription("Basic Authorization header was malformed").WriteError(w)
		return
	}

	var client *domain.Client
	if creds != nil {
		c, err := h.ClientService.Authenticate(ctx, *creds)
		if err != nil {
			writeTokenError(w, r, err)
			return
		}
		client = &c
	}

	// 4. Parse and exchange the grant
	grant, err := service.ParseGrant(r.Form)
	if err != nil {
		writeTokenError(w, r, err)
		return
	}

	issued, err := h.TokenService.Exchange(ctx, client, grant)
	if err != nil {
		writeTokenError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenResponse{
		AccessToken: issued.AccessToken,
		TokenType:   issued.TokenType,
		ExpiresIn:   issued.ExpiresIn,
		Scope:       issued.Scope,
	})
}

// writeTokenError maps service errors onto the OAuth2 error envelope.
func writeTokenError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		missing     *service.MissingParametersError
		unsupported *service.UnsupportedGrantTypeError
	)

	switch {
	case errors.Is(err, service.ErrNoGrantType):
		authsdk.ErrInvalidRequest.WithDescription("No Grant Type was specified").WriteError(w)
	case errors.As(err, &missing):
		authsdk.ErrInvalidRequest.WithDescription(missing.Error()).WriteError(w)
	case errors.As(err, &unsupported):
		authsdk.ErrUnsupportedGrantType.WithDescription("Unsupported grant type: " + unsupported.GrantType).WriteError(w)
	case errors.Is(err, service.ErrInvalidClient):
		authsdk.ErrInvalidClient.WriteError(w)
	case errors.Is(err, service.ErrInvalidScope):
		authsdk.ErrInvalidScope.WriteError(w)
	default:
		internalError(w, r, "Token request failed", err)
	}
}
