package security

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	"github.com/aussiebroadwan/familytree/pkg/authsdk"
	"github.com/aussiebroadwan/familytree/pkg/httpx"
	"github.com/aussiebroadwan/familytree/pkg/jwtx"
	"github.com/aussiebroadwan/familytree/pkg/slogx"
)

// TokenDecoder turns a raw bearer token back into the access token it was
// minted from.
type TokenDecoder interface {
	Decode(raw string) (domain.AccessToken, error)
}

// AuthenticationManager has the final say on a candidate principal. A refusal
// wraps domain.ErrPrincipalRejected.
type AuthenticationManager interface {
	Authenticate(ctx context.Context, candidate domain.Principal) (domain.Principal, error)
}

// AccessTokenFilter authenticates requests that carry a bearer token.
//
//	no bearer header  -> pass through anonymous
//	decode fails      -> 401 invalid_token
//	manager rejects   -> 401 invalid_token
//	manager fails     -> 500 server_error
//	manager accepts   -> principal stored on the request context
//
// Any principal already on the incoming context is dropped first, so a
// failed or absent token never leaves authenticated state behind.
func AccessTokenFilter(decoder TokenDecoder, manager AuthenticationManager) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithPrincipal(r.Context(), domain.Principal{})
			r = r.WithContext(ctx)

			raw, ok := httpx.BearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			l := slogx.FromContext(ctx)

			tok, err := decoder.Decode(raw)
			if err != nil {
				l.Warn("bearer token rejected", slog.String("kind", jwtx.Kind(err)), "error", err)
				httpx.WriteBearerError(w, http.StatusUnauthorized, "invalid_token", tokenErrorDescription(err))
				return
			}

			principal, err := manager.Authenticate(ctx, domain.NewCandidatePrincipal(tok))
			switch {
			case errors.Is(err, domain.ErrPrincipalRejected):
				l.Warn("principal rejected", slog.String("client_id", string(tok.ClientID)), "error", err)
				httpx.WriteBearerError(w, http.StatusUnauthorized, "invalid_token", "token is no longer valid")
				return
			case err != nil:
				l.ErrorContext(ctx, "authentication manager failed", slog.String("client_id", string(tok.ClientID)), "error", err)
				desc := "could not authenticate the request"
				if id := slogx.RequestID(ctx); id != "" {
					desc += " (request " + id + ")"
				}
				authsdk.ErrServerError.WithDescription(desc).WriteError(w)
				return
			}

			ctx = WithPrincipal(ctx, principal)
			ctx = httpx.WithSubject(ctx, string(principal.UserID))
			ctx = slogx.With(ctx, "sub", principal.UserID, "client_id", principal.ClientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenErrorDescription(err error) string {
	if jwtx.IsExpired(err) {
		return "token expired"
	}
	return "token verification failed"
}
