package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	"github.com/aussiebroadwan/familytree/pkg/slogx"
)

type TokenService struct {
	Issuer *TokenIssuer
	Codec  *TokenCodec
}

// IssuedToken is a signed access token ready to hand back to the caller.
type IssuedToken struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
	Scope       string
	Token       domain.AccessToken
}

// Exchange issues a token for grant. client is the already authenticated
// caller and may be nil when no credentials were presented.
func (s *TokenService) Exchange(ctx context.Context, client *domain.Client, grant Grant) (IssuedToken, error) {
	switch g := grant.(type) {
	case ClientCredentialsGrant:
		return s.exchangeClientCredentials(ctx, client, g)
	case AuthorizationCodeGrant, PasswordGrant, RefreshTokenGrant:
		return IssuedToken{}, &UnsupportedGrantTypeError{GrantType: string(g.Type())}
	default:
		return IssuedToken{}, fmt.Errorf("service: unhandled grant %T", grant)
	}
}

// exchangeClientCredentials implements the OAuth2 client_credentials grant.
// The effective scope is the requested scope narrowed to what the client is
// allowed, and must not be empty.
func (s *TokenService) exchangeClientCredentials(
	ctx context.Context,
	client *domain.Client,
	g ClientCredentialsGrant,
) (IssuedToken, error) {
	l := slogx.FromContext(ctx)

	if client == nil {
		return IssuedToken{}, ErrInvalidClient
	}

	tok := s.Issuer.IssueForClient(*client, g.Scope)
	if tok.Scopes.IsEmpty() {
		l.Info("client_credentials grant yielded no scopes",
			slog.String("client_id", string(client.ID)),
			slog.String("requested", requestedScope(g.Scope)),
		)
		return IssuedToken{}, ErrInvalidScope
	}

	signed, err := s.Codec.Encode(tok)
	if err != nil {
		l.Error("failed to sign access token", "error", err)
		return IssuedToken{}, err
	}

	l.Info("access token issued",
		slog.String("client_id", string(client.ID)),
		slog.String("token_id", tok.ID),
		slog.String("scope", tok.Scopes.String()),
	)

	return IssuedToken{
		AccessToken: signed,
		TokenType:   domain.TokenTypeBearer,
		ExpiresIn:   tok.ExpiresIn(s.Issuer.now()),
		Scope:       tok.Scopes.String(),
		Token:       tok,
	}, nil
}

func requestedScope(s *domain.Scopes) string {
	if s == nil {
		return "<all>"
	}
	return s.String()
}
