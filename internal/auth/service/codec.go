package service

import (
	"errors"
	"time"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	"github.com/aussiebroadwan/familytree/pkg/jwtx"
)

// TokenCodecConfig configures a TokenCodec. Key is required.
type TokenCodecConfig struct {
	Key    []byte
	Issuer string
	Now    func() time.Time
	Leeway time.Duration
}

// TokenCodec is the only place an AccessToken is turned into its signed
// wire form and back.
type TokenCodec struct {
	issuer   string
	signer   jwtx.Signer
	verifier jwtx.Verifier
}

func NewTokenCodec(cfg TokenCodecConfig) (*TokenCodec, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("token codec: issuer is required")
	}

	signer, err := jwtx.NewSignerHS512(cfg.Key)
	if err != nil {
		return nil, err
	}

	return &TokenCodec{
		issuer: cfg.Issuer,
		signer: signer,
		verifier: jwtx.NewVerifierHS512(cfg.Key, jwtx.VerifyOptions{
			Issuer: cfg.Issuer,
			Now:    cfg.Now,
			Leeway: cfg.Leeway,
		}),
	}, nil
}

// Encode signs tok. sub is the user, aud the client.
func (c *TokenCodec) Encode(tok domain.AccessToken) (string, error) {
	claims := jwtx.NewAccessClaims(
		c.issuer,
		string(tok.UserID),
		string(tok.ClientID),
		tok.ID,
		tok.Scopes.String(),
		tok.IssuedAt,
		tok.ExpiresAt,
	)
	return c.signer.Sign(claims)
}

// Decode verifies raw and rebuilds the token. Errors are the jwtx kinds:
// ErrMalformed, ErrAlgMismatch, ErrInvalidSig, ErrIssuer, ErrExpired,
// ErrNotYetValid or a *jwtx.MissingClaimError.
func (c *TokenCodec) Decode(raw string) (domain.AccessToken, error) {
	claims, err := c.verifier.Verify(raw)
	if err != nil {
		return domain.AccessToken{}, err
	}

	return domain.AccessToken{
		ID:        claims.ID,
		ClientID:  domain.ClientID(claims.Audience[0]),
		UserID:    domain.UserID(claims.Subject),
		IssuedAt:  claims.IssuedAt.UTC(),
		ExpiresAt: claims.ExpiresAt.UTC(),
		Scopes:    domain.ParseScopes(*claims.Scope),
	}, nil
}

// Validate reports whether the codec can still sign.
func (c *TokenCodec) Validate() error {
	return c.signer.Validate()
}
