package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/familytree/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func fullClaims(now time.Time) jwtx.Claims {
	return jwtx.NewAccessClaims("auth-service", "user-1", "client-1", "jti-1", "a b", now, now.Add(time.Hour))
}

func TestNewAccessClaims(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()
	c := fullClaims(now)

	require.Equal(t, "auth-service", c.Issuer)
	require.Equal(t, "user-1", c.Subject)
	require.Equal(t, jwt.ClaimStrings{"client-1"}, c.Audience)
	require.Equal(t, "jti-1", c.ID)
	require.Equal(t, now, c.IssuedAt.Time)
	require.Equal(t, now, c.NotBefore.Time)
	require.Equal(t, now.Add(time.Hour), c.ExpiresAt.Time)
	require.NotNil(t, c.Scope)
	require.Equal(t, "a b", *c.Scope)
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "auth-service",
		},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("auth-service"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		err := c.ValidateIssuer("chat-service")
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("absent issuer is left to required check", func(t *testing.T) {
		require.NoError(t, (&jwtx.Claims{}).ValidateIssuer("auth-service"))
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()

	t.Run("valid token", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(1 * time.Minute)),
			},
		}
		require.NoError(t, claims.ValidateExpiry(now, 0))
	})

	t.Run("expired token", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			},
		}
		require.ErrorIs(t, claims.ValidateExpiry(now, 0), jwtx.ErrExpired)
	})

	t.Run("exp equal to now is expired", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now),
			},
		}
		require.ErrorIs(t, claims.ValidateExpiry(now, 0), jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				NotBefore: jwt.NewNumericDate(now.Add(1 * time.Minute)),
			},
		}
		require.ErrorIs(t, claims.ValidateExpiry(now, 0), jwtx.ErrNotYetValid)
	})

	t.Run("leeway covers small skew", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-5 * time.Second)),
				NotBefore: jwt.NewNumericDate(now.Add(5 * time.Second)),
			},
		}
		require.NoError(t, claims.ValidateExpiry(now, 10*time.Second))
	})
}

func TestValidateRequired(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()

	tests := []struct {
		claim string
		strip func(*jwtx.Claims)
	}{
		{jwtx.ClaimID, func(c *jwtx.Claims) { c.ID = "" }},
		{jwtx.ClaimAudience, func(c *jwtx.Claims) { c.Audience = nil }},
		{jwtx.ClaimSubject, func(c *jwtx.Claims) { c.Subject = "" }},
		{jwtx.ClaimExpiresAt, func(c *jwtx.Claims) { c.ExpiresAt = nil }},
		{jwtx.ClaimIssuedAt, func(c *jwtx.Claims) { c.IssuedAt = nil }},
		{jwtx.ClaimIssuer, func(c *jwtx.Claims) { c.Issuer = "" }},
		{jwtx.ClaimScope, func(c *jwtx.Claims) { c.Scope = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.claim, func(t *testing.T) {
			c := fullClaims(now)
			tt.strip(&c)

			err := c.ValidateRequired()
			require.ErrorIs(t, err, jwtx.ErrMissingClaim)

			var missing *jwtx.MissingClaimError
			require.ErrorAs(t, err, &missing)
			require.Equal(t, tt.claim, missing.Claim)
		})
	}

	t.Run("complete claims", func(t *testing.T) {
		c := fullClaims(now)
		require.NoError(t, c.ValidateRequired())
	})

	t.Run("empty scope string counts as present", func(t *testing.T) {
		c := jwtx.NewAccessClaims("auth-service", "user-1", "client-1", "jti-1", "", now, now.Add(time.Hour))
		require.NoError(t, c.ValidateRequired())
	})
}

func TestValidateOrder(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()
	opts := jwtx.VerifyOptions{Issuer: "auth-service", Now: func() time.Time { return now }}

	t.Run("issuer mismatch beats expiry", func(t *testing.T) {
		c := jwtx.NewAccessClaims("someone-else", "u", "c", "j", "a", now.Add(-2*time.Hour), now.Add(-time.Hour))
		require.ErrorIs(t, c.Validate(opts), jwtx.ErrIssuer)
	})

	t.Run("expiry beats missing claims", func(t *testing.T) {
		c := jwtx.NewAccessClaims("auth-service", "", "c", "", "a", now.Add(-2*time.Hour), now.Add(-time.Hour))
		require.ErrorIs(t, c.Validate(opts), jwtx.ErrExpired)
	})

	t.Run("not-before beats missing claims", func(t *testing.T) {
		c := jwtx.NewAccessClaims("auth-service", "u", "c", "j", "a", now.Add(time.Minute), now.Add(time.Hour))
		c.Scope = nil
		require.ErrorIs(t, c.Validate(opts), jwtx.ErrNotYetValid)
	})
}

func TestKind(t *testing.T) {
	require.Equal(t, "expired", jwtx.Kind(jwtx.ErrExpired))
	require.Equal(t, "missing_claim", jwtx.Kind(&jwtx.MissingClaimError{Claim: "sub"}))
	require.Equal(t, "issuer", jwtx.Kind(jwtx.ErrIssuer))
	require.Equal(t, "", jwtx.Kind(nil))
	require.True(t, jwtx.IsExpired(jwtx.ErrExpired))
	require.False(t, jwtx.IsExpired(jwtx.ErrNotYetValid))
}
