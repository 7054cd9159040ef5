package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestNewCandidatePrincipal(t *testing.T) {
	exp := time.Unix(1_700_003_600, 0).UTC()
	tok := domain.AccessToken{
		ID:        "tok-1",
		ClientID:  "client-1",
		UserID:    "user-1",
		ExpiresAt: exp,
		Scopes:    domain.ParseScopes("b a"),
	}

	p := domain.NewCandidatePrincipal(tok)
	require.False(t, p.Authenticated)
	require.Equal(t, domain.UserID("user-1"), p.UserID)
	require.Equal(t, domain.ClientID("client-1"), p.ClientID)
	require.Equal(t, "tok-1", p.TokenID)
	require.Equal(t, []string{"ROLE_a", "ROLE_b"}, p.Authorities)
	require.Equal(t, exp, p.ExpiresAt)

	require.True(t, p.HasAuthority("ROLE_a"))
	require.False(t, p.HasAuthority("a"))
	require.True(t, p.HasAnyAuthority("ROLE_x", "ROLE_b"))
	require.False(t, p.HasAnyAuthority())
}

func TestAuthoritiesFor_Empty(t *testing.T) {
	require.Nil(t, domain.AuthoritiesFor(domain.Scopes{}))
}

func TestClientSubject(t *testing.T) {
	require.Equal(t, domain.UserID("owner"), domain.Client{ID: "c", Owner: "owner"}.Subject())
	require.Equal(t, domain.UserID("c"), domain.Client{ID: "c"}.Subject())
}

func TestAccessTokenExpiresIn(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tok := domain.AccessToken{ExpiresAt: now.Add(time.Hour)}

	require.Equal(t, int64(3600), tok.ExpiresIn(now))
	require.Equal(t, int64(3599), tok.ExpiresIn(now.Add(500*time.Millisecond)))
	require.Equal(t, int64(0), tok.ExpiresIn(now.Add(2*time.Hour)))
}
