package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	"github.com/aussiebroadwan/familytree/internal/auth/service"
	"github.com/aussiebroadwan/familytree/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/familytree/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

const testIssuer = "familytree-auth"

var (
	testKey  = bytes.Repeat([]byte{0x5a}, 64)
	testNow  = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fixedNow = func() time.Time { return testNow }
)

func newClientService(t *testing.T) *service.ClientService {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return &service.ClientService{Store: s, Now: fixedNow}
}

func seedClient(t *testing.T, clients *service.ClientService, id, secret, scopes string) domain.Client {
	t.Helper()
	pw, err := cryptox.HashSecret(secret)
	require.NoError(t, err)
	c := domain.Client{
		ID:        domain.ClientID(id),
		Name:      id,
		Secret:    pw,
		Scopes:    domain.ParseScopes(scopes),
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	require.NoError(t, clients.Store.Clients().CreateClient(context.Background(), c))
	return c
}

func newCodec(t *testing.T, key []byte, now func() time.Time) *service.TokenCodec {
	t.Helper()
	codec, err := service.NewTokenCodec(service.TokenCodecConfig{
		Key:    key,
		Issuer: testIssuer,
		Now:    now,
	})
	require.NoError(t, err)
	return codec
}

func scopesPtr(s string) *domain.Scopes {
	sc := domain.ParseScopes(s)
	return &sc
}
