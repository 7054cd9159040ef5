package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateSecret(t *testing.T) {
	t.Run("creates then reloads", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "signing.key")

		first, err := LoadOrCreateSecret(path)
		require.NoError(t, err)
		require.Len(t, first, MasterSecretSize)

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0600), info.Mode().Perm())

		second, err := LoadOrCreateSecret(path)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "signing.key")
		require.NoError(t, os.WriteFile(path, []byte("not base64!!"), 0600))

		_, err := LoadOrCreateSecret(path)
		require.Error(t, err)
	})

	t.Run("rejects short secret", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "signing.key")
		require.NoError(t, os.WriteFile(path, []byte("c2hvcnQ"), 0600))

		_, err := LoadOrCreateSecret(path)
		require.Error(t, err)
	})
}

func TestDeriveKey(t *testing.T) {
	master := []byte("0123456789abcdef0123456789abcdef")

	a, err := DeriveKey(master, "access-token", 64)
	require.NoError(t, err)
	require.Len(t, a, 64)

	b, err := DeriveKey(master, "access-token", 64)
	require.NoError(t, err)
	require.Equal(t, a, b, "derivation is deterministic")

	c, err := DeriveKey(master, "other", 64)
	require.NoError(t, err)
	require.NotEqual(t, a, c, "info separates keys")

	_, err = DeriveKey(nil, "access-token", 64)
	require.Error(t, err)
	_, err = DeriveKey(master, "access-token", 0)
	require.Error(t, err)
}
