package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashSecret(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := HashSecret(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, p.Salt)
			require.NotEmpty(t, p.Hash)

			require.True(t, p.Verify(tt.password))
			require.False(t, p.Verify(tt.password+"x"))
		})
	}
}

func TestHashSecret_FreshSalt(t *testing.T) {
	a, err := HashSecret("secret")
	require.NoError(t, err)
	b, err := HashSecret("secret")
	require.NoError(t, err)

	require.NotEqual(t, a.Salt, b.Salt, "salts should differ")
	require.NotEqual(t, a.Hash, b.Hash, "hashes should differ")
	require.False(t, a.Equal(b))
}

func TestHashSecretWithSalt(t *testing.T) {
	t.Run("digest is sha256 of salt then secret", func(t *testing.T) {
		sum := sha256.Sum256([]byte("salt" + "secret"))
		want := base64.StdEncoding.EncodeToString(sum[:])

		p := HashSecretWithSalt("secret", "salt")
		require.Equal(t, "salt", p.Salt)
		require.Equal(t, want, p.Hash)
	})

	t.Run("deterministic for the same salt", func(t *testing.T) {
		a := HashSecretWithSalt("secret", "salt")
		b := HashSecretWithSalt("secret", "salt")
		require.True(t, a.Equal(b))
	})

	t.Run("salt changes digest", func(t *testing.T) {
		a := HashSecretWithSalt("secret", "salt-a")
		b := HashSecretWithSalt("secret", "salt-b")
		require.NotEqual(t, a.Hash, b.Hash)
		require.False(t, a.Equal(b))
	})
}

func TestPasswordVerify(t *testing.T) {
	p := HashSecretWithSalt("1234", "abcd")

	require.True(t, p.Verify("1234"))
	require.False(t, p.Verify("12345"))
	require.False(t, p.Verify(""))
	require.False(t, Password{}.Verify(""), "unset password never verifies")
}

func TestPasswordString(t *testing.T) {
	p := HashSecretWithSalt("1234", "abcd")
	require.NotContains(t, p.String(), p.Hash)
	require.Equal(t, "Password(unset)", Password{}.String())
}
