package cryptox

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MasterSecretSize is the number of random bytes written to a new secret file.
const MasterSecretSize = TokenSize512

// LoadOrCreateSecret reads the base64url secret stored at path. If the file
// does not exist a new random secret is generated and written with 0600
// permissions, creating parent directories as needed.
func LoadOrCreateSecret(path string) ([]byte, error) {
	path = filepath.Clean(path)

	data, err := os.ReadFile(path)
	if err == nil {
		secret, decErr := base64.RawURLEncoding.DecodeString(strings.TrimSpace(string(data)))
		if decErr != nil {
			return nil, fmt.Errorf("cryptox: decode secret file %s: %w", path, decErr)
		}
		if len(secret) < TokenSize256 {
			return nil, fmt.Errorf("cryptox: secret file %s holds %d bytes, need at least %d", path, len(secret), TokenSize256)
		}
		return secret, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("cryptox: read secret file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("cryptox: create secret dir: %w", err)
	}

	secret, err := GenerateKey(MasterSecretSize)
	if err != nil {
		return nil, err
	}
	encoded := base64.RawURLEncoding.EncodeToString(secret)
	if err := os.WriteFile(path, []byte(encoded), 0600); err != nil {
		return nil, fmt.Errorf("cryptox: write secret file: %w", err)
	}
	return secret, nil
}
