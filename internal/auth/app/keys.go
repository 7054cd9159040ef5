package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/familytree/pkg/cryptox"
)

const (
	// SigningKeySize is the HS512 key length in bytes.
	SigningKeySize = 64

	signingKeyInfo = "familytree-auth access token HS512"
)

// LoadSigningKey returns the HS512 key used by the token codec.
//
// Key sources:
//   - AUTH_SIGNING_KEY_FILE set: a master secret is read from (or created at)
//     that path and the signing key is derived from it with HKDF. Tokens
//     survive restarts and every replica sharing the file agrees on the key.
//   - unset: a random key is generated in memory. Tokens become invalid when
//     the process exits.
func LoadSigningKey(cfg Config, logger *slog.Logger) ([]byte, error) {
	if cfg.SigningKeyFile == "" {
		key, err := cryptox.GenerateKey(SigningKeySize)
		if err != nil {
			return nil, fmt.Errorf("failed to generate ephemeral signing key: %w", err)
		}
		logger.Warn("using ephemeral signing key; issued tokens will not survive a restart")
		return key, nil
	}

	master, err := cryptox.LoadOrCreateSecret(cfg.SigningKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing secret: %w", err)
	}

	key, err := cryptox.DeriveKey(master, signingKeyInfo, SigningKeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}

	logger.Info("signing key loaded", "path", cfg.SigningKeyFile)
	return key, nil
}
