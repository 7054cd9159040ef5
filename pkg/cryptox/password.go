package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// Password is a salted one-way digest of a client secret. Both fields are
// base64 (standard encoding) so they can be stored as plain text columns.
//
// The digest is SHA-256 over the salt bytes followed by the secret bytes.
// Changing that ordering or the encoding invalidates every stored secret.
type Password struct {
	Salt string
	Hash string
}

// HashSecret hashes plaintext with a freshly generated 128-bit salt.
func HashSecret(plaintext string) (Password, error) {
	salt, err := GenerateKey(TokenSize128)
	if err != nil {
		return Password{}, fmt.Errorf("cryptox: generate salt: %w", err)
	}
	return HashSecretWithSalt(plaintext, base64.StdEncoding.EncodeToString(salt)), nil
}

// HashSecretWithSalt hashes plaintext with an explicit salt. Mostly useful
// for tests and for re-verifying a stored Password.
func HashSecretWithSalt(plaintext, salt string) Password {
	return Password{Salt: salt, Hash: digest(salt, plaintext)}
}

// Equal reports whether two Passwords carry the same salt and hash.
func (p Password) Equal(other Password) bool {
	return subtle.ConstantTimeCompare([]byte(p.Salt), []byte(other.Salt)) == 1 &&
		subtle.ConstantTimeCompare([]byte(p.Hash), []byte(other.Hash)) == 1
}

// Verify re-hashes plaintext with the stored salt and compares digests.
func (p Password) Verify(plaintext string) bool {
	if p.Hash == "" {
		return false
	}
	computed := digest(p.Salt, plaintext)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(p.Hash)) == 1
}

// IsZero reports whether no secret has been set.
func (p Password) IsZero() bool { return p.Salt == "" && p.Hash == "" }

// String never reveals the digest.
func (p Password) String() string {
	if p.IsZero() {
		return "Password(unset)"
	}
	return "Password(redacted)"
}

func digest(salt, plaintext string) string {
	h := sha256.New()
	h.Write([]byte(salt))
	h.Write([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
