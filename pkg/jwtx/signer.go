package jwtx

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	Validate() error
}

// NewSignerHS512 creates an HMAC-SHA512 signer over a shared secret key.
func NewSignerHS512(key []byte) (Signer, error) {
	return newHS512Signer(key)
}
