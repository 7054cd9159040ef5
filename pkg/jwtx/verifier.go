package jwtx

import (
	"errors"
	"fmt"
	"time"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Now returns the current instant. Defaults to time.Now.
	Now func() time.Time

	// Leeway allows small clock skew when validating exp/nbf.
	Leeway time.Duration
}

func (o VerifyOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrMissingClaim = errors.New("jwtx: missing claim")
)

// MissingClaimError names the required claim that was absent.
type MissingClaimError struct {
	Claim string
}

func (e *MissingClaimError) Error() string {
	return fmt.Sprintf("jwtx: missing claim %q", e.Claim)
}

// Is lets errors.Is(err, ErrMissingClaim) match any MissingClaimError.
func (e *MissingClaimError) Is(target error) bool {
	return target == ErrMissingClaim
}

// IsExpired reports whether err is the expired-token kind. Callers use it
// to tell "re-authenticate" apart from "reject".
func IsExpired(err error) bool {
	return errors.Is(err, ErrExpired)
}

// Kind returns a short stable label for a verification error, suitable for
// logs and metrics. Unknown errors are "invalid".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrNotYetValid):
		return "not_yet_valid"
	case errors.Is(err, ErrMissingClaim):
		return "missing_claim"
	case errors.Is(err, ErrIssuer):
		return "issuer"
	case errors.Is(err, ErrAlgMismatch):
		return "alg_mismatch"
	case errors.Is(err, ErrInvalidSig):
		return "invalid_signature"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}
