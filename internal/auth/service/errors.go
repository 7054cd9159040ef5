package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
)

var (
	ErrNoGrantType       = errors.New("no grant type was specified")
	ErrInvalidClient     = errors.New("invalid_client")
	ErrInvalidScope      = errors.New("invalid_scope")
	ErrClientNotFound    = errors.New("client not found")
	ErrPrincipalRejected = domain.ErrPrincipalRejected
)

// MissingParametersError names the parameters a grant requires but did not
// receive.
type MissingParametersError struct {
	GrantType GrantType
	Params    []string
}

func (e *MissingParametersError) Error() string {
	return fmt.Sprintf("Missing required parameters: %v", e.Params)
}

// UnsupportedGrantTypeError is returned for grant types this server does not
// issue tokens for, whether recognised or not.
type UnsupportedGrantTypeError struct {
	GrantType string
}

func (e *UnsupportedGrantTypeError) Error() string {
	return fmt.Sprintf("unsupported grant type %q", e.GrantType)
}
