package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
)

// PrincipalAuthenticator accepts a candidate principal built from a decoded
// token as long as the client it was issued to is still registered.
type PrincipalAuthenticator struct {
	Clients *ClientService
}

func (a *PrincipalAuthenticator) Authenticate(ctx context.Context, candidate domain.Principal) (domain.Principal, error) {
	if _, err := a.Clients.Load(ctx, candidate.ClientID); err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return domain.Principal{}, fmt.Errorf("%w: client %q is no longer registered", ErrPrincipalRejected, candidate.ClientID)
		}
		return domain.Principal{}, err
	}

	candidate.Authenticated = true
	return candidate, nil
}
