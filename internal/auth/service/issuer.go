package service

import (
	"time"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	"github.com/aussiebroadwan/familytree/pkg/jwtx"
	"github.com/google/uuid"
)

// TokenIssuer mints access tokens for authenticated clients. It keeps no
// state; the returned token is the only record of the grant.
type TokenIssuer struct {
	// Duration is the token lifetime. Zero means jwtx.DefaultAccessTokenTTL.
	Duration time.Duration

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// IssueForClient grants the requested scopes narrowed to what the client is
// allowed, or every allowed scope when requested is nil. Instants are kept
// at second resolution to match the wire format.
func (i *TokenIssuer) IssueForClient(client domain.Client, requested *domain.Scopes) domain.AccessToken {
	issuedAt := i.now().UTC().Truncate(time.Second)

	effective := client.Scopes
	if requested != nil {
		effective = requested.Intersect(client.Scopes)
	}

	return domain.AccessToken{
		ID:        i.newID(),
		ClientID:  client.ID,
		UserID:    client.Subject(),
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(i.duration()),
		Scopes:    effective,
	}
}

func (i *TokenIssuer) now() time.Time {
	if i.Now != nil {
		return i.Now()
	}
	return time.Now()
}

func (i *TokenIssuer) newID() string {
	if i.NewID != nil {
		return i.NewID()
	}
	return uuid.NewString()
}

func (i *TokenIssuer) duration() time.Duration {
	if i.Duration > 0 {
		return i.Duration
	}
	return jwtx.DefaultAccessTokenTTL
}
