package domain

import (
	"time"

	"github.com/aussiebroadwan/familytree/pkg/cryptox"
)

// ClientID identifies a registered client.
type ClientID string

// UserID identifies the user a client acts on behalf of.
type UserID string

// ClientCredentials is the id and plaintext secret presented by a caller.
// Never persisted.
type ClientCredentials struct {
	ID     ClientID
	Secret string
}

type Client struct {
	ID        ClientID
	Name      string
	Secret    cryptox.Password
	Owner     UserID // empty means the client acts as itself
	Scopes    Scopes // scopes the client may be granted
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subject is the user a token issued to this client speaks for.
func (c Client) Subject() UserID {
	if c.Owner != "" {
		return c.Owner
	}
	return UserID(c.ID)
}

// ClientDefinition is a client declared outside the store, such as in a
// clients file. Exactly one of PlainSecret or Secret is set.
type ClientDefinition struct {
	ID          ClientID
	Name        string
	PlainSecret string
	Secret      cryptox.Password
	Owner       UserID
	Scopes      Scopes
}
