package domain

import "time"

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "Bearer"

// AccessToken is an issued grant. It is never stored; the signed token
// string is the only durable form.
type AccessToken struct {
	ID        string
	ClientID  ClientID
	UserID    UserID
	IssuedAt  time.Time
	ExpiresAt time.Time
	Scopes    Scopes
}

// ExpiresIn is the whole number of seconds left at now, never negative.
func (t AccessToken) ExpiresIn(now time.Time) int64 {
	secs := int64(t.ExpiresAt.Sub(now) / time.Second)
	return max(secs, 0)
}
