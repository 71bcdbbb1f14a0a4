package authgate

import (
	"context"
	"time"
)

// UserRecord is the credential record the engine consumes from a
// UserProvider. The engine treats PasswordHash as opaque PHC material
// and never logs it.
type UserRecord struct {
	Username     string
	PasswordHash string
	Grants       []string
}

// UserProvider is the interface callers implement to integrate their
// user storage. Implementations must be safe for concurrent use and
// should return [ErrUserNotFound] for unknown usernames; any other
// error is treated as an infrastructure fault and propagated.
type UserProvider interface {
	GetUserByUsername(ctx context.Context, username string) (UserRecord, error)
}

// Principal is the post-authentication identity for a single request.
// It is constructed only from verified claims, never from caller input,
// and is not retained across requests.
type Principal struct {
	Username string
	Grants   []string
}

// Anonymous reports whether the principal carries no identity.
func (p *Principal) Anonymous() bool {
	return p == nil || p.Username == ""
}

// HasGrant reports whether the principal holds the given role grant.
func (p *Principal) HasGrant(grant string) bool {
	if p == nil {
		return false
	}
	for _, g := range p.Grants {
		if g == grant {
			return true
		}
	}
	return false
}

// IssuedToken is the result of a successful issuance: the signed token
// string plus the generated token id, returned so callers can revoke
// this specific token later without re-decoding it.
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}
