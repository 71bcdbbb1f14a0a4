package jwt

import (
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"
)

// GrantList is the custom roles claim. Decoding is deliberately lenient:
// non-string elements in the claim array are discarded rather than
// failing the whole token, so a well-typed subset always survives.
type GrantList []string

// UnmarshalJSON keeps only the string elements of the claim array.
func (g *GrantList) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	grants := make(GrantList, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			grants = append(grants, s)
		}
	}

	*g = grants
	return nil
}

// GrantClaims is the authenticated payload of a signed token: the jti
// token id (the revocation key), the subject username, the grants role
// set, and the issued-at/expiration timestamps.
//
// Grants is a pointer so the codec can tell an absent claim (nil) from
// a present-but-empty one after lenient filtering.
type GrantClaims struct {
	Grants *GrantList `json:"grants,omitempty"`
	jwt.RegisteredClaims
}

// NewGrantClaims builds a claim set with the grants claim present.
func NewGrantClaims(grants []string, registered jwt.RegisteredClaims) *GrantClaims {
	list := make(GrantList, len(grants))
	copy(list, grants)

	return &GrantClaims{
		Grants:           &list,
		RegisteredClaims: registered,
	}
}

// GrantSet returns a copy of the grants, never nil.
func (c *GrantClaims) GrantSet() []string {
	if c == nil || c.Grants == nil {
		return []string{}
	}

	out := make([]string, len(*c.Grants))
	copy(out, *c.Grants)
	return out
}
