package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Structural decode failures. A token can carry a valid signature and
// still be rejected by these rules; callers collapse them into their
// own failure policy and must not forward the reason to the client.
var (
	// ErrMissingTokenID is returned when the jti claim is absent or empty.
	ErrMissingTokenID = errors.New("token id claim missing or empty")
	// ErrMissingGrants is returned when the grants claim is absent.
	ErrMissingGrants = errors.New("grants claim missing")
	// ErrMissingIssuedAt is returned when the iat claim is absent.
	ErrMissingIssuedAt = errors.New("issued-at claim missing")
	// ErrFutureIssuedAt is returned when the iat claim is ahead of the
	// verification-time clock.
	ErrFutureIssuedAt = errors.New("token issued in the future")
	// ErrMissingExpiry is returned when the exp claim is absent.
	ErrMissingExpiry = errors.New("expiration claim missing")
	// ErrIncompleteClaims is returned by Encode when a required claim
	// was not populated.
	ErrIncompleteClaims = errors.New("incomplete claim set")
)

// Codec maps between GrantClaims and compact signed token strings.
// The signing algorithm is fixed at construction; tokens signed under
// any other algorithm are rejected regardless of key validity.
//
// Decode verifies the signature and the structural claim rules, but
// deliberately does not compare exp against the clock: expiry is an
// explicit, separately testable step owned by the caller.
type Codec struct {
	method *jwt.SigningMethodRSA
	keys   *KeyPair
	now    func() time.Time
}

// NewCodec builds a codec for the given algorithm identifier and keys.
func NewCodec(algorithm string, keys *KeyPair) (*Codec, error) {
	if keys == nil {
		return nil, errors.New("nil key pair")
	}

	method, err := signingMethod(algorithm)
	if err != nil {
		return nil, err
	}

	return &Codec{method: method, keys: keys, now: time.Now}, nil
}

// Encode signs the claim set into a compact token string. It is
// side-effect-free and deterministic for identical claims.
func (c *Codec) Encode(claims *GrantClaims) (string, error) {
	if !c.keys.CanSign() {
		return "", ErrNoPrivateKey
	}
	if claims == nil || claims.ID == "" || claims.Subject == "" ||
		claims.Grants == nil || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return "", ErrIncompleteClaims
	}
	if !claims.ExpiresAt.Time.After(claims.IssuedAt.Time) {
		return "", fmt.Errorf("%w: expiration not after issued-at", ErrIncompleteClaims)
	}

	token := jwt.NewWithClaims(c.method, claims)
	return token.SignedString(c.keys.Private())
}

// Decode parses the token, verifies its signature against the public
// key, and enforces the structural claim rules. Any failure is an
// ordinary error carrying a diagnostic reason.
func (c *Codec) Decode(tokenStr string) (*GrantClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{c.method.Alg()}),
		// All claim validation is explicit below so each rule stays an
		// observable, testable step.
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &GrantClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return c.keys.Public(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*GrantClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	if claims.ID == "" {
		return nil, ErrMissingTokenID
	}
	if claims.Grants == nil {
		return nil, ErrMissingGrants
	}
	if claims.IssuedAt == nil {
		return nil, ErrMissingIssuedAt
	}
	if claims.IssuedAt.Time.After(c.now()) {
		return nil, ErrFutureIssuedAt
	}
	if claims.ExpiresAt == nil {
		return nil, ErrMissingExpiry
	}

	return claims, nil
}
