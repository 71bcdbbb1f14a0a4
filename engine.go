package authgate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vkm-dev/authgate/jwt"
	"github.com/vkm-dev/authgate/password"
	"github.com/vkm-dev/authgate/revocation"
)

// Engine orchestrates the codec, revocation store, and credential
// verifier into the three operations the rest of a system needs:
// Issue, Verify, and Revoke. It holds no mutable state beyond the
// counter table; all methods are safe for concurrent use after Build.
type Engine struct {
	config       Config
	codec        *jwt.Codec
	keys         *jwt.KeyPair
	revocations  revocation.Store
	passwordHash *password.Hasher
	userProvider UserProvider
	metrics      *Metrics
	now          func() time.Time
}

// Issue authenticates the credentials and returns a freshly signed
// token together with its generated id.
//
// An unknown username and a wrong password both fail with
// [ErrInvalidCredentials]; the two cases are indistinguishable by
// design. Provider errors other than [ErrUserNotFound] propagate
// unmasked as infrastructure faults.
func (e *Engine) Issue(ctx context.Context, username, plaintext string) (*IssuedToken, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	user, err := e.userProvider.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			e.metrics.Inc(MetricIssueFailure)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("credential lookup: %w", err)
	}

	match, err := e.passwordHash.Verify(plaintext, user.PasswordHash)
	if err != nil || !match {
		e.metrics.Inc(MetricIssueFailure)
		return nil, ErrInvalidCredentials
	}

	now := e.now()
	expiresAt := now.Add(e.config.JWT.TokenTTL)
	claims := jwt.NewGrantClaims(user.Grants, jwtlib.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   user.Username,
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(expiresAt),
	})

	signed, err := e.codec.Encode(claims)
	if err != nil {
		return nil, fmt.Errorf("token encode: %w", err)
	}

	e.metrics.Inc(MetricIssueSuccess)

	return &IssuedToken{
		Token:     signed,
		TokenID:   claims.ID,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify decodes and checks a raw token string.
//
// Three outcomes:
//   - (claims, nil): the token is authentic, structurally valid,
//     unexpired, and not revoked.
//   - (nil, nil): the token failed a check whose policy flag is clear;
//     treat as "no credentials presented".
//   - (nil, err): ErrUnauthorized when the matching policy flag is set,
//     or an unmasked infrastructure error from the revocation store.
//
// Decode failures and expiry are governed by Policy.FailOnInvalidToken;
// revoked ids by Policy.FailOnBlacklistedToken. The expiry comparison
// happens here, explicitly, not inside the codec.
func (e *Engine) Verify(ctx context.Context, tokenStr string) (*jwt.GrantClaims, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	claims, err := e.codec.Decode(tokenStr)
	if err != nil {
		e.metrics.Inc(MetricVerifyInvalid)
		log.Printf("authgate: token rejected: %v", err)
		if e.config.Policy.FailOnInvalidToken {
			return nil, ErrUnauthorized
		}
		return nil, nil
	}

	if !claims.ExpiresAt.Time.After(e.now()) {
		e.metrics.Inc(MetricVerifyInvalid)
		if e.config.Policy.FailOnInvalidToken {
			return nil, ErrUnauthorized
		}
		return nil, nil
	}

	revoked, err := e.revocations.Contains(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		e.metrics.Inc(MetricVerifyRevoked)
		if e.config.Policy.FailOnBlacklistedToken {
			return nil, ErrUnauthorized
		}
		return nil, nil
	}

	e.metrics.Inc(MetricVerifySuccess)
	return claims, nil
}

// Revoke records the token id in the revocation store. Revoking an id
// twice, or an id that was never issued, is a no-op, not an error.
func (e *Engine) Revoke(ctx context.Context, tokenID string) error {
	if e == nil {
		return ErrEngineNotReady
	}

	if err := e.revocations.Add(ctx, tokenID); err != nil {
		return err
	}

	e.metrics.Inc(MetricRevocations)
	return nil
}

// HeaderName returns the configured inbound header, for transport
// adapters that need to know where to look.
func (e *Engine) HeaderName() string {
	return e.config.Header.Name
}

// MetricsSnapshot copies the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}
