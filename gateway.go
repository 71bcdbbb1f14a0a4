package authgate

import (
	"context"
	"strings"
)

// OutcomeState is the terminal state of one request's authentication.
type OutcomeState uint8

const (
	// StateAuthenticated means a token was presented and verified; the
	// outcome carries a principal built from its claims.
	StateAuthenticated OutcomeState = iota
	// StateAnonymous means no usable token was presented and anonymous
	// access is allowed; the outcome carries the empty-grants principal.
	StateAnonymous
	// StateRejected means the request must be refused; the outcome
	// carries the rejection error.
	StateRejected
)

// Outcome is the result of one authentication evaluation. Exactly one
// of Principal (Authenticated, Anonymous) or Err (Rejected) is set.
type Outcome struct {
	State     OutcomeState
	Principal *Principal
	Err       error
}

// Authenticate evaluates a single request's header value and resolves
// it to Authenticated, Anonymous, or Rejected. Each call is independent;
// no state crosses requests and nothing is retried.
//
// Extraction accepts only a value of exactly two space-separated parts
// whose first part equals the configured scheme. An absent header, a
// wrong scheme, or a malformed value is "no token presented", which is
// not an error: it falls through to the anonymous/rejected resolution.
//
// Verification failures that the policy downgrades to "no credentials"
// take the same fallthrough. Rejections keep their cause in Err:
// authentication failures match [ErrUnauthorized], while revocation
// store faults match revocation.ErrUnavailable so transports can map
// them to a server error instead of an auth rejection.
func (e *Engine) Authenticate(ctx context.Context, headerValue string) Outcome {
	if e == nil {
		return Outcome{State: StateRejected, Err: ErrEngineNotReady}
	}

	if token, ok := extractToken(headerValue, e.config.Header.Scheme); ok {
		claims, err := e.Verify(ctx, token)
		if err != nil {
			e.metrics.Inc(MetricRejected)
			return Outcome{State: StateRejected, Err: err}
		}
		if claims != nil {
			return Outcome{
				State: StateAuthenticated,
				Principal: &Principal{
					Username: claims.Subject,
					Grants:   claims.GrantSet(),
				},
			}
		}
		// Non-fatal verification failure: continue as if no token.
	}

	if e.config.Policy.AllowAnonymous {
		e.metrics.Inc(MetricAnonymous)
		return Outcome{
			State:     StateAnonymous,
			Principal: &Principal{Grants: []string{}},
		}
	}

	e.metrics.Inc(MetricRejected)
	return Outcome{State: StateRejected, Err: ErrAnonymousNotAllowed}
}

// extractToken returns the credential part of a header value in the
// exact form "<scheme> <token>". Anything else is no token.
func extractToken(headerValue, scheme string) (string, bool) {
	prefix, token, ok := strings.Cut(headerValue, " ")
	if !ok || prefix != scheme || token == "" || strings.ContainsRune(token, ' ') {
		return "", false
	}
	return token, true
}
