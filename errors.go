package authgate

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is the single authentication-failure kind surfaced
	// by verification and the gateway. The underlying reason (bad
	// signature, structural violation, revoked id, anonymous disallowed)
	// is deliberately not distinguishable through this error.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is returned by Issue for both an unknown
	// username and a wrong password, so callers cannot tell which
	// occurred.
	ErrInvalidCredentials = errors.New("credentials do not match")

	// ErrAnonymousNotAllowed is the rejection produced when no token was
	// presented and anonymous access is disabled. It matches
	// errors.Is(err, ErrUnauthorized).
	ErrAnonymousNotAllowed = fmt.Errorf("%w: anonymous access not allowed", ErrUnauthorized)

	// ErrUserNotFound is returned by UserProvider implementations when
	// no record exists for a username. The engine collapses it into
	// ErrInvalidCredentials before it reaches any caller.
	ErrUserNotFound = errors.New("user not found")

	// ErrEngineNotReady is returned when an Engine method is invoked on
	// a nil or unbuilt engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
