// Package revocation implements the append-only set of revoked token
// ids (the blacklist) consulted on every verification.
//
// Entries are existence-only: an id is either revoked or it is not,
// insertion is idempotent, and nothing is ever removed. Backends must
// be safe for concurrent Contains/Add across in-flight requests.
//
// Backend I/O failures wrap [ErrUnavailable] so callers can tell an
// infrastructure fault (authentication status unknowable) apart from an
// authentication rejection.
package revocation
