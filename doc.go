// Package authgate provides an embeddable JWT bearer-token
// authentication core: credential-checked token issuance, signature and
// structural verification, Redis-backed revocation, and a per-request
// authentication gateway with configurable fail-open/fail-closed policy.
//
// The package is designed for concurrent server workloads: Engine
// methods are safe to call from multiple goroutines after
// initialization through [Builder.Build].
//
// # Architecture boundaries
//
// authgate is the public surface. It exposes [Engine], [Builder],
// [Config], and value types (Principal, IssuedToken, Outcome,
// MetricsSnapshot). Token encoding lives in the jwt subpackage, the
// blacklist in revocation, credential hashing in password, and HTTP
// adapters in middleware.
//
// # What this package must NOT do
//
//   - Expose Redis clients, key objects, or encoding details in its
//     public API.
//   - Leak decode-failure reasons or credential-lookup detail across
//     the Engine boundary; callers only ever see [ErrUnauthorized],
//     [ErrInvalidCredentials], or an infrastructure error.
//   - Carry any state between requests: every Authenticate call is an
//     independent evaluation.
package authgate
