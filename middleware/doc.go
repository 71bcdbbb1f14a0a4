// Package middleware exposes net/http adapters over the authgate
// gateway: a request guard and the revocation endpoint.
//
// # Handlers
//
//   - [Guard] wraps a handler, runs Engine.Authenticate on the
//     configured header, and injects the resulting principal into the
//     request context.
//   - [RevokeHandler] implements the revocation endpoint contract:
//     accept a token id, revoke it, succeed unconditionally.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It makes no
// authentication decision itself: Rejected maps to 401, revocation
// store faults map to 503, everything else passes through.
package middleware
