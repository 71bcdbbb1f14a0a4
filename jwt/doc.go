// Package jwt implements the signed-token codec: encoding a verified
// claim set into a compact RSA-signed token string and decoding a raw
// token back into claims under strict structural rules.
//
// # Claim layout
//
//   - jti: unique token id, the revocation key
//   - sub: subject username
//   - grants: custom roles claim (lenient decoding, see [GrantList])
//   - iat / exp: issuance and expiration timestamps
//
// # Architecture boundaries
//
// The codec owns signatures and claim structure. It never consults the
// revocation store, never compares exp against the clock, and never
// applies failure policy; all of that belongs to the engine.
package jwt
