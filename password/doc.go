// Package password implements credential hashing, verification, and the
// creation-time password policy.
//
// # Output format
//
// Hashes are encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// Verification recomputes the hash with the parameters stored in the
// PHC string and compares with a constant-time primitive; callers never
// implement their own byte comparison.
//
// # Architecture boundaries
//
// This package owns hashing, verification, and the [CheckPolicy] rules.
// It never stores credentials and never logs plaintext or hashes.
package password
