package authgate

import (
	"errors"
	"time"
)

// Config is the full configuration surface of the engine. It is cloned
// by the Builder and treated as immutable after Build.
type Config struct {
	JWT        JWTConfig
	Header     HeaderConfig
	Policy     PolicyConfig
	Password   PasswordConfig
	Revocation RevocationConfig
	Metrics    MetricsConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig configures the token codec and key material.
type JWTConfig struct {
	// SigningAlgorithm is the fixed JWS algorithm identifier (RS256,
	// RS384, RS512). Default RS512. Changing it invalidates all
	// previously issued tokens.
	SigningAlgorithm string

	// KeyAlgorithm names the key family of the configured material.
	// Only "rsa" is supported; it must match SigningAlgorithm's family.
	KeyAlgorithm string

	// PublicKey is base64-encoded DER PKIX key material. Required.
	PublicKey string

	// PrivateKey is base64-encoded DER PKCS#8 (or PKCS#1) key material.
	// Optional: without it the engine can verify but not issue.
	PrivateKey string

	// TokenTTL is the issuance-time lifetime of a token.
	TokenTTL time.Duration
}

/*
====================================
HEADER CONFIG
====================================
*/

// HeaderConfig names the inbound header and authorization scheme the
// gateway extracts tokens from.
type HeaderConfig struct {
	Name   string // default "Authorization"
	Scheme string // default "Bearer"
}

/*
====================================
POLICY CONFIG
====================================
*/

// PolicyConfig holds the two independent fail-open/fail-closed toggles
// plus the anonymous-access switch. Each failure class (malformed
// token, revoked token) is either a hard rejection (flag set) or a
// silent downgrade to "no credentials presented" (flag clear).
type PolicyConfig struct {
	FailOnInvalidToken     bool
	FailOnBlacklistedToken bool
	AllowAnonymous         bool
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig carries the argon2id cost parameters.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

/*
====================================
REVOCATION CONFIG
====================================
*/

// RevocationConfig configures the Redis-backed revocation set.
type RevocationConfig struct {
	RedisPrefix string
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig toggles the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the baseline configuration: RS512 over RSA,
// 15-minute tokens, Authorization/Bearer extraction, strict rejection
// of invalid and revoked tokens, no anonymous access, and moderate
// argon2id parameters.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			SigningAlgorithm: "RS512",
			KeyAlgorithm:     "rsa",
			TokenTTL:         15 * time.Minute,
		},
		Header: HeaderConfig{
			Name:   "Authorization",
			Scheme: "Bearer",
		},
		Policy: PolicyConfig{
			FailOnInvalidToken:     true,
			FailOnBlacklistedToken: true,
			AllowAnonymous:         false,
		},
		Password: PasswordConfig{
			Memory:      64 * 1024,
			Time:        2,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Revocation: RevocationConfig{
			RedisPrefix: "ag",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// Every field is a value type or string; a shallow copy is a full copy.
	return cfg
}

func validateConfig(cfg Config) error {
	if cfg.JWT.TokenTTL <= 0 {
		return errors.New("token TTL must be positive")
	}
	if cfg.JWT.PublicKey == "" {
		return errors.New("public key is required")
	}
	if cfg.Header.Name == "" {
		return errors.New("header name must not be empty")
	}
	if cfg.Header.Scheme == "" {
		return errors.New("header scheme must not be empty")
	}
	return nil
}
