package jwt

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Supported signing algorithm identifiers. The algorithm is fixed per
// deployment: changing it invalidates every previously issued token, so
// treat a rotation as a full re-issue migration.
const (
	AlgRS256 = "RS256"
	AlgRS384 = "RS384"
	AlgRS512 = "RS512"
)

// KeyAlgorithmRSA is the only supported key family. It must match the
// configured signing algorithm's family.
const KeyAlgorithmRSA = "rsa"

// ErrNoPrivateKey is returned by Codec.Encode when the key pair was
// built for verification only.
var ErrNoPrivateKey = errors.New("no private key configured for signing")

// KeyConfig carries base64-encoded DER key material and the algorithm
// identifiers it must decode under.
type KeyConfig struct {
	// SigningAlgorithm selects the RSA JWS algorithm (RS256, RS384,
	// RS512). Defaults to RS512 when empty.
	SigningAlgorithm string

	// KeyAlgorithm names the key family the material belongs to.
	// Only "rsa" is accepted. Defaults to "rsa" when empty.
	KeyAlgorithm string

	// PublicKey is the base64 encoding of a DER PKIX (SubjectPublicKeyInfo)
	// RSA public key. Required.
	PublicKey string

	// PrivateKey is the base64 encoding of a DER PKCS#8 (or PKCS#1)
	// RSA private key. Optional: a pair without it can verify but not sign.
	PrivateKey string
}

// KeyPair holds the process-lifetime verification and signing keys.
// Both accessors return the same objects for the lifetime of the pair;
// there is no rotation or runtime mutation.
type KeyPair struct {
	public  *rsa.PublicKey
	private *rsa.PrivateKey
}

// NewKeyPair decodes and validates the configured key material. Any
// decoding failure here is a startup-time configuration error and must
// abort initialization; there is no request-time recovery from bad keys.
func NewKeyPair(cfg KeyConfig) (*KeyPair, error) {
	if alg := strings.ToLower(cfg.KeyAlgorithm); alg != "" && alg != KeyAlgorithmRSA {
		return nil, fmt.Errorf("unsupported key algorithm %q", cfg.KeyAlgorithm)
	}
	if _, err := signingMethod(cfg.SigningAlgorithm); err != nil {
		return nil, err
	}
	if cfg.PublicKey == "" {
		return nil, errors.New("public key material is required")
	}

	public, err := parsePublicKey(cfg.PublicKey)
	if err != nil {
		return nil, err
	}

	pair := &KeyPair{public: public}

	if cfg.PrivateKey != "" {
		private, err := parsePrivateKey(cfg.PrivateKey)
		if err != nil {
			return nil, err
		}
		if !private.PublicKey.Equal(public) {
			return nil, errors.New("private key does not match public key")
		}
		pair.private = private
	}

	return pair, nil
}

// Public returns the verification key.
func (k *KeyPair) Public() *rsa.PublicKey {
	return k.public
}

// Private returns the signing key, or nil for a verify-only pair.
func (k *KeyPair) Private() *rsa.PrivateKey {
	return k.private
}

// CanSign reports whether the pair carries a signing key.
func (k *KeyPair) CanSign() bool {
	return k.private != nil
}

func signingMethod(alg string) (*jwt.SigningMethodRSA, error) {
	switch alg {
	case "", AlgRS512:
		return jwt.SigningMethodRS512, nil
	case AlgRS384:
		return jwt.SigningMethodRS384, nil
	case AlgRS256:
		return jwt.SigningMethodRS256, nil
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}
}

func parsePublicKey(encoded string) (*rsa.PublicKey, error) {
	der, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, errors.New("public key is not valid base64")
	}

	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, errors.New("public key is not valid PKIX DER")
	}

	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return key, nil
}

func parsePrivateKey(encoded string) (*rsa.PrivateKey, error) {
	der, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, errors.New("private key is not valid base64")
	}

	if parsed, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		key, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("private key is not an RSA key")
		}
		return key, nil
	}

	key, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, errors.New("private key is not valid PKCS#8 or PKCS#1 DER")
	}

	return key, nil
}
