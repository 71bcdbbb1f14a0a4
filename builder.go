package authgate

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vkm-dev/authgate/jwt"
	"github.com/vkm-dev/authgate/password"
	"github.com/vkm-dev/authgate/revocation"
)

// Builder assembles an Engine. Configure with the With* methods, then
// call Build exactly once. Build performs all validation and key
// parsing; invalid key material or configuration aborts construction
// so a misconfigured process never starts serving.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	userProvider UserProvider
	revocations  revocation.Store

	built bool
}

// New returns a Builder seeded with DefaultConfig.
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the entire configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis supplies the Redis client backing the revocation set.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithUserProvider supplies the credential-lookup collaborator.
// Required.
func (b *Builder) WithUserProvider(up UserProvider) *Builder {
	b.userProvider = up
	return b
}

// WithRevocationStore overrides the revocation backend. Takes
// precedence over WithRedis.
func (b *Builder) WithRevocationStore(store revocation.Store) *Builder {
	b.revocations = store
	return b
}

// WithTokenTTL overrides the issued-token lifetime.
func (b *Builder) WithTokenTTL(ttl time.Duration) *Builder {
	b.config.JWT.TokenTTL = ttl
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration, parses the key material, and
// returns a ready Engine. A Builder is single-use.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	if err := validateConfig(b.config); err != nil {
		return nil, err
	}
	if b.userProvider == nil {
		return nil, errors.New("user provider is required")
	}

	keys, err := jwt.NewKeyPair(jwt.KeyConfig{
		SigningAlgorithm: b.config.JWT.SigningAlgorithm,
		KeyAlgorithm:     b.config.JWT.KeyAlgorithm,
		PublicKey:        b.config.JWT.PublicKey,
		PrivateKey:       b.config.JWT.PrivateKey,
	})
	if err != nil {
		return nil, err
	}

	codec, err := jwt.NewCodec(b.config.JWT.SigningAlgorithm, keys)
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(password.Config{
		Memory:      b.config.Password.Memory,
		Time:        b.config.Password.Time,
		Parallelism: b.config.Password.Parallelism,
		SaltLength:  b.config.Password.SaltLength,
		KeyLength:   b.config.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	store := b.revocations
	if store == nil {
		if b.redis != nil {
			store = revocation.NewRedisStore(b.redis, b.config.Revocation.RedisPrefix)
		} else {
			store = revocation.NewMemoryStore()
		}
	}

	b.built = true

	return &Engine{
		config:       b.config,
		codec:        codec,
		keys:         keys,
		revocations:  store,
		passwordHash: hasher,
		userProvider: b.userProvider,
		metrics:      NewMetrics(b.config.Metrics),
		now:          time.Now,
	}, nil
}
