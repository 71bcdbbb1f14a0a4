package password

import (
	"strings"
	"testing"
)

func testConfig() Config {
	// Smallest accepted parameters to keep tests fast.
	return Config{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}
}

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(testConfig())
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	return h
}

func TestHashVerifyRoundTrip(t *testing.T) {
	h := newTestHasher(t)

	encoded, err := h.Hash("correct-Horse-9!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected PHC prefix: %q", encoded)
	}

	ok, err := h.Verify("correct-Horse-9!", encoded)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}

	ok, err = h.Verify("wrong-password-1!", encoded)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("expected mismatched password to fail")
	}
}

func TestHashProducesUniqueSalts(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("correct-Horse-9!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("correct-Horse-9!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == second {
		t.Fatal("expected distinct salts to produce distinct hashes")
	}
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	h := newTestHasher(t)

	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=8192,t=1,p=1$short$short",
		"$bcrypt$v=19$m=8192,t=1,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAA",
		"$argon2id$v=18$m=8192,t=1,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAA",
		"$argon2id$v=19$m=1,t=1,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAA",
	} {
		if _, err := h.Verify("any-Password-1!", encoded); err == nil {
			t.Fatalf("expected malformed hash %q to be rejected", encoded)
		}
	}
}

func TestNeedsRehash(t *testing.T) {
	weak := newTestHasher(t)

	encoded, err := weak.Hash("correct-Horse-9!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	same, err := weak.NeedsRehash(encoded)
	if err != nil {
		t.Fatalf("needs rehash: %v", err)
	}
	if same {
		t.Fatal("expected current parameters to not require rehash")
	}

	stronger, err := NewHasher(Config{
		Memory:      16 * 1024,
		Time:        2,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	})
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}

	upgrade, err := stronger.NeedsRehash(encoded)
	if err != nil {
		t.Fatalf("needs rehash: %v", err)
	}
	if !upgrade {
		t.Fatal("expected stronger parameters to require rehash")
	}
}

func TestNewHasherRejectsWeakConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"memory too low", func(c *Config) { c.Memory = 1024 }},
		{"time zero", func(c *Config) { c.Time = 0 }},
		{"parallelism zero", func(c *Config) { c.Parallelism = 0 }},
		{"salt too short", func(c *Config) { c.SaltLength = 8 }},
		{"key too short", func(c *Config) { c.KeyLength = 8 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			if _, err := NewHasher(cfg); err == nil {
				t.Fatal("expected weak config to be rejected")
			}
		})
	}
}
