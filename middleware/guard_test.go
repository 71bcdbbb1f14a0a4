package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/vkm-dev/authgate"
	"github.com/vkm-dev/authgate/password"
	"github.com/vkm-dev/authgate/revocation"
)

const (
	testUsername = "alice"
	testPassword = "Wonder-land-1"
)

var (
	setupOnce sync.Once
	setupKey  *rsa.PrivateKey
	setupHash string
	setupErr  error
)

func testMaterial(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	setupOnce.Do(func() {
		setupKey, setupErr = rsa.GenerateKey(rand.Reader, 2048)
		if setupErr != nil {
			return
		}
		hasher, err := password.NewHasher(password.Config{
			Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 16,
		})
		if err != nil {
			setupErr = err
			return
		}
		setupHash, setupErr = hasher.Hash(testPassword)
	})
	if setupErr != nil {
		t.Fatalf("test setup: %v", setupErr)
	}
	return setupKey, setupHash
}

type staticProvider struct{ hash string }

func (p staticProvider) GetUserByUsername(_ context.Context, username string) (authgate.UserRecord, error) {
	if username != testUsername {
		return authgate.UserRecord{}, authgate.ErrUserNotFound
	}
	return authgate.UserRecord{
		Username:     testUsername,
		PasswordHash: p.hash,
		Grants:       []string{"USER"},
	}, nil
}

type unavailableStore struct{}

func (unavailableStore) Contains(context.Context, string) (bool, error) {
	return false, fmt.Errorf("%w: connection refused", revocation.ErrUnavailable)
}

func (unavailableStore) Add(context.Context, string) error {
	return fmt.Errorf("%w: connection refused", revocation.ErrUnavailable)
}

func newGuardEngine(t *testing.T, mutate func(*authgate.Config), store revocation.Store) *authgate.Engine {
	t.Helper()
	key, hash := testMaterial(t)

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal private key: %v", err)
	}

	cfg := authgate.DefaultConfig()
	cfg.JWT.PublicKey = base64.StdEncoding.EncodeToString(pubDER)
	cfg.JWT.PrivateKey = base64.StdEncoding.EncodeToString(privDER)
	cfg.Password = authgate.PasswordConfig{
		Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 16,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	b := authgate.New().WithConfig(cfg).WithUserProvider(staticProvider{hash: hash})
	if store != nil {
		b = b.WithRevocationStore(store)
	}
	engine, err := b.Build()
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	return engine
}

func issueToken(t *testing.T, engine *authgate.Engine) *authgate.IssuedToken {
	t.Helper()
	issued, err := engine.Issue(context.Background(), testUsername, testPassword)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return issued
}

func guardedProbe(engine *authgate.Engine, saw **authgate.Principal) http.Handler {
	return Guard(engine)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			http.Error(w, "no principal", http.StatusInternalServerError)
			return
		}
		*saw = p
		w.WriteHeader(http.StatusOK)
	}))
}

func TestGuardAuthenticatedRequest(t *testing.T) {
	engine := newGuardEngine(t, nil, nil)
	issued := issueToken(t, engine)

	var saw *authgate.Principal
	handler := guardedProbe(engine, &saw)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(engine.HeaderName(), "Bearer "+issued.Token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	if saw == nil || saw.Username != testUsername {
		t.Fatalf("unexpected principal: %+v", saw)
	}
	if !saw.HasGrant("USER") {
		t.Fatal("expected USER grant in context principal")
	}
}

func TestGuardAnonymousRequest(t *testing.T) {
	engine := newGuardEngine(t, func(cfg *authgate.Config) {
		cfg.Policy.AllowAnonymous = true
	}, nil)

	var saw *authgate.Principal
	handler := guardedProbe(engine, &saw)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if saw == nil || !saw.Anonymous() {
		t.Fatalf("expected anonymous principal, got %+v", saw)
	}
}

func TestGuardRejectsRequest(t *testing.T) {
	engine := newGuardEngine(t, nil, nil)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"garbage token", "Bearer garbage"},
		{"wrong scheme", "Basic abcdef"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := Guard(engine)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatal("handler must not run")
			}))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set(engine.HeaderName(), tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestGuardNilEngine(t *testing.T) {
	handler := Guard(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestGuardStoreFaultIs503(t *testing.T) {
	// A healthy engine issues the token; a second engine sharing the key
	// material but backed by a dead store receives it.
	healthy := newGuardEngine(t, nil, nil)
	issued := issueToken(t, healthy)

	broken := newGuardEngine(t, nil, unavailableStore{})
	handler := Guard(broken)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(broken.HeaderName(), "Bearer "+issued.Token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestGuardCustomHeader(t *testing.T) {
	engine := newGuardEngine(t, func(cfg *authgate.Config) {
		cfg.Header.Name = "X-Auth-Token"
		cfg.Header.Scheme = "Token"
	}, nil)
	issued := issueToken(t, engine)

	var saw *authgate.Principal
	handler := guardedProbe(engine, &saw)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Auth-Token", "Token "+issued.Token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if saw == nil || saw.Username != testUsername {
		t.Fatalf("unexpected principal: %+v", saw)
	}
}

func TestRevokeHandlerLifecycle(t *testing.T) {
	engine := newGuardEngine(t, nil, nil)
	issued := issueToken(t, engine)
	revoke := RevokeHandler(engine)

	form := url.Values{"id": {issued.TokenID}}
	req := httptest.NewRequest(http.MethodPost, "/revoke", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	revoke.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("revoke status = %d, want 204", rec.Code)
	}

	// The revoked token no longer passes the guard.
	handler := Guard(engine)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(engine.HeaderName(), "Bearer "+issued.Token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("guard status = %d, want 401 after revocation", rec.Code)
	}
}

func TestRevokeHandlerValidation(t *testing.T) {
	engine := newGuardEngine(t, nil, nil)
	revoke := RevokeHandler(engine)

	req := httptest.NewRequest(http.MethodGet, "/revoke?id=tok-1", nil)
	rec := httptest.NewRecorder()
	revoke.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET status = %d, want 405", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/revoke", nil)
	rec = httptest.NewRecorder()
	revoke.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing id status = %d, want 400", rec.Code)
	}
}

func TestRevokeHandlerStoreFault(t *testing.T) {
	engine := newGuardEngine(t, nil, unavailableStore{})
	revoke := RevokeHandler(engine)

	req := httptest.NewRequest(http.MethodPost, "/revoke?id=tok-1", nil)
	rec := httptest.NewRecorder()
	revoke.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
