package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/vkm-dev/authgate"
	"github.com/vkm-dev/authgate/revocation"
)

type principalContextKey struct{}

// PrincipalFromContext returns the principal injected by Guard. The
// second result is false outside a guarded handler. Anonymous requests
// carry the empty-grants principal, so callers distinguish anonymous
// from authenticated via Principal.Anonymous, not via the ok flag.
func PrincipalFromContext(ctx context.Context) (*authgate.Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(*authgate.Principal)
	return p, ok
}

// Guard returns middleware that authenticates every request through
// engine.Authenticate. Authenticated and Anonymous requests continue
// with the principal in context; Rejected requests stop with 401, or
// 503 when the revocation store could not answer.
func Guard(engine *authgate.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			out := engine.Authenticate(r.Context(), r.Header.Get(engine.HeaderName()))
			if out.State == authgate.StateRejected {
				if errors.Is(out.Err, revocation.ErrUnavailable) {
					http.Error(w, "service unavailable", http.StatusServiceUnavailable)
					return
				}
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), principalContextKey{}, out.Principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RevokeHandler returns a handler for the revocation endpoint. It reads
// the token id from the "id" form value (query or POST body), revokes
// it, and answers 204. Revoking an unknown or already revoked id is
// still success; only a store fault yields 503.
func RevokeHandler(engine *authgate.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		id := r.FormValue("id")
		if id == "" {
			http.Error(w, "missing token id", http.StatusBadRequest)
			return
		}

		if err := engine.Revoke(r.Context(), id); err != nil {
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
