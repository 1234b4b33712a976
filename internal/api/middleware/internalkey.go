package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/dmhouse/wallet-api/internal/api/shared"
	"github.com/dmhouse/wallet-api/internal/remote"
)

// exemptPaths are reachable without the internal key: the public entry
// points and the operational endpoints.
var exemptPaths = map[string]struct{}{
	"/health":        {},
	"/metrics":       {},
	"/auth/login":    {},
	"/auth/register": {},
}

// InternalKeyMiddleware rejects requests that do not carry the shared
// internal key header. Peer services attach the key on every call; the
// exempt paths stay open so users can register, log in, and probes can
// reach health and metrics.
type InternalKeyMiddleware struct {
	key string
}

// NewInternalKeyMiddleware creates an InternalKeyMiddleware for the given
// shared key.
func NewInternalKeyMiddleware(key string) *InternalKeyMiddleware {
	return &InternalKeyMiddleware{key: key}
}

// Require enforces the internal key on all non-exempt paths.
func (m *InternalKeyMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, exempt := exemptPaths[r.URL.Path]; exempt {
			next.ServeHTTP(w, r)
			return
		}

		got := r.Header.Get(remote.InternalKeyHeader)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(m.key)) != 1 {
			shared.RespondWithError(w, r, http.StatusForbidden, "Invalid internal key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
