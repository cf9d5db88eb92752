package chi

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"
)

// exemptPaths bypass authentication for health checks and metric scrapes.
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// apiKeyRing holds SHA-256 digests of the configured keys. Comparing
// fixed-size digests in constant time leaks neither key content nor length.
type apiKeyRing [][sha256.Size]byte

func newAPIKeyRing(keys []string) apiKeyRing {
	ring := make(apiKeyRing, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			ring = append(ring, sha256.Sum256([]byte(k)))
		}
	}
	return ring
}

// contains checks token against every key without stopping at the first hit.
func (ring apiKeyRing) contains(token string) bool {
	digest := sha256.Sum256([]byte(token))
	found := 0
	for i := range ring {
		found |= subtle.ConstantTimeCompare(ring[i][:], digest[:])
	}
	return found == 1
}

// BearerAuthMiddleware guards the search endpoints with API keys sent as
// "Authorization: Bearer <key>". Without keys authentication is disabled.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	ring := newAPIKeyRing(apiKeys)

	return func(next http.Handler) http.Handler {
		if len(ring) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			switch {
			case !ok:
				unauthorized(w, "authorization header must use Bearer scheme")
			case !ring.contains(token):
				unauthorized(w, "invalid api key")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// bearerToken extracts the credentials of a Bearer authorization header.
// The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="lasr"`)
	writeError(w, http.StatusUnauthorized, ErrorResponseCodeUnauthorized, message)
}
