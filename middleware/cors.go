// ABOUTME: CORS middleware for API cross-origin requests
// ABOUTME: Echoes allowed origins and handles preflight OPTIONS

package middleware

import (
	"net/http"
	"slices"
)

// CORS returns middleware that adds CORS headers for origins in allowed.
// A "*" entry allows any origin. Requests from other origins get no CORS
// headers, and the browser blocks them. Preflight OPTIONS requests return
// 204 without calling the wrapped handler.
func CORS(allowed []string) func(http.HandlerFunc) http.HandlerFunc {
	wildcard := slices.Contains(allowed, "*")
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (wildcard || slices.Contains(allowed, origin)) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next(w, r)
		}
	}
}
