package middleware

import "net/http"

// APIVersion sets the X-API-Version response header on every response.
func APIVersion(version string) func(next http.Handler) http.Handler {
	if version == "" {
		version = "dev"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-API-Version", version)
			next.ServeHTTP(w, r)
		})
	}
}
