package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureOptions returns the security headers for a JSON API. In development
// mode unrolled/secure skips the host and SSL checks.
func SecureOptions(isDevelopment bool) secure.Options {
	return secure.Options{
		IsDevelopment:         isDevelopment,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
	}
}

// NewSecure returns a middleware that adds security headers.
func NewSecure(opts secure.Options) func(next http.Handler) http.Handler {
	return secure.New(opts).Handler
}
