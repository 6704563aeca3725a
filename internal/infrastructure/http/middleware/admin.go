package middleware

import (
	"net/http"

	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
)

// RequireRole rejects callers whose role is not role with 403. It must run
// after AuthValidator; a request without a caller is 401.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				writeErr(w, http.StatusUnauthorized, "unauthorized", domerrors.ErrUnauthorized.Error())
				return
			}
			if user.Role != role {
				writeErr(w, http.StatusForbidden, "forbidden", domerrors.ErrForbidden.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is RequireRole(domain.RoleAdmin).
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(domain.RoleAdmin)(next)
}
