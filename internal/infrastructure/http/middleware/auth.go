package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/auth"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
)

// Authenticator resolves a bearer token to its caller.
type Authenticator interface {
	Execute(ctx context.Context, token string) (*auth.Principal, error)
}

// AuthValidator requires a valid bearer token and stores the caller in the
// context (see PrincipalFromContext).
type AuthValidator struct {
	authn Authenticator
	log   zerolog.Logger
}

func NewAuthValidator(authn Authenticator, log zerolog.Logger) *AuthValidator {
	return &AuthValidator{authn: authn, log: log}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			writeErr(w, http.StatusUnauthorized, "unauthorized", "missing or invalid authorization")
			return
		}
		principal, err := m.authn.Execute(r.Context(), strings.TrimSpace(token))
		switch {
		case err == nil:
		case errors.Is(err, domerrors.ErrExpiredToken):
			writeErr(w, http.StatusUnauthorized, "invalid_token", domerrors.ErrExpiredToken.Error())
			return
		case errors.Is(err, domerrors.ErrUserNotFound):
			writeErr(w, http.StatusUnauthorized, "unauthorized", domerrors.ErrUserNotFound.Error())
			return
		case errors.Is(err, domerrors.ErrUnauthorized):
			writeErr(w, http.StatusUnauthorized, "invalid_token", domerrors.ErrInvalidToken.Error())
			return
		default:
			m.log.Error().Err(err).Msg("authenticate request")
			writeErr(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}
