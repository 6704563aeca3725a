package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/auth"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is empty, a default is used from code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	_ = writeJSON(w, code, map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusTooManyRequests:
		return ErrCodeAccountLocked
	default:
		return ErrCodeInternal
	}
}

// writeJSON encodes v before touching the response, so a value that cannot be
// encoded turns into a 500 instead of a committed status with an empty body.
func writeJSON(w http.ResponseWriter, code int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(internalErrBody)
		return fmt.Errorf("encode response: %w", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(append(body, '\n'))
	return nil
}

var internalErrBody = []byte(`{"code":"` + ErrCodeInternal + `","error":"internal error"}` + "\n")

// respondJSON is writeJSON for handler results; encoding failures are logged.
func respondJSON(w http.ResponseWriter, log zerolog.Logger, code int, v any) {
	if err := writeJSON(w, code, v); err != nil {
		log.Error().Err(err).Msg("write response")
	}
}

// writeDomainErr maps a use case error to its HTTP status. Anything unknown
// is logged and answered with a bare 500.
func writeDomainErr(w http.ResponseWriter, log zerolog.Logger, err error) {
	var locked *auth.AccountLockedError
	switch {
	case errors.As(err, &locked):
		w.Header().Set("Retry-After", strconv.Itoa(locked.RetryAfterSeconds))
		writeErr(w, http.StatusTooManyRequests, ErrCodeAccountLocked, domerrors.ErrAccountLocked.Error())
	case errors.Is(err, domerrors.ErrDuplicateEmail):
		writeErr(w, http.StatusBadRequest, ErrCodeDuplicateEmail, domerrors.ErrDuplicateEmail.Error())
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, domerrors.ErrInvalidCredentials.Error())
	case errors.Is(err, domerrors.ErrExpiredToken):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidToken, domerrors.ErrExpiredToken.Error())
	case errors.Is(err, domerrors.ErrInvalidToken):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidToken, domerrors.ErrInvalidToken.Error())
	case errors.Is(err, domerrors.ErrUnauthorized):
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, domerrors.ErrUnauthorized.Error())
	case errors.Is(err, domerrors.ErrForbidden):
		writeErr(w, http.StatusForbidden, ErrCodeForbidden, domerrors.ErrForbidden.Error())
	case errors.Is(err, domerrors.ErrUserNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, domerrors.ErrUserNotFound.Error())
	case errors.Is(err, domerrors.ErrProjectNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, domerrors.ErrProjectNotFound.Error())
	case errors.Is(err, domerrors.ErrSiteNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, domerrors.ErrSiteNotFound.Error())
	case errors.Is(err, domerrors.ErrInvalidRole):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRole, domerrors.ErrInvalidRole.Error())
	case errors.Is(err, domerrors.ErrMissingGeometry):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidGeometry, domerrors.ErrMissingGeometry.Error())
	case errors.Is(err, domerrors.ErrInvalidGeometry):
		log.Debug().Err(err).Msg("rejected geometry")
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidGeometry, domerrors.ErrInvalidGeometry.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}
