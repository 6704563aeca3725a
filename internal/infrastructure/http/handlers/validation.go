package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Validation limits.
const (
	MaxEmailLength    = 254
	MaxPasswordLength = 128
	MaxNameLength     = 255
	maxBodyBytes      = 1 << 20
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SanitizeEmail trims surrounding space. Case is preserved: emails match exactly.
func SanitizeEmail(email string) string {
	s := strings.TrimSpace(email)
	if len(s) > MaxEmailLength {
		return ""
	}
	return s
}

// decodeBody reads a JSON body into v and runs its validate tags. On failure
// it has already answered 400.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return false
	}
	if err := validate.Struct(v); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return false
	}
	return true
}

// pathID parses a positive integer URL parameter. On failure it has already answered 400.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
