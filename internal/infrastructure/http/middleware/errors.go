package middleware

import (
	"net/http"

	"github.com/goccy/go-json"
)

// writeErr sends the same { "error", "code" } shape the handlers use.
func writeErr(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": code})
}
