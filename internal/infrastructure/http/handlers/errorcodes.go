package handlers

// API error codes returned in JSON { "error": "...", "code": "..." } for stable client handling.
const (
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeAccountLocked      = "account_locked"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeNotFound           = "not_found"
	ErrCodeDuplicateEmail     = "duplicate_email"
	ErrCodeForbidden          = "forbidden"
	ErrCodeInvalidToken       = "invalid_token"
	ErrCodeInvalidRole        = "invalid_role"
	ErrCodeInvalidGeometry    = "invalid_geometry"
	ErrCodeInternal           = "internal_error"
)
