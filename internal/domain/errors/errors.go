package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("too many failed login attempts")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrForbidden          = errors.New("not authorized")
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrSiteNotFound       = errors.New("site not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrMissingGeometry    = errors.New("polygon_wkt required")
	ErrInvalidGeometry    = errors.New("polygon_wkt must be a valid POLYGON")
)
