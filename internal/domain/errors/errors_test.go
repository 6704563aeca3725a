package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	all := []error{
		ErrDuplicateEmail, ErrInvalidCredentials, ErrAccountLocked, ErrUnauthorized,
		ErrInvalidToken, ErrExpiredToken, ErrForbidden, ErrUserNotFound,
		ErrProjectNotFound, ErrSiteNotFound, ErrInvalidRole, ErrMissingGeometry,
		ErrInvalidGeometry,
	}
	seen := make(map[string]bool)
	for _, err := range all {
		if err == nil {
			t.Fatal("sentinel error should not be nil")
		}
		if seen[err.Error()] {
			t.Errorf("duplicate message %q", err.Error())
		}
		seen[err.Error()] = true
	}
}

func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: %w", ErrUnauthorized, ErrExpiredToken)
	if !errors.Is(wrapped, ErrUnauthorized) || !errors.Is(wrapped, ErrExpiredToken) {
		t.Errorf("wrapped error lost its sentinels: %v", wrapped)
	}
}
