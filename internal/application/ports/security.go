package ports

import (
	"context"
	"time"

	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenClaims is what a verified session token carries.
type TokenClaims struct {
	UserID    domain.UserID
	TokenID   string
	ExpiresAt time.Time
}

// IssuedToken is a signed session token and its absolute expiry.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenIssuer signs and validates session tokens (HS256).
type TokenIssuer interface {
	Issue(userID domain.UserID) (*IssuedToken, error)
	// Verify returns domerrors.ErrExpiredToken or domerrors.ErrInvalidToken on failure.
	Verify(token string) (*TokenClaims, error)
}

// RevocationStore remembers tokens that were invalidated before their expiry.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
