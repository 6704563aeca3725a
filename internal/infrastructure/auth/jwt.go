package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
)

// DefaultTokenTTL is how long a session token stays valid after issuance.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenIssuer implements ports.TokenIssuer with HS256.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// Option configures a TokenIssuer.
type Option func(*TokenIssuer)

// WithClock overrides the wall clock used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(t *TokenIssuer) { t.now = now }
}

// NewTokenIssuer returns an issuer signing with secret. A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenIssuer(secret []byte, ttl time.Duration, opts ...Option) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	t := &TokenIssuer{secret: secret, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *TokenIssuer) Issue(userID domain.UserID) (*ports.IssuedToken, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: int64(userID),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &ports.IssuedToken{Token: signed, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (t *TokenIssuer) Verify(tokenString string) (*ports.TokenClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
		// exp is inclusive: a token is still valid at exactly its expiry second.
		jwt.WithLeeway(time.Second),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domerrors.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", domerrors.ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID <= 0 || claims.ExpiresAt == nil {
		return nil, domerrors.ErrInvalidToken
	}
	return &ports.TokenClaims{
		UserID:    domain.UserID(claims.UserID),
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Ensure TokenIssuer implements ports.TokenIssuer.
var _ ports.TokenIssuer = (*TokenIssuer)(nil)
