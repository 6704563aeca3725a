package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newIssuer(t *testing.T, clock *fakeClock) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer([]byte("super-secret"), 0, WithClock(clock.Now))
	require.NoError(t, err)
	return issuer
}

func TestIssueAndVerify(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	issuer := newIssuer(t, clock)

	issued, err := issuer.Issue(42)
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(7*24*time.Hour), issued.ExpiresAt)

	claims, err := issuer.Verify(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.UserID(42), claims.UserID)
	assert.NotEmpty(t, claims.TokenID)
	assert.True(t, issued.ExpiresAt.Equal(claims.ExpiresAt))
}

func TestVerify_ValidForSevenDaysThenExpired(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issuedAt}
	issuer := newIssuer(t, clock)

	issued, err := issuer.Issue(7)
	require.NoError(t, err)

	for _, offset := range []time.Duration{time.Second, 24 * time.Hour, 7*24*time.Hour - time.Second, 7 * 24 * time.Hour} {
		clock.t = issuedAt.Add(offset)
		claims, err := issuer.Verify(issued.Token)
		require.NoError(t, err, "offset %s", offset)
		assert.Equal(t, domain.UserID(7), claims.UserID)
	}

	clock.t = issuedAt.Add(7*24*time.Hour + time.Second)
	_, err = issuer.Verify(issued.Token)
	assert.ErrorIs(t, err, domerrors.ErrExpiredToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	issued, err := newIssuer(t, clock).Issue(1)
	require.NoError(t, err)

	other, err := NewTokenIssuer([]byte("another-secret"), 0, WithClock(clock.Now))
	require.NoError(t, err)
	_, err = other.Verify(issued.Token)
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	issuer := newIssuer(t, &fakeClock{t: time.Now()})
	for _, tok := range []string{"", "not.a.jwt", "abc"} {
		_, err := issuer.Verify(tok)
		assert.ErrorIs(t, err, domerrors.ErrInvalidToken, tok)
	}
}

func TestVerify_MissingClaims(t *testing.T) {
	now := time.Now()
	issuer := newIssuer(t, &fakeClock{t: now})
	secret := []byte("super-secret")

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": now.Add(time.Hour).Unix(),
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = issuer.Verify(noUser)
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 3,
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = issuer.Verify(noExp)
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)

	badType, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "three",
		"exp":     now.Add(time.Hour).Unix(),
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = issuer.Verify(badType)
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	now := time.Now()
	issuer := newIssuer(t, &fakeClock{t: now})
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 1,
		"exp":     now.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Verify(unsigned)
	assert.True(t, errors.Is(err, domerrors.ErrInvalidToken))
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer(nil, time.Hour)
	assert.Error(t, err)
}
