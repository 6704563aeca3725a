package auth

import (
	"context"
	"fmt"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	User   *domain.User
	Claims *ports.TokenClaims
}

// Authenticate resolves a bearer token to the user it was issued for.
type Authenticate struct {
	uow         ports.UnitOfWork
	issuer      ports.TokenIssuer
	revocations ports.RevocationStore
}

// NewAuthenticate builds the gate. revocations may be nil.
func NewAuthenticate(uow ports.UnitOfWork, issuer ports.TokenIssuer, revocations ports.RevocationStore) *Authenticate {
	return &Authenticate{uow: uow, issuer: issuer, revocations: revocations}
}

// Execute fails with an error matching ErrUnauthorized. For expired tokens the
// error also matches ErrExpiredToken.
func (uc *Authenticate) Execute(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, domerrors.ErrUnauthorized
	}
	claims, err := uc.issuer.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domerrors.ErrUnauthorized, err)
	}
	if uc.revocations != nil && claims.TokenID != "" {
		revoked, err := uc.revocations.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: token revoked", domerrors.ErrUnauthorized)
		}
	}
	var user *domain.User
	err = uc.uow.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		user, err = tx.Users().GetByID(ctx, claims.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %w", domerrors.ErrUnauthorized, domerrors.ErrUserNotFound)
	}
	return &Principal{User: user, Claims: claims}, nil
}
