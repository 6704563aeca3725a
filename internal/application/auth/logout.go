package auth

import (
	"context"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
)

// Logout revokes the caller's token until it would have expired anyway.
type Logout struct {
	revocations ports.RevocationStore
}

func NewLogout(revocations ports.RevocationStore) *Logout {
	return &Logout{revocations: revocations}
}

func (uc *Logout) Execute(ctx context.Context, claims *ports.TokenClaims) error {
	if claims == nil || claims.TokenID == "" {
		return nil
	}
	return uc.revocations.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}
