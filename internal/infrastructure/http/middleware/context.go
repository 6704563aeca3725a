package middleware

import (
	"context"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/auth"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
)

type contextKey string

const principalContextKey contextKey = "principal"

// WithPrincipal injects the authenticated caller into the context.
func WithPrincipal(ctx context.Context, p *auth.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext returns the authenticated caller, or nil.
func PrincipalFromContext(ctx context.Context) *auth.Principal {
	p, _ := ctx.Value(principalContextKey).(*auth.Principal)
	return p
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *domain.User {
	if p := PrincipalFromContext(ctx); p != nil {
		return p.User
	}
	return nil
}
