package http

import (
	"context"

	"carsharing-backend/internal/domain"
)

type principalKey struct{}

func withPrincipal(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, principalKey{}, user)
}

// PrincipalFromContext returns the authenticated user placed on the request
// by the auth middleware.
func PrincipalFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(principalKey{}).(*domain.User)
	return u, ok && u != nil
}
