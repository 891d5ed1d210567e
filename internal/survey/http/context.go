package http

import (
	"context"

	"github.com/aussiebroadwan/qasurvey/internal/survey/service"
)

type principalKey struct{}

func withPrincipal(ctx context.Context, p service.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// principalFrom returns the caller set by the authenticate middleware. Every
// protected route runs behind it, so a missing principal is a wiring bug.
func principalFrom(ctx context.Context) service.Principal {
	p, ok := ctx.Value(principalKey{}).(service.Principal)
	if !ok {
		panic("http: no principal on request context")
	}
	return p
}
