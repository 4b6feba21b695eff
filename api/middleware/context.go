package middleware

import (
	"context"

	"github.com/AhmedSalahALghzaly/lats-go/internal/auth"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
)

type contextKey string

const (
	ctxIdentity contextKey = "identity"
	ctxToken    contextKey = "session_token"
)

// IdentityFromContext returns the authenticated actor, nil for guests.
func IdentityFromContext(ctx context.Context) *auth.Identity {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxIdentity).(*auth.Identity); ok {
		return v
	}
	return nil
}

func RoleFromContext(ctx context.Context) enums.Role {
	if identity := IdentityFromContext(ctx); identity != nil {
		return identity.Role
	}
	return enums.RoleGuest
}

func UserIDFromContext(ctx context.Context) string {
	if identity := IdentityFromContext(ctx); identity != nil {
		return identity.User.ID
	}
	return ""
}

func TokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxToken).(string); ok {
		return v
	}
	return ""
}

// WithIdentity injects an identity, used by handlers under test.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, ctxIdentity, identity)
}

func withToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxToken, token)
}
