package middleware

import (
	"net/http"
	"strings"

	"github.com/AhmedSalahALghzaly/lats-go/api/responses"
	"github.com/AhmedSalahALghzaly/lats-go/internal/auth"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/config"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

// Auth resolves the session token from the auth cookie or a bearer header
// and attaches the actor's identity to the request context. Requests with
// no token, or a token the store no longer knows, proceed as guests so
// public catalog routes keep working without a session.
func Auth(svc *auth.Service, cfg config.AuthConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := bearerToken(r)
			if token == "" {
				if c, err := r.Cookie(cfg.CookieName); err == nil {
					token = c.Value
				}
			}

			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := svc.Authenticate(ctx, token)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			if identity == nil {
				// Stale or revoked token, fall back to guest.
				next.ServeHTTP(w, r)
				return
			}

			ctx = withToken(WithIdentity(ctx, identity), token)
			if logg != nil {
				ctx = logg.WithUserID(ctx, identity.User.ID)
				ctx = logg.WithActorRole(ctx, string(identity.Role))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
