package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/AhmedSalahALghzaly/lats-go/api/responses"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/config"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error)
}

// AuthRateLimit caps session-exchange attempts per client IP inside a fixed
// window. When the limiter store is unreachable the request passes, login
// availability wins over strict limiting.
func AuthRateLimit(store rateLimiterStore, cfg config.RateLimitConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if store == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := "auth:session:ip:" + clientIP(r)
			allowed, err := store.FixedWindowAllow(ctx, key, int64(cfg.SessionIPLimit), cfg.SessionWindow)
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "error", err.Error()), "rate_limit.store_unavailable")
				}
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts, try again later"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
