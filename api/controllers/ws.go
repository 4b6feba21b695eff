package controllers

import (
	"context"
	"net/http"

	"github.com/AhmedSalahALghzaly/lats-go/internal/auth"
	"github.com/AhmedSalahALghzaly/lats-go/internal/realtime"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

// sessionAuthenticator adapts the auth service to the websocket auth
// frame. Invalid tokens yield an empty id so the socket stays anonymous.
type sessionAuthenticator struct {
	svc *auth.Service
}

func (a sessionAuthenticator) UserIDForToken(ctx context.Context, token string) (string, error) {
	identity, err := a.svc.Authenticate(ctx, token)
	if err != nil {
		return "", err
	}
	if identity == nil {
		return "", nil
	}
	return identity.User.ID, nil
}

// Websocket upgrades the connection and hands it to the hub.
func Websocket(hub *realtime.Hub, authSvc *auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := hub.Serve(w, r, sessionAuthenticator{svc: authSvc}); err != nil {
			if logg != nil {
				logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "ws.upgrade_failed")
			}
		}
	}
}
