package controllers

import (
	"context"
	"net/http"

	"github.com/AhmedSalahALghzaly/lats-go/api/middleware"
	"github.com/AhmedSalahALghzaly/lats-go/api/responses"
	"github.com/AhmedSalahALghzaly/lats-go/api/validators"
	"github.com/AhmedSalahALghzaly/lats-go/internal/auth"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/config"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

// SessionService is the slice of the auth service the session endpoints use.
type SessionService interface {
	Login(ctx context.Context, sessionID string) (*auth.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

type loginRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// Login exchanges a broker session id for a first-party session. The token
// is returned in the body for mobile clients and set as a cookie for the
// web storefront.
func Login(svc SessionService, cfg config.AuthConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload.SessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    result.Token,
			Path:     "/",
			Expires:  result.ExpiresAt,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		})

		responses.WriteSuccess(w, map[string]any{
			"user":       result.User,
			"role":       result.Role,
			"token":      result.Token,
			"expires_at": result.ExpiresAt,
		})
	}
}

// Me returns the current actor. Guests get a null user with the guest role
// so clients can render without a separate "am I logged in" probe.
func Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			responses.WriteSuccess(w, map[string]any{
				"user": nil,
				"role": enums.RoleGuest,
			})
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"user": identity.User,
			"role": identity.Role,
		})
	}
}

// Logout invalidates the current session and expires the cookie.
func Logout(svc SessionService, cfg config.AuthConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.TokenFromContext(r.Context())
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "no active session"))
			return
		}

		if err := svc.Logout(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		})

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
