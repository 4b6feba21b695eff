package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AhmedSalahALghzaly/lats-go/api/middleware"
	"github.com/AhmedSalahALghzaly/lats-go/api/responses"
	"github.com/AhmedSalahALghzaly/lats-go/api/validators"
	"github.com/AhmedSalahALghzaly/lats-go/internal/comments"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

func ListProductComments(svc *comments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListForProduct(r.Context(), chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

type commentRequest struct {
	Text   string `json:"text" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

func CreateComment(svc *comments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload commentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		identity := middleware.IdentityFromContext(r.Context())
		comment, err := svc.Create(r.Context(), identity.User.ID, identity.User.Name, comments.Input{
			ProductID: chi.URLParam(r, "productID"),
			Text:      payload.Text,
			Rating:    payload.Rating,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, comment)
	}
}

// DeleteComment lets the author or staff remove a comment.
func DeleteComment(svc *comments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		err := svc.Delete(ctx, chi.URLParam(r, "id"), middleware.UserIDFromContext(ctx), middleware.RoleFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
