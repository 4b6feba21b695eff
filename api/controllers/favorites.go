package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AhmedSalahALghzaly/lats-go/api/middleware"
	"github.com/AhmedSalahALghzaly/lats-go/api/responses"
	"github.com/AhmedSalahALghzaly/lats-go/internal/favorites"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

// ToggleFavorite flips a product in and out of the actor's favorites.
func ToggleFavorite(svc *favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		favorited, err := svc.Toggle(r.Context(), userID, chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"favorited": favorited})
	}
}

// CheckFavorite reports the current state without flipping it.
func CheckFavorite(svc *favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		favorited, err := svc.IsFavorite(r.Context(), userID, chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"favorited": favorited})
	}
}

func ListFavorites(svc *favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// ListFavoriteIDs returns ids only, for cheap heart-icon hydration.
func ListFavoriteIDs(svc *favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := svc.IDs(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ids)
	}
}
