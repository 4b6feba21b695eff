package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/AhmedSalahALghzaly/lats-go/api/responses"
	"github.com/AhmedSalahALghzaly/lats-go/api/validators"
	"github.com/AhmedSalahALghzaly/lats-go/internal/marketing"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
)

type promotionRequest struct {
	Type       string `json:"type" validate:"required,oneof=slider banner"`
	Title      string `json:"title" validate:"omitempty"`
	Image      string `json:"image" validate:"omitempty"`
	ProductID  string `json:"product_id" validate:"omitempty"`
	CarModelID string `json:"car_model_id" validate:"omitempty"`
	Order      int    `json:"order" validate:"omitempty,min=0"`
}

func CreatePromotion(svc *marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload promotionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		typ, err := enums.ParsePromotionType(payload.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid promotion type"))
			return
		}
		promo, err := svc.CreatePromotion(r.Context(), marketing.PromotionInput{
			Type:       typ,
			Title:      payload.Title,
			Image:      payload.Image,
			ProductID:  payload.ProductID,
			CarModelID: payload.CarModelID,
			Order:      payload.Order,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, promo)
	}
}

// ListPromotions filters by type and, for shopper surfaces, active rows
// only via ?active=true.
func ListPromotions(svc *marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var typ enums.PromotionType
		if raw := r.URL.Query().Get("type"); raw != "" {
			parsed, err := enums.ParsePromotionType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid promotion type"))
				return
			}
			typ = parsed
		}
		activeOnly := r.URL.Query().Get("active") == "true"
		items, err := svc.ListPromotions(r.Context(), typ, activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func GetPromotion(svc *marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		promo, err := svc.GetPromotion(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, promo)
	}
}

type promotionUpdateRequest struct {
	Title      *string `json:"title,omitempty"`
	Image      *string `json:"image,omitempty"`
	ProductID  *string `json:"product_id,omitempty"`
	CarModelID *string `json:"car_model_id,omitempty"`
	Active     *bool   `json:"active,omitempty"`
	Order      *int    `json:"order,omitempty" validate:"omitempty,min=0"`
}

func (p promotionUpdateRequest) toFields() map[string]any {
	fields := map[string]any{}
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Image != nil {
		fields["image"] = *p.Image
	}
	if p.ProductID != nil {
		fields["product_id"] = *p.ProductID
	}
	if p.CarModelID != nil {
		fields["car_model_id"] = *p.CarModelID
	}
	if p.Active != nil {
		fields["active"] = *p.Active
	}
	if p.Order != nil {
		fields["sort_order"] = *p.Order
	}
	return fields
}

func UpdatePromotion(svc *marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload promotionUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UpdatePromotion(r.Context(), chi.URLParam(r, "id"), payload.toFields()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

type reorderRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

func ReorderPromotions(svc *marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload reorderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.ReorderPromotions(r.Context(), payload.IDs); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "reordered"})
	}
}

func DeletePromotion(svc *marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeletePromotion(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type bundleRequest struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"omitempty"`
	Image           string   `json:"image" validate:"omitempty"`
	ProductIDs      []string `json:"product_ids" validate:"required,min=2,dive,required"`
	DiscountPercent string   `json:"discount_percent" validate:"required"`
}

func CreateBundle(svc *marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bundleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		discount, err := decimal.NewFromString(payload.DiscountPercent)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount percent"))
			return
		}
		bundle, err := svc.CreateBundle(r.Context(), marketing.BundleInput{
			Title:           payload.Title,
			Description:     payload.Description,
			Image:           payload.Image,
			ProductIDs:      payload.ProductIDs,
			DiscountPercent: discount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, bundle)
	}
}

func ListBundles(svc *marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := r.URL.Query().Get("active") == "true"
		items, err := svc.ListBundles(r.Context(), activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func GetBundle(svc *marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundle, err := svc.GetBundle(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bundle)
	}
}

type bundleUpdateRequest struct {
	Title           *string   `json:"title,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Image           *string   `json:"image,omitempty"`
	ProductIDs      *[]string `json:"product_ids,omitempty" validate:"omitempty,min=2,dive,required"`
	DiscountPercent *string   `json:"discount_percent,omitempty"`
	Active          *bool     `json:"active,omitempty"`
}

func (p bundleUpdateRequest) toFields() (map[string]any, error) {
	fields := map[string]any{}
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Image != nil {
		fields["image"] = *p.Image
	}
	if p.ProductIDs != nil {
		fields["product_ids"] = dbtypesArray(*p.ProductIDs)
	}
	if p.DiscountPercent != nil {
		discount, err := decimal.NewFromString(*p.DiscountPercent)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount percent")
		}
		fields["discount_percent"] = discount
	}
	if p.Active != nil {
		fields["active"] = *p.Active
	}
	return fields, nil
}

func UpdateBundle(svc *marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bundleUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		fields, err := payload.toFields()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UpdateBundle(r.Context(), chi.URLParam(r, "id"), fields); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

func DeleteBundle(svc *marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteBundle(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// HomeSlider aggregates active sliders, banners and bundles for the
// storefront landing page.
func HomeSlider(svc *marketing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slider, err := svc.HomeSlider(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, slider)
	}
}
