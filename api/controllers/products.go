package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/AhmedSalahALghzaly/lats-go/api/middleware"
	"github.com/AhmedSalahALghzaly/lats-go/api/responses"
	"github.com/AhmedSalahALghzaly/lats-go/api/validators"
	"github.com/AhmedSalahALghzaly/lats-go/internal/products"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
	pkgerrors "github.com/AhmedSalahALghzaly/lats-go/pkg/errors"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/pagination"
)

// ProductService is the slice of the product service the handlers use.
type ProductService interface {
	List(ctx context.Context, filter products.Filter) (*products.ListResult, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, input products.Input, adminID string) (*models.Product, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error
	SetHidden(ctx context.Context, id string, hidden bool) error
	Delete(ctx context.Context, id string) error
}

// AdminResolver maps a staff email to an admin row id, empty when the
// actor is an owner or partner.
type AdminResolver interface {
	AdminIDByEmail(ctx context.Context, email string) (string, error)
}

func productFilter(r *http.Request, includeHidden bool) products.Filter {
	page := pagination.FromRequest(r)
	query := r.URL.Query()
	filter := products.Filter{
		CategoryID:     query.Get("category_id"),
		ProductBrandID: query.Get("product_brand_id"),
		CarModelID:     query.Get("car_model_id"),
		CarBrandID:     query.Get("car_brand_id"),
		Search:         query.Get("search"),
		IncludeHidden:  includeHidden,
		Limit:          page.Limit,
		Offset:         page.Offset,
	}
	if raw := query.Get("min_price"); raw != "" {
		if price, err := decimal.NewFromString(raw); err == nil {
			filter.MinPrice = &price
		}
	}
	if raw := query.Get("max_price"); raw != "" {
		if price, err := decimal.NewFromString(raw); err == nil {
			filter.MaxPrice = &price
		}
	}
	return filter
}

// ListProducts is the shopper listing, hidden rows excluded.
func ListProducts(svc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.List(r.Context(), productFilter(r, false))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ListAllProducts is the staff listing including hidden rows.
func ListAllProducts(svc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.List(r.Context(), productFilter(r, true))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// SearchProducts is the storefront search box, q across name,
// description and part number.
func SearchProducts(svc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := productFilter(r, false)
		filter.Search = r.URL.Query().Get("q")
		result, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ListCollections returns settled products with their admin attribution,
// the owner's payout history view.
func ListCollections(svc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pagination.FromRequest(r)
		result, err := svc.List(r.Context(), products.Filter{
			SettledOnly:   true,
			IncludeHidden: true,
			Limit:         page.Limit,
			Offset:        page.Offset,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ListAdminProducts returns the products a given admin added.
func ListAdminProducts(svc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pagination.FromRequest(r)
		result, err := svc.List(r.Context(), products.Filter{
			AddedByAdminID: chi.URLParam(r, "id"),
			IncludeHidden:  true,
			Limit:          page.Limit,
			Offset:         page.Offset,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func GetProduct(svc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type productRequest struct {
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description" validate:"omitempty"`
	Price          string   `json:"price" validate:"required"`
	Stock          int      `json:"stock" validate:"omitempty,min=0"`
	PartNumber     string   `json:"part_number" validate:"omitempty"`
	CategoryID     string   `json:"category_id" validate:"omitempty"`
	ProductBrandID string   `json:"product_brand_id" validate:"omitempty"`
	CarModelIDs    []string `json:"car_model_ids" validate:"omitempty,dive,required"`
	Images         []string `json:"images" validate:"omitempty,dive,required"`
	Hidden         bool     `json:"hidden"`
}

func (p productRequest) toInput() (products.Input, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return products.Input{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}
	return products.Input{
		Name:           p.Name,
		Description:    p.Description,
		Price:          price,
		Stock:          p.Stock,
		PartNumber:     p.PartNumber,
		CategoryID:     p.CategoryID,
		ProductBrandID: p.ProductBrandID,
		CarModelIDs:    p.CarModelIDs,
		Images:         p.Images,
		Hidden:         p.Hidden,
	}, nil
}

// CreateProduct stores a new product. When the actor is an admin the row
// is stamped with their admin id so checkout can attribute revenue.
func CreateProduct(svc ProductService, admins AdminResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		adminID := ""
		identity := middleware.IdentityFromContext(r.Context())
		if identity != nil && identity.Role == enums.RoleAdmin && admins != nil {
			adminID, err = admins.AdminIDByEmail(r.Context(), identity.User.Email)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		product, err := svc.Create(r.Context(), input, adminID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type productUpdateRequest struct {
	Name           *string   `json:"name,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Price          *string   `json:"price,omitempty"`
	Stock          *int      `json:"stock,omitempty" validate:"omitempty,min=0"`
	PartNumber     *string   `json:"part_number,omitempty"`
	CategoryID     *string   `json:"category_id,omitempty"`
	ProductBrandID *string   `json:"product_brand_id,omitempty"`
	CarModelIDs    *[]string `json:"car_model_ids,omitempty"`
	Images         *[]string `json:"images,omitempty"`
	Hidden         *bool     `json:"hidden,omitempty"`
}

func (p productUpdateRequest) toFields() (map[string]any, error) {
	fields := map[string]any{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Price != nil {
		price, err := decimal.NewFromString(*p.Price)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
		}
		fields["price"] = price
	}
	if p.Stock != nil {
		fields["stock"] = *p.Stock
	}
	if p.PartNumber != nil {
		fields["part_number"] = *p.PartNumber
	}
	if p.CategoryID != nil {
		fields["category_id"] = *p.CategoryID
	}
	if p.ProductBrandID != nil {
		fields["product_brand_id"] = *p.ProductBrandID
	}
	if p.CarModelIDs != nil {
		fields["car_model_ids"] = dbtypesArray(*p.CarModelIDs)
	}
	if p.Images != nil {
		fields["images"] = dbtypesArray(*p.Images)
	}
	if p.Hidden != nil {
		fields["hidden"] = *p.Hidden
	}
	return fields, nil
}

func UpdateProduct(svc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		fields, err := payload.toFields()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Update(r.Context(), chi.URLParam(r, "id"), fields); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

type priceRequest struct {
	Price string `json:"price" validate:"required"`
}

func UpdateProductPrice(svc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload priceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		price, err := decimal.NewFromString(payload.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
			return
		}
		if err := svc.UpdatePrice(r.Context(), chi.URLParam(r, "id"), price); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

type hiddenRequest struct {
	Hidden *bool `json:"hidden" validate:"required"`
}

func SetProductHidden(svc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload hiddenRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.SetHidden(r.Context(), chi.URLParam(r, "id"), *payload.Hidden); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

func DeleteProduct(svc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
