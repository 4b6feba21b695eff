package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AhmedSalahALghzaly/lats-go/api/responses"
	"github.com/AhmedSalahALghzaly/lats-go/api/validators"
	"github.com/AhmedSalahALghzaly/lats-go/internal/catalog"
	"github.com/AhmedSalahALghzaly/lats-go/internal/products"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/pagination"
)

func ListCarBrands(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brands, err := svc.ListCarBrands(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brands)
	}
}

type carBrandRequest struct {
	Name  string `json:"name" validate:"required"`
	Logo  string `json:"logo" validate:"omitempty"`
	Order int    `json:"order" validate:"omitempty,min=0"`
}

func CreateCarBrand(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload carBrandRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		brand, err := svc.CreateCarBrand(r.Context(), catalog.CarBrandInput{
			Name:  payload.Name,
			Logo:  payload.Logo,
			Order: payload.Order,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, brand)
	}
}

type carBrandUpdateRequest struct {
	Name  *string `json:"name,omitempty"`
	Logo  *string `json:"logo,omitempty"`
	Order *int    `json:"order,omitempty" validate:"omitempty,min=0"`
}

func (p carBrandUpdateRequest) toFields() map[string]any {
	fields := map[string]any{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Logo != nil {
		fields["logo"] = *p.Logo
	}
	if p.Order != nil {
		fields["sort_order"] = *p.Order
	}
	return fields
}

func UpdateCarBrand(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload carBrandUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UpdateCarBrand(r.Context(), chi.URLParam(r, "id"), payload.toFields()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

func DeleteCarBrand(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteCarBrand(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ListCarModels(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListCarModels(r.Context(), r.URL.Query().Get("car_brand_id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// GetCarModel is the storefront model page: the model, its brand and the
// compatible products.
func GetCarModel(svc *catalog.Service, productSvc ProductService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		detail, err := svc.CarModelByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page := pagination.FromRequest(r)
		compatible, err := productSvc.List(r.Context(), products.Filter{
			CarModelID: id,
			Limit:      page.Limit,
			Offset:     page.Offset,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"model":    detail,
			"products": compatible,
		})
	}
}

type carModelRequest struct {
	CarBrandID string `json:"car_brand_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	YearFrom   int    `json:"year_from" validate:"omitempty,min=1950"`
	YearTo     int    `json:"year_to" validate:"omitempty,min=1950"`
	Image      string `json:"image" validate:"omitempty"`
}

func CreateCarModel(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload carModelRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := svc.CreateCarModel(r.Context(), catalog.CarModelInput{
			CarBrandID: payload.CarBrandID,
			Name:       payload.Name,
			YearFrom:   payload.YearFrom,
			YearTo:     payload.YearTo,
			Image:      payload.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, model)
	}
}

type carModelUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	YearFrom *int    `json:"year_from,omitempty" validate:"omitempty,min=1950"`
	YearTo   *int    `json:"year_to,omitempty" validate:"omitempty,min=1950"`
	Image    *string `json:"image,omitempty"`
}

func (p carModelUpdateRequest) toFields() map[string]any {
	fields := map[string]any{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.YearFrom != nil {
		fields["year_from"] = *p.YearFrom
	}
	if p.YearTo != nil {
		fields["year_to"] = *p.YearTo
	}
	if p.Image != nil {
		fields["image"] = *p.Image
	}
	return fields
}

func UpdateCarModel(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload carModelUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UpdateCarModel(r.Context(), chi.URLParam(r, "id"), payload.toFields()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

func DeleteCarModel(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteCarModel(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ListProductBrands(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brands, err := svc.ListProductBrands(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brands)
	}
}

type productBrandRequest struct {
	Name    string `json:"name" validate:"required"`
	Logo    string `json:"logo" validate:"omitempty"`
	Country string `json:"country" validate:"omitempty"`
}

func CreateProductBrand(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productBrandRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		brand, err := svc.CreateProductBrand(r.Context(), catalog.ProductBrandInput{
			Name:    payload.Name,
			Logo:    payload.Logo,
			Country: payload.Country,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, brand)
	}
}

type productBrandUpdateRequest struct {
	Name    *string `json:"name,omitempty"`
	Logo    *string `json:"logo,omitempty"`
	Country *string `json:"country,omitempty"`
}

func (p productBrandUpdateRequest) toFields() map[string]any {
	fields := map[string]any{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Logo != nil {
		fields["logo"] = *p.Logo
	}
	if p.Country != nil {
		fields["country"] = *p.Country
	}
	return fields
}

func UpdateProductBrand(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productBrandUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UpdateProductBrand(r.Context(), chi.URLParam(r, "id"), payload.toFields()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

func DeleteProductBrand(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteProductBrand(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ListCategories(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

func CategoryTree(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tree, err := svc.CategoryTree(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tree)
	}
}

type categoryRequest struct {
	Name     string `json:"name" validate:"required"`
	ParentID string `json:"parent_id" validate:"omitempty"`
	Image    string `json:"image" validate:"omitempty"`
	Order    int    `json:"order" validate:"omitempty,min=0"`
}

func CreateCategory(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload categoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.CreateCategory(r.Context(), catalog.CategoryInput{
			Name:     payload.Name,
			ParentID: payload.ParentID,
			Image:    payload.Image,
			Order:    payload.Order,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

type categoryUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
	Image    *string `json:"image,omitempty"`
	Order    *int    `json:"order,omitempty" validate:"omitempty,min=0"`
}

func (p categoryUpdateRequest) toFields() map[string]any {
	fields := map[string]any{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.ParentID != nil {
		fields["parent_id"] = *p.ParentID
	}
	if p.Image != nil {
		fields["image"] = *p.Image
	}
	if p.Order != nil {
		fields["sort_order"] = *p.Order
	}
	return fields
}

func UpdateCategory(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload categoryUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UpdateCategory(r.Context(), chi.URLParam(r, "id"), payload.toFields()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

func DeleteCategory(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type directoryRequest struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description" validate:"omitempty"`
	Image        string   `json:"image" validate:"omitempty"`
	Location     string   `json:"location" validate:"omitempty"`
	PhoneNumbers []string `json:"phone_numbers" validate:"omitempty,dive,required"`
}

func (p directoryRequest) toInput() catalog.DirectoryInput {
	return catalog.DirectoryInput{
		Name:         p.Name,
		Description:  p.Description,
		Image:        p.Image,
		Location:     p.Location,
		PhoneNumbers: p.PhoneNumbers,
	}
}

type directoryUpdateRequest struct {
	Name         *string   `json:"name,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Image        *string   `json:"image,omitempty"`
	Location     *string   `json:"location,omitempty"`
	PhoneNumbers *[]string `json:"phone_numbers,omitempty"`
}

func (p directoryUpdateRequest) toFields() map[string]any {
	fields := map[string]any{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Image != nil {
		fields["image"] = *p.Image
	}
	if p.Location != nil {
		fields["location"] = *p.Location
	}
	if p.PhoneNumbers != nil {
		fields["phone_numbers"] = dbtypesArray(*p.PhoneNumbers)
	}
	return fields
}

func ListSuppliers(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suppliers, err := svc.ListSuppliers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, suppliers)
	}
}

func GetSupplier(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplier, err := svc.SupplierByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, supplier)
	}
}

func CreateSupplier(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload directoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		supplier, err := svc.CreateSupplier(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, supplier)
	}
}

func UpdateSupplier(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload directoryUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UpdateSupplier(r.Context(), chi.URLParam(r, "id"), payload.toFields()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

func DeleteSupplier(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteSupplier(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ListDistributors(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		distributors, err := svc.ListDistributors(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, distributors)
	}
}

func GetDistributor(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		distributor, err := svc.DistributorByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, distributor)
	}
}

func CreateDistributor(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload directoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		distributor, err := svc.CreateDistributor(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, distributor)
	}
}

func UpdateDistributor(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload directoryUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UpdateDistributor(r.Context(), chi.URLParam(r, "id"), payload.toFields()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

func DeleteDistributor(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteDistributor(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
