package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/AhmedSalahALghzaly/lats-go/internal/products"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/db/models"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
)

type testProductService struct {
	listFn        func(ctx context.Context, filter products.Filter) (*products.ListResult, error)
	getFn         func(ctx context.Context, id string) (*models.Product, error)
	createFn      func(ctx context.Context, input products.Input, adminID string) (*models.Product, error)
	updateFn      func(ctx context.Context, id string, fields map[string]any) error
	updatePriceFn func(ctx context.Context, id string, price decimal.Decimal) error
	setHiddenFn   func(ctx context.Context, id string, hidden bool) error
	deleteFn      func(ctx context.Context, id string) error
}

func (s *testProductService) List(ctx context.Context, filter products.Filter) (*products.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter)
	}
	return &products.ListResult{Items: []models.Product{}}, nil
}

func (s *testProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return &models.Product{ID: id}, nil
}

func (s *testProductService) Create(ctx context.Context, input products.Input, adminID string) (*models.Product, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input, adminID)
	}
	return &models.Product{ID: "prod_new"}, nil
}

func (s *testProductService) Update(ctx context.Context, id string, fields map[string]any) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, fields)
	}
	return nil
}

func (s *testProductService) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	if s.updatePriceFn != nil {
		return s.updatePriceFn(ctx, id, price)
	}
	return nil
}

func (s *testProductService) SetHidden(ctx context.Context, id string, hidden bool) error {
	if s.setHiddenFn != nil {
		return s.setHiddenFn(ctx, id, hidden)
	}
	return nil
}

func (s *testProductService) Delete(ctx context.Context, id string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

type testAdminResolver struct {
	adminIDFn func(ctx context.Context, email string) (string, error)
}

func (r *testAdminResolver) AdminIDByEmail(ctx context.Context, email string) (string, error) {
	if r.adminIDFn != nil {
		return r.adminIDFn(ctx, email)
	}
	return "", nil
}

func TestListProductsExcludesHiddenAndReadsFilters(t *testing.T) {
	var captured products.Filter
	svc := &testProductService{
		listFn: func(ctx context.Context, filter products.Filter) (*products.ListResult, error) {
			captured = filter
			return &products.ListResult{Items: []models.Product{{ID: "prod_1"}}, Total: 1}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products?category_id=cat_engine&car_model_id=cm_camry&search=filter&limit=10&offset=20", nil)
	resp := httptest.NewRecorder()
	ListProducts(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if captured.IncludeHidden {
		t.Fatal("shopper listing must exclude hidden products")
	}
	if captured.CategoryID != "cat_engine" || captured.CarModelID != "cm_camry" || captured.Search != "filter" {
		t.Fatalf("unexpected filter %+v", captured)
	}
	if captured.Limit != 10 || captured.Offset != 20 {
		t.Fatalf("unexpected paging %+v", captured)
	}
}

func TestListAllProductsIncludesHidden(t *testing.T) {
	var captured products.Filter
	svc := &testProductService{
		listFn: func(ctx context.Context, filter products.Filter) (*products.ListResult, error) {
			captured = filter
			return &products.ListResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products/all", nil)
	resp := httptest.NewRecorder()
	ListAllProducts(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !captured.IncludeHidden {
		t.Fatal("staff listing must include hidden products")
	}
}

func TestCreateProductStampsAdminForAdminActor(t *testing.T) {
	svc := &testProductService{
		createFn: func(ctx context.Context, input products.Input, adminID string) (*models.Product, error) {
			if adminID != "adm_7" {
				t.Fatalf("unexpected admin id %q", adminID)
			}
			if input.Name != "Oil Filter" || !input.Price.Equal(decimal.RequireFromString("45.99")) {
				t.Fatalf("unexpected input %+v", input)
			}
			return &models.Product{ID: "prod_new", Name: input.Name, AddedByAdminID: adminID}, nil
		},
	}
	admins := &testAdminResolver{
		adminIDFn: func(ctx context.Context, email string) (string, error) {
			return "adm_7", nil
		},
	}

	body := `{"name":"Oil Filter","price":"45.99","stock":10}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req = withTestIdentity(req, "usr_admin", enums.RoleAdmin)

	resp := httptest.NewRecorder()
	CreateProduct(svc, admins, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateProductNoAdminStampForOwner(t *testing.T) {
	svc := &testProductService{
		createFn: func(ctx context.Context, input products.Input, adminID string) (*models.Product, error) {
			if adminID != "" {
				t.Fatalf("owner-created product must not carry admin id, got %q", adminID)
			}
			return &models.Product{ID: "prod_new"}, nil
		},
	}
	admins := &testAdminResolver{
		adminIDFn: func(ctx context.Context, email string) (string, error) {
			t.Fatal("resolver must not be consulted for owners")
			return "", nil
		},
	}

	body := `{"name":"Brake Pads","price":"89.50"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req = withTestIdentity(req, "usr_owner", enums.RoleOwner)

	resp := httptest.NewRecorder()
	CreateProduct(svc, admins, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateProductRejectsBadPrice(t *testing.T) {
	svc := &testProductService{
		createFn: func(ctx context.Context, input products.Input, adminID string) (*models.Product, error) {
			t.Fatal("service must not be called for invalid payloads")
			return nil, nil
		},
	}

	body := `{"name":"Brake Pads","price":"not-a-number"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req = withTestIdentity(req, "usr_owner", enums.RoleOwner)

	resp := httptest.NewRecorder()
	CreateProduct(svc, &testAdminResolver{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestUpdateProductPriceParsesDecimal(t *testing.T) {
	var gotID string
	var gotPrice decimal.Decimal
	svc := &testProductService{
		updatePriceFn: func(ctx context.Context, id string, price decimal.Decimal) error {
			gotID = id
			gotPrice = price
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/products/prod_1/price", strings.NewReader(`{"price":"129.90"}`))
	req = withTestIdentity(req, "usr_owner", enums.RoleOwner)
	req = withURLParam(req, "id", "prod_1")

	resp := httptest.NewRecorder()
	UpdateProductPrice(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotID != "prod_1" || !gotPrice.Equal(decimal.RequireFromString("129.90")) {
		t.Fatalf("unexpected call %s %s", gotID, gotPrice)
	}
}

func TestSetProductHiddenRequiresFlag(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/api/products/prod_1/hidden", strings.NewReader(`{}`))
	req = withURLParam(req, "id", "prod_1")

	resp := httptest.NewRecorder()
	SetProductHidden(&testProductService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestGetProductReturnsEnvelope(t *testing.T) {
	svc := &testProductService{
		getFn: func(ctx context.Context, id string) (*models.Product, error) {
			return &models.Product{ID: id, Name: "Clutch Kit"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products/prod_9", nil)
	req = withURLParam(req, "id", "prod_9")

	resp := httptest.NewRecorder()
	GetProduct(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data models.Product `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.ID != "prod_9" || envelope.Data.Name != "Clutch Kit" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}
