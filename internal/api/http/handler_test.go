package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/hemantkumar00/product-category-service/internal/cache"
	cachemem "github.com/hemantkumar00/product-category-service/internal/cache/memory"
	"github.com/hemantkumar00/product-category-service/internal/domain"
	lockmem "github.com/hemantkumar00/product-category-service/internal/lock/memory"
	"github.com/hemantkumar00/product-category-service/internal/service/category"
	"github.com/hemantkumar00/product-category-service/internal/service/inventory"
	"github.com/hemantkumar00/product-category-service/internal/service/product"
	"github.com/hemantkumar00/product-category-service/internal/service/search"
	"github.com/hemantkumar00/product-category-service/internal/storage/memory"
)

type testEnv struct {
	router     http.Handler
	categoryID string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	base := log.New()
	base.SetLevel(log.WarnLevel)
	logger := base.WithField("component", "http-test")

	products := memory.NewProductRepository()
	categories := memory.NewCategoryRepository()
	productCache := cache.NewProductCache(cachemem.NewCache())
	searchCache := cache.NewSearchResultCache(cachemem.NewCache())

	categorySvc := category.NewService(categories, logger)
	created, err := categorySvc.Create(context.Background(), domain.Category{Title: "electronics"})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}

	productSvc := product.NewServiceWithoutMetrics(products, categories, productCache, logger)
	coordinator := inventory.NewCoordinatorWithoutMetrics(products, lockmem.NewLockService(), productCache, logger)
	searchSvc := search.NewServiceWithoutMetrics(products, searchCache, logger)

	handler := NewHandler(productSvc, categorySvc, coordinator, searchSvc, logger)
	return &testEnv{
		router:     NewRouter(handler, nil),
		categoryID: created.ID,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) createProduct(t *testing.T, title string, price float64, quantity int) domain.Product {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/products/", map[string]interface{}{
		"title":       title,
		"price":       price,
		"description": "desc of " + title,
		"img_url":     "https://img.example/p.png",
		"quantity":    quantity,
		"category_id": e.categoryID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create product: status %d, body %s", rec.Code, rec.Body.String())
	}

	var created domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created product: %v", err)
	}
	return created
}

func TestProductLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	created := env.createProduct(t, "kettle", 49.99, 5)
	if created.ID == "" {
		t.Fatal("expected generated product id")
	}

	rec := env.do(t, http.MethodGet, "/products/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}

	rec = env.do(t, http.MethodPatch, "/products/"+created.ID, map[string]interface{}{"title": "electric kettle"})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: status %d, body %s", rec.Code, rec.Body.String())
	}
	var updated domain.Product
	_ = json.Unmarshal(rec.Body.Bytes(), &updated)
	if updated.Title != "electric kettle" {
		t.Fatalf("unexpected title: %s", updated.Title)
	}
	if updated.Price != 49.99 {
		t.Fatalf("price should be unchanged, got %v", updated.Price)
	}

	rec = env.do(t, http.MethodDelete, "/products/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/products/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/products/", map[string]interface{}{"title": ""})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/products/", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", rec.Code)
	}
}

func TestInventoryAdjustOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	a := env.createProduct(t, "kettle", 49.99, 5)
	b := env.createProduct(t, "toaster", 30, 1)

	// Недостаточный остаток отклоняет весь батч.
	rec := env.do(t, http.MethodPatch, "/products/inventory", map[string]interface{}{
		"products": map[string]int{a.ID: 3, b.ID: 2},
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/products/inventory/"+a.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("inventory get: status %d", rec.Code)
	}
	var inv map[string]int
	_ = json.Unmarshal(rec.Body.Bytes(), &inv)
	if inv["quantity"] != 5 {
		t.Fatalf("expected untouched quantity 5, got %d", inv["quantity"])
	}

	// Валидный батч применяется целиком.
	rec = env.do(t, http.MethodPatch, "/products/inventory", map[string]interface{}{
		"products": map[string]int{a.ID: 3, b.ID: 1},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/products/inventory/"+b.ID, nil)
	_ = json.Unmarshal(rec.Body.Bytes(), &inv)
	if inv["quantity"] != 0 {
		t.Fatalf("expected quantity 0, got %d", inv["quantity"])
	}
}

func TestInventoryAdjustValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPatch, "/products/inventory", map[string]interface{}{"products": map[string]int{}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty batch, got %d", rec.Code)
	}

	a := env.createProduct(t, "kettle", 49.99, 5)
	rec = env.do(t, http.MethodPatch, "/products/inventory", map[string]interface{}{
		"products": map[string]int{a.ID: -1},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative quantity, got %d", rec.Code)
	}
}

func TestSearchOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	for i := 1; i <= 5; i++ {
		env.createProduct(t, fmt.Sprintf("phone %02d", i), float64(i*100), 1)
	}

	filters := url.QueryEscape(`[{"key":"pricelessly","values":["200","300"]}]`)
	path := "/search/?query=phone&filters=" + filters + "&sortBy=PRICE_HIGH_TO_LOW&pageSize=10&pageNumber=1"

	rec := env.do(t, http.MethodGet, path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search: status %d, body %s", rec.Code, rec.Body.String())
	}

	var page domain.ProductPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].Price != 300 {
		t.Fatalf("unexpected search result: %+v", page.Items)
	}
}

func TestSearchErrorStatuses(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, "phone", 100, 1)

	cases := []struct {
		name string
		path string
		want int
	}{
		{"unknown filter", "/search/?query=phone&filters=" + url.QueryEscape(`[{"key":"colour","values":["red"]}]`) + "&sortBy=PRICE_LOW_TO_HIGH&pageSize=10&pageNumber=1", http.StatusBadRequest},
		{"unknown sort", "/search/?query=phone&sortBy=ALPHABET&pageSize=10&pageNumber=1", http.StatusBadRequest},
		{"no products", "/search/?query=typewriter&sortBy=PRICE_LOW_TO_HIGH&pageSize=10&pageNumber=1", http.StatusNotFound},
		{"broken filters json", "/search/?query=phone&filters=%7Bbroken&sortBy=PRICE_LOW_TO_HIGH&pageSize=10&pageNumber=1", http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := env.do(t, http.MethodGet, tc.path, nil)
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d (%s)", tc.name, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestSimpleSearchOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	for i := 1; i <= 3; i++ {
		env.createProduct(t, fmt.Sprintf("phone %02d", i), float64(i*100), 1)
	}

	path := "/search/byCategory?query=phone&categoryId=" + env.categoryID + "&pageSize=2&pageNumber=1&sortingAttribute=price"
	rec := env.do(t, http.MethodGet, path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("simple search: status %d, body %s", rec.Code, rec.Body.String())
	}

	var page domain.ProductPage
	_ = json.Unmarshal(rec.Body.Bytes(), &page)
	if len(page.Items) != 2 || page.TotalElements != 3 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestCategoryEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/categories/", map[string]string{"title": "books"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d", rec.Code)
	}
	var created domain.Category
	_ = json.Unmarshal(rec.Body.Bytes(), &created)

	// Дубликат названия — конфликт.
	rec = env.do(t, http.MethodPost, "/categories/", map[string]string{"title": "books"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPatch, "/categories/"+created.ID, map[string]string{"title": "paper books"})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: status %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/categories/"+created.ID, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "paper books") {
		t.Fatalf("get: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodDelete, "/categories/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}
	rec = env.do(t, http.MethodDelete, "/categories/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListProductsDefaults(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 3; i++ {
		env.createProduct(t, fmt.Sprintf("item %d", i), 10, 1)
	}

	rec := env.do(t, http.MethodGet, "/products/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	var page domain.ProductPage
	_ = json.Unmarshal(rec.Body.Bytes(), &page)
	if page.TotalElements != 3 || page.PageNumber != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
}
