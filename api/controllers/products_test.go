package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sereneleaf/storefront-backend/internal/analytics"
)

func productsRouter(t *testing.T, tracker *fakeAnalytics) chi.Router {
	t.Helper()
	catalogSvc := testCatalog(t)
	r := chi.NewRouter()
	r.Get("/products", ProductList(catalogSvc, tracker, testLogger))
	r.Get("/products/featured", ProductFeatured(catalogSvc, tracker, testLogger))
	r.Get("/products/{slug}", ProductDetail(catalogSvc, tracker, testLogger))
	r.Post("/products/{slug}/click", ProductClick(catalogSvc, tracker, testLogger))
	return r
}

func TestProductListEmitsListView(t *testing.T) {
	tracker := &fakeAnalytics{}
	router := productsRouter(t, tracker)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodGet, "/products", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data struct {
			Products []json.RawMessage `json:"products"`
			Count    int               `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Data.Count != 8 || len(body.Data.Products) != 8 {
		t.Fatalf("expected full catalog of 8, got count=%d len=%d", body.Data.Count, len(body.Data.Products))
	}

	if len(tracker.events) != 1 || tracker.events[0].Name != analytics.EventProductListViewed {
		t.Fatalf("expected a single list view event, got %v", tracker.eventNames())
	}
	payload, ok := tracker.events[0].Payload.(analytics.ProductListPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", tracker.events[0].Payload)
	}
	if payload.ListID != "catalog" {
		t.Fatalf("expected list id catalog, got %q", payload.ListID)
	}
	if len(payload.Products) != 8 || payload.Products[0].Position != 1 {
		t.Fatalf("expected positioned products, got %+v", payload.Products)
	}
}

func TestProductListCategoryFilter(t *testing.T) {
	tracker := &fakeAnalytics{}
	router := productsRouter(t, tracker)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodGet, "/products?category=green", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	payload, ok := tracker.events[0].Payload.(analytics.ProductListPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", tracker.events[0].Payload)
	}
	if payload.ListID != "catalog:green" || payload.Category != "green" {
		t.Fatalf("unexpected list payload %+v", payload)
	}
	if len(payload.Products) != 2 {
		t.Fatalf("expected 2 green teas, got %d", len(payload.Products))
	}
}

func TestProductListUnknownCategory(t *testing.T) {
	tracker := &fakeAnalytics{}
	router := productsRouter(t, tracker)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodGet, "/products?category=coffee", ""))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(tracker.events) != 0 {
		t.Fatalf("expected no events on rejected filter, got %v", tracker.eventNames())
	}
}

func TestProductListSearchUsesDebouncedTracker(t *testing.T) {
	tracker := &fakeAnalytics{}
	router := productsRouter(t, tracker)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodGet, "/products?q=sencha", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(tracker.events) != 0 {
		t.Fatalf("searches must not emit a direct track, got %v", tracker.eventNames())
	}
	if len(tracker.searches) != 1 {
		t.Fatalf("expected 1 search, got %d", len(tracker.searches))
	}
	if tracker.searches[0].Query != "sencha" || tracker.searches[0].ResultCount != 1 {
		t.Fatalf("unexpected search payload %+v", tracker.searches[0])
	}
}

func TestProductDetail(t *testing.T) {
	tracker := &fakeAnalytics{}
	router := productsRouter(t, tracker)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodGet, "/products/golden-assam", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data struct {
			ProductID string `json:"product_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Data.ProductID != "tea-assam-003" {
		t.Fatalf("unexpected product %q", body.Data.ProductID)
	}
	if !tracker.has(analytics.EventProductViewed) {
		t.Fatalf("expected product view event, got %v", tracker.eventNames())
	}
}

func TestProductFeatured(t *testing.T) {
	tracker := &fakeAnalytics{}
	router := productsRouter(t, tracker)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodGet, "/products/featured", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data struct {
			Products []struct {
				InStock bool    `json:"in_stock"`
				Rating  float64 `json:"rating"`
			} `json:"products"`
			Count int `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Data.Count == 0 || body.Data.Count > 4 {
		t.Fatalf("expected up to 4 featured teas, got %d", body.Data.Count)
	}
	for _, p := range body.Data.Products {
		if !p.InStock {
			t.Fatalf("featured selection must be in stock")
		}
	}

	if len(tracker.events) != 1 || tracker.events[0].Name != analytics.EventProductListViewed {
		t.Fatalf("expected a single list view event, got %v", tracker.eventNames())
	}
	payload, ok := tracker.events[0].Payload.(analytics.ProductListPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", tracker.events[0].Payload)
	}
	if payload.ListID != "featured" || payload.Category != "featured" {
		t.Fatalf("unexpected list payload %+v", payload)
	}
}

func TestProductClick(t *testing.T) {
	tracker := &fakeAnalytics{}
	router := productsRouter(t, tracker)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodPost, "/products/golden-assam/click", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(tracker.events) != 1 || tracker.events[0].Name != analytics.EventProductClicked {
		t.Fatalf("expected a click event, got %v", tracker.eventNames())
	}
	payload, ok := tracker.events[0].Payload.(analytics.ProductPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", tracker.events[0].Payload)
	}
	if payload.ProductID != "tea-assam-003" {
		t.Fatalf("unexpected product %q", payload.ProductID)
	}
}

func TestProductClickUnknownSlug(t *testing.T) {
	tracker := &fakeAnalytics{}
	router := productsRouter(t, tracker)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodPost, "/products/no-such-tea/click", ""))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if len(tracker.events) != 0 {
		t.Fatalf("unknown product must not emit, got %v", tracker.eventNames())
	}
}

func TestProductDetailNotFound(t *testing.T) {
	tracker := &fakeAnalytics{}
	router := productsRouter(t, tracker)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, sessionRequest(http.MethodGet, "/products/no-such-tea", ""))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if len(tracker.events) != 0 {
		t.Fatalf("expected no events for a miss, got %v", tracker.eventNames())
	}
}
