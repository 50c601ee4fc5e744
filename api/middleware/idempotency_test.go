package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type fakeIdempotencyStore struct {
	data map[string]string
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{data: map[string]string{}}
}

func (f *fakeIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	value, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, exists := f.data[key]; exists {
		return false, nil
	}
	if s, ok := value.(string); ok {
		f.data[key] = s
	}
	return true, nil
}

func (f *fakeIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "sl:idempotency:" + scope + ":" + id
}

func (f *fakeIdempotencyStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func placeOrderRouter(store *fakeIdempotencyStore, hits *int) http.Handler {
	r := chi.NewRouter()
	r.Use(Idempotency(store, nil))
	r.Post("/api/v1/checkout/place", func(w http.ResponseWriter, _ *http.Request) {
		*hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"order_id":"ord-1"}}`))
	})
	r.Post("/api/v1/cart/items", func(w http.ResponseWriter, _ *http.Request) {
		*hits++
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func placeOrderRequest(key, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/place", strings.NewReader(body))
	r = r.WithContext(WithSessionID(r.Context(), "sess-1"))
	if key != "" {
		r.Header.Set("Idempotency-Key", key)
	}
	return r
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	hits := 0
	router := placeOrderRouter(newFakeIdempotencyStore(), &hits)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, placeOrderRequest("key-1", "{}"))
	if first.Code != http.StatusOK || hits != 1 {
		t.Fatalf("first request should hit the handler: code=%d hits=%d", first.Code, hits)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, placeOrderRequest("key-1", "{}"))
	if hits != 1 {
		t.Fatalf("replay must not reach the handler, hits=%d", hits)
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("replay body differs: %q vs %q", second.Body.String(), first.Body.String())
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	hits := 0
	router := placeOrderRouter(newFakeIdempotencyStore(), &hits)

	router.ServeHTTP(httptest.NewRecorder(), placeOrderRequest("key-1", `{"a":1}`))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, placeOrderRequest("key-1", `{"a":2}`))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for reused key, got %d", w.Code)
	}
	if hits != 1 {
		t.Fatalf("conflicting replay must not reach the handler")
	}
}

func TestIdempotencyRequiresHeaderOnGuardedRoute(t *testing.T) {
	hits := 0
	router := placeOrderRouter(newFakeIdempotencyStore(), &hits)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, placeOrderRequest("", "{}"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without Idempotency-Key, got %d", w.Code)
	}
	if hits != 0 {
		t.Fatalf("request without key must not reach the handler")
	}
}

func TestIdempotencyIgnoresUnguardedRoutes(t *testing.T) {
	hits := 0
	router := placeOrderRouter(newFakeIdempotencyStore(), &hits)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK || hits != 1 {
		t.Fatalf("unguarded route should pass through: code=%d hits=%d", w.Code, hits)
	}
}
