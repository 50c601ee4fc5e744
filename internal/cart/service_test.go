package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sereneleaf/storefront-backend/pkg/config"
)

type fakeStorage struct {
	data    map[string]string
	getErr  error
	setErr  error
	setKeys []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{data: map[string]string{}}
}

func (f *fakeStorage) CartKey(sessionID string) string {
	return "sl:cart:" + sessionID
}

func (f *fakeStorage) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeStorage) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.setKeys = append(f.setKeys, key)
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return nil
}

func (f *fakeStorage) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func TestLoadMissingSnapshotIsEmptyCart(t *testing.T) {
	svc := NewService(newFakeStorage(), config.CartConfig{TTL: time.Hour}, nil)
	state := svc.Load(context.Background(), "sess-1")
	if len(state.Items) != 0 || state.Coupon != nil {
		t.Fatalf("expected empty cart, got %+v", state)
	}
}

func TestLoadMalformedSnapshotIsEmptyCart(t *testing.T) {
	store := newFakeStorage()
	store.data[store.CartKey("sess-1")] = "{not json"
	svc := NewService(store, config.CartConfig{TTL: time.Hour}, nil)

	state := svc.Load(context.Background(), "sess-1")
	if len(state.Items) != 0 {
		t.Fatalf("malformed snapshot must load as empty cart, got %+v", state)
	}
}

func TestLoadStoreFailureIsEmptyCart(t *testing.T) {
	store := newFakeStorage()
	store.getErr = errors.New("connection refused")
	svc := NewService(store, config.CartConfig{TTL: time.Hour}, nil)

	state := svc.Load(context.Background(), "sess-1")
	if len(state.Items) != 0 {
		t.Fatalf("store failure must load as empty cart")
	}
}

func TestDispatchPersistsAndRoundTrips(t *testing.T) {
	store := newFakeStorage()
	svc := NewService(store, config.CartConfig{TTL: time.Hour}, nil)
	ctx := context.Background()

	svc.Dispatch(ctx, "sess-1", AddItem{Item: testItem("tea-1", "12.50", 2)})
	svc.Dispatch(ctx, "sess-1", AddItem{Item: testItem("tea-1", "12.50", 1)})

	state := svc.Load(ctx, "sess-1")
	if len(state.Items) != 1 || state.Items[0].Quantity != 3 {
		t.Fatalf("round trip lost state: %+v", state.Items)
	}
	if len(store.setKeys) != 2 {
		t.Fatalf("expected 2 persisted writes, got %d", len(store.setKeys))
	}
}

func TestDispatchSurvivesWriteFailure(t *testing.T) {
	store := newFakeStorage()
	store.setErr = errors.New("write failed")
	svc := NewService(store, config.CartConfig{TTL: time.Hour}, nil)

	state := svc.Dispatch(context.Background(), "sess-1", AddItem{Item: testItem("tea-1", "12.50", 1)})
	if len(state.Items) != 1 {
		t.Fatalf("mutation result must be returned despite write failure")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	store := newFakeStorage()
	svc := NewService(store, config.CartConfig{TTL: time.Hour}, nil)
	ctx := context.Background()

	svc.Dispatch(ctx, "sess-a", AddItem{Item: testItem("tea-1", "12.50", 1)})
	svc.Dispatch(ctx, "sess-b", AddItem{Item: testItem("tea-2", "9.50", 4)})

	a := svc.Load(ctx, "sess-a")
	b := svc.Load(ctx, "sess-b")
	if a.Items[0].ProductID != "tea-1" || b.Items[0].ProductID != "tea-2" {
		t.Fatalf("sessions leaked into each other: %+v / %+v", a.Items, b.Items)
	}
}

func TestReset(t *testing.T) {
	store := newFakeStorage()
	svc := NewService(store, config.CartConfig{TTL: time.Hour}, nil)
	ctx := context.Background()

	svc.Dispatch(ctx, "sess-1", AddItem{Item: testItem("tea-1", "12.50", 1)})
	svc.Reset(ctx, "sess-1")

	if state := svc.Load(ctx, "sess-1"); len(state.Items) != 0 {
		t.Fatalf("reset did not clear persisted cart")
	}
}
