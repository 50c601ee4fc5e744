package wishlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeStorage struct {
	data   map[string]string
	setErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{data: map[string]string{}}
}

func (f *fakeStorage) WishlistKey(sessionID string) string {
	return "sl:wishlist:" + sessionID
}

func (f *fakeStorage) Get(_ context.Context, key string) (string, error) {
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
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return nil
}

func TestToggleAddsThenRemoves(t *testing.T) {
	svc := NewService(newFakeStorage(), time.Hour)
	ctx := context.Background()

	added, ids, err := svc.Toggle(ctx, "sess-1", "tea-1")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !added || len(ids) != 1 {
		t.Fatalf("expected tea-1 saved, got added=%v ids=%v", added, ids)
	}

	added, ids, err = svc.Toggle(ctx, "sess-1", "tea-1")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if added || len(ids) != 0 {
		t.Fatalf("expected tea-1 removed, got added=%v ids=%v", added, ids)
	}
}

func TestTogglePreservesOrder(t *testing.T) {
	svc := NewService(newFakeStorage(), time.Hour)
	ctx := context.Background()

	for _, id := range []string{"tea-1", "tea-2", "tea-3"} {
		if _, _, err := svc.Toggle(ctx, "sess-1", id); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
	}
	if _, _, err := svc.Toggle(ctx, "sess-1", "tea-2"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	ids, err := svc.List(ctx, "sess-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "tea-1" || ids[1] != "tea-3" {
		t.Fatalf("unexpected order: %v", ids)
	}
}

func TestListEmptyForNewSession(t *testing.T) {
	svc := NewService(newFakeStorage(), time.Hour)
	ids, err := svc.List(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty wishlist, got %v", ids)
	}
}

func TestCorruptSlotResets(t *testing.T) {
	store := newFakeStorage()
	store.data[store.WishlistKey("sess-1")] = "{broken"
	svc := NewService(store, time.Hour)

	ids, err := svc.List(context.Background(), "sess-1")
	if err != nil || len(ids) != 0 {
		t.Fatalf("corrupt slot should read as empty, got %v %v", ids, err)
	}
}

func TestToggleWriteFailure(t *testing.T) {
	store := newFakeStorage()
	store.setErr = errors.New("write failed")
	svc := NewService(store, time.Hour)

	_, _, err := svc.Toggle(context.Background(), "sess-1", "tea-1")
	if err == nil {
		t.Fatalf("expected error on write failure")
	}
}
