package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	pkgerrors "github.com/sereneleaf/storefront-backend/pkg/errors"
)

type storage interface {
	WishlistKey(sessionID string) string
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service keeps a per-session set of saved product ids. Order of saving
// is preserved.
type Service struct {
	store storage
	ttl   time.Duration
}

func NewService(store storage, ttl time.Duration) *Service {
	return &Service{store: store, ttl: ttl}
}

// List returns the session's saved product ids.
func (s *Service) List(ctx context.Context, sessionID string) ([]string, error) {
	return s.load(ctx, sessionID)
}

// Toggle adds the product id when absent and removes it when present.
// It reports whether the product ended up saved.
func (s *Service) Toggle(ctx context.Context, sessionID, productID string) (bool, []string, error) {
	ids, err := s.load(ctx, sessionID)
	if err != nil {
		return false, nil, err
	}

	added := true
	next := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		if id == productID {
			added = false
			continue
		}
		next = append(next, id)
	}
	if added {
		next = append(next, productID)
	}

	payload, err := json.Marshal(next)
	if err != nil {
		return false, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding wishlist")
	}
	if err := s.store.Set(ctx, s.store.WishlistKey(sessionID), payload, s.ttl); err != nil {
		return false, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing wishlist")
	}
	return added, next, nil
}

func (s *Service) load(ctx context.Context, sessionID string) ([]string, error) {
	raw, err := s.store.Get(ctx, s.store.WishlistKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading wishlist")
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		// A corrupt slot resets rather than wedging the session.
		return []string{}, nil
	}
	return ids, nil
}
