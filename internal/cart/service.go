package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sereneleaf/storefront-backend/pkg/config"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
)

// storage is the slice of the redis client the cart service needs.
type storage interface {
	CartKey(sessionID string) string
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Service owns per-session cart snapshots. Persistence is best effort:
// a failing store never blocks a cart mutation, and an unreadable or
// malformed snapshot loads as an empty cart.
type Service struct {
	store storage
	ttl   time.Duration
	logg  *logger.Logger
}

func NewService(store storage, cfg config.CartConfig, logg *logger.Logger) *Service {
	return &Service{
		store: store,
		ttl:   cfg.TTL,
		logg:  logg,
	}
}

// Load reads the session's cart snapshot. Missing keys, store failures
// and corrupt payloads all come back as an empty cart.
func (s *Service) Load(ctx context.Context, sessionID string) State {
	raw, err := s.store.Get(ctx, s.store.CartKey(sessionID))
	if err != nil {
		if !errors.Is(err, redis.Nil) && s.logg != nil {
			s.logg.Warn(ctx, "cart snapshot unreadable, starting empty")
		}
		return State{Items: []Item{}}
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "cart snapshot corrupt, starting empty")
		}
		return State{Items: []Item{}}
	}
	if state.Items == nil {
		state.Items = []Item{}
	}
	return state
}

// Dispatch loads the session's cart, applies the action and persists the
// result. The new state is returned even when the write fails.
func (s *Service) Dispatch(ctx context.Context, sessionID string, action Action) State {
	next := Reduce(s.Load(ctx, sessionID), action)
	s.persist(ctx, sessionID, next)
	return next
}

// Reset drops the session's persisted cart entirely.
func (s *Service) Reset(ctx context.Context, sessionID string) {
	if err := s.store.Del(ctx, s.store.CartKey(sessionID)); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "cart snapshot delete failed")
	}
}

func (s *Service) persist(ctx context.Context, sessionID string, state State) {
	payload, err := json.Marshal(state)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "cart snapshot marshal failed", err)
		}
		return
	}
	if err := s.store.Set(ctx, s.store.CartKey(sessionID), payload, s.ttl); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "cart snapshot write failed")
	}
}
