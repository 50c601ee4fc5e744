package orders

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sereneleaf/storefront-backend/internal/analytics"
	"github.com/sereneleaf/storefront-backend/internal/cart"
	"github.com/sereneleaf/storefront-backend/pkg/config"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// Address is the shipping destination captured at checkout.
type Address struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

// Record is the transient order handoff written at place-order time and
// consumed exactly once by the confirmation view.
type Record struct {
	OrderID    string          `json:"order_id"`
	PlacedAt   time.Time       `json:"placed_at"`
	Items      []cart.Item     `json:"items"`
	CouponCode string          `json:"coupon_code,omitempty"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	Shipping   decimal.Decimal `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	Currency   string          `json:"currency"`
	Address    Address         `json:"address"`
}

type storage interface {
	OrderKey(sessionID string) string
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type tracker interface {
	Track(ctx context.Context, anonymousID, name string, payload any)
}

// Service holds each session's latest placed order for the confirmation
// page. The slot is session scoped: a session has at most one pending
// record, and reading it destroys it.
type Service struct {
	store     storage
	analytics tracker
	ttl       time.Duration
	currency  string
	logg      *logger.Logger
}

func NewService(store storage, analytics tracker, cfg config.CheckoutConfig, logg *logger.Logger) *Service {
	return &Service{
		store:     store,
		analytics: analytics,
		ttl:       cfg.OrderRecordTTL,
		currency:  cfg.Currency,
		logg:      logg,
	}
}

// Save writes the session's order handoff record.
func (s *Service) Save(ctx context.Context, sessionID string, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, s.store.OrderKey(sessionID), payload, s.ttl)
}

// Consume returns the session's pending order record when its id matches
// the requested one, deleting it so a reload cannot read it again. Any
// miss, whether the slot is empty, unreadable or holding a different
// order, yields a zero-value fallback echoing the requested id. Every
// confirmation view emits Order Placed, fallback included.
func (s *Service) Consume(ctx context.Context, sessionID, orderID string) Record {
	rec := s.read(ctx, sessionID, orderID)

	if s.analytics != nil {
		s.analytics.Track(ctx, sessionID, analytics.EventOrderPlaced, analytics.OrderCompletedPayload{
			OrderID:  rec.OrderID,
			Subtotal: rec.Subtotal,
			Discount: rec.Discount,
			Shipping: rec.Shipping,
			Tax:      rec.Tax,
			Total:    rec.Total,
			Coupon:   rec.CouponCode,
			Currency: rec.Currency,
			Products: analytics.CartProductsFrom(rec.Items, rec.Currency),
		})
	}

	return rec
}

func (s *Service) read(ctx context.Context, sessionID, orderID string) Record {
	raw, err := s.store.Get(ctx, s.store.OrderKey(sessionID))
	if err != nil {
		if !errors.Is(err, redis.Nil) && s.logg != nil {
			s.logg.Warn(ctx, "order record unreadable, serving fallback")
		}
		return s.fallback(orderID)
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "order record corrupt, serving fallback")
		}
		return s.fallback(orderID)
	}
	if rec.OrderID != orderID {
		return s.fallback(orderID)
	}

	if err := s.store.Del(ctx, s.store.OrderKey(sessionID)); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "order record delete failed")
	}

	return rec
}

func (s *Service) fallback(orderID string) Record {
	return Record{
		OrderID:  orderID,
		Items:    []cart.Item{},
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Shipping: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
		Currency: s.currency,
	}
}
