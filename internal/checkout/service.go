package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sereneleaf/storefront-backend/internal/analytics"
	"github.com/sereneleaf/storefront-backend/internal/cart"
	"github.com/sereneleaf/storefront-backend/internal/orders"
	"github.com/sereneleaf/storefront-backend/pkg/config"
	"github.com/sereneleaf/storefront-backend/pkg/enums"
	pkgerrors "github.com/sereneleaf/storefront-backend/pkg/errors"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// State is the per-session checkout progress persisted between steps.
// The order id is assigned up front so the confirmation URL is stable
// before the order is placed.
type State struct {
	CheckoutID string             `json:"checkout_id"`
	OrderID    string             `json:"order_id"`
	Step       enums.CheckoutStep `json:"step"`
	Shipping   *ShippingData      `json:"shipping,omitempty"`
	Payment    *PaymentRecord     `json:"payment,omitempty"`
	StartedAt  time.Time          `json:"started_at"`
}

type storage interface {
	CheckoutKey(sessionID string) string
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type tracker interface {
	Track(ctx context.Context, anonymousID, name string, payload any)
}

// Service drives the linear shipping, payment, review sequence. Steps
// only move forward and each submission gates on the previous one.
type Service struct {
	store     storage
	carts     *cart.Service
	orders    *orders.Service
	analytics tracker
	cfg       config.CheckoutConfig
	validate  *validator.Validate
	logg      *logger.Logger
	newID     func() string
}

func NewService(store storage, carts *cart.Service, ords *orders.Service, analyticsSvc tracker, cfg config.CheckoutConfig, logg *logger.Logger) *Service {
	return &Service{
		store:     store,
		carts:     carts,
		orders:    ords,
		analytics: analyticsSvc,
		cfg:       cfg,
		validate:  validator.New(),
		logg:      logg,
		newID:     uuid.NewString,
	}
}

// Start opens a checkout session for a non-empty cart. Starting again
// while one is in flight resumes it without re-announcing the start.
func (s *Service) Start(ctx context.Context, sessionID string) (State, error) {
	cartState := s.carts.Load(ctx, sessionID)
	if len(cartState.Items) == 0 {
		return State{}, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	if existing, err := s.load(ctx, sessionID); err == nil {
		return existing, nil
	}

	state := State{
		CheckoutID: s.newID(),
		OrderID:    "ord-" + s.newID(),
		Step:       enums.CheckoutStepShipping,
		StartedAt:  time.Now().UTC(),
	}
	if err := s.persist(ctx, sessionID, state); err != nil {
		return State{}, err
	}

	if s.analytics != nil {
		payload := analytics.CheckoutStartedPayload{
			OrderID:  state.OrderID,
			Value:    cartState.Subtotal(),
			Currency: s.cfg.Currency,
			Products: analytics.CartProductsFrom(cartState.Items, s.cfg.Currency),
		}
		if cartState.Coupon != nil {
			payload.Coupon = cartState.Coupon.Code
		}
		s.analytics.Track(ctx, sessionID, analytics.EventCheckoutStarted, payload)
		s.trackStepViewed(ctx, sessionID, state)
	}

	return state, nil
}

// Get returns the in-flight checkout state.
func (s *Service) Get(ctx context.Context, sessionID string) (State, error) {
	return s.load(ctx, sessionID)
}

// SubmitShipping records the shipping form and advances to payment.
func (s *Service) SubmitShipping(ctx context.Context, sessionID string, data ShippingData) (State, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	if err := s.validate.Struct(data); err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "shipping details invalid")
	}

	state.Shipping = &data
	completed := state.Step
	state.Step = enums.CheckoutStepPayment
	if err := s.persist(ctx, sessionID, state); err != nil {
		return State{}, err
	}

	if s.analytics != nil {
		s.trackStepCompleted(ctx, sessionID, state.CheckoutID, completed)
		s.trackStepViewed(ctx, sessionID, state)
	}
	return state, nil
}

// SubmitPayment validates and masks the payment form and advances to
// review. Shipping must already be on file.
func (s *Service) SubmitPayment(ctx context.Context, sessionID string, input PaymentInput) (State, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	if state.Shipping == nil {
		return State{}, pkgerrors.New(pkgerrors.CodeStateConflict, "shipping step not completed")
	}

	record, err := NormalizePayment(input)
	if err != nil {
		return State{}, err
	}

	state.Payment = &record
	state.Step = enums.CheckoutStepReview
	if err := s.persist(ctx, sessionID, state); err != nil {
		return State{}, err
	}

	if s.analytics != nil {
		s.analytics.Track(ctx, sessionID, analytics.EventPaymentInfoEntered, analytics.PaymentInfoPayload{
			CheckoutID:    state.CheckoutID,
			PaymentMethod: record.Method,
		})
		s.trackStepCompleted(ctx, sessionID, state.CheckoutID, enums.CheckoutStepPayment)
		s.trackStepViewed(ctx, sessionID, state)
	}
	return state, nil
}

// PlaceOrder prices the cart, writes the order handoff record, clears the
// cart and ends the checkout session. Both earlier steps must be complete.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string) (orders.Record, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return orders.Record{}, err
	}
	if state.Shipping == nil || state.Payment == nil {
		return orders.Record{}, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout steps incomplete")
	}

	cartState := s.carts.Load(ctx, sessionID)
	if len(cartState.Items) == 0 {
		return orders.Record{}, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	subtotal := cartState.Subtotal()
	discount := cartState.Discount()
	shipping := s.shippingCost(subtotal)
	tax := subtotal.Sub(discount).Mul(decimal.NewFromFloat(s.cfg.TaxRate)).Round(2)
	total := subtotal.Sub(discount).Add(shipping).Add(tax)

	record := orders.Record{
		OrderID:  state.OrderID,
		PlacedAt: time.Now().UTC(),
		Items:    cartState.Items,
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Tax:      tax,
		Total:    total,
		Currency: s.cfg.Currency,
		Address:  addressFrom(*state.Shipping),
	}
	if cartState.Coupon != nil && discount.IsPositive() {
		record.CouponCode = cartState.Coupon.Code
	}

	if s.logg != nil {
		ctx = s.logg.WithOrderID(ctx, record.OrderID)
	}

	if err := s.orders.Save(ctx, sessionID, record); err != nil {
		// The confirmation page degrades to its fallback if the
		// handoff is missing, so the order itself still goes through.
		if s.logg != nil {
			s.logg.Warn(ctx, "order handoff write failed")
		}
	}

	s.carts.Reset(ctx, sessionID)
	if err := s.store.Del(ctx, s.store.CheckoutKey(sessionID)); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "checkout state delete failed")
	}

	return record, nil
}

func (s *Service) shippingCost(subtotal decimal.Decimal) decimal.Decimal {
	threshold := decimal.NewFromFloat(s.cfg.FreeShippingThreshold)
	if subtotal.GreaterThan(threshold) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(s.cfg.ShippingCost)
}

func addressFrom(data ShippingData) orders.Address {
	return orders.Address{
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        data.Email,
		AddressLine1: data.AddressLine1,
		AddressLine2: data.AddressLine2,
		City:         data.City,
		State:        data.State,
		PostalCode:   data.PostalCode,
		Country:      data.Country,
	}
}

func (s *Service) trackStepViewed(ctx context.Context, sessionID string, state State) {
	s.analytics.Track(ctx, sessionID, analytics.EventCheckoutStepViewed, analytics.CheckoutStepPayload{
		CheckoutID: state.CheckoutID,
		Step:       state.Step.Number(),
		StepName:   state.Step.String(),
	})
}

func (s *Service) trackStepCompleted(ctx context.Context, sessionID, checkoutID string, step enums.CheckoutStep) {
	s.analytics.Track(ctx, sessionID, analytics.EventCheckoutStepComplete, analytics.CheckoutStepPayload{
		CheckoutID: checkoutID,
		Step:       step.Number(),
		StepName:   step.String(),
	})
}

func (s *Service) load(ctx context.Context, sessionID string) (State, error) {
	raw, err := s.store.Get(ctx, s.store.CheckoutKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return State{}, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout not started")
		}
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading checkout state")
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding checkout state")
	}
	return state, nil
}

func (s *Service) persist(ctx context.Context, sessionID string, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding checkout state")
	}
	if err := s.store.Set(ctx, s.store.CheckoutKey(sessionID), payload, s.cfg.SessionTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing checkout state")
	}
	return nil
}
