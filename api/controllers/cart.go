package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sereneleaf/storefront-backend/api/middleware"
	"github.com/sereneleaf/storefront-backend/api/responses"
	"github.com/sereneleaf/storefront-backend/api/validators"
	"github.com/sereneleaf/storefront-backend/internal/analytics"
	"github.com/sereneleaf/storefront-backend/internal/cart"
	"github.com/sereneleaf/storefront-backend/internal/catalog"
	pkgerrors "github.com/sereneleaf/storefront-backend/pkg/errors"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
)

// CartService is the session cart surface handlers consume.
type CartService interface {
	Load(ctx context.Context, sessionID string) cart.State
	Dispatch(ctx context.Context, sessionID string, action cart.Action) cart.State
}

type cartView struct {
	Items     []cart.Item     `json:"items"`
	Coupon    *catalog.Coupon `json:"coupon,omitempty"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
}

func cartViewFrom(state cart.State, currency string) cartView {
	totals := state.Totals()
	return cartView{
		Items:     state.Items,
		Coupon:    state.Coupon,
		ItemCount: totals.ItemCount,
		Subtotal:  totals.Subtotal,
		Discount:  totals.Discount,
		Total:     totals.Total,
		Currency:  currency,
	}
}

type addCartItemPayload struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemPayload struct {
	Quantity int `json:"quantity"`
}

type applyCouponPayload struct {
	Code string `json:"code" validate:"required"`
}

// CartFetch returns the session cart with derived totals.
func CartFetch(cartSvc CartService, analyticsSvc AnalyticsService, currency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)

		state := cartSvc.Load(ctx, sessionID)

		analyticsSvc.Track(ctx, sessionID, analytics.EventCartViewed, analytics.CartViewedPayload{
			CartID:   sessionID,
			Products: analytics.CartProductsFrom(state.Items, currency),
			Subtotal: state.Subtotal(),
			Currency: currency,
		})

		responses.WriteSuccess(w, cartViewFrom(state, currency))
	}
}

// CartAddItem snapshots a catalog product into the cart, merging with an
// existing line for the same product.
func CartAddItem(cartSvc CartService, catalogSvc CatalogService, analyticsSvc AnalyticsService, currency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)

		var payload addCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if payload.Quantity < 0 {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative"))
			return
		}

		product, err := catalogSvc.GetByID(payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !product.InStock {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeConflict, "product is out of stock"))
			return
		}

		item := cart.ItemFromProduct(product, payload.Quantity)
		state := cartSvc.Dispatch(ctx, sessionID, cart.AddItem{Item: item})

		analyticsSvc.Track(ctx, sessionID, analytics.EventProductAdded, analytics.CartProductPayloadFrom(item, currency))

		responses.WriteSuccess(w, cartViewFrom(state, currency))
	}
}

// CartUpdateItem sets a line's quantity; zero removes the line.
func CartUpdateItem(cartSvc CartService, analyticsSvc AnalyticsService, currency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var payload updateCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		removed := removedItem(cartSvc.Load(ctx, sessionID), productID, payload.Quantity <= 0)
		state := cartSvc.Dispatch(ctx, sessionID, cart.UpdateQuantity{ProductID: productID, Quantity: payload.Quantity})

		if removed != nil {
			analyticsSvc.Track(ctx, sessionID, analytics.EventProductRemoved, analytics.CartProductPayloadFrom(*removed, currency))
		}

		responses.WriteSuccess(w, cartViewFrom(state, currency))
	}
}

// CartRemoveItem deletes a line from the cart.
func CartRemoveItem(cartSvc CartService, analyticsSvc AnalyticsService, currency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		removed := removedItem(cartSvc.Load(ctx, sessionID), productID, true)
		state := cartSvc.Dispatch(ctx, sessionID, cart.RemoveItem{ProductID: productID})

		if removed != nil {
			analyticsSvc.Track(ctx, sessionID, analytics.EventProductRemoved, analytics.CartProductPayloadFrom(*removed, currency))
		}

		responses.WriteSuccess(w, cartViewFrom(state, currency))
	}
}

// CartApplyCoupon validates a coupon code against the catalog and the
// current subtotal before storing it on the cart. Denials are tracked
// with their reason.
func CartApplyCoupon(cartSvc CartService, catalogSvc CatalogService, analyticsSvc AnalyticsService, currency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)

		var payload applyCouponPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		code := strings.ToUpper(strings.TrimSpace(payload.Code))

		coupon, err := catalogSvc.CouponByCode(code)
		if err != nil {
			analyticsSvc.Track(ctx, sessionID, analytics.EventCouponDenied, analytics.CouponPayload{
				CartID:   sessionID,
				CouponID: code,
				Reason:   "not_found",
			})
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "coupon code not recognized"))
			return
		}

		state := cartSvc.Load(ctx, sessionID)
		if state.Subtotal().LessThan(coupon.MinOrderAmount) {
			analyticsSvc.Track(ctx, sessionID, analytics.EventCouponDenied, analytics.CouponPayload{
				CartID:   sessionID,
				CouponID: coupon.Code,
				Reason:   "minimum_not_met",
			})
			responses.WriteError(ctx, logg, w, pkgerrors.
				New(pkgerrors.CodeValidation, "order minimum not met for this coupon").
				WithDetails(map[string]string{"min_order_amount": coupon.MinOrderAmount.String()}))
			return
		}

		state = cartSvc.Dispatch(ctx, sessionID, cart.ApplyCoupon{Coupon: *coupon})

		analyticsSvc.Track(ctx, sessionID, analytics.EventCouponApplied, analytics.CouponPayload{
			CartID:     sessionID,
			CouponID:   coupon.Code,
			CouponName: coupon.Description,
			Discount:   state.Discount(),
		})

		responses.WriteSuccess(w, cartViewFrom(state, currency))
	}
}

// CartRemoveCoupon detaches the applied coupon from the cart.
func CartRemoveCoupon(cartSvc CartService, currency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)

		state := cartSvc.Dispatch(ctx, sessionID, cart.RemoveCoupon{})
		responses.WriteSuccess(w, cartViewFrom(state, currency))
	}
}

// CartClear empties the cart entirely.
func CartClear(cartSvc CartService, currency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)

		state := cartSvc.Dispatch(ctx, sessionID, cart.Clear{})
		responses.WriteSuccess(w, cartViewFrom(state, currency))
	}
}

// removedItem returns the line about to disappear, if any.
func removedItem(state cart.State, productID string, removing bool) *cart.Item {
	if !removing {
		return nil
	}
	for i := range state.Items {
		if state.Items[i].ProductID == productID {
			return &state.Items[i]
		}
	}
	return nil
}
