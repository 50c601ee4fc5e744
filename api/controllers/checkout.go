package controllers

import (
	"context"
	"net/http"

	"github.com/sereneleaf/storefront-backend/api/middleware"
	"github.com/sereneleaf/storefront-backend/api/responses"
	"github.com/sereneleaf/storefront-backend/api/validators"
	"github.com/sereneleaf/storefront-backend/internal/checkout"
	"github.com/sereneleaf/storefront-backend/internal/orders"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
)

// CheckoutService drives the shipping, payment, review sequence.
type CheckoutService interface {
	Start(ctx context.Context, sessionID string) (checkout.State, error)
	Get(ctx context.Context, sessionID string) (checkout.State, error)
	SubmitShipping(ctx context.Context, sessionID string, data checkout.ShippingData) (checkout.State, error)
	SubmitPayment(ctx context.Context, sessionID string, input checkout.PaymentInput) (checkout.State, error)
	PlaceOrder(ctx context.Context, sessionID string) (orders.Record, error)
}

// CheckoutStart opens or resumes the session's checkout.
func CheckoutStart(svc CheckoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		state, err := svc.Start(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, state)
	}
}

// CheckoutFetch returns the in-flight checkout state.
func CheckoutFetch(svc CheckoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		state, err := svc.Get(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

// CheckoutShipping submits the shipping form.
func CheckoutShipping(svc CheckoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload checkout.ShippingData
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state, err := svc.SubmitShipping(ctx, middleware.SessionIDFromContext(ctx), payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

// CheckoutPayment submits the payment form. Only the masked record comes
// back; the raw card number is discarded after validation.
func CheckoutPayment(svc CheckoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload checkout.PaymentInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state, err := svc.SubmitPayment(ctx, middleware.SessionIDFromContext(ctx), payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

// CheckoutPlace prices and places the order.
func CheckoutPlace(svc CheckoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		record, err := svc.PlaceOrder(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}
