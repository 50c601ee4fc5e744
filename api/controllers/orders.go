package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sereneleaf/storefront-backend/api/middleware"
	"github.com/sereneleaf/storefront-backend/api/responses"
	"github.com/sereneleaf/storefront-backend/internal/orders"
	pkgerrors "github.com/sereneleaf/storefront-backend/pkg/errors"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
)

// OrdersService serves the one-shot confirmation record.
type OrdersService interface {
	Consume(ctx context.Context, sessionID, orderID string) orders.Record
}

// OrderConfirmation returns the session's pending order exactly once.
// Reloads and unknown ids get a zero-value record, never an error.
func OrderConfirmation(svc OrdersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		orderID := strings.TrimSpace(chi.URLParam(r, "orderId"))
		if orderID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id is required"))
			return
		}

		record := svc.Consume(ctx, middleware.SessionIDFromContext(ctx), orderID)
		responses.WriteSuccess(w, record)
	}
}
