package controllers

import (
	"context"
	"net/http"

	"github.com/sereneleaf/storefront-backend/api/middleware"
	"github.com/sereneleaf/storefront-backend/api/responses"
	"github.com/sereneleaf/storefront-backend/api/validators"
	"github.com/sereneleaf/storefront-backend/internal/analytics"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
)

// WishlistService is the saved-products surface handlers consume.
type WishlistService interface {
	Toggle(ctx context.Context, sessionID, productID string) (bool, []string, error)
	List(ctx context.Context, sessionID string) ([]string, error)
}

type toggleWishlistPayload struct {
	ProductID string `json:"product_id" validate:"required"`
}

type wishlistResponse struct {
	ProductIDs []string `json:"product_ids"`
	Saved      *bool    `json:"saved,omitempty"`
}

// WishlistToggle saves a product or removes it when already saved.
func WishlistToggle(svc WishlistService, catalogSvc CatalogService, analyticsSvc AnalyticsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)

		var payload toggleWishlistPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := catalogSvc.GetByID(payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		saved, ids, err := svc.Toggle(ctx, sessionID, product.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if saved {
			analyticsSvc.Track(ctx, sessionID, analytics.EventProductWishlisted, analytics.ProductPayloadFrom(product))
		}

		responses.WriteSuccess(w, wishlistResponse{ProductIDs: ids, Saved: &saved})
	}
}

// WishlistList returns the session's saved product ids.
func WishlistList(svc WishlistService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		ids, err := svc.List(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, wishlistResponse{ProductIDs: ids})
	}
}
