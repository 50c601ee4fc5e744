package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sereneleaf/storefront-backend/api/middleware"
	"github.com/sereneleaf/storefront-backend/api/responses"
	"github.com/sereneleaf/storefront-backend/internal/analytics"
	pkgerrors "github.com/sereneleaf/storefront-backend/pkg/errors"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
)

// PromotionList serves active promotions, optionally for one placement,
// and tracks an impression per promotion returned.
func PromotionList(catalogSvc CatalogService, analyticsSvc AnalyticsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		position := strings.TrimSpace(r.URL.Query().Get("position"))
		promotions := catalogSvc.Promotions(position)

		sessionID := middleware.SessionIDFromContext(ctx)
		for _, promo := range promotions {
			analyticsSvc.Track(ctx, sessionID, analytics.EventPromotionViewed, analytics.PromotionPayload{
				PromotionID: promo.ID,
				Name:        promo.Name,
				Creative:    promo.Creative,
				Position:    promo.Position,
			})
		}

		responses.WriteSuccess(w, map[string]any{"promotions": promotions})
	}
}

// PromotionClick records a click-through on a promotion placement.
func PromotionClick(catalogSvc CatalogService, analyticsSvc AnalyticsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id := strings.TrimSpace(chi.URLParam(r, "promotionId"))
		if id == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "promotion id is required"))
			return
		}

		promo, err := catalogSvc.PromotionByID(id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		analyticsSvc.Track(ctx, middleware.SessionIDFromContext(ctx), analytics.EventPromotionClicked, analytics.PromotionPayload{
			PromotionID: promo.ID,
			Name:        promo.Name,
			Creative:    promo.Creative,
			Position:    promo.Position,
		})

		responses.WriteSuccess(w, map[string]bool{"clicked": true})
	}
}
