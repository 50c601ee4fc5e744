package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sereneleaf/storefront-backend/api/middleware"
	"github.com/sereneleaf/storefront-backend/api/responses"
	"github.com/sereneleaf/storefront-backend/internal/analytics"
	"github.com/sereneleaf/storefront-backend/internal/catalog"
	pkgerrors "github.com/sereneleaf/storefront-backend/pkg/errors"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
)

// CatalogService is the read-only product surface handlers consume.
type CatalogService interface {
	List(params catalog.ListParams) ([]catalog.Product, error)
	GetBySlug(slug string) (*catalog.Product, error)
	GetByID(id string) (*catalog.Product, error)
	Featured(limit int) []catalog.Product
	CouponByCode(code string) (*catalog.Coupon, error)
	Promotions(position string) []catalog.Promotion
	PromotionByID(id string) (*catalog.Promotion, error)
}

// The homepage renders the top rated in-stock teas, four across.
const featuredLimit = 4

type productListResponse struct {
	Products []catalog.Product `json:"products"`
	Count    int               `json:"count"`
}

// ProductList serves the filtered catalog. Searches are tracked through
// the debounced emitter so typing bursts collapse to one event; plain
// browses emit a list view.
func ProductList(catalogSvc CatalogService, analyticsSvc AnalyticsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		category := strings.TrimSpace(r.URL.Query().Get("category"))
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		products, err := catalogSvc.List(catalog.ListParams{Category: category, Query: query})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(ctx)
		if query != "" {
			analyticsSvc.TrackSearch(sessionID, analytics.SearchPayload{
				Query:       query,
				ResultCount: len(products),
			})
		} else {
			listID := "catalog"
			if category != "" {
				listID = "catalog:" + category
			}
			payload := analytics.ProductListPayload{
				ListID:   listID,
				Category: category,
			}
			for i, p := range products {
				product := analytics.ProductPayloadFrom(&p)
				product.Position = i + 1
				payload.Products = append(payload.Products, product)
			}
			analyticsSvc.Track(ctx, sessionID, analytics.EventProductListViewed, payload)
		}

		responses.WriteSuccess(w, productListResponse{Products: products, Count: len(products)})
	}
}

// ProductFeatured serves the homepage featured selection and tracks it
// as a list view under the featured list id.
func ProductFeatured(catalogSvc CatalogService, analyticsSvc AnalyticsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		products := catalogSvc.Featured(featuredLimit)

		payload := analytics.ProductListPayload{
			ListID:   "featured",
			Category: "featured",
		}
		for i, p := range products {
			product := analytics.ProductPayloadFrom(&p)
			product.Position = i + 1
			payload.Products = append(payload.Products, product)
		}
		analyticsSvc.Track(ctx, middleware.SessionIDFromContext(ctx), analytics.EventProductListViewed, payload)

		responses.WriteSuccess(w, productListResponse{Products: products, Count: len(products)})
	}
}

// ProductDetail serves one product by slug and tracks the view.
func ProductDetail(catalogSvc CatalogService, analyticsSvc AnalyticsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required"))
			return
		}

		product, err := catalogSvc.GetBySlug(slug)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		analyticsSvc.Track(ctx, middleware.SessionIDFromContext(ctx), analytics.EventProductViewed, analytics.ProductPayloadFrom(product))

		responses.WriteSuccess(w, product)
	}
}

// ProductClick records a click-through from a product card to its page.
func ProductClick(catalogSvc CatalogService, analyticsSvc AnalyticsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required"))
			return
		}

		product, err := catalogSvc.GetBySlug(slug)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		analyticsSvc.Track(ctx, middleware.SessionIDFromContext(ctx), analytics.EventProductClicked, analytics.ProductPayloadFrom(product))

		responses.WriteSuccess(w, map[string]bool{"clicked": true})
	}
}
