package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/sereneleaf/storefront-backend/api/middleware"
	"github.com/sereneleaf/storefront-backend/api/responses"
	"github.com/sereneleaf/storefront-backend/api/validators"
	"github.com/sereneleaf/storefront-backend/internal/analytics"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
)

// AnalyticsService is the emission surface handlers use. Every call is
// fire-and-forget.
type AnalyticsService interface {
	Track(ctx context.Context, anonymousID, name string, payload any)
	Page(ctx context.Context, anonymousID string, payload analytics.PagePayload)
	Identify(ctx context.Context, anonymousID string, traits analytics.IdentifyTraits)
	TrackSearch(anonymousID string, payload analytics.SearchPayload)
}

type identifyPayload struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

type pagePayload struct {
	Path     string `json:"path" validate:"required"`
	Title    string `json:"title"`
	Referrer string `json:"referrer"`
}

// Identify attaches profile traits to the anonymous session, typically
// from a newsletter signup form.
func Identify(analyticsSvc AnalyticsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload identifyPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		first, last := splitName(payload.Name)
		analyticsSvc.Identify(ctx, middleware.SessionIDFromContext(ctx), analytics.IdentifyTraits{
			Email:     strings.ToLower(strings.TrimSpace(payload.Email)),
			FirstName: first,
			LastName:  last,
		})

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]bool{"accepted": true})
	}
}

// PageView records a storefront page view.
func PageView(analyticsSvc AnalyticsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload pagePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		analyticsSvc.Page(ctx, middleware.SessionIDFromContext(ctx), analytics.PagePayload{
			Path:     payload.Path,
			Title:    payload.Title,
			Referrer: payload.Referrer,
		})

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]bool{"accepted": true})
	}
}

func splitName(value string) (string, string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ""
	}
	parts := strings.SplitN(trimmed, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}
