package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/sereneleaf/storefront-backend/api/responses"
	"github.com/sereneleaf/storefront-backend/pkg/config"
	pkgerrors "github.com/sereneleaf/storefront-backend/pkg/errors"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// CouponRateLimit throttles coupon submissions per session so codes
// cannot be brute forced through the apply endpoint.
func CouponRateLimit(cfg config.CouponRateLimitConfig, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || cfg.Limit <= 0 || cfg.Window <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionID := SessionIDFromContext(ctx)
			if sessionID == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed, count, err := store.FixedWindowAllow(ctx, "coupon:"+sessionID, int64(cfg.Limit), cfg.Window)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}
			if !allowed {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"attempts":       count,
						"limit":          cfg.Limit,
						"window_seconds": int(cfg.Window.Seconds()),
					})
					logg.Warn(logCtx, "coupon.rate_limit.blocked")
				}
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many coupon attempts"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
