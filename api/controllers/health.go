package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/sereneleaf/storefront-backend/api/responses"
	"github.com/sereneleaf/storefront-backend/pkg/config"
	pkgerrors "github.com/sereneleaf/storefront-backend/pkg/errors"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
)

const readinessTimeout = 5 * time.Second

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SereneLeaf-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the dependencies the API cannot serve without.
// The analytics transport is optional; a nil pinger is skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, store pinger, events pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SereneLeaf-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}

		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "store not configured"))
			return
		}
		if err := store.Ping(ctx); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store unreachable"))
			return
		}
		checks["store"] = "ok"

		if events != nil {
			if err := events.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "event transport unreachable"))
				return
			}
			checks["events"] = "ok"
		}

		responses.WriteSuccess(w, map[string]any{
			"status": "ready",
			"checks": checks,
		})
	}
}
