package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
)

const (
	sessionCookieName = "sl_session"
	sessionCookieTTL  = 30 * 24 * time.Hour
)

// Session assigns every visitor an anonymous session id carried in a
// cookie. The id keys the cart, checkout and wishlist slots and doubles
// as the analytics anonymous id. Invalid cookies are replaced silently.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(sessionCookieName); err == nil {
				if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
					sessionID = cookie.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(sessionCookieTTL.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
