package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TurfBookingService/internal/api/handlers"
)

// HeaderUserID carries the operator id set by the gateway in front of the service
const HeaderUserID = "X-User-ID"

type ctxKeyUserID struct{}

// Auth rejects requests without a positive X-User-ID header and stores the id in the context.
// Authentication itself happens upstream.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "missing "+HeaderUserID+" header")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "invalid "+HeaderUserID+" header")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID stores the caller id in ctx
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxKeyUserID{}, userID)
}

// GetUserID returns the caller id stored by Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(ctxKeyUserID{}).(int64)
	return userID, ok
}
