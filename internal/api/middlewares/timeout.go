package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/markdave123-py/postlens/internal/api/handlers"
)

// Timeout cancels the request context after d. Unlike chi's Timeout it only
// writes the 504 when the handler has not responded yet, and writes it as an
// ErrorResponse.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			if errors.Is(ctx.Err(), context.DeadlineExceeded) && ww.Status() == 0 {
				handlers.WriteError(w, http.StatusGatewayTimeout, handlers.MsgTimeout)
			}
		})
	}
}
