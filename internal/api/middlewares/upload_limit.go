package middleware

import (
	"net/http"

	"github.com/markdave123-py/postlens/internal/api/handlers"
)

// UploadLimit caps request bodies at maxBytes. Requests that declare a larger
// Content-Length are rejected up front; others fail while the body is read.
func UploadLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				handlers.WriteError(w, http.StatusRequestEntityTooLarge, handlers.MsgTooLarge)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
