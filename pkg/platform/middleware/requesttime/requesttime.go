// Package requesttime pins a single "now" to each request so every verdict in
// a batch carries the same checked-at timestamp.
package requesttime

import (
	"net/http"
	"time"

	"cadastro/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request
// and stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
