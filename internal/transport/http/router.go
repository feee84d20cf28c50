package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"cadastro/internal/platform/metrics"
	"cadastro/pkg/platform/httputil"
	"cadastro/pkg/platform/middleware/requestid"
	"cadastro/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by module handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires the shared middleware chain, the operational endpoints and
// every module handler. A nil registry disables /metrics.
func NewRouter(logger *slog.Logger, reg *prometheus.Registry, modules ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(accessLog(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if reg != nil {
		r.Handle("/metrics", metrics.Handler(reg))
	}

	for _, m := range modules {
		m.Register(r)
	}
	return r
}
