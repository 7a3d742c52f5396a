// Package httpapi assembles the public router. It stays thin: handlers live
// next to their domains, this package only mounts them and the platform
// middleware.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cataloghandler "prazo/internal/catalog/handler"
	deadlinehandler "prazo/internal/deadline/handler"
	"prazo/pkg/platform/middleware/requestid"
	"prazo/pkg/platform/middleware/requesttime"
)

// Handlers collects the domain handlers the router mounts.
type Handlers struct {
	Deadline *deadlinehandler.Handler
	Catalog  *cataloghandler.Handler
}

// NewRouter wires all public endpoints.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h.Deadline.Register(r)
	h.Catalog.Register(r)
	return r
}
