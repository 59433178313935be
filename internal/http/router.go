// Package httpapi assembles the public router. Route registration lives with
// each feature handler; this package only stacks middleware and mounts them.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	directoryhandler "druid/internal/directory/handler"
	"druid/pkg/platform/middleware/requestid"
	"druid/pkg/platform/middleware/requesttime"
)

// NewRouter wires all public endpoints.
func NewRouter(directory *directoryhandler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)

	directory.Register(r)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
