// Package api serves the fatigue calculation over HTTP. Every request is
// independent; the only shared state is the result cache and the per-client
// rate limiter.
package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/alexiusacademia/goshaft/internal/fatigue"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// Deps configures the router
type Deps struct {
	Cache      *fatigue.Cache
	Logger     *slog.Logger
	Rate       rate.Limit // requests per second per client; 0 disables limiting
	Burst      int
	MaxBatch   int
	CORSOrigin string
}

// NewRouter wires the API routes and middleware.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.MaxBatch <= 0 {
		d.MaxBatch = 1000
	}
	if d.Burst <= 0 {
		d.Burst = 1
	}

	h := &Handler{cache: d.Cache, logger: d.Logger, maxBatch: d.MaxBatch}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	api := r.PathPrefix("/api").Subrouter()
	if d.Rate > 0 {
		api.Use(NewClientRateLimiter(d.Rate, d.Burst).Middleware)
	}

	api.HandleFunc("/health", h.Health).Methods("GET")
	api.HandleFunc("/finishes", h.Finishes).Methods("GET")

	f := api.PathPrefix("/fatigue").Subrouter()
	f.HandleFunc("/compute", h.Compute).Methods("POST")
	f.HandleFunc("/batch", h.Batch).Methods("POST")
	f.HandleFunc("/export", h.Export).Methods("POST")
	f.HandleFunc("/import", h.Import).Methods("POST")

	return LogRequests(d.Logger, CORS(d.CORSOrigin, r))
}
