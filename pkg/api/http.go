package api

import (
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"threadb/pkg/api/handlers"
	"threadb/pkg/uploads"
)

// Options carries everything the HTTP layer needs from startup.
type Options struct {
	Templates *template.Template
	Uploads   *uploads.Store
	PageSize  int

	// RPS/Burst configure the per-client limiter on post endpoints;
	// RPS <= 0 disables it.
	RPS   float64
	Burst int
}

// Handler builds the board router: two page routes, two form routes, and a
// liveness probe. Form routes sit behind the post rate limiter.
func Handler(opts Options) http.Handler {
	handlers.Init(opts.Templates, opts.Uploads, opts.PageSize)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	r.HandleFunc("/", handlers.Homepage).Methods(http.MethodGet)
	r.HandleFunc("/thread/{id}", handlers.ViewThread).Methods(http.MethodGet)

	limit := postLimiter(opts.RPS, opts.Burst)
	r.Handle("/thread", limit(http.HandlerFunc(handlers.CreateThread))).Methods(http.MethodPost)
	r.Handle("/reply", limit(http.HandlerFunc(handlers.CreateReply))).Methods(http.MethodPost)

	r.Use(logRequests)
	return r
}
