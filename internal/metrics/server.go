package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"visual-scout/internal/logging"
)

// Serve exposes /metrics on the given address for scraping during long
// batch runs. It blocks, so callers run it in a goroutine; the listener
// dies with the process when the run completes.
func Serve(addr string) {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	logging.Info("Metrics listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logging.Warn("Metrics server stopped: %v", err)
	}
}
