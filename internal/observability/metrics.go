// Package observability exposes import-run counters over Prometheus.
//
// Metrics are not required for correctness; the importer increments them as
// a side effect and operators scrape them to watch feed health over time.
package observability

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RowsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "import_rows_processed_total",
		Help: "Rows successfully persisted across all runs",
	})

	RowsInserted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "import_rows_inserted_total",
		Help: "Rows that resulted in an insert",
	})

	RowsUpdated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "import_rows_updated_total",
		Help: "Rows that resulted in an update",
	})

	RowErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_row_errors_total",
		Help: "Per-row failures by kind (transform, validation, persistence)",
	}, []string{"kind"})

	Batches = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "import_batches_total",
		Help: "Batches processed across all runs",
	})
)

// Start registers the import metrics and serves them on /metrics, plus a
// /healthz liveness probe, in a background goroutine.
func Start(port string) {
	prometheus.MustRegister(RowsProcessed, RowsInserted, RowsUpdated, RowErrors, Batches)

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	go func() {
		if err := http.ListenAndServe(":"+port, r); err != nil {
			slog.Error("metrics server stopped", "error", err)
		}
	}()
}
