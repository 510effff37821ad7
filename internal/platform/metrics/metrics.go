package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	recalculationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scorecard",
		Subsystem: "scoring",
		Name:      "recalculations_total",
		Help:      "Performance recalculations by outcome.",
	}, []string{"outcome"})

	batchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "scorecard",
		Subsystem: "scoring",
		Name:      "batch_duration_seconds",
		Help:      "Duration of whole-company recalculation batches.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
	})

	progressUpdatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "scorecard",
		Subsystem: "goals",
		Name:      "progress_updates_total",
		Help:      "Key-result progress observations recorded.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scorecard",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method and status code.",
	}, []string{"method", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "scorecard",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
)

func init() {
	prometheus.MustRegister(recalculationsTotal, batchDuration, progressUpdatesTotal, httpRequestsTotal, httpDuration)
}

// RecordRecalculation counts one recalculation with outcome "success" or
// "failure".
func RecordRecalculation(outcome string) {
	recalculationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveBatchDuration records how long a batch recalculation took.
func ObserveBatchDuration(d time.Duration) {
	batchDuration.Observe(d.Seconds())
}

// RecordProgressUpdate counts one ledger append.
func RecordProgressUpdate() {
	progressUpdatesTotal.Inc()
}

// RecordHTTPRequest feeds the request counter and latency histogram.
func RecordHTTPRequest(method, status string, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, status).Inc()
	httpDuration.WithLabelValues(method).Observe(d.Seconds())
}

// Handler exposes the default registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
