// Package metrics exposes the service's Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_http_requests_total",
		Help: "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roster_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"method", "path"})

	generationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_generation_total",
		Help: "Total roster generation runs.",
	}, []string{"status"})

	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roster_generation_duration_seconds",
		Help:    "Roster generation latency.",
		Buckets: []float64{0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
	}, []string{"status"})

	nightTripleShortfall = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roster_night_triple_shortfall",
		Help: "Night-triple slots still unassigned after the pre-pass in the most recent run.",
	})

	fairnessGini = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "roster_fairness_gini",
		Help: "Gini coefficient of the most recent roster's fairness metrics.",
	}, []string{"metric"})

	coverageRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roster_coverage_rate",
		Help: "Fraction of required staffing slots filled in the most recent roster.",
	})
)

// Handler serves metrics in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRequest records one HTTP request's outcome and latency.
func RecordRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordGeneration records one roster generation run's outcome and latency.
func RecordGeneration(status string, duration time.Duration) {
	generationTotal.WithLabelValues(status).Inc()
	generationDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// SetNightTripleShortfall records how many night-triple slots the pre-pass
// could not place in the most recent run.
func SetNightTripleShortfall(target, assigned int) {
	nightTripleShortfall.Set(float64(target - assigned))
}

// SetFairnessGini records a fairness metric's Gini coefficient.
func SetFairnessGini(metric string, gini float64) {
	fairnessGini.WithLabelValues(metric).Set(gini)
}

// SetCoverageRate records the most recent roster's staffing fill rate.
func SetCoverageRate(rate float64) {
	coverageRate.Set(rate)
}
