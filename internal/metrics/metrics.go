// Package metrics exposes Prometheus counters for the report pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ReportsSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tasklift",
		Name:      "reports_sent_total",
		Help:      "ROI report emails dispatched successfully.",
	})
	ReportsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tasklift",
		Name:      "reports_rejected_total",
		Help:      "Report submissions rejected, by reason.",
	}, []string{"reason"})
	RateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tasklift",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter.",
	})
)

// Init registers collectors; call once from main.
func Init() {
	prometheus.MustRegister(ReportsSent, ReportsRejected, RateLimited)
}

// Handler serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
