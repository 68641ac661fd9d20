package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-коллекторов сервиса
type Metrics struct {
	// HTTP-слой
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Аналитика
	AnalysisRunsTotal    *prometheus.CounterVec
	SpacesAnalyzedTotal  prometheus.Counter
	SpacesFailedTotal    prometheus.Counter
	DroppedBookingsTotal prometheus.Counter
	AnalysisRunDuration  prometheus.Histogram
}

// New создает и регистрирует коллекторы в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		AnalysisRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "analysis_runs_total",
			Help:        "Total number of analysis runs by result",
			ConstLabels: constLabels,
		}, []string{"result"}),

		SpacesAnalyzedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "analysis_spaces_analyzed_total",
			Help:        "Total number of spaces analyzed successfully",
			ConstLabels: constLabels,
		}),

		SpacesFailedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "analysis_spaces_failed_total",
			Help:        "Total number of spaces that failed analysis",
			ConstLabels: constLabels,
		}),

		DroppedBookingsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "analysis_dropped_booking_records_total",
			Help:        "Total number of malformed booking records dropped during normalization",
			ConstLabels: constLabels,
		}),

		AnalysisRunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:        "analysis_run_duration_seconds",
			Help:        "Full analysis run duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
	}
}
