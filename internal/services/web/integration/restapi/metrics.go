package restapi

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK = "ok"
)

// Metrics records API call counts and latencies by collection, method and
// outcome ("ok" or an ErrorKind).
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics builds API metrics and registers them with reg when non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "octofit",
			Subsystem: "restapi",
			Name:      "requests_total",
			Help:      "REST API calls issued by the web service.",
		}, []string{"collection", "method", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "octofit",
			Subsystem: "restapi",
			Name:      "request_duration_seconds",
			Help:      "REST API call latency.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"collection", "method", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(collection, method, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(collection, method, outcome).Inc()
	m.duration.WithLabelValues(collection, method, outcome).Observe(elapsed.Seconds())
}

func outcomeOf(err error) string {
	if err == nil {
		return outcomeOK
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return string(apiErr.Kind)
	}
	return string(KindTransport)
}
