package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thenaterhood/dnschat/models"
)

type PrometheusMetrics struct {
	queriesAnswered    prometheus.Counter
	queriesFailed      prometheus.Counter
	queriesRateLimited prometheus.Counter
	transportAttempts  prometheus.CounterVec
	transportFailures  prometheus.CounterVec
	transportFallbacks prometheus.CounterVec
	transportDuration  prometheus.HistogramVec

	config MetricsConfig
}

func (ms PrometheusMetrics) IncQueriesAnswered() {
	ms.queriesAnswered.Inc()
}

func (ms PrometheusMetrics) IncQueriesFailed() {
	ms.queriesFailed.Inc()
}

func (ms PrometheusMetrics) IncQueriesRateLimited() {
	ms.queriesRateLimited.Inc()
}

func (ms PrometheusMetrics) IncTransportAttempt(kind models.TransportKind) {
	ms.transportAttempts.WithLabelValues(kind.String()).Inc()
}

func (ms PrometheusMetrics) IncTransportFailure(kind models.TransportKind) {
	ms.transportFailures.WithLabelValues(kind.String()).Inc()
}

func (ms PrometheusMetrics) IncTransportFallback(from, to models.TransportKind) {
	ms.transportFallbacks.WithLabelValues(from.String(), to.String()).Inc()
}

func (ms PrometheusMetrics) GetTransportTimer(kind models.TransportKind) *prometheus.Timer {
	return prometheus.NewTimer(ms.transportDuration.WithLabelValues(kind.String()))
}

func (ms PrometheusMetrics) ObserveTimer(timer *prometheus.Timer) {
	if timer != nil {
		timer.ObserveDuration()
	}
}

func (s PrometheusMetrics) Start() error {

	if s.config.Enable {
		go func() {
			s.config.Logger.Info("Starting prometheus metrics", "port", 2112, "endpoint", "/metrics")
			http.Handle("/metrics", promhttp.Handler())
			http.ListenAndServe(":2112", nil)
		}()
	}

	return nil
}

func newPrometheus(config MetricsConfig) PrometheusMetrics {
	return PrometheusMetrics{
		queriesAnswered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dnschat_queries_answered",
			Help: "The total number of chat queries answered since last start",
		}),
		queriesFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dnschat_queries_failed",
			Help: "The number of chat queries that exhausted every transport and retry",
		}),
		queriesRateLimited: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dnschat_queries_rate_limited",
			Help: "The number of chat queries rejected by the sliding window rate limit",
		}),
		transportAttempts: *promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dnschat_transport_attempts",
			Help: "Transport attempts by transport kind",
		}, []string{"transport"}),
		transportFailures: *promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dnschat_transport_failures",
			Help: "Failed transport attempts by transport kind",
		}, []string{"transport"}),
		transportFallbacks: *promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dnschat_transport_fallbacks",
			Help: "Fallbacks from one transport to the next in the attempt order",
		}, []string{"from", "to"}),
		transportDuration: *promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name: "dnschat_transport_duration_seconds",
			Help: "Duration of individual transport attempts",
		}, []string{"transport"}),
		config: config,
	}
}
