package metrics

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thenaterhood/dnschat/models"
)

type MetricsConfig struct {
	Enable bool
	Logger *slog.Logger
}

type MetricsInterface interface {
	IncQueriesAnswered()
	IncQueriesFailed()
	IncQueriesRateLimited()
	IncTransportAttempt(kind models.TransportKind)
	IncTransportFailure(kind models.TransportKind)
	IncTransportFallback(from, to models.TransportKind)
	GetTransportTimer(kind models.TransportKind) *prometheus.Timer
	ObserveTimer(*prometheus.Timer)
	Start() error
}

func GetMetrics(config MetricsConfig) MetricsInterface {
	if config.Enable {
		return newPrometheus(config)
	}
	return DummyMetrics{}
}
