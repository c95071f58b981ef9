package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/thenaterhood/dnschat/models"
)

type DummyMetrics struct{}

func (ds DummyMetrics) IncQueriesAnswered()                                        {}
func (ds DummyMetrics) IncQueriesFailed()                                          {}
func (ds DummyMetrics) IncQueriesRateLimited()                                     {}
func (ds DummyMetrics) IncTransportAttempt(_ models.TransportKind)                 {}
func (ds DummyMetrics) IncTransportFailure(_ models.TransportKind)                 {}
func (ds DummyMetrics) IncTransportFallback(_, _ models.TransportKind)             {}
func (ds DummyMetrics) GetTransportTimer(_ models.TransportKind) *prometheus.Timer { return nil }
func (ds DummyMetrics) ObserveTimer(_ *prometheus.Timer)                           {}
func (ds DummyMetrics) Start() error                                               { return nil }
