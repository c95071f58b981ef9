package app

import (
	"log/slog"

	"github.com/thenaterhood/dnschat/lifecycle"
	"github.com/thenaterhood/dnschat/metrics"
	"github.com/thenaterhood/dnschat/querylog"
	"github.com/thenaterhood/dnschat/ratelimit"
)

// AppState is the long-lived, process-scoped state shared by every query:
// the logger, metrics, query log, the sliding-window rate limiter and the
// foreground/background flag. Individual queries never outlive a call;
// this does.
type AppState struct {
	Log       *slog.Logger
	Metrics   metrics.MetricsInterface
	QueryLog  querylog.QueryLog
	Limiter   *ratelimit.Limiter
	Lifecycle *lifecycle.State
}

// NewAppState wires up the default collaborators for a config. The caller
// may replace any field before handing the state to a client.
func NewAppState(config *AppConfig, log *slog.Logger) (*AppState, error) {
	m := metrics.GetMetrics(metrics.MetricsConfig{
		Enable: !config.DisableMetrics,
		Logger: log,
	})

	qlog, err := querylog.GetQueryLog(querylog.QueryLogConfig{
		Enable: !config.DisableQueryLog,
		Logger: log,
	})
	if err != nil {
		log.Warn("query log unavailable - continuing without history", "err", err)
	}

	return &AppState{
		Log:       log,
		Metrics:   m,
		QueryLog:  qlog,
		Limiter:   ratelimit.New(config.RateLimit, config.RateWindow()),
		Lifecycle: lifecycle.NewState(),
	}, nil
}
