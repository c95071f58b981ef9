package querylog

import (
	"errors"
	"log/slog"
	"time"

	"github.com/thenaterhood/dnschat/models"
)

// ErrNotFound is returned when no record exists (or still exists) for a
// query id.
var ErrNotFound = errors.New("querylog: no record for query")

type QueryLogConfig struct {
	Enable bool
	Logger *slog.Logger

	// Retention bounds how long completed query records stay readable.
	// Zero means the default of ten minutes.
	Retention time.Duration
}

// QueryLog receives the orchestration lifecycle of every query: start,
// per-transport attempts, fallbacks between transports, and the terminal
// outcome. The core holds no copy of anything it reports here.
//
// Persistence and redaction policy are this side's concern; the history
// kept by the built-in implementation is in-memory only and evicts itself.
type QueryLog interface {
	StartQuery(message string) string
	LogAttempt(id string, outcome models.AttemptOutcome)
	LogFallback(id string, from, to models.TransportKind)
	EndQuery(id string, success bool, response string, method models.TransportKind)
	Recent(id string) (*QueryRecord, error)
}

// QueryRecord is the stored history of one query.
type QueryRecord struct {
	ID        string                  `json:"id"`
	Message   string                  `json:"message"`
	StartedAt time.Time               `json:"started_at"`
	EndedAt   time.Time               `json:"ended_at,omitempty"`
	Attempts  []models.AttemptOutcome `json:"attempts"`
	Success   bool                    `json:"success"`
	Response  string                  `json:"response,omitempty"`
	Method    models.TransportKind    `json:"method,omitempty"`
	Done      bool                    `json:"done"`
}

func GetQueryLog(config QueryLogConfig) (QueryLog, error) {
	if config.Enable {
		log, err := newMemoryQueryLog(config)
		if err != nil {
			return &DummyQueryLog{}, err
		}
		return log, nil
	}
	return &DummyQueryLog{}, nil
}
