package querylog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/thenaterhood/dnschat/models"
)

const defaultRetention = 10 * time.Minute

// memoryQueryLog emits structured logs for every orchestration step and
// keeps a TTL-evicting record of recent queries so a caller can inspect
// what happened after the fact. Nothing here touches disk.
type memoryQueryLog struct {
	history *bigcache.BigCache
	config  QueryLogConfig
	nextId  atomic.Uint64
}

func newMemoryQueryLog(config QueryLogConfig) (*memoryQueryLog, error) {
	retention := config.Retention
	if retention <= 0 {
		retention = defaultRetention
	}

	history, err := bigcache.New(context.Background(), bigcache.DefaultConfig(retention))
	if err != nil {
		return nil, err
	}

	return &memoryQueryLog{history: history, config: config}, nil
}

func (l *memoryQueryLog) StartQuery(message string) string {
	id := fmt.Sprintf("q%d-%d", time.Now().UnixMilli(), l.nextId.Add(1))

	l.config.Logger.Info("query started", "id", id, "chars", len(message))

	l.store(QueryRecord{
		ID:        id,
		Message:   message,
		StartedAt: time.Now(),
	})

	return id
}

func (l *memoryQueryLog) LogAttempt(id string, outcome models.AttemptOutcome) {
	if outcome.Success {
		l.config.Logger.Info("transport attempt succeeded",
			"id", id, "transport", outcome.Kind, "duration", outcome.Duration)
	} else {
		l.config.Logger.Warn("transport attempt failed",
			"id", id, "transport", outcome.Kind, "duration", outcome.Duration, "error", outcome.Error)
	}

	record, err := l.load(id)
	if err != nil {
		return
	}

	record.Attempts = append(record.Attempts, outcome)
	l.store(*record)
}

func (l *memoryQueryLog) LogFallback(id string, from, to models.TransportKind) {
	l.config.Logger.Info("falling back to next transport", "id", id, "from", from, "to", to)
}

func (l *memoryQueryLog) EndQuery(id string, success bool, response string, method models.TransportKind) {
	l.config.Logger.Info("query finished",
		"id", id, "success", success, "method", method, "chars", len(response))

	record, err := l.load(id)
	if err != nil {
		return
	}

	record.Done = true
	record.Success = success
	record.Response = response
	record.Method = method
	record.EndedAt = time.Now()
	l.store(*record)
}

func (l *memoryQueryLog) Recent(id string) (*QueryRecord, error) {
	return l.load(id)
}

func (l *memoryQueryLog) load(id string) (*QueryRecord, error) {
	raw, err := l.history.Get(id)
	if err == bigcache.ErrEntryNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var record QueryRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

func (l *memoryQueryLog) store(record QueryRecord) {
	value, err := json.Marshal(record)
	if err != nil {
		return
	}

	if err := l.history.Set(record.ID, value); err != nil {
		l.config.Logger.Debug("failed to store query record", "id", record.ID, "err", err)
	}
}
