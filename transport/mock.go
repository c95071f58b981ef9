package transport

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/thenaterhood/dnschat/models"
)

// mockDelay simulates a short network round trip so callers exercise the
// same asynchronous path they would against a live server.
const mockDelay = 300 * time.Millisecond

// mockResponses are the canned answers the mock transport cycles through.
var mockResponses = []string{
	"This is a mock response. The chat service could not be reached, so you are talking to a canned answer.",
	"Mock DNS here. Check your network connection if you expected a live reply.",
	"Offline fallback response: your message was sanitized and composed correctly, but no transport reached the service.",
}

// MockTransport returns a deterministic canned answer after a short delay.
// It never fails on its own, which makes it safe as a terminal fallback;
// only caller cancellation can stop it.
type MockTransport struct {
	config TransportConfig
	next   atomic.Uint64
}

func NewMockTransport(config TransportConfig) *MockTransport {
	return &MockTransport{config: config}
}

func (t *MockTransport) Kind() models.TransportKind {
	return models.TransportMock
}

func (t *MockTransport) Query(ctx context.Context, q *models.QueryContext) ([]string, error) {
	t.config.Logger.Debug("answering from mock transport", "name", q.QueryName)

	timer := time.NewTimer(mockDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	i := (t.next.Add(1) - 1) % uint64(len(mockResponses))
	return []string{mockResponses[i]}, nil
}
