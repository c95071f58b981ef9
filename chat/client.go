package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/thenaterhood/dnschat/app"
	"github.com/thenaterhood/dnschat/models"
	"github.com/thenaterhood/dnschat/system"
	"github.com/thenaterhood/dnschat/transport"
)

// Client is the query orchestrator: it validates and sanitizes a message,
// applies rate limiting, walks the ordered transports under the lifecycle
// guard, retries whole attempts with exponential backoff, and returns the
// first parsed answer or one rich terminal error.
type Client struct {
	config *app.AppConfig
	state  *app.AppState

	// transports builds the transport for a kind; tests replace it.
	transports func(kind models.TransportKind) transport.Transport

	orderOpts transport.OrderOptions

	mu       sync.Mutex
	inflight map[string]*inflightQuery
}

// inflightQuery coalesces concurrent identical queries: later callers wait
// on the first caller's result instead of spending more transports.
type inflightQuery struct {
	done   chan struct{}
	answer string
	err    error
}

func NewClient(config *app.AppConfig, state *app.AppState) *Client {
	transportConfig := transport.TransportConfig{
		Logger:  state.Log,
		Metrics: state.Metrics,
		Timeout: config.QueryTimeout(),
	}

	var resolvConf *system.ResolvConf
	if config.RespectResolvConf {
		rc, err := system.NewResolvConfFromPath(config.ResolvConfPath)
		if err != nil {
			state.Log.Warn("failed to read resolvconf", "path", config.ResolvConfPath, "err", err)
		} else {
			resolvConf = rc
			resolvConf.Watch()
		}
	}

	native := transport.NewSystemResolver(config.QueryTimeout(), resolvConf)

	orderOpts := transport.DefaultOrderOptions()
	orderOpts.Preference = config.Preference()
	orderOpts.PreferHTTPS = config.PreferHttps
	orderOpts.MockEnabled = config.EnableMockDns
	orderOpts.ExperimentalAllowed = config.AllowExperimentalTransports

	// The mock transport keeps per-instance state (its response cursor),
	// so build it once and reuse it.
	mock := transport.NewMockTransport(transportConfig)

	return &Client{
		config: config,
		state:  state,
		transports: func(kind models.TransportKind) transport.Transport {
			if kind == models.TransportMock {
				return mock
			}
			return transport.ForKind(kind, transportConfig, native)
		},
		orderOpts: orderOpts,
		inflight:  map[string]*inflightQuery{},
	}
}

// Query sends one chat message and returns the service's answer.
//
// Validation and rate limit failures are fatal immediately. Transport and
// parse failures are never surfaced individually: each one moves the walk
// to the next transport, each exhausted walk backs off and retries, and
// only the terminal aggregate escapes.
func (c *Client) Query(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", models.ErrEmptyMessage
	}

	if !c.state.Limiter.Admit() {
		c.state.Metrics.IncQueriesRateLimited()
		return "", ErrRateLimited
	}

	qctx, err := models.NewQueryContext(message, c.config.Server)
	if err != nil {
		return "", err
	}

	key := qctx.QueryName + "@" + qctx.TargetServer

	c.mu.Lock()
	if existing, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		c.state.Log.Debug("joining identical in-flight query", "name", qctx.QueryName)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-existing.done:
			return existing.answer, existing.err
		}
	}

	call := &inflightQuery{done: make(chan struct{})}
	c.inflight[key] = call
	c.mu.Unlock()

	answer, err := c.run(ctx, qctx)

	call.answer, call.err = answer, err
	close(call.done)

	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()

	return answer, err
}

// run drives the outer retry loop around the ordered transport walk.
func (c *Client) run(ctx context.Context, qctx *models.QueryContext) (string, error) {
	id := c.state.QueryLog.StartQuery(qctx.OriginalMessage)

	var lastAggregate *AggregateError

	for attempt := 0; attempt < c.config.MaxRetries; attempt++ {
		order := transport.Order(c.orderOpts)

		answer, aggregate := c.walkTransports(ctx, id, qctx, order)
		if aggregate == nil {
			c.state.Metrics.IncQueriesAnswered()
			return answer, nil
		}

		lastAggregate = aggregate
		c.state.Log.Warn("transport walk failed",
			"id", id, "attempt", attempt+1, "of", c.config.MaxRetries, "err", aggregate)

		if attempt < c.config.MaxRetries-1 {
			backoff := c.config.RetryDelay() * (1 << attempt)
			select {
			case <-ctx.Done():
				c.state.QueryLog.EndQuery(id, false, "", "")
				c.state.Metrics.IncQueriesFailed()
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	c.state.QueryLog.EndQuery(id, false, "", "")
	c.state.Metrics.IncQueriesFailed()

	return "", fmt.Errorf("%w after %d attempts: %w\n%s",
		ErrRetriesExhausted, c.config.MaxRetries, lastAggregate, troubleshootingChecklist)
}

// walkTransports attempts each transport in order, strictly sequentially,
// stopping at the first answer that parses. Every failure is recoverable
// here; the caller decides whether to retry the whole walk.
func (c *Client) walkTransports(ctx context.Context, id string, qctx *models.QueryContext, order []models.TransportKind) (string, *AggregateError) {
	aggregate := &AggregateError{}

	for i, kind := range order {
		answer, _, err := c.attempt(ctx, id, qctx, kind)
		if err == nil {
			c.state.QueryLog.EndQuery(id, true, answer, kind)
			return answer, nil
		}

		aggregate.Failures = append(aggregate.Failures, TransportFailure{Kind: kind, Err: err})

		if i < len(order)-1 {
			c.state.Metrics.IncTransportFallback(kind, order[i+1])
			c.state.QueryLog.LogFallback(id, kind, order[i+1])
		}
	}

	return "", aggregate
}

// attempt runs a single transport under the lifecycle guard and parses
// whatever TXT records it produced.
func (c *Client) attempt(ctx context.Context, id string, qctx *models.QueryContext, kind models.TransportKind) (string, models.AttemptOutcome, error) {
	tr := c.transports(kind)
	c.state.Metrics.IncTransportAttempt(kind)

	attemptCtx, cancel := context.WithTimeout(ctx, c.config.QueryTimeout())
	defer cancel()

	start := time.Now()

	var records []string
	err := c.state.Lifecycle.Guard(func() error {
		var qErr error
		records, qErr = tr.Query(attemptCtx, qctx)
		return qErr
	})

	var answer string
	if err == nil {
		answer, err = models.ParseTXTRecords(records)
	}

	outcome := models.AttemptOutcome{
		Kind:     kind,
		Success:  err == nil,
		Duration: time.Since(start),
	}
	if err != nil {
		outcome.Error = err.Error()
		c.state.Metrics.IncTransportFailure(kind)
		if isArchitectural(err) {
			c.state.Log.Debug("transport is a documented dead end", "id", id, "transport", kind)
		}
	}

	c.state.QueryLog.LogAttempt(id, outcome)

	if err != nil {
		return "", outcome, err
	}
	return answer, outcome, nil
}

// TestTransport runs a single transport once against a fixed probe message
// and reports the outcome. The rate limiter still applies; the retry loop
// and fallback order do not.
func (c *Client) TestTransport(ctx context.Context, kind models.TransportKind) (models.AttemptOutcome, error) {
	if !c.state.Limiter.Admit() {
		c.state.Metrics.IncQueriesRateLimited()
		return models.AttemptOutcome{Kind: kind}, ErrRateLimited
	}

	qctx, err := models.NewQueryContext("transport test", c.config.Server)
	if err != nil {
		return models.AttemptOutcome{Kind: kind}, err
	}

	id := c.state.QueryLog.StartQuery(qctx.OriginalMessage)
	answer, outcome, err := c.attempt(ctx, id, qctx, kind)

	if err != nil {
		c.state.QueryLog.EndQuery(id, false, "", kind)
		return outcome, err
	}

	c.state.QueryLog.EndQuery(id, true, answer, kind)
	return outcome, nil
}
