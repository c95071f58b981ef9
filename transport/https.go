package transport

import (
	"context"
	"fmt"

	"github.com/thenaterhood/dnschat/models"
)

// httpsTransport is a documented dead end, kept so the ordering policy can
// place it and the logs can show it was skipped.
//
// Public DNS-over-HTTPS resolvers (Google, Cloudflare) answer TXT lookups
// from their own recursive infrastructure. The chat service synthesizes
// TXT answers itself and is not in the public DNS tree those resolvers
// walk, so a DoH query can never reach it. This transport therefore fails
// unconditionally rather than pretending a DoH client would help.
type httpsTransport struct {
	config TransportConfig
}

func (t httpsTransport) Kind() models.TransportKind {
	return models.TransportHTTPS
}

func (t httpsTransport) Query(_ context.Context, q *models.QueryContext) ([]string, error) {
	t.config.Logger.Debug("skipping https dns query", "name", q.QueryName)

	return nil, fmt.Errorf("%w: public DoH resolvers answer from their own infrastructure and cannot return the service's custom TXT records", ErrArchitecturalLimitation)
}
