package transport

import (
	"context"
	"fmt"

	"github.com/miekg/dns"

	"github.com/thenaterhood/dnschat/models"
)

// tcpTransport carries the same encoded query over a TCP connection to
// server:53, with the 2 byte big-endian length framing from RFC 7766.
// The dns client handles the framing and closes the connection on every
// exit path, including timeouts.
type tcpTransport struct {
	config TransportConfig
}

func (t tcpTransport) Kind() models.TransportKind {
	return models.TransportTCP
}

func (t tcpTransport) Query(ctx context.Context, q *models.QueryContext) ([]string, error) {
	timer := t.config.Metrics.GetTransportTimer(models.TransportTCP)
	defer t.config.Metrics.ObserveTimer(timer)

	t.config.Logger.Debug("attempting tcp dns query", "name", q.QueryName, "server", q.TargetServer)

	client := &dns.Client{
		Net:     "tcp",
		Timeout: t.config.timeout(),
	}

	resp, _, err := client.ExchangeContext(ctx, newTXTQuestion(q.QueryName), serverAddr(q.TargetServer))
	if err != nil {
		return nil, classifyNetError(models.TransportTCP, err)
	}

	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("%w: %s", ErrBadRcode, dns.RcodeToString[resp.Rcode])
	}

	records := txtStrings(resp)
	if len(records) == 0 {
		return nil, ErrNoTXTRecords
	}

	return records, nil
}
