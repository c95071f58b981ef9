package transport

import (
	"context"
	"fmt"

	"github.com/miekg/dns"

	"github.com/thenaterhood/dnschat/models"
)

// udpTransport sends the encoded query as a single datagram to server:53
// and waits for one reply datagram or the deadline.
type udpTransport struct {
	config TransportConfig
}

func (t udpTransport) Kind() models.TransportKind {
	return models.TransportUDP
}

func (t udpTransport) Query(ctx context.Context, q *models.QueryContext) ([]string, error) {
	timer := t.config.Metrics.GetTransportTimer(models.TransportUDP)
	defer t.config.Metrics.ObserveTimer(timer)

	t.config.Logger.Debug("attempting udp dns query", "name", q.QueryName, "server", q.TargetServer)

	client := &dns.Client{
		Net:     "udp",
		Timeout: t.config.timeout(),
	}

	resp, _, err := client.ExchangeContext(ctx, newTXTQuestion(q.QueryName), serverAddr(q.TargetServer))
	if err != nil {
		return nil, classifyNetError(models.TransportUDP, err)
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
