package transport

import (
	"context"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/thenaterhood/dnschat/metrics"
	"github.com/thenaterhood/dnschat/models"
)

// DNSPort is the well known DNS port queries are sent to.
const DNSPort = "53"

// DefaultTimeout bounds a single transport attempt.
const DefaultTimeout = 10 * time.Second

type TransportConfig struct {
	Logger  *slog.Logger
	Metrics metrics.MetricsInterface
	Timeout time.Duration
}

// Transport is one concrete mechanism for delivering a TXT query and
// collecting its answer strings. Implementations must release their
// sockets and timers on every exit path: success, error, and timeout.
type Transport interface {
	Kind() models.TransportKind
	Query(ctx context.Context, q *models.QueryContext) ([]string, error)
}

// ForKind builds the transport for a given kind. The native transport
// needs the platform resolver collaborator; the rest only need config.
func ForKind(kind models.TransportKind, config TransportConfig, native NativeResolver) Transport {
	switch kind {
	case models.TransportNative:
		return nativeTransport{config: config, resolver: native}
	case models.TransportUDP:
		return udpTransport{config: config}
	case models.TransportTCP:
		return tcpTransport{config: config}
	case models.TransportHTTPS:
		return httpsTransport{config: config}
	default:
		return NewMockTransport(config)
	}
}

// newTXTQuestion builds the single-question TXT query every wire transport
// sends: random 16 bit transaction id, recursion desired, class IN.
func newTXTQuestion(queryName string) *dns.Msg {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(queryName), dns.TypeTXT)
	return m
}

// serverAddr normalizes a server string into a dialable host:port.
func serverAddr(server string) string {
	if server == "" {
		server = models.DefaultZone
	}
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(strings.TrimSuffix(server, "."), DNSPort)
}

// txtStrings flattens the TXT answers of a response into one string per
// record, dropping zero length strings.
func txtStrings(msg *dns.Msg) []string {
	var records []string
	for _, rr := range msg.Answer {
		txt, ok := rr.(*dns.TXT)
		if !ok {
			continue
		}
		joined := strings.Join(txt.Txt, "")
		if joined == "" {
			continue
		}
		records = append(records, joined)
	}
	return records
}

func (tc TransportConfig) timeout() time.Duration {
	if tc.Timeout > 0 {
		return tc.Timeout
	}
	return DefaultTimeout
}
