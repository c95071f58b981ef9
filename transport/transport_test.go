package transport

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/miekg/dns"

	"github.com/thenaterhood/dnschat/metrics"
	"github.com/thenaterhood/dnschat/models"
)

func testConfig() TransportConfig {
	return TransportConfig{
		Logger:  slog.New(slog.NewTextHandler(os.Stderr, nil)),
		Metrics: metrics.DummyMetrics{},
		Timeout: 2 * time.Second,
	}
}

// runTestDnsServer starts a TXT-answering DNS server on a random local
// port and returns its address. The handler decides the answer records
// from the first label of the query name.
func runTestDnsServer(t *testing.T, net string) string {
	t.Helper()

	mux := dns.NewServeMux()
	mux.HandleFunc(".", func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(r)

		q := r.Question[0]
		label := strings.SplitN(q.Name, ".", 2)[0]

		var answers []string
		switch label {
		case "multi":
			answers = []string{"1/2:Hello ", "2/2:world"}
		case "servfail":
			m.Rcode = dns.RcodeServerFailure
		case "empty":
		default:
			answers = []string{"echo: " + label}
		}

		for _, a := range answers {
			m.Answer = append(m.Answer, &dns.TXT{
				Hdr: dns.RR_Header{Name: q.Name, Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: 0},
				Txt: []string{a},
			})
		}

		w.WriteMsg(m)
	})

	server := &dns.Server{Addr: "127.0.0.1:0", Net: net, Handler: mux}

	waitLock := sync.Mutex{}
	server.NotifyStartedFunc = waitLock.Unlock
	waitLock.Lock()

	go server.ListenAndServe()
	waitLock.Lock()

	t.Cleanup(func() { server.Shutdown() })

	if net == "tcp" {
		return server.Listener.Addr().String()
	}
	return server.PacketConn.LocalAddr().String()
}

func testQueryContext(label, server string) *models.QueryContext {
	return &models.QueryContext{
		OriginalMessage: label,
		Label:           label,
		QueryName:       label + "." + models.DefaultZone,
		TargetServer:    server,
	}
}

func TestUdpTransportRoundTrip(t *testing.T) {
	addr := runTestDnsServer(t, "udp")
	tr := udpTransport{config: testConfig()}

	records, err := tr.Query(context.Background(), testQueryContext("hello", addr))
	if err != nil {
		t.Fatalf("udp query failed: %v", err)
	}

	if len(records) != 1 || records[0] != "echo: hello" {
		t.Errorf("records = %v, expected one echo record", records)
	}
}

func TestUdpTransportMultiPartRecords(t *testing.T) {
	addr := runTestDnsServer(t, "udp")
	tr := udpTransport{config: testConfig()}

	records, err := tr.Query(context.Background(), testQueryContext("multi", addr))
	if err != nil {
		t.Fatalf("udp query failed: %v", err)
	}

	answer, err := models.ParseTXTRecords(records)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if answer != "Hello world" {
		t.Errorf("answer = %q, expected %q", answer, "Hello world")
	}
}

func TestUdpTransportBadRcode(t *testing.T) {
	addr := runTestDnsServer(t, "udp")
	tr := udpTransport{config: testConfig()}

	_, err := tr.Query(context.Background(), testQueryContext("servfail", addr))
	if !errors.Is(err, ErrBadRcode) {
		t.Errorf("error = %v, expected ErrBadRcode", err)
	}
}

func TestUdpTransportNoRecords(t *testing.T) {
	addr := runTestDnsServer(t, "udp")
	tr := udpTransport{config: testConfig()}

	_, err := tr.Query(context.Background(), testQueryContext("empty", addr))
	if !errors.Is(err, ErrNoTXTRecords) {
		t.Errorf("error = %v, expected ErrNoTXTRecords", err)
	}
}

func TestTcpTransportRoundTrip(t *testing.T) {
	addr := runTestDnsServer(t, "tcp")
	tr := tcpTransport{config: testConfig()}

	records, err := tr.Query(context.Background(), testQueryContext("hello", addr))
	if err != nil {
		t.Fatalf("tcp query failed: %v", err)
	}

	if len(records) != 1 || records[0] != "echo: hello" {
		t.Errorf("records = %v, expected one echo record", records)
	}
}

func TestTcpTransportConnectionRefused(t *testing.T) {
	tr := tcpTransport{config: testConfig()}

	// Port 1 on loopback has nothing listening.
	_, err := tr.Query(context.Background(), testQueryContext("hello", "127.0.0.1:1"))
	if err == nil {
		t.Fatal("query against a closed port unexpectedly succeeded")
	}
	if !errors.Is(err, ErrConnectionRefused) && !errors.Is(err, ErrPermissionDenied) && !errors.Is(err, ErrTimeout) {
		t.Errorf("error = %v, expected a classified transport error", err)
	}
}

func TestServerAddr(t *testing.T) {
	testCases := map[string]string{
		"ch.at":                "ch.at:53",
		"ch.at.":               "ch.at:53",
		"8.8.8.8":              "8.8.8.8:53",
		"127.0.0.1:5553":       "127.0.0.1:5553",
		"2001:4860:4860::8888": "[2001:4860:4860::8888]:53",
		"":                     models.DefaultZone + ":53",
	}

	for input, expected := range testCases {
		if got := serverAddr(input); got != expected {
			t.Errorf("serverAddr(%q) = %q, expected %q", input, got, expected)
		}
	}
}
