package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"runtime"
	"time"

	"github.com/thenaterhood/dnschat/models"
	"github.com/thenaterhood/dnschat/system"
)

// NativeCapability describes what the platform resolver can do. Absence of
// a capability is a typed result, not a runtime guess.
type NativeCapability struct {
	Available            bool
	SupportsCustomServer bool
	Platform             string
}

// NativeResolver is the platform-owned resolver collaborator. The transport
// treats it as opaque and only classifies its failures.
type NativeResolver interface {
	Capability() NativeCapability
	QueryTXT(ctx context.Context, server, queryName string) ([]string, error)
}

// systemResolver resolves through net.Resolver. A custom server is reached
// by overriding the dialer target; with no custom server the nameservers
// from resolv.conf apply.
type systemResolver struct {
	timeout    time.Duration
	resolvConf *system.ResolvConf
}

// NewSystemResolver returns the default NativeResolver for this platform.
func NewSystemResolver(timeout time.Duration, resolvConf *system.ResolvConf) NativeResolver {
	return &systemResolver{timeout: timeout, resolvConf: resolvConf}
}

func (r *systemResolver) Capability() NativeCapability {
	available := runtime.GOOS != "js"
	return NativeCapability{
		Available:            available,
		SupportsCustomServer: available,
		Platform:             runtime.GOOS,
	}
}

func (r *systemResolver) QueryTXT(ctx context.Context, server, queryName string) ([]string, error) {
	resolver := net.DefaultResolver

	if server == "" && r.resolvConf != nil {
		server = r.resolvConf.FirstNameserver()
	}

	if server != "" {
		addr := serverAddr(server)
		resolver = &net.Resolver{
			PreferGo: true,
			Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
				d := net.Dialer{Timeout: r.timeout}
				return d.DialContext(ctx, network, addr)
			},
		}
	}

	return resolver.LookupTXT(ctx, queryName)
}

// nativeTransport delegates to the platform resolver when it reports
// availability; otherwise it fails fast so the orchestrator can move on
// to the next transport without waiting out a timeout.
type nativeTransport struct {
	config   TransportConfig
	resolver NativeResolver
}

func (t nativeTransport) Kind() models.TransportKind {
	return models.TransportNative
}

func (t nativeTransport) Query(ctx context.Context, q *models.QueryContext) ([]string, error) {
	capability := t.resolver.Capability()

	if !capability.Available {
		return nil, fmt.Errorf("%w on %s", ErrNotAvailable, capability.Platform)
	}
	if q.TargetServer != "" && !capability.SupportsCustomServer {
		return nil, fmt.Errorf("%w: custom servers unsupported on %s", ErrNotAvailable, capability.Platform)
	}

	timer := t.config.Metrics.GetTransportTimer(models.TransportNative)
	defer t.config.Metrics.ObserveTimer(timer)

	t.config.Logger.Debug("attempting native dns query", "name", q.QueryName, "server", q.TargetServer)

	ctx, cancel := context.WithTimeout(ctx, t.config.timeout())
	defer cancel()

	records, err := t.resolver.QueryTXT(ctx, q.TargetServer, q.QueryName)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return nil, fmt.Errorf("native resolver found no records: %w", err)
		}
		return nil, classifyNetError(models.TransportNative, err)
	}

	// LookupTXT drops record boundaries inside a single RR but keeps
	// one string per TXT record, which is what the parser needs.
	var nonEmpty []string
	for _, record := range records {
		if record != "" {
			nonEmpty = append(nonEmpty, record)
		}
	}

	if len(nonEmpty) == 0 {
		return nil, ErrNoTXTRecords
	}

	return nonEmpty, nil
}
