package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"

	"github.com/thenaterhood/dnschat/models"
)

// Sentinel errors for transport failures. The orchestrator's final guidance
// text depends on which of these it saw, so each network failure mode gets
// its own identity instead of one opaque socket error.
var (
	// ErrTimeout is returned when an attempt exceeds its deadline.
	ErrTimeout = errors.New("transport: query timed out")

	// ErrPortBlocked is returned when UDP port 53 is being rejected,
	// which usually means a firewall or captive portal is in the way.
	ErrPortBlocked = errors.New("transport: DNS port blocked")

	// ErrConnectionRefused is returned when a TCP connection to the
	// server is actively refused.
	ErrConnectionRefused = errors.New("transport: connection refused")

	// ErrPermissionDenied is returned when the platform denies the
	// socket operation.
	ErrPermissionDenied = errors.New("transport: permission denied")

	// ErrNetworkUnreachable is returned when no route to the server
	// exists.
	ErrNetworkUnreachable = errors.New("transport: network unreachable")

	// ErrNoTXTRecords is returned when a response decoded cleanly but
	// carried no TXT answers.
	ErrNoTXTRecords = errors.New("transport: response contains no TXT records")

	// ErrBadRcode is returned when the server answered with a non zero
	// response code.
	ErrBadRcode = errors.New("transport: server returned an error rcode")

	// ErrArchitecturalLimitation marks the HTTPS transport's permanent
	// failure mode; see the httpsTransport doc comment.
	ErrArchitecturalLimitation = errors.New("transport: DNS-over-HTTPS cannot reach the chat service")

	// ErrNotAvailable is returned when the platform native resolver is
	// missing or can't target a custom server.
	ErrNotAvailable = errors.New("transport: native resolver not available")
)

// classifyNetError maps a raw socket/resolver error onto the transport
// error taxonomy, keeping the original error text for the logs.
func classifyNetError(kind models.TransportKind, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded), os.IsTimeout(err):
		return fmt.Errorf("%w (%s): %v", ErrTimeout, kind, err)
	case errors.Is(err, syscall.ECONNREFUSED):
		// ICMP port-unreachable surfaces as ECONNREFUSED on a UDP
		// socket; on TCP it is an ordinary refused connection.
		if kind == models.TransportUDP {
			return fmt.Errorf("%w: %v", ErrPortBlocked, err)
		}
		return fmt.Errorf("%w: %v", ErrConnectionRefused, err)
	case errors.Is(err, syscall.EACCES), errors.Is(err, syscall.EPERM):
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.EHOSTUNREACH):
		return fmt.Errorf("%w: %v", ErrNetworkUnreachable, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w (%s): %v", ErrTimeout, kind, err)
	}

	return fmt.Errorf("%s query failed: %w", kind, err)
}
