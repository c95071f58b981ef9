package chat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thenaterhood/dnschat/models"
	"github.com/thenaterhood/dnschat/transport"
)

var (
	// ErrRateLimited is returned when the sliding window rejects a query.
	// The call fails immediately; the caller may retry after the window
	// drains.
	ErrRateLimited = errors.New("chat: rate limit exceeded, try again in a minute")

	// ErrRetriesExhausted is the terminal failure after every transport
	// in every outer attempt has failed.
	ErrRetriesExhausted = errors.New("chat: all retries exhausted")
)

// TransportFailure pairs a transport with the error that stopped it.
type TransportFailure struct {
	Kind models.TransportKind
	Err  error
}

// AggregateError collects every transport failure from one outer attempt.
// Its text names the transports tried and adds targeted guidance, because
// the caller only ever sees this or a parsed answer, never raw socket
// errors alone.
type AggregateError struct {
	Failures []TransportFailure
}

func (e *AggregateError) Error() string {
	kinds := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		kinds = append(kinds, f.Kind.String())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "all transports failed (%s)", strings.Join(kinds, ", "))

	for _, f := range e.Failures {
		fmt.Fprintf(&b, "; %s: %v", f.Kind, f.Err)
	}

	for _, hint := range e.hints() {
		b.WriteString(". ")
		b.WriteString(hint)
	}

	return b.String()
}

func (e *AggregateError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// hints derives remediation guidance from which transports were attempted
// and how they failed.
func (e *AggregateError) hints() []string {
	var hints []string

	udpFailed := e.attempted(models.TransportUDP)
	tcpFailed := e.attempted(models.TransportTCP)

	if udpFailed && tcpFailed {
		hints = append(hints, "Both UDP and TCP DNS queries failed, which usually means this network restricts direct DNS traffic; try a different network")
	}

	if e.attempted(models.TransportHTTPS) {
		hints = append(hints, "DNS-over-HTTPS cannot reach the chat service by design, so the HTTPS attempt was expected to fail")
	}

	if len(e.Failures) >= 1 && !udpFailed && !tcpFailed && !e.attempted(models.TransportHTTPS) {
		hints = append(hints, "Only the platform resolver was attempted; enable experimental transports to let UDP and TCP DNS queries through")
	}

	return hints
}

func (e *AggregateError) attempted(kind models.TransportKind) bool {
	for _, f := range e.Failures {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// troubleshootingChecklist is appended to the terminal error so the user
// gets actionable steps instead of a bare failure.
const troubleshootingChecklist = `Troubleshooting:
1. Check that this device has a working internet connection.
2. Verify the DNS server is reachable, e.g. dig @ch.at "hello" TXT.
3. Switch networks (cellular instead of Wi-Fi, or vice versa) - corporate and public networks often block port 53.
4. Enable experimental transports so UDP and TCP can be attempted.
5. Enable the mock transport to confirm everything above the network layer works.`

// isArchitectural reports whether err is the HTTPS transport's permanent
// failure rather than a live network problem.
func isArchitectural(err error) bool {
	return errors.Is(err, transport.ErrArchitecturalLimitation)
}
