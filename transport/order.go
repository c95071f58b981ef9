package transport

import (
	"runtime"

	"github.com/thenaterhood/dnschat/models"
)

// OrderOptions carries the per-query inputs to the ordering policy.
type OrderOptions struct {
	Preference          models.Preference
	PreferHTTPS         bool
	MockEnabled         bool
	ExperimentalAllowed bool

	// RawSockets reports whether the platform can open UDP/TCP sockets
	// at all. Browser/wasm builds cannot.
	RawSockets bool
}

// DefaultOrderOptions fills in the platform capability for this build.
func DefaultOrderOptions() OrderOptions {
	return OrderOptions{
		Preference: models.PreferenceAutomatic,
		RawSockets: runtime.GOOS != "js",
	}
}

// Order produces the ordered list of transports to attempt for one query.
// The same query always walks transports in exactly this order; nothing is
// raced concurrently.
func Order(opts OrderOptions) []models.TransportKind {
	var order []models.TransportKind

	switch {
	case !opts.RawSockets:
		// Without sockets HTTPS is the only wire option, even though
		// it is a documented dead end against the chat service.
		order = []models.TransportKind{models.TransportHTTPS}

	case !opts.ExperimentalAllowed:
		// The platform resolver is the sole sanctioned path until the
		// user opts in to raw-socket transports.
		order = []models.TransportKind{models.TransportNative}

	default:
		switch opts.Preference {
		case models.PreferenceUDPOnly:
			order = []models.TransportKind{models.TransportUDP}
		case models.PreferenceNeverHTTPS:
			order = []models.TransportKind{models.TransportNative, models.TransportUDP, models.TransportTCP}
		case models.PreferenceHTTPSFirst:
			order = []models.TransportKind{models.TransportHTTPS, models.TransportNative, models.TransportUDP, models.TransportTCP}
		case models.PreferenceNativeFirst:
			order = []models.TransportKind{models.TransportNative, models.TransportUDP, models.TransportTCP, models.TransportHTTPS}
		default:
			if opts.PreferHTTPS {
				order = []models.TransportKind{models.TransportHTTPS, models.TransportNative, models.TransportUDP, models.TransportTCP}
			} else {
				order = []models.TransportKind{models.TransportNative, models.TransportUDP, models.TransportTCP, models.TransportHTTPS}
			}
		}
	}

	if opts.MockEnabled {
		order = append(order, models.TransportMock)
	}

	return order
}
