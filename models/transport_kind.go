package models

import (
	"strings"
	"time"
)

// TransportKind identifies one concrete mechanism for delivering a query
// and receiving its TXT answer.
type TransportKind string

const (
	TransportNative TransportKind = "native"
	TransportUDP    TransportKind = "udp"
	TransportTCP    TransportKind = "tcp"
	TransportHTTPS  TransportKind = "https"
	TransportMock   TransportKind = "mock"
)

func (k TransportKind) String() string {
	return string(k)
}

// Preference selects how the transport order is built for a query.
type Preference string

const (
	PreferenceAutomatic   Preference = "automatic"
	PreferenceUDPOnly     Preference = "udp-only"
	PreferenceNeverHTTPS  Preference = "never-https"
	PreferenceHTTPSFirst  Preference = "prefer-https"
	PreferenceNativeFirst Preference = "native-first"
)

// ParsePreference maps a configuration string to a Preference, defaulting
// to automatic for anything unrecognized.
func ParsePreference(s string) Preference {
	switch Preference(strings.ToLower(strings.TrimSpace(s))) {
	case PreferenceUDPOnly:
		return PreferenceUDPOnly
	case PreferenceNeverHTTPS:
		return PreferenceNeverHTTPS
	case PreferenceHTTPSFirst:
		return PreferenceHTTPSFirst
	case PreferenceNativeFirst:
		return PreferenceNativeFirst
	default:
		return PreferenceAutomatic
	}
}

// AttemptOutcome describes one transport attempt for one query. Outcomes
// are handed to the query log and metrics; the core keeps no copy.
type AttemptOutcome struct {
	Kind     TransportKind `json:"kind"`
	Success  bool          `json:"success"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}
