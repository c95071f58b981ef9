package models

import (
	"fmt"
	"net"
	"strings"

	"golang.org/x/net/idna"
)

// ValidateServer reports whether server is a syntactically valid DNS server
// target: an IPv4 address, an IPv6 address, or a hostname of dot-separated
// labels (1-63 characters, alphanumeric plus hyphen, no leading or trailing
// hyphen).
//
// This runs before the server string is ever used as a connection target or
// interpolated into a query name, so a malformed or hostile value can't
// inject labels or redirect connections.
func ValidateServer(server string) error {
	if server == "" {
		return fmt.Errorf("%w: server is empty", ErrInvalidServer)
	}

	if strings.Contains(server, ":") {
		// Only IPv6 literals contain colons.
		if ip := net.ParseIP(server); ip != nil && ip.To4() == nil {
			return nil
		}
		return fmt.Errorf("%w: %q is not a valid IPv6 address", ErrInvalidServer, server)
	}

	host := strings.TrimSuffix(server, ".")
	if host == "" {
		return fmt.Errorf("%w: server is empty", ErrInvalidServer)
	}

	// Internationalized hostnames are folded to their ASCII form before
	// the per-label checks.
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}

	labels := strings.Split(host, ".")

	// A string made entirely of numeric labels is an IPv4 literal or
	// nothing: "256.1.1.1" must not slip through as a hostname.
	if allNumeric(labels) {
		if ip := net.ParseIP(host); ip != nil && ip.To4() != nil {
			return nil
		}
		return fmt.Errorf("%w: %q is not a valid IPv4 address", ErrInvalidServer, server)
	}

	for _, label := range labels {
		if err := validateHostLabel(label); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidServer, server, err)
		}
	}

	return nil
}

// IsIPv4 reports whether server is a bare IPv4 literal.
func IsIPv4(server string) bool {
	ip := net.ParseIP(server)
	return ip != nil && ip.To4() != nil && !strings.Contains(server, ":")
}

func allNumeric(labels []string) bool {
	for _, label := range labels {
		if label == "" {
			return false
		}
		for _, c := range label {
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}

func validateHostLabel(label string) error {
	if len(label) < 1 || len(label) > MaxLabelLength {
		return fmt.Errorf("label %q must be 1-63 characters", label)
	}

	if label[0] == '-' || label[len(label)-1] == '-' {
		return fmt.Errorf("label %q must not start or end with a hyphen", label)
	}

	for _, c := range label {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return fmt.Errorf("label %q contains invalid character %q", label, c)
		}
	}

	return nil
}
