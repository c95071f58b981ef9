package models

import (
	"fmt"
	"strings"
)

// DefaultZone is the zone queried when no server is configured or the
// configured server is a bare IP address.
const DefaultZone = "ch.at"

// maxNameOctets is the RFC 1035 limit on an encoded DNS name: one length
// octet plus the content of each label, plus the root terminator.
const maxNameOctets = 255

// ComposeQueryName joins a sanitized label to a zone to build the fully
// qualified name actually queried.
//
// The zone is derived from the server: an empty server or a bare IPv4
// literal means the query is answered by the default zone, otherwise the
// server name itself (lowercased, trailing dot stripped) is the zone.
//
// The server is re-validated here even though callers are expected to have
// validated it already; the composed name is what goes on the wire.
func ComposeQueryName(label, server string) (string, error) {
	label = strings.TrimRight(label, ".")
	if strings.TrimSpace(label) == "" {
		return "", ErrEmptyLabel
	}

	zone := DefaultZone
	if server != "" {
		if err := ValidateServer(server); err != nil {
			return "", err
		}
		// A colon can't appear in a DNS name, so IPv6 literals fall
		// back to the default zone the same way IPv4 literals do.
		if !IsIPv4(server) && !strings.Contains(server, ":") {
			zone = strings.ToLower(strings.TrimRight(server, "."))
		}
	}

	name := label + "." + zone

	if encodedNameLength(name) > maxNameOctets {
		return "", fmt.Errorf("%w: %q", ErrNameTooLong, name)
	}

	return name, nil
}

// encodedNameLength returns the length of name in DNS wire encoding:
// a length octet per label plus the label bytes, plus the root octet.
func encodedNameLength(name string) int {
	total := 1
	for _, label := range strings.Split(name, ".") {
		total += 1 + len(label)
	}
	return total
}
