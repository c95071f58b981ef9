package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for message validation and response parsing.
var (
	// ErrEmptyMessage is returned when a message is empty or all whitespace.
	ErrEmptyMessage = errors.New("models: message is empty")

	// ErrMessageTooLong is returned when a raw message exceeds the
	// maximum accepted length before sanitization.
	ErrMessageTooLong = errors.New("models: message is too long")

	// ErrControlCharacter is returned when a message contains a control
	// character. These are rejected outright rather than stripped so a
	// caller can't smuggle bytes past the sanitizer.
	ErrControlCharacter = errors.New("models: message contains control characters")

	// ErrUnsafeCharacter is returned when a message contains HTML/XML
	// significant characters (< > ' " &).
	ErrUnsafeCharacter = errors.New("models: message contains unsafe characters")

	// ErrUnsanitizableMessage is returned when nothing printable is left
	// after sanitization.
	ErrUnsanitizableMessage = errors.New("models: message is empty after sanitization")

	// ErrInvalidServer is returned when a DNS server string is neither a
	// valid IP address nor a valid hostname.
	ErrInvalidServer = errors.New("models: invalid DNS server")

	// ErrEmptyLabel is returned when a query label is empty after
	// trailing dots are stripped.
	ErrEmptyLabel = errors.New("models: query label is empty")

	// ErrNameTooLong is returned when a composed query name would exceed
	// the 255 octet DNS name limit on the wire.
	ErrNameTooLong = errors.New("models: query name exceeds 255 octets")

	// ErrEmptyResponse is returned when a transport produced no TXT records.
	ErrEmptyResponse = errors.New("models: empty TXT response")

	// ErrBlankResponse is returned when the reassembled response is blank.
	ErrBlankResponse = errors.New("models: blank TXT response")
)

// ConflictingParts indicates two multi-part TXT records declared the same
// part number with different content. This is data corruption; the parser
// fails rather than guessing which copy is authoritative.
type ConflictingParts struct {
	Part int
}

func (e ConflictingParts) Error() string {
	return fmt.Sprintf("conflicting content for response part %d", e.Part)
}

// IncompleteResponse indicates a multi-part TXT response was missing at
// least one declared part.
type IncompleteResponse struct {
	Missing int
	Total   int
}

func (e IncompleteResponse) Error() string {
	return fmt.Sprintf("incomplete response: missing part %d of %d", e.Missing, e.Total)
}
