package models

import (
	"strings"
)

const (
	// MaxMessageLength is the maximum raw message length accepted
	// before sanitization.
	MaxMessageLength = 255

	// MaxLabelLength is the DNS label limit from RFC 1035.
	MaxLabelLength = 63
)

// unsafeChars are HTML/XML significant characters that are rejected rather
// than stripped, since their presence suggests injection rather than chat.
const unsafeChars = `<>'"&`

// SanitizeMessage turns arbitrary user text into a DNS-label-safe string.
//
// Messages containing control characters or HTML/XML significant characters
// are rejected. Otherwise the message is reduced to printable ASCII, internal
// whitespace is collapsed, characters with meaning inside a DNS name
// (dots, semicolons, backslashes) become underscores, and the result is
// trimmed and truncated to the 63 character label limit.
//
// Sanitization is idempotent: sanitizing an already sanitized label returns
// it unchanged.
func SanitizeMessage(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyMessage
	}

	if len([]rune(raw)) > MaxMessageLength {
		return "", ErrMessageTooLong
	}

	for _, r := range raw {
		if isControl(r) {
			return "", ErrControlCharacter
		}
		if strings.ContainsRune(unsafeChars, r) {
			return "", ErrUnsafeCharacter
		}
	}

	// Keep printable ASCII only. Everything else (emoji, accented
	// characters) is dropped rather than transliterated.
	var b strings.Builder
	for _, r := range raw {
		if r >= 0x20 && r <= 0x7e {
			b.WriteRune(r)
		}
	}

	label := strings.Join(strings.Fields(b.String()), " ")

	replacer := strings.NewReplacer(".", "_", ";", "_", `\`, "_")
	label = replacer.Replace(label)

	if len(label) > MaxLabelLength {
		label = label[:MaxLabelLength]
		label = strings.TrimSpace(label)
	}

	if label == "" {
		return "", ErrUnsanitizableMessage
	}

	return label, nil
}

func isControl(r rune) bool {
	return (r >= 0x00 && r <= 0x1f) || (r >= 0x7f && r <= 0x9f)
}
