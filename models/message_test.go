package models

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeMessage(t *testing.T) {
	type test struct {
		name     string
		input    string
		expected string
		err      error
	}

	tests := []test{
		{
			name:     "simple message passes through",
			input:    "Hello world",
			expected: "Hello world",
		},
		{
			name:  "empty message is rejected",
			input: "",
			err:   ErrEmptyMessage,
		},
		{
			name:  "whitespace only message is rejected",
			input: "   \t  ",
			err:   ErrEmptyMessage,
		},
		{
			name:  "overlong message is rejected",
			input: strings.Repeat("a", 256),
			err:   ErrMessageTooLong,
		},
		{
			name:  "control character is rejected",
			input: "hello\x01world",
			err:   ErrControlCharacter,
		},
		{
			name:  "newline is rejected",
			input: "hello\nworld",
			err:   ErrControlCharacter,
		},
		{
			name:  "html significant characters are rejected",
			input: "<script>alert(1)</script>",
			err:   ErrUnsafeCharacter,
		},
		{
			name:  "ampersand is rejected",
			input: "fish & chips",
			err:   ErrUnsafeCharacter,
		},
		{
			name:     "internal whitespace collapses",
			input:    "what   is    dns",
			expected: "what is dns",
		},
		{
			name:     "dots semicolons and backslashes become underscores",
			input:    `a.b;c\d`,
			expected: "a_b_c_d",
		},
		{
			name:     "non-ascii characters are stripped",
			input:    "café open?",
			expected: "caf open?",
		},
		{
			name:  "message with nothing printable is rejected",
			input: "éè",
			err:   ErrUnsanitizableMessage,
		},
		{
			name:     "long message truncates to the label limit",
			input:    strings.Repeat("b", 100),
			expected: strings.Repeat("b", 63),
		},
		{
			name:     "surrounding whitespace is trimmed",
			input:    "  hi there  ",
			expected: "hi there",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := SanitizeMessage(tc.input)
			if !errors.Is(err, tc.err) {
				t.Fatalf("sanitize(%q) error = %v, expected %v", tc.input, err, tc.err)
			}
			if err == nil && out != tc.expected {
				t.Errorf("sanitize(%q) = %q, expected %q", tc.input, out, tc.expected)
			}
		})
	}
}

func TestSanitizeMessageIdempotent(t *testing.T) {
	inputs := []string{
		"Hello world",
		"what   is    dns",
		`a.b;c\d`,
		strings.Repeat("x y", 40),
		"  padded  out  ",
	}

	for _, input := range inputs {
		once, err := SanitizeMessage(input)
		if err != nil {
			t.Fatalf("sanitize(%q) unexpectedly failed: %v", input, err)
		}

		if len(once) > MaxLabelLength {
			t.Errorf("sanitize(%q) produced %d characters, over the label limit", input, len(once))
		}

		twice, err := SanitizeMessage(once)
		if err != nil {
			t.Fatalf("re-sanitize(%q) unexpectedly failed: %v", once, err)
		}

		if once != twice {
			t.Errorf("sanitize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestSanitizeMessageRejectsAllControlBytes(t *testing.T) {
	for b := byte(0x00); b <= 0x1f; b++ {
		input := "ab" + string(rune(b)) + "cd"
		if _, err := SanitizeMessage(input); !errors.Is(err, ErrControlCharacter) {
			t.Errorf("sanitize with control byte 0x%02x error = %v, expected ErrControlCharacter", b, err)
		}
	}

	if _, err := SanitizeMessage("ab\x7fcd"); !errors.Is(err, ErrControlCharacter) {
		t.Errorf("sanitize with DEL byte error = %v, expected ErrControlCharacter", err)
	}
}
