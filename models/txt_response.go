package models

import (
	"regexp"
	"strconv"
	"strings"
)

// partPattern matches a multi-part TXT record of the form "i/n:content".
var partPattern = regexp.MustCompile(`^\s*(\d+)/(\d+):(.*)$`)

// ParseTXTRecords reassembles the TXT records from one transport attempt
// into a single answer string.
//
// The queried service answers either with one or more plain TXT records,
// or with chunks prefixed "i/n:" when the answer didn't fit in one record.
// If any plain record is present, plain records win and the part-shaped
// ones are ignored: a coincidental "3/4:" inside a plain answer must not
// be misread as a part marker.
//
// When every record is part-shaped, the first record's declared total is
// authoritative. Identical duplicates of a part are tolerated (retransmits
// happen); duplicates with differing content mean corruption and fail the
// parse. Every part 1..total must be present.
func ParseTXTRecords(records []string) (string, error) {
	if len(records) == 0 {
		return "", ErrEmptyResponse
	}

	var plain []string
	type part struct {
		number  int
		total   int
		content string
	}
	var parts []part

	for _, record := range records {
		m := partPattern.FindStringSubmatch(record)
		if m == nil {
			plain = append(plain, record)
			continue
		}

		number, numErr := strconv.Atoi(m[1])
		total, totErr := strconv.Atoi(m[2])
		if numErr != nil || totErr != nil || number < 1 || total < 1 {
			// Absurd part markers are treated as plain text.
			plain = append(plain, record)
			continue
		}

		parts = append(parts, part{number: number, total: total, content: m[3]})
	}

	if len(plain) > 0 {
		joined := strings.TrimSpace(strings.Join(plain, ""))
		if joined == "" {
			return "", ErrBlankResponse
		}
		return joined, nil
	}

	total := parts[0].total
	content := make(map[int]string, total)

	for _, p := range parts {
		if existing, seen := content[p.number]; seen {
			if existing != p.content {
				return "", ConflictingParts{Part: p.number}
			}
			continue
		}
		content[p.number] = p.content
	}

	var b strings.Builder
	for i := 1; i <= total; i++ {
		c, ok := content[i]
		if !ok {
			return "", IncompleteResponse{Missing: i, Total: total}
		}
		b.WriteString(c)
	}

	joined := strings.TrimSpace(b.String())
	if joined == "" {
		return "", ErrBlankResponse
	}

	return joined, nil
}
