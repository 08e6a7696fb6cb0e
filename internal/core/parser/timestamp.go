package parser

import (
	"fmt"
	"time"
)

// timestampLayouts are tried in order; the first that parses wins. The last
// layout extends the minute-precision form to a colon offset.
var timestampLayouts = []string{
	time.RFC3339,                // 2024-01-01T00:00:00Z, 2024-01-01T00:00:00+02:00
	"2006-01-02T15:04:05-0700",  // 2024-01-01T00:00:00+0200
	"2006-01-02T15:04-0700",     // 2024-01-01T00:00+0200
	"2006-01-02T15:04:05-07:00", // 2024-01-01T00:00:00+02:00
	"2006-01-02T15:04-07:00",    // 2024-01-01T00:00+02:00
}

// ParseTimestamp parses an ISO 8601 timestamp with an explicit offset and
// returns it in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	normalized := normalizeTimestamp(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO 8601 timestamp %q", s)
}

// normalizeTimestamp accepts the RFC 3339 spellings Go's layouts do not: a
// lowercase "t" or a space between date and time, and a lowercase "z".
func normalizeTimestamp(s string) string {
	if len(s) <= 10 {
		return s
	}
	b := []byte(s)
	if b[10] == 't' || b[10] == ' ' {
		b[10] = 'T'
	}
	if b[len(b)-1] == 'z' {
		b[len(b)-1] = 'Z'
	}
	return string(b)
}
