package consolidate

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are tried in order. Upstream feeds send ISO-8601 with an
// explicit offset (a trailing "Z" means UTC) or, occasionally, a naive
// datetime which is taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses an upstream ISO-8601 timestamp and normalizes it to
// UTC. A value that matches none of the accepted layouts is an error; the
// consolidation pass never defaults a malformed timestamp silently.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}
