package rackspace

import (
	"fmt"
	"time"
)

// sinceLayout is the ISO 8601 form the DNS API expects in query parameters.
const sinceLayout = "2006-01-02T15:04:05-0700"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	sinceLayout,
	"2006-01-02T15:04:05.000Z",
}

// parseTimestamp parses the timestamp forms returned by the Identity and DNS APIs.
// An empty string yields the zero time.
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}
