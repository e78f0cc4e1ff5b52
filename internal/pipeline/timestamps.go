package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/grantHarris/chatlog-model-tuner/internal/types"
)

// exportLayouts are tried in order. Chat exports put a narrow no-break space
// (U+202F) before the AM/PM marker.
var exportLayouts = []string{
	"2006-01-02, 3:04:05\u202fPM",
	"2006-01-02, 3:04:05 PM",
	"2006-01-02, 15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a raw export timestamp, trying layout first when set.
func ParseTimestamp(raw, layout string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	layouts := exportLayouts
	if layout != "" {
		layouts = append([]string{layout}, exportLayouts...)
	}
	for _, l := range layouts {
		if ts, err := time.Parse(l, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// ParseTimestamps returns a copy of msgs with Timestamp filled from DateTime.
// Messages that already carry a timestamp are left untouched.
func ParseTimestamps(msgs []types.Message, layout string) ([]types.Message, error) {
	out := make([]types.Message, len(msgs))
	for i, m := range msgs {
		if m.Timestamp.IsZero() {
			ts, err := ParseTimestamp(m.DateTime, layout)
			if err != nil {
				return nil, fmt.Errorf("message %d: %w", i, err)
			}
			m.Timestamp = ts
		}
		out[i] = m
	}
	return out, nil
}
