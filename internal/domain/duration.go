package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// DurationKind tags the native encoding of a provider duration.
type DurationKind string

// Duration encodings seen across providers.
const (
	// DurationEncoded is an ISO-8601-like string such as "PT2H30M".
	DurationEncoded DurationKind = "encoded-string"

	// DurationMinutes is a plain integer minute count.
	DurationMinutes DurationKind = "minutes"
)

// Duration is a tagged union over the two provider duration encodings.
// The native value is stored verbatim and normalized only when Minutes is
// called, so the stored form can always be rendered back unchanged.
type Duration struct {
	Kind    DurationKind
	Encoded string
	Value   int
}

// NewEncodedDuration wraps an ISO-8601-style duration string.
func NewEncodedDuration(encoded string) Duration {
	return Duration{Kind: DurationEncoded, Encoded: encoded}
}

// NewMinutesDuration wraps a plain minute count.
func NewMinutesDuration(minutes int) Duration {
	return Duration{Kind: DurationMinutes, Value: minutes}
}

// isoDurationPattern matches the provider subset of ISO-8601 durations.
var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?$`)

// ParseISODuration converts a "PT#H#M" style duration to minutes.
func ParseISODuration(s string) (int, error) {
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid ISO duration %q", s)
	}

	minutes := 0
	if m[1] != "" {
		hours, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("invalid hours in duration %q", s)
		}
		minutes += hours * 60
	}
	if m[2] != "" {
		mins, err := strconv.Atoi(m[2])
		if err != nil {
			return 0, fmt.Errorf("invalid minutes in duration %q", s)
		}
		minutes += mins
	}
	return minutes, nil
}

// Minutes normalizes the duration to whole minutes. Unparseable encoded
// strings normalize to zero.
func (d Duration) Minutes() int {
	switch d.Kind {
	case DurationMinutes:
		return d.Value
	case DurationEncoded:
		minutes, err := ParseISODuration(d.Encoded)
		if err != nil {
			return 0
		}
		return minutes
	default:
		return 0
	}
}

// MarshalJSON emits the duration in its native encoding: a JSON string for
// encoded durations, a JSON number for minute counts.
func (d Duration) MarshalJSON() ([]byte, error) {
	if d.Kind == DurationEncoded {
		return json.Marshal(d.Encoded)
	}
	return json.Marshal(d.Value)
}

// UnmarshalJSON accepts either encoding and preserves which one was used.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = NewEncodedDuration(s)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*d = NewMinutesDuration(n)
		return nil
	}

	return fmt.Errorf("duration must be a string or an integer, got %s", string(data))
}
