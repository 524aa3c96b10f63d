package players

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// View selects the season namespace of a statistic key.
type View string

const (
	ViewCurrent  View = "current_"
	ViewPrevious View = "previous_"
)

// StatTotalPoints is the statistic the scoring engine reads.
const StatTotalPoints = "TOTAL_POINTS"

// Value is a single statistic: either a JSON number (kept exactly as sent) or
// a string.
type Value struct {
	num  json.Number
	text string
}

// Number wraps a numeric statistic.
func Number(n json.Number) Value { return Value{num: n} }

// Text wraps a string statistic.
func Text(s string) Value { return Value{text: s} }

// IsNumber reports whether the value was sent as a JSON number.
func (v Value) IsNumber() bool { return v.num != "" }

func (v Value) String() string {
	if v.IsNumber() {
		return v.num.String()
	}
	return v.text
}

// Int returns the value truncated to an integer. Strings holding numbers are
// accepted since upstream feeds are not consistent about quoting.
func (v Value) Int() (int64, bool) {
	raw := strings.TrimSpace(v.String())
	if raw == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsNumber() {
		return []byte(v.num), nil
	}
	return json.Marshal(v.text)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := valueOf(raw)
	if errors.Is(err, errSkip) {
		*v = Value{}
		return nil
	}
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Stats is the opaque statistics record attached to a player. Keys are
// namespaced with a View prefix; unknown keys are kept as-is.
type Stats map[string]Value

// ErrMalformedStats wraps every ParseStats failure.
var ErrMalformedStats = errors.New("malformed statistics record")

var errSkip = errors.New("skip")

// ParseStats decodes a flat JSON object of numbers and strings. Null values
// are dropped; nested objects, arrays and booleans are rejected.
func ParseStats(raw []byte) (Stats, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedStats)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStats, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: expected an object", ErrMalformedStats)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after object", ErrMalformedStats)
	}
	stats := make(Stats, len(fields))
	for key, raw := range fields {
		if strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: empty key", ErrMalformedStats)
		}
		val, err := valueOf(raw)
		if errors.Is(err, errSkip) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrMalformedStats, key, err)
		}
		stats[key] = val
	}
	return stats, nil
}

func valueOf(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Value{}, errSkip
	case json.Number:
		return Number(v), nil
	case string:
		return Text(v), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

// Get returns the statistic name under the given view.
func (s Stats) Get(view View, name string) (Value, bool) {
	v, ok := s[string(view)+name]
	return v, ok
}

// Points reads an integer statistic for scoring. Missing, unparsable and
// negative values count as zero.
func (s Stats) Points(view View, name string) int64 {
	v, ok := s.Get(view, name)
	if !ok {
		return 0
	}
	n, ok := v.Int()
	if !ok || n < 0 {
		return 0
	}
	return n
}

// Clone copies the record.
func (s Stats) Clone() Stats {
	if s == nil {
		return nil
	}
	out := make(Stats, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
