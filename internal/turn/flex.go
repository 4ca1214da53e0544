package turn

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-narrator/internal/stats"
)

var null = []byte("null")

// FlexInt accepts a JSON number, a numeric string or null (zero). Values
// are truncated and saturate at the int32 range; NaN is rejected.
type FlexInt int

func flexFromFloat(n float64) (FlexInt, error) {
	if math.IsNaN(n) {
		return 0, fmt.Errorf("expected number, got %v", n)
	}
	n = math.Trunc(n)
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32, nil
	case n < math.MinInt32:
		return math.MinInt32, nil
	}
	return FlexInt(n), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, null) {
		*f = 0
		return nil
	}

	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		v, err := flexFromFloat(n)
		if err != nil {
			return err
		}
		*f = v
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("expected number, got %s", b)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("expected number, got %q", s)
	}
	v, err := flexFromFloat(n)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// FlexString accepts a string, a number or null (empty).
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, null) {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	return fmt.Errorf("expected string, got %s", b)
}

// String returns the trimmed value
func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

// FlexList accepts an array of strings, a single string or null. Non-string
// array elements are dropped.
type FlexList []string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, null) {
		*f = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		if strings.TrimSpace(single) == "" {
			*f = nil
		} else {
			*f = FlexList{single}
		}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("expected string or array, got %s", b)
	}
	out := make(FlexList, 0, len(raw))
	for _, item := range raw {
		var s FlexString
		if err := json.Unmarshal(item, &s); err != nil || s.String() == "" {
			continue
		}
		out = append(out, s.String())
	}
	*f = out
	return nil
}

// Split expands comma-separated entries ("Bite, Howl") into separate values
func (f FlexList) Split() []string {
	var out []string
	for _, entry := range f {
		for _, part := range strings.Split(entry, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// FlexStats accepts a stat string ("Strength: 10") or an object of numbers.
type FlexStats map[string]int

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexStats) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, null) {
		*f = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = stats.Parse(s)
		return nil
	}

	var obj map[string]FlexInt
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("expected stat string or object, got %s", b)
	}
	out := make(FlexStats, len(obj))
	for k, v := range obj {
		out[k] = int(v)
	}
	*f = out
	return nil
}

// FlexName accepts either a bare string or an object with a name field.
type FlexName string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexName) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexName(strings.TrimSpace(s))
		return nil
	}
	var obj struct {
		Name FlexString `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("expected name or object, got %s", b)
	}
	*f = FlexName(obj.Name.String())
	return nil
}
