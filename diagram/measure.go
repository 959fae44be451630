package diagram

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Measure is a length given as a labelled string ("10 cm"), a bare number
// or a symbol ("x"). Text is always the original display form.
type Measure struct {
	Value float64
	Unit  string
	Text  string
	// Known is true when Value was parsed from the input.
	Known bool
}

// IsZero reports whether the measure was absent from the input.
func (m Measure) IsZero() bool {
	return m.Text == "" && !m.Known
}

var measurePattern = regexp.MustCompile(`^([-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)\s*(\D.*)?$`)

// ParseMeasure converts a wire value. Strings that do not start with a
// number are kept as display text with Known false.
func ParseMeasure(field string, v any) (Measure, error) {
	switch x := v.(type) {
	case nil:
		return Measure{}, nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return Measure{}, nil
		}
		m := measurePattern.FindStringSubmatch(s)
		if m == nil {
			return Measure{Text: s}, nil
		}
		f, err := strconv.ParseFloat(m[1], 64)
		if err != nil || math.IsInf(f, 0) {
			return Measure{}, Invalid(field, "cannot parse %q as a length", s)
		}
		return Measure{Value: f, Unit: strings.TrimSpace(m[2]), Text: s, Known: true}, nil
	default:
		f, ok := toFloat(v)
		if !ok {
			return Measure{}, Invalid(field, "expected string or number, got %T", v)
		}
		return Measure{Value: f, Text: FormatNumber(f), Known: true}, nil
	}
}

// SameUnit reports whether two known measures can be compared. A missing unit
// is compatible with any unit.
func SameUnit(a, b Measure) bool {
	return a.Unit == "" || b.Unit == "" || a.Unit == b.Unit
}

// FormatNumber renders v with the fewest digits that round-trip, with a
// small cleanup of floating point noise.
func FormatNumber(v float64) string {
	if r := math.Round(v); math.Abs(v-r) < 1e-9 {
		v = r
	} else {
		v, _ = strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
	}
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return toFloat(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
