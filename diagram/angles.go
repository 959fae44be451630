package diagram

import (
	"fmt"
	"strings"
	"unicode"
)

// AngleLabel is the content of one angle slot of a polygon. It is Unknown,
// Literal or Placeholder. The engine never computes a missing angle: every
// slot is rendered exactly as supplied.
type AngleLabel interface {
	// Text is what gets drawn. Unknown slots return "".
	Text() string
	isAngleLabel()
}

// Unknown is an unlabelled angle. Nothing is drawn for it.
type Unknown struct{}

// Literal is a concrete value such as "40°" or "135°".
type Literal struct {
	Value string
}

// Placeholder is a symbolic stand-in such as "x", "e" or "?".
type Placeholder struct {
	Symbol string
}

func (Unknown) Text() string       { return "" }
func (l Literal) Text() string     { return l.Value }
func (p Placeholder) Text() string { return p.Symbol }

func (Unknown) isAngleLabel()     {}
func (Literal) isAngleLabel()     {}
func (Placeholder) isAngleLabel() {}

// IsUnknown reports whether the slot renders nothing.
func IsUnknown(a AngleLabel) bool {
	if a == nil {
		return true
	}
	_, ok := a.(Unknown)
	return ok
}

// ParseAngleLabel converts one wire value (string, number or null).
// Numbers become degree literals. Strings containing a digit are literals;
// any other non-empty string is a placeholder.
func ParseAngleLabel(field string, v any) (AngleLabel, error) {
	switch x := v.(type) {
	case nil:
		return Unknown{}, nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return Unknown{}, nil
		}
		if strings.IndexFunc(s, unicode.IsDigit) >= 0 {
			return Literal{Value: s}, nil
		}
		return Placeholder{Symbol: s}, nil
	default:
		f, ok := toFloat(v)
		if !ok {
			return nil, Invalid(field, "expected string, number or null, got %T", v)
		}
		return Literal{Value: FormatNumber(f) + "°"}, nil
	}
}

// ParseAngleLabels converts the wire angles array. A nil slice means four
// unknown slots; any other length than four is rejected.
func ParseAngleLabels(field string, v []any) ([4]AngleLabel, error) {
	out := [4]AngleLabel{Unknown{}, Unknown{}, Unknown{}, Unknown{}}
	if v == nil {
		return out, nil
	}
	if len(v) != 4 {
		return out, Invalid(field, "expected 4 entries, got %d", len(v))
	}
	for i, raw := range v {
		a, err := ParseAngleLabel(fmt.Sprintf("%s[%d]", field, i), raw)
		if err != nil {
			return out, err
		}
		out[i] = a
	}
	return out, nil
}
