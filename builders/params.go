// Package builders turns normalized tool parameters into scenes. There is
// one builder per tool family: polygons, semicircles, function graphs and
// number lines.
package builders

import (
	"math"
	"slices"
	"strings"

	"mathfig/diagram"
	"mathfig/style"
)

// checkKeys rejects parameters the tool does not understand.
func checkKeys(tool string, raw diagram.RawParams, allowed []string) error {
	for _, k := range raw.Keys() {
		if !slices.Contains(allowed, k) {
			return diagram.Invalid(k, "not a parameter of %s (accepted: %s)", tool, strings.Join(allowed, ", "))
		}
	}
	return nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func stringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// oneOf validates an enum value, applying def when it is absent.
func oneOf(field string, p *string, def string, allowed ...string) (string, error) {
	if p == nil {
		return def, nil
	}
	if !slices.Contains(allowed, *p) {
		return "", diagram.Invalid(field, "%q is not one of %s", *p, strings.Join(allowed, ", "))
	}
	return *p, nil
}

// colour validates an optional colour and returns it in canonical form.
func colour(field string, p *string) (string, error) {
	if p == nil || strings.TrimSpace(*p) == "" {
		return "", nil
	}
	c, err := style.Normalize(*p)
	if err != nil {
		return "", diagram.Invalid(field, "%v", err)
	}
	return c, nil
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return diagram.Invalid(field, "must be a finite number")
	}
	return nil
}
