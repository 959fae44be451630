// Package validation checks laid-out drawings for problems a reader would
// notice: broken coordinates, ink off the page and colliding labels.
package validation

import (
	"fmt"
	"math"
	"strings"

	"mathfig/core"
	"mathfig/diagram"
	"mathfig/layout"
)

// Severity ranks an issue.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Issue is one problem found in a drawing.
type Issue struct {
	// Index is the primitive the issue refers to, or -1 for the drawing.
	Index    int
	Kind     string
	Severity Severity
	Message  string
}

// Issue kinds.
const (
	KindNonFinite    = "non-finite"
	KindOffSurface   = "off-surface"
	KindLabelOverlap = "label-overlap"
	KindEmptyLabel   = "empty-label"
)

func (i Issue) String() string {
	if i.Index < 0 {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("%s: primitive %d: %s", i.Severity, i.Index, i.Message)
}

// DrawingValidator checks drawings produced by the render engine.
type DrawingValidator struct {
	measurer diagram.Measurer
	// tolerance is how far ink may stray past the surface edge.
	tolerance  float64
	strictMode bool
}

// NewDrawingValidator creates a validator that measures labels with m, or
// with the default font measurer when m is nil.
func NewDrawingValidator(m diagram.Measurer) *DrawingValidator {
	if m == nil {
		m = layout.DefaultMeasurer()
	}
	return &DrawingValidator{measurer: m, tolerance: 0.5}
}

// SetStrictMode makes label overlaps errors instead of warnings.
func (v *DrawingValidator) SetStrictMode(strict bool) {
	v.strictMode = strict
}

// Validate returns every issue found, in primitive order.
func (v *DrawingValidator) Validate(d *core.Drawing) []Issue {
	if d == nil {
		return []Issue{{Index: -1, Kind: KindNonFinite, Severity: Error, Message: "drawing is nil"}}
	}
	var issues []Issue
	if !finite(d.Width) || !finite(d.Height) || d.Width <= 0 || d.Height <= 0 {
		issues = append(issues, Issue{Index: -1, Kind: KindNonFinite, Severity: Error,
			Message: fmt.Sprintf("surface %gx%g is not drawable", d.Width, d.Height)})
		return issues
	}
	surface := core.Bounds{
		Min: core.Pt(-v.tolerance, -v.tolerance),
		Max: core.Pt(d.Width+v.tolerance, d.Height+v.tolerance),
	}

	type placed struct {
		index int
		box   core.Bounds
	}
	var labels []placed

	for i, p := range d.Primitives {
		if msg := nonFinite(p); msg != "" {
			issues = append(issues, Issue{Index: i, Kind: KindNonFinite, Severity: Error, Message: msg})
			continue
		}
		switch p := p.(type) {
		case core.Label:
			if strings.TrimSpace(p.Text) == "" {
				issues = append(issues, Issue{Index: i, Kind: KindEmptyLabel, Severity: Warning, Message: "label has no text"})
				continue
			}
			box := layout.LabelBox(p, v.measurer)
			if !surface.Contains(box.Min) || !surface.Contains(box.Max) {
				issues = append(issues, Issue{Index: i, Kind: KindOffSurface, Severity: Error,
					Message: fmt.Sprintf("label %q extends past the surface", p.Text)})
			}
			labels = append(labels, placed{i, box})
		default:
			// Clipped drawings crop their own ink.
			if d.Clip != nil {
				continue
			}
			for _, a := range core.SurfaceAnchors(p) {
				if !surface.Contains(a) {
					issues = append(issues, Issue{Index: i, Kind: KindOffSurface, Severity: Error,
						Message: fmt.Sprintf("%s point (%.1f, %.1f) is off the surface", p.Type(), a.X, a.Y)})
					break
				}
			}
		}
	}

	sev := Warning
	if v.strictMode {
		sev = Error
	}
	for a := 0; a < len(labels); a++ {
		for b := a + 1; b < len(labels); b++ {
			if labels[a].box.Overlaps(labels[b].box) {
				issues = append(issues, Issue{Index: labels[b].index, Kind: KindLabelOverlap, Severity: sev,
					Message: fmt.Sprintf("label overlaps primitive %d", labels[a].index)})
			}
		}
	}
	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == Error {
			return true
		}
	}
	return false
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func nonFinite(p core.Primitive) string {
	for _, a := range core.SurfaceAnchors(p) {
		if !a.IsFinite() {
			return fmt.Sprintf("%s has a non-finite coordinate", p.Type())
		}
	}
	switch p := p.(type) {
	case core.Arc:
		if !finite(p.Radius) || !finite(p.Start) || !finite(p.End) || p.Radius < 0 {
			return "arc has an invalid radius or angle"
		}
	case core.Marker:
		if !finite(p.Angle) || !finite(p.Size) {
			return "marker has an invalid angle or size"
		}
	case core.Label:
		if !p.Offset.IsFinite() {
			return "label has a non-finite offset"
		}
	}
	return ""
}
