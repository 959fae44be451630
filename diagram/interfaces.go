package diagram

import "mathfig/core"

// Builder turns a raw parameter object into a scene for one tool family.
type Builder[P any] interface {
	// Normalize validates raw and fills in defaults. Any problem is reported
	// as a *ValidationError; nothing is silently dropped.
	Normalize(raw RawParams) (P, error)

	// Build computes the scene in the builder's logical coordinates.
	Build(params P) (*core.Scene, error)
}

// Measurer reports the size of a piece of text in surface units.
type Measurer interface {
	Measure(text string, fontSize float64) (width, height float64)
}
