package diagram

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTool is matched by every *UnknownToolError.
	ErrUnknownTool = errors.New("diagram: unknown tool")
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("diagram: invalid parameters")
	// ErrDegenerateGeometry is matched by every *DegenerateGeometryError.
	ErrDegenerateGeometry = errors.New("diagram: degenerate geometry")
)

// UnknownToolError reports a tool name with no registered builder.
type UnknownToolError struct {
	ToolName string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.ToolName)
}

func (e *UnknownToolError) Unwrap() error { return ErrUnknownTool }

// ValidationError reports a missing, malformed or out-of-range parameter.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid parameters: " + e.Reason
	}
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a *ValidationError with a formatted reason.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DegenerateGeometryError reports parameters that describe no drawable shape,
// such as a self-intersecting quadrilateral or a zero-area viewport.
type DegenerateGeometryError struct {
	Reason string
}

func (e *DegenerateGeometryError) Error() string {
	return "degenerate geometry: " + e.Reason
}

func (e *DegenerateGeometryError) Unwrap() error { return ErrDegenerateGeometry }

// Degenerate builds a *DegenerateGeometryError with a formatted reason.
func Degenerate(format string, args ...any) *DegenerateGeometryError {
	return &DegenerateGeometryError{Reason: fmt.Sprintf(format, args...)}
}
