package expr

import (
	"errors"
	"fmt"
)

// ErrExpression is matched by every *ExpressionError.
var ErrExpression = errors.New("expr: malformed expression")

// ExpressionError reports a parse failure. Position is the 1-based character
// column in the source where the problem was found.
type ExpressionError struct {
	Position int
	Message  string
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("expression error at column %d: %s", e.Position, e.Message)
}

func (e *ExpressionError) Unwrap() error { return ErrExpression }

func errorf(pos int, format string, args ...any) *ExpressionError {
	return &ExpressionError{Position: pos, Message: fmt.Sprintf(format, args...)}
}
