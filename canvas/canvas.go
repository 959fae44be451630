// Package canvas provides a character-cell grid that drawings are
// rasterised onto for text output and the terminal preview.
package canvas

// Canvas is a grid of character cells, each with an optional colour.
type Canvas interface {
	Size() (width, height int)
	Get(x, y int) rune
	Set(x, y int, r rune) error
	String() string
}
