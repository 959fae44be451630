package canvas

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("invalid canvas size")
)

// continuation marks the second cell of a wide glyph.
const continuation = '\x00'

// MatrixCanvas is a rune matrix with a colour per cell.
//
// MatrixCanvas is NOT safe for concurrent writes.
//
// Coordinate System:
//   - Origin (0,0) is top-left
//   - X increases rightward
//   - Y increases downward
//   - All coordinates are in character cells
type MatrixCanvas struct {
	matrix [][]rune
	colors [][]string
	width  int
	height int
	merger *CharacterMerger
}

// NewMatrixCanvas creates a blank canvas.
func NewMatrixCanvas(width, height int) (*MatrixCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	c := &MatrixCanvas{
		matrix: make([][]rune, height),
		colors: make([][]string, height),
		width:  width,
		height: height,
		merger: NewCharacterMerger(),
	}
	for y := range c.matrix {
		c.matrix[y] = make([]rune, width)
		c.colors[y] = make([]string, width)
	}
	c.Clear()
	return c, nil
}

// Size returns the width and height of the canvas.
func (c *MatrixCanvas) Size() (width, height int) {
	return c.width, c.height
}

func (c *MatrixCanvas) inside(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Get returns the character at (x, y), or ' ' outside the canvas.
func (c *MatrixCanvas) Get(x, y int) rune {
	if !c.inside(x, y) {
		return ' '
	}
	return c.matrix[y][x]
}

// Color returns the colour of the cell at (x, y).
func (c *MatrixCanvas) Color(x, y int) string {
	if !c.inside(x, y) {
		return ""
	}
	return c.colors[y][x]
}

// Set places r at (x, y), merging line crossings.
func (c *MatrixCanvas) Set(x, y int, r rune) error {
	return c.SetColored(x, y, r, "")
}

// SetColored places r at (x, y) with a colour. An empty colour keeps the
// cell's current colour.
func (c *MatrixCanvas) SetColored(x, y int, r rune, color string) error {
	if !c.inside(x, y) {
		return ErrOutOfBounds
	}
	c.matrix[y][x] = c.merger.Merge(c.matrix[y][x], r)
	if color != "" {
		c.colors[y][x] = color
	}
	return nil
}

// Clear resets the canvas to blank uncoloured cells.
func (c *MatrixCanvas) Clear() {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			c.matrix[y][x] = ' '
			c.colors[y][x] = ""
		}
	}
}

// DrawLine draws a line between two cells using Bresenham's algorithm.
// Cells outside the canvas are skipped.
func (c *MatrixCanvas) DrawLine(x1, y1, x2, y2 int, r rune, color string) {
	dx, dy := abs(x2-x1), abs(y2-y1)
	xInc, yInc := 1, 1
	if x1 > x2 {
		xInc = -1
	}
	if y1 > y2 {
		yInc = -1
	}
	x, y := x1, y1
	if dx > dy {
		e := dx / 2
		for x != x2 {
			c.SetColored(x, y, r, color)
			e -= dy
			if e < 0 {
				y += yInc
				e += dx
			}
			x += xInc
		}
	} else {
		e := dy / 2
		for y != y2 {
			c.SetColored(x, y, r, color)
			e -= dx
			if e < 0 {
				x += xInc
				e += dy
			}
			y += yInc
		}
	}
	c.SetColored(x2, y2, r, color)
}

// DrawText writes text starting at (x, y). Text replaces whatever is under
// it; wide glyphs take two cells and zero-width runes are skipped.
func (c *MatrixCanvas) DrawText(x, y int, text, color string) {
	if y < 0 || y >= c.height {
		return
	}
	cx := x
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		if cx >= c.width || (w == 2 && cx+1 >= c.width) {
			break
		}
		if cx >= 0 {
			c.matrix[y][cx] = r
			c.colors[y][cx] = color
			if w == 2 {
				c.matrix[y][cx+1] = continuation
				c.colors[y][cx+1] = color
			}
		}
		cx += w
	}
}

// Lines returns the canvas rows with trailing blanks removed.
func (c *MatrixCanvas) Lines() []string {
	out := make([]string, c.height)
	for y := range c.matrix {
		var sb strings.Builder
		for _, r := range c.matrix[y] {
			if r != continuation {
				sb.WriteRune(r)
			}
		}
		out[y] = strings.TrimRight(sb.String(), " ")
	}
	return out
}

// String returns the canvas as text, one row per line.
func (c *MatrixCanvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

// ColoredString returns the canvas with ANSI colour sequences.
func (c *MatrixCanvas) ColoredString() string {
	var sb strings.Builder
	for y := 0; y < c.height; y++ {
		current := ""
		for x := 0; x < c.width; x++ {
			r := c.matrix[y][x]
			if r == continuation {
				continue
			}
			color := c.colors[y][x]
			if r == ' ' {
				color = current
			}
			if color != current {
				if current != "" {
					sb.WriteString(ColorReset)
				}
				sb.WriteString(ColorCode(color))
				current = color
			}
			sb.WriteRune(r)
		}
		if current != "" {
			sb.WriteString(ColorReset)
		}
		if y < c.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Walk calls fn for every non-blank cell.
func (c *MatrixCanvas) Walk(fn func(x, y int, r rune, color string)) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if r := c.matrix[y][x]; r != ' ' && r != continuation {
				fn(x, y, r, c.colors[y][x])
			}
		}
	}
}

// LineGlyph picks the glyph for a segment with the given cell deltas.
func LineGlyph(dx, dy int) rune {
	adx, ady := abs(dx), abs(dy)
	switch {
	case ady*2 < adx:
		return Horizontal
	case adx*2 < ady:
		return Vertical
	case (dx > 0) == (dy > 0):
		return Falling
	default:
		return Rising
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
