package canvas

// Line glyphs used when rasterising segments.
const (
	Horizontal = '─'
	Vertical   = '│'
	Rising     = '╱'
	Falling    = '╲'
	Cross      = '┼'
	DiagCross  = '╳'
)

// CharacterMerger decides what a cell shows when a second glyph is drawn
// over an existing one.
type CharacterMerger struct {
	rules map[[2]rune]rune
}

// NewCharacterMerger creates a merger with the line crossing rules.
func NewCharacterMerger() *CharacterMerger {
	m := &CharacterMerger{rules: make(map[[2]rune]rune)}
	m.add(Horizontal, Vertical, Cross)
	m.add(Rising, Falling, DiagCross)
	m.add(Cross, Horizontal, Cross)
	m.add(Cross, Vertical, Cross)
	m.add(DiagCross, Rising, DiagCross)
	m.add(DiagCross, Falling, DiagCross)
	m.add('-', '|', '+')
	return m
}

func (m *CharacterMerger) add(a, b, out rune) {
	m.rules[[2]rune{a, b}] = out
	m.rules[[2]rune{b, a}] = out
}

// Merge returns the glyph for drawing next over existing. Blank cells take
// the new glyph. A line never covers a marker glyph; any other unknown pair
// lets the newer glyph win.
func (m *CharacterMerger) Merge(existing, next rune) rune {
	if existing == ' ' || existing == 0 || existing == next {
		return next
	}
	if out, ok := m.rules[[2]rune{existing, next}]; ok {
		return out
	}
	if isLine(next) && !isLine(existing) {
		return existing
	}
	return next
}

// isLine reports whether r is one of the line glyphs.
func isLine(r rune) bool {
	switch r {
	case Horizontal, Vertical, Rising, Falling, Cross, DiagCross:
		return true
	}
	return false
}

var asciiFallback = map[rune]rune{
	Horizontal: '-',
	Vertical:   '|',
	Rising:     '/',
	Falling:    '\\',
	Cross:      '+',
	DiagCross:  'X',
	'●':        '*',
}

// ToASCII replaces the line glyphs in s with 7-bit equivalents for terminals
// without UTF-8. Other characters pass through.
func ToASCII(s string) string {
	out := []rune(s)
	for i, r := range out {
		if a, ok := asciiFallback[r]; ok {
			out[i] = a
		}
	}
	return string(out)
}
