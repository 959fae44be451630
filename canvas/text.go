package canvas

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// RuneWidth returns the number of cells r occupies: 0 for combining marks,
// 2 for wide East Asian glyphs and 1 otherwise.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of s in cells.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth cuts s so it fits in maxWidth cells. A wide glyph that
// would straddle the limit is dropped.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	width := 0
	end := 0
	for i, r := range s {
		w := RuneWidth(r)
		if width+w > maxWidth {
			break
		}
		width += w
		end = i + len(string(r))
	}
	return s[:end]
}

// FitText truncates text to maxWidth, ending with ellipsis when cut.
func FitText(text string, maxWidth int, ellipsis string) string {
	if StringWidth(text) <= maxWidth {
		return text
	}
	ew := StringWidth(ellipsis)
	if maxWidth <= ew {
		return TruncateToWidth(text, maxWidth)
	}
	return TruncateToWidth(text, maxWidth-ew) + ellipsis
}

// WrapText wraps text at word boundaries so each line fits in maxWidth
// cells. Words longer than a line are broken.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return nil
	}
	var lines []string
	var line strings.Builder
	width := 0
	flush := func() {
		if line.Len() > 0 {
			lines = append(lines, line.String())
			line.Reset()
			width = 0
		}
	}
	for _, word := range strings.Fields(text) {
		ww := StringWidth(word)
		if width > 0 && width+1+ww > maxWidth {
			flush()
		}
		for ww > maxWidth {
			head := TruncateToWidth(word, maxWidth)
			if head == "" {
				// A single glyph wider than the line.
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			flush()
			lines = append(lines, head)
			word = word[len(head):]
			ww = StringWidth(word)
		}
		if word == "" {
			continue
		}
		if width > 0 {
			line.WriteByte(' ')
			width++
		}
		line.WriteString(word)
		width += ww
	}
	flush()
	return lines
}
