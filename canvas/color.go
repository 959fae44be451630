package canvas

import (
	"fmt"

	"mathfig/style"
)

// ColorReset ends an ANSI colour run.
const ColorReset = "\033[0m"

// ColorCode returns the 24-bit ANSI foreground sequence for a colour
// string, or "" when c is empty.
func ColorCode(c string) string {
	if c == "" {
		return ""
	}
	rgba := style.RGBA(c)
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", rgba.R, rgba.G, rgba.B)
}
