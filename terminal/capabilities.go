package terminal

import (
	"os"
	"strings"
)

// Capabilities describes what the current terminal can show.
type Capabilities struct {
	Name      string
	Color     bool
	TrueColor bool
	UTF8      bool
}

// DetectCapabilities inspects the environment. MATHFIG_TERMINAL_MODE set to
// "ascii" or "unicode" overrides detection.
func DetectCapabilities() Capabilities {
	switch os.Getenv("MATHFIG_TERMINAL_MODE") {
	case "ascii":
		return Capabilities{Name: "ascii"}
	case "unicode":
		return Capabilities{Name: "unicode", Color: true, TrueColor: true, UTF8: true}
	}

	term := os.Getenv("TERM")
	caps := Capabilities{Name: term, UTF8: detectUTF8Locale()}
	if term != "" && term != "dumb" {
		caps.Color = strings.Contains(term, "color") ||
			strings.HasPrefix(term, "xterm") || strings.HasPrefix(term, "screen") || strings.HasPrefix(term, "tmux")
	}
	switch os.Getenv("COLORTERM") {
	case "truecolor", "24bit":
		caps.Color = true
		caps.TrueColor = true
	}
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		caps.Color = false
		caps.TrueColor = false
	}
	if term == "linux" {
		caps.UTF8 = false
	}
	return caps
}

// detectUTF8Locale checks if the locale supports UTF-8.
func detectUTF8Locale() bool {
	for _, env := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		value := os.Getenv(env)
		if value == "" {
			continue
		}
		upper := strings.ToUpper(value)
		return strings.Contains(upper, "UTF-8") || strings.Contains(upper, "UTF8")
	}
	return false
}

// IsTerminal reports whether f is attached to a character device.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
