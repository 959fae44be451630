package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected []string
	}{
		{
			name:     "word boundaries",
			text:     "This is a test of word wrapping",
			width:    10,
			expected: []string{"This is a", "test of", "word", "wrapping"},
		},
		{
			name:     "long word breaks",
			text:     "This superlongword breaks",
			width:    10,
			expected: []string{"This", "superlongw", "ord breaks"},
		},
		{
			name:     "wide glyphs",
			text:     "日本語テキスト",
			width:    4,
			expected: []string{"日本", "語テ", "キス", "ト"},
		},
		{
			name:     "collapses whitespace",
			text:     "  a   b  ",
			width:    10,
			expected: []string{"a b"},
		},
		{
			name:     "zero width",
			text:     "abc",
			width:    0,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WrapText(tt.text, tt.width))
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 3, "hel"},
		{"hello", 10, "hello"},
		{"日本語", 3, "日"},
		{"日本語", 4, "日本"},
		{"éx", 1, "é"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateToWidth(tt.in, tt.max), "TruncateToWidth(%q, %d)", tt.in, tt.max)
	}
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "short", FitText("short", 8, "..."))
	assert.Equal(t, "hello...", FitText("hello world", 8, "..."))
	assert.Equal(t, "he", FitText("hello world", 2, "..."))
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 5, StringWidth("hello"))
	assert.Equal(t, 6, StringWidth("日本語"))
	assert.Equal(t, 1, StringWidth("é"))
}
