package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathfig/canvas"
)

func simScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func page(t *testing.T, name, text string) Page {
	t.Helper()
	c, err := canvas.NewMatrixCanvas(30, 5)
	require.NoError(t, err)
	c.DrawLine(0, 0, 9, 0, canvas.Horizontal, "#ef4444")
	c.DrawText(2, 2, text, "")
	return Page{Name: name, Canvas: c}
}

func cellAt(s tcell.SimulationScreen, x, y int) (rune, tcell.Style) {
	cells, w, _ := s.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' ', c.Style
	}
	return c.Runes[0], c.Style
}

func TestPreviewDraw(t *testing.T) {
	s := simScreen(t, 20, 6)
	p := NewPreview(s, page(t, "first", "hello"))
	p.Draw()

	r, st := cellAt(s, 0, 0)
	assert.Equal(t, canvas.Horizontal, r)
	fg, _, _ := st.Decompose()
	assert.Equal(t, tcell.GetColor("#ef4444"), fg)

	r, _ = cellAt(s, 2, 2)
	assert.Equal(t, 'h', r)

	r, st = cellAt(s, 0, 5)
	assert.Equal(t, '[', r, "status line on the last row")
	_, _, attrs := st.Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse)
}

func TestPreviewKeys(t *testing.T) {
	s := simScreen(t, 20, 6)
	p := NewPreview(s, page(t, "a", "one"), page(t, "b", "two"))

	key := func(k tcell.Key, r rune) bool {
		return p.HandleEvent(tcell.NewEventKey(k, r, tcell.ModNone))
	}

	assert.False(t, key(tcell.KeyRight, 0))
	assert.False(t, key(tcell.KeyRune, 'j'))
	dx, dy := p.Offset()
	assert.Equal(t, 1, dx)
	assert.Equal(t, 1, dy)

	assert.False(t, key(tcell.KeyRune, 'h'))
	assert.False(t, key(tcell.KeyLeft, 0), "pan stops at the left edge")
	dx, _ = p.Offset()
	assert.Equal(t, 0, dx)

	assert.False(t, key(tcell.KeyRune, 'n'))
	assert.Equal(t, 1, p.Index())
	dx, dy = p.Offset()
	assert.Zero(t, dx+dy, "turning the page resets the pan")
	p.Draw()
	r, _ := cellAt(s, 2, 2)
	assert.Equal(t, 't', r)

	assert.False(t, key(tcell.KeyTab, 0))
	assert.Equal(t, 0, p.Index(), "pages wrap around")
	assert.False(t, key(tcell.KeyBacktab, 0))
	assert.Equal(t, 1, p.Index())

	assert.True(t, key(tcell.KeyRune, 'q'))
	assert.True(t, key(tcell.KeyEscape, 0))
	assert.True(t, key(tcell.KeyCtrlC, 0))
}

func TestPreviewLoopQuits(t *testing.T) {
	s := simScreen(t, 20, 6)
	p := NewPreview(s, page(t, "a", "one"))
	s.InjectKey(tcell.KeyRune, 'l', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	require.NoError(t, p.Loop())
	dx, _ := p.Offset()
	assert.Equal(t, 1, dx)
}

func TestRunWithoutPages(t *testing.T) {
	assert.Error(t, Run())
}
