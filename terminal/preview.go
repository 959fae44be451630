// Package terminal shows rendered drawings in an interactive full-screen
// preview.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"mathfig/canvas"
	"mathfig/style"
)

// Page is one drawing in the preview.
type Page struct {
	Name    string
	Canvas  *canvas.MatrixCanvas
	Caption string
}

// Preview pages through character-cell drawings on a tcell screen.
//
// Keys: q, Esc or Ctrl+C quit; arrows or h/j/k/l pan; n/Tab and p/Backtab
// switch pages; 0 resets the pan.
type Preview struct {
	screen tcell.Screen
	pages  []Page
	index  int
	dx, dy int
	page   tcell.Style
}

// NewPreview creates a preview over an initialised screen.
func NewPreview(screen tcell.Screen, pages ...Page) *Preview {
	bg := tcell.GetColor(style.Page)
	return &Preview{
		screen: screen,
		pages:  pages,
		page:   tcell.StyleDefault.Background(bg).Foreground(tcell.GetColor(style.Ink)),
	}
}

// Run opens the terminal, shows the pages and blocks until the user quits.
func Run(pages ...Page) error {
	if len(pages) == 0 {
		return fmt.Errorf("nothing to preview")
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to setup terminal: %w", err)
	}
	// Restore the terminal even on panic.
	defer screen.Fini()
	return NewPreview(screen, pages...).Loop()
}

// Loop draws and handles events until a quit key arrives.
func (p *Preview) Loop() error {
	for {
		p.Draw()
		ev := p.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if p.HandleEvent(ev) {
			return nil
		}
	}
}

// Index returns the current page number.
func (p *Preview) Index() int {
	return p.index
}

// Offset returns the current pan in cells.
func (p *Preview) Offset() (int, int) {
	return p.dx, p.dy
}

// HandleEvent applies one event and reports whether the preview should
// close.
func (p *Preview) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		p.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyLeft:
			p.pan(-1, 0)
		case tcell.KeyRight:
			p.pan(1, 0)
		case tcell.KeyUp:
			p.pan(0, -1)
		case tcell.KeyDown:
			p.pan(0, 1)
		case tcell.KeyTab:
			p.turn(1)
		case tcell.KeyBacktab:
			p.turn(-1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case 'h':
				p.pan(-1, 0)
			case 'l':
				p.pan(1, 0)
			case 'k':
				p.pan(0, -1)
			case 'j':
				p.pan(0, 1)
			case 'n':
				p.turn(1)
			case 'p':
				p.turn(-1)
			case '0':
				p.dx, p.dy = 0, 0
			}
		}
	}
	return false
}

func (p *Preview) pan(x, y int) {
	if len(p.pages) == 0 {
		return
	}
	w, h := p.pages[p.index].Canvas.Size()
	p.dx = clamp(p.dx+x, 0, w-1)
	p.dy = clamp(p.dy+y, 0, h-1)
}

func (p *Preview) turn(step int) {
	if len(p.pages) == 0 {
		return
	}
	p.index = (p.index + step + len(p.pages)) % len(p.pages)
	p.dx, p.dy = 0, 0
}

// Draw paints the current page and the status line.
func (p *Preview) Draw() {
	s := p.screen
	s.SetStyle(p.page)
	s.Clear()
	sw, sh := s.Size()
	if len(p.pages) == 0 || sh == 0 {
		s.Show()
		return
	}
	pg := p.pages[p.index]
	pg.Canvas.Walk(func(x, y int, r rune, color string) {
		x, y = x-p.dx, y-p.dy
		if x < 0 || y < 0 || x >= sw || y >= sh-1 {
			return
		}
		st := p.page
		if color != "" {
			st = st.Foreground(tcell.GetColor(style.Or(normalize(color), style.Ink)))
		}
		s.SetContent(x, y, r, nil, st)
	})
	p.status(sw, sh-1, pg)
	s.Show()
}

func (p *Preview) status(width, row int, pg Page) {
	text := fmt.Sprintf("[ %s ] %d/%d", pg.Name, p.index+1, len(p.pages))
	if pg.Caption != "" {
		text += " | " + pg.Caption
	}
	text += " | arrows pan, n/p page, q quit"
	text = canvas.FitText(text, width, "…")
	st := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range text {
		p.screen.SetContent(x, row, r, nil, st)
		x += canvas.RuneWidth(r)
	}
	for ; x < width; x++ {
		p.screen.SetContent(x, row, ' ', nil, st)
	}
}

// normalize turns colour names into the hex form tcell understands.
func normalize(c string) string {
	if hex, err := style.Normalize(c); err == nil {
		return hex
	}
	return ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
