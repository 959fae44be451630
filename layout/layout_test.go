package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathfig/core"
	"mathfig/diagram"
)

var surface = Viewport{Width: 400, Height: 300, Margin: 36, FontSize: 13}

func square() *core.Scene {
	s := core.NewScene()
	s.Add(
		core.Segment{From: core.Pt(0, 0), To: core.Pt(1, 0)},
		core.Segment{From: core.Pt(1, 0), To: core.Pt(1, 1)},
		core.Segment{From: core.Pt(1, 1), To: core.Pt(0, 1)},
		core.Segment{From: core.Pt(0, 1), To: core.Pt(0, 0)},
	)
	return s
}

func TestFitUniformScaleAndFlip(t *testing.T) {
	tr, err := Fit(square(), surface)
	require.NoError(t, err)

	kx, ky := tr.Scale()
	assert.InDelta(t, 228, kx, 1e-9)
	assert.InDelta(t, 228, ky, 1e-9)

	c := tr.Apply(core.Pt(0.5, 0.5))
	assert.InDelta(t, 200, c.X, 1e-9)
	assert.InDelta(t, 150, c.Y, 1e-9)

	top := tr.Apply(core.Pt(0, 1))
	bottom := tr.Apply(core.Pt(0, 0))
	if top.Y >= bottom.Y {
		t.Errorf("y axis not flipped: top %v, bottom %v", top, bottom)
	}
	assert.InDelta(t, 36, top.Y, 1e-9)
}

func TestFitFlatScene(t *testing.T) {
	s := core.NewScene()
	s.Add(core.Segment{From: core.Pt(-5, 0), To: core.Pt(5, 0)})
	d, err := Project(s, surface)
	require.NoError(t, err)

	seg := d.Primitives[0].(core.Segment)
	assert.InDelta(t, 36, seg.From.X, 1e-9)
	assert.InDelta(t, 364, seg.To.X, 1e-9)
	assert.InDelta(t, 150, seg.From.Y, 1e-9)
}

func TestFitDegenerate(t *testing.T) {
	dot := core.NewScene()
	dot.Add(core.Marker{Position: core.Pt(1, 1), Kind: core.ClosedCircle, Size: 5})

	tests := []struct {
		name string
		s    *core.Scene
		v    Viewport
	}{
		{"zero extent", dot, surface},
		{"empty scene", core.NewScene(), surface},
		{"margins swallow surface", square(), Viewport{Width: 60, Height: 300, Margin: 36}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(tt.s, tt.v)
			if !errors.Is(err, diagram.ErrDegenerateGeometry) {
				t.Fatalf("expected degenerate geometry, got %v", err)
			}
		})
	}
}

func TestFitAxisScaleAndClip(t *testing.T) {
	s := core.NewScene()
	clip := core.Bounds{Min: core.Pt(0, 0), Max: core.Pt(10, 1)}
	s.Clip = &clip
	s.AxisScale = core.Pt(0.4, 3)
	s.Add(
		core.Segment{From: core.Pt(0, 0), To: core.Pt(20, 5)},
		core.Marker{Position: core.Pt(5, 0.5), Kind: core.Arrowhead, Angle: math.Pi / 4, Size: 10},
	)

	d, err := Project(s, surface)
	require.NoError(t, err)
	require.NotNil(t, d.Clip)

	// 4:3 frame scaled by min(328/4, 228/3) = 76.
	assert.InDelta(t, 304, d.Clip.Width(), 1e-9)
	assert.InDelta(t, 228, d.Clip.Height(), 1e-9)
	assert.InDelta(t, 48, d.Clip.Min.X, 1e-9)
	assert.InDelta(t, 36, d.Clip.Min.Y, 1e-9)

	m := d.Primitives[1].(core.Marker)
	want := math.Atan2(228*math.Sin(math.Pi/4), 30.4*math.Cos(math.Pi/4))
	assert.InDelta(t, want, m.Angle, 1e-9)
	assert.Equal(t, 10.0, m.Size, "marker size is in surface units")
}

func TestProjectCarriesTextAndFontSize(t *testing.T) {
	s := square()
	s.Title = "Square"
	s.Caption = "side 1"
	s.Add(core.Label{Position: core.Pt(0.5, 0.5), Text: "A"})

	d, err := Project(s, surface)
	require.NoError(t, err)
	assert.Equal(t, "Square", d.Title)
	assert.Equal(t, "side 1", d.Caption)
	labels := d.Labels()
	require.Len(t, labels, 1)
	assert.Equal(t, 13.0, labels[0].Style.FontSize)
}

func TestMeasure(t *testing.T) {
	m := DefaultMeasurer()
	w, h := m.Measure("abc", 13)
	assert.Equal(t, 21.0, w)
	assert.Equal(t, 13.0, h)

	w2, h2 := m.Measure("abc", 26)
	assert.Equal(t, 42.0, w2)
	assert.Equal(t, 26.0, h2)

	// Decomposed and composed forms measure the same.
	wd, _ := m.Measure("e\u0301", 13)
	wc, _ := m.Measure("é", 13)
	assert.Equal(t, wc, wd)
}

func labelled(labels ...core.Label) *core.Drawing {
	d := &core.Drawing{Width: 400, Height: 300}
	for _, l := range labels {
		l.Style.FontSize = 13
		d.Primitives = append(d.Primitives, l)
	}
	return d
}

func TestPlaceLabelsDirection(t *testing.T) {
	d := labelled(
		core.Label{Position: core.Pt(200, 150), Text: "up", Toward: core.Pt(0, 1)},
		core.Label{Position: core.Pt(100, 150), Text: "right", Toward: core.Pt(1, 0)},
		core.Label{Position: core.Pt(300, 100), Text: "mid"},
	)
	PlaceLabels(d, DefaultMeasurer())
	labels := d.Labels()

	assert.Equal(t, core.North, labels[0].Anchor)
	assert.Less(t, labels[0].Offset.Y, 0.0, "pushed up on a y-down surface")
	assert.Zero(t, labels[0].Offset.X)

	assert.Equal(t, core.East, labels[1].Anchor)
	assert.Greater(t, labels[1].Offset.X, 0.0)

	assert.Equal(t, core.Center, labels[2].Anchor)
	assert.True(t, labels[2].Offset.IsZero())
}

func TestPlaceLabelsSeparatesOverlaps(t *testing.T) {
	d := labelled(
		core.Label{Position: core.Pt(200, 150), Text: "first", Toward: core.Pt(0, 1)},
		core.Label{Position: core.Pt(200, 150), Text: "second", Toward: core.Pt(0, 1)},
		core.Label{Position: core.Pt(202, 151), Text: "third", Toward: core.Pt(0, 1)},
	)
	m := DefaultMeasurer()
	PlaceLabels(d, m)
	labels := d.Labels()
	for i := range labels {
		for j := i + 1; j < len(labels); j++ {
			if LabelBox(labels[i], m).Overlaps(LabelBox(labels[j], m)) {
				t.Errorf("labels %q and %q overlap", labels[i].Text, labels[j].Text)
			}
		}
	}
	// Geometry anchors are untouched.
	assert.Equal(t, core.Pt(200, 150), labels[1].Position)
}

func TestPlaceLabelsStaysOnSurface(t *testing.T) {
	d := labelled(
		core.Label{Position: core.Pt(398, 2), Text: "corner", Toward: core.Pt(1, 1)},
		core.Label{Position: core.Pt(1, 299), Text: "low", Toward: core.Pt(-1, -1)},
	)
	m := DefaultMeasurer()
	PlaceLabels(d, m)
	page := core.Bounds{Max: core.Pt(400, 300)}
	for _, l := range d.Labels() {
		b := LabelBox(l, m)
		if !page.Contains(b.Min) || !page.Contains(b.Max) {
			t.Errorf("label %q box %v leaves the surface", l.Text, b)
		}
	}
}
