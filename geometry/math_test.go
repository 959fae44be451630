package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"mathfig/core"
)

func TestParallel(t *testing.T) {
	assert.True(t, Parallel(core.Pt(1, 2), core.Pt(-2, -4)))
	assert.True(t, Parallel(core.Pt(1e6, 1), core.Pt(2e6, 2)))
	assert.False(t, Parallel(core.Pt(1, 0), core.Pt(1, 0.001)))
	assert.False(t, Parallel(core.Pt(0, 0), core.Pt(1, 0)), "zero vector has no direction")
}

func TestFoot(t *testing.T) {
	f := Foot(core.Pt(0.5, 1), core.Pt(0, 0), core.Pt(2, 0))
	assert.Equal(t, core.Pt(0.5, 0), f)

	// Foot on a slanted line is perpendicular to it.
	a, b, p := core.Pt(0, 0), core.Pt(3, 1), core.Pt(1, 2)
	f = Foot(p, a, b)
	assert.InDelta(t, 0, Dot(p.Sub(f), b.Sub(a)), 1e-12)
}

func TestRotate(t *testing.T) {
	p := Rotate(core.Pt(1, 0), math.Pi/2)
	assert.InDelta(t, 0, p.X, 1e-12)
	assert.InDelta(t, 1, p.Y, 1e-12)

	q := RotateAbout(core.Pt(1, 1), math.Pi)(core.Pt(2, 1))
	assert.InDelta(t, 0, q.X, 1e-12)
	assert.InDelta(t, 1, q.Y, 1e-12)
}

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, 3*math.Pi/2, NormalizeAngle(-math.Pi/2), 1e-12)
	assert.InDelta(t, 0, NormalizeAngle(2*math.Pi), 1e-12)
	assert.InDelta(t, math.Pi/3, Radians(60), 1e-12)
}

func TestSignedAreaAndCentroid(t *testing.T) {
	square := []core.Point{core.Pt(0, 0), core.Pt(2, 0), core.Pt(2, 2), core.Pt(0, 2)}
	assert.Equal(t, 4.0, SignedArea(square))
	assert.Equal(t, core.Pt(1, 1), Centroid(square))

	reversed := []core.Point{square[3], square[2], square[1], square[0]}
	assert.Equal(t, -4.0, SignedArea(reversed))
}

func TestIsSimple(t *testing.T) {
	tests := []struct {
		name string
		pts  []core.Point
		want bool
	}{
		{"square", []core.Point{core.Pt(0, 0), core.Pt(1, 0), core.Pt(1, 1), core.Pt(0, 1)}, true},
		{"bow tie", []core.Point{core.Pt(0, 0), core.Pt(1, 1), core.Pt(1, 0), core.Pt(0, 1)}, false},
		{"repeated vertex", []core.Point{core.Pt(0, 0), core.Pt(1, 0), core.Pt(1, 0), core.Pt(0, 1)}, false},
		{"flat", []core.Point{core.Pt(0, 0), core.Pt(1, 0), core.Pt(2, 0), core.Pt(3, 0)}, false},
		{"concave dart", []core.Point{core.Pt(0, 0), core.Pt(2, 1), core.Pt(0, 2), core.Pt(1, 1)}, true},
		{"triangle", []core.Point{core.Pt(0, 0), core.Pt(1, 0), core.Pt(0, 1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSimple(tt.pts))
		})
	}
}

func TestShear(t *testing.T) {
	pts := Transform([]core.Point{core.Pt(0, 0), core.Pt(0, 2)}, Shear(0.5))
	assert.Equal(t, core.Pt(0, 0), pts[0])
	assert.Equal(t, core.Pt(1, 2), pts[1])
}

func TestClipSegment(t *testing.T) {
	w := core.Bounds{Min: core.Pt(-1, -1), Max: core.Pt(1, 1)}
	tests := []struct {
		name   string
		a, b   core.Point
		ok     bool
		ca, cb core.Point
	}{
		{"inside", core.Pt(-0.5, 0), core.Pt(0.5, 0), true, core.Pt(-0.5, 0), core.Pt(0.5, 0)},
		{"crosses both sides", core.Pt(-2, -2), core.Pt(2, 2), true, core.Pt(-1, -1), core.Pt(1, 1)},
		{"steep through window", core.Pt(0, -10), core.Pt(0.01, 10), true, core.Pt(0.0045, -1), core.Pt(0.0055, 1)},
		{"above", core.Pt(-2, 2), core.Pt(2, 3), false, core.Point{}, core.Point{}},
		{"misses corner", core.Pt(0.5, 2), core.Pt(2, 0.5), false, core.Point{}, core.Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ca, cb, ok := ClipSegment(w, tt.a, tt.b)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.InDelta(t, tt.ca.X, ca.X, 1e-9)
			assert.InDelta(t, tt.ca.Y, ca.Y, 1e-9)
			assert.InDelta(t, tt.cb.X, cb.X, 1e-9)
			assert.InDelta(t, tt.cb.Y, cb.Y, 1e-9)
		})
	}
}
