package scene

import (
	"math"
	"testing"
)

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-5 }

func TestScreenOrthoCorners(t *testing.T) {
	c := NewScreenOrtho(800, 600)
	for _, tt := range []struct {
		x, y, wantX, wantY float32
	}{
		{0, 0, -1, 1},
		{800, 600, 1, -1},
		{400, 300, 0, 0},
	} {
		if x, y := Apply(c.VP(), tt.x, tt.y); !near(x, tt.wantX) || !near(y, tt.wantY) {
			t.Errorf("(%v, %v) -> (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wantX, tt.wantY)
		}
	}

	c.SetViewportPixels(1000, 500)
	if c.Width() != 1000 || c.Height() != 500 {
		t.Errorf("size = %vx%v", c.Width(), c.Height())
	}
	if x, y := Apply(c.VP(), 1000, 0); !near(x, 1) || !near(y, 1) {
		t.Errorf("top-right -> (%v, %v)", x, y)
	}
}
