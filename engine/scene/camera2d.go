package scene

// OrthoCamera2D maps framebuffer pixels to clip space: origin top-left,
// Y down, one unit per pixel. The ui host lays out in the same space, so
// pointer coordinates need no conversion.
type OrthoCamera2D struct {
	Left, Right, Bottom, Top float32
	Near, Far                float32
	vp                       [16]float32
	dirty                    bool
}

func NewScreenOrtho(width, height int) *OrthoCamera2D {
	c := &OrthoCamera2D{Near: -1, Far: 1}
	c.SetViewportPixels(width, height)
	c.Recalculate()
	return c
}

func (c *OrthoCamera2D) SetViewportPixels(w, h int) {
	c.Left, c.Right = 0, float32(w)
	c.Top, c.Bottom = 0, float32(h)
	c.dirty = true
}

func (c *OrthoCamera2D) Width() float32  { return c.Right - c.Left }
func (c *OrthoCamera2D) Height() float32 { return c.Bottom - c.Top }

func (c *OrthoCamera2D) VP() [16]float32 {
	if c.dirty {
		c.Recalculate()
	}
	return c.vp
}

func (c *OrthoCamera2D) Recalculate() {
	c.vp = ortho(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
	c.dirty = false
}

// ---- tiny mat helpers (column-major, GLSL-style) ----

func ortho(l, r, b, t, n, f float32) [16]float32 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}

// Apply transforms the point (x, y, 0, 1) by m.
func Apply(m [16]float32, x, y float32) (float32, float32) {
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}
