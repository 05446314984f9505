package text

import (
	"github.com/hubastard/grove-inspector/engine/colors"
	"github.com/hubastard/grove-inspector/engine/gfx/renderer2d"
	"github.com/hubastard/grove-inspector/engine/ui"
)

// Painter draws ui frames through the 2D batcher. It implements
// ui.Renderer and ui.Clipper.
type Painter struct {
	R2D  *renderer2d.Renderer2D
	Font *Font
}

var (
	_ ui.Renderer = (*Painter)(nil)
	_ ui.Clipper  = (*Painter)(nil)
)

func (p *Painter) DrawQuad(cx, cy, w, h float32, color [4]float32, rotation float32) {
	p.R2D.DrawQuad(cx, cy, w, h, colors.Color(color), rotation)
}

func (p *Painter) DrawText(x, y float32, s string, size float32, color [4]float32) {
	DrawText(p.R2D, p.Font, x, y, s, size, colors.Color(color))
}

func (p *Painter) Measure(s string, size float32) (float32, float32) {
	return MeasureText(p.Font, s, size)
}

func (p *Painter) SetClip(r ui.Rect) {
	p.R2D.SetScissor(r.Min[0], r.Min[1], r.W(), r.H())
}
