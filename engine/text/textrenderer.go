package text

import (
	"github.com/hubastard/grove-inspector/engine/colors"
	"github.com/hubastard/grove-inspector/engine/gfx/renderer2d"
)

// DrawText draws s with its top-left corner at (x,y) and the given pixel
// size. Positive Y goes downward (matching the 2D projection).
func DrawText(r2d *renderer2d.Renderer2D, font *Font, x, y float32, s string, size float32, color colors.Color) {
	scale := font.scale(size)
	penX := x
	baseY := y + font.Ascent*scale // move origin to top left
	var prev rune = -1

	for _, r := range s {
		if r == '\n' {
			penX = x
			baseY += LineHeight(font) * scale
			prev = -1
			continue
		}

		g, ok := font.glyph(r)
		if !ok {
			prev = r
			continue
		}
		if prev >= 0 {
			penX += font.Kerning[[2]rune{prev, r}] * scale
		}

		if g.W > 0 && g.H > 0 {
			// Baseline-aligned quad center (Y-down system)
			left := penX + g.BearingX*scale
			top := baseY - g.BearingY*scale
			w, h := float32(g.W)*scale, float32(g.H)*scale
			r2d.DrawSubTexQuad(left+w*0.5, top+h*0.5, w, h, g.Sub, color, 0)
		}

		penX += g.Advance * scale
		prev = r
	}
}

// MeasureText returns the size of the box DrawText fills.
func MeasureText(font *Font, s string, size float32) (width, height float32) {
	scale := font.scale(size)
	var lineW float32
	var prev rune = -1
	lineH := LineHeight(font)
	height = lineH

	for _, r := range s {
		if r == '\n' {
			width = max(width, lineW)
			lineW = 0
			height += lineH
			prev = -1
			continue
		}
		g, ok := font.glyph(r)
		if !ok {
			prev = r
			continue
		}
		if prev >= 0 {
			lineW += font.Kerning[[2]rune{prev, r}]
		}
		lineW += g.Advance
		prev = r
	}
	width = max(width, lineW)
	return width * scale, height * scale
}

func (f *Font) scale(size float32) float32 {
	if size <= 0 || f.SizePx <= 0 {
		return 1
	}
	return size / f.SizePx
}

// glyph returns the glyph of r, falling back to '?' for runes outside the
// atlas.
func (f *Font) glyph(r rune) (Glyph, bool) {
	if g, ok := f.Glyphs[r]; ok {
		return g, true
	}
	g, ok := f.Glyphs['?']
	return g, ok
}

// LineHeight is the baseline distance of consecutive lines at SizePx.
func LineHeight(font *Font) float32 { return font.Ascent - font.Descent + font.LineGap }
