package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// HeadlessRenderer is a Renderer without a GPU. Text is measured on a
// monospace cell grid and draw calls are recorded so frames can be
// inspected.
type HeadlessRenderer struct {
	CellW float32 // width of one terminal cell per unit of font size
	Quads []DrawnQuad
	Texts []DrawnText
}

type DrawnQuad struct {
	Rect  Rect
	Color [4]float32
}

type DrawnText struct {
	X, Y  float32
	Text  string
	Size  float32
	Color [4]float32
}

func NewHeadlessRenderer() *HeadlessRenderer {
	return &HeadlessRenderer{CellW: 0.5}
}

func (h *HeadlessRenderer) DrawQuad(cx, cy, w, hh float32, color [4]float32, _ float32) {
	h.Quads = append(h.Quads, DrawnQuad{Rect: RectXYWH(cx-w*0.5, cy-hh*0.5, w, hh), Color: color})
}

func (h *HeadlessRenderer) DrawText(x, y float32, text string, size float32, color [4]float32) {
	h.Texts = append(h.Texts, DrawnText{X: x, Y: y, Text: text, Size: size, Color: color})
}

func (h *HeadlessRenderer) Measure(text string, size float32) (float32, float32) {
	cells := 0
	lines := strings.Split(text, "\n")
	for _, l := range lines {
		cells = max(cells, runewidth.StringWidth(l))
	}
	return float32(cells) * size * h.CellW, size * float32(len(lines))
}

// Reset forgets the recorded draw calls.
func (h *HeadlessRenderer) Reset() {
	h.Quads = h.Quads[:0]
	h.Texts = h.Texts[:0]
}

// HasText reports whether a text draw call with exactly s was recorded.
func (h *HeadlessRenderer) HasText(s string) bool {
	for _, t := range h.Texts {
		if t.Text == s {
			return true
		}
	}
	return false
}
