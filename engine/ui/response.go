package ui

// Rect is an axis-aligned rectangle in screen pixels, Y pointing down.
type Rect struct {
	Min, Max [2]float32
}

func RectXYWH(x, y, w, h float32) Rect {
	return Rect{Min: [2]float32{x, y}, Max: [2]float32{x + w, y + h}}
}

func (r Rect) W() float32 { return r.Max[0] - r.Min[0] }
func (r Rect) H() float32 { return r.Max[1] - r.Min[1] }

func (r Rect) Empty() bool { return r.W() <= 0 || r.H() <= 0 }

func (r Rect) Center() (float32, float32) {
	return (r.Min[0] + r.Max[0]) * 0.5, (r.Min[1] + r.Max[1]) * 0.5
}

func (r Rect) Contains(x, y float32) bool {
	return x >= r.Min[0] && x <= r.Max[0] && y >= r.Min[1] && y <= r.Max[1]
}

func (r Rect) Intersects(o Rect) bool {
	return r.Min[0] < o.Max[0] && o.Min[0] < r.Max[0] && r.Min[1] < o.Max[1] && o.Min[1] < r.Max[1]
}

// Union returns the smallest rect containing both. Empty rects are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		Min: [2]float32{minf(r.Min[0], o.Min[0]), minf(r.Min[1], o.Min[1])},
		Max: [2]float32{maxf(r.Max[0], o.Max[0]), maxf(r.Max[1], o.Max[1])},
	}
}

// LayerID tells which paint layer a widget was drawn on.
type LayerID uint8

const (
	LayerBackground LayerID = iota
	LayerOverlay
)

// Response is the per-widget outcome of a frame. Responses of nested
// widgets are combined with Union.
type Response struct {
	ID      ID
	Rect    Rect
	Clicked bool
	Changed bool
	Hovered bool
	Focused bool
	Layer   LayerID
}

// Union ors the interaction flags and merges the rects. The id of the
// receiver is kept unless it is zero.
func (r Response) Union(o Response) Response {
	out := Response{
		ID:      r.ID,
		Rect:    r.Rect.Union(o.Rect),
		Clicked: r.Clicked || o.Clicked,
		Changed: r.Changed || o.Changed,
		Hovered: r.Hovered || o.Hovered,
		Focused: r.Focused || o.Focused,
		Layer:   r.Layer,
	}
	if out.ID == 0 {
		out.ID = o.ID
		out.Layer = o.Layer
	}
	return out
}

// MarkChanged returns r with Changed set.
func (r Response) MarkChanged() Response {
	r.Changed = true
	return r
}
