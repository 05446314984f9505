package ui

import (
	"github.com/hubastard/grove-inspector/engine/colors"
	"go.uber.org/zap"
)

// ===== Engine-facing seams =====

type Renderer interface {
	// Draws a solid quad centered at (cx, cy) with w,h and color RGBA [0..1]
	DrawQuad(cx, cy, w, h float32, color [4]float32, rotation float32)
	// Draws text top-left at (x,y)
	DrawText(x, y float32, text string, size float32, color [4]float32)
	// Measures text (w,h) for a given font size
	Measure(text string, size float32) (w, h float32)
}

// Clipper is implemented by renderers that can restrict drawing to a
// rectangle. Commands partly inside a scroll area are then cut at its edge
// instead of drawn whole. The zero Rect lifts the restriction.
type Clipper interface {
	SetClip(r Rect)
}

// Key is a non-text key the widgets react to.
type Key uint8

const (
	KeyBackspace Key = iota + 1
	KeyEnter
	KeyEscape
	KeyTab
)

type Input struct {
	MouseX, MouseY float32
	MouseDown      bool
	MousePressed   bool
	MouseReleased  bool
	ScrollY        float32 // wheel delta, positive scrolls content up
	Text           []rune  // runes typed this frame
	Keys           []Key   // keys pressed this frame
	Viewport       Rect    // area the frame may use
}

func (in *Input) pressed(k Key) bool {
	for _, p := range in.Keys {
		if p == k {
			return true
		}
	}
	return false
}

// Style holds the metrics and palette of the host.
type Style struct {
	FontSize    float32
	Padding     [2]float32 // inner widget padding x, y
	ItemSpacing [2]float32
	ColSpacing  float32
	ScrollBarW  float32
	Text        colors.Color
	TextWeak    colors.Color
	Widget      colors.Color
	WidgetHot   colors.Color
	WidgetOn    colors.Color
	Stripe      colors.Color
	Popup       colors.Color
	Heading     colors.Color
}

func DefaultStyle() Style {
	return Style{
		FontSize:    14,
		Padding:     [2]float32{4, 2},
		ItemSpacing: [2]float32{6, 4},
		ColSpacing:  12,
		ScrollBarW:  8,
		Text:        colors.LightGray,
		TextWeak:    colors.Gray,
		Widget:      colors.Slate,
		WidgetHot:   colors.SlateHot,
		WidgetOn:    colors.Accent,
		Stripe:      colors.White.WithAlpha(0.04),
		Popup:       colors.Panel,
		Heading:     colors.White,
	}
}

// ===== Immediate-UI context =====

type Ctx struct {
	R     Renderer
	I     Input
	Style Style

	log *zap.Logger
	mem *Memory

	// Drawing commands recorded during the frame and flushed in EndFrame.
	cmds    []cmd
	overlay []cmd

	scopes []scope
	ids    []ID

	// Interaction state: hot/active per widget, keyboard focus.
	state     map[ID]widgetState
	active    ID
	focused   ID
	lastMouse [2]float32

	// Popup rects of the previous frame block clicks underneath them.
	popups     []Rect
	nextPopups []Rect

	seen    map[ID]struct{}
	warned  map[ID]struct{}
	started bool
}

type widgetState struct {
	hot    bool
	active bool
}

// Option configures a Ctx.
type Option func(*Ctx)

func WithLogger(l *zap.Logger) Option { return func(c *Ctx) { c.log = l } }
func WithStyle(s Style) Option        { return func(c *Ctx) { c.Style = s } }
func WithMemory(m *Memory) Option     { return func(c *Ctx) { c.mem = m } }

func New(r Renderer, opts ...Option) *Ctx {
	ctx := &Ctx{
		R:      r,
		Style:  DefaultStyle(),
		log:    zap.NewNop(),
		cmds:   make([]cmd, 0, 1024),
		state:  make(map[ID]widgetState, 256),
		seen:   make(map[ID]struct{}, 256),
		warned: make(map[ID]struct{}),
	}
	for _, o := range opts {
		o(ctx)
	}
	if ctx.mem == nil {
		ctx.mem = NewMemory()
	}
	return ctx
}

func (ctx *Ctx) Memory() *Memory     { return ctx.mem }
func (ctx *Ctx) Logger() *zap.Logger { return ctx.log }

// BeginFrame resets the per-frame buffers and installs the frame input.
func (ctx *Ctx) BeginFrame(in Input) {
	ctx.lastMouse = [2]float32{ctx.I.MouseX, ctx.I.MouseY}
	if !ctx.started {
		ctx.lastMouse = [2]float32{in.MouseX, in.MouseY}
		ctx.started = true
	}
	ctx.I = in
	ctx.cmds = ctx.cmds[:0]
	ctx.overlay = ctx.overlay[:0]
	ctx.scopes = ctx.scopes[:0]
	ctx.ids = append(ctx.ids[:0], RootID)
	ctx.popups, ctx.nextPopups = ctx.nextPopups, ctx.popups[:0]
	clear(ctx.seen)
	ctx.mem.Tick()

	vp := in.Viewport
	ctx.scopes = append(ctx.scopes, scope{
		kind: scopeVertical,
		x0:   vp.Min[0], y0: vp.Min[1],
		w:  vp.W(),
		cx: vp.Min[0], cy: vp.Min[1],
		clip: vp,
	})
}

// EndFrame draws everything recorded this frame, overlay last.
func (ctx *Ctx) EndFrame() {
	if ctx.I.MouseReleased {
		ctx.active = 0
	}
	if ctx.I.MousePressed && ctx.active == 0 {
		// Clicking on nothing drops keyboard focus.
		ctx.focused = 0
	}
	ctx.flush(ctx.cmds)
	ctx.flush(ctx.overlay)
}

// ===== Id stack =====

func (ctx *Ctx) ID() ID { return ctx.ids[len(ctx.ids)-1] }

func (ctx *Ctx) PushID(salt any) { ctx.ids = append(ctx.ids, ctx.ID().With(salt)) }

func (ctx *Ctx) PopID() {
	if len(ctx.ids) > 1 {
		ctx.ids = ctx.ids[:len(ctx.ids)-1]
	}
}

// register notes that id is used by a widget this frame and warns once
// when two widgets share it.
func (ctx *Ctx) register(id ID) {
	if _, dup := ctx.seen[id]; dup {
		if _, ok := ctx.warned[id]; !ok {
			ctx.warned[id] = struct{}{}
			ctx.log.Warn("widget id used twice in one frame", zap.Stringer("id", id))
		}
		return
	}
	ctx.seen[id] = struct{}{}
}

// interact runs the shared hot/active bookkeeping for a widget rect.
func (ctx *Ctx) interact(id ID, r Rect, sense bool) Response {
	ctx.register(id)
	resp := Response{ID: id, Rect: r, Layer: ctx.layer()}
	if !sense {
		return resp
	}
	in := &ctx.I
	clip := ctx.top().clip
	hot := r.Contains(in.MouseX, in.MouseY) && clip.Contains(in.MouseX, in.MouseY) && !ctx.blocked(resp.Layer)
	st := ctx.state[id]
	if in.MousePressed && hot {
		st.active = true
		ctx.active = id
	}
	if in.MouseReleased {
		if st.active && hot {
			resp.Clicked = true
		}
		st.active = false
	}
	st.hot = hot
	ctx.state[id] = st
	resp.Hovered = hot
	resp.Focused = ctx.focused == id
	return resp
}

func (ctx *Ctx) isActive(id ID) bool { return ctx.state[id].active }

// blocked reports whether the pointer is over a popup of the previous frame
// while the widget itself is not part of the overlay.
func (ctx *Ctx) blocked(layer LayerID) bool {
	if layer == LayerOverlay {
		return false
	}
	for _, p := range ctx.popups {
		if p.Contains(ctx.I.MouseX, ctx.I.MouseY) {
			return true
		}
	}
	return false
}

func (ctx *Ctx) layer() LayerID {
	if ctx.top().overlay {
		return LayerOverlay
	}
	return LayerBackground
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
