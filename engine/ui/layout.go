package ui

// ===== Internal structs =====

type scopeKind uint8

const (
	scopeVertical scopeKind = iota
	scopeGrid
	scopeScroll
)

type scope struct {
	kind scopeKind
	id   ID

	// origin, available width and placement cursor
	x0, y0, w float32
	cx, cy    float32
	lineH     float32
	maxX      float32

	clip    Rect
	overlay bool

	// grid bookkeeping
	cols      int
	col       int
	row       int
	rowY      float32
	prevW     []float32
	curW      []float32
	cellX0    float32
	striped   bool
	stripeCmd int

	// scroll bookkeeping
	view   Rect
	offset float32
	scroll ScrollOpts
}

type cmdKind uint8

const (
	cmdQuad cmdKind = iota
	cmdText
)

type cmd struct {
	kind     cmdKind
	rect     Rect
	text     string
	fontSize float32
	color    [4]float32
	clip     Rect
}

func (ctx *Ctx) top() *scope { return &ctx.scopes[len(ctx.scopes)-1] }

// allocate reserves a w*h rect at the cursor of the innermost scope.
func (ctx *Ctx) allocate(w, h float32) Rect {
	s := ctx.top()
	sp := ctx.Style.ItemSpacing
	switch s.kind {
	case scopeGrid:
		r := RectXYWH(s.cx, s.rowY, w, h)
		s.cx += w + sp[0]
		s.lineH = maxf(s.lineH, h)
		if used := s.cx - sp[0] - s.cellX0; used > s.curW[s.col] {
			s.curW[s.col] = used
		}
		return r
	default:
		r := RectXYWH(s.cx, s.cy, w, h)
		s.cy += h + sp[1]
		s.maxX = maxf(s.maxX, s.cx+w)
		return r
	}
}

// available is the width left on the current line.
func (ctx *Ctx) available() float32 {
	s := ctx.top()
	if s.kind == scopeGrid {
		if s.col < len(s.prevW) && s.prevW[s.col] > 0 {
			return maxf(0, s.cellX0+s.prevW[s.col]-s.cx)
		}
		return maxf(0, s.x0+s.w-s.cx)
	}
	return maxf(0, s.x0+s.w-s.cx)
}

// Space leaves px of empty room along the current line (grid) or column.
func (ctx *Ctx) Space(px float32) {
	s := ctx.top()
	if s.kind == scopeGrid {
		s.cx += px
		if used := s.cx - s.cellX0; used > s.curW[s.col] {
			s.curW[s.col] = used
		}
		return
	}
	s.cy += px
}

func (ctx *Ctx) push(s scope) {
	if len(ctx.scopes) > 0 {
		parent := ctx.top()
		if s.clip.Empty() {
			s.clip = parent.clip
		}
		s.overlay = s.overlay || parent.overlay
	}
	ctx.scopes = append(ctx.scopes, s)
}

func (ctx *Ctx) pop() scope {
	s := ctx.scopes[len(ctx.scopes)-1]
	ctx.scopes = ctx.scopes[:len(ctx.scopes)-1]
	return s
}

// ===== Grid =====

// BeginGrid opens a grid of cols columns at the cursor. Column widths are
// taken from the previous frame so that all rows line up.
func (ctx *Ctx) BeginGrid(cols int, striped bool) {
	id := ctx.ID().With("grid")
	ctx.register(id)
	prev, _ := Load[[]float32](ctx.mem, id)
	if len(prev) != cols {
		prev = make([]float32, cols)
	}
	parent := ctx.top()
	s := scope{
		kind: scopeGrid,
		id:   id,
		x0:   parent.cx, y0: parent.cy,
		w:       ctx.available(),
		cols:    cols,
		prevW:   prev,
		curW:    make([]float32, cols),
		rowY:    parent.cy,
		striped: striped,
	}
	s.cx, s.cellX0 = s.x0, s.x0
	ctx.push(s)
	ctx.beginRow()
}

func (ctx *Ctx) beginRow() {
	s := ctx.top()
	s.stripeCmd = -1
	if s.striped && s.row%2 == 1 {
		s.stripeCmd = len(ctx.cmds)
		ctx.emit(cmd{kind: cmdQuad, color: ctx.Style.Stripe})
	}
}

func (ctx *Ctx) cellX(s *scope, col int) float32 {
	x := s.x0
	for i := 0; i < col && i < len(s.prevW); i++ {
		x += maxf(s.prevW[i], s.curW[i]) + ctx.Style.ColSpacing
	}
	return x
}

// NextCell moves the cursor to the next column of the current grid row.
func (ctx *Ctx) NextCell() {
	s := ctx.top()
	if s.kind != scopeGrid || s.col+1 >= s.cols {
		return
	}
	s.col++
	s.cellX0 = ctx.cellX(s, s.col)
	s.cx = s.cellX0
}

// EndRow closes the current grid row.
func (ctx *Ctx) EndRow() {
	s := ctx.top()
	if s.kind != scopeGrid {
		return
	}
	h := s.lineH
	if h == 0 {
		h = ctx.lineHeight()
	}
	if s.stripeCmd >= 0 && s.stripeCmd < len(ctx.cmds) {
		ctx.cmds[s.stripeCmd].rect = RectXYWH(s.x0, s.rowY-ctx.Style.ItemSpacing[1]*0.5, ctx.gridWidth(s), h+ctx.Style.ItemSpacing[1])
	}
	s.rowY += h + ctx.Style.ItemSpacing[1]
	s.row++
	s.col = 0
	s.lineH = 0
	s.cx, s.cellX0 = s.x0, s.x0
	ctx.beginRow()
}

func (ctx *Ctx) gridWidth(s *scope) float32 {
	var w float32
	for i := 0; i < s.cols; i++ {
		w += maxf(s.prevW[i], s.curW[i])
	}
	return w + ctx.Style.ColSpacing*float32(s.cols-1)
}

// EndGrid closes the grid and remembers its column widths.
func (ctx *Ctx) EndGrid() {
	if ctx.top().kind != scopeGrid {
		return
	}
	if ctx.top().lineH > 0 {
		ctx.EndRow()
	}
	s := ctx.pop()
	if s.stripeCmd >= 0 && s.stripeCmd < len(ctx.cmds) {
		// A stripe reserved for a row that never got content.
		ctx.cmds[s.stripeCmd].rect = Rect{}
	}
	ctx.mem.Set(s.id, s.curW)
	ctx.allocate(ctx.gridWidth(&s), maxf(0, s.rowY-s.y0-ctx.Style.ItemSpacing[1]))
}

// ===== Scroll area =====

type ScrollBarVisibility uint8

const (
	ScrollBarWhenNeeded ScrollBarVisibility = iota
	ScrollBarAlways
	ScrollBarHidden
)

type ScrollOpts struct {
	MaxHeight  float32 // 0 uses the rest of the viewport
	AutoShrink [2]bool // shrink width/height to the content
	Bar        ScrollBarVisibility
}

// BeginScrollArea opens a vertically scrolling region at the cursor.
func (ctx *Ctx) BeginScrollArea(opts ScrollOpts) {
	id := ctx.ID().With("scroll")
	ctx.register(id)
	parent := ctx.top()
	h := parent.clip.Max[1] - parent.cy
	if opts.MaxHeight > 0 {
		h = minf(h, opts.MaxHeight)
	}
	view := RectXYWH(parent.cx, parent.cy, ctx.available(), maxf(0, h))
	offset := LoadOr[float32](ctx.mem, id, 0)
	ctx.push(scope{
		kind:   scopeScroll,
		id:     id,
		x0:     view.Min[0],
		y0:     view.Min[1] - offset,
		w:      view.W() - ctx.Style.ScrollBarW,
		cx:     view.Min[0],
		cy:     view.Min[1] - offset,
		clip:   intersect(parent.clip, view),
		view:   view,
		offset: offset,
		scroll: opts,
	})
}

// EndScrollArea applies wheel input, draws the bar and closes the region.
func (ctx *Ctx) EndScrollArea() {
	if ctx.top().kind != scopeScroll {
		return
	}
	s := ctx.pop()
	contentH := s.cy - s.y0 - ctx.Style.ItemSpacing[1]
	viewH := s.view.H()
	maxOff := maxf(0, contentH-viewH)
	off := s.offset
	if s.view.Contains(ctx.I.MouseX, ctx.I.MouseY) && ctx.I.ScrollY != 0 {
		off -= ctx.I.ScrollY * 3 * ctx.lineHeight()
	}
	off = clampf(off, 0, maxOff)
	ctx.mem.Set(s.id, off)

	showBar := s.scroll.Bar == ScrollBarAlways || (s.scroll.Bar == ScrollBarWhenNeeded && maxOff > 0)
	if showBar && viewH > 0 {
		track := RectXYWH(s.view.Max[0]-ctx.Style.ScrollBarW, s.view.Min[1], ctx.Style.ScrollBarW, viewH)
		ctx.emit(cmd{kind: cmdQuad, rect: track, color: ctx.Style.Widget})
		frac := float32(1)
		if contentH > 0 {
			frac = clampf(viewH/contentH, 0.1, 1)
		}
		thumbH := viewH * frac
		thumbY := s.view.Min[1]
		if maxOff > 0 {
			thumbY += (viewH - thumbH) * off / maxOff
		}
		ctx.emit(cmd{kind: cmdQuad, rect: RectXYWH(track.Min[0], thumbY, ctx.Style.ScrollBarW, thumbH), color: ctx.Style.WidgetHot})
	}

	w, h := s.view.W(), viewH
	if s.scroll.AutoShrink[0] {
		w = minf(w, s.maxX-s.x0+ctx.Style.ScrollBarW)
	}
	if s.scroll.AutoShrink[1] {
		h = minf(h, contentH)
	}
	ctx.allocate(maxf(0, w), maxf(0, h))
}

func intersect(a, b Rect) Rect {
	r := Rect{
		Min: [2]float32{maxf(a.Min[0], b.Min[0]), maxf(a.Min[1], b.Min[1])},
		Max: [2]float32{minf(a.Max[0], b.Max[0]), minf(a.Max[1], b.Max[1])},
	}
	if r.Empty() {
		return Rect{}
	}
	return r
}

// ===== Draw recording =====

func (ctx *Ctx) emit(c cmd) {
	if c.clip.Empty() && len(ctx.scopes) > 0 {
		c.clip = ctx.top().clip
	}
	if ctx.layer() == LayerOverlay {
		ctx.overlay = append(ctx.overlay, c)
		return
	}
	ctx.cmds = append(ctx.cmds, c)
}

func (ctx *Ctx) flush(cmds []cmd) {
	clipper, _ := ctx.R.(Clipper)
	var cur Rect
	for i := range cmds {
		c := &cmds[i]
		if c.rect.Empty() && c.kind == cmdQuad {
			continue
		}
		if !c.clip.Empty() && !c.rect.Intersects(c.clip) {
			continue
		}
		if clipper != nil && c.clip != cur {
			cur = c.clip
			clipper.SetClip(cur)
		}
		switch c.kind {
		case cmdQuad:
			cx, cy := c.rect.Center()
			ctx.R.DrawQuad(cx, cy, c.rect.W(), c.rect.H(), c.color, 0)
		case cmdText:
			ctx.R.DrawText(c.rect.Min[0], c.rect.Min[1], c.text, c.fontSize, c.color)
		}
	}
	if clipper != nil && !cur.Empty() {
		clipper.SetClip(Rect{})
	}
}

func (ctx *Ctx) lineHeight() float32 {
	_, h := ctx.R.Measure("Ag", ctx.Style.FontSize)
	return h + 2*ctx.Style.Padding[1]
}
