package ui

import "github.com/hubastard/grove-inspector/engine/colors"

// ===== Label =====

// Label draws non-interactive text. The response still reports hovering so
// that hints can be attached.
func (ctx *Ctx) Label(t Text) Response {
	size := t.size(ctx.Style.FontSize)
	w, h := ctx.R.Measure(t.Text, size)
	pad := ctx.Style.Padding
	r := ctx.allocate(w, h+2*pad[1])
	ctx.emit(cmd{
		kind:     cmdText,
		rect:     RectXYWH(r.Min[0], r.Min[1]+pad[1], w, h),
		text:     t.Text,
		fontSize: size,
		color:    ctx.textColor(t),
	})
	return ctx.passive(r)
}

// SelectableLabel draws text the user can select; selecting it takes
// keyboard focus so it is highlighted until focus moves on.
func (ctx *Ctx) SelectableLabel(t Text) Response {
	id := ctx.ID().With("sel:" + t.Text)
	size := t.size(ctx.Style.FontSize)
	w, h := ctx.R.Measure(t.Text, size)
	pad := ctx.Style.Padding
	r := ctx.allocate(w+2*pad[0], h+2*pad[1])
	resp := ctx.interact(id, r, true)
	if resp.Clicked {
		ctx.focused = id
	}
	if ctx.focused == id || resp.Hovered {
		bg := ctx.Style.Widget
		if ctx.focused == id {
			bg = ctx.Style.WidgetOn.WithAlpha(0.35)
		}
		ctx.emit(cmd{kind: cmdQuad, rect: r, color: bg})
	}
	ctx.emit(cmd{
		kind:     cmdText,
		rect:     RectXYWH(r.Min[0]+pad[0], r.Min[1]+pad[1], w, h),
		text:     t.Text,
		fontSize: size,
		color:    ctx.textColor(t),
	})
	resp.Focused = ctx.focused == id
	return resp
}

func (ctx *Ctx) textColor(t Text) [4]float32 {
	switch {
	case t.Color != (colors.Color{}):
		return t.Color
	case t.Heading || t.Strong:
		return ctx.Style.Heading
	default:
		return ctx.Style.Text
	}
}

func (ctx *Ctx) passive(r Rect) Response {
	in := &ctx.I
	hot := r.Contains(in.MouseX, in.MouseY) && ctx.top().clip.Contains(in.MouseX, in.MouseY) && !ctx.blocked(ctx.layer())
	return Response{Rect: r, Hovered: hot, Layer: ctx.layer()}
}

// ===== Button =====

func (ctx *Ctx) Button(text string) Response {
	id := ctx.ID().With("btn:" + text)
	w, h := ctx.R.Measure(text, ctx.Style.FontSize)
	pad := ctx.Style.Padding
	r := ctx.allocate(w+2*pad[0]+4, h+2*pad[1])
	resp := ctx.interact(id, r, true)

	bg := ctx.Style.Widget
	switch {
	case ctx.isActive(id):
		bg = ctx.Style.WidgetOn
	case resp.Hovered:
		bg = ctx.Style.WidgetHot
	}
	ctx.emit(cmd{kind: cmdQuad, rect: r, color: bg})
	tx := r.Min[0] + (r.W()-w)*0.5
	ty := r.Min[1] + (r.H()-h)*0.5
	ctx.emit(cmd{kind: cmdText, rect: RectXYWH(tx, ty, w, h), text: text, fontSize: ctx.Style.FontSize, color: ctx.Style.Text})
	return resp
}

// ===== Checkbox =====

func (ctx *Ctx) Checkbox(v *bool, label string) Response {
	id := ctx.ID().With("check:" + label)
	lh := ctx.lineHeight()
	box := lh - 2*ctx.Style.Padding[1]
	var tw float32
	if label != "" {
		tw, _ = ctx.R.Measure(label, ctx.Style.FontSize)
		tw += ctx.Style.ItemSpacing[0]
	}
	r := ctx.allocate(box+tw, lh)
	resp := ctx.interact(id, r, true)
	if resp.Clicked {
		*v = !*v
		resp.Changed = true
	}
	b := RectXYWH(r.Min[0], r.Min[1]+ctx.Style.Padding[1], box, box)
	bg := ctx.Style.Widget
	if resp.Hovered {
		bg = ctx.Style.WidgetHot
	}
	ctx.emit(cmd{kind: cmdQuad, rect: b, color: bg})
	if *v {
		inset := box * 0.25
		ctx.emit(cmd{kind: cmdQuad, rect: RectXYWH(b.Min[0]+inset, b.Min[1]+inset, box-2*inset, box-2*inset), color: ctx.Style.WidgetOn})
	}
	if label != "" {
		_, th := ctx.R.Measure(label, ctx.Style.FontSize)
		ctx.emit(cmd{kind: cmdText, rect: RectXYWH(b.Max[0]+ctx.Style.ItemSpacing[0], r.Min[1]+ctx.Style.Padding[1], tw, th), text: label, fontSize: ctx.Style.FontSize, color: ctx.Style.Text})
	}
	return resp
}

// ===== Hint =====

// Hint shows text in a tooltip while r is hovered and returns r.
func (ctx *Ctx) Hint(r Response, text string) Response {
	if !r.Hovered || text == "" {
		return r
	}
	w, h := ctx.R.Measure(text, ctx.Style.FontSize)
	pad := ctx.Style.Padding
	x, y := ctx.I.MouseX+12, ctx.I.MouseY+16
	box := RectXYWH(x, y, w+2*pad[0], h+2*pad[1])
	ctx.overlay = append(ctx.overlay,
		cmd{kind: cmdQuad, rect: box, color: ctx.Style.Popup},
		cmd{kind: cmdText, rect: RectXYWH(x+pad[0], y+pad[1], w, h), text: text, fontSize: ctx.Style.FontSize, color: ctx.Style.Text},
	)
	return r
}
