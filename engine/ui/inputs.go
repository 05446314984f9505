package ui

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ===== Text edit =====

const minEditWidth = 160

// TextEdit edits s in place. Typed runes go to the focused edit; Enter
// inserts a newline in multi-line mode and ends editing otherwise.
func (ctx *Ctx) TextEdit(s *string, multiline bool) Response {
	id := ctx.ID().With("text")
	lines := 1
	if multiline {
		lines = max(3, strings.Count(*s, "\n")+1)
	}
	lh := ctx.lineHeight()
	var w float32 = minEditWidth
	for _, l := range strings.Split(*s, "\n") {
		lw, _ := ctx.R.Measure(l, ctx.Style.FontSize)
		w = maxf(w, lw+2*ctx.Style.Padding[0])
	}
	r := ctx.allocate(w, lh*float32(lines))
	resp := ctx.interact(id, r, true)
	if resp.Clicked {
		ctx.focused = id
	}

	if ctx.focused == id {
		before := *s
		in := &ctx.I
		for _, k := range in.Keys {
			switch k {
			case KeyBackspace:
				if *s != "" {
					_, size := utf8.DecodeLastRuneInString(*s)
					*s = (*s)[:len(*s)-size]
				}
			case KeyEnter:
				if multiline {
					*s += "\n"
				} else {
					ctx.focused = 0
				}
			case KeyEscape:
				ctx.focused = 0
			}
		}
		if len(in.Text) > 0 {
			*s += string(in.Text)
		}
		resp.Changed = *s != before
	}
	resp.Focused = ctx.focused == id

	bg := ctx.Style.Widget
	if resp.Focused {
		bg = ctx.Style.WidgetHot
	}
	ctx.emit(cmd{kind: cmdQuad, rect: r, color: bg})
	pad := ctx.Style.Padding
	y := r.Min[1] + pad[1]
	for _, l := range strings.Split(*s, "\n") {
		tw, th := ctx.R.Measure(l, ctx.Style.FontSize)
		ctx.emit(cmd{kind: cmdText, rect: RectXYWH(r.Min[0]+pad[0], y, tw, th), text: l, fontSize: ctx.Style.FontSize, color: ctx.Style.Text})
		y += lh
	}
	return resp
}

// ===== Numbers =====

type DragOpts struct {
	Speed    float64 // value change per dragged pixel
	Min, Max float64
	Clamp    bool
	Integer  bool
}

// DragValue edits v by dragging horizontally over it.
func (ctx *Ctx) DragValue(v *float64, opts DragOpts) Response {
	id := ctx.ID().With("drag")
	text := FormatNumber(*v, opts.Integer)
	w, h := ctx.R.Measure(text, ctx.Style.FontSize)
	pad := ctx.Style.Padding
	r := ctx.allocate(maxf(w+2*pad[0], 48), h+2*pad[1])
	resp := ctx.interact(id, r, true)

	if ctx.isActive(id) && ctx.I.MouseDown {
		if dx := ctx.I.MouseX - ctx.lastMouse[0]; dx != 0 {
			speed := opts.Speed
			if speed == 0 {
				speed = 1
			}
			nv := *v + float64(dx)*speed
			if opts.Clamp {
				nv = math.Max(opts.Min, math.Min(opts.Max, nv))
			}
			if opts.Integer {
				nv = math.Round(nv)
			}
			if nv != *v {
				*v = nv
				resp.Changed = true
			}
		}
	}

	bg := ctx.Style.Widget
	if resp.Hovered || ctx.isActive(id) {
		bg = ctx.Style.WidgetHot
	}
	ctx.emit(cmd{kind: cmdQuad, rect: r, color: bg})
	text = FormatNumber(*v, opts.Integer)
	tw, _ := ctx.R.Measure(text, ctx.Style.FontSize)
	ctx.emit(cmd{kind: cmdText, rect: RectXYWH(r.Min[0]+(r.W()-tw)*0.5, r.Min[1]+pad[1], tw, h), text: text, fontSize: ctx.Style.FontSize, color: ctx.Style.Text})
	return resp
}

type SliderOpts struct {
	Min, Max float64
	Step     float64 // 0 means continuous
	Integer  bool
}

const sliderWidth = 140

// Slider edits v between opts.Min and opts.Max.
func (ctx *Ctx) Slider(v *float64, opts SliderOpts) Response {
	id := ctx.ID().With("slider")
	text := FormatNumber(*v, opts.Integer)
	tw, th := ctx.R.Measure(text, ctx.Style.FontSize)
	lh := ctx.lineHeight()
	r := ctx.allocate(sliderWidth+ctx.Style.ItemSpacing[0]+tw, lh)
	track := RectXYWH(r.Min[0], r.Min[1], sliderWidth, lh)
	resp := ctx.interact(id, track, true)
	resp.Rect = r

	if ctx.isActive(id) && (ctx.I.MouseDown || ctx.I.MousePressed) && opts.Max > opts.Min {
		t := float64(clampf((ctx.I.MouseX-track.Min[0])/track.W(), 0, 1))
		nv := opts.Min + t*(opts.Max-opts.Min)
		if opts.Step > 0 {
			nv = opts.Min + math.Round((nv-opts.Min)/opts.Step)*opts.Step
		}
		if opts.Integer {
			nv = math.Round(nv)
		}
		nv = math.Max(opts.Min, math.Min(opts.Max, nv))
		if nv != *v {
			*v = nv
			resp.Changed = true
		}
	}

	rail := RectXYWH(track.Min[0], track.Min[1]+lh*0.4, track.W(), lh*0.2)
	ctx.emit(cmd{kind: cmdQuad, rect: rail, color: ctx.Style.Widget})
	if opts.Max > opts.Min {
		frac := float32((*v - opts.Min) / (opts.Max - opts.Min))
		frac = clampf(frac, 0, 1)
		knob := lh * 0.6
		kx := track.Min[0] + frac*(track.W()-knob)
		ctx.emit(cmd{kind: cmdQuad, rect: RectXYWH(track.Min[0], rail.Min[1], kx-track.Min[0], rail.H()), color: ctx.Style.WidgetOn})
		col := ctx.Style.WidgetHot
		if ctx.isActive(id) {
			col = ctx.Style.WidgetOn
		}
		ctx.emit(cmd{kind: cmdQuad, rect: RectXYWH(kx, track.Min[1]+lh*0.2, knob, knob), color: col})
	}
	text = FormatNumber(*v, opts.Integer)
	ctx.emit(cmd{kind: cmdText, rect: RectXYWH(track.Max[0]+ctx.Style.ItemSpacing[0], r.Min[1]+ctx.Style.Padding[1], tw, th), text: text, fontSize: ctx.Style.FontSize, color: ctx.Style.Text})
	return resp
}

// FormatNumber renders a value the way numeric widgets display it.
func FormatNumber(v float64, integer bool) string {
	if integer {
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// ===== Combo box =====

// ComboBox shows options[*selected] and lets the user pick another entry
// from a popup list.
func (ctx *Ctx) ComboBox(selected *int, options []string) Response {
	id := ctx.ID().With("combo")
	pad := ctx.Style.Padding
	var ow float32
	for _, o := range options {
		w, _ := ctx.R.Measure(o, ctx.Style.FontSize)
		ow = maxf(ow, w)
	}
	arrow, _ := ctx.R.Measure(" v", ctx.Style.FontSize)
	lh := ctx.lineHeight()
	r := ctx.allocate(ow+arrow+2*pad[0], lh)
	resp := ctx.interact(id, r, true)

	openID := id.With("open")
	open := LoadOr(ctx.mem, openID, false)
	if resp.Clicked {
		open = !open
	}

	cur := ""
	if *selected >= 0 && *selected < len(options) {
		cur = options[*selected]
	}
	bg := ctx.Style.Widget
	if resp.Hovered || open {
		bg = ctx.Style.WidgetHot
	}
	ctx.emit(cmd{kind: cmdQuad, rect: r, color: bg})
	tw, th := ctx.R.Measure(cur, ctx.Style.FontSize)
	ctx.emit(cmd{kind: cmdText, rect: RectXYWH(r.Min[0]+pad[0], r.Min[1]+pad[1], tw, th), text: cur, fontSize: ctx.Style.FontSize, color: ctx.Style.Text})
	ctx.emit(cmd{kind: cmdText, rect: RectXYWH(r.Max[0]-arrow-pad[0], r.Min[1]+pad[1], arrow, th), text: " v", fontSize: ctx.Style.FontSize, color: ctx.Style.TextWeak})

	if open {
		popup := RectXYWH(r.Min[0], r.Max[1], r.W(), lh*float32(len(options)))
		ctx.nextPopups = append(ctx.nextPopups, popup)
		ctx.push(scope{kind: scopeVertical, x0: popup.Min[0], y0: popup.Min[1], w: popup.W(), cx: popup.Min[0], cy: popup.Min[1], clip: popup, overlay: true})
		ctx.emit(cmd{kind: cmdQuad, rect: popup, color: ctx.Style.Popup})
		for i, o := range options {
			row := RectXYWH(popup.Min[0], popup.Min[1]+lh*float32(i), popup.W(), lh)
			ir := ctx.interact(id.With(i), row, true)
			if ir.Hovered || i == *selected {
				ctx.emit(cmd{kind: cmdQuad, rect: row, color: ctx.Style.WidgetHot})
			}
			w, h := ctx.R.Measure(o, ctx.Style.FontSize)
			ctx.emit(cmd{kind: cmdText, rect: RectXYWH(row.Min[0]+pad[0], row.Min[1]+pad[1], w, h), text: o, fontSize: ctx.Style.FontSize, color: ctx.Style.Text})
			if ir.Clicked {
				if i != *selected {
					*selected = i
					resp.Changed = true
				}
				open = false
			}
		}
		ctx.pop()
		if ctx.I.MousePressed && !popup.Contains(ctx.I.MouseX, ctx.I.MouseY) && !r.Contains(ctx.I.MouseX, ctx.I.MouseY) {
			open = false
		}
	}
	ctx.mem.Set(openID, open)
	return resp
}
