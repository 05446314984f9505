package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var viewport = RectXYWH(0, 0, 800, 600)

func newTestCtx(opts ...Option) (*Ctx, *HeadlessRenderer) {
	r := NewHeadlessRenderer()
	return New(r, opts...), r
}

// frame runs one frame with the pointer at (x, y).
func frame(ctx *Ctx, in Input, body func()) {
	in.Viewport = viewport
	ctx.BeginFrame(in)
	body()
	ctx.EndFrame()
}

func at(x, y float32) Input { return Input{MouseX: x, MouseY: y} }

func press(x, y float32) Input {
	return Input{MouseX: x, MouseY: y, MouseDown: true, MousePressed: true}
}

func release(x, y float32) Input {
	return Input{MouseX: x, MouseY: y, MouseReleased: true}
}

func TestIDWith(t *testing.T) {
	if RootID.With("a") != RootID.With("a") {
		t.Error("With is not deterministic")
	}
	if RootID.With("a") == RootID.With("b") {
		t.Error("different salts gave the same id")
	}
	if RootID.With(1) == RootID.With("1") {
		t.Error("int and string salts collide")
	}
	if RootID.With("a").With("b") == RootID.With("b").With("a") {
		t.Error("salt order is ignored")
	}
}

func TestMemoryPrune(t *testing.T) {
	m := NewMemory()
	old, fresh := RootID.With("old"), RootID.With("fresh")
	m.Set(old, 1)
	m.Tick()
	m.Tick()
	m.Tick()
	m.Set(fresh, 2)
	if n := m.Prune(1); n != 1 {
		t.Fatalf("Prune removed %d entries, want 1", n)
	}
	if _, ok := m.Get(old); ok {
		t.Error("stale entry survived")
	}
	if got := LoadOr(m, fresh, 0); got != 2 {
		t.Errorf("LoadOr = %d, want 2", got)
	}
	if _, ok := Load[string](m, fresh); ok {
		t.Error("Load with the wrong type succeeded")
	}
}

func TestResponseUnion(t *testing.T) {
	a := Response{ID: 1, Rect: RectXYWH(0, 0, 10, 10), Clicked: true}
	b := Response{ID: 2, Rect: RectXYWH(20, 0, 10, 10), Changed: true}
	want := Response{ID: 1, Rect: RectXYWH(0, 0, 30, 10), Clicked: true, Changed: true}
	if diff := cmp.Diff(want, a.Union(b)); diff != "" {
		t.Errorf("Union mismatch (-want +got):\n%s", diff)
	}
	if got := (Response{}).Union(b).ID; got != 2 {
		t.Errorf("zero receiver kept id %v, want 2", got)
	}
}

func TestCheckboxToggles(t *testing.T) {
	ctx, _ := newTestCtx()
	v := false
	var resp Response
	for _, in := range []Input{at(-1, -1), press(5, 9), release(5, 9)} {
		frame(ctx, in, func() { resp = ctx.Checkbox(&v, "on") })
	}
	if !v || !resp.Changed {
		t.Fatalf("checkbox not toggled: v=%v changed=%v", v, resp.Changed)
	}
	frame(ctx, at(5, 9), func() { resp = ctx.Checkbox(&v, "on") })
	if !v || resp.Changed {
		t.Errorf("idle frame changed the checkbox: v=%v changed=%v", v, resp.Changed)
	}
}

func TestButtonClickNeedsPressAndReleaseInside(t *testing.T) {
	ctx, _ := newTestCtx()
	var clicked bool
	for _, in := range []Input{press(5, 9), release(500, 500)} {
		frame(ctx, in, func() { clicked = ctx.Button("go").Clicked })
	}
	if clicked {
		t.Error("release outside the button counted as a click")
	}
	for _, in := range []Input{press(5, 9), release(5, 9)} {
		frame(ctx, in, func() { clicked = ctx.Button("go").Clicked })
	}
	if !clicked {
		t.Error("click not reported")
	}
}

func TestDragValue(t *testing.T) {
	ctx, _ := newTestCtx()
	v := 5.0
	opts := DragOpts{Speed: 0.5, Min: 0, Max: 8, Clamp: true}
	frame(ctx, press(24, 9), func() { ctx.DragValue(&v, opts) })
	var resp Response
	frame(ctx, Input{MouseX: 28, MouseY: 9, MouseDown: true}, func() { resp = ctx.DragValue(&v, opts) })
	if v != 7 || !resp.Changed {
		t.Fatalf("after drag v = %v (changed=%v), want 7", v, resp.Changed)
	}
	frame(ctx, Input{MouseX: 40, MouseY: 9, MouseDown: true}, func() { ctx.DragValue(&v, opts) })
	if v != 8 {
		t.Errorf("clamped v = %v, want 8", v)
	}
}

func TestSliderSnapsToStep(t *testing.T) {
	ctx, _ := newTestCtx()
	v := 0.0
	opts := SliderOpts{Min: 0, Max: 10, Step: 5}
	frame(ctx, press(sliderWidth*0.7, 9), func() { ctx.Slider(&v, opts) })
	if v != 5 {
		t.Errorf("v = %v, want 5", v)
	}
}

func TestTextEdit(t *testing.T) {
	ctx, _ := newTestCtx()
	s := "a"
	var resp Response
	for _, in := range []Input{press(5, 9), release(5, 9)} {
		frame(ctx, in, func() { resp = ctx.TextEdit(&s, false) })
	}
	if !resp.Focused {
		t.Fatal("click did not focus the edit")
	}
	frame(ctx, Input{MouseX: 5, MouseY: 9, Text: []rune("bé")}, func() { resp = ctx.TextEdit(&s, false) })
	if s != "abé" || !resp.Changed {
		t.Fatalf("typed: s = %q changed=%v", s, resp.Changed)
	}
	frame(ctx, Input{Keys: []Key{KeyBackspace}}, func() { ctx.TextEdit(&s, false) })
	if s != "ab" {
		t.Errorf("backspace: s = %q, want %q", s, "ab")
	}
	frame(ctx, Input{Keys: []Key{KeyEnter}}, func() { resp = ctx.TextEdit(&s, false) })
	if resp.Focused || s != "ab" {
		t.Errorf("enter in single-line edit: focused=%v s=%q", resp.Focused, s)
	}
}

func TestComboBoxPicksOption(t *testing.T) {
	ctx, _ := newTestCtx()
	options := []string{"a", "bb", "ccc"}
	sel := 0
	var resp Response
	show := func() { resp = ctx.ComboBox(&sel, options) }
	for _, in := range []Input{press(5, 9), release(5, 9)} {
		frame(ctx, in, show)
	}
	// Rows are one line high below the button; the third one is at y 54..72.
	for _, in := range []Input{press(10, 63), release(10, 63)} {
		frame(ctx, in, show)
	}
	if sel != 2 || !resp.Changed {
		t.Fatalf("sel = %d changed=%v, want 2", sel, resp.Changed)
	}
	open, _ := Load[bool](ctx.Memory(), RootID.With("combo").With("open"))
	if open {
		t.Error("popup still open after picking")
	}
}

func TestGridAlignsColumns(t *testing.T) {
	ctx, r := newTestCtx()
	frame(ctx, at(-1, -1), func() {
		ctx.BeginGrid(2, true)
		ctx.Label(RichText("a"))
		ctx.NextCell()
		ctx.Label(RichText("b"))
		ctx.EndRow()
		ctx.Label(RichText("ccc"))
		ctx.NextCell()
		ctx.Label(RichText("d"))
		ctx.EndGrid()
	})
	xs := map[string]float32{}
	for _, tx := range r.Texts {
		xs[tx.Text] = tx.X
	}
	// "ccc" widens the first column after "b" was placed, so only the
	// second frame lines both rows up.
	r.Reset()
	frame(ctx, at(-1, -1), func() {
		ctx.BeginGrid(2, true)
		ctx.Label(RichText("a"))
		ctx.NextCell()
		ctx.Label(RichText("b"))
		ctx.EndRow()
		ctx.Label(RichText("ccc"))
		ctx.NextCell()
		ctx.Label(RichText("d"))
		ctx.EndGrid()
	})
	for _, tx := range r.Texts {
		xs[tx.Text] = tx.X
	}
	if xs["b"] != xs["d"] {
		t.Errorf("second column not aligned: b at %v, d at %v", xs["b"], xs["d"])
	}
	if want := float32(21 + 12); xs["d"] != want {
		t.Errorf("d at %v, want %v", xs["d"], want)
	}
}

func TestHintShownOnHover(t *testing.T) {
	ctx, r := newTestCtx()
	frame(ctx, at(3, 9), func() { ctx.Hint(ctx.Label(RichText("x")), "explains x") })
	if !r.HasText("explains x") {
		t.Error("hint not drawn while hovered")
	}
	r.Reset()
	frame(ctx, at(300, 300), func() { ctx.Hint(ctx.Label(RichText("x")), "explains x") })
	if r.HasText("explains x") {
		t.Error("hint drawn without hover")
	}
}

func TestDuplicateIDWarnsOnce(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ctx, _ := newTestCtx(WithLogger(zap.New(core)))
	for range 2 {
		frame(ctx, at(-1, -1), func() {
			ctx.Button("ok")
			ctx.Button("ok")
		})
	}
	if n := logs.FilterMessage("widget id used twice in one frame").Len(); n != 1 {
		t.Errorf("got %d warnings, want 1", n)
	}
}

func TestScrollAreaClampsOffset(t *testing.T) {
	ctx, _ := newTestCtx()
	body := func() {
		ctx.BeginScrollArea(ScrollOpts{MaxHeight: 40})
		for range 10 {
			ctx.Label(RichText("row"))
		}
		ctx.EndScrollArea()
	}
	frame(ctx, Input{MouseX: 5, MouseY: 5, ScrollY: -100}, body)
	off, _ := Load[float32](ctx.Memory(), RootID.With("scroll"))
	// 10 rows of 18px with 4px spacing, minus the 40px view.
	if want := float32(10*18 + 9*4 - 40); off != want {
		t.Errorf("offset = %v, want %v", off, want)
	}
}

type clipRecorder struct {
	*HeadlessRenderer
	clips []Rect
}

func (c *clipRecorder) SetClip(r Rect) { c.clips = append(c.clips, r) }

func TestFlushSetsClipForScrollAreas(t *testing.T) {
	rec := &clipRecorder{HeadlessRenderer: NewHeadlessRenderer()}
	ctx := New(rec)
	frame(ctx, at(5, 5), func() {
		ctx.BeginScrollArea(ScrollOpts{MaxHeight: 40})
		for range 10 {
			ctx.Label(RichText("row"))
		}
		ctx.EndScrollArea()
	})
	if len(rec.clips) < 2 {
		t.Fatalf("clips = %v", rec.clips)
	}
	found := false
	for _, c := range rec.clips {
		found = found || c.H() == 40
	}
	if !found {
		t.Errorf("no clip for the scroll area in %v", rec.clips)
	}
	if last := rec.clips[len(rec.clips)-1]; last != (Rect{}) {
		t.Errorf("clip left at %v after the frame", last)
	}
}
