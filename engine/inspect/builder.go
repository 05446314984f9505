package inspect

import (
	"reflect"

	"github.com/hubastard/grove-inspector/engine/ui"
	"go.uber.org/zap"
)

// Builder configures how a root value is shown. Build one with Mut or Imut
// every frame and finish with Show.
type Builder[T any] struct {
	v         *T
	view      View[T]
	mutable   bool
	label     ui.Text
	reset     *T
	striped   bool
	mode      ViewMode
	scroll    ui.ScrollOpts
	translate func(string) (string, bool)
	log       *zap.Logger
}

// Mut shows v with editing affordances.
func Mut[T any](v *T, view View[T]) *Builder[T] {
	return &Builder[T]{v: v, view: view, mutable: true, striped: true}
}

// Imut shows v read-only.
func Imut[T any](v *T, view View[T]) *Builder[T] {
	return &Builder[T]{v: v, view: view, striped: true}
}

// Label gives the root its own collapsible row.
func (b *Builder[T]) Label(t ui.Text) *Builder[T] { b.label = t; return b }

// Reset2 offers reset buttons towards r throughout the tree.
func (b *Builder[T]) Reset2(r *T) *Builder[T] { b.reset = r; return b }

func (b *Builder[T]) Striped(on bool) *Builder[T]      { b.striped = on; return b }
func (b *Builder[T]) ViewMode(m ViewMode) *Builder[T]  { b.mode = m; return b }
func (b *Builder[T]) MaxHeight(px float32) *Builder[T] { b.scroll.MaxHeight = px; return b }
func (b *Builder[T]) AutoShrink(w, h bool) *Builder[T] { b.scroll.AutoShrink = [2]bool{w, h}; return b }
func (b *Builder[T]) Logger(l *zap.Logger) *Builder[T] { b.log = l; return b }

func (b *Builder[T]) ScrollBarVisibility(v ui.ScrollBarVisibility) *Builder[T] {
	b.scroll.Bar = v
	return b
}

// Translate sets the i18n lookup used for labels and hints.
func (b *Builder[T]) Translate(fn func(key string) (string, bool)) *Builder[T] {
	b.translate = fn
	return b
}

// Show draws the value. The id scope is derived from the label and the
// type of T, so two builders for different roots do not share state. An
// unlabelled root without a primitive shows its children at the top level.
func (b *Builder[T]) Show(u Ui) ui.Response {
	t := reflect.TypeFor[T]()
	u.PushID(b.label.Text + "\x00" + t.PkgPath() + "." + t.String())
	defer u.PopID()

	c := &Ctx{
		Ui:        u,
		Mutable:   b.mutable,
		Nesting:   -1,
		Mode:      b.mode,
		Translate: b.translate,
		Log:       b.log,
	}
	if c.Log == nil {
		c.Log = zap.NewNop()
	}

	u.BeginScrollArea(b.scroll)
	u.BeginGrid(b.mode.columns(), b.striped)
	var resp ui.Response
	if b.label.IsEmpty() && !b.view.HasPrimitive(b.v) && b.view.HasChildren(b.v, b.mutable) {
		resp = b.view.ShowChildren(c, b.v, b.reset)
	} else {
		resp = ShowRow(c, b.view, b.v, RowOpts[T]{ID: "root", Label: b.label, Reset: b.reset})
	}
	u.EndGrid()
	u.EndScrollArea()
	return resp
}
