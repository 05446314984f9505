// Package inspect renders interactive inspectors and editors for Go values
// inside an immediate-mode ui host.
//
// Every supported type participates through a View: a small set of
// functions telling whether the value has an inline primitive, whether it
// has nested rows, how to draw both, and how to clone and compare values
// for the reset button. Views compose: containers and records are built
// from the views of their elements and fields.
package inspect

import (
	"sync"

	"github.com/hubastard/grove-inspector/engine/ui"
	"go.uber.org/zap"
)

// Ui is the part of the host the inspector draws with. *ui.Ctx implements
// it; inspecttest.Host is a scripted stand-in for tests.
type Ui interface {
	ID() ui.ID
	PushID(salt any)
	PopID()
	Memory() *ui.Memory

	Label(t ui.Text) ui.Response
	SelectableLabel(t ui.Text) ui.Response
	Checkbox(v *bool, label string) ui.Response
	TextEdit(s *string, multiline bool) ui.Response
	DragValue(v *float64, opts ui.DragOpts) ui.Response
	Slider(v *float64, opts ui.SliderOpts) ui.Response
	ComboBox(selected *int, options []string) ui.Response
	Button(text string) ui.Response
	Hint(r ui.Response, text string) ui.Response
	Space(px float32)

	BeginGrid(cols int, striped bool)
	NextCell()
	EndRow()
	EndGrid()
	BeginScrollArea(opts ui.ScrollOpts)
	EndScrollArea()
}

var _ Ui = (*ui.Ctx)(nil)

// View is the per-type set of operations the inspector needs.
type View[T any] interface {
	// Simple reports whether values fit in the primitive slot of a row
	// without a nested region.
	Simple(mutable bool) bool
	HasPrimitive(v *T) bool
	HasChildren(v *T, mutable bool) bool
	StartCollapsed(v *T) bool

	// ShowPrimitive draws into the value cell of the current row.
	ShowPrimitive(c *Ctx, v *T) ui.Response
	// ShowChildren draws rows at c.Nesting. reset, when not nil, is the
	// value the rows offer to reset to.
	ShowChildren(c *Ctx, v *T, reset *T) ui.Response

	Clone(dst, src *T)
	Eq(a, b *T) bool
}

// Ctx is passed down the view tree during a frame.
type Ctx struct {
	Ui      Ui
	Mutable bool
	Nesting int
	Mode    ViewMode

	// Translate resolves i18n keys. It may be nil.
	Translate func(key string) (string, bool)
	Log       *zap.Logger
}

// Imut returns a copy of c that renders without editing affordances.
func (c *Ctx) Imut() *Ctx {
	if !c.Mutable {
		return c
	}
	cc := *c
	cc.Mutable = false
	return &cc
}

func (c *Ctx) child() *Ctx {
	cc := *c
	cc.Nesting++
	return &cc
}

func (c *Ctx) logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

// label resolves key through the translate function, falling back to def
// when there is no key or no translator.
func (c *Ctx) label(key, def string) string {
	if key == "" || c.Translate == nil {
		return def
	}
	s, _ := c.Translate(key)
	return s
}

// hint returns the translated hint for key, or def when none is found.
func (c *Ctx) hint(key, def string) string {
	if key == "" || c.Translate == nil {
		return def
	}
	if s, ok := c.Translate(key + ".__hint"); ok {
		return s
	}
	return def
}

// readOnly reports whether view renders immutably regardless of the
// context, as records and sum types declared imut do.
func readOnly[T any](view View[T]) bool {
	ro, ok := view.(interface{ Imut() bool })
	return ok && ro.Imut()
}

// ===== Leaf helpers =====

// leaf supplies the operations shared by comparable single-widget views.
type leaf[T comparable] struct{}

func (leaf[T]) Simple(bool) bool                      { return true }
func (leaf[T]) HasPrimitive(*T) bool                  { return true }
func (leaf[T]) HasChildren(*T, bool) bool             { return false }
func (leaf[T]) StartCollapsed(*T) bool                { return false }
func (leaf[T]) ShowChildren(*Ctx, *T, *T) ui.Response { return ui.Response{} }
func (leaf[T]) Clone(dst, src *T)                     { *dst = *src }
func (leaf[T]) Eq(a, b *T) bool                       { return *a == *b }

// ===== Lazy =====

type lazyView[T any] struct {
	get func() View[T]
}

// Lazy defers building a view until first use, which lets recursive types
// refer to their own view.
func Lazy[T any](build func() View[T]) View[T] {
	return lazyView[T]{get: sync.OnceValue(build)}
}

func (l lazyView[T]) Simple(m bool) bool            { return l.get().Simple(m) }
func (l lazyView[T]) HasPrimitive(v *T) bool        { return l.get().HasPrimitive(v) }
func (l lazyView[T]) HasChildren(v *T, m bool) bool { return l.get().HasChildren(v, m) }
func (l lazyView[T]) StartCollapsed(v *T) bool      { return l.get().StartCollapsed(v) }
func (l lazyView[T]) ShowPrimitive(c *Ctx, v *T) ui.Response {
	return l.get().ShowPrimitive(c, v)
}
func (l lazyView[T]) ShowChildren(c *Ctx, v, reset *T) ui.Response {
	return l.get().ShowChildren(c, v, reset)
}
func (l lazyView[T]) Clone(dst, src *T) { l.get().Clone(dst, src) }
func (l lazyView[T]) Eq(a, b *T) bool   { return l.get().Eq(a, b) }
func (l lazyView[T]) Imut() bool        { return readOnly(l.get()) }
