package inspect

import (
	"slices"
	"strconv"

	"github.com/hubastard/grove-inspector/engine/ui"
	"go.uber.org/zap"
)

const (
	AddText    = "+"
	RemoveText = "-"
	UpText     = "↑"
	DownText   = "↓"

	// Immutable containers longer than this start collapsed.
	collapseLen = 16
)

// Expandable enables the add row of a container.
type Expandable[E any] struct {
	// Default builds new elements. Nil uses the zero value.
	Default func() E
	// MutableBeforeInsert shows an editable candidate next to the add
	// button instead of adding Default directly.
	MutableBeforeInsert bool
}

func (e *Expandable[E]) value() E {
	if e.Default != nil {
		return e.Default()
	}
	var zero E
	return zero
}

// SeqConfig controls the editing affordances of containers. Per-element
// editor configuration travels with the element view.
type SeqConfig[E any] struct {
	Expandable   *Expandable[E] // nil hides the add row
	Shrinkable   bool
	MutableValue bool
	MutableKey   bool
	MaxLen       int // 0 means unlimited
	Reorder      bool
}

// DefaultSeqConfig enables every affordance and adds zero values.
func DefaultSeqConfig[E any]() SeqConfig[E] {
	return SeqConfig[E]{
		Expandable:   &Expandable[E]{},
		Shrinkable:   true,
		MutableValue: true,
		MutableKey:   true,
		Reorder:      true,
	}
}

func (cfg SeqConfig[E]) canAdd(n int) bool {
	return cfg.Expandable != nil && (cfg.MaxLen <= 0 || n < cfg.MaxLen)
}

// ===== Row engine shared by containers =====

// seqAccess is how showSeq reaches into a container. Optional funcs are
// nil when the container does not support the operation.
type seqAccess[E any] struct {
	n    int
	elem func(i int) *E
	// commit writes back an element obtained from elem when elem returns
	// a copy.
	commit func(i int, e *E)
	salt   func(i int) any
	label  func(i int) ui.Response
	reset  func(i int) *E
	remove func(i int)
	swap   func(i, j int)
}

// showSeq draws one row per element. Removal and reordering are applied
// after every row was drawn, at most one of each per frame.
func showSeq[E any](c *Ctx, inner View[E], cfg SeqConfig[E], a seqAccess[E]) ui.Response {
	u := c.Ui
	var resp ui.Response
	remove, swap := -1, -1
	ec := c
	if !cfg.MutableValue {
		ec = c.Imut()
	}
	for i := 0; i < a.n; i++ {
		opts := RowOpts[E]{Label: ui.RichText(strconv.Itoa(i))}
		opts.ID = i
		if a.salt != nil {
			opts.ID = a.salt(i)
		}
		if a.reset != nil {
			opts.Reset = a.reset(i)
		}
		if a.label != nil {
			opts.LabelCell = func() ui.Response { return a.label(i) }
		}
		if c.Mutable {
			opts.Controls = func() ui.Response {
				var r ui.Response
				if cfg.Shrinkable && a.remove != nil {
					if b := u.Button(RemoveText); b.Clicked {
						remove = i
						r = r.Union(b)
					}
				}
				if cfg.Reorder && a.swap != nil {
					if i > 0 && u.Button(UpText).Clicked {
						swap = i
					}
					if i+1 < a.n && u.Button(DownText).Clicked {
						swap = i + 1
					}
				}
				return r
			}
		}
		e := a.elem(i)
		resp = resp.Union(ShowRow(ec, inner, e, opts))
		if a.commit != nil {
			a.commit(i, e)
		}
	}
	if remove >= 0 {
		a.remove(remove)
		resp = resp.MarkChanged()
		c.logger().Debug("container remove", zap.Int("index", remove))
	} else if swap > 0 {
		a.swap(swap-1, swap)
		resp = resp.MarkChanged()
		c.logger().Debug("container swap", zap.Int("index", swap))
	}
	return resp
}

// staging draws the add row. Without MutableBeforeInsert (or without a
// candidate row) a bare add button appends the default; otherwise row draws
// the candidate kept in Memory and the add button commits it.
func staging[C any](c *Ctx, exp *Expandable[C], clone func(dst, src *C), push func(C) bool,
	row func(cand *C, add func() ui.Response) ui.Response) ui.Response {
	u := c.Ui
	clicked := false
	add := func() ui.Response {
		r := u.Button(AddText)
		clicked = clicked || r.Clicked
		return r
	}
	if !exp.MutableBeforeInsert || row == nil {
		resp := c.stagingRow("add", add)
		if clicked && push(exp.value()) {
			resp = resp.MarkChanged()
			c.logger().Debug("container add")
		}
		return resp
	}

	id := u.ID().With("add").With("candidate")
	cand, ok := ui.Load[*C](u.Memory(), id)
	if !ok {
		v := exp.value()
		cand = &v
		u.Memory().Set(id, cand)
	}
	resp := row(cand, add)
	// Edits of the candidate do not change the container.
	resp.Changed = false
	if clicked {
		var e C
		clone(&e, cand)
		if push(e) {
			resp = resp.MarkChanged()
			c.logger().Debug("container add")
		}
		u.Memory().Delete(id)
	}
	return resp
}

// ===== Slices =====

type sliceView[E any] struct {
	inner View[E]
	cfg   SeqConfig[E]
	set   func(s []E, e *E) bool // reports whether e already is in s
}

// Slice is the view of an ordered sequence.
func Slice[E any](inner View[E], cfg SeqConfig[E]) View[[]E] {
	return sliceView[E]{inner: inner, cfg: cfg}
}

// SliceSet treats a slice as a set: adding or editing into a duplicate is
// refused and rows cannot be reordered.
func SliceSet[E any](inner View[E], cfg SeqConfig[E]) View[[]E] {
	cfg.Reorder = false
	return sliceView[E]{inner: inner, cfg: cfg, set: func(s []E, e *E) bool {
		return slices.ContainsFunc(s, func(x E) bool { return inner.Eq(&x, e) })
	}}
}

func (s sliceView[E]) Simple(bool) bool       { return false }
func (s sliceView[E]) HasPrimitive(*[]E) bool { return false }

func (s sliceView[E]) HasChildren(v *[]E, mutable bool) bool {
	return len(*v) > 0 || (mutable && s.cfg.canAdd(len(*v)))
}

func (s sliceView[E]) StartCollapsed(v *[]E) bool { return len(*v) > collapseLen }

func (s sliceView[E]) ShowPrimitive(*Ctx, *[]E) ui.Response { return ui.Response{} }

func (s sliceView[E]) ShowChildren(c *Ctx, v *[]E, reset *[]E) ui.Response {
	a := seqAccess[E]{
		n:      len(*v),
		elem:   func(i int) *E { return &(*v)[i] },
		remove: func(i int) { *v = slices.Delete(*v, i, i+1) },
		swap:   func(i, j int) { (*v)[i], (*v)[j] = (*v)[j], (*v)[i] },
	}
	if reset != nil {
		a.reset = func(i int) *E {
			if i < len(*reset) {
				return &(*reset)[i]
			}
			return nil
		}
	}
	if s.set != nil {
		// Edit a copy and keep it only when it stays unique.
		a.elem = func(i int) *E {
			e := (*v)[i]
			return &e
		}
		a.commit = func(i int, e *E) {
			if s.inner.Eq(e, &(*v)[i]) || s.set(*v, e) {
				return
			}
			(*v)[i] = *e
		}
	}
	resp := showSeq(c, s.inner, s.cfg, a)
	if c.Mutable && s.cfg.canAdd(len(*v)) {
		push := func(e E) bool {
			if s.set != nil && s.set(*v, &e) {
				return false
			}
			*v = append(*v, e)
			return true
		}
		row := func(cand *E, add func() ui.Response) ui.Response {
			return ShowRow(c, s.inner, cand, RowOpts[E]{ID: "candidate", Controls: add})
		}
		resp = resp.Union(staging(c, s.cfg.Expandable, s.inner.Clone, push, row))
	}
	return resp
}

func (s sliceView[E]) Clone(dst, src *[]E) {
	if *src == nil {
		*dst = nil
		return
	}
	out := make([]E, len(*src))
	for i := range out {
		if i < len(*dst) {
			out[i] = (*dst)[i]
		}
		s.inner.Clone(&out[i], &(*src)[i])
	}
	*dst = out
}

func (s sliceView[E]) Eq(a, b *[]E) bool {
	if len(*a) != len(*b) {
		return false
	}
	for i := range *a {
		if !s.inner.Eq(&(*a)[i], &(*b)[i]) {
			return false
		}
	}
	return true
}

// ===== Arrays =====

type arrayView[A, E any] struct {
	inner View[E]
	elems func(*A) []E
}

// Array is the view of a fixed-size array A. elems returns the array as a
// slice sharing its storage, typically func(a *[N]E) []E { return a[:] }.
func Array[A, E any](inner View[E], elems func(*A) []E) View[A] {
	return arrayView[A, E]{inner: inner, elems: elems}
}

func (arrayView[A, E]) Simple(bool) bool     { return false }
func (arrayView[A, E]) HasPrimitive(*A) bool { return false }

func (a arrayView[A, E]) HasChildren(v *A, _ bool) bool { return len(a.elems(v)) > 0 }
func (a arrayView[A, E]) StartCollapsed(v *A) bool      { return len(a.elems(v)) > collapseLen }

func (arrayView[A, E]) ShowPrimitive(*Ctx, *A) ui.Response { return ui.Response{} }

func (a arrayView[A, E]) ShowChildren(c *Ctx, v *A, reset *A) ui.Response {
	s := a.elems(v)
	acc := seqAccess[E]{
		n:    len(s),
		elem: func(i int) *E { return &s[i] },
	}
	if reset != nil {
		r := a.elems(reset)
		acc.reset = func(i int) *E { return &r[i] }
	}
	return showSeq(c, a.inner, SeqConfig[E]{MutableValue: true}, acc)
}

func (a arrayView[A, E]) Clone(dst, src *A) {
	d, s := a.elems(dst), a.elems(src)
	for i := range d {
		a.inner.Clone(&d[i], &s[i])
	}
}

func (a arrayView[A, E]) Eq(x, y *A) bool {
	s, t := a.elems(x), a.elems(y)
	for i := range s {
		if !a.inner.Eq(&s[i], &t[i]) {
			return false
		}
	}
	return true
}
