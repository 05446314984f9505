package inspect

import (
	"sync"

	"github.com/hubastard/grove-inspector/engine/ui"
)

// ResetPolicy chooses where the reset values of a record's fields come
// from.
type ResetPolicy uint8

const (
	// ResetInherit uses the matching field of the reset value handed down
	// by the enclosing row, if any.
	ResetInherit ResetPolicy = iota
	// ResetNone hides reset buttons.
	ResetNone
	// ResetFieldDefault resets each field to its zero value.
	ResetFieldDefault
	// ResetStructDefault resets each field to its value in the record's
	// default, built once per process.
	ResetStructDefault
)

// RecordOpts configures a record view.
type RecordOpts[T any] struct {
	// Tuple marks positional records. A tuple with a single field shows
	// that field inline.
	Tuple bool
	// Imut renders the record read-only even in mutable views.
	Imut  bool
	Reset ResetPolicy
	// Default builds the value used by ResetStructDefault. Nil uses the
	// zero value.
	Default func() T
}

// resetSource is what a record hands to its fields to pick their reset
// value from.
type resetSource[T any] struct {
	policy ResetPolicy
	parent *T
	def    func() *T
}

// FieldSpec is one field of a record, built by Field or MappedField.
type FieldSpec[T any] interface {
	simple(mutable bool) bool
	hasPrimitive(v *T) bool
	hasChildren(v *T, mutable bool) bool
	startCollapsed(v *T) bool
	showPrimitive(c *Ctx, v *T, rs resetSource[T]) ui.Response
	showChildren(c *Ctx, v *T, rs resetSource[T]) ui.Response
	show(c *Ctx, v *T, rs resetSource[T]) ui.Response
	clone(dst, src *T)
	eq(a, b *T) bool
}

type recordView[T any] struct {
	opts   RecordOpts[T]
	fields []FieldSpec[T]
	def    func() *T
}

// Record is the view of a struct made of fields.
func Record[T any](opts RecordOpts[T], fields ...FieldSpec[T]) View[T] {
	def := sync.OnceValue(func() *T {
		v := new(T)
		if opts.Default != nil {
			*v = opts.Default()
		}
		return v
	})
	return &recordView[T]{opts: opts, fields: fields, def: def}
}

// single returns the field a one-field tuple delegates to.
func (r *recordView[T]) single() FieldSpec[T] {
	if r.opts.Tuple && len(r.fields) == 1 {
		return r.fields[0]
	}
	return nil
}

func (r *recordView[T]) ctx(c *Ctx) *Ctx {
	if r.opts.Imut {
		return c.Imut()
	}
	return c
}

func (r *recordView[T]) source(reset *T) resetSource[T] {
	return resetSource[T]{policy: r.opts.Reset, parent: reset, def: r.def}
}

func (r *recordView[T]) Imut() bool { return r.opts.Imut }

func (r *recordView[T]) Simple(mutable bool) bool {
	if f := r.single(); f != nil {
		return f.simple(mutable && !r.opts.Imut)
	}
	return false
}

func (r *recordView[T]) HasPrimitive(v *T) bool {
	if f := r.single(); f != nil {
		return f.hasPrimitive(v)
	}
	return false
}

func (r *recordView[T]) HasChildren(v *T, mutable bool) bool {
	if f := r.single(); f != nil {
		return f.hasChildren(v, mutable && !r.opts.Imut)
	}
	return len(r.fields) > 0
}

func (r *recordView[T]) StartCollapsed(v *T) bool {
	if f := r.single(); f != nil {
		return f.startCollapsed(v)
	}
	return false
}

func (r *recordView[T]) ShowPrimitive(c *Ctx, v *T) ui.Response {
	if f := r.single(); f != nil {
		return f.showPrimitive(r.ctx(c), v, r.source(nil))
	}
	return ui.Response{}
}

func (r *recordView[T]) ShowChildren(c *Ctx, v *T, reset *T) ui.Response {
	c = r.ctx(c)
	rs := r.source(reset)
	if f := r.single(); f != nil {
		return f.showChildren(c, v, rs)
	}
	var resp ui.Response
	for _, f := range r.fields {
		resp = resp.Union(f.show(c, v, rs))
	}
	return resp
}

func (r *recordView[T]) Clone(dst, src *T) {
	for _, f := range r.fields {
		f.clone(dst, src)
	}
}

func (r *recordView[T]) Eq(a, b *T) bool {
	for _, f := range r.fields {
		if !f.eq(a, b) {
			return false
		}
	}
	return true
}

// ===== Fields =====

// FieldOpts configures one field of a record.
type FieldOpts[T, F any] struct {
	Label   string // defaults to the field name
	I18nKey string
	Hint    string
	Imut    bool
	// Reset overrides the record's policy for this field.
	Reset ResetPolicy
	// ResetValue supplies an explicit reset value. It is evaluated once.
	ResetValue     func() F
	StartCollapsed *bool
	OnChange       func(*F)
	OnChangeStruct func(*T)
	Eq             func(a, b *F) bool
	Clone          func(dst, src *F)
}

type field[T, F any] struct {
	name  string
	get   func(*T) *F
	view  View[F]
	opts  FieldOpts[T, F]
	zero  func() *F
	reset func() *F
}

// Field describes a field of T reached through get.
func Field[T, F any](name string, get func(*T) *F, view View[F], opts FieldOpts[T, F]) FieldSpec[T] {
	if opts.Label == "" {
		opts.Label = name
	}
	if opts.Eq != nil || opts.Clone != nil {
		view = overrideView[F]{View: view, eq: opts.Eq, clone: opts.Clone}
	}
	f := &field[T, F]{name: name, get: get, view: view, opts: opts}
	f.zero = sync.OnceValue(func() *F { return new(F) })
	if opts.ResetValue != nil {
		f.reset = sync.OnceValue(func() *F {
			v := opts.ResetValue()
			return &v
		})
	}
	return f
}

// resetFor picks the reset value of the field: an explicit value first,
// then the field policy, then the record policy.
func resetFor[T, F any](rs resetSource[T], get func(*T) *F, own ResetPolicy, explicit, zero func() *F) *F {
	if explicit != nil {
		return explicit()
	}
	policy := rs.policy
	if own != ResetInherit {
		policy = own
	}
	switch policy {
	case ResetNone:
		return nil
	case ResetFieldDefault:
		return zero()
	case ResetStructDefault:
		return get(rs.def())
	default:
		if rs.parent == nil {
			return nil
		}
		return get(rs.parent)
	}
}

func (f *field[T, F]) ctx(c *Ctx) *Ctx {
	if f.opts.Imut {
		return c.Imut()
	}
	return c
}

func (f *field[T, F]) changed(c *Ctx, v *T, resp ui.Response) {
	if !resp.Changed || !c.Mutable {
		return
	}
	if f.opts.OnChange != nil {
		f.opts.OnChange(f.get(v))
	}
	if f.opts.OnChangeStruct != nil {
		f.opts.OnChangeStruct(v)
	}
}

func (f *field[T, F]) rowOpts(c *Ctx, rs resetSource[T]) RowOpts[F] {
	return RowOpts[F]{
		ID:             f.name,
		Label:          ui.RichText(c.label(f.opts.I18nKey, f.opts.Label)),
		Hint:           c.hint(f.opts.I18nKey, f.opts.Hint),
		Reset:          resetFor(rs, f.get, f.opts.Reset, f.reset, f.zero),
		StartCollapsed: f.opts.StartCollapsed,
	}
}

func (f *field[T, F]) simple(mutable bool) bool { return f.view.Simple(mutable && !f.opts.Imut) }
func (f *field[T, F]) hasPrimitive(v *T) bool   { return f.view.HasPrimitive(f.get(v)) }

func (f *field[T, F]) hasChildren(v *T, mutable bool) bool {
	return f.view.HasChildren(f.get(v), mutable && !f.opts.Imut)
}

func (f *field[T, F]) startCollapsed(v *T) bool {
	if f.opts.StartCollapsed != nil {
		return *f.opts.StartCollapsed
	}
	return f.view.StartCollapsed(f.get(v))
}

func (f *field[T, F]) showPrimitive(c *Ctx, v *T, _ resetSource[T]) ui.Response {
	c = f.ctx(c)
	resp := f.view.ShowPrimitive(c, f.get(v))
	f.changed(c, v, resp)
	return resp
}

func (f *field[T, F]) showChildren(c *Ctx, v *T, rs resetSource[T]) ui.Response {
	c = f.ctx(c)
	resp := f.view.ShowChildren(c, f.get(v), f.rowOpts(c, rs).Reset)
	f.changed(c, v, resp)
	return resp
}

func (f *field[T, F]) show(c *Ctx, v *T, rs resetSource[T]) ui.Response {
	c = f.ctx(c)
	resp := ShowRow(c, f.view, f.get(v), f.rowOpts(c, rs))
	f.changed(c, v, resp)
	return resp
}

func (f *field[T, F]) clone(dst, src *T) { f.view.Clone(f.get(dst), f.get(src)) }
func (f *field[T, F]) eq(a, b *T) bool   { return f.view.Eq(f.get(a), f.get(b)) }

// overrideView replaces Eq and Clone of a view.
type overrideView[F any] struct {
	View[F]
	eq    func(a, b *F) bool
	clone func(dst, src *F)
}

func (o overrideView[F]) Imut() bool { return readOnly(o.View) }

func (o overrideView[F]) Eq(a, b *F) bool {
	if o.eq != nil {
		return o.eq(a, b)
	}
	return o.View.Eq(a, b)
}

func (o overrideView[F]) Clone(dst, src *F) {
	if o.clone != nil {
		o.clone(dst, src)
		return
	}
	o.View.Clone(dst, src)
}

// ===== Mapped fields =====

type mappedField[T, F, S any] struct {
	name     string
	get      func(*T) *F
	pre      func(*F) S
	post     func(*F, S)
	view     View[S]
	opts     FieldOpts[T, S]
	explicit func() *S
}

// MappedField edits field F through a surrogate S: pre builds the surrogate
// every frame and post, when not nil, writes it back after a change. Clone
// copies F by assignment; Eq compares the surrogates.
func MappedField[T, F, S any](name string, get func(*T) *F, pre func(*F) S, post func(*F, S), view View[S], opts FieldOpts[T, S]) FieldSpec[T] {
	if opts.Label == "" {
		opts.Label = name
	}
	m := &mappedField[T, F, S]{name: name, get: get, pre: pre, post: post, view: view, opts: opts}
	if opts.ResetValue != nil {
		m.explicit = sync.OnceValue(func() *S {
			s := opts.ResetValue()
			return &s
		})
	}
	return m
}

func (m *mappedField[T, F, S]) ctx(c *Ctx) *Ctx {
	if m.opts.Imut {
		return c.Imut()
	}
	return c
}

func (m *mappedField[T, F, S]) surrogate(v *T) *S {
	s := m.pre(m.get(v))
	return &s
}

func (m *mappedField[T, F, S]) write(c *Ctx, v *T, s *S, resp ui.Response) {
	if !resp.Changed || !c.Mutable {
		return
	}
	f := m.get(v)
	if m.post != nil {
		m.post(f, *s)
	}
	if m.opts.OnChange != nil {
		m.opts.OnChange(s)
	}
	if m.opts.OnChangeStruct != nil {
		m.opts.OnChangeStruct(v)
	}
}

func (m *mappedField[T, F, S]) reset(rs resetSource[T]) *S {
	get := func(t *T) *S { return m.surrogate(t) }
	return resetFor(rs, get, m.opts.Reset, m.explicit, func() *S {
		var f F
		s := m.pre(&f)
		return &s
	})
}

func (m *mappedField[T, F, S]) simple(mutable bool) bool {
	return m.view.Simple(mutable && !m.opts.Imut)
}
func (m *mappedField[T, F, S]) hasPrimitive(v *T) bool { return m.view.HasPrimitive(m.surrogate(v)) }

func (m *mappedField[T, F, S]) hasChildren(v *T, mutable bool) bool {
	return m.view.HasChildren(m.surrogate(v), mutable && !m.opts.Imut)
}

func (m *mappedField[T, F, S]) startCollapsed(v *T) bool {
	if m.opts.StartCollapsed != nil {
		return *m.opts.StartCollapsed
	}
	return m.view.StartCollapsed(m.surrogate(v))
}

func (m *mappedField[T, F, S]) showPrimitive(c *Ctx, v *T, _ resetSource[T]) ui.Response {
	c = m.ctx(c)
	s := m.surrogate(v)
	resp := m.view.ShowPrimitive(c, s)
	m.write(c, v, s, resp)
	return resp
}

func (m *mappedField[T, F, S]) showChildren(c *Ctx, v *T, rs resetSource[T]) ui.Response {
	c = m.ctx(c)
	s := m.surrogate(v)
	resp := m.view.ShowChildren(c, s, m.reset(rs))
	m.write(c, v, s, resp)
	return resp
}

func (m *mappedField[T, F, S]) show(c *Ctx, v *T, rs resetSource[T]) ui.Response {
	c = m.ctx(c)
	s := m.surrogate(v)
	resp := ShowRow(c, m.view, s, RowOpts[S]{
		ID:             m.name,
		Label:          ui.RichText(c.label(m.opts.I18nKey, m.opts.Label)),
		Hint:           c.hint(m.opts.I18nKey, m.opts.Hint),
		Reset:          m.reset(rs),
		StartCollapsed: m.opts.StartCollapsed,
	})
	m.write(c, v, s, resp)
	return resp
}

func (m *mappedField[T, F, S]) clone(dst, src *T) {
	if m.opts.Clone != nil {
		d := m.surrogate(dst)
		m.opts.Clone(d, m.surrogate(src))
		if m.post != nil {
			m.post(m.get(dst), *d)
		}
		return
	}
	*m.get(dst) = *m.get(src)
}

func (m *mappedField[T, F, S]) eq(a, b *T) bool {
	if m.opts.Eq != nil {
		return m.opts.Eq(m.surrogate(a), m.surrogate(b))
	}
	return m.view.Eq(m.surrogate(a), m.surrogate(b))
}

// ByValue adapts a function taking F by value to the pre hook of
// MappedField.
func ByValue[F, S any](fn func(F) S) func(*F) S {
	return func(f *F) S { return fn(*f) }
}
