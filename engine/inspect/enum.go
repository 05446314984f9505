package inspect

import "github.com/hubastard/grove-inspector/engine/ui"

// VariantSpec is one case of a sum type T, built by Variant.
type VariantSpec[T any] interface {
	label(c *Ctx) string
	hint(c *Ctx) string
	matches(v T) bool
	construct() T
	hasFields() bool
	imut() bool
	showChildren(c *Ctx, v *T, reset *T) ui.Response
	clone(dst, src *T)
	eq(a, b *T) bool
}

// VariantOpts configures a variant.
type VariantOpts[V any] struct {
	Label   string // defaults to the variant name
	I18nKey string
	Hint    string
	// Imut renders the variant's fields read-only.
	Imut bool
	// New builds the value selected from the drop-down. Nil uses the zero
	// value.
	New func() V
}

type variant[T, V any] struct {
	name string
	opts VariantOpts[V]
	rec  View[V]
	n    int
}

// Variant describes the case of sum type T held as a V. V must implement
// T.
func Variant[T, V any](name string, opts VariantOpts[V], fields ...FieldSpec[V]) VariantSpec[T] {
	if opts.Label == "" {
		opts.Label = name
	}
	rec := Record(RecordOpts[V]{Default: opts.New}, fields...)
	return &variant[T, V]{name: name, opts: opts, rec: rec, n: len(fields)}
}

func (vs *variant[T, V]) label(c *Ctx) string { return c.label(vs.opts.I18nKey, vs.opts.Label) }
func (vs *variant[T, V]) hint(c *Ctx) string  { return c.hint(vs.opts.I18nKey, vs.opts.Hint) }
func (vs *variant[T, V]) hasFields() bool     { return vs.n > 0 }
func (vs *variant[T, V]) imut() bool          { return vs.opts.Imut }

func (vs *variant[T, V]) matches(v T) bool {
	_, ok := any(v).(V)
	return ok
}

func (vs *variant[T, V]) construct() T {
	var v V
	if vs.opts.New != nil {
		v = vs.opts.New()
	}
	return any(v).(T)
}

// showChildren edits a copy of the variant value and stores it back.
func (vs *variant[T, V]) showChildren(c *Ctx, t *T, reset *T) ui.Response {
	v := any(*t).(V)
	var rv *V
	if reset != nil {
		if r, ok := any(*reset).(V); ok {
			rv = &r
		}
	}
	c.Ui.PushID(vs.name)
	resp := vs.rec.ShowChildren(c, &v, rv)
	c.Ui.PopID()
	*t = any(v).(T)
	return resp
}

func (vs *variant[T, V]) clone(dst, src *T) {
	d, s := any(*dst).(V), any(*src).(V)
	vs.rec.Clone(&d, &s)
	*dst = any(d).(T)
}

func (vs *variant[T, V]) eq(a, b *T) bool {
	x, y := any(*a).(V), any(*b).(V)
	return vs.rec.Eq(&x, &y)
}

type enumView[T any] struct {
	variants []VariantSpec[T]
	readOnly bool
}

// Enum is the view of a sum type: a drop-down selecting the variant, and
// rows for the fields of the selected variant.
func Enum[T any](variants ...VariantSpec[T]) View[T] {
	return enumView[T]{variants: variants}
}

// ImutEnum is Enum rendered read-only even in mutable views: the variant
// cannot be switched and its fields cannot be edited.
func ImutEnum[T any](variants ...VariantSpec[T]) View[T] {
	return enumView[T]{variants: variants, readOnly: true}
}

func (e enumView[T]) Imut() bool { return e.readOnly }

func (e enumView[T]) ctx(c *Ctx) *Ctx {
	if e.readOnly {
		return c.Imut()
	}
	return c
}

func (e enumView[T]) index(v T) int {
	for i, vs := range e.variants {
		if vs.matches(v) {
			return i
		}
	}
	return -1
}

func (e enumView[T]) Simple(bool) bool {
	for _, vs := range e.variants {
		if vs.hasFields() {
			return false
		}
	}
	return true
}

func (enumView[T]) HasPrimitive(*T) bool { return true }

func (e enumView[T]) HasChildren(v *T, _ bool) bool {
	i := e.index(*v)
	return i >= 0 && e.variants[i].hasFields()
}

func (enumView[T]) StartCollapsed(*T) bool { return false }

func (e enumView[T]) ShowPrimitive(c *Ctx, v *T) ui.Response {
	c = e.ctx(c)
	u := c.Ui
	cur := e.index(*v)
	if !c.Mutable {
		if cur < 0 {
			return u.Label(ui.RichText(""))
		}
		return u.Hint(u.Label(ui.RichText(e.variants[cur].label(c))), e.variants[cur].hint(c))
	}
	labels := make([]string, len(e.variants))
	for i, vs := range e.variants {
		labels[i] = vs.label(c)
	}
	sel := cur
	resp := u.ComboBox(&sel, labels)
	if cur >= 0 {
		u.Hint(resp, e.variants[cur].hint(c))
	}
	if resp.Changed && sel >= 0 && sel < len(e.variants) && sel != cur {
		*v = e.variants[sel].construct()
	} else {
		resp.Changed = false
	}
	return resp
}

func (e enumView[T]) ShowChildren(c *Ctx, v *T, reset *T) ui.Response {
	i := e.index(*v)
	if i < 0 {
		return ui.Response{}
	}
	vs := e.variants[i]
	c = e.ctx(c)
	if vs.imut() {
		c = c.Imut()
	}
	if reset != nil && !vs.matches(*reset) {
		reset = nil
	}
	return vs.showChildren(c, v, reset)
}

// Clone switches dst to the variant of src first when they differ.
func (e enumView[T]) Clone(dst, src *T) {
	i := e.index(*src)
	if i < 0 {
		*dst = *src
		return
	}
	if e.index(*dst) != i {
		*dst = e.variants[i].construct()
	}
	e.variants[i].clone(dst, src)
}

func (e enumView[T]) Eq(a, b *T) bool {
	i := e.index(*a)
	if i != e.index(*b) {
		return false
	}
	if i < 0 {
		return true
	}
	return e.variants[i].eq(a, b)
}
