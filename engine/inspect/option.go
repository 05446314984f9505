package inspect

import "github.com/hubastard/grove-inspector/engine/ui"

type optionView[T any] struct {
	inner View[T]
}

// Option is the view of an optional value held as *T. A checkbox switches
// between nil and a freshly allocated zero value.
func Option[T any](inner View[T]) View[*T] { return optionView[T]{inner: inner} }

func (optionView[T]) Simple(bool) bool      { return false }
func (optionView[T]) HasPrimitive(**T) bool { return true }

func (o optionView[T]) HasChildren(v **T, mutable bool) bool {
	return *v != nil && o.inner.HasChildren(*v, mutable)
}

func (o optionView[T]) StartCollapsed(v **T) bool {
	return *v != nil && o.inner.StartCollapsed(*v)
}

func (o optionView[T]) ShowPrimitive(c *Ctx, v **T) ui.Response {
	u := c.Ui
	some := *v != nil
	var resp ui.Response
	if c.Mutable {
		resp = u.Checkbox(&some, "")
		if resp.Changed {
			if some {
				*v = new(T)
			} else {
				*v = nil
			}
		}
	} else {
		resp = u.Checkbox(&some, "")
		resp.Changed = false
	}
	if *v != nil && o.inner.Simple(c.Mutable) && o.inner.HasPrimitive(*v) {
		u.PushID("some")
		resp = resp.Union(o.inner.ShowPrimitive(c, *v))
		u.PopID()
	}
	return resp
}

func (o optionView[T]) ShowChildren(c *Ctx, v **T, reset **T) ui.Response {
	if *v == nil {
		return ui.Response{}
	}
	var r *T
	if reset != nil {
		r = *reset
	}
	return ShowRow(c, o.inner, *v, RowOpts[T]{Label: ui.RichText("[0]"), Reset: r})
}

func (o optionView[T]) Clone(dst, src **T) {
	if *src == nil {
		*dst = nil
		return
	}
	if *dst == nil || *dst == *src {
		*dst = new(T)
	}
	o.inner.Clone(*dst, *src)
}

func (o optionView[T]) Eq(a, b **T) bool {
	if *a == nil || *b == nil {
		return *a == nil && *b == nil
	}
	return o.inner.Eq(*a, *b)
}
