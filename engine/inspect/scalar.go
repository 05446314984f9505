package inspect

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/hubastard/grove-inspector/engine/colors"
	"github.com/hubastard/grove-inspector/engine/ui"
)

// ===== Bool =====

type boolView struct{ leaf[bool] }

// Bool edits with a checkbox. Read-only views draw a checkbox that ignores
// clicks.
func Bool() View[bool] { return boolView{} }

func (boolView) ShowPrimitive(c *Ctx, v *bool) ui.Response {
	if c.Mutable {
		return c.Ui.Checkbox(v, "")
	}
	b := *v
	r := c.Ui.Checkbox(&b, "")
	r.Changed = false
	return r
}

// ===== Strings =====

type stringKind uint8

const (
	strSingleLine stringKind = iota
	strMultiLine
	strCombo
)

// StringConfig selects the editor of a string value.
type StringConfig struct {
	kind    stringKind
	options []string
	imut    TextMode
}

func SingleLine() StringConfig { return StringConfig{kind: strSingleLine, imut: Selectable} }
func MultiLine() StringConfig  { return StringConfig{kind: strMultiLine, imut: Selectable} }

// StringCombo offers a fixed list of strings in a drop-down.
func StringCombo(options ...string) StringConfig {
	return StringConfig{kind: strCombo, options: options, imut: Selectable}
}

func (c StringConfig) Imut(mode TextMode) StringConfig {
	c.imut = mode
	return c
}

type stringView[S ~string] struct {
	leaf[S]
	cfg StringConfig
}

func String[S ~string](cfg StringConfig) View[S] { return stringView[S]{cfg: cfg} }

func (s stringView[S]) ShowPrimitive(c *Ctx, v *S) ui.Response {
	u := c.Ui
	if !c.Mutable {
		return showText(u, s.cfg.imut, ui.RichText(string(*v)))
	}
	switch s.cfg.kind {
	case strCombo:
		sel := slices.Index(s.cfg.options, string(*v))
		r := u.ComboBox(&sel, s.cfg.options)
		if r.Changed && sel >= 0 && sel < len(s.cfg.options) {
			*v = S(s.cfg.options[sel])
		}
		return r
	default:
		str := string(*v)
		r := u.TextEdit(&str, s.cfg.kind == strMultiLine)
		if r.Changed {
			*v = S(str)
		}
		return r
	}
}

// ===== Wide integers =====

type bigIntView struct{ mode TextMode }

// BigInt edits a big.Int through a text box. Text that does not parse as
// a base 10 integer leaves the value alone.
func BigInt(mode TextMode) View[big.Int] { return bigIntView{mode: mode} }

func (bigIntView) Simple(bool) bool                                  { return true }
func (bigIntView) HasPrimitive(*big.Int) bool                        { return true }
func (bigIntView) HasChildren(*big.Int, bool) bool                   { return false }
func (bigIntView) StartCollapsed(*big.Int) bool                      { return false }
func (bigIntView) ShowChildren(*Ctx, *big.Int, *big.Int) ui.Response { return ui.Response{} }
func (bigIntView) Clone(dst, src *big.Int)                           { dst.Set(src) }
func (bigIntView) Eq(a, b *big.Int) bool                             { return a.Cmp(b) == 0 }

func (b bigIntView) ShowPrimitive(c *Ctx, v *big.Int) ui.Response {
	s := v.String()
	if !c.Mutable {
		return showText(c.Ui, b.mode, ui.RichText(s))
	}
	r := c.Ui.TextEdit(&s, false)
	if r.Changed {
		n, ok := new(big.Int).SetString(s, 10)
		if !ok || n.Cmp(v) == 0 {
			r.Changed = false
		} else {
			v.Set(n)
		}
	}
	return r
}

// ===== Combo box over arbitrary values =====

type comboView[T comparable] struct {
	leaf[T]
	options []T
	label   func(T) string
}

// ComboBox lets the user pick one of options. label renders an option; nil
// uses fmt.Sprint.
func ComboBox[T comparable](options []T, label func(T) string) View[T] {
	if label == nil {
		label = func(v T) string { return fmt.Sprint(v) }
	}
	return comboView[T]{options: options, label: label}
}

func (cb comboView[T]) ShowPrimitive(c *Ctx, v *T) ui.Response {
	if !c.Mutable {
		return c.Ui.Label(ui.RichText(cb.label(*v)))
	}
	labels := make([]string, len(cb.options))
	sel := -1
	for i, o := range cb.options {
		labels[i] = cb.label(o)
		if o == *v {
			sel = i
		}
	}
	r := c.Ui.ComboBox(&sel, labels)
	if r.Changed && sel >= 0 && sel < len(cb.options) {
		*v = cb.options[sel]
	}
	return r
}

// ===== Unit =====

type unitView struct{ leaf[struct{}] }

// Unit is the view of struct{}: a row with an empty value cell.
func Unit() View[struct{}] { return unitView{} }

func (unitView) HasPrimitive(*struct{}) bool               { return false }
func (unitView) ShowPrimitive(*Ctx, *struct{}) ui.Response { return ui.Response{} }

// ===== Colors =====

type colorView struct{ leaf[colors.Color] }

// Color edits a color as #rrggbbaa text. The read-only view draws the code
// in the color itself.
func Color() View[colors.Color] { return colorView{} }

func (colorView) ShowPrimitive(c *Ctx, v *colors.Color) ui.Response {
	s := v.Hex()
	if !c.Mutable {
		return c.Ui.Label(ui.RichText(s).WithColor(*v))
	}
	r := c.Ui.TextEdit(&s, false)
	if r.Changed {
		col, err := colors.Hex(s)
		if err != nil || col == *v {
			r.Changed = false
		} else {
			*v = col
		}
	}
	return r
}
