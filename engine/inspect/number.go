package inspect

import (
	"fmt"
	"math"
	"reflect"
	"slices"

	"github.com/hubastard/grove-inspector/engine/ui"
)

// Numeric lists the types Number can edit.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// TextMode chooses how read-only values are drawn.
type TextMode uint8

const (
	NonSelectable TextMode = iota
	Selectable
)

func showText(u Ui, mode TextMode, t ui.Text) ui.Response {
	if mode == Selectable {
		return u.SelectableLabel(t)
	}
	return u.Label(t)
}

type numberKind uint8

const (
	numDrag numberKind = iota
	numDragRange
	numSlider
	numCombo
)

// NumberConfig selects the editor of a numeric value.
type NumberConfig struct {
	kind     numberKind
	min, max float64
	step     float64
	values   []float64
	imut     TextMode
}

// DefaultDrag edits by dragging without bounds.
func DefaultDrag() NumberConfig { return NumberConfig{kind: numDrag} }

// DragRange edits by dragging, clamped to [min, max].
func DragRange(min, max float64) NumberConfig {
	return NumberConfig{kind: numDragRange, min: min, max: max}
}

func Slider(min, max float64) NumberConfig {
	return NumberConfig{kind: numSlider, min: min, max: max}
}

func SliderStep(min, max, step float64) NumberConfig {
	return NumberConfig{kind: numSlider, min: min, max: max, step: step}
}

// NumberCombo offers a fixed list of values in a drop-down.
func NumberCombo(values ...float64) NumberConfig {
	return NumberConfig{kind: numCombo, values: values}
}

// Imut sets how the value is drawn in read-only views.
func (c NumberConfig) Imut(mode TextMode) NumberConfig {
	c.imut = mode
	return c
}

type numberView[N Numeric] struct {
	leaf[N]
	cfg     NumberConfig
	integer bool
	lo, hi  N
}

// Number returns the view of a numeric type.
func Number[N Numeric](cfg NumberConfig) View[N] {
	lo, hi, integer := numLimits[N]()
	return numberView[N]{cfg: cfg, integer: integer, lo: lo, hi: hi}
}

// numLimits reports the representable range of N and whether it is an
// integer type.
func numLimits[N Numeric]() (lo, hi N, integer bool) {
	lv, hv := reflect.ValueOf(&lo).Elem(), reflect.ValueOf(&hi).Elem()
	switch t := lv.Type(); t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bits := t.Bits()
		lv.SetInt(-1 << (bits - 1))
		hv.SetInt(1<<(bits-1) - 1)
		integer = true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		hv.SetUint(math.MaxUint64 >> (64 - t.Bits()))
		integer = true
	case reflect.Float32:
		lv.SetFloat(-math.MaxFloat32)
		hv.SetFloat(math.MaxFloat32)
	default:
		lv.SetFloat(-math.MaxFloat64)
		hv.SetFloat(math.MaxFloat64)
	}
	return lo, hi, integer
}

func (n numberView[N]) ShowPrimitive(c *Ctx, v *N) ui.Response {
	u := c.Ui
	if !c.Mutable {
		return showText(u, n.cfg.imut, ui.RichText(fmt.Sprint(*v)))
	}
	f := float64(*v)
	var resp ui.Response
	switch n.cfg.kind {
	case numDrag, numDragRange:
		opts := ui.DragOpts{Speed: 0.1, Integer: n.integer}
		if n.integer {
			opts.Speed = 0.25
		}
		if n.cfg.kind == numDragRange {
			opts.Min, opts.Max, opts.Clamp = n.cfg.min, n.cfg.max, true
		}
		resp = u.DragValue(&f, opts)
	case numSlider:
		resp = u.Slider(&f, ui.SliderOpts{Min: n.cfg.min, Max: n.cfg.max, Step: n.cfg.step, Integer: n.integer})
	case numCombo:
		labels := make([]string, len(n.cfg.values))
		for i, x := range n.cfg.values {
			labels[i] = fmt.Sprint(N(x))
		}
		sel := slices.Index(n.cfg.values, f)
		resp = u.ComboBox(&sel, labels)
		if resp.Changed && sel >= 0 && sel < len(n.cfg.values) {
			f = n.cfg.values[sel]
		}
	}
	if resp.Changed {
		nv := n.fit(f)
		resp.Changed = nv != *v
		*v = nv
	}
	return resp
}

// fit rounds and clamps f into N.
func (n numberView[N]) fit(f float64) N {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= float64(n.hi):
		return n.hi
	case f <= float64(n.lo):
		return n.lo
	case n.integer:
		return N(math.Round(f))
	default:
		return N(f)
	}
}
