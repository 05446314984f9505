// Package inspecttest provides a scripted stand-in for the ui host so
// inspector views can be driven frame by frame in tests.
package inspecttest

import (
	"fmt"
	"strings"

	"github.com/hubastard/grove-inspector/engine/ui"
)

type Kind string

const (
	KindLabel      Kind = "label"
	KindSelectable Kind = "selectable"
	KindCheckbox   Kind = "checkbox"
	KindText       Kind = "text"
	KindDrag       Kind = "drag"
	KindSlider     Kind = "slider"
	KindCombo      Kind = "combo"
	KindButton     Kind = "button"
)

// Widget is one widget drawn during the last frame.
type Widget struct {
	Kind Kind
	// Path is the id salts in scope, joined by "/".
	Path    string
	Text    string
	Value   any
	Options []string
	Hint    string
	ID      ui.ID
}

type action struct {
	kind  Kind
	path  string
	text  string
	value any
}

func (a action) matches(w *Widget) bool {
	if !underPath(w, a.path) {
		return false
	}
	switch a.kind {
	case KindButton:
		return w.Kind == KindButton && w.Text == a.text
	case KindDrag:
		return w.Kind == KindDrag || w.Kind == KindSlider
	default:
		return w.Kind == a.kind
	}
}

// Host implements inspect.Ui. Actions queued between frames are applied
// during the next frame to the first widget they match.
type Host struct {
	mem     *ui.Memory
	ids     []ui.ID
	path    []string
	widgets []Widget
	actions []action
	rows    int
	depth   int
}

func NewHost() *Host {
	return &Host{mem: ui.NewMemory()}
}

// Frame runs one frame and returns the widgets it drew.
func (h *Host) Frame(fn func(h *Host)) []Widget {
	h.ids = append(h.ids[:0], ui.RootID)
	h.path = h.path[:0]
	h.widgets = h.widgets[:0]
	h.rows = 0
	fn(h)
	if len(h.ids) != 1 || h.depth != 0 {
		panic(fmt.Sprintf("inspecttest: unbalanced frame: %d ids, grid depth %d", len(h.ids), h.depth))
	}
	h.mem.Tick()
	return h.widgets
}

// Pending reports how many actions have not matched any widget yet.
func (h *Host) Pending() int { return len(h.actions) }

// Rows is the number of grid rows ended during the last frame.
func (h *Host) Rows() int { return h.rows }

func (h *Host) Widgets() []Widget { return h.widgets }

// Click presses the button showing text under path on the next frame.
func (h *Host) Click(path, text string) {
	h.actions = append(h.actions, action{kind: KindButton, path: path, text: text})
}

// SetNumber sets the drag value or slider under path.
func (h *Host) SetNumber(path string, v float64) {
	h.actions = append(h.actions, action{kind: KindDrag, path: path, value: v})
}

// SetText replaces the content of the text edit under path.
func (h *Host) SetText(path, s string) {
	h.actions = append(h.actions, action{kind: KindText, path: path, value: s})
}

// Select picks option in the combo box under path.
func (h *Host) Select(path, option string) {
	h.actions = append(h.actions, action{kind: KindCombo, path: path, text: option})
}

// Toggle flips the checkbox under path.
func (h *Host) Toggle(path string) {
	h.actions = append(h.actions, action{kind: KindCheckbox, path: path})
}

// Find returns the widgets of kind drawn last frame whose path ends with
// path.
func (h *Host) Find(kind Kind, path string) []Widget {
	var out []Widget
	for _, w := range h.widgets {
		if w.Kind == kind && underPath(&w, path) {
			out = append(out, w)
		}
	}
	return out
}

// HasButton reports whether a button with text was drawn under path.
func (h *Host) HasButton(path, text string) bool {
	for _, w := range h.Find(KindButton, path) {
		if w.Text == text {
			return true
		}
	}
	return false
}

// Labels returns the text of every label in drawing order.
func (h *Host) Labels() []string {
	var out []string
	for _, w := range h.widgets {
		if w.Kind == KindLabel && w.Text != "" {
			out = append(out, w.Text)
		}
	}
	return out
}

// take removes and returns the first queued action matching w.
func (h *Host) take(w *Widget) (action, bool) {
	for i, a := range h.actions {
		if a.matches(w) {
			h.actions = append(h.actions[:i], h.actions[i+1:]...)
			return a, true
		}
	}
	return action{}, false
}

func underPath(w *Widget, path string) bool {
	return path == "" || w.Path == path || strings.HasSuffix(w.Path, "/"+path)
}

func (h *Host) record(w Widget) (*Widget, ui.Response) {
	w.Path = strings.Join(h.path, "/")
	w.ID = h.ID().With(len(h.widgets))
	h.widgets = append(h.widgets, w)
	return &h.widgets[len(h.widgets)-1], ui.Response{ID: w.ID}
}

// ===== inspect.Ui =====

func (h *Host) ID() ui.ID { return h.ids[len(h.ids)-1] }

func (h *Host) PushID(salt any) {
	h.ids = append(h.ids, h.ID().With(salt))
	h.path = append(h.path, fmt.Sprint(salt))
}

func (h *Host) PopID() {
	h.ids = h.ids[:len(h.ids)-1]
	h.path = h.path[:len(h.path)-1]
}

func (h *Host) Memory() *ui.Memory { return h.mem }

func (h *Host) Label(t ui.Text) ui.Response {
	_, r := h.record(Widget{Kind: KindLabel, Text: t.Text})
	return r
}

func (h *Host) SelectableLabel(t ui.Text) ui.Response {
	_, r := h.record(Widget{Kind: KindSelectable, Text: t.Text})
	return r
}

func (h *Host) Checkbox(v *bool, label string) ui.Response {
	w, r := h.record(Widget{Kind: KindCheckbox, Text: label, Value: *v})
	if _, ok := h.take(w); ok {
		*v = !*v
		r.Clicked, r.Changed = true, true
	}
	return r
}

func (h *Host) TextEdit(s *string, multiline bool) ui.Response {
	w, r := h.record(Widget{Kind: KindText, Text: *s, Value: multiline})
	if a, ok := h.take(w); ok {
		ns := a.value.(string)
		r.Changed = ns != *s
		*s = ns
	}
	return r
}

func (h *Host) DragValue(v *float64, opts ui.DragOpts) ui.Response {
	return h.number(KindDrag, v, opts.Clamp, opts.Min, opts.Max)
}

func (h *Host) Slider(v *float64, opts ui.SliderOpts) ui.Response {
	return h.number(KindSlider, v, true, opts.Min, opts.Max)
}

func (h *Host) number(kind Kind, v *float64, clamp bool, lo, hi float64) ui.Response {
	w, r := h.record(Widget{Kind: kind, Value: *v})
	if a, ok := h.take(w); ok {
		nv := a.value.(float64)
		if clamp {
			nv = max(lo, min(hi, nv))
		}
		r.Changed = nv != *v
		*v = nv
	}
	return r
}

func (h *Host) ComboBox(selected *int, options []string) ui.Response {
	text := ""
	if *selected >= 0 && *selected < len(options) {
		text = options[*selected]
	}
	w, r := h.record(Widget{Kind: KindCombo, Text: text, Value: *selected, Options: options})
	if a, ok := h.take(w); ok {
		for i, o := range options {
			if o == a.text {
				r.Changed = i != *selected
				*selected = i
				break
			}
		}
	}
	return r
}

func (h *Host) Button(text string) ui.Response {
	w, r := h.record(Widget{Kind: KindButton, Text: text})
	if _, ok := h.take(w); ok {
		r.Clicked = true
	}
	return r
}

// Hint attaches text to the widget that produced r.
func (h *Host) Hint(r ui.Response, text string) ui.Response {
	for i := range h.widgets {
		if h.widgets[i].ID == r.ID {
			h.widgets[i].Hint = text
		}
	}
	return r
}

func (h *Host) Space(float32) {}

func (h *Host) BeginGrid(int, bool) { h.depth++ }
func (h *Host) NextCell()           {}
func (h *Host) EndRow()             { h.rows++ }
func (h *Host) EndGrid()            { h.depth-- }

func (h *Host) BeginScrollArea(ui.ScrollOpts) {}
func (h *Host) EndScrollArea()                {}
