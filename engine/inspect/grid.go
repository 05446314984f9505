package inspect

import (
	"github.com/hubastard/grove-inspector/engine/ui"
	"go.uber.org/zap"
)

// ViewMode selects the column layout of the grid.
type ViewMode uint8

const (
	// ViewGrid uses three columns: label, value and reset.
	ViewGrid ViewMode = iota
	// ViewCompact puts the reset button in the value column.
	ViewCompact
)

func (m ViewMode) columns() int {
	if m == ViewCompact {
		return 2
	}
	return 3
}

const (
	IndentWidth = 12

	ChevronOpen   = "▼"
	ChevronClosed = "►"
	ResetText     = "⟲"
)

// RowOpts describes one row drawn by ShowRow.
type RowOpts[T any] struct {
	// ID salts the row id. The label text is used when nil.
	ID    any
	Label ui.Text
	Hint  string
	// Reset is the value offered by the reset button. Nil hides it.
	Reset *T
	// StartCollapsed overrides the view's own choice.
	StartCollapsed *bool

	// LabelCell replaces the label text with custom widgets, such as an
	// editable map key.
	LabelCell func() ui.Response
	// Controls are drawn in the value cell ahead of the primitive.
	Controls func() ui.Response
}

// Collapsed returns a pointer to b, for RowOpts and FieldOpts.
func Collapsed(b bool) *bool { return &b }

// ShowRow draws v as one grid row: indented label with a collapse toggle
// when v has children, its primitive, and a reset button while v differs
// from opts.Reset and v's view is not read-only. Expanded rows continue
// with v's children one level deeper.
func ShowRow[T any](c *Ctx, view View[T], v *T, opts RowOpts[T]) ui.Response {
	u := c.Ui
	salt := opts.ID
	if salt == nil {
		salt = opts.Label.Text
	}
	u.PushID(salt)
	defer u.PopID()

	rowID := u.ID()
	hasChildren := view.HasChildren(v, c.Mutable)

	// Label cell.
	u.Space(float32(c.Nesting+1) * IndentWidth)
	open := false
	if hasChildren {
		collapsed := view.StartCollapsed(v)
		if opts.StartCollapsed != nil {
			collapsed = *opts.StartCollapsed
		}
		openID := rowID.With("open")
		open = ui.LoadOr(u.Memory(), openID, !collapsed)
		chev := ChevronClosed
		if open {
			chev = ChevronOpen
		}
		if u.Button(chev).Clicked {
			open = !open
			u.Memory().Set(openID, open)
		}
	} else {
		u.Space(IndentWidth)
	}
	var resp ui.Response
	if opts.LabelCell != nil {
		resp = opts.LabelCell()
	} else {
		resp = u.Label(opts.Label)
	}
	if opts.Hint != "" {
		u.Hint(resp, opts.Hint)
	}
	resp.ID = rowID

	// Value cell.
	u.NextCell()
	if opts.Controls != nil {
		resp = resp.Union(opts.Controls())
	}
	if view.HasPrimitive(v) {
		resp = resp.Union(view.ShowPrimitive(c, v))
	}

	// Reset cell.
	if c.Mode == ViewGrid {
		u.NextCell()
	}
	if c.Mutable && opts.Reset != nil && !readOnly(view) && !view.Eq(v, opts.Reset) {
		if u.Button(ResetText).Clicked {
			view.Clone(v, opts.Reset)
			resp = resp.MarkChanged()
			c.logger().Debug("reset", zap.Stringer("row", rowID))
		}
	}
	u.EndRow()

	if open && view.HasChildren(v, c.Mutable) {
		resp = resp.Union(view.ShowChildren(c.child(), v, opts.Reset))
	}
	return resp
}

// KeepCell draws several widgets into the current cell, one after the
// other, and returns their combined response.
func (c *Ctx) KeepCell(draw ...func() ui.Response) ui.Response {
	var resp ui.Response
	for _, d := range draw {
		if d != nil {
			resp = resp.Union(d())
		}
	}
	return resp
}

// stagingRow draws a row without a label cell text, used for the add
// control of containers.
func (c *Ctx) stagingRow(salt any, value func() ui.Response) ui.Response {
	u := c.Ui
	u.PushID(salt)
	defer u.PopID()
	u.Space(float32(c.Nesting+2) * IndentWidth)
	u.NextCell()
	resp := value()
	u.EndRow()
	return resp
}
