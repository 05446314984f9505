package inspect_test

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hubastard/grove-inspector/engine/inspect"
	"github.com/hubastard/grove-inspector/engine/inspect/inspecttest"
	"github.com/hubastard/grove-inspector/engine/ui"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	intView = inspect.Number[int](inspect.DefaultDrag())
	strView = inspect.String[string](inspect.SingleLine())
)

// drive shows v with view every frame and applies one queued action per
// step.
type drive[T any] struct {
	t    *testing.T
	h    *inspecttest.Host
	v    *T
	view inspect.View[T]
	resp ui.Response
}

func newDrive[T any](t *testing.T, v *T, view inspect.View[T]) *drive[T] {
	d := &drive[T]{t: t, h: inspecttest.NewHost(), v: v, view: view}
	d.frame()
	return d
}

func (d *drive[T]) frame() {
	d.h.Frame(func(h *inspecttest.Host) { d.resp = inspect.Mut(d.v, d.view).Show(h) })
}

// step runs the frame applying the actions queued by queue.
func (d *drive[T]) step(queue func(h *inspecttest.Host)) {
	d.t.Helper()
	queue(d.h)
	d.frame()
	if n := d.h.Pending(); n != 0 {
		d.t.Fatalf("%d actions matched no widget", n)
	}
}

func TestAddAppendsDefault(t *testing.T) {
	cfg := inspect.DefaultSeqConfig[int]()
	cfg.Expandable = &inspect.Expandable[int]{Default: func() int { return 7 }}
	v := []int{1, 2}
	d := newDrive(t, &v, inspect.Slice(intView, cfg))
	d.step(func(h *inspecttest.Host) { h.Click("add", inspect.AddText) })
	if diff := cmp.Diff([]int{1, 2, 7}, v); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if !d.resp.Changed {
		t.Error("add did not report a change")
	}
}

func TestReorderTouchesOnlyNeighbours(t *testing.T) {
	v := []int{1, 2, 3, 4}
	d := newDrive(t, &v, inspect.Slice(intView, inspect.DefaultSeqConfig[int]()))
	d.step(func(h *inspecttest.Host) { h.Click("2", inspect.UpText) })
	if diff := cmp.Diff([]int{1, 3, 2, 4}, v); diff != "" {
		t.Errorf("up (-want +got):\n%s", diff)
	}
	d.step(func(h *inspecttest.Host) { h.Click("0", inspect.DownText) })
	if diff := cmp.Diff([]int{3, 1, 2, 4}, v); diff != "" {
		t.Errorf("down (-want +got):\n%s", diff)
	}
	if d.h.HasButton("0", inspect.UpText) || d.h.HasButton("3", inspect.DownText) {
		t.Error("edge rows offer moves past the ends")
	}
}

func TestMaxLenHidesAdd(t *testing.T) {
	cfg := inspect.DefaultSeqConfig[int]()
	cfg.MaxLen = 2
	v := []int{1, 2}
	d := newDrive(t, &v, inspect.Slice(intView, cfg))
	if d.h.HasButton("add", inspect.AddText) {
		t.Error("add shown at MaxLen")
	}
}

func TestImmutableSliceHasNoControls(t *testing.T) {
	v := []int{1, 2}
	h := inspecttest.NewHost()
	h.Frame(func(h *inspecttest.Host) {
		inspect.Imut(&v, inspect.Slice(intView, inspect.DefaultSeqConfig[int]())).Show(h)
	})
	if n := len(h.Find(inspecttest.KindButton, "")); n != 0 {
		t.Errorf("read-only slice drew %d buttons", n)
	}
	if diff := cmp.Diff([]string{"0", "1", "1", "2"}, h.Labels()); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
}

func TestLongSliceStartsCollapsed(t *testing.T) {
	v := make([]int, 17)
	h := inspecttest.NewHost()
	h.Frame(func(h *inspecttest.Host) {
		inspect.Imut(&v, inspect.Slice(intView, inspect.DefaultSeqConfig[int]())).Label(ui.RichText("many")).Show(h)
	})
	if diff := cmp.Diff([]string{"many"}, h.Labels()); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
	if !h.HasButton("root", inspect.ChevronClosed) {
		t.Error("no closed chevron")
	}
}

func TestChevronCollapses(t *testing.T) {
	v := []int{1}
	view := inspect.Slice(intView, inspect.DefaultSeqConfig[int]())
	h := inspecttest.NewHost()
	draw := func(h *inspecttest.Host) { inspect.Mut(&v, view).Label(ui.RichText("list")).Show(h) }
	h.Frame(draw)
	if len(h.Find(inspecttest.KindDrag, "")) != 1 {
		t.Fatal("expanded list does not show its element")
	}
	h.Click("root", inspect.ChevronOpen)
	h.Frame(draw)
	h.Frame(draw)
	if len(h.Find(inspecttest.KindDrag, "")) != 0 {
		t.Error("collapsed list still shows its element")
	}
	if !h.HasButton("root", inspect.ChevronClosed) {
		t.Error("chevron did not flip")
	}
}

func TestCandidateBeforeInsert(t *testing.T) {
	cfg := inspect.DefaultSeqConfig[string]()
	cfg.Expandable = &inspect.Expandable[string]{MutableBeforeInsert: true}
	v := []string{"a"}
	d := newDrive(t, &v, inspect.Slice(strView, cfg))

	d.step(func(h *inspecttest.Host) { h.SetText("candidate", "hello") })
	if len(v) != 1 || d.resp.Changed {
		t.Fatalf("editing the candidate changed the slice: %v", v)
	}
	d.step(func(h *inspecttest.Host) { h.Click("candidate", inspect.AddText) })
	if diff := cmp.Diff([]string{"a", "hello"}, v); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	d.frame()
	if c := d.h.Find(inspecttest.KindText, "candidate"); len(c) != 1 || c[0].Text != "" {
		t.Errorf("candidate not reset: %+v", c)
	}
}

func TestSliceSetRefusesDuplicates(t *testing.T) {
	v := []string{"a", "b"}
	d := newDrive(t, &v, inspect.SliceSet(strView, inspect.DefaultSeqConfig[string]()))
	d.step(func(h *inspecttest.Host) { h.SetText("1", "a") })
	if diff := cmp.Diff([]string{"a", "b"}, v); diff != "" {
		t.Errorf("duplicate edit (-want +got):\n%s", diff)
	}
	d.step(func(h *inspecttest.Host) { h.SetText("1", "c") })
	d.step(func(h *inspecttest.Host) { h.Click("add", inspect.AddText) })
	d.step(func(h *inspecttest.Host) { h.Click("add", inspect.AddText) })
	if diff := cmp.Diff([]string{"a", "c", ""}, v); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if d.h.HasButton("1", inspect.UpText) {
		t.Error("set rows can be reordered")
	}
}

func TestHashSet(t *testing.T) {
	v := map[string]struct{}{"x": {}, "y": {}}
	d := newDrive(t, &v, inspect.HashSet(strView, inspect.DefaultSeqConfig[string]()))
	if len(d.h.Find(inspecttest.KindText, "")) != 0 {
		t.Error("hash set elements are editable")
	}
	d.step(func(h *inspecttest.Host) { h.Click("elem:x", inspect.RemoveText) })
	d.step(func(h *inspecttest.Host) { h.Click("add", inspect.AddText) })
	want := map[string]struct{}{"y": {}, "": {}}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestHashSetElementNamedAdd(t *testing.T) {
	v := map[string]struct{}{"add": {}}
	d := newDrive(t, &v, inspect.HashSet(strView, inspect.DefaultSeqConfig[string]()))
	if d.h.HasButton("add", inspect.RemoveText) {
		t.Fatal("element row shares its id with the add row")
	}
	d.step(func(h *inspecttest.Host) { h.Click("add", inspect.AddText) })
	want := map[string]struct{}{"add": {}, "": {}}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestIndexSetEditKeepsPosition(t *testing.T) {
	v := inspect.NewIndexSet("a", "b", "c")
	d := newDrive(t, &v, inspect.IndexSetOf(strView, inspect.DefaultSeqConfig[string]()))
	d.step(func(h *inspecttest.Host) { h.SetText("1", "z") })
	if diff := cmp.Diff([]string{"a", "z", "c"}, v.Values()); diff != "" {
		t.Errorf("edit (-want +got):\n%s", diff)
	}
	d.step(func(h *inspecttest.Host) { h.SetText("1", "a") })
	if diff := cmp.Diff([]string{"a", "z", "c"}, v.Values()); diff != "" {
		t.Errorf("duplicate edit (-want +got):\n%s", diff)
	}
	d.step(func(h *inspecttest.Host) { h.Click("2", inspect.UpText) })
	if diff := cmp.Diff([]string{"a", "c", "z"}, v.Values()); diff != "" {
		t.Errorf("up (-want +got):\n%s", diff)
	}
}

func TestMapRekeyAndEdit(t *testing.T) {
	v := map[string]int{"a": 1, "b": 2}
	view := inspect.Map(strView, intView, inspect.DefaultSeqConfig[inspect.Pair[string, int]]())
	d := newDrive(t, &v, view)

	d.step(func(h *inspecttest.Host) { h.SetNumber("1", 5) })
	d.step(func(h *inspecttest.Host) { h.SetText("0/key", "b") })
	if diff := cmp.Diff(map[string]int{"a": 1, "b": 5}, v); diff != "" {
		t.Errorf("colliding rename (-want +got):\n%s", diff)
	}
	d.step(func(h *inspecttest.Host) { h.SetText("0/key", "c") })
	if diff := cmp.Diff(map[string]int{"c": 1, "b": 5}, v); diff != "" {
		t.Errorf("rename (-want +got):\n%s", diff)
	}
}

func TestMapRenameKeepsRow(t *testing.T) {
	v := map[string]int{"a": 1, "m": 2}
	view := inspect.Map(strView, intView, inspect.DefaultSeqConfig[inspect.Pair[string, int]]())
	d := newDrive(t, &v, view)
	d.step(func(h *inspecttest.Host) { h.SetText("0/key", "z") })
	d.frame()
	if k := d.h.Find(inspecttest.KindText, "0/key"); len(k) != 1 || k[0].Text != "z" {
		t.Fatalf("row 0 key = %+v, want z", k)
	}
	d.step(func(h *inspecttest.Host) { h.SetNumber("0", 7) })
	if diff := cmp.Diff(map[string]int{"z": 7, "m": 2}, v); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMapCandidateWithKey(t *testing.T) {
	cfg := inspect.DefaultSeqConfig[inspect.Pair[string, int]]()
	cfg.Expandable = &inspect.Expandable[inspect.Pair[string, int]]{MutableBeforeInsert: true}
	v := map[string]int{"a": 1}
	d := newDrive(t, &v, inspect.Map(strView, intView, cfg))
	d.step(func(h *inspecttest.Host) {
		h.SetText("candidate/key", "n")
		h.SetNumber("candidate", 9)
	})
	d.step(func(h *inspecttest.Host) { h.Click("candidate", inspect.AddText) })
	if diff := cmp.Diff(map[string]int{"a": 1, "n": 9}, v); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestIndexMapReorder(t *testing.T) {
	v := omap("a", 1, "b", 2, "c", 3)
	view := inspect.IndexMap(strView, intView, inspect.DefaultSeqConfig[inspect.Pair[string, int]]())
	d := newDrive(t, &v, view)
	d.step(func(h *inspecttest.Host) { h.Click("2", inspect.UpText) })
	var keys []string
	for p := v.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	if diff := cmp.Diff([]string{"a", "c", "b"}, keys); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestIndexMapNilIsAllocatedOnEdit(t *testing.T) {
	var v *orderedmap.OrderedMap[string, int]
	view := inspect.IndexMap(strView, intView, inspect.DefaultSeqConfig[inspect.Pair[string, int]]())
	d := newDrive(t, &v, view)
	d.step(func(h *inspecttest.Host) { h.Click("add", inspect.AddText) })
	if v == nil || v.Len() != 1 {
		t.Errorf("map = %v", v)
	}
}

func TestSliceResetPerRow(t *testing.T) {
	v, ref := []int{1, 2}, []int{1, 5}
	view := inspect.Slice(intView, inspect.DefaultSeqConfig[int]())
	h := inspecttest.NewHost()
	draw := func(h *inspecttest.Host) { inspect.Mut(&v, view).Reset2(&ref).Show(h) }
	h.Frame(draw)
	if h.HasButton("0", inspect.ResetText) || !h.HasButton("1", inspect.ResetText) {
		t.Fatal("reset buttons do not follow the differing rows")
	}
	h.Click("1", inspect.ResetText)
	h.Frame(draw)
	if diff := cmp.Diff(ref, v); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestOptionToggle(t *testing.T) {
	var v *int
	d := newDrive(t, &v, inspect.Option(intView))
	d.step(func(h *inspecttest.Host) { h.Toggle("root") })
	if v == nil || *v != 0 {
		t.Fatalf("v = %v after toggling on", v)
	}
	d.step(func(h *inspecttest.Host) { h.SetNumber("some", 3) })
	if *v != 3 {
		t.Errorf("*v = %d", *v)
	}
	d.step(func(h *inspecttest.Host) { h.Toggle("root") })
	if v != nil {
		t.Error("toggling off kept the value")
	}
}

func TestOptionOfRecordShowsChildren(t *testing.T) {
	v := &Settings{X: 42}
	d := newDrive(t, &v, inspect.Option(settingsView))
	if diff := cmp.Diff([]string{"[0]", "x"}, d.h.Labels()); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
}

func TestBigIntIgnoresGarbage(t *testing.T) {
	v := *big.NewInt(12)
	d := newDrive(t, &v, inspect.BigInt(inspect.Selectable))
	d.step(func(h *inspecttest.Host) { h.SetText("root", "12x") })
	if v.Int64() != 12 || d.resp.Changed {
		t.Errorf("v = %s changed=%v", v.String(), d.resp.Changed)
	}
	d.step(func(h *inspecttest.Host) { h.SetText("root", "123456789012345678901234567890") })
	if v.String() != "123456789012345678901234567890" || !d.resp.Changed {
		t.Errorf("v = %s changed=%v", v.String(), d.resp.Changed)
	}
}

func TestComboBoxView(t *testing.T) {
	v := 2
	d := newDrive(t, &v, inspect.ComboBox([]int{1, 2, 4}, nil))
	d.step(func(h *inspecttest.Host) { h.Select("root", "4") })
	if v != 4 {
		t.Errorf("v = %d", v)
	}
}
