package inspect_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hubastard/grove-inspector/engine/i18n"
	"github.com/hubastard/grove-inspector/engine/inspect"
	"github.com/hubastard/grove-inspector/engine/inspect/inspecttest"
	"github.com/hubastard/grove-inspector/engine/ui"
)

// ===== Fixtures =====

type Level struct {
	N int32
}

var levelView = inspect.Record(inspect.RecordOpts[Level]{},
	inspect.Field("n", func(l *Level) *int32 { return &l.N }, inspect.Number[int32](inspect.Slider(0, 10)), inspect.FieldOpts[Level, int32]{}),
)

type Color interface{ isColor() }

type Red struct{}

type Custom struct{ R, G, B uint8 }

func (Red) isColor()    {}
func (Custom) isColor() {}

func channel(name string, get func(*Custom) *uint8) inspect.FieldSpec[Custom] {
	return inspect.Field(name, get, inspect.Number[uint8](inspect.DefaultDrag()),
		inspect.FieldOpts[Custom, uint8]{Label: "[" + name + "]", I18nKey: "Color.Custom." + name})
}

var colorView = inspect.Enum[Color](
	inspect.Variant[Color, Red]("Red", inspect.VariantOpts[Red]{I18nKey: "Color.Red"}),
	inspect.Variant[Color, Custom]("Custom", inspect.VariantOpts[Custom]{I18nKey: "Color.Custom"},
		channel("0", func(c *Custom) *uint8 { return &c.R }),
		channel("1", func(c *Custom) *uint8 { return &c.G }),
		channel("2", func(c *Custom) *uint8 { return &c.B }),
	),
)

type Settings struct {
	X int32
}

var settingsView = inspect.Record(inspect.RecordOpts[Settings]{
	Reset:   inspect.ResetStructDefault,
	Default: func() Settings { return Settings{X: 42} },
},
	inspect.Field("x", func(s *Settings) *int32 { return &s.X }, inspect.Number[int32](inspect.DefaultDrag()), inspect.FieldOpts[Settings, int32]{}),
)

// Account has a field no view knows about.
type Account struct {
	Visible uint32
	Secret  uint32
}

var accountView = inspect.Record(inspect.RecordOpts[Account]{},
	inspect.Field("visible", func(a *Account) *uint32 { return &a.Visible }, inspect.Number[uint32](inspect.DefaultDrag()), inspect.FieldOpts[Account, uint32]{}),
)

// ===== Scenarios =====

func TestSliderDrag(t *testing.T) {
	h := inspecttest.NewHost()
	s := Level{N: 5}
	var resp ui.Response
	draw := func(h *inspecttest.Host) { resp = inspect.Mut(&s, levelView).Show(h) }

	h.Frame(draw)
	sliders := h.Find(inspecttest.KindSlider, "n")
	if len(sliders) != 1 || sliders[0].Value != 5.0 {
		t.Fatalf("sliders = %+v", sliders)
	}
	if resp.Changed {
		t.Error("first frame reported a change")
	}

	h.SetNumber("n", 8)
	h.Frame(draw)
	if !resp.Changed {
		t.Error("drag frame did not report a change")
	}
	if s.N != 8 {
		t.Errorf("N = %d, want 8", s.N)
	}

	h.Frame(draw)
	if resp.Changed {
		t.Error("frame after the drag reported a change")
	}
}

func TestSliderClampsToRange(t *testing.T) {
	h := inspecttest.NewHost()
	s := Level{N: 5}
	draw := func(h *inspecttest.Host) { inspect.Mut(&s, levelView).Show(h) }
	h.Frame(draw)
	h.SetNumber("n", 30)
	h.Frame(draw)
	if s.N != 10 {
		t.Errorf("N = %d, want 10", s.N)
	}
}

func TestEnumSelector(t *testing.T) {
	h := inspecttest.NewHost()
	var c Color = Red{}
	var resp ui.Response
	draw := func(h *inspecttest.Host) { resp = inspect.Mut(&c, colorView).Show(h) }

	h.Frame(draw)
	combos := h.Find(inspecttest.KindCombo, "root")
	if len(combos) != 1 {
		t.Fatalf("combos = %+v", combos)
	}
	if diff := cmp.Diff([]string{"Red", "Custom"}, combos[0].Options); diff != "" {
		t.Errorf("options (-want +got):\n%s", diff)
	}
	if len(h.Labels()) != 0 {
		t.Errorf("unit variant drew labels %v", h.Labels())
	}

	h.Select("root", "Custom")
	h.Frame(draw)
	if !resp.Changed {
		t.Error("selecting a variant did not report a change")
	}
	if diff := cmp.Diff(Color(Custom{}), c); diff != "" {
		t.Errorf("value (-want +got):\n%s", diff)
	}

	h.Frame(draw)
	if diff := cmp.Diff([]string{"[0]", "[1]", "[2]"}, h.Labels()); diff != "" {
		t.Errorf("child labels (-want +got):\n%s", diff)
	}
	if n := len(h.Find(inspecttest.KindDrag, "")); n != 3 {
		t.Errorf("%d number editors, want 3", n)
	}
}

func TestEnumSwitchDropsOldFields(t *testing.T) {
	h := inspecttest.NewHost()
	var c Color = Custom{R: 1, G: 2, B: 3}
	draw := func(h *inspecttest.Host) { inspect.Mut(&c, colorView).Show(h) }
	h.Frame(draw)
	h.Select("root", "Red")
	h.Frame(draw)
	h.Select("root", "Custom")
	h.Frame(draw)
	if c != Color(Custom{}) {
		t.Errorf("value = %#v, want a fresh Custom", c)
	}
}

func TestSliceAddRemoveReorder(t *testing.T) {
	h := inspecttest.NewHost()
	v := []string{"a", "b", "c"}
	view := inspect.Slice(inspect.String[string](inspect.SingleLine()), inspect.DefaultSeqConfig[string]())
	draw := func(h *inspecttest.Host) { inspect.Mut(&v, view).Show(h) }
	h.Frame(draw)

	steps := []struct {
		path, button string
		want         []string
	}{
		{"2", inspect.UpText, []string{"a", "c", "b"}},
		{"0", inspect.RemoveText, []string{"c", "b"}},
		{"add", inspect.AddText, []string{"c", "b", ""}},
	}
	for _, st := range steps {
		h.Click(st.path, st.button)
		h.Frame(draw)
		if h.Pending() != 0 {
			t.Fatalf("click %q on %q matched nothing", st.button, st.path)
		}
		if diff := cmp.Diff(st.want, v); diff != "" {
			t.Errorf("after %q on %q (-want +got):\n%s", st.button, st.path, diff)
		}
	}
}

func TestResetCascade(t *testing.T) {
	h := inspecttest.NewHost()
	s := Settings{X: 100}
	draw := func(h *inspecttest.Host) { inspect.Mut(&s, settingsView).Show(h) }

	h.Frame(draw)
	if !h.HasButton("x", inspect.ResetText) {
		t.Fatal("no reset button for a modified field")
	}
	h.Click("x", inspect.ResetText)
	h.Frame(draw)
	if s.X != 42 {
		t.Errorf("X = %d after reset, want 42", s.X)
	}
	h.Frame(draw)
	if h.HasButton("x", inspect.ResetText) {
		t.Error("reset button still shown for a default value")
	}
}

func TestResetHiddenWhenImmutable(t *testing.T) {
	h := inspecttest.NewHost()
	s := Settings{X: 100}
	h.Frame(func(h *inspecttest.Host) { inspect.Imut(&s, settingsView).Show(h) })
	if h.HasButton("x", inspect.ResetText) {
		t.Error("read-only view shows a reset button")
	}
	if len(h.Find(inspecttest.KindLabel, "x")) != 2 {
		t.Error("read-only number is not drawn as a label")
	}
}

func TestUnlistedFieldIsIgnored(t *testing.T) {
	a := Account{Visible: 1, Secret: 7}
	b := Account{Visible: 1, Secret: 99}
	render := func(v *Account) []inspecttest.Widget {
		h := inspecttest.NewHost()
		return h.Frame(func(h *inspecttest.Host) { inspect.Mut(v, accountView).Show(h) })
	}
	if diff := cmp.Diff(render(&a), render(&b)); diff != "" {
		t.Errorf("renders differ (-a +b):\n%s", diff)
	}
	if !accountView.Eq(&a, &b) {
		t.Error("Eq looks at an unlisted field")
	}
	accountView.Clone(&a, &b)
	if a.Secret != 7 {
		t.Errorf("Clone overwrote the unlisted field: %d", a.Secret)
	}
}

func TestTranslatedLabels(t *testing.T) {
	cat, err := i18n.New("en")
	if err != nil {
		t.Fatal(err)
	}
	cat.Add("pl", "Color.Red", "Czerwony")
	cat.Add("en", "Color.Red", "Red")
	if err := cat.SetLocale("pl"); err != nil {
		t.Fatal(err)
	}

	h := inspecttest.NewHost()
	var c Color = Red{}
	draw := func(h *inspecttest.Host) {
		inspect.Imut(&c, colorView).Translate(cat.Translate).Show(h)
	}
	h.Frame(draw)
	if diff := cmp.Diff([]string{"Czerwony"}, h.Labels()); diff != "" {
		t.Errorf("pl labels (-want +got):\n%s", diff)
	}

	if err := cat.SetLocale("en"); err != nil {
		t.Fatal(err)
	}
	h.Frame(draw)
	if diff := cmp.Diff([]string{"Red"}, h.Labels()); diff != "" {
		t.Errorf("en labels (-want +got):\n%s", diff)
	}
}

func TestTranslationFallsBackToFallbackLocale(t *testing.T) {
	cat, err := i18n.New("en")
	if err != nil {
		t.Fatal(err)
	}
	cat.Add("en", "Color.Custom.0", "red channel")
	cat.Add("en", "Color.Custom.0.__hint", "0 to 255")
	if err := cat.SetLocale("xx"); err != nil {
		t.Fatal(err)
	}
	h := inspecttest.NewHost()
	var c Color = Custom{}
	h.Frame(func(h *inspecttest.Host) {
		inspect.Mut(&c, colorView).Translate(cat.Translate).Show(h)
	})
	labels := h.Find(inspecttest.KindLabel, "0")
	if len(labels) != 1 || labels[0].Text != "red channel" || labels[0].Hint != "0 to 255" {
		t.Errorf("labels = %+v", labels)
	}
	// Keys with no translation anywhere show the placeholder.
	if len(h.Find(inspecttest.KindLabel, "1")) != 1 || h.Find(inspecttest.KindLabel, "1")[0].Text != "xx.Color.Custom.1" {
		t.Errorf("placeholder label = %+v", h.Find(inspecttest.KindLabel, "1"))
	}
}
