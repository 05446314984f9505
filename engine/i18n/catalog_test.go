package i18n

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func mustNew(t *testing.T, fallback string, opts ...Option) *Catalog {
	t.Helper()
	c, err := New(fallback, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestTranslateCascade(t *testing.T) {
	c := mustNew(t, "en")
	c.Add("pl", "Color.Red", "Czerwony")
	c.Add("en", "Color.Red", "Red")
	c.Add("en", "Color.Green", "Green")

	if err := c.SetLocale("pl"); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"Color.Red", "Czerwony", true},
		{"Color.Green", "Green", true},
		{"Color.Blue", "pl.Color.Blue", false},
	}
	for _, tt := range tests {
		got, ok := c.Translate(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Translate(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestUnknownLocaleFallsBack(t *testing.T) {
	c := mustNew(t, "en")
	c.Add("en", "K", "en text")
	if err := c.SetLocale("xx"); err != nil {
		t.Fatal(err)
	}
	if got := c.Locale(); got != "xx" {
		t.Fatalf("Locale = %q", got)
	}
	if _, ok := c.Lookup("xx", "K"); ok {
		t.Fatal("Lookup(xx) succeeded")
	}
	if got, ok := c.Translate("K"); !ok || got != "en text" {
		t.Errorf("Translate = %q, %v", got, ok)
	}
}

func TestLookupUsesBaseLanguage(t *testing.T) {
	c := mustNew(t, "en")
	c.Add("pl", "K", "polski")
	if got, ok := c.Lookup("pl-PL", "K"); !ok || got != "polski" {
		t.Errorf("Lookup(pl-PL) = %q, %v", got, ok)
	}
	if _, ok := c.Lookup("de", "K"); ok {
		t.Error("Lookup(de) found a key that only exists in pl")
	}
}

func TestSetLocaleRejectsGarbage(t *testing.T) {
	c := mustNew(t, "en")
	if err := c.SetLocale("not a locale!"); err == nil {
		t.Error("SetLocale accepted an invalid tag")
	}
	if got := c.Locale(); got != "en" {
		t.Errorf("Locale = %q after a failed switch", got)
	}
}

func TestLoadYAMLFlattens(t *testing.T) {
	c := mustNew(t, "en")
	err := c.LoadYAML("en", strings.NewReader(`
Color:
  Red: Red
  Custom:
    __hint: A color of your own
    "0": red channel
Count: 3
`))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"Color.Red":           "Red",
		"Color.Custom.__hint": "A color of your own",
		"Color.Custom.0":      "red channel",
		"Count":               "3",
	}
	for k, v := range want {
		if got, ok := c.Lookup("en", k); !ok || got != v {
			t.Errorf("Lookup(%q) = %q, %v; want %q", k, got, ok, v)
		}
	}
}

func TestLoadYAMLError(t *testing.T) {
	c := mustNew(t, "en")
	if err := c.LoadYAML("en", strings.NewReader("a: [unclosed")); err == nil {
		t.Error("LoadYAML accepted malformed input")
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml":  {Data: []byte("Color:\n  Red: Red\n")},
		"locales/pl.yaml":  {Data: []byte("Color:\n  Red: Czerwony\n")},
		"locales/bad.yaml": {Data: []byte("x: [")},
	}
	c := mustNew(t, "en")
	err := c.LoadFS(fsys, "locales/*.yaml")
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("LoadFS error = %v, want one naming bad.yaml", err)
	}
	if diff := cmp.Diff([]string{"en", "pl"}, c.Locales()); diff != "" {
		t.Errorf("Locales mismatch (-want +got):\n%s", diff)
	}
	if err := c.LoadFS(fsys, "missing/*.yaml"); err == nil {
		t.Error("LoadFS with no matches returned nil")
	}
}

func TestMissingKeyWarnsOnce(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := mustNew(t, "en", WithLogger(zap.New(core)))
	for range 3 {
		c.Translate("Nope")
	}
	c.Translate("Nope.__hint")
	if n := logs.FilterMessage("missing translation").Len(); n != 1 {
		t.Errorf("got %d warnings, want 1", n)
	}
}

func TestLocalesAreSorted(t *testing.T) {
	c := mustNew(t, "en")
	for _, l := range []string{"pl", "de", "en", "fr"} {
		c.Add(l, "K", l)
	}
	for range 3 {
		if diff := cmp.Diff([]string{"de", "en", "fr", "pl"}, c.Locales()); diff != "" {
			t.Fatalf("Locales (-want +got):\n%s", diff)
		}
	}
}
