package derive

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"
)

func TestConvertCase(t *testing.T) {
	tests := []struct {
		style, in, want string
	}{
		{"lower", "MaxVolume", "max volume"},
		{"UPPER", "MaxVolume", "MAX VOLUME"},
		{"snake_case", "MaxVolume", "max_volume"},
		{"SCREAMING_SNAKE_CASE", "HTTPServer_port", "HTTP_SERVER_PORT"},
		{"kebab-case", "userID", "user-id"},
		{"camelCase", "max_volume", "maxVolume"},
		{"PascalCase", "max_volume", "MaxVolume"},
		{"Title Case", "MaxVolume", "Max Volume"},
		{"Sentence case", "MaxVolume", "Max volume"},
	}
	for _, tt := range tests {
		got, ok := convertCase(tt.style, tt.in)
		if !ok || got != tt.want {
			t.Errorf("convertCase(%q, %q) = %q, %v; want %q", tt.style, tt.in, got, ok, tt.want)
		}
	}
	if _, ok := convertCase("Weird", "x"); ok {
		t.Error("unknown style accepted")
	}
}

func TestSplitWords(t *testing.T) {
	got := splitWords("HTTPServer_port2Go")
	want := []string{"HTTP", "Server", "port2", "Go"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("splitWords (-want +got):\n%s", diff)
	}
}

func TestParseOptions(t *testing.T) {
	got, err := parseOptions(`rename="Max speed" config=inspect.Slider(0, 10) imut`, 100)
	if err != nil {
		t.Fatal(err)
	}
	want := []option{
		{key: "rename", value: "Max speed", hasValue: true, pos: 100},
		{key: "config", value: "inspect.Slider(0, 10)", hasValue: true, pos: 119},
		{key: "imut", pos: 148},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(option{})); diff != "" {
		t.Errorf("options (-want +got):\n%s", diff)
	}
}

func TestParseOptionsErrors(t *testing.T) {
	for _, in := range []string{
		`config=f(`,
		`config=f())`,
		`hint=`,
		`hint="abc`,
	} {
		if _, err := parseOptions(in, 1); err == nil {
			t.Errorf("parseOptions(%q) succeeded", in)
		}
	}
}

func TestCheckOptions(t *testing.T) {
	ms := []marker{{opts: []option{
		{key: "imut"},
		{key: "start_collapsed", value: "maybe", hasValue: true},
		{key: "config", value: "f(", hasValue: true},
		{key: "skip", value: "yes", hasValue: true},
		{key: "rename"},
		{key: "colour", value: "red", hasValue: true},
	}}}
	set, errs := checkOptions(ms, fieldKeys)
	if len(errs) != 5 {
		t.Errorf("%d errors, want 5: %v", len(errs), errs)
	}
	if !set.has("imut") || len(set) != 1 {
		t.Errorf("set = %v", set)
	}
}

const modelsSrc = `package models

import (
	"fmt"
	"math/big"
)

//inspect:derive rename_all="Title Case" i18n resetable=struct_default default=NewLevel()
type Level struct {
	//inspect:field config=inspect.Slider(0, 10) hint="how loud"
	MaxVolume int32
	Secret    string ` + "`inspect:\"-\"`" + `
	Balance   big.Int
	Tags      []string
	Paint     Color
	Fahrenheit float64 //inspect:field map_pre=toCelsius map_post=fromCelsius
	//inspect:field skip
	cache map[string]int
}

func NewLevel() Level { return Level{MaxVolume: 5} }

func toCelsius(f float64) float64         { return (f - 32) * 5 / 9 }
func fromCelsius(f *float64, c float64)   { *f = c*9/5 + 32 }
func (l Level) String() string           { return fmt.Sprint(l.MaxVolume) }

//inspect:enum Red Custom i18n
type Color interface{ isColor() }

type Red struct{}

//inspect:variant tuple resetable=Custom{R: 255}
type Custom struct{ R, G, B uint8 }

func (Red) isColor()    {}
func (Custom) isColor() {}
`

func generate(t *testing.T, src string) (map[string][]byte, error) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "models.go", src, parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}
	return Generate(fset, []*ast.File{f}, "", nil)
}

func TestGenerateRecordAndEnum(t *testing.T) {
	out, err := generate(t, modelsSrc)
	if err != nil {
		t.Fatal(err)
	}
	src, ok := out["models_inspect.go"]
	if !ok || len(out) != 1 {
		t.Fatalf("outputs = %v", out)
	}
	code := string(src)
	for _, want := range []string{
		header,
		`"math/big"`,
		`"sync"`,
		`func LevelView() inspect.View[Level]`,
		`Reset: inspect.ResetStructDefault`,
		`Default: func() Level { return NewLevel() }`,
		`inspect.Number[int32](inspect.Slider(0, 10))`,
		`Label: "Max Volume"`,
		`Hint: "how loud"`,
		`I18nKey: "Level.MaxVolume"`,
		`inspect.BigInt(inspect.Selectable)`,
		`inspect.Slice(inspect.String[string](inspect.SingleLine()), inspect.DefaultSeqConfig[string]())`,
		`ColorView()`,
		`inspect.MappedField[Level, float64, float64]("Fahrenheit"`,
		`inspect.ByValue(toCelsius), fromCelsius`,
		`func (v *Level) Inspect() *inspect.Builder[Level]`,
		`func ColorView() inspect.View[Color]`,
		`inspect.Variant[Color, Red]("Red", inspect.VariantOpts[Red]{Label: "Red", I18nKey: "Color.Red"})`,
		`I18nKey: "Color.Custom.2"`,
		`Label: "[1]"`,
		`New: func() Custom { return Custom{R: 255} }`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code lacks %s\n%s", want, code)
		}
	}
	for _, absent := range []string{"Secret", "cache", `"fmt"`, "ColorInspect", "func (v *Color)"} {
		if strings.Contains(code, absent) {
			t.Errorf("generated code contains %s", absent)
		}
	}
	if _, err := parser.ParseFile(token.NewFileSet(), "out.go", src, 0); err != nil {
		t.Errorf("generated code does not parse: %v", err)
	}
}

func TestGenerateImutEnum(t *testing.T) {
	out, err := generate(t, `package models

//inspect:enum B imut
type A interface{ isA() }

type B struct{ X int }

func (B) isA() {}
`)
	if err != nil {
		t.Fatal(err)
	}
	code := string(out["models_inspect.go"])
	if !strings.Contains(code, "inspect.ImutEnum[A](") {
		t.Errorf("read-only sum type not generated with ImutEnum\n%s", code)
	}
	if strings.Contains(code, "Imut: true") {
		t.Errorf("variant repeats the type-level imut\n%s", code)
	}
}

func TestGenerateErrors(t *testing.T) {
	_, err := generate(t, `package models

//inspect:derive colour=red
type A struct{ X chan int }
`)
	errs := multierr.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("errors = %v", err)
	}
	for i, want := range []string{
		`models.go:3:18: unknown key "colour"`,
		`models.go:4:16: A.X: no view for type chan int; add a wrapper`,
	} {
		if got := errs[i].Error(); got != want {
			t.Errorf("error %d = %q, want %q", i, got, want)
		}
	}
}

func TestGenerateRejects(t *testing.T) {
	for name, src := range map[string]string{
		"derive on interface": "package p\n//inspect:derive\ntype A interface{}\n",
		"enum on struct":      "package p\n//inspect:enum B\ntype A struct{}\ntype B struct{}\n",
		"enum without cases":  "package p\n//inspect:enum i18n\ntype A interface{}\n",
		"unknown variant":     "package p\n//inspect:enum B\ntype A interface{}\n",
		"enum default":        "package p\n//inspect:enum B default=B{}\ntype A interface{}\ntype B struct{}\n",
		"post without pre":    "package p\n//inspect:derive\ntype A struct {\n\tX int //inspect:field map_post=f\n}\n",
		"array config":        "package p\n//inspect:derive\ntype A struct {\n\tX [2]int //inspect:field config=c\n}\n",
		"bad rename_all":      "package p\n//inspect:derive rename_all=shouting\ntype A struct{}\n",
		"generic":             "package p\n//inspect:derive\ntype A[T any] struct{ X T }\n",
		"underived type":      "package p\n//inspect:derive\ntype A struct{ X B }\ntype B struct{}\n",
	} {
		if _, err := generate(t, src); err == nil {
			t.Errorf("%s: no error", name)
		}
	}
}

func TestRunWritesBesideSources(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "models.go"), []byte(modelsSrc), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "models_test.go"), []byte("package models\n\n//inspect:derive\ntype T struct{ C chan int }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := Run(Config{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "models_inspect.go")}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("paths (-want +got):\n%s", diff)
	}
	first, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatal(err)
	}

	// The second run skips the generated file and writes the same code.
	if _, err := Run(Config{Dir: dir}); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(want[0])
	if diff := cmp.Diff(string(first), string(second)); diff != "" {
		t.Errorf("regenerated code differs:\n%s", diff)
	}
}

func TestRunEmptyDir(t *testing.T) {
	if _, err := Run(Config{Dir: t.TempDir()}); err == nil {
		t.Error("no error for a directory without Go files")
	}
}
