// Package derive generates inspector views for the record and sum types of
// a Go package. Types opt in with marker comments:
//
//	//inspect:derive rename_all="Title Case" resetable=struct_default default=DefaultLevel()
//	type Level struct {
//		//inspect:field config=inspect.Slider(0, 10) hint="how loud"
//		Volume int32
//		Secret string `inspect:"-"`
//	}
//
//	//inspect:enum Red Custom i18n
//	type Color interface{ isColor() }
//
//	//inspect:variant tuple
//	type Custom struct{ R, G, B uint8 }
//
// For every marked type T the generator writes TView() returning an
// inspect.View[T]; records also get (*T).Inspect and (*T).InspectImut.
package derive

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	header      = "// Code generated by inspectgen. DO NOT EDIT."
	inspectPath = "github.com/hubastard/grove-inspector/engine/inspect"
	outSuffix   = "_inspect.go"
)

// Diagnostic is a problem found in a marked declaration.
type Diagnostic struct {
	Pos token.Position
	Err error
}

func (d *Diagnostic) Error() string { return d.Pos.String() + ": " + d.Err.Error() }
func (d *Diagnostic) Unwrap() error { return d.Err }

type declKind uint8

const (
	kindRecord declKind = iota
	kindEnum
)

// decl is one marked type.
type decl struct {
	kind     declKind
	name     string
	spec     *ast.TypeSpec
	file     *ast.File
	opts     optionSet
	variants []string
}

type generator struct {
	fset    *token.FileSet
	pkg     string
	types   map[string]*ast.TypeSpec
	docs    map[string][]*ast.CommentGroup
	derived map[string]*decl
	order   []*decl
	errs    error
	log     *zap.Logger
}

func (g *generator) fail(pos token.Pos, err error) {
	var pe posError
	for _, e := range multierr.Errors(err) {
		p := pos
		if errors.As(e, &pe) {
			p, e = pe.pos, pe.err
		}
		g.errs = multierr.Append(g.errs, &Diagnostic{Pos: g.fset.Position(p), Err: e})
	}
}

func (g *generator) failf(pos token.Pos, format string, args ...any) {
	g.fail(pos, fmt.Errorf(format, args...))
}

// Generate returns the generated sources for the marked types of files,
// keyed by output file name. When out is not empty every type goes to that
// file; otherwise types of foo.go go to foo_inspect.go. Nothing is returned
// when any declaration has errors.
func Generate(fset *token.FileSet, files []*ast.File, out string, log *zap.Logger) (map[string][]byte, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &generator{
		fset:    fset,
		types:   make(map[string]*ast.TypeSpec),
		docs:    make(map[string][]*ast.CommentGroup),
		derived: make(map[string]*decl),
		log:     log,
	}
	for _, f := range files {
		if g.pkg == "" {
			g.pkg = f.Name.Name
		}
		g.collect(f)
	}

	bodies := make(map[string]*bytes.Buffer)
	srcs := make(map[string][]*ast.File)
	var names []string
	for _, d := range g.order {
		name := out
		if name == "" {
			base := filepath.Base(fset.Position(d.file.Package).Filename)
			name = strings.TrimSuffix(base, ".go") + outSuffix
		}
		b, ok := bodies[name]
		if !ok {
			b = new(bytes.Buffer)
			bodies[name] = b
			names = append(names, name)
		}
		if !slices.Contains(srcs[name], d.file) {
			srcs[name] = append(srcs[name], d.file)
		}
		switch d.kind {
		case kindRecord:
			g.emitRecord(b, d)
		case kindEnum:
			g.emitEnum(b, d)
		}
	}
	if g.errs != nil {
		return nil, g.errs
	}

	result := make(map[string][]byte, len(names))
	for _, name := range names {
		src, err := g.assemble(bodies[name].String(), srcs[name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		result[name] = src
	}
	return result, nil
}

// collect records the type declarations of f and the marked ones.
func (g *generator) collect(f *ast.File) {
	for _, d := range f.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, s := range gd.Specs {
			spec := s.(*ast.TypeSpec)
			g.types[spec.Name.Name] = spec
			docs := []*ast.CommentGroup{spec.Doc}
			if len(gd.Specs) == 1 {
				docs = append(docs, gd.Doc)
			}
			g.docs[spec.Name.Name] = docs
			g.collectMarked(f, spec, docs)
		}
	}
}

func (g *generator) collectMarked(f *ast.File, spec *ast.TypeSpec, docs []*ast.CommentGroup) {
	derives, err := findMarkers(dirDerive, docs...)
	if err != nil {
		g.fail(spec.Pos(), err)
	}
	enums, err := findMarkers(dirEnum, docs...)
	if err != nil {
		g.fail(spec.Pos(), err)
	}
	if len(derives) == 0 && len(enums) == 0 {
		return
	}
	d := &decl{name: spec.Name.Name, spec: spec, file: f}
	if spec.TypeParams != nil {
		g.failf(spec.Pos(), "%s: generic types cannot be derived", d.name)
		return
	}
	switch {
	case len(derives) > 0 && len(enums) > 0:
		g.failf(spec.Pos(), "%s: both %sderive and %senum", d.name, markerPrefix, markerPrefix)
		return
	case len(derives) > 0:
		if _, ok := spec.Type.(*ast.StructType); !ok {
			g.failf(spec.Pos(), "%s: %sderive needs a struct type", d.name, markerPrefix)
			return
		}
		d.kind = kindRecord
		opts, errs := checkOptions(derives, typeKeys)
		for _, e := range errs {
			g.fail(spec.Pos(), e)
		}
		d.opts = opts
	default:
		if _, ok := spec.Type.(*ast.InterfaceType); !ok {
			g.failf(spec.Pos(), "%s: %senum needs an interface type", d.name, markerPrefix)
			return
		}
		d.kind = kindEnum
		// Bare words that are not type options name the variants.
		for i := range enums {
			kept := enums[i].opts[:0]
			for _, o := range enums[i].opts {
				if _, isKey := typeKeys[o.key]; !isKey && !o.hasValue && token.IsIdentifier(o.key) {
					d.variants = append(d.variants, o.key)
					continue
				}
				kept = append(kept, o)
			}
			enums[i].opts = kept
		}
		opts, errs := checkOptions(enums, typeKeys)
		for _, e := range errs {
			g.fail(spec.Pos(), e)
		}
		for _, k := range []string{"default", "resetable", "tuple"} {
			if opts.has(k) {
				g.fail(spec.Pos(), posError{pos: opts[k].pos, err: fmt.Errorf("%s is not supported on sum types", k)})
			}
		}
		if len(d.variants) == 0 {
			g.failf(spec.Pos(), "%s: %senum lists no variants", d.name, markerPrefix)
		}
		d.opts = opts
	}
	if d.opts.has("rename_all") {
		if _, ok := caseStyles[d.opts.get("rename_all")]; !ok {
			o := d.opts["rename_all"]
			g.fail(spec.Pos(), posError{pos: o.pos, err: fmt.Errorf("unknown case %q", o.value)})
		}
	}
	g.derived[d.name] = d
	g.order = append(g.order, d)
}

// ===== Labels =====

// labelCtx is what the fields of one record or variant share.
type labelCtx struct {
	prefix    string
	i18n      bool
	renameAll string
	tuple     bool
	imut      bool
}

func (lc labelCtx) label(goName string, index int, opts optionSet) string {
	switch {
	case opts.has("rename"):
		return opts.get("rename")
	case lc.tuple:
		return "[" + strconv.Itoa(index) + "]"
	case lc.renameAll != "":
		if s, ok := convertCase(lc.renameAll, goName); ok {
			return s
		}
	}
	return goName
}

func (lc labelCtx) key(id string, opts optionSet) string {
	if o, ok := opts["i18n"]; ok && o.hasValue {
		return o.value
	}
	if lc.i18n || opts.has("i18n") {
		return lc.prefix + "." + id
	}
	return ""
}

// ===== Records =====

type structField struct {
	goName string
	typ    ast.Expr
	field  *ast.Field
	opts   optionSet
}

// fields lists the non-skipped fields of st.
func (g *generator) fields(st *ast.StructType) []structField {
	var out []structField
	for _, f := range st.Fields.List {
		markers, err := findMarkers(dirField, f.Doc, f.Comment)
		if err != nil {
			g.fail(f.Pos(), err)
		}
		opts, errs := checkOptions(markers, fieldKeys)
		for _, e := range errs {
			g.fail(f.Pos(), e)
		}
		if opts.has("skip") || tagSkips(f.Tag) {
			continue
		}
		names := make([]string, 0, len(f.Names))
		for _, n := range f.Names {
			if n.Name != "_" {
				names = append(names, n.Name)
			}
		}
		if len(f.Names) == 0 {
			names = append(names, embeddedName(f.Type))
		}
		for _, n := range names {
			out = append(out, structField{goName: n, typ: f.Type, field: f, opts: opts})
		}
	}
	return out
}

func tagSkips(tag *ast.BasicLit) bool {
	if tag == nil {
		return false
	}
	s, err := strconv.Unquote(tag.Value)
	if err != nil {
		return false
	}
	return reflect.StructTag(s).Get("inspect") == "-"
}

func embeddedName(t ast.Expr) string {
	switch t := t.(type) {
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.Ident:
		return t.Name
	}
	return types.ExprString(t)
}

// fieldSpecs renders the FieldSpec expressions of the fields of owner.
func (g *generator) fieldSpecs(owner string, st *ast.StructType, lc labelCtx) []string {
	var out []string
	for i, f := range g.fields(st) {
		id := f.goName
		if lc.tuple {
			id = strconv.Itoa(i)
		}
		spec, err := g.fieldSpec(owner, id, i, f, lc)
		if err != nil {
			g.fail(f.field.Pos(), fmt.Errorf("%s.%s: %w", owner, f.goName, err))
			continue
		}
		out = append(out, spec)
	}
	return out
}

func (g *generator) fieldSpec(owner, id string, index int, f structField, lc labelCtx) (string, error) {
	o := f.opts
	fType := types.ExprString(f.typ)
	mapped := o.has("map_pre") || o.has("map_pre_ref")
	if o.has("map_post") && !mapped {
		return "", errors.New("map_post needs map_pre or map_pre_ref")
	}
	if o.has("map_pre") && o.has("map_pre_ref") {
		return "", errors.New("map_pre and map_pre_ref are exclusive")
	}

	// The edited type: the field itself or its surrogate.
	vType, vExpr := fType, f.typ
	if o.has("surrogate") {
		if !mapped {
			return "", errors.New("surrogate needs map_pre or map_pre_ref")
		}
		vType = o.get("surrogate")
		e, err := parser.ParseExpr(vType)
		if err != nil {
			return "", fmt.Errorf("surrogate: %w", err)
		}
		vExpr = e
	}
	view := o.get("wrapper")
	if view == "" {
		v, err := g.viewExpr(vExpr, o.get("config"), o.get("elem_config"))
		if err != nil {
			return "", err
		}
		view = v
	}

	var fo []string
	add := func(format string, args ...any) { fo = append(fo, fmt.Sprintf(format, args...)) }
	add("Label: %q", lc.label(f.goName, index, o))
	if key := lc.key(id, o); key != "" {
		add("I18nKey: %q", key)
	}
	if o.has("hint") {
		add("Hint: %q", o.get("hint"))
	}
	if o.has("imut") {
		add("Imut: true")
	}
	if o.has("resetable") {
		switch r := o.get("resetable"); r {
		case "field_default":
			add("Reset: inspect.ResetFieldDefault")
		case "struct_default":
			add("Reset: inspect.ResetStructDefault")
		case "none", "not_resetable":
			add("Reset: inspect.ResetNone")
		default:
			if _, err := parser.ParseExpr(r); err != nil {
				return "", fmt.Errorf("resetable: malformed expression %q: %w", r, err)
			}
			add("ResetValue: func() %s { return %s }", vType, r)
		}
	}
	if c, ok := o["start_collapsed"]; ok {
		b := !c.hasValue || c.value == "true"
		add("StartCollapsed: inspect.Collapsed(%t)", b)
	}
	for key, name := range map[string]string{
		"on_change":        "OnChange",
		"on_change_struct": "OnChangeStruct",
		"eeq":              "Eq",
		"eclone":           "Clone",
	} {
		if o.has(key) {
			add("%s: %s", name, o.get(key))
		}
	}
	slices.Sort(fo[1:])
	opts := fmt.Sprintf("inspect.FieldOpts[%s, %s]{%s}", owner, vType, strings.Join(fo, ", "))
	get := fmt.Sprintf("func(v *%s) *%s { return &v.%s }", owner, fType, f.goName)

	if !mapped {
		return fmt.Sprintf("inspect.Field(%q, %s, %s, %s)", id, get, view, opts), nil
	}
	pre := o.get("map_pre_ref")
	if o.has("map_pre") {
		pre = fmt.Sprintf("inspect.ByValue(%s)", o.get("map_pre"))
	}
	post := or(o.get("map_post"), "nil")
	return fmt.Sprintf("inspect.MappedField[%s, %s, %s](%q, %s, %s, %s, %s, %s)",
		owner, fType, vType, id, get, pre, post, view, opts), nil
}

func (g *generator) emitRecord(w *bytes.Buffer, d *decl) {
	st := d.spec.Type.(*ast.StructType)
	lc := labelCtx{
		prefix:    or(d.opts.get("prefix"), d.name),
		i18n:      d.opts.has("i18n"),
		renameAll: d.opts.get("rename_all"),
		tuple:     d.opts.has("tuple"),
	}
	fields := g.fieldSpecs(d.name, st, lc)

	var ro []string
	if lc.tuple {
		ro = append(ro, "Tuple: true")
	}
	if d.opts.has("imut") {
		ro = append(ro, "Imut: true")
	}
	if d.opts.has("resetable") {
		switch r := d.opts.get("resetable"); r {
		case "field_default":
			ro = append(ro, "Reset: inspect.ResetFieldDefault")
		case "struct_default":
			ro = append(ro, "Reset: inspect.ResetStructDefault")
		case "not_resetable":
			ro = append(ro, "Reset: inspect.ResetNone")
		default:
			g.fail(d.spec.Pos(), posError{pos: d.opts["resetable"].pos,
				err: fmt.Errorf("resetable must be field_default, struct_default or not_resetable, got %q", r)})
		}
	}
	if d.opts.has("default") {
		ro = append(ro, fmt.Sprintf("Default: func() %s { return %s }", d.name, d.opts.get("default")))
	}
	body := fmt.Sprintf("inspect.Record(inspect.RecordOpts[%s]{%s},\n%s)", d.name, strings.Join(ro, ", "), joinArgs(fields))
	g.emitView(w, d.name, body)
	fmt.Fprintf(w, `
// Inspect returns a builder showing v with editing controls.
func (v *%[1]s) Inspect() *inspect.Builder[%[1]s] { return inspect.Mut(v, %[1]sView()) }

// InspectImut returns a builder showing v read-only.
func (v *%[1]s) InspectImut() *inspect.Builder[%[1]s] { return inspect.Imut(v, %[1]sView()) }
`, d.name)
	g.log.Debug("derived record", zap.String("type", d.name), zap.Int("fields", len(fields)))
}

// ===== Sum types =====

func (g *generator) emitEnum(w *bytes.Buffer, d *decl) {
	prefix := or(d.opts.get("prefix"), d.name)
	var variants []string
	for _, name := range d.variants {
		spec, ok := g.types[name]
		if !ok {
			g.failf(d.spec.Pos(), "%s: unknown variant type %s", d.name, name)
			continue
		}
		st, ok := spec.Type.(*ast.StructType)
		if !ok {
			g.failf(spec.Pos(), "%s: variant %s is not a struct type", d.name, name)
			continue
		}
		markers, err := findMarkers(dirVariant, g.docs[name]...)
		if err != nil {
			g.fail(spec.Pos(), err)
		}
		vo, errs := checkOptions(markers, variantKeys)
		for _, e := range errs {
			g.fail(spec.Pos(), e)
		}
		if vo.has("skip") {
			continue
		}
		lc := labelCtx{
			prefix:    prefix,
			i18n:      d.opts.has("i18n"),
			renameAll: d.opts.get("rename_all"),
		}
		var opts []string
		opts = append(opts, fmt.Sprintf("Label: %q", lc.label(name, 0, vo)))
		if key := lc.key(name, vo); key != "" {
			opts = append(opts, fmt.Sprintf("I18nKey: %q", key))
		}
		if vo.has("hint") {
			opts = append(opts, fmt.Sprintf("Hint: %q", vo.get("hint")))
		}
		if vo.has("imut") {
			opts = append(opts, "Imut: true")
		}
		if vo.has("resetable") {
			opts = append(opts, fmt.Sprintf("New: func() %s { return %s }", name, vo.get("resetable")))
		}
		flc := labelCtx{
			prefix:    prefix + "." + name,
			i18n:      lc.i18n || vo.has("i18n"),
			renameAll: lc.renameAll,
			tuple:     vo.has("tuple"),
		}
		fields := g.fieldSpecs(name, st, flc)
		v := fmt.Sprintf("inspect.Variant[%s, %s](%q, inspect.VariantOpts[%s]{%s}", d.name, name, name, name, strings.Join(opts, ", "))
		if len(fields) > 0 {
			v += ",\n" + joinArgs(fields)
		}
		variants = append(variants, v+")")
	}
	ctor := "Enum"
	if d.opts.has("imut") {
		ctor = "ImutEnum"
	}
	body := fmt.Sprintf("inspect.%s[%s](\n%s)", ctor, d.name, joinArgs(variants))
	g.emitView(w, d.name, body)
	g.log.Debug("derived sum type", zap.String("type", d.name), zap.Int("variants", len(variants)))
}

// ===== Output =====

func joinArgs(args []string) string {
	var b strings.Builder
	for _, a := range args {
		b.WriteString(a)
		b.WriteString(",\n")
	}
	return b.String()
}

// emitView writes TView and its cache. The view is built lazily so that
// recursive types can refer to their own view.
func (g *generator) emitView(w *bytes.Buffer, name, body string) {
	fmt.Fprintf(w, `
// %[1]sView returns the inspector view of %[1]s.
func %[1]sView() inspect.View[%[1]s] {
	viewOf%[1]sOnce.Do(func() {
		viewOf%[1]s = inspect.Lazy(func() inspect.View[%[1]s] {
			return %[2]s
		})
	})
	return viewOf%[1]s
}

var (
	viewOf%[1]sOnce sync.Once
	viewOf%[1]s inspect.View[%[1]s]
)
`, name, body)
}

// assemble adds the header and the imports the body refers to, and
// formats the file.
func (g *generator) assemble(body string, srcs []*ast.File) ([]byte, error) {
	imports := map[string]string{
		"sync":      "",
		inspectPath: "",
	}
	for _, f := range srcs {
		for _, spec := range f.Imports {
			path, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				continue
			}
			if _, ok := imports[path]; ok {
				continue
			}
			local, alias := importName(path), ""
			if spec.Name != nil {
				local, alias = spec.Name.Name, spec.Name.Name
			}
			if local == "_" || local == "." {
				continue
			}
			if regexp.MustCompile(`\b` + regexp.QuoteMeta(local) + `\.`).MatchString(body) {
				imports[path] = alias
			}
		}
	}
	paths := make([]string, 0, len(imports))
	for p := range imports {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	var b bytes.Buffer
	fmt.Fprintf(&b, "%s\n\npackage %s\n\nimport (\n", header, g.pkg)
	for _, p := range paths {
		if a := imports[p]; a != "" {
			fmt.Fprintf(&b, "\t%s %q\n", a, p)
		} else {
			fmt.Fprintf(&b, "\t%q\n", p)
		}
	}
	b.WriteString(")\n")
	b.WriteString(body)
	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// importName guesses the package name of an import path without an alias:
// the last element, skipping a major version suffix and dropping a "go-"
// prefix and dashes.
func importName(path string) string {
	parts := strings.Split(path, "/")
	name := parts[len(parts)-1]
	if majorVersion.MatchString(name) && len(parts) > 1 {
		name = parts[len(parts)-2]
	}
	name = strings.TrimPrefix(name, "go-")
	return strings.ReplaceAll(name, "-", "")
}

// ===== Package driver =====

// Config drives Run.
type Config struct {
	Dir string
	// Out, when set, is the single file every type is written to.
	Out string
	Log *zap.Logger
}

// Run parses the non-test, non-generated Go files of cfg.Dir and writes the
// generated files next to them. It returns the paths written.
func Run(cfg Config) ([]string, error) {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	dir := or(cfg.Dir, ".")
	names, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	fset := token.NewFileSet()
	var files []*ast.File
	for _, name := range names {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		if ast.IsGenerated(f) {
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Go files in %s", dir)
	}

	out, err := Generate(fset, files, cfg.Out, log)
	if err != nil {
		return nil, err
	}
	var written []string
	for name, src := range out {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return written, fmt.Errorf("write: %w", err)
		}
		log.Info("wrote", zap.String("file", path))
		written = append(written, path)
	}
	slices.Sort(written)
	return written, nil
}
