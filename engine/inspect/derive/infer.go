package derive

import (
	"fmt"
	"go/ast"
	"go/types"
)

var numericIdents = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"float32": true, "float64": true, "byte": true, "rune": true,
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// viewExpr returns the Go expression of the view of t. cfg is the editor
// configuration of t itself; elemCfg is passed down to the elements of
// containers.
func (g *generator) viewExpr(t ast.Expr, cfg, elemCfg string) (string, error) {
	text := types.ExprString(t)
	switch t := t.(type) {
	case *ast.Ident:
		return g.identView(t.Name, cfg)

	case *ast.StarExpr:
		if v, ok, err := g.genericView(t.X, cfg, elemCfg); ok || err != nil {
			return v, err
		}
		inner, err := g.viewExpr(t.X, cfg, elemCfg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("inspect.Option(%s)", inner), nil

	case *ast.ArrayType:
		elem := types.ExprString(t.Elt)
		inner, err := g.viewExpr(t.Elt, elemCfg, "")
		if err != nil {
			return "", err
		}
		if t.Len == nil {
			return fmt.Sprintf("inspect.Slice(%s, %s)", inner, or(cfg, fmt.Sprintf("inspect.DefaultSeqConfig[%s]()", elem))), nil
		}
		if cfg != "" {
			return "", fmt.Errorf("arrays take elem_config, not config")
		}
		n := types.ExprString(t.Len)
		return fmt.Sprintf("inspect.Array(%s, func(a *[%s]%s) []%s { return a[:] })", inner, n, elem, elem), nil

	case *ast.MapType:
		key, val := types.ExprString(t.Key), types.ExprString(t.Value)
		if isEmptyStruct(t.Value) {
			inner, err := g.viewExpr(t.Key, elemCfg, "")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("inspect.HashSet(%s, %s)", inner, or(cfg, fmt.Sprintf("inspect.DefaultSeqConfig[%s]()", key))), nil
		}
		kv, err := g.viewExpr(t.Key, "", "")
		if err != nil {
			return "", err
		}
		vv, err := g.viewExpr(t.Value, elemCfg, "")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("inspect.Map(%s, %s, %s)", kv, vv,
			or(cfg, fmt.Sprintf("inspect.DefaultSeqConfig[inspect.Pair[%s, %s]]()", key, val))), nil

	case *ast.StructType:
		if isEmptyStruct(t) {
			return "inspect.Unit()", nil
		}

	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		if !ok {
			break
		}
		switch {
		case pkg.Name == "big" && t.Sel.Name == "Int":
			return fmt.Sprintf("inspect.BigInt(%s)", or(cfg, "inspect.Selectable")), nil
		case pkg.Name == "colors" && t.Sel.Name == "Color":
			return "inspect.Color()", nil
		}
		return fmt.Sprintf("%s.%sView()", pkg.Name, t.Sel.Name), nil
	}
	return "", fmt.Errorf("no view for type %s; add a wrapper", text)
}

// genericView handles pointers to the insertion-ordered containers.
func (g *generator) genericView(t ast.Expr, cfg, elemCfg string) (string, bool, error) {
	var base ast.Expr
	var args []ast.Expr
	switch t := t.(type) {
	case *ast.IndexExpr:
		base, args = t.X, []ast.Expr{t.Index}
	case *ast.IndexListExpr:
		base, args = t.X, t.Indices
	default:
		return "", false, nil
	}
	sel, ok := base.(*ast.SelectorExpr)
	if !ok {
		return "", false, nil
	}
	switch {
	case sel.Sel.Name == "OrderedMap" && len(args) == 2:
		key, val := types.ExprString(args[0]), types.ExprString(args[1])
		kv, err := g.viewExpr(args[0], "", "")
		if err != nil {
			return "", true, err
		}
		vv, err := g.viewExpr(args[1], elemCfg, "")
		if err != nil {
			return "", true, err
		}
		return fmt.Sprintf("inspect.IndexMap(%s, %s, %s)", kv, vv,
			or(cfg, fmt.Sprintf("inspect.DefaultSeqConfig[inspect.Pair[%s, %s]]()", key, val))), true, nil
	case sel.Sel.Name == "IndexSet" && len(args) == 1:
		elem := types.ExprString(args[0])
		inner, err := g.viewExpr(args[0], elemCfg, "")
		if err != nil {
			return "", true, err
		}
		return fmt.Sprintf("inspect.IndexSetOf(%s, %s)", inner, or(cfg, fmt.Sprintf("inspect.DefaultSeqConfig[%s]()", elem))), true, nil
	}
	return "", false, nil
}

// identView resolves builtin types and the types of the package.
func (g *generator) identView(name, cfg string) (string, error) {
	switch {
	case numericIdents[name]:
		return fmt.Sprintf("inspect.Number[%s](%s)", name, or(cfg, "inspect.DefaultDrag()")), nil
	case name == "string":
		return fmt.Sprintf("inspect.String[string](%s)", or(cfg, "inspect.SingleLine()")), nil
	case name == "bool":
		return "inspect.Bool()", nil
	}
	if _, ok := g.derived[name]; ok {
		return name + "View()", nil
	}
	spec, ok := g.types[name]
	if !ok {
		return "", fmt.Errorf("no view for type %s; add a wrapper", name)
	}
	under, ok := spec.Type.(*ast.Ident)
	if !ok {
		return "", fmt.Errorf("type %s is not derived; mark it with %sderive or add a wrapper", name, markerPrefix)
	}
	switch {
	case numericIdents[under.Name]:
		return fmt.Sprintf("inspect.Number[%s](%s)", name, or(cfg, "inspect.DefaultDrag()")), nil
	case under.Name == "string":
		return fmt.Sprintf("inspect.String[%s](%s)", name, or(cfg, "inspect.SingleLine()")), nil
	}
	return "", fmt.Errorf("no view for type %s (underlying %s); add a wrapper", name, under.Name)
}

func isEmptyStruct(t ast.Expr) bool {
	s, ok := t.(*ast.StructType)
	return ok && (s.Fields == nil || len(s.Fields.List) == 0)
}
