package derive

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

const markerPrefix = "//inspect:"

// Directive names.
const (
	dirDerive  = "derive"
	dirEnum    = "enum"
	dirField   = "field"
	dirVariant = "variant"
)

// option is one key or key=value pair of a marker.
type option struct {
	key      string
	value    string
	hasValue bool
	pos      token.Pos
}

// marker is one //inspect: comment line.
type marker struct {
	directive string
	opts      []option
	pos       token.Pos
}

// keyKind tells how a marker key takes its value.
type keyKind uint8

const (
	keyFlag     keyKind = iota // no value
	keyText                    // free text, usually quoted
	keyExpr                    // Go expression
	keyFlagBool                // no value or a bool literal
	keyFlagText                // no value or free text
)

var typeKeys = map[string]keyKind{
	"rename_all": keyText,
	"prefix":     keyText,
	"i18n":       keyFlag,
	"imut":       keyFlag,
	"resetable":  keyText,
	"default":    keyExpr,
	"tuple":      keyFlag,
}

var fieldKeys = map[string]keyKind{
	"skip":             keyFlag,
	"rename":           keyText,
	"hint":             keyText,
	"imut":             keyFlag,
	"config":           keyExpr,
	"elem_config":      keyExpr,
	"resetable":        keyText,
	"map_pre":          keyExpr,
	"map_pre_ref":      keyExpr,
	"map_post":         keyExpr,
	"surrogate":        keyExpr,
	"on_change":        keyExpr,
	"on_change_struct": keyExpr,
	"eeq":              keyExpr,
	"eclone":           keyExpr,
	"start_collapsed":  keyFlagBool,
	"wrapper":          keyExpr,
	"i18n":             keyFlagText,
}

var variantKeys = map[string]keyKind{
	"rename":    keyText,
	"hint":      keyText,
	"skip":      keyFlag,
	"imut":      keyFlag,
	"tuple":     keyFlag,
	"resetable": keyExpr,
	"i18n":      keyFlagText,
}

// findMarkers returns the markers of the given directive in the comment
// groups.
func findMarkers(directive string, groups ...*ast.CommentGroup) ([]marker, error) {
	var out []marker
	var errs []error
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			if !strings.HasPrefix(c.Text, markerPrefix) {
				continue
			}
			rest := c.Text[len(markerPrefix):]
			name, args, _ := strings.Cut(rest, " ")
			if name != directive {
				continue
			}
			base := c.Slash + token.Pos(len(markerPrefix)+len(name)+1)
			opts, err := parseOptions(args, base)
			if err != nil {
				errs = append(errs, posError{pos: c.Slash, err: err})
				continue
			}
			out = append(out, marker{directive: name, opts: opts, pos: c.Slash})
		}
	}
	return out, multierr.Combine(errs...)
}

// posError ties an error to a source position until it is resolved
// against a file set.
type posError struct {
	pos token.Pos
	err error
}

func (e posError) Error() string { return e.err.Error() }
func (e posError) Unwrap() error { return e.err }

// parseOptions splits marker arguments into options. Values are either Go
// string literals or run up to the next space outside brackets and quotes.
func parseOptions(s string, base token.Pos) ([]option, error) {
	var out []option
	i := 0
	for {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			return out, nil
		}
		start := i
		for i < len(s) && s[i] != '=' && !isSpace(s[i]) {
			i++
		}
		opt := option{key: s[start:i], pos: base + token.Pos(start)}
		if i < len(s) && s[i] == '=' {
			i++
			opt.hasValue = true
			if i < len(s) && (s[i] == '"' || s[i] == '`') {
				q, err := strconv.QuotedPrefix(s[i:])
				if err != nil {
					return nil, fmt.Errorf("%s: malformed string: %w", opt.key, err)
				}
				opt.value, _ = strconv.Unquote(q)
				i += len(q)
			} else {
				v, n, err := scanValue(s[i:])
				if err != nil {
					return nil, fmt.Errorf("%s: %w", opt.key, err)
				}
				opt.value = v
				i += n
			}
			if opt.value == "" {
				return nil, fmt.Errorf("%s: empty value", opt.key)
			}
		}
		out = append(out, opt)
	}
}

// scanValue reads an unquoted value and returns it with its length.
func scanValue(s string) (string, int, error) {
	depth := 0
	i := 0
	for i < len(s) {
		c := s[i]
		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth < 0 {
				return "", 0, fmt.Errorf("unbalanced %q", c)
			}
		case '"', '`', '\'':
			q, err := strconv.QuotedPrefix(s[i:])
			if err != nil {
				return "", 0, fmt.Errorf("malformed literal: %w", err)
			}
			i += len(q)
			continue
		}
		if depth == 0 && isSpace(c) {
			break
		}
		i++
	}
	if depth != 0 {
		return "", 0, fmt.Errorf("unbalanced brackets in %q", s[:i])
	}
	return s[:i], i, nil
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

// optionSet is the validated options of one declaration.
type optionSet map[string]option

func (o optionSet) has(key string) bool { _, ok := o[key]; return ok }

func (o optionSet) get(key string) string { return o[key].value }

// checkOptions validates opts against keys and merges them into one set.
// Later markers override earlier ones.
func checkOptions(markers []marker, keys map[string]keyKind) (optionSet, []error) {
	set := optionSet{}
	var errs []error
	for _, m := range markers {
		for _, o := range m.opts {
			kind, ok := keys[o.key]
			if !ok {
				errs = append(errs, posError{pos: o.pos, err: fmt.Errorf("unknown key %q", o.key)})
				continue
			}
			if err := checkValue(o, kind); err != nil {
				errs = append(errs, posError{pos: o.pos, err: err})
				continue
			}
			set[o.key] = o
		}
	}
	return set, errs
}

func checkValue(o option, kind keyKind) error {
	switch kind {
	case keyFlag:
		if o.hasValue {
			return fmt.Errorf("%s takes no value", o.key)
		}
	case keyText:
		if !o.hasValue {
			return fmt.Errorf("%s needs a value", o.key)
		}
	case keyExpr:
		if !o.hasValue {
			return fmt.Errorf("%s needs a value", o.key)
		}
		if _, err := parser.ParseExpr(o.value); err != nil {
			return fmt.Errorf("%s: malformed expression %q: %w", o.key, o.value, err)
		}
	case keyFlagBool:
		if o.hasValue {
			if _, err := strconv.ParseBool(o.value); err != nil {
				return fmt.Errorf("%s: want true or false, got %q", o.key, o.value)
			}
		}
	}
	return nil
}
