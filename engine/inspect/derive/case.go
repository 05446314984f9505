package derive

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
	titleCaser = cases.Title(language.Und)
)

// caseStyles are the accepted rename_all values.
var caseStyles = map[string]func(words []string) string{
	"lower": func(w []string) string { return lowerCaser.String(strings.Join(w, " ")) },
	"UPPER": func(w []string) string { return upperCaser.String(strings.Join(w, " ")) },
	"snake_case": func(w []string) string {
		return lowerCaser.String(strings.Join(w, "_"))
	},
	"SCREAMING_SNAKE_CASE": func(w []string) string {
		return upperCaser.String(strings.Join(w, "_"))
	},
	"kebab-case": func(w []string) string { return lowerCaser.String(strings.Join(w, "-")) },
	"camelCase": func(w []string) string {
		return lowerCaser.String(first(w)) + titled(rest(w), "")
	},
	"PascalCase": func(w []string) string { return titled(w, "") },
	"Title Case": func(w []string) string { return titled(w, " ") },
	"Sentence case": func(w []string) string {
		return strings.TrimSpace(titled([]string{first(w)}, "") + " " + lowerCaser.String(strings.Join(rest(w), " ")))
	},
}

func first(w []string) string {
	if len(w) == 0 {
		return ""
	}
	return w[0]
}

func rest(w []string) []string {
	if len(w) < 2 {
		return nil
	}
	return w[1:]
}

func titled(words []string, sep string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = titleCaser.String(w)
	}
	return strings.Join(out, sep)
}

// convertCase renders a Go identifier in style. ok is false for unknown
// styles.
func convertCase(style, ident string) (string, bool) {
	fn, ok := caseStyles[style]
	if !ok {
		return "", false
	}
	return fn(splitWords(ident)), true
}

// splitWords breaks an identifier at underscores and case changes,
// keeping acronyms together: "HTTPServer_port" is HTTP, Server, port.
func splitWords(s string) []string {
	var words []string
	rs := []rune(s)
	start := 0
	flush := func(end int) {
		if end > start {
			words = append(words, string(rs[start:end]))
		}
		start = end
	}
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush(i)
			start = i + 1
		case i > start && unicode.IsUpper(r):
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush(i)
			}
		}
	}
	flush(len(rs))
	return words
}
