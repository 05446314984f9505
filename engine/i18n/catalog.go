// Package i18n holds translation tables keyed by locale and resolves
// inspector labels through them.
package i18n

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Catalog maps (locale, key) to text. It is safe for concurrent use; the
// current locale is shared by every reader of the catalog.
type Catalog struct {
	mu       sync.RWMutex
	tables   map[string]map[string]string
	locale   string
	fallback string

	log    *zap.Logger
	warnMu sync.Mutex
	warned map[string]struct{}
}

type Option func(*Catalog)

func WithLogger(l *zap.Logger) Option { return func(c *Catalog) { c.log = l } }

// New returns an empty catalog whose current and fallback locale are
// fallback.
func New(fallback string, opts ...Option) (*Catalog, error) {
	tag, err := normalize(fallback)
	if err != nil {
		return nil, err
	}
	c := &Catalog{
		tables:   make(map[string]map[string]string),
		locale:   tag,
		fallback: tag,
		log:      zap.NewNop(),
		warned:   make(map[string]struct{}),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// normalize canonicalizes locale. Well-formed tags with unknown subtags
// are kept as given.
func normalize(locale string) (string, error) {
	tag, err := language.Parse(locale)
	var unknown language.ValueError
	switch {
	case errors.As(err, &unknown):
		return strings.ToLower(locale), nil
	case err != nil:
		return "", fmt.Errorf("i18n: locale %q: %w", locale, err)
	}
	return tag.String(), nil
}

// base returns the base language of locale, or "" when locale is already
// a base language.
func base(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return ""
	}
	b, _ := tag.Base()
	if s := b.String(); s != locale {
		return s
	}
	return ""
}

// Add registers one translation.
func (c *Catalog) Add(locale, key, text string) error {
	tag, err := normalize(locale)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table(tag)[key] = text
	return nil
}

// table returns the table of locale, creating it. c.mu must be held for
// writing.
func (c *Catalog) table(locale string) map[string]string {
	t, ok := c.tables[locale]
	if !ok {
		t = make(map[string]string)
		c.tables[locale] = t
	}
	return t
}

// Lookup resolves key in locale, then in its base language.
func (c *Catalog) Lookup(locale, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lookup(locale, key)
}

func (c *Catalog) lookup(locale, key string) (string, bool) {
	if s, ok := c.tables[locale][key]; ok {
		return s, true
	}
	if b := base(locale); b != "" {
		s, ok := c.tables[b][key]
		return s, ok
	}
	return "", false
}

// SetLocale switches the current locale.
func (c *Catalog) SetLocale(locale string) error {
	tag, err := normalize(locale)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.locale = tag
	c.mu.Unlock()
	c.log.Debug("locale switched", zap.String("locale", tag))
	return nil
}

func (c *Catalog) Locale() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.locale
}

// Locales returns the locales that have a table, sorted.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.tables))
	for l := range c.tables {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// Translate resolves key in the current locale, then in the fallback
// locale. When both miss it returns "<locale>.<key>" and false.
func (c *Catalog) Translate(key string) (string, bool) {
	c.mu.RLock()
	locale, fallback := c.locale, c.fallback
	s, ok := c.lookup(locale, key)
	if !ok && fallback != locale {
		s, ok = c.lookup(fallback, key)
	}
	c.mu.RUnlock()
	if ok {
		return s, true
	}
	c.warnMissing(locale, key)
	return locale + "." + key, false
}

func (c *Catalog) warnMissing(locale, key string) {
	// Hint keys are optional.
	if strings.HasSuffix(key, ".__hint") {
		return
	}
	k := locale + "\x00" + key
	c.warnMu.Lock()
	_, seen := c.warned[k]
	c.warned[k] = struct{}{}
	c.warnMu.Unlock()
	if !seen {
		c.log.Warn("missing translation", zap.String("locale", locale), zap.String("key", key))
	}
}

// LoadYAML adds the translations read from r to locale. Nested mappings
// become dotted keys:
//
//	Color:
//	  Red: Czerwony
//
// registers "Color.Red".
func (c *Catalog) LoadYAML(locale string, r io.Reader) error {
	tag, err := normalize(locale)
	if err != nil {
		return err
	}
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return fmt.Errorf("i18n: decode %s: %w", tag, err)
	}
	flat := make(map[string]string)
	flatten("", doc, flat)

	c.mu.Lock()
	t := c.table(tag)
	for k, v := range flat {
		t[k] = v
	}
	c.mu.Unlock()
	c.log.Debug("locale loaded", zap.String("locale", tag), zap.Int("keys", len(flat)))
	return nil
}

func flatten(prefix string, node any, out map[string]string) {
	switch n := node.(type) {
	case map[string]any:
		for k, v := range n {
			if prefix != "" {
				k = prefix + "." + k
			}
			flatten(k, v, out)
		}
	case nil:
	default:
		out[prefix] = fmt.Sprint(n)
	}
}

// LoadFS loads every file of fsys matching pattern. The locale is the file
// name without its extension, e.g. "locales/pl.yaml". All files are tried;
// the errors are combined.
func (c *Catalog) LoadFS(fsys fs.FS, pattern string) error {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return fmt.Errorf("i18n: glob %q: %w", pattern, err)
	}
	if len(names) == 0 {
		return fmt.Errorf("i18n: no locale files match %q", pattern)
	}
	var errs error
	for _, name := range names {
		errs = multierr.Append(errs, c.loadFile(fsys, name))
	}
	return errs
}

func (c *Catalog) loadFile(fsys fs.FS, name string) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("i18n: open %s: %w", name, err)
	}
	defer f.Close()
	locale := strings.TrimSuffix(path.Base(name), path.Ext(name))
	if err := c.LoadYAML(locale, f); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
