package inspect

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hubastard/grove-inspector/engine/ui"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// sortedKeys returns the keys of m ordered by their text.
func sortedKeys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortByText(keys)
	return keys
}

func sortByText[K any](keys []K) {
	slices.SortFunc(keys, func(a, b K) int {
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	})
}

// elemSalt is the row id salt of a hash set element. The prefix keeps
// element rows apart from the add and candidate rows.
func elemSalt(e any) string { return "elem:" + fmt.Sprint(e) }

// ===== Hash sets =====

type hashSetView[E comparable] struct {
	inner View[E]
	cfg   SeqConfig[E]
}

// HashSet is the view of map[E]struct{}. Elements cannot be edited in place
// or reordered; they can be removed and added per cfg.
func HashSet[E comparable](inner View[E], cfg SeqConfig[E]) View[map[E]struct{}] {
	cfg.MutableValue = false
	cfg.Reorder = false
	return hashSetView[E]{inner: inner, cfg: cfg}
}

func (hashSetView[E]) Simple(bool) bool                  { return false }
func (hashSetView[E]) HasPrimitive(*map[E]struct{}) bool { return false }

func (h hashSetView[E]) HasChildren(v *map[E]struct{}, mutable bool) bool {
	return len(*v) > 0 || (mutable && h.cfg.canAdd(len(*v)))
}

func (h hashSetView[E]) StartCollapsed(v *map[E]struct{}) bool { return len(*v) > collapseLen }

func (hashSetView[E]) ShowPrimitive(*Ctx, *map[E]struct{}) ui.Response { return ui.Response{} }

func (h hashSetView[E]) ShowChildren(c *Ctx, v *map[E]struct{}, _ *map[E]struct{}) ui.Response {
	keys := sortedKeys(*v)
	a := seqAccess[E]{
		n:      len(keys),
		elem:   func(i int) *E { return &keys[i] },
		salt:   func(i int) any { return elemSalt(keys[i]) },
		remove: func(i int) { delete(*v, keys[i]) },
	}
	resp := showSeq(c, h.inner, h.cfg, a)
	if c.Mutable && h.cfg.canAdd(len(*v)) {
		push := func(e E) bool {
			if _, dup := (*v)[e]; dup {
				return false
			}
			if *v == nil {
				*v = make(map[E]struct{})
			}
			(*v)[e] = struct{}{}
			return true
		}
		row := func(cand *E, add func() ui.Response) ui.Response {
			return ShowRow(c, h.inner, cand, RowOpts[E]{ID: "candidate", Controls: add})
		}
		resp = resp.Union(staging(c, h.cfg.Expandable, h.inner.Clone, push, row))
	}
	return resp
}

// Clone drains dst and rebuilds it from src.
func (hashSetView[E]) Clone(dst, src *map[E]struct{}) {
	if *src == nil {
		*dst = nil
		return
	}
	if *dst == nil {
		*dst = make(map[E]struct{}, len(*src))
	}
	clear(*dst)
	for e := range *src {
		(*dst)[e] = struct{}{}
	}
}

func (hashSetView[E]) Eq(a, b *map[E]struct{}) bool {
	if len(*a) != len(*b) {
		return false
	}
	for e := range *a {
		if _, ok := (*b)[e]; !ok {
			return false
		}
	}
	return true
}

// ===== Insertion-ordered sets =====

// IndexSet is a set that remembers insertion order.
type IndexSet[E comparable] struct {
	m *orderedmap.OrderedMap[E, struct{}]
}

func NewIndexSet[E comparable](elems ...E) *IndexSet[E] {
	s := &IndexSet[E]{m: orderedmap.New[E, struct{}]()}
	for _, e := range elems {
		s.Insert(e)
	}
	return s
}

func (s *IndexSet[E]) lazy() {
	if s.m == nil {
		s.m = orderedmap.New[E, struct{}]()
	}
}

// Insert adds e at the end and reports whether it was not present.
func (s *IndexSet[E]) Insert(e E) bool {
	s.lazy()
	_, present := s.m.Set(e, struct{}{})
	return !present
}

func (s *IndexSet[E]) Remove(e E) bool {
	if s == nil || s.m == nil {
		return false
	}
	_, present := s.m.Delete(e)
	return present
}

func (s *IndexSet[E]) Contains(e E) bool {
	if s == nil || s.m == nil {
		return false
	}
	_, ok := s.m.Get(e)
	return ok
}

func (s *IndexSet[E]) Len() int {
	if s == nil || s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Values returns the elements in order.
func (s *IndexSet[E]) Values() []E {
	out := make([]E, 0, s.Len())
	if s.Len() == 0 {
		return out
	}
	for p := s.m.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Replace swaps old for e in place. It refuses when e is already present.
func (s *IndexSet[E]) Replace(old, e E) bool {
	if old == e || !s.Contains(old) || s.Contains(e) {
		return false
	}
	s.m.Set(e, struct{}{})
	if err := s.m.MoveAfter(e, old); err != nil {
		return false
	}
	s.m.Delete(old)
	return true
}

// MoveBefore moves e right in front of mark.
func (s *IndexSet[E]) MoveBefore(e, mark E) bool {
	return s.Len() > 0 && s.m.MoveBefore(e, mark) == nil
}

type indexSetView[E comparable] struct {
	inner View[E]
	cfg   SeqConfig[E]
}

// IndexSetOf is the view of an IndexSet. Elements can be edited as long as
// they stay unique, and reordered.
func IndexSetOf[E comparable](inner View[E], cfg SeqConfig[E]) View[*IndexSet[E]] {
	return indexSetView[E]{inner: inner, cfg: cfg}
}

func (indexSetView[E]) Simple(bool) bool                { return false }
func (indexSetView[E]) HasPrimitive(**IndexSet[E]) bool { return false }

func (x indexSetView[E]) HasChildren(v **IndexSet[E], mutable bool) bool {
	return (*v).Len() > 0 || (mutable && x.cfg.canAdd((*v).Len()))
}

func (x indexSetView[E]) StartCollapsed(v **IndexSet[E]) bool { return (*v).Len() > collapseLen }

func (indexSetView[E]) ShowPrimitive(*Ctx, **IndexSet[E]) ui.Response { return ui.Response{} }

func (x indexSetView[E]) ShowChildren(c *Ctx, v **IndexSet[E], reset **IndexSet[E]) ui.Response {
	if *v == nil {
		if !c.Mutable {
			return ui.Response{}
		}
		*v = NewIndexSet[E]()
	}
	set := *v
	vals := set.Values()
	copies := slices.Clone(vals)
	var replace [2]E
	replacing := false
	a := seqAccess[E]{
		n:      len(vals),
		elem:   func(i int) *E { return &copies[i] },
		remove: func(i int) { set.Remove(vals[i]) },
		swap:   func(i, j int) { set.MoveBefore(vals[j], vals[i]) },
		commit: func(i int, e *E) {
			if *e != vals[i] && !replacing {
				replace, replacing = [2]E{vals[i], *e}, true
			}
		},
	}
	if reset != nil && *reset != nil {
		rv := (*reset).Values()
		a.reset = func(i int) *E {
			if i < len(rv) {
				return &rv[i]
			}
			return nil
		}
	}
	resp := showSeq(c, x.inner, x.cfg, a)
	if replacing && !set.Replace(replace[0], replace[1]) {
		resp.Changed = false
	}
	if c.Mutable && x.cfg.canAdd(set.Len()) {
		row := func(cand *E, add func() ui.Response) ui.Response {
			return ShowRow(c, x.inner, cand, RowOpts[E]{ID: "candidate", Controls: add})
		}
		resp = resp.Union(staging(c, x.cfg.Expandable, x.inner.Clone, set.Insert, row))
	}
	return resp
}

func (indexSetView[E]) Clone(dst, src **IndexSet[E]) {
	if *src == nil {
		*dst = nil
		return
	}
	out := NewIndexSet((*src).Values()...)
	*dst = out
}

func (indexSetView[E]) Eq(a, b **IndexSet[E]) bool {
	if (*a).Len() != (*b).Len() {
		return false
	}
	for _, e := range (*a).Values() {
		if !(*b).Contains(e) {
			return false
		}
	}
	return true
}
