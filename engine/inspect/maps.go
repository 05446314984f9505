package inspect

import (
	"fmt"
	"slices"

	"github.com/hubastard/grove-inspector/engine/ui"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Pair is one entry of a map. Slices of pairs can be edited as maps with
// Pairs.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// keyedAccess is how showKeyed reaches into a map-like container.
type keyedAccess[K comparable, V any] struct {
	keys  []K
	get   func(k K) V
	set   func(k K, v V)
	del   func(k K)
	has   func(k K) bool
	rekey func(old, k K)
	push  func(k K, v V)
	swap  func(i, j int) // nil when the container has no order
	reset func(k K) *V   // nil without reset source
}

// showKeyed draws one row per entry: the key primitive in the label cell
// and the value in the value cell. Re-keying is deferred like removal and
// refused when the new key is taken.
func showKeyed[K comparable, V any](c *Ctx, key View[K], val View[V], cfg SeqConfig[Pair[K, V]], a keyedAccess[K, V]) ui.Response {
	u := c.Ui
	vals := make([]V, len(a.keys))
	for i, k := range a.keys {
		vals[i] = a.get(k)
	}
	var rekey [2]K
	rekeying := false
	kc := c
	if !cfg.MutableKey {
		kc = c.Imut()
	}
	acc := seqAccess[V]{
		n:    len(a.keys),
		elem: func(i int) *V { return &vals[i] },
		label: func(i int) ui.Response {
			k := a.keys[i]
			if !key.HasPrimitive(&k) {
				return u.Label(ui.RichText(fmt.Sprint(k)))
			}
			u.PushID("key")
			r := key.ShowPrimitive(kc, &k)
			u.PopID()
			if r.Changed && k != a.keys[i] && !rekeying {
				rekey, rekeying = [2]K{a.keys[i], k}, true
			}
			return r
		},
		remove: func(i int) { a.del(a.keys[i]) },
		swap:   a.swap,
	}
	if c.Mutable && cfg.MutableValue {
		acc.commit = func(i int, v *V) { a.set(a.keys[i], *v) }
	}
	if a.reset != nil {
		acc.reset = func(i int) *V { return a.reset(a.keys[i]) }
	}
	seqCfg := SeqConfig[V]{Shrinkable: cfg.Shrinkable, MutableValue: cfg.MutableValue, Reorder: cfg.Reorder}
	resp := showSeq(c, val, seqCfg, acc)
	if rekeying {
		if a.has(rekey[0]) && !a.has(rekey[1]) {
			a.rekey(rekey[0], rekey[1])
		} else {
			resp.Changed = false
		}
	}

	if c.Mutable && cfg.canAdd(len(a.keys)) {
		push := func(p Pair[K, V]) bool {
			if a.has(p.Key) {
				return false
			}
			a.push(p.Key, p.Value)
			return true
		}
		clone := func(dst, src *Pair[K, V]) {
			key.Clone(&dst.Key, &src.Key)
			val.Clone(&dst.Value, &src.Value)
		}
		row := func(cand *Pair[K, V], add func() ui.Response) ui.Response {
			return ShowRow(c, val, &cand.Value, RowOpts[V]{
				ID: "candidate",
				LabelCell: func() ui.Response {
					u.PushID("key")
					defer u.PopID()
					return key.ShowPrimitive(c, &cand.Key)
				},
				Controls: add,
			})
		}
		resp = resp.Union(staging(c, cfg.Expandable, clone, push, row))
	}
	return resp
}

// mapBase carries the parts shared by every map view.
type mapBase[K comparable, V any] struct {
	key View[K]
	val View[V]
	cfg SeqConfig[Pair[K, V]]
}

func (m mapBase[K, V]) canShow(n int, mutable bool) bool {
	return n > 0 || (mutable && m.cfg.canAdd(n))
}

// ===== Hash maps =====

type mapView[K comparable, V any] struct{ mapBase[K, V] }

// Map is the view of map[K]V. Rows start sorted by key text and keep their
// position while shown, so a renamed key stays on its row. Keys added later
// go last.
func Map[K comparable, V any](key View[K], val View[V], cfg SeqConfig[Pair[K, V]]) View[map[K]V] {
	cfg.Reorder = false
	return mapView[K, V]{mapBase[K, V]{key: key, val: val, cfg: cfg}}
}

func (mapView[K, V]) Simple(bool) bool           { return false }
func (mapView[K, V]) HasPrimitive(*map[K]V) bool { return false }

func (m mapView[K, V]) HasChildren(v *map[K]V, mutable bool) bool { return m.canShow(len(*v), mutable) }
func (m mapView[K, V]) StartCollapsed(v *map[K]V) bool            { return len(*v) > collapseLen }

func (mapView[K, V]) ShowPrimitive(*Ctx, *map[K]V) ui.Response { return ui.Response{} }

func (m mapView[K, V]) ShowChildren(c *Ctx, v *map[K]V, reset *map[K]V) ui.Response {
	mem, orderID := c.Ui.Memory(), c.Ui.ID().With("order")
	keys := rowOrder(mem, orderID, *v)
	a := keyedAccess[K, V]{
		keys: keys,
		get:  func(k K) V { return (*v)[k] },
		set:  func(k K, x V) { (*v)[k] = x },
		del:  func(k K) { delete(*v, k) },
		has: func(k K) bool {
			_, ok := (*v)[k]
			return ok
		},
		rekey: func(old, k K) {
			(*v)[k] = (*v)[old]
			delete(*v, old)
			if i := slices.Index(keys, old); i >= 0 {
				keys[i] = k
				mem.Set(orderID, keys)
			}
		},
		push: func(k K, x V) {
			if *v == nil {
				*v = make(map[K]V)
			}
			(*v)[k] = x
		},
	}
	if reset != nil {
		a.reset = func(k K) *V {
			if x, ok := (*reset)[k]; ok {
				return &x
			}
			return nil
		}
	}
	return showKeyed(c, m.key, m.val, m.cfg, a)
}

// rowOrder returns the keys of m in the row order remembered under id:
// keys still present keep their place and unseen keys follow sorted by text.
func rowOrder[K comparable, V any](mem *ui.Memory, id ui.ID, m map[K]V) []K {
	prev, _ := ui.Load[[]K](mem, id)
	keys := make([]K, 0, len(m))
	placed := make(map[K]struct{}, len(m))
	for _, k := range prev {
		if _, ok := m[k]; !ok {
			continue
		}
		if _, dup := placed[k]; !dup {
			placed[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	var fresh []K
	for k := range m {
		if _, ok := placed[k]; !ok {
			fresh = append(fresh, k)
		}
	}
	sortByText(fresh)
	keys = append(keys, fresh...)
	mem.Set(id, keys)
	return keys
}

// Clone inserts keys only in src, removes keys only in dst and clones the
// values of keys in both.
func (m mapView[K, V]) Clone(dst, src *map[K]V) {
	if *src == nil {
		*dst = nil
		return
	}
	if *dst == nil {
		*dst = make(map[K]V, len(*src))
	}
	for k := range *dst {
		if _, ok := (*src)[k]; !ok {
			delete(*dst, k)
		}
	}
	for k, sv := range *src {
		dv := (*dst)[k]
		m.val.Clone(&dv, &sv)
		(*dst)[k] = dv
	}
}

func (m mapView[K, V]) Eq(a, b *map[K]V) bool {
	if len(*a) != len(*b) {
		return false
	}
	for k, av := range *a {
		bv, ok := (*b)[k]
		if !ok || !m.val.Eq(&av, &bv) {
			return false
		}
	}
	return true
}

// ===== Insertion-ordered maps =====

type indexMapView[K comparable, V any] struct{ mapBase[K, V] }

// IndexMap is the view of an insertion-ordered map. Rows keep the map's
// order and can be reordered.
func IndexMap[K comparable, V any](key View[K], val View[V], cfg SeqConfig[Pair[K, V]]) View[*orderedmap.OrderedMap[K, V]] {
	return indexMapView[K, V]{mapBase[K, V]{key: key, val: val, cfg: cfg}}
}

func omapLen[K comparable, V any](m *orderedmap.OrderedMap[K, V]) int {
	if m == nil {
		return 0
	}
	return m.Len()
}

func omapKeys[K comparable, V any](m *orderedmap.OrderedMap[K, V]) []K {
	keys := make([]K, 0, omapLen(m))
	if m == nil {
		return keys
	}
	for p := m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

func (indexMapView[K, V]) Simple(bool) bool                                { return false }
func (indexMapView[K, V]) HasPrimitive(**orderedmap.OrderedMap[K, V]) bool { return false }

func (m indexMapView[K, V]) HasChildren(v **orderedmap.OrderedMap[K, V], mutable bool) bool {
	return m.canShow(omapLen(*v), mutable)
}

func (m indexMapView[K, V]) StartCollapsed(v **orderedmap.OrderedMap[K, V]) bool {
	return omapLen(*v) > collapseLen
}

func (indexMapView[K, V]) ShowPrimitive(*Ctx, **orderedmap.OrderedMap[K, V]) ui.Response {
	return ui.Response{}
}

func (m indexMapView[K, V]) ShowChildren(c *Ctx, v **orderedmap.OrderedMap[K, V], reset **orderedmap.OrderedMap[K, V]) ui.Response {
	if *v == nil {
		if !c.Mutable {
			return ui.Response{}
		}
		*v = orderedmap.New[K, V]()
	}
	om := *v
	keys := omapKeys(om)
	a := keyedAccess[K, V]{
		keys: keys,
		get: func(k K) V {
			x, _ := om.Get(k)
			return x
		},
		set: func(k K, x V) { om.Set(k, x) },
		del: func(k K) { om.Delete(k) },
		has: func(k K) bool {
			_, ok := om.Get(k)
			return ok
		},
		rekey: func(old, k K) {
			x, _ := om.Get(old)
			om.Set(k, x)
			_ = om.MoveAfter(k, old)
			om.Delete(old)
		},
		push: func(k K, x V) { om.Set(k, x) },
		swap: func(i, j int) { _ = om.MoveBefore(keys[j], keys[i]) },
	}
	if reset != nil && *reset != nil {
		r := *reset
		a.reset = func(k K) *V {
			if x, ok := r.Get(k); ok {
				return &x
			}
			return nil
		}
	}
	return showKeyed(c, m.key, m.val, m.cfg, a)
}

// Clone applies the Map rules and then takes over the order of src.
func (m indexMapView[K, V]) Clone(dst, src **orderedmap.OrderedMap[K, V]) {
	if *src == nil {
		*dst = nil
		return
	}
	if *dst == nil || *dst == *src {
		*dst = orderedmap.New[K, V]()
	}
	d, s := *dst, *src
	for _, k := range omapKeys(d) {
		if _, ok := s.Get(k); !ok {
			d.Delete(k)
		}
	}
	for p := s.Oldest(); p != nil; p = p.Next() {
		dv, _ := d.Get(p.Key)
		sv := p.Value
		m.val.Clone(&dv, &sv)
		d.Set(p.Key, dv)
		_ = d.MoveToBack(p.Key)
	}
}

func (m indexMapView[K, V]) Eq(a, b **orderedmap.OrderedMap[K, V]) bool {
	if omapLen(*a) != omapLen(*b) {
		return false
	}
	if omapLen(*a) == 0 {
		return true
	}
	for p := (*a).Oldest(); p != nil; p = p.Next() {
		bv, ok := (*b).Get(p.Key)
		if !ok || !m.val.Eq(&p.Value, &bv) {
			return false
		}
	}
	return true
}

// ===== Slices of pairs =====

type pairsView[K comparable, V any] struct{ mapBase[K, V] }

// Pairs edits a []Pair[K, V] as an ordered map with unique keys.
func Pairs[K comparable, V any](key View[K], val View[V], cfg SeqConfig[Pair[K, V]]) View[[]Pair[K, V]] {
	return pairsView[K, V]{mapBase[K, V]{key: key, val: val, cfg: cfg}}
}

func (pairsView[K, V]) Simple(bool) bool                { return false }
func (pairsView[K, V]) HasPrimitive(*[]Pair[K, V]) bool { return false }

func (p pairsView[K, V]) HasChildren(v *[]Pair[K, V], mutable bool) bool {
	return p.canShow(len(*v), mutable)
}

func (p pairsView[K, V]) StartCollapsed(v *[]Pair[K, V]) bool { return len(*v) > collapseLen }

func (pairsView[K, V]) ShowPrimitive(*Ctx, *[]Pair[K, V]) ui.Response { return ui.Response{} }

func (p pairsView[K, V]) ShowChildren(c *Ctx, v *[]Pair[K, V], reset *[]Pair[K, V]) ui.Response {
	index := func(s []Pair[K, V], k K) int {
		return slices.IndexFunc(s, func(e Pair[K, V]) bool { return e.Key == k })
	}
	keys := make([]K, len(*v))
	for i, e := range *v {
		keys[i] = e.Key
	}
	a := keyedAccess[K, V]{
		keys: keys,
		get:  func(k K) V { return (*v)[index(*v, k)].Value },
		set:  func(k K, x V) { (*v)[index(*v, k)].Value = x },
		del: func(k K) {
			i := index(*v, k)
			*v = slices.Delete(*v, i, i+1)
		},
		has:   func(k K) bool { return index(*v, k) >= 0 },
		rekey: func(old, k K) { (*v)[index(*v, old)].Key = k },
		push:  func(k K, x V) { *v = append(*v, Pair[K, V]{Key: k, Value: x}) },
		swap:  func(i, j int) { (*v)[i], (*v)[j] = (*v)[j], (*v)[i] },
	}
	if reset != nil {
		a.reset = func(k K) *V {
			if i := index(*reset, k); i >= 0 {
				return &(*reset)[i].Value
			}
			return nil
		}
	}
	return showKeyed(c, p.key, p.val, p.cfg, a)
}

func (p pairsView[K, V]) Clone(dst, src *[]Pair[K, V]) {
	if *src == nil {
		*dst = nil
		return
	}
	out := make([]Pair[K, V], len(*src))
	for i, e := range *src {
		out[i].Key = e.Key
		if j := slices.IndexFunc(*dst, func(d Pair[K, V]) bool { return d.Key == e.Key }); j >= 0 {
			out[i].Value = (*dst)[j].Value
		}
		p.val.Clone(&out[i].Value, &e.Value)
	}
	*dst = out
}

func (p pairsView[K, V]) Eq(a, b *[]Pair[K, V]) bool {
	if len(*a) != len(*b) {
		return false
	}
	for i := range *a {
		x, y := &(*a)[i], &(*b)[i]
		if x.Key != y.Key || !p.val.Eq(&x.Value, &y.Value) {
			return false
		}
	}
	return true
}
