package inspect_test

import (
	"math/big"
	"slices"
	"testing"

	"github.com/hubastard/grove-inspector/engine/colors"
	"github.com/hubastard/grove-inspector/engine/inspect"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// checkCloneEq asserts that a view's Eq is reflexive and that Clone makes
// dst equal to src.
func checkCloneEq[T any](t *testing.T, name string, view inspect.View[T], dst, src T) {
	t.Helper()
	if !view.Eq(&src, &src) {
		t.Errorf("%s: Eq(src, src) is false", name)
	}
	if !view.Eq(&dst, &dst) {
		t.Errorf("%s: Eq(dst, dst) is false", name)
	}
	if view.Eq(&dst, &src) {
		t.Errorf("%s: fixture values are already equal", name)
	}
	view.Clone(&dst, &src)
	if !view.Eq(&dst, &src) {
		t.Errorf("%s: Eq after Clone is false", name)
	}
}

func ptr[T any](v T) *T { return &v }

func omap(kv ...any) *orderedmap.OrderedMap[string, int] {
	m := orderedmap.New[string, int]()
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i].(string), kv[i+1].(int))
	}
	return m
}

func TestCloneThenEq(t *testing.T) {
	intv := inspect.Number[int](inspect.DefaultDrag())
	strv := inspect.String[string](inspect.SingleLine())
	cfgInt := inspect.DefaultSeqConfig[int]()
	cfgPair := inspect.DefaultSeqConfig[inspect.Pair[string, int]]()

	checkCloneEq(t, "int", intv, 1, 2)
	checkCloneEq(t, "float32", inspect.Number[float32](inspect.DefaultDrag()), 1.5, -2)
	checkCloneEq(t, "bool", inspect.Bool(), false, true)
	checkCloneEq(t, "string", strv, "a", "b")
	checkCloneEq(t, "big.Int", inspect.BigInt(inspect.Selectable), *big.NewInt(1), *new(big.Int).Lsh(big.NewInt(1), 100))
	checkCloneEq(t, "color", inspect.Color(), colors.White, colors.Accent)
	checkCloneEq(t, "option none<-some", inspect.Option(intv), nil, ptr(3))
	checkCloneEq(t, "option some<-none", inspect.Option(intv), ptr(3), nil)
	checkCloneEq(t, "option some<-some", inspect.Option(intv), ptr(3), ptr(4))
	checkCloneEq(t, "slice", inspect.Slice(intv, cfgInt), []int{1, 2, 3}, []int{4})
	checkCloneEq(t, "array", inspect.Array(intv, func(a *[3]int) []int { return a[:] }), [3]int{1, 2, 3}, [3]int{3, 2, 1})
	checkCloneEq(t, "map", inspect.Map(strv, intv, cfgPair),
		map[string]int{"a": 1, "b": 2}, map[string]int{"b": 3, "c": 4})
	checkCloneEq(t, "hash set", inspect.HashSet(intv, cfgInt),
		map[int]struct{}{1: {}, 2: {}}, map[int]struct{}{2: {}, 3: {}})
	checkCloneEq(t, "index set", inspect.IndexSetOf(intv, cfgInt),
		inspect.NewIndexSet(1, 2), inspect.NewIndexSet(3, 2, 1))
	checkCloneEq(t, "index map", inspect.IndexMap(strv, intv, cfgPair),
		omap("a", 1, "b", 2), omap("c", 3, "b", 5))
	checkCloneEq(t, "pairs", inspect.Pairs(strv, intv, cfgPair),
		[]inspect.Pair[string, int]{{Key: "a", Value: 1}}, []inspect.Pair[string, int]{{Key: "b", Value: 2}, {Key: "a", Value: 3}})
	checkCloneEq(t, "enum across variants", colorView, Color(Red{}), Color(Custom{R: 9}))
	checkCloneEq(t, "enum same variant", colorView, Color(Custom{G: 1}), Color(Custom{B: 2}))
	checkCloneEq(t, "record", settingsView, Settings{X: 1}, Settings{X: 2})
}

func TestIndexMapCloneTakesOrder(t *testing.T) {
	view := inspect.IndexMap(inspect.String[string](inspect.SingleLine()), inspect.Number[int](inspect.DefaultDrag()),
		inspect.DefaultSeqConfig[inspect.Pair[string, int]]())
	dst, src := omap("a", 1, "b", 2, "c", 3), omap("c", 0, "a", 0)
	view.Clone(&dst, &src)
	var keys []string
	for p := dst.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	if !slices.Equal(keys, []string{"c", "a"}) {
		t.Errorf("keys = %v", keys)
	}
}

func TestOptionCloneDoesNotAlias(t *testing.T) {
	view := inspect.Option(inspect.Number[int](inspect.DefaultDrag()))
	var dst *int
	src := ptr(5)
	view.Clone(&dst, &src)
	if dst == src {
		t.Fatal("Clone aliased the source")
	}
	*src = 6
	if *dst != 5 {
		t.Errorf("*dst = %d", *dst)
	}
}

func TestRecordEqOverrides(t *testing.T) {
	type named struct{ Name string }
	caseless := func(a, b *string) bool { return len(*a) == len(*b) }
	view := inspect.Record(inspect.RecordOpts[named]{},
		inspect.Field("name", func(n *named) *string { return &n.Name }, inspect.String[string](inspect.SingleLine()),
			inspect.FieldOpts[named, string]{Eq: caseless}),
	)
	a, b := named{"abc"}, named{"xyz"}
	if !view.Eq(&a, &b) {
		t.Error("Eq override ignored")
	}
}
