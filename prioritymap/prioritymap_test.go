package prioritymap_test

import (
	"maps"
	"math"
	"slices"
	"testing"

	"github.com/amp-labs/amp-ranked/compare"
	"github.com/amp-labs/amp-ranked/prioritymap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item = prioritymap.Item[string, int]

func items(m *prioritymap.Map[string, int]) []item {
	return slices.Collect(m.Items().All())
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	t.Run("new is empty", func(t *testing.T) {
		t.Parallel()

		m := prioritymap.New[string, int]()
		assert.Zero(t, m.Len())
		assert.Empty(t, slices.Collect(m.Ascend()))
		assert.True(t, m.First().Empty())
		assert.True(t, m.Last().Empty())
		require.NoError(t, m.Check())
	})

	t.Run("count tallies keys", func(t *testing.T) {
		t.Parallel()

		m := prioritymap.Count[string, int]([]string{"a", "b", "a", "b", "b"})
		require.NoError(t, m.Check())
		assert.Equal(t, []item{{"a", 2}, {"b", 3}}, items(m))
	})

	t.Run("count seq", func(t *testing.T) {
		t.Parallel()

		m := prioritymap.CountSeq[string, int](slices.Values([]string{"x", "y", "x"}))
		assert.Equal(t, []item{{"y", 1}, {"x", 2}}, items(m))
	})

	t.Run("from map copies", func(t *testing.T) {
		t.Parallel()

		src := map[string]int{"one": 2, "two": 3}
		m := prioritymap.FromMap(src)
		src["one"] = 100

		assert.Equal(t, 2, m.GetOrElse("one", -1))
		assert.Equal(t, []string{"one", "two"}, slices.Collect(m.Ascend()))
	})

	t.Run("from mapping accepts a map", func(t *testing.T) {
		t.Parallel()

		orig := prioritymap.FromMap(map[string]int{"a": 3, "b": 1})
		copied := prioritymap.FromMapping[string, int](orig)
		copied.Set("c", 0)

		assert.Equal(t, 2, orig.Len())
		assert.Equal(t, 3, copied.Len())
	})

	t.Run("from items last wins", func(t *testing.T) {
		t.Parallel()

		seq := func(yield func(string, int) bool) {
			_ = yield("a", 1) && yield("b", 2) && yield("a", 5)
		}

		m := prioritymap.FromItems(seq)
		assert.Equal(t, []item{{"b", 2}, {"a", 5}}, items(m))
	})

	t.Run("from keys", func(t *testing.T) {
		t.Parallel()

		m := prioritymap.FromKeys([]string{"b", "a", "c"}, 7)
		assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(m.Ascend()))
		assert.Equal(t, 7, m.GetOrElse("c", 0))
	})

	t.Run("overrides apply after source", func(t *testing.T) {
		t.Parallel()

		m := prioritymap.Count([]string{"a", "a", "b"},
			prioritymap.WithOverrides(item{"a", 10}, item{"c", 1}, item{"c", 4}))

		require.NoError(t, m.Check())
		assert.Equal(t, []item{{"b", 1}, {"c", 4}, {"a", 10}}, items(m))
	})

	t.Run("key order breaks ties", func(t *testing.T) {
		t.Parallel()

		m := prioritymap.FromKeys([]string{"file10", "file2", "file1"}, 1,
			prioritymap.WithKeyOrder[string, int](compare.Natural))

		assert.Equal(t, []string{"file1", "file2", "file10"}, slices.Collect(m.Ascend()))
		require.NoError(t, m.Check())
	})
}

func TestMap_Lookups(t *testing.T) {
	t.Parallel()

	m := prioritymap.FromMap(map[string]int{"a": 1, "b": -2})

	value, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, value)

	_, ok = m.Get("zz")
	assert.False(t, ok)

	value, err := m.Value("b")
	require.NoError(t, err)
	assert.Equal(t, -2, value)

	_, err = m.Value("zz")
	require.ErrorIs(t, err, prioritymap.ErrNotFound)

	assert.Equal(t, 9, m.GetOrElse("zz", 9))
	assert.Equal(t, 1, m.Lookup("a").GetOrElse(0))
	assert.True(t, m.Lookup("zz").Empty())

	assert.True(t, m.Contains("a"))
	assert.False(t, m.Contains("zz"))
}

func TestMap_Set(t *testing.T) {
	t.Parallel()

	t.Run("insert and overwrite", func(t *testing.T) {
		t.Parallel()

		m := prioritymap.New[string, int]()
		m.Set("a", 5)
		m.Set("b", 1)
		m.Set("a", 0)

		require.NoError(t, m.Check())
		assert.Equal(t, []item{{"a", 0}, {"b", 1}}, items(m))
	})

	t.Run("same value keeps a single entry", func(t *testing.T) {
		t.Parallel()

		m := prioritymap.FromMap(map[string]int{"a": 2, "b": 2})
		m.Set("a", 2)

		require.NoError(t, m.Check())
		assert.Equal(t, 2, m.Len())
	})

	t.Run("zero and negative values are kept", func(t *testing.T) {
		t.Parallel()

		m := prioritymap.New[string, int]()
		m.Set("neg", -3)
		m.Set("zero", 0)

		assert.Equal(t, []string{"neg", "zero"}, slices.Collect(m.Ascend()))
	})
}

func TestMap_Delete(t *testing.T) {
	t.Parallel()

	m := prioritymap.FromMap(map[string]int{"a": 1, "b": 2})

	require.NoError(t, m.Delete("a"))
	require.NoError(t, m.Check())
	assert.False(t, m.Contains("a"))

	err := m.Delete("a")
	require.ErrorIs(t, err, prioritymap.ErrNotFound)
	require.NoError(t, m.Check())
	assert.Equal(t, 1, m.Len())
}

func TestMap_Iteration(t *testing.T) {
	t.Parallel()

	m := prioritymap.FromMap(map[string]int{"c": 3, "a": 1, "b": 2, "z": 2})

	asc := slices.Collect(m.Ascend())
	desc := slices.Collect(m.Descend())

	assert.Equal(t, []string{"a", "b", "z", "c"}, asc)
	slices.Reverse(desc)
	assert.Equal(t, asc, desc)

	all := maps.Collect(m.All())
	assert.Equal(t, map[string]int{"c": 3, "a": 1, "b": 2, "z": 2}, all)

	var backward []string
	for key := range m.Backward() {
		backward = append(backward, key)
	}

	assert.Equal(t, []string{"c", "z", "b", "a"}, backward)

	var firstTwo []string
	for key := range m.Ascend() {
		if len(firstTwo) == 2 {
			break
		}

		firstTwo = append(firstTwo, key)
	}

	assert.Equal(t, []string{"a", "b"}, firstTwo)
	assert.Equal(t, asc, slices.Collect(m.Ascend()), "iteration restarts")
}

func TestMap_FirstLast(t *testing.T) {
	t.Parallel()

	m := prioritymap.FromMap(map[string]int{"lo": -1, "hi": 9, "mid": 4})

	first, ok := m.First().Get()
	require.True(t, ok)
	assert.Equal(t, item{"lo", -1}, first)

	last, ok := m.Last().Get()
	require.True(t, ok)
	assert.Equal(t, item{"hi", 9}, last)
}

func TestMap_CloneAndClear(t *testing.T) {
	t.Parallel()

	m := prioritymap.FromMap(map[string]int{"a": 1, "b": 2})
	cloned := m.Clone()

	cloned.Set("a", 10)
	m.Set("c", 0)

	require.NoError(t, m.Check())
	require.NoError(t, cloned.Check())
	assert.Equal(t, []item{{"c", 0}, {"a", 1}, {"b", 2}}, items(m))
	assert.Equal(t, []item{{"b", 2}, {"a", 10}}, items(cloned))

	m.Clear()
	assert.Zero(t, m.Len())
	require.NoError(t, m.Check())
	assert.Equal(t, 2, cloned.Len())
}

func TestMap_String(t *testing.T) {
	t.Parallel()

	m := prioritymap.FromMap(map[string]int{"b": 3, "a": 2})
	assert.Equal(t, "PriorityMap{a: 2, b: 3}", m.String())
	assert.Equal(t, "PriorityMap{}", prioritymap.New[string, int]().String())
}

func TestMap_Bisect(t *testing.T) {
	t.Parallel()

	m := prioritymap.FromMap(map[string]int{"a": 1, "b": 2, "c": 2, "d": 2, "e": 5})

	assert.Equal(t, 1, m.BisectLeft(2))
	assert.Equal(t, 1, m.Bisect(2))
	assert.Equal(t, 4, m.BisectRight(2))
	assert.Equal(t, 4, m.BisectLeft(3))
	assert.Equal(t, 4, m.BisectRight(3))
	assert.Equal(t, 0, m.BisectRight(0))
	assert.Equal(t, 5, m.BisectLeft(6))
}

func TestMap_RankOf(t *testing.T) {
	t.Parallel()

	m := prioritymap.FromMap(map[string]int{"a": 3, "b": 1, "c": 2})

	for want, key := range []string{"b", "c", "a"} {
		got, err := m.RankOf(key)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := m.RankOf("zz")
	require.ErrorIs(t, err, prioritymap.ErrNotFound)
}

func TestMap_Prune(t *testing.T) {
	t.Parallel()

	t.Run("removes values at or below threshold", func(t *testing.T) {
		t.Parallel()

		m := prioritymap.FromMap(map[string]int{"a": -1, "b": 0, "c": 1, "d": 2, "e": 2, "f": 3})

		assert.Equal(t, 5, m.Prune(2))
		require.NoError(t, m.Check())
		assert.Equal(t, []item{{"f", 3}}, items(m))
	})

	t.Run("prune zero", func(t *testing.T) {
		t.Parallel()

		m := prioritymap.FromMap(map[string]int{"a": -1, "b": 0, "c": 1})

		assert.Equal(t, 2, m.PruneZero())
		assert.Equal(t, []item{{"c", 1}}, items(m))
	})

	t.Run("nothing to prune", func(t *testing.T) {
		t.Parallel()

		m := prioritymap.FromMap(map[string]int{"a": 4})

		assert.Zero(t, m.Prune(1))
		assert.Equal(t, 1, m.Len())
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		m := prioritymap.FromMap(map[string]int{"a": 1, "b": 5, "c": 3, "d": 7})
		m.Prune(3)
		once := m.Clone()
		assert.Zero(t, m.Prune(3))

		assert.True(t, m.Equal(once))
		assert.Zero(t, m.BisectRight(3))
	})
}

func TestScenarios(t *testing.T) {
	t.Parallel()

	t.Run("count then top one", func(t *testing.T) {
		t.Parallel()

		m := prioritymap.Count[string, int]([]string{"a", "b", "a", "b", "b"})

		assert.True(t, m.Equal(prioritymap.Plain[string, int]{"a": 2, "b": 3}))
		assert.Equal(t, []item{{"b", 3}}, m.MostCommon(1))
	})

	t.Run("prune and bisect right", func(t *testing.T) {
		t.Parallel()

		m := prioritymap.Count[string, int]([]string{"a", "b", "a", "b", "b"})

		assert.Equal(t, 1, m.BisectRight(2))

		m.Prune(2)
		assert.Equal(t, []item{{"b", 3}}, items(m))
	})

	t.Run("sum then difference", func(t *testing.T) {
		t.Parallel()

		x := prioritymap.FromMap(map[string]int{"x": 1})
		sum := x.Sum(prioritymap.Plain[string, int]{"x": 5, "y": 2})
		assert.True(t, sum.Equal(prioritymap.Plain[string, int]{"x": 6, "y": 2}))

		diff := sum.Difference(prioritymap.Plain[string, int]{"x": 5})
		assert.True(t, diff.Equal(prioritymap.Plain[string, int]{"x": 1, "y": 2}))
	})

	t.Run("positional range delete", func(t *testing.T) {
		t.Parallel()

		m := prioritymap.FromMap(map[string]int{"a": 1, "b": 2, "c": 3})

		require.NoError(t, m.Iloc().DeleteRange(0, 1))
		require.NoError(t, m.Check())
		assert.Equal(t, []item{{"b", 2}, {"c", 3}}, items(m))

		rank, err := m.RankOf("b")
		require.NoError(t, err)
		assert.Zero(t, rank)
	})
}

func TestFloatValues(t *testing.T) {
	t.Parallel()

	m := prioritymap.FromMap(map[string]float64{"pi": 3.14, "e": 2.72, "phi": 1.62})

	assert.Equal(t, []string{"phi", "e", "pi"}, slices.Collect(m.Ascend()))
	assert.Equal(t, 1, m.BisectRight(2))

	m.MergeSum(prioritymap.Plain[string, float64]{"phi": 2})
	assert.Equal(t, []string{"e", "pi", "phi"}, slices.Collect(m.Ascend()))
	require.NoError(t, m.Check())
}

func TestNaNKeys(t *testing.T) {
	t.Parallel()

	nan := math.NaN()
	msg := "invalid key: NaN"

	m := prioritymap.FromMap(map[float64]int{1.5: 1, 2.5: 2})

	assert.PanicsWithError(t, msg, func() { m.Set(nan, 1) })
	assert.PanicsWithError(t, msg, func() { m.SetDefault(nan, 1) })
	assert.PanicsWithError(t, msg, func() { m.MergeSum(prioritymap.Plain[float64, int]{nan: 3, 4.5: 4}) })
	assert.PanicsWithError(t, msg, func() { m.Update(prioritymap.Plain[float64, int]{4.5: 4, nan: 3}) })
	assert.PanicsWithError(t, msg, func() { _ = m.Max(prioritymap.Plain[float64, int]{nan: 3}) })

	assert.Equal(t, 2, m.Len(), "rejected before any change")
	assert.False(t, m.Contains(4.5))
	require.NoError(t, m.Check())

	assert.PanicsWithError(t, msg, func() { prioritymap.FromMap(map[float64]int{nan: 1}) })
	assert.PanicsWithError(t, msg, func() { prioritymap.Count[float64, int]([]float64{1, nan}) })

	m.Set(math.Inf(1), 3)
	require.NoError(t, m.Check())
	last, ok := m.Last().Get()
	require.True(t, ok)
	assert.Equal(t, math.Inf(1), last.Key)
}
