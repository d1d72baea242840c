package prioritymap

import (
	"fmt"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sized builds a map of n keys k0..k(n-1) with value i*10.
func sized(t *testing.T, n int) *Map[string, int] {
	t.Helper()

	m := New(WithLogger[string, int](slogt.New(t)))
	for i := range n {
		m.Set(fmt.Sprintf("k%d", i), i*10)
	}

	return m
}

func strategyCount(op, strategy string) float64 {
	return testutil.ToFloat64(mergeStrategy.WithLabelValues(op, strategy))
}

func TestMerge_Semantics(t *testing.T) {
	t.Parallel()

	self := Plain[string, int]{"both": 5, "mine": 7}
	other := Plain[string, int]{"both": 3, "theirs": 4}

	tests := []struct {
		name  string
		apply func(m *Map[string, int])
		want  Plain[string, int]
	}{
		{
			name:  "sum",
			apply: func(m *Map[string, int]) { m.MergeSum(other) },
			want:  Plain[string, int]{"both": 8, "mine": 7, "theirs": 4},
		},
		{
			name:  "difference",
			apply: func(m *Map[string, int]) { m.MergeDifference(other) },
			want:  Plain[string, int]{"both": 2, "mine": 7},
		},
		{
			name:  "max",
			apply: func(m *Map[string, int]) { m.MergeMax(other) },
			want:  Plain[string, int]{"both": 5, "mine": 7, "theirs": 4},
		},
		{
			name:  "min",
			apply: func(m *Map[string, int]) { m.MergeMin(other) },
			want:  Plain[string, int]{"both": 3, "mine": 7},
		},
		{
			name:  "update",
			apply: func(m *Map[string, int]) { m.Update(other) },
			want:  Plain[string, int]{"both": 3, "mine": 7, "theirs": 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := FromMapping[string, int](self)
			tt.apply(m)

			require.NoError(t, m.Check())
			assert.True(t, m.Equal(tt.want), "got %s", m)
		})
	}
}

func TestMerge_CopyVariants(t *testing.T) {
	t.Parallel()

	m := FromMap(map[string]int{"both": 5, "mine": 7})
	other := Plain[string, int]{"both": 3, "theirs": 4}

	results := map[string]*Map[string, int]{
		"sum":        m.Sum(other),
		"difference": m.Difference(other),
		"max":        m.Max(other),
		"min":        m.Min(other),
	}

	want := map[string]Plain[string, int]{
		"sum":        {"both": 8, "mine": 7, "theirs": 4},
		"difference": {"both": 2, "mine": 7},
		"max":        {"both": 5, "mine": 7, "theirs": 4},
		"min":        {"both": 3, "mine": 7},
	}

	for name, got := range results {
		require.NoError(t, got.Check(), name)
		assert.True(t, got.Equal(want[name]), "%s: got %s", name, got)
	}

	assert.True(t, m.Equal(Plain[string, int]{"both": 5, "mine": 7}), "operand untouched")
}

func TestMerge_EmptySelf(t *testing.T) {
	t.Parallel()

	other := Plain[string, int]{"a": 1, "b": 2}

	sum := New[string, int]()
	sum.MergeSum(other)
	require.NoError(t, sum.Check())
	assert.True(t, sum.Equal(other))

	maxed := New[string, int]()
	maxed.MergeMax(other)
	assert.True(t, maxed.Equal(other))

	diff := New[string, int]()
	diff.MergeDifference(other)
	assert.Zero(t, diff.Len())

	minned := New[string, int]()
	minned.MergeMin(other)
	assert.Zero(t, minned.Len())
	require.NoError(t, minned.Check())
}

func TestMerge_Strategies(t *testing.T) { //nolint:paralleltest
	tests := []struct {
		name     string
		self     int
		other    Plain[string, int]
		strategy string
	}{
		{"empty self loads", 0, Plain[string, int]{"x": 1}, strategyLoad},
		{"large operand rebuilds", 6, Plain[string, int]{"k0": 1, "k1": 1, "new": 1}, strategyRebuild},
		{"small operand patches", 30, Plain[string, int]{"k0": 1, "k1": 1, "new": 1}, strategyIncremental},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sized(t, tt.self)
			before := strategyCount("sum", tt.strategy)

			m.MergeSum(tt.other)

			require.NoError(t, m.Check())
			assert.GreaterOrEqual(t, strategyCount("sum", tt.strategy), before+1)
			assert.Equal(t, 1, m.GetOrElse("new", 1))

			if tt.self > 0 {
				assert.Equal(t, 1, m.GetOrElse("k0", 0))
				assert.Equal(t, 11, m.GetOrElse("k1", 0))
			}
		})
	}
}

func TestMerge_BothPathsAgree(t *testing.T) {
	t.Parallel()

	ops := map[string]func(m *Map[string, int], other Mapping[string, int]){
		"sum":        (*Map[string, int]).MergeSum,
		"difference": (*Map[string, int]).MergeDifference,
		"max":        (*Map[string, int]).MergeMax,
		"min":        (*Map[string, int]).MergeMin,
		"update":     (*Map[string, int]).Update,
	}

	// Three keys against forty takes the incremental path for the arithmetic
	// merges; against four they take the rebuild path.
	other := Plain[string, int]{"k1": 100, "k3": -100, "fresh": 55}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			for _, n := range []int{4, 40, 400} {
				m := sized(t, n)
				op(m, other)

				expected := sized(t, n)
				for key, value := range other.All() {
					mine, ok := expected.mapping[key]

					switch {
					case name == "update":
						expected.mapping[key] = value
					case ok && name == "sum":
						expected.mapping[key] = mine + value
					case ok && name == "difference":
						expected.mapping[key] = mine - value
					case ok && name == "max":
						expected.mapping[key] = max(mine, value)
					case ok && name == "min":
						expected.mapping[key] = min(mine, value)
					case !ok && (name == "sum" || name == "max"):
						expected.mapping[key] = value
					}
				}

				require.NoError(t, m.Check(), "n=%d", n)
				assert.True(t, m.Equal(Plain[string, int](expected.mapping)), "n=%d got %s", n, m)
			}
		})
	}
}

func TestMerge_WithItself(t *testing.T) {
	t.Parallel()

	m := FromMap(map[string]int{"a": 1, "b": 2})
	m.MergeSum(m)

	require.NoError(t, m.Check())
	assert.True(t, m.Equal(Plain[string, int]{"a": 2, "b": 4}))

	m.MergeDifference(m)
	assert.True(t, m.Equal(Plain[string, int]{"a": 0, "b": 0}))
}

func TestMerge_Identity(t *testing.T) {
	t.Parallel()

	a := FromMap(map[string]int{"x": 3, "y": -1, "z": 0})
	b := Plain[string, int]{"x": 5, "w": 2}

	restored := a.Sum(b).Difference(b)

	// Sum adds keys that only b has and Difference leaves them at zero, so
	// only a's keys are compared.
	for key, value := range a.All() {
		assert.Equal(t, value, restored.GetOrElse(key, -999), key)
	}

	inPlace := a.Clone()
	inPlace.MergeSum(b)
	inPlace.MergeDifference(b)

	for key, value := range a.All() {
		assert.Equal(t, value, inPlace.GetOrElse(key, -999), key)
	}
}

func TestUpdate_Strategies(t *testing.T) { //nolint:paralleltest
	small := sized(t, 50)
	before := strategyCount("update", strategyIncremental)

	small.Update(Plain[string, int]{"k0": 999, "brand-new": 1})

	require.NoError(t, small.Check())
	assert.GreaterOrEqual(t, strategyCount("update", strategyIncremental), before+1)
	assert.Equal(t, 999, small.GetOrElse("k0", 0))
	assert.Equal(t, 1, small.GetOrElse("brand-new", 0))

	large := sized(t, 5)
	before = strategyCount("update", strategyRebuild)

	large.Update(Plain[string, int]{"k0": 999})

	require.NoError(t, large.Check())
	assert.GreaterOrEqual(t, strategyCount("update", strategyRebuild), before+1)
}

func TestPrune_Metric(t *testing.T) { //nolint:paralleltest
	m := sized(t, 10)
	before := testutil.ToFloat64(pruned)

	assert.Equal(t, 3, m.Prune(20))
	assert.GreaterOrEqual(t, testutil.ToFloat64(pruned), before+3)
}
