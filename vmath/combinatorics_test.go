package vmath

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermutations(t *testing.T) {
	got := Permutations([]string{"a", "b"}, 2)
	assert.Equal(t, [][]string{{"a", "a"}, {"a", "b"}, {"b", "a"}, {"b", "b"}}, got)

	assert.Len(t, Permutations([]int{1, 2, 3}, 3), 27)
	assert.Len(t, Permutations([]int{1, 2, 3}, 1), 3)
	assert.Nil(t, Permutations([]int{1, 2, 3}, 0))
	assert.Nil(t, Permutations([]int{}, 2))
}

func TestPermutationsAreIndependent(t *testing.T) {
	seqs := Permutations([]int{1, 2}, 2)
	seqs[0][0] = 99
	assert.Equal(t, []int{1, 2}, seqs[1])
}

func TestZip(t *testing.T) {
	got := Zip([]string{"x", "y"}, []float64{1, 2, 3})
	assert.Equal(t, []Pair[string, float64]{{"x", 1}, {"y", 2}}, got)
	assert.Empty(t, Zip([]int{}, []int{1}))
}

func TestCmpAndKey(t *testing.T) {
	assert.Equal(t, -1, Cmp(1, 2))
	assert.Equal(t, 1, Cmp("b", "a"))
	assert.Equal(t, 0, Cmp(2.5, 2.5))
	assert.Equal(t, 0, Cmp(math.NaN(), 1))

	type item struct {
		name string
		z    float64
	}
	items := []item{{"a", 2}, {"b", 1}, {"c", 2}, {"d", 0}}
	slices.SortStableFunc(items, Key(func(it item) float64 { return it.z }))

	var order []string
	for _, it := range items {
		order = append(order, it.name)
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, order)
}

func TestThen(t *testing.T) {
	type pt struct{ x, y int }
	pts := []pt{{1, 2}, {0, 5}, {1, 1}}
	slices.SortFunc(pts, Then(
		Key(func(p pt) int { return p.x }),
		Key(func(p pt) int { return p.y }),
	))
	assert.Equal(t, []pt{{0, 5}, {1, 1}, {1, 2}}, pts)
}

func TestWrapAndClamp(t *testing.T) {
	tests := []struct {
		x, lo, hi, want float64
	}{
		{370, 0, 360, 10},
		{-30, 0, 360, 330},
		{360, 0, 360, 0},
		{5, 2, 4, 3},
		{0.5, 0, 1, 0.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Wrap(tt.x, tt.lo, tt.hi), eps, "wrap(%v, %v, %v)", tt.x, tt.lo, tt.hi)
	}

	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10, Clamp(30, 0, 10))
	assert.Equal(t, 4.5, Clamp(4.5, 0, 10))
}

func TestRandomHelpers(t *testing.T) {
	for range 100 {
		r := RandRange(-2, 3)
		assert.GreaterOrEqual(t, r, -2.0)
		assert.Less(t, r, 3.0)

		c := Choose("a", "b", "c")
		assert.Contains(t, []string{"a", "b", "c"}, c)
	}
}
