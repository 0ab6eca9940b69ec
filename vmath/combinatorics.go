package vmath

import (
	"cmp"
	"math"
	"math/rand/v2"
)

// Permutations returns every length-k sequence drawn from items with repetition,
// in lexicographic order of item index
// k <= 0 or empty items yields nil
func Permutations[T any](items []T, k int) [][]T {
	if k <= 0 || len(items) == 0 {
		return nil
	}

	total := 1
	for range k {
		total *= len(items)
	}

	out := make([][]T, 0, total)
	idx := make([]int, k)
	for range total {
		seq := make([]T, k)
		for i, j := range idx {
			seq[i] = items[j]
		}
		out = append(out, seq)

		// Odometer increment, last position fastest
		for p := k - 1; p >= 0; p-- {
			idx[p]++
			if idx[p] < len(items) {
				break
			}
			idx[p] = 0
		}
	}
	return out
}

// Pair holds one element from each side of a Zip
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip pairs elements by index, stopping at the shorter slice
func Zip[A, B any](a []A, b []B) []Pair[A, B] {
	n := min(len(a), len(b))
	out := make([]Pair[A, B], n)
	for i := range n {
		out[i] = Pair[A, B]{a[i], b[i]}
	}
	return out
}

// Cmp returns -1, 0 or 1 as a is less than, equal to or greater than b
// Unordered values (NaN) compare equal
func Cmp[T cmp.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Key builds a comparator over T from a function extracting an ordered key
// Suitable for slices.SortStableFunc
func Key[T any, K cmp.Ordered](f func(T) K) func(a, b T) int {
	return func(a, b T) int {
		return Cmp(f(a), f(b))
	}
}

// Then chains comparators, falling through to the next on ties
func Then[T any](cmps ...func(a, b T) int) func(a, b T) int {
	return func(a, b T) int {
		for _, c := range cmps {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

// Wrap keeps x within [lo, hi) by wrapping around
func Wrap(x, lo, hi float64) float64 {
	n := math.Mod(x-lo, hi-lo)
	if n < 0 {
		return n + hi
	}
	return n + lo
}

// Clamp keeps x within [lo, hi] by truncating overflow
func Clamp[T cmp.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// RandRange returns a uniform float in [lo, hi)
func RandRange(lo, hi float64) float64 {
	return (hi-lo)*rand.Float64() + lo
}

// Choose returns one of its arguments at random
// Panics when called with no arguments
func Choose[T any](items ...T) T {
	return items[rand.IntN(len(items))]
}
