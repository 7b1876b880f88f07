// Package stats implements the quality model and the length statistics used
// by the table and the transform operators.
//
// The length functions sort their argument in place. Callers that need the
// original order must pass a copy.
package stats

import (
	"fmt"
	"math"
	"slices"
)

// Mean returns NaN for an empty collection.
func Mean(lengths []int64) float64 {
	if len(lengths) == 0 {
		return math.NaN()
	}

	return float64(Sum(lengths)) / float64(len(lengths))
}

func Sum(lengths []int64) (sum int64) {
	for _, v := range lengths {
		sum += v
	}

	return sum
}

// Quartile picks the element at n/4, n/2 or n/4+n/2 of the sorted lengths.
// There is no interpolation, so the result only approximates a quartile and
// is biased for small or even-sized collections. ok is false for an empty
// collection. k outside 1..3 panics.
func Quartile(lengths []int64, k int) (value int64, ok bool) {
	var index int

	n := len(lengths)
	switch k {
	case 1:
		index = n / 4
	case 2:
		index = n / 2
	case 3:
		index = n/4 + n/2
	default:
		panic(fmt.Sprintf("stats: quartile %d out of 1..3", k))
	}

	if n == 0 {
		return 0, false
	}
	slices.Sort(lengths)

	return lengths[index], true
}

// NX returns the first length, in ascending order, at which the cumulative
// sum strictly exceeds fraction*sum(lengths). If none does (fraction >= 1)
// the largest length is returned. NX(lengths, 0.5) is the N50; for "X% of
// bases in reads at least this long" pass 1-X/100.
func NX(lengths []int64, fraction float64) (value int64, ok bool) {
	if len(lengths) == 0 {
		return 0, false
	}
	slices.Sort(lengths)

	threshold := fraction * float64(Sum(lengths))
	var cumsum int64
	for _, v := range lengths {
		cumsum += v
		if float64(cumsum) > threshold {
			return v, true
		}
	}

	return lengths[len(lengths)-1], true
}
