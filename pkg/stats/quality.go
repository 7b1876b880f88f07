package stats

import (
	"errors"
	"math"
)

const (
	PhredOffset = 33
)

var (
	ErrEmptyQuality = errors.New("mean quality of an empty quality string")

	errorProbs [256]float64
)

func init() {
	for i := range errorProbs {
		errorProbs[i] = math.Pow(10, -float64(i-PhredOffset)/10)
	}
}

// ErrorProbability converts a Phred+33 quality byte to its error probability.
func ErrorProbability(q byte) float64 {
	return errorProbs[q]
}

// MeanQuality averages in probability space: the error probabilities are
// summed, divided by the base count and converted back to a Phred score.
// This differs from averaging raw Phred scores for reads of uneven quality.
func MeanQuality(qual []byte) (float64, error) {
	if len(qual) == 0 {
		return 0, ErrEmptyQuality
	}

	var sum float64
	for _, q := range qual {
		sum += errorProbs[q]
	}

	return -10 * math.Log10(sum/float64(len(qual))), nil
}

// CountAtOrAbove counts bases whose Phred score is >= threshold.
func CountAtOrAbove(qual []byte, threshold int) (n int64) {
	cutoff := PhredOffset + threshold
	for _, q := range qual {
		if int(q) >= cutoff {
			n++
		}
	}

	return n
}

func CountAmbiguous(seq []byte) (n int64) {
	for _, b := range seq {
		if b == 'N' || b == 'n' {
			n++
		}
	}

	return n
}

func CountGC(seq []byte) (n int64) {
	for _, b := range seq {
		switch b {
		case 'G', 'C', 'g', 'c':
			n++
		}
	}

	return n
}

// GCContent is the fraction of G/C bases, 0 for an empty sequence.
func GCContent(seq []byte) float64 {
	if len(seq) == 0 {
		return 0
	}

	return float64(CountGC(seq)) / float64(len(seq))
}
