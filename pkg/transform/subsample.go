package transform

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/d2jvkpn/faster/pkg/fastq"
)

// Subsample writes every Nth read, N = round(1/Fraction), starting with the
// Nth. It is an even-stride sample: order preserving and reproducible, not
// random.
type Subsample struct {
	Fraction float64
}

func (Subsample) operator() {}

func (op Subsample) Stride() int {
	stride := math.Round(1 / op.Fraction)
	if stride >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(stride)
}

func (op Subsample) Apply(src fastq.Source, wt io.Writer) error {
	stride, counter := op.Stride(), 0

	return each(src, func(rec *fastq.Record) error {
		if counter++; counter < stride {
			return nil
		}
		counter = 0
		return emit(wt, rec)
	})
}

// ParseSubsample accepts a fraction in (0, 1].
func ParseSubsample(value string) (op Subsample, err error) {
	const expected = "a fraction in (0, 1]"

	if op.Fraction, err = strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
		return op, &ArgError{Option: "sample", Value: value, Expected: expected, Err: err}
	}
	if !(op.Fraction > 0 && op.Fraction <= 1) {
		return op, &ArgError{Option: "sample", Value: value, Expected: expected}
	}

	return op, nil
}
