package transform

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/d2jvkpn/faster/pkg/fastq"
	"github.com/d2jvkpn/faster/pkg/stats"
)

// NX reports the length such that reads at least this long hold Fraction of
// all bases. It keeps the length vector of the whole file.
type NX struct {
	Fraction float64
}

func (NX) operator() {}

func (op NX) Apply(src fastq.Source, wt io.Writer) (err error) {
	lengths := make([]int64, 0, 1024)

	err = each(src, func(rec *fastq.Record) error {
		lengths = append(lengths, int64(rec.Len()))
		return nil
	})
	if err != nil {
		return err
	}

	value, _ := stats.NX(lengths, op.complement())
	_, err = fmt.Fprintf(wt, "N%s\t%d\n", op.Label(), value)
	return err
}

// complement is 1-Fraction rounded to 9 decimals, so 1-0.9 is exactly 0.1.
func (op NX) complement() float64 {
	return math.Round((1-op.Fraction)*1e9) / 1e9
}

// Label renders Fraction as a percentage without float noise: 0.9 -> "90".
func (op NX) Label() string {
	pct := math.Round(op.Fraction*100*1e6) / 1e6
	return strconv.FormatFloat(pct, 'f', -1, 64)
}

// QualYield reports the percentage of bases with a Phred score >= Threshold.
type QualYield struct {
	Threshold int
}

func (QualYield) operator() {}

func (op QualYield) Apply(src fastq.Source, wt io.Writer) (err error) {
	var bases, passed int64

	err = each(src, func(rec *fastq.Record) error {
		bases += int64(rec.Len())
		passed += stats.CountAtOrAbove(rec.Qual, op.Threshold)
		return nil
	})
	if err != nil {
		return err
	}

	pct := 0.0
	if bases > 0 {
		pct = float64(passed) * 100 / float64(bases)
	}

	_, err = fmt.Fprintf(wt, "Q%d\t%.2f\n", op.Threshold, pct)
	return err
}

// ParseNX accepts a fraction in [0, 1].
func ParseNX(value string) (op NX, err error) {
	const expected = "a fraction in [0, 1]"

	if op.Fraction, err = strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
		return op, &ArgError{Option: "nx", Value: value, Expected: expected, Err: err}
	}
	if !(op.Fraction >= 0 && op.Fraction <= 1) {
		return op, &ArgError{Option: "nx", Value: value, Expected: expected}
	}

	return op, nil
}

// ParseQualYield accepts an integer Phred threshold in [8, 60].
func ParseQualYield(value string) (op QualYield, err error) {
	const expected = "an integer in [8, 60]"

	if op.Threshold, err = strconv.Atoi(strings.TrimSpace(value)); err != nil {
		return op, &ArgError{Option: "qyield", Value: value, Expected: expected, Err: err}
	}
	if op.Threshold < 8 || op.Threshold > 60 {
		return op, &ArgError{Option: "qyield", Value: value, Expected: expected}
	}

	return op, nil
}
