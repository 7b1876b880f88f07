package transform

import (
	"io"
	"strconv"
	"strings"

	"github.com/d2jvkpn/faster/pkg/fastq"
)

// Keep selects which side of a filter threshold survives.
type Keep int

const (
	KeepAbove Keep = iota // strictly greater than the threshold
	KeepBelow             // strictly less than the threshold
)

func (keep Keep) String() string {
	if keep == KeepBelow {
		return "below"
	}
	return "above"
}

func (keep Keep) pass(value, threshold float64) bool {
	if keep == KeepBelow {
		return value < threshold
	}
	return value > threshold
}

// LengthFilter keeps reads longer (KeepAbove) or shorter (KeepBelow) than Len.
type LengthFilter struct {
	Keep Keep
	Len  int
}

func (LengthFilter) operator() {}

func (op LengthFilter) Apply(src fastq.Source, wt io.Writer) error {
	return each(src, func(rec *fastq.Record) error {
		if !op.Keep.pass(float64(rec.Len()), float64(op.Len)) {
			return nil
		}
		return emit(wt, rec)
	})
}

// QualFilter keeps reads whose mean quality is better (KeepAbove) or worse
// (KeepBelow) than Qual. Empty reads are skipped.
type QualFilter struct {
	Keep Keep
	Qual int
}

func (QualFilter) operator() {}

func (op QualFilter) Apply(src fastq.Source, wt io.Writer) error {
	return each(src, func(rec *fastq.Record) error {
		q, ok := meanQuality(rec)
		if !ok || !op.Keep.pass(q, float64(op.Qual)) {
			return nil
		}
		return emit(wt, rec)
	})
}

// parseSigned splits the command line convention "n" (keep above n) and
// "-n" (keep below n). "-0" is KeepBelow 0, distinct from "0".
func parseSigned(option, value, expected string) (keep Keep, n int, err error) {
	digits := strings.TrimSpace(value)
	if strings.HasPrefix(digits, "-") {
		keep, digits = KeepBelow, digits[1:]
	}

	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		return keep, 0, &ArgError{Option: option, Value: value, Expected: expected}
	}
	if n, err = strconv.Atoi(digits); err != nil {
		return keep, 0, &ArgError{Option: option, Value: value, Expected: expected, Err: err}
	}

	return keep, n, nil
}

func ParseLengthFilter(value string) (op LengthFilter, err error) {
	op.Keep, op.Len, err = parseSigned("filterl", value, "an integer, negative to keep shorter reads")
	return op, err
}

// ParseQualFilter accepts -60..60.
func ParseQualFilter(value string) (op QualFilter, err error) {
	const expected = "an integer in [-60, 60], negative to keep worse reads"

	if op.Keep, op.Qual, err = parseSigned("filterq", value, expected); err != nil {
		return op, err
	}
	if op.Qual > 60 {
		return op, &ArgError{Option: "filterq", Value: value, Expected: expected}
	}

	return op, nil
}
