package transform

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/d2jvkpn/faster/pkg/fastq"
)

// TrimFront removes the first N bases. Reads shorter than N are dropped;
// a read of exactly N bases is written with an empty sequence.
type TrimFront struct {
	N int
}

func (TrimFront) operator() {}

func (op TrimFront) Apply(src fastq.Source, wt io.Writer) error {
	return trim(src, wt, op.N, func(rec *fastq.Record) *fastq.Record {
		return rec.Slice(op.N, rec.Len())
	})
}

// TrimTail removes the last N bases, with the same policy as TrimFront.
type TrimTail struct {
	N int
}

func (TrimTail) operator() {}

func (op TrimTail) Apply(src fastq.Source, wt io.Writer) error {
	return trim(src, wt, op.N, func(rec *fastq.Record) *fastq.Record {
		return rec.Slice(0, rec.Len()-op.N)
	})
}

func trim(src fastq.Source, wt io.Writer, n int, cut func(*fastq.Record) *fastq.Record) (err error) {
	var dropped int64

	err = each(src, func(rec *fastq.Record) error {
		if rec.Len() < n {
			dropped++
			log.Debug("read shorter than trim length", "read", string(rec.ID), "len", rec.Len(), "trim", n)
			return nil
		}
		return emit(wt, cut(rec))
	})

	if dropped > 0 {
		log.Warn("dropped reads shorter than trim length", "reads", dropped, "trim", n)
	}
	return err
}

func parseTrim(option, value string) (n int, err error) {
	const expected = "a non-negative integer"

	if n, err = strconv.Atoi(strings.TrimSpace(value)); err != nil {
		return 0, &ArgError{Option: option, Value: value, Expected: expected, Err: err}
	}
	if n < 0 {
		return 0, &ArgError{Option: option, Value: value, Expected: expected}
	}

	return n, nil
}

func ParseTrimFront(value string) (op TrimFront, err error) {
	op.N, err = parseTrim("trimfront", value)
	return op, err
}

func ParseTrimTail(value string) (op TrimTail, err error) {
	op.N, err = parseTrim("trimtail", value)
	return op, err
}
