// Package transform implements the per-record operators: listings, NX and
// quality yield reports, filters, trimming, identifier matching and
// subsampling. Each operator consumes one fastq.Source in a single pass.
package transform

import (
	"errors"
	"fmt"
	"io"

	"github.com/d2jvkpn/faster/pkg/fastq"
)

var ErrInvalidArgument = errors.New("invalid argument")

// ArgError reports an option value that failed to parse or is out of range.
type ArgError struct {
	Option   string
	Value    string
	Expected string
	Err      error
}

func (e *ArgError) Error() string {
	msg := fmt.Sprintf("invalid value %q for --%s, expected %s", e.Value, e.Option, e.Expected)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ArgError) Unwrap() error {
	return ErrInvalidArgument
}

// Operator is the closed set of record transforms; exactly one runs per
// invocation and a fresh Apply call is made for every input file.
type Operator interface {
	Apply(src fastq.Source, wt io.Writer) error

	operator()
}

// each feeds every record of src to fn, stopping at the first error.
func each(src fastq.Source, fn func(*fastq.Record) error) (err error) {
	var rec *fastq.Record

	for {
		if rec, err = src.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err = fn(rec); err != nil {
			return err
		}
	}
}

// emit writes rec in FASTQ form.
func emit(wt io.Writer, rec *fastq.Record) error {
	_, err := rec.WriteTo(wt)
	return err
}
