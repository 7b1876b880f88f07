package fastq

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	// long reads (nanopore) easily exceed bufio's 64KiB default token size
	MaxLineSize = 1 << 30
)

var (
	ErrMalformed = errors.New("malformed FASTQ record")
	ErrTruncated = fmt.Errorf("%w: truncated", ErrMalformed)
)

// Source yields records one at a time and returns io.EOF once exhausted.
type Source interface {
	Read() (*Record, error)
}

/// Reader
type Reader struct {
	scanner *bufio.Scanner
	line    int64 // number of lines consumed
	err     error
}

func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineSize)

	return &Reader{scanner: scanner}
}

func (reader *Reader) next() (line []byte, ok bool) {
	if !reader.scanner.Scan() {
		return nil, false
	}
	reader.line++
	return bytes.TrimRight(reader.scanner.Bytes(), "\r"), true
}

// Read returns the next record; sequence and quality are copied, so the
// record stays valid after further reads.
func (reader *Reader) Read() (rec *Record, err error) {
	if reader.err != nil {
		return nil, reader.err
	}

	defer func() {
		if err != nil {
			reader.err = err
		}
	}()

	var (
		header, seq, plus, qual []byte
		ok                      bool
	)

	// blank lines between records are tolerated
	for {
		if header, ok = reader.next(); !ok {
			if err = reader.scanner.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		if len(header) > 0 {
			break
		}
	}

	start := reader.line
	if header[0] != '@' {
		return nil, fmt.Errorf("%w: line %d: header does not start with '@'", ErrMalformed, start)
	}
	id, desc := splitHeader(header[1:])
	rec = &Record{ID: clone(id), Desc: clone(desc)}

	if seq, ok = reader.next(); !ok {
		return nil, reader.truncated(start)
	}
	rec.Seq = clone(seq)

	if plus, ok = reader.next(); !ok {
		return nil, reader.truncated(start)
	}
	if len(plus) == 0 || plus[0] != '+' {
		return nil, fmt.Errorf("%w: line %d: separator does not start with '+'", ErrMalformed, reader.line)
	}

	if qual, ok = reader.next(); !ok {
		return nil, reader.truncated(start)
	}
	rec.Qual = clone(qual)

	if len(rec.Seq) != len(rec.Qual) {
		return nil, fmt.Errorf(
			"%w: record %q at line %d: sequence length %d != quality length %d",
			ErrMalformed, rec.ID, start, len(rec.Seq), len(rec.Qual),
		)
	}

	return rec, nil
}

func (reader *Reader) truncated(start int64) error {
	if err := reader.scanner.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%w: record starting at line %d", ErrTruncated, start)
}

func clone(bts []byte) []byte {
	if len(bts) == 0 {
		return nil
	}
	return append(make([]byte, 0, len(bts)), bts...)
}
