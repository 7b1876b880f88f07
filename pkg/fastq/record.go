// Package fastq holds the FASTQ record model, a validating 4-line reader
// and the writer used by the transform operators.
package fastq

import (
	"bytes"
	"io"
)

/// Record
type Record struct {
	ID   []byte // first whitespace-delimited token of the header, without '@'
	Desc []byte // rest of the header line, may be empty
	Seq  []byte
	Qual []byte
}

func (rec *Record) Len() int {
	return len(rec.Seq)
}

// Header returns the header line without the leading '@'.
func (rec *Record) Header() []byte {
	if len(rec.Desc) == 0 {
		return rec.ID
	}

	header := make([]byte, 0, len(rec.ID)+1+len(rec.Desc))
	header = append(header, rec.ID...)
	header = append(header, ' ')
	return append(header, rec.Desc...)
}

// Slice returns a record sharing ID and Desc whose sequence and quality are
// restricted to [start, end).
func (rec *Record) Slice(start, end int) *Record {
	return &Record{ID: rec.ID, Desc: rec.Desc, Seq: rec.Seq[start:end], Qual: rec.Qual[start:end]}
}

// WriteTo writes the record as 4 FASTQ lines.
func (rec *Record) WriteTo(wt io.Writer) (n int64, err error) {
	var buf bytes.Buffer
	buf.Grow(len(rec.ID) + len(rec.Desc) + 2*len(rec.Seq) + 8)

	buf.WriteByte('@')
	buf.Write(rec.ID)
	if len(rec.Desc) > 0 {
		buf.WriteByte(' ')
		buf.Write(rec.Desc)
	}
	buf.WriteByte('\n')
	buf.Write(rec.Seq)
	buf.WriteString("\n+\n")
	buf.Write(rec.Qual)
	buf.WriteByte('\n')

	return buf.WriteTo(wt)
}

func splitHeader(line []byte) (id, desc []byte) {
	i := bytes.IndexAny(line, " \t")
	if i < 0 {
		return line, nil
	}

	return line[:i], bytes.TrimLeft(line[i+1:], " \t")
}
