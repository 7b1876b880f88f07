package fastq

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

const twoRecords = "@r1 sample=a lane=1\nACGTN\n+\nIIII#\n\n@r2\nGG\n+r2\n!!\n"

func readAll(t *testing.T, src Source) (recs []*Record, err error) {
	t.Helper()
	for {
		var rec *Record
		if rec, err = src.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return recs, nil
			}
			return recs, err
		}
		recs = append(recs, rec)
	}
}

func TestReader_records(t *testing.T) {
	recs, err := readAll(t, NewReader(strings.NewReader(twoRecords)))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	if string(recs[0].ID) != "r1" || string(recs[0].Desc) != "sample=a lane=1" {
		t.Fatalf("unexpected header split: %q %q", recs[0].ID, recs[0].Desc)
	}
	if string(recs[0].Seq) != "ACGTN" || string(recs[0].Qual) != "IIII#" {
		t.Fatalf("unexpected first record: %+v", recs[0])
	}
	if string(recs[1].ID) != "r2" || len(recs[1].Desc) != 0 || recs[1].Len() != 2 {
		t.Fatalf("unexpected second record: %+v", recs[1])
	}
}

func TestReader_crlf(t *testing.T) {
	recs, err := readAll(t, NewReader(strings.NewReader("@r1\r\nACG\r\n+\r\nIII\r\n")))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || string(recs[0].Seq) != "ACG" || string(recs[0].Qual) != "III" {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestReader_malformed(t *testing.T) {
	cases := map[string]string{
		"length mismatch": "@r1\nACGT\n+\nIII\n",
		"no at sign":      "r1\nACGT\n+\nIIII\n",
		"no plus":         "@r1\nACGT\n-\nIIII\n",
		"truncated":       "@r1\nACGT\n+\n",
	}

	for name, input := range cases {
		_, err := readAll(t, NewReader(strings.NewReader(input)))
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("%s: expected ErrMalformed, got %v", name, err)
		}
	}

	_, err := readAll(t, NewReader(strings.NewReader("@r1\nAC\n")))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestReader_stickyError(t *testing.T) {
	reader := NewReader(strings.NewReader("@r1\nACGT\n+\nIII\n@r2\nA\n+\nI\n"))
	if _, err := reader.Read(); err == nil {
		t.Fatal("expected an error")
	}
	if _, err := reader.Read(); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected the error to stick, got %v", err)
	}
}

func TestRecord_WriteTo(t *testing.T) {
	var buf bytes.Buffer

	recs, err := readAll(t, NewReader(strings.NewReader(twoRecords)))
	if err != nil {
		t.Fatal(err)
	}
	for _, rec := range recs {
		if _, err = rec.WriteTo(&buf); err != nil {
			t.Fatal(err)
		}
	}

	expected := "@r1 sample=a lane=1\nACGTN\n+\nIIII#\n@r2\nGG\n+\n!!\n"
	if buf.String() != expected {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if string(recs[0].Header()) != "r1 sample=a lane=1" {
		t.Fatalf("unexpected header: %q", recs[0].Header())
	}
}

func TestRecord_Slice(t *testing.T) {
	rec := &Record{ID: []byte("r"), Seq: []byte("ACGTA"), Qual: []byte("ABCDE")}
	sub := rec.Slice(1, 3)
	if string(sub.Seq) != "CG" || string(sub.Qual) != "BC" || string(sub.ID) != "r" {
		t.Fatalf("unexpected slice: %+v", sub)
	}
}
