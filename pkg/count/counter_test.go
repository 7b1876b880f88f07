package count

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/d2jvkpn/faster/pkg/fastq"
	"github.com/d2jvkpn/faster/pkg/stats"
)

const sample = "../../examples/test.fastq"

func aggregateFile(t *testing.T, name string) *Counter {
	t.Helper()

	file, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	ct, err := Aggregate(fastq.NewReader(file))
	if err != nil {
		t.Fatal(err)
	}
	return ct
}

//go:generate go test -run TestAggregate_sample
func TestAggregate_sample(t *testing.T) {
	var expected int64 = 18931

	ct := aggregateFile(t, sample)
	if ct.BN != expected {
		t.Fatalf("Bases number not equals to %d: %d", expected, ct.BN)
	}
	if ct.RN != 10 || ct.NN != 0 || ct.MinLen != 35 || ct.MaxLen != 5000 {
		t.Fatalf("unexpected counters: %+v", ct)
	}
	if ct.Q20 != 12958 || ct.Q30 != 6920 {
		t.Fatalf("unexpected quality counters: q20=%d q30=%d", ct.Q20, ct.Q30)
	}

	if sum := stats.Sum(ct.Lengths()); sum != ct.BN {
		t.Fatalf("incremental bases %d != sum of lengths %d", ct.BN, sum)
	}
}

func TestSummary_sample(t *testing.T) {
	sm := aggregateFile(t, sample).Summary("test.fastq")

	row := sm.String()
	if !strings.Contains(row, "10\t18931\t0") {
		t.Fatalf("row does not contain reads/bases/n_bases: %q", row)
	}

	expected := "test.fastq\t10\t18931\t0\t35\t5000\t1893.10\t249\t1500\t3000\t3000\t68.45\t36.55"
	if row != expected {
		t.Fatalf("unexpected row:\n%q\n%q", row, expected)
	}
}

func TestSummary_empty(t *testing.T) {
	ct, err := Aggregate(fastq.NewReader(strings.NewReader("")))
	if err != nil {
		t.Fatal(err)
	}

	row := ct.Summary("empty.fastq").String()
	if row != "empty.fastq\t0\t0\t0\t0\t0\t0.00\t0\t0\t0\t0\t0.00\t0.00" {
		t.Fatalf("unexpected empty row: %q", row)
	}
}

func TestAggregate_malformed(t *testing.T) {
	_, err := Aggregate(fastq.NewReader(strings.NewReader("@r1\nACGT\n+\nII\n")))
	if err == nil {
		t.Fatal("expected an error for a length mismatch")
	}
}

func TestTable_header(t *testing.T) {
	var buf bytes.Buffer

	table := NewTable(false, false)
	for _, name := range []string{"a", "b"} {
		src := fastq.NewReader(strings.NewReader("@r1\nACGN\n+\nIIII\n"))
		if _, err := table.Apply(name, src, &buf); err != nil {
			t.Fatal(err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || lines[0] != TableHeader {
		t.Fatalf("expected a single header and two rows:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[2], "b\t1\t4\t1\t4\t4\t4.00\t") {
		t.Fatalf("unexpected row: %q", lines[2])
	}

	buf.Reset()
	table = NewTable(true, false)
	if _, err := table.Apply("a", fastq.NewReader(strings.NewReader("")), &buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "reads") {
		t.Fatalf("header should be skipped: %q", buf.String())
	}
}

func TestTable_json(t *testing.T) {
	var (
		buf bytes.Buffer
		sm  Summary
	)

	table := NewTable(false, true)
	src := fastq.NewReader(strings.NewReader("@r1\nGCGA\n+\nIIII\n"))
	if _, err := table.Apply("a", src, &buf); err != nil {
		t.Fatal(err)
	}

	if err := json.Unmarshal(buf.Bytes(), &sm); err != nil {
		t.Fatal(err)
	}
	if sm.File != "a" || sm.Bases != 4 || sm.GCPercent != 75 || sm.Q30 != 100 {
		t.Fatalf("unexpected summary: %+v", sm)
	}
}
