package count

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/d2jvkpn/faster/pkg/fastq"
)

const (
	TableHeader = "file\treads\tbases\tn_bases\tmin_len\tmax_len\tmean_len\tQ1\tQ2\tQ3\tN50\tQ20_percent\tQ30_percent"
)

// Table writes one summary row per file. The header goes out once, before
// the first row, unless SkipHeader is set; JSON output has no header.
type Table struct {
	SkipHeader bool
	JSONFormat bool

	written bool
}

func NewTable(skipHeader, jsonFormat bool) *Table {
	return &Table{SkipHeader: skipHeader, JSONFormat: jsonFormat}
}

// Apply aggregates src with a fresh Counter and writes its row.
func (table *Table) Apply(name string, src fastq.Source, wt io.Writer) (ct *Counter, err error) {
	if ct, err = Aggregate(src); err != nil {
		return ct, fmt.Errorf("%s: %w", name, err)
	}

	return ct, table.Write(wt, ct.Summary(name))
}

func (table *Table) Write(wt io.Writer, sm Summary) (err error) {
	if table.JSONFormat {
		var bts []byte
		if bts, err = json.Marshal(sm); err != nil {
			return err
		}
		_, err = fmt.Fprintf(wt, "%s\n", bts)
		return err
	}

	if !table.written && !table.SkipHeader {
		if _, err = fmt.Fprintln(wt, TableHeader); err != nil {
			return err
		}
	}
	table.written = true

	_, err = fmt.Fprintln(wt, sm.String())
	return err
}
