package transform

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/d2jvkpn/faster/pkg/fastq"
	"github.com/d2jvkpn/faster/pkg/stats"
)

// Lengths writes the sequence length of every read, one per line.
type Lengths struct{}

func (Lengths) operator() {}

func (Lengths) Apply(src fastq.Source, wt io.Writer) error {
	return each(src, func(rec *fastq.Record) (err error) {
		_, err = fmt.Fprintf(wt, "%d\n", rec.Len())
		return err
	})
}

// GCContent writes the G/C fraction of every read.
type GCContent struct{}

func (GCContent) operator() {}

func (GCContent) Apply(src fastq.Source, wt io.Writer) error {
	return each(src, func(rec *fastq.Record) (err error) {
		_, err = fmt.Fprintf(wt, "%.4f\n", stats.GCContent(rec.Seq))
		return err
	})
}

// Qualities writes the probability-space mean Phred score of every read.
// Empty reads have no score and are skipped with a warning.
type Qualities struct{}

func (Qualities) operator() {}

func (Qualities) Apply(src fastq.Source, wt io.Writer) error {
	return each(src, func(rec *fastq.Record) (err error) {
		q, ok := meanQuality(rec)
		if !ok {
			return nil
		}
		_, err = fmt.Fprintf(wt, "%.4f\n", q)
		return err
	})
}

// meanQuality reports ok = false for an empty read, which is logged and
// skipped by the callers.
func meanQuality(rec *fastq.Record) (q float64, ok bool) {
	q, err := stats.MeanQuality(rec.Qual)
	if errors.Is(err, stats.ErrEmptyQuality) {
		log.Warn("skipped empty read, it has no mean quality", "read", string(rec.ID))
		return 0, false
	}
	return q, true
}
