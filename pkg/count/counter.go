// Package count accumulates per-file statistics in a single pass and renders
// them as table rows.
package count

import (
	"errors"
	"fmt"
	"io"

	"github.com/d2jvkpn/faster/pkg/fastq"
	"github.com/d2jvkpn/faster/pkg/stats"
)

/// Counter
type Counter struct {
	RN     int64 `json:"reads"`   // read number
	BN     int64 `json:"bases"`   // base number
	NN     int64 `json:"n_bases"` // base number of N
	GC     int64 `json:"gc"`      // base number of G and C
	Q20    int64 `json:"q20"`     // bases with Q >= 20
	Q30    int64 `json:"q30"`     // bases with Q >= 30
	MinLen int64 `json:"min_len"`
	MaxLen int64 `json:"max_len"`

	lengths []int64
}

func NewCounter() *Counter {
	return &Counter{lengths: make([]int64, 0, 1024)}
}

func (ct *Counter) Add(rec *fastq.Record) {
	length := int64(rec.Len())

	if ct.RN == 0 || length < ct.MinLen {
		ct.MinLen = length
	}
	if length > ct.MaxLen {
		ct.MaxLen = length
	}

	ct.RN++
	ct.BN += length
	ct.NN += stats.CountAmbiguous(rec.Seq)
	ct.GC += stats.CountGC(rec.Seq)
	ct.Q20 += stats.CountAtOrAbove(rec.Qual, 20)
	ct.Q30 += stats.CountAtOrAbove(rec.Qual, 30)
	ct.lengths = append(ct.lengths, length)
}

// Lengths returns the per-read lengths in the order they were added, unless
// Summary has already sorted them.
func (ct *Counter) Lengths() []int64 {
	return ct.lengths
}

// Aggregate consumes src once.
func Aggregate(src fastq.Source) (ct *Counter, err error) {
	var rec *fastq.Record

	ct = NewCounter()
	for {
		if rec, err = src.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return ct, nil
			}
			return ct, err
		}
		ct.Add(rec)
	}
}

/// Summary
type Summary struct {
	File      string  `json:"file"`
	Reads     int64   `json:"reads"`
	Bases     int64   `json:"bases"`
	NBases    int64   `json:"n_bases"`
	MinLen    int64   `json:"min_len"`
	MaxLen    int64   `json:"max_len"`
	MeanLen   float64 `json:"mean_len"`
	Q1        int64   `json:"Q1"`
	Q2        int64   `json:"Q2"`
	Q3        int64   `json:"Q3"`
	N50       int64   `json:"N50"`
	Q20       float64 `json:"Q20_percent"`
	Q30       float64 `json:"Q30_percent"`
	GCPercent float64 `json:"gc_percent"`
}

// Summary finalizes the counters. An empty file yields a row of zeros.
// The length vector is sorted as a side effect.
func (ct *Counter) Summary(file string) Summary {
	sm := Summary{
		File:      file,
		Reads:     ct.RN,
		Bases:     ct.BN,
		NBases:    ct.NN,
		MinLen:    ct.MinLen,
		MaxLen:    ct.MaxLen,
		Q20:       percent(ct.Q20, ct.BN),
		Q30:       percent(ct.Q30, ct.BN),
		GCPercent: percent(ct.GC, ct.BN),
	}

	if len(ct.lengths) == 0 {
		return sm
	}

	sm.MeanLen = stats.Mean(ct.lengths)
	sm.Q1, _ = stats.Quartile(ct.lengths, 1)
	sm.Q2, _ = stats.Quartile(ct.lengths, 2)
	sm.Q3, _ = stats.Quartile(ct.lengths, 3)
	sm.N50, _ = stats.NX(ct.lengths, 0.5)

	return sm
}

func (sm Summary) String() string {
	return fmt.Sprintf(
		"%s\t%d\t%d\t%d\t%d\t%d\t%.2f\t%d\t%d\t%d\t%d\t%.2f\t%.2f",
		sm.File, sm.Reads, sm.Bases, sm.NBases, sm.MinLen, sm.MaxLen, sm.MeanLen,
		sm.Q1, sm.Q2, sm.Q3, sm.N50, sm.Q20, sm.Q30,
	)
}

// percent returns 0 when total is 0.
func percent(n, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}
