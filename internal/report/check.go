package report

import (
	"github.com/signalnine/flexreport/internal/analysis"
	"github.com/signalnine/flexreport/internal/frame"
	"github.com/signalnine/flexreport/internal/result"
)

// Duplicate is a trial key that occurs more than once inside one side of
// a paired analysis.
type Duplicate struct {
	Analysis string
	Side     string
	Grid     string
	Phi      frame.Value
	Key      []frame.Value
}

// Findings summarises the consistency of a results table.
type Findings struct {
	Rows       int
	Failed     int
	Pairs      []Pair
	KeyColumns []string
	Duplicates []Duplicate
}

// OK reports whether every paired join can succeed.
func (fd Findings) OK() bool {
	return len(fd.Duplicates) == 0
}

// Check counts failed runs and, for every reported (size, phi) pair,
// lists the trial keys that the paired analyses would see twice on the
// same side of their join.
func Check(f *frame.Frame) (Findings, error) {
	fd := Findings{Rows: f.Len(), KeyColumns: result.PairKey}
	done, err := f.Filter(frame.Ge(result.ColTimeMS, 0))
	if err != nil {
		return fd, err
	}
	fd.Failed = f.Len() - done.Len()
	if fd.Pairs, err = Pairs(f); err != nil {
		return fd, err
	}
	for _, p := range fd.Pairs {
		if p.Skipped() {
			continue
		}
		for _, s := range analysis.PairedSplits(p.Grid, p.Phi) {
			rows, err := f.Filter(s.Preds...)
			if err != nil {
				return fd, err
			}
			keys, err := rows.DuplicateKeys(result.PairKey...)
			if err != nil {
				return fd, err
			}
			for _, k := range keys {
				fd.Duplicates = append(fd.Duplicates, Duplicate{
					Analysis: s.Analysis, Side: s.Side, Grid: p.Grid, Phi: p.Phi, Key: k,
				})
			}
		}
	}
	return fd, nil
}
