package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signalnine/flexreport/internal/analysis"
	"github.com/signalnine/flexreport/internal/frame"
	"github.com/signalnine/flexreport/internal/logger"
	"github.com/signalnine/flexreport/internal/result"
)

// Analysis names.
const (
	Tasks       = "tasks"
	BranchBound = analysis.NameBranchBound
	DummyPath   = analysis.NameDummyPath
	Recalc      = analysis.NameRecalc
	NearestEC   = "nearest-ec"
	Phi         = "phi"
	Average     = "average"
)

// Analyses lists every known analysis in run order.
var Analyses = []string{Tasks, BranchBound, DummyPath, Recalc, NearestEC, Phi, Average}

var ErrNoRows = errors.New("no rows to export")

type Options struct {
	Analyses        []string
	SmallMap        string
	TaskMultipliers []int
	Digits          int
	FloatDigits     int
	PlotsDir        string
	OutputDir       string
}

// Generate runs every configured analysis over f. Table fragments and
// diagnostic dumps go to w; charts and CSV summaries go to disk.
func Generate(f *frame.Frame, opts Options, w io.Writer) error {
	a := &analysis.Analyzer{
		PlotsDir: opts.PlotsDir,
		SmallMap: opts.SmallMap,
		Digits:   opts.Digits,
		Out:      w,
	}
	for _, name := range opts.Analyses {
		logger.Debug("running analysis", "name", name)
		switch name {
		case Phi:
			if err := a.PhiOverview(f); err != nil {
				return fmt.Errorf("phi overview: %w", err)
			}
			if err := a.PhiPerConfig(f); err != nil {
				return fmt.Errorf("phi per config: %w", err)
			}
		case Average:
			if _, err := a.Average(f, false, "dynamic"); err != nil {
				return fmt.Errorf("average: %w", err)
			}
			if _, err := a.Average(f, true, "all"); err != nil {
				return fmt.Errorf("average: %w", err)
			}
		default:
			fn, err := pairAnalysis(a, name, opts.TaskMultipliers)
			if err != nil {
				return err
			}
			sections, err := EachPair(f, fn)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			WriteTables(w, sections)
			if name == Tasks {
				if err := exportSizes(w, sections, opts); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// PairFunc analyses one (grid, phi) pair. A nil section means nothing
// matched.
type PairFunc func(f *frame.Frame, grid string, phi frame.Value) (*analysis.Section, error)

func pairAnalysis(a *analysis.Analyzer, name string, ks []int) (PairFunc, error) {
	switch name {
	case Tasks:
		return func(f *frame.Frame, grid string, phi frame.Value) (*analysis.Section, error) {
			return a.Tasks(f, grid, phi, ks)
		}, nil
	case BranchBound:
		return a.BranchAndBound, nil
	case DummyPath:
		return a.DummyPath, nil
	case Recalc:
		return a.Recalculate, nil
	case NearestEC:
		return a.NearestEC, nil
	}
	return nil, fmt.Errorf("unknown analysis %q (want one of %s)", name, strings.Join(Analyses, ", "))
}

// Pair is one distinct (size, phi) combination of the results table.
type Pair struct {
	Grid string
	Phi  frame.Value
	Rows int
}

// Skipped reports whether the pair is a sentinel configuration.
func (p Pair) Skipped() bool {
	return p.Phi.Num < 0
}

// Pairs enumerates the distinct (size, phi) pairs in ascending order.
func Pairs(f *frame.Frame) ([]Pair, error) {
	groups, err := f.Groups(result.ColSize, result.ColPhi)
	if err != nil {
		return nil, err
	}
	pairs := make([]Pair, len(groups))
	for i, g := range groups {
		pairs[i] = Pair{Grid: g.Key[0].Str, Phi: g.Key[1], Rows: len(g.Rows)}
	}
	return pairs, nil
}

// EachPair runs fn for every pair with phi >= 0 and collects the
// non-empty sections.
func EachPair(f *frame.Frame, fn PairFunc) ([]*analysis.Section, error) {
	pairs, err := Pairs(f)
	if err != nil {
		return nil, err
	}
	var sections []*analysis.Section
	for _, p := range pairs {
		if p.Skipped() {
			logger.Debug("skipping pair", "size", p.Grid, "phi", p.Phi.String())
			continue
		}
		sec, err := fn(f, p.Grid, p.Phi)
		if err != nil {
			return nil, err
		}
		if sec != nil {
			sections = append(sections, sec)
		}
	}
	return sections, nil
}

// WriteTables prints the collected rows grouped by map size, small map
// first. Each metric block ends with a blank line.
func WriteTables(w io.Writer, sections []*analysis.Section) {
	for _, size := range result.Sizes {
		var mine []*analysis.Section
		blocks := 0
		for _, s := range sections {
			if s.Size == size {
				mine = append(mine, s)
				blocks = max(blocks, len(s.Blocks))
			}
		}
		if blocks == 0 {
			logger.Debug("no table rows", "size", size)
			continue
		}
		fmt.Fprintln(w)
		for i := 0; i < blocks; i++ {
			var table []string
			for _, s := range mine {
				if i < len(s.Blocks) {
					table = append(table, strings.Join(s.Blocks[i], "\n"))
				}
			}
			fmt.Fprintln(w, strings.Join(table, "\n"))
			fmt.Fprintln(w)
		}
	}
}
