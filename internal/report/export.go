package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/signalnine/flexreport/internal/analysis"
	"github.com/signalnine/flexreport/internal/frame"
	"github.com/signalnine/flexreport/internal/logger"
	"github.com/signalnine/flexreport/internal/render"
	"github.com/signalnine/flexreport/internal/result"
)

// CSVName is result-exp-<size>.csv for runs with recalculation enabled
// and result-baseline-<size>.csv otherwise.
func CSVName(recalc bool, size string) string {
	tag := "-baseline"
	if recalc {
		tag = "-exp"
	}
	return "result" + tag + "-" + size + ".csv"
}

// ExportCSV concatenates the rows of every section for one map size and
// writes them to dir. The recalc flag of the first row picks the name.
func ExportCSV(w io.Writer, sections []*analysis.Section, size, dir string, floatDigits int) (string, error) {
	var frames []*frame.Frame
	for _, s := range sections {
		if s.Size == size && s.Rows != nil {
			frames = append(frames, s.Rows)
		}
	}
	if len(frames) == 0 {
		return "", fmt.Errorf("size %s: %w", size, ErrNoRows)
	}
	rows, err := frame.Concat(frames...)
	if err != nil {
		return "", err
	}
	if rows.Len() == 0 {
		return "", fmt.Errorf("size %s: %w", size, ErrNoRows)
	}
	if w != nil {
		if err := render.Dump(w, "", rows); err != nil {
			return "", err
		}
	}
	recalc, err := rows.Value(result.ColRecalc, 0)
	if err != nil {
		return "", err
	}
	return result.WriteCSV(dir, CSVName(recalc.Truthy(), size), rows, floatDigits)
}

func exportSizes(w io.Writer, sections []*analysis.Section, opts Options) error {
	for _, size := range result.Sizes {
		path, err := ExportCSV(w, sections, size, opts.OutputDir, opts.FloatDigits)
		if errors.Is(err, ErrNoRows) {
			logger.Warn("nothing to export", "size", size)
			continue
		}
		if err != nil {
			return fmt.Errorf("exporting %s: %w", size, err)
		}
		logger.Info("wrote summary", "path", path)
	}
	return nil
}
