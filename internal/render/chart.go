// Package render turns analysis frames into report artifacts: PNG
// charts, LaTeX table rows and aligned diagnostic dumps.
package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/signalnine/flexreport/internal/logger"
)

// Glyph is the marker used for a scatter series.
type Glyph int

const (
	Ring Glyph = iota
	Cross
	Dot
)

func (g Glyph) style() (draw.GlyphDrawer, vg.Length) {
	switch g {
	case Cross:
		return draw.CrossGlyph{}, vg.Points(3)
	case Dot:
		return draw.CircleGlyph{}, vg.Points(1.5)
	default:
		return draw.RingGlyph{}, vg.Points(3)
	}
}

// Series is one method variant on a chart.
type Series struct {
	Label string
	X, Y  []float64
	Glyph Glyph
	// Line draws a solid line through the points, sorted by X, instead
	// of markers. Used for baselines.
	Line bool
}

type Chart struct {
	Title  string
	XLabel string
	YLabel string
	LogY   bool
	Series []Series
}

const (
	chartWidth  = 6 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// Save draws the chart to dir/name as PNG, creating dir if needed.
// Points that cannot be drawn (NaN, ±Inf, or non-positive on a log
// axis) are left out and logged.
func (c *Chart) Save(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating plots dir: %w", err)
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Legend.Top = true
	p.Legend.Padding = 1 * vg.Millimeter

	n := min(max(len(c.Series), 3), 9)
	palette, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", n)
	if err != nil {
		return "", err
	}
	colors := palette.Colors()

	drawn := 0
	for i, s := range c.Series {
		xys, dropped := points(s, c.LogY)
		if dropped > 0 {
			logger.Warn("points left out of chart", "chart", name, "series", s.Label, "points", dropped)
		}
		if len(xys) == 0 {
			continue
		}
		drawn += len(xys)
		col := colors[i%len(colors)]
		if s.Line {
			sort.SliceStable(xys, func(a, b int) bool { return xys[a].X < xys[b].X })
			l, err := plotter.NewLine(xys)
			if err != nil {
				return "", fmt.Errorf("series %q: %w", s.Label, err)
			}
			l.LineStyle.Color = col
			l.LineStyle.Width = vg.Points(1)
			p.Add(l)
			p.Legend.Add(s.Label, l)
			continue
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return "", fmt.Errorf("series %q: %w", s.Label, err)
		}
		sc.GlyphStyle.Color = col
		sc.GlyphStyle.Shape, sc.GlyphStyle.Radius = s.Glyph.style()
		p.Add(sc)
		p.Legend.Add(s.Label, sc)
	}

	if c.LogY && drawn > 0 {
		// A log axis cannot fall back to the [v-1, v+1] range plot uses for
		// flat data.
		if p.Y.Min == p.Y.Max {
			p.Y.Min /= 10
			p.Y.Max *= 10
		}
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	path := filepath.Join(dir, name)
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return "", fmt.Errorf("saving %s: %w", path, err)
	}
	return path, nil
}

func points(s Series, logY bool) (plotter.XYs, int) {
	n := min(len(s.X), len(s.Y))
	xys := make(plotter.XYs, 0, n)
	dropped := 0
	for i := 0; i < n; i++ {
		x, y := s.X[i], s.Y[i]
		if !finite(x) || !finite(y) || (logY && y <= 0) {
			dropped++
			continue
		}
		xys = append(xys, plotter.XY{X: x, Y: y})
	}
	return xys, dropped
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Constant returns a slice of len(xs) copies of v, for baseline series.
func Constant(xs []float64, v float64) []float64 {
	out := make([]float64, len(xs))
	for i := range out {
		out[i] = v
	}
	return out
}
