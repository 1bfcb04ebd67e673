package render_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signalnine/flexreport/internal/frame"
	"github.com/signalnine/flexreport/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdNotation(t *testing.T) {
	tests := []struct {
		in   float64
		sig  int
		want string
	}{
		{0.8, 4, "0.8000"},
		{1, 4, "1.000"},
		{0.12345678, 4, "0.1235"},
		{12.3456, 4, "12.35"},
		{123456, 4, "123500"},
		{1000, 4, "1000."},
		{-1000, 4, "-1000."},
		{1234, 4, "1234"},
		{10, 2, "10."},
		{9999.6, 4, "10000"},
		{9.99996, 4, "10.00"},
		{0.000015, 4, "0.00001500"},
		{-2.5, 3, "-2.50"},
		{0, 4, "0.000"},
		{math.NaN(), 4, "nan"},
		{math.Inf(1), 4, "inf"},
		{math.Inf(-1), 4, "-inf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, render.StdNotation(tt.in, tt.sig), "StdNotation(%v, %d)", tt.in, tt.sig)
	}
}

func TestTableRow(t *testing.T) {
	got := render.TableRow("1.0", 10, render.Cells([]float64{0.8, 0.75}, 4))
	assert.Equal(t, `1.0 & $10 \times M$ & 0.8000 & 0.7500 \\ \hline`, got)
}

func TestChartFileNegativePhi(t *testing.T) {
	name := render.ChartFileK("SR", "S", "-0.5", 10)
	assert.Equal(t, "SR-S-PHI-n0.5-k-10.png", name)
	assert.Contains(t, name, "PHI-n0.5")
	assert.Equal(t, "BB-L-PHI-1.0.png", render.ChartFile("BB", "L", "1.0"))
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}

func TestChartSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")
	c := &render.Chart{
		Title:  "Success Rate: S Map, Phi=1.0, k=10",
		XLabel: "agent number",
		YLabel: "success rate",
		Series: []render.Series{
			{Label: "flex", X: []float64{2, 4, 8}, Y: []float64{0.9, math.NaN(), 0.7}, Glyph: render.Cross},
			{Label: "edf", Glyph: render.Ring},
		},
	}
	path, err := c.Save(dir, "SR-S-PHI-1.0-k-10.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "SR-S-PHI-1.0-k-10.png"), path)
	assertPNG(t, path)
}

func TestChartSaveLogScaleFlatData(t *testing.T) {
	xs := []float64{20, 40}
	c := &render.Chart{
		LogY: true,
		Series: []render.Series{
			{Label: "baseline", X: xs, Y: render.Constant(xs, 1), Line: true},
			{Label: "ratio", X: xs, Y: []float64{0, -1}, Glyph: render.Cross},
		},
	}
	path, err := c.Save(t.TempDir(), "BB-S-PHI-1.0.png")
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestChartSaveNothingToDraw(t *testing.T) {
	c := &render.Chart{LogY: true, Series: []render.Series{{Label: "empty"}}}
	path, err := c.Save(t.TempDir(), "empty.png")
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestDump(t *testing.T) {
	f, err := frame.New(
		frame.NewInt("agent", []int64{2}),
		frame.NewFloat("ratio", []float64{math.NaN()}),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, render.Dump(&buf, "flex", f))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "flex", lines[0])
	assert.Contains(t, lines[1], "ratio")
	assert.Contains(t, lines[2], "nan")
}

func TestDumpEmpty(t *testing.T) {
	f, err := frame.New(frame.NewInt("agent", nil))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, render.Dump(&buf, "", f))
	assert.Contains(t, buf.String(), "(no rows)")
}
