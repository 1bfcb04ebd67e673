package result_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signalnine/flexreport/internal/frame"
	"github.com/signalnine/flexreport/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "size,agent,task_per_agent,seed,scheduler,window,phi,bound,sort,mlabel,reserve_all,skip,task_bound,recalc,nearest,ec,retry,task_num,task_success,time_ms"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "result.csv", header+"\n"+
		"21x35,2,10,1,flex,0,1.0,True,True,True,False,True,True,True,False,False,True,20,16,120\n")

	f, err := result.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, f.Len())

	c, err := f.Column(result.ColRecalc)
	require.NoError(t, err)
	assert.Equal(t, frame.Bool, c.Kind)
}

func TestLoadMissing(t *testing.T) {
	_, err := result.Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadMissingColumn(t *testing.T) {
	dir := t.TempDir()
	short := strings.Replace(header, ",retry", "", 1)
	path := writeFile(t, dir, "result.csv", short+"\n")
	_, err := result.Load(path)
	require.ErrorIs(t, err, frame.ErrUnknownColumn)
	assert.Contains(t, err.Error(), `"retry"`)
}

func TestWriteCSVCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	f, err := frame.New(frame.NewFloat("time_ms", []float64{1.5}))
	require.NoError(t, err)

	path, err := result.WriteCSV(dir, "x.csv", f, 5)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "time_ms\n1.50000\n", string(data))
}

func TestMapSize(t *testing.T) {
	assert.Equal(t, result.SizeSmall, result.MapSize("21x35", "21x35"))
	assert.Equal(t, result.SizeLarge, result.MapSize("81x81", "21x35"))
}
