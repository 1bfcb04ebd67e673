package frame_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/signalnine/flexreport/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `size,agent,task_per_agent,seed,scheduler,window,phi,bound,time_ms,task_num,task_success
21x35,2,10,1,flex,0,1.0,True,120,10,8
21x35,2,10,1,edf,0,1.0,True,130,10,6
21x35,4,10,1,flex,0,0.5,False,-1,20,20
40x70,2,10,2,flex,20,1.0,true,300,10,10
`

func load(t *testing.T, s string) *frame.Frame {
	t.Helper()
	f, err := frame.ReadCSV(strings.NewReader(s))
	require.NoError(t, err)
	return f
}

func column(t *testing.T, f *frame.Frame, name string) []float64 {
	t.Helper()
	v, err := f.Floats(name)
	require.NoError(t, err)
	return v
}

func TestReadCSVInfersKinds(t *testing.T) {
	f := load(t, sample)
	assert.Equal(t, 4, f.Len())

	want := map[string]frame.Kind{
		"size":      frame.String,
		"agent":     frame.Int,
		"scheduler": frame.String,
		"phi":       frame.Float,
		"bound":     frame.Bool,
		"time_ms":   frame.Int,
	}
	for name, kind := range want {
		c, err := f.Column(name)
		require.NoError(t, err)
		assert.Equal(t, kind, c.Kind, name)
	}
}

func TestReadCSVEmptyCellsBecomeNaN(t *testing.T) {
	f := load(t, "a,b\n1,x\n,y\n")
	c, err := f.Column("a")
	require.NoError(t, err)
	assert.Equal(t, frame.Float, c.Kind)
	assert.True(t, math.IsNaN(column(t, f, "a")[1]))
}

func TestReadCSVEmptyInput(t *testing.T) {
	_, err := frame.ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestFilterKeepsOnlyMatchingRows(t *testing.T) {
	f := load(t, sample)
	preds := []frame.Predicate{
		frame.Eq("scheduler", "flex"),
		frame.Eq("bound", true),
		frame.Ge("time_ms", 0),
	}
	got, err := f.Filter(preds...)
	require.NoError(t, err)

	assert.LessOrEqual(t, got.Len(), f.Len())
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, f.Names(), got.Names())
	for r := 0; r < got.Len(); r++ {
		s, _ := got.Value("scheduler", r)
		b, _ := got.Value("bound", r)
		tm, _ := got.Value("time_ms", r)
		assert.Equal(t, "flex", s.Str)
		assert.True(t, b.Truthy())
		assert.GreaterOrEqual(t, tm.Num, 0.0)
	}
}

func TestFilterFlexRowSuccessRate(t *testing.T) {
	f := load(t, `size,phi,agent,task_per_agent,scheduler,window,bound,sort,mlabel,reserve_all,recalc,nearest,ec,retry,task_success,task_num,time_ms
21x35,1,2,10,flex,0,true,true,true,false,true,false,false,true,8,10,120
21x35,1,2,10,edf,0,true,true,true,false,true,false,false,true,8,10,120
`)
	got, err := f.Filter(frame.Eq("scheduler", "flex"))
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())

	got, err = got.Div("task_success", "task_num", "ratio")
	require.NoError(t, err)
	assert.InDelta(t, 0.8, column(t, got, "ratio")[0], 1e-12)
}

func TestFilterEmptyResultKeepsColumns(t *testing.T) {
	f := load(t, sample)
	got, err := f.Filter(frame.Eq("scheduler", "nope"))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
	assert.Equal(t, f.Names(), got.Names())

	// Filtering an empty frame again is still fine.
	again, err := got.Filter(frame.Eq("window", 20), frame.Ge("time_ms", 0))
	require.NoError(t, err)
	assert.Equal(t, 0, again.Len())
}

func TestFilterRejectsBadPredicates(t *testing.T) {
	f := load(t, sample)
	_, err := f.Filter(frame.Eq("missing", 1))
	assert.ErrorIs(t, err, frame.ErrUnknownColumn)

	_, err = f.Filter(frame.Eq("scheduler", 1))
	assert.Error(t, err)

	_, err = f.Filter(frame.Ge("size", "a"))
	assert.Error(t, err)
}

func TestFilterBoolAgainstNumericColumn(t *testing.T) {
	f := load(t, "recalc\n1.0\n0.0\n")
	got, err := f.Filter(frame.Eq("recalc", true))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())
}

func TestGroupMean(t *testing.T) {
	f := load(t, `agent,scheduler,time_ms,flag,note
2,flex,100,true,a
2,flex,300,false,b
4,flex,50,true,c
2,edf,10,true,d
`)
	got, err := f.GroupMean("agent", "scheduler")
	require.NoError(t, err)

	assert.Equal(t, []string{"agent", "scheduler", "time_ms", "flag"}, got.Names())
	require.Equal(t, 3, got.Len())

	// ascending key order: (2,edf), (2,flex), (4,flex)
	assert.Equal(t, []float64{2, 2, 4}, column(t, got, "agent"))
	s0, _ := got.Value("scheduler", 0)
	s1, _ := got.Value("scheduler", 1)
	assert.Equal(t, "edf", s0.Str)
	assert.Equal(t, "flex", s1.Str)
	assert.Equal(t, []float64{10, 200, 50}, column(t, got, "time_ms"))
	assert.Equal(t, []float64{1, 0.5, 1}, column(t, got, "flag"))

	tc, _ := got.Column("time_ms")
	assert.Equal(t, frame.Float, tc.Kind)
	ac, _ := got.Column("agent")
	assert.Equal(t, frame.Int, ac.Kind)
}

func TestGroupMeanPropagatesNaN(t *testing.T) {
	f := load(t, "k,v\n1,\n1,2\n2,4\n")
	got, err := f.GroupMean("k")
	require.NoError(t, err)
	v := column(t, got, "v")
	assert.True(t, math.IsNaN(v[0]))
	assert.Equal(t, 4.0, v[1])
}

func TestGroupsOneRowPerDistinctKey(t *testing.T) {
	f := load(t, sample)
	groups, err := f.Groups("size", "phi")
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "21x35", groups[0].Key[0].Str)
	assert.Equal(t, 0.5, groups[0].Key[1].Num)
	assert.Equal(t, []int{0, 1}, groups[1].Rows)
	assert.Equal(t, "40x70", groups[2].Key[0].Str)
}

var joinKeys = []string{"agent", "task_per_agent", "seed"}

func TestLeftJoinSuffixesAndDropsRightOnly(t *testing.T) {
	on := load(t, `agent,task_per_agent,seed,time_ms,size
2,10,1,100,21x35
2,10,2,120,21x35
`)
	off := load(t, `agent,task_per_agent,seed,time_ms,size
2,10,1,400,21x35
8,10,9,999,21x35
`)
	got, err := frame.LeftJoin(on, off, joinKeys, "_on", "_off")
	require.NoError(t, err)

	assert.Equal(t, []string{"agent", "task_per_agent", "seed", "time_ms_on", "size_on", "time_ms_off", "size_off"}, got.Names())
	require.Equal(t, 2, got.Len())
	assert.Equal(t, []float64{2, 2}, column(t, got, "agent"))
	assert.Equal(t, []float64{1, 2}, column(t, got, "seed"))

	offTimes := column(t, got, "time_ms_off")
	assert.Equal(t, 400.0, offTimes[0])
	assert.True(t, math.IsNaN(offTimes[1]))
	missing, _ := got.Value("size_off", 1)
	assert.Equal(t, "", missing.Str)
}

func TestLeftJoinNeverAddsKeysAbsentOnLeft(t *testing.T) {
	left := load(t, "agent,task_per_agent,seed,v\n1,1,1,1\n")
	right := load(t, "agent,task_per_agent,seed,v\n1,1,1,2\n3,3,3,3\n5,5,5,5\n")
	got, err := frame.LeftJoin(left, right, joinKeys, "_l", "_r")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())
	assert.Equal(t, []float64{1}, column(t, got, "agent"))
}

func TestLeftJoinDetectsDuplicateKeys(t *testing.T) {
	dup := load(t, "agent,task_per_agent,seed,v\n2,10,1,1\n2,10,1,2\n")
	one := load(t, "agent,task_per_agent,seed,v\n2,10,1,3\n")

	_, err := frame.LeftJoin(one, dup, joinKeys, "_l", "_r")
	require.ErrorIs(t, err, frame.ErrDuplicateKey)
	assert.Contains(t, err.Error(), "agent=2,task_per_agent=10,seed=1")

	_, err = frame.LeftJoin(dup, one, joinKeys, "_l", "_r")
	assert.ErrorIs(t, err, frame.ErrDuplicateKey)

	dups, err := dup.DuplicateKeys(joinKeys...)
	require.NoError(t, err)
	assert.Len(t, dups, 1)
}

func TestDivByZeroIsNotMasked(t *testing.T) {
	f := load(t, "task_success,task_num\n0,0\n3,0\n")
	got, err := f.Div("task_success", "task_num", "ratio")
	require.NoError(t, err)
	r := column(t, got, "ratio")
	assert.True(t, math.IsNaN(r[0]))
	assert.True(t, math.IsInf(r[1], 1))
	assert.False(t, f.Has("ratio"), "source frame must not change")
}

func TestSortIsStable(t *testing.T) {
	f := load(t, "a,b\n2,x\n1,y\n2,z\n")
	got, err := f.Sort("a")
	require.NoError(t, err)
	var order []string
	for r := 0; r < got.Len(); r++ {
		v, _ := got.Value("b", r)
		order = append(order, v.Str)
	}
	assert.Equal(t, []string{"y", "x", "z"}, order)
}

func TestConcat(t *testing.T) {
	a := load(t, "x,y\n1,a\n")
	b := load(t, "x,y\n2,b\n3,c\n")
	got, err := frame.Concat(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, column(t, got, "x"))

	_, err = frame.Concat(a, load(t, "x,z\n1,a\n"))
	assert.Error(t, err)
	_, err = frame.Concat()
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	f, err := frame.New(
		frame.NewInt("agent", []int64{2, 4}),
		frame.NewFloat("ratio", []float64{0.8, math.NaN()}),
		frame.NewBool("recalc", []bool{true, false}),
		frame.NewString("size", []string{"21x35", "21x35"}),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.WriteCSV(&buf, 5))
	assert.Equal(t, "agent,ratio,recalc,size\n2,0.80000,True,21x35\n4,,False,21x35\n", buf.String())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "1.0", frame.Value{Kind: frame.Float, Num: 1}.String())
	assert.Equal(t, "-0.5", frame.Value{Kind: frame.Float, Num: -0.5}.String())
	assert.Equal(t, "1e-05", frame.Value{Kind: frame.Float, Num: 1e-5}.String())
	assert.Equal(t, "3", frame.Value{Kind: frame.Int, Num: 3}.String())
	assert.Equal(t, "False", frame.Value{Kind: frame.Bool, Num: 0}.String())
}
