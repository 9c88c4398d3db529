package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign(t *testing.T) {
	t1 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC)
	t3 := time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC)

	a, err := FromValues("a", "gdp", []time.Time{t1, t3}, []float64{1.5, 2.5})
	require.NoError(t, err)
	b, err := FromValues("b", "djia", []time.Time{t2, t3}, []float64{-3, 4})
	require.NoError(t, err)

	out, err := Align("data", []string{"GDP Growth", "DJIA Quarterly Returns"}, a, b)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{t1, t2, t3}, out.Timestamps)
	assert.Equal(t, []string{"GDP Growth", "DJIA Quarterly Returns"}, out.ColumnNames())

	gdp, djia := out.Columns[0].Values, out.Columns[1].Values

	// t1: only a
	assert.True(t, gdp[0].Valid)
	assert.False(t, djia[0].Valid)
	// t2: only b
	assert.False(t, gdp[1].Valid)
	assert.Equal(t, -3.0, djia[1].Float64)
	// t3: both
	assert.Equal(t, 2.5, gdp[2].Float64)
	assert.Equal(t, 4.0, djia[2].Float64)
}

func TestAlignKeepsNamesWithoutLabels(t *testing.T) {
	a := mustSeries(t, 1, 2)
	b, err := a.Rename("other")
	require.NoError(t, err)

	out, err := Align("data", nil, a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"value", "other"}, out.ColumnNames())
	assert.Equal(t, a.Timestamps, out.Timestamps)
}

func TestAlignErrors(t *testing.T) {
	a := mustSeries(t, 1, 2)

	_, err := Align("data", nil)
	assert.ErrorIs(t, err, ErrNothingToAlign)

	_, err = Align("data", []string{"only one"}, a, a.Copy())
	assert.Error(t, err)

	// same column name twice without relabelling
	_, err = Align("data", nil, a, a.Copy())
	assert.Error(t, err)
}

func TestAlignDoesNotShareCells(t *testing.T) {
	a := mustSeries(t, 1, 2)
	out, err := Align("data", []string{"x"}, a)
	require.NoError(t, err)

	out.Columns[0].Values[0] = Missing()
	assert.True(t, a.Columns[0].Values[0].Valid)
}

func TestAlignOutsideNanosecondRange(t *testing.T) {
	early := []time.Time{
		time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2500, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	late := []time.Time{
		time.Date(2500, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2600, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	a, err := FromValues("a", "a", early, []float64{1, 2})
	require.NoError(t, err)
	b, err := FromValues("b", "b", late, []float64{3, 4})
	require.NoError(t, err)

	out, err := Align("data", nil, a, b)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{early[0], early[1], late[1]}, out.Timestamps)
	assert.Equal(t, 2.0, out.Columns[0].Values[1].Float64)
	assert.Equal(t, 3.0, out.Columns[1].Values[1].Float64)
	assert.False(t, out.Columns[1].Values[0].Valid)
}

func TestAlignMatchesInstantsAcrossLocations(t *testing.T) {
	utc := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tokyo := utc.In(time.FixedZone("JST", 9*3600))

	a, err := FromValues("a", "a", []time.Time{utc}, []float64{1})
	require.NoError(t, err)
	b, err := FromValues("b", "b", []time.Time{tokyo}, []float64{2})
	require.NoError(t, err)

	out, err := Align("data", nil, a, b)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
	assert.Equal(t, 1.0, out.Columns[0].Values[0].Float64)
	assert.Equal(t, 2.0, out.Columns[1].Values[0].Float64)
}
