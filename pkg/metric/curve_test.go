package metric

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClasses(t *testing.T) {
	assert.Equal(t, []int{0, 1}, Classes([]int{1, 0, 1, 1, 0}))
	assert.Equal(t, []int{-1, 3, 7}, Classes([]int{7, 3, -1, 3}))
	assert.Empty(t, Classes(nil))
}

func TestROCCurve(t *testing.T) {
	fpr, tpr, thresh, err := ROCCurve([]int{0, 1, 0, 1, 1, 1}, []float64{0, 3, 5, 6, 7.5, 8})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0, 0.5, 0.5, 1}, fpr, tolerance)
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 0.75, 1, 1}, tpr, tolerance)
	require.Len(t, thresh, len(fpr))
	assert.True(t, math.IsInf(thresh[0], 1))
}

func TestPRCurve(t *testing.T) {
	recall, precision, thresh, err := PRCurve([]int{0, 0, 1, 1}, []float64{0.1, 0.4, 0.35, 0.8})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 0.5, 1, 1}, recall)
	assert.InDeltaSlice(t, []float64{1, 1, 0.5, 2.0 / 3.0, 0.5}, precision, tolerance)
	assert.True(t, math.IsInf(thresh[0], 1))
	assert.Equal(t, []float64{0.8, 0.4, 0.35, 0.1}, thresh[1:])
}

func TestPRCurve_Ties(t *testing.T) {
	recall, precision, _, err := PRCurve([]int{0, 1, 1, 0}, []float64{0.5, 0.5, 0.9, 0.9})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1}, recall)
	assert.Equal(t, []float64{1, 0.5, 0.5}, precision)
}

func TestArea(t *testing.T) {
	v, err := Area([]float64{0, 0.5, 1}, []float64{0, 0.5, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, tolerance)

	_, err = Area([]float64{0}, []float64{1})
	assert.True(t, errors.Is(err, ErrComputation))

	_, err = Area([]float64{0, 1}, []float64{1})
	assert.True(t, errors.Is(err, ErrComputation))

	_, err = Area([]float64{1, 0}, []float64{0, 1})
	assert.True(t, errors.Is(err, ErrComputation))
}

func TestCurves_LengthMismatch(t *testing.T) {
	_, _, _, err := ROCCurve([]int{0, 1}, []float64{0.5})
	assert.True(t, errors.Is(err, ErrComputation))

	_, _, _, err = PRCurve(nil, nil)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestSummarize(t *testing.T) {
	list, err := Summarize([]int{1, 0, 1, 0, 1}, []float64{0.9, 0.1, 0.7, 0.3, 0.8})
	require.NoError(t, err)
	require.Len(t, list, 2)

	neg := list[0]
	assert.Equal(t, 0, neg.Label)
	assert.Equal(t, 2, neg.Count)
	assert.InDelta(t, 0.2, neg.Mean, tolerance)
	assert.InDelta(t, 0.1, neg.Min, tolerance)
	assert.InDelta(t, 0.3, neg.Max, tolerance)

	pos := list[1]
	assert.Equal(t, 1, pos.Label)
	assert.Equal(t, 3, pos.Count)
	assert.InDelta(t, 0.8, pos.Mean, tolerance)
	assert.InDelta(t, 0.8, pos.Median, tolerance)
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(nil, nil)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}
