package nonplanar

import (
	"errors"
	"math"
	"testing"

	"github.com/sgostarter/i/commerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verticalCurve(t *testing.T, maxHeight float64) *CurveModel {
	t.Helper()
	curve, err := NewCurveModel([]float64{0, maxHeight}, []float64{0, 0}, 0, 0)
	require.NoError(t, err)
	return curve
}

func TestArcLengthTableVertical(t *testing.T) {
	table, err := NewArcLengthTable(verticalCurve(t, 10), 0.01)
	require.NoError(t, err)

	entries := table.Entries()
	assert.Equal(t, 0.0, entries[0])
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i], entries[i-1])
	}
	assert.InDelta(t, 10, table.MaxArcLength(), 0.02)
	assert.Equal(t, 0.01, table.DiscretizationLength())
	assert.Equal(t, len(entries), table.Len())

	h, err := table.HeightForArcLength(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, h)

	for _, length := range []float64{0.3, 1, 2.5, 7.77} {
		h, err := table.HeightForArcLength(length)
		require.NoError(t, err)
		assert.InDelta(t, length, h, 1e-9, "length %g", length)
	}
}

func TestArcLengthTableNegativeLength(t *testing.T) {
	table, err := NewArcLengthTable(verticalCurve(t, 10), 0.01)
	require.NoError(t, err)

	h, err := table.HeightForArcLength(-5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, h)
}

func TestArcLengthTableSlope(t *testing.T) {
	// offset = height, so every step is sqrt(2) times longer than it is high
	curve, err := NewCurveModel([]float64{0, 50}, []float64{0, 50}, 1, 1)
	require.NoError(t, err)
	table, err := NewArcLengthTable(curve, 0.01)
	require.NoError(t, err)

	assert.InDelta(t, 50*math.Sqrt2, table.MaxArcLength(), 0.02)

	h, err := table.HeightForArcLength(10 * math.Sqrt2)
	require.NoError(t, err)
	assert.InDelta(t, 10, h, 0.01)
}

func TestArcLengthTableFirstEntryAtLeastTarget(t *testing.T) {
	curve, err := NewCurveModel([]float64{0, 40, 100}, []float64{100, 90, 60}, 0, -math.Pi/6)
	require.NoError(t, err)
	table, err := NewArcLengthTable(curve, 0.05)
	require.NoError(t, err)

	entries := table.Entries()
	for _, target := range []float64{0.01, 3.3, 42.123, 88} {
		h, err := table.HeightForArcLength(target)
		require.NoError(t, err)

		i := int(math.Round(h / table.DiscretizationLength()))
		assert.GreaterOrEqual(t, entries[i], target-lookupTolerance)
		if i > 0 {
			assert.Less(t, entries[i-1], target-lookupTolerance)
		}
	}
}

func TestArcLengthTableRangeExceeded(t *testing.T) {
	table, err := NewArcLengthTable(verticalCurve(t, 10), 0.01)
	require.NoError(t, err)

	_, err = table.HeightForArcLength(25)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCurveRangeExceeded))
	assert.True(t, errors.Is(err, commerr.ErrOutOfRange))

	var rangeErr *CurveRangeExceededError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, 25.0, rangeErr.ArcLength)
	assert.Equal(t, table.MaxArcLength(), rangeErr.MaxArcLength)
}

func TestArcLengthTableInvalidStep(t *testing.T) {
	curve := verticalCurve(t, 10)
	for _, step := range []float64{0, -0.01, math.NaN(), math.Inf(1)} {
		_, err := NewArcLengthTable(curve, step)
		assert.True(t, errors.Is(err, commerr.ErrInvalidArgument), "step %g", step)
	}
}
