package fib

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wantRetracementRatios = []float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1.0}
var wantExtensionRatios = []float64{1.272, 1.414, 1.618, 2.0, 2.618, 3.618, 4.236}

func ratiosOf(levels []LevelResult) []float64 {
	out := make([]float64, 0, len(levels))
	for _, l := range levels {
		out = append(out, l.Ratio)
	}
	return out
}

func TestRetracementUptrendExample(t *testing.T) {
	t.Parallel()

	levels, err := Retracement(DefaultRatios(), 100, 50, Uptrend)
	require.NoError(t, err)
	require.Len(t, levels, 7)
	assert.Equal(t, wantRetracementRatios, ratiosOf(levels))

	assert.Equal(t, 100.0, levels[0].Price)
	assert.Equal(t, "High", levels[0].Position)
	assert.Equal(t, 50.0, levels[6].Price)
	assert.Equal(t, "Low", levels[6].Position)

	half, ok := Find(levels, 0.5)
	require.True(t, ok)
	assert.InDelta(t, 75.0, half.Price, 1e-9)
	assert.Equal(t, "50.0%", half.Percent)
	assert.Equal(t, "50.0% Retracement", half.Position)
	assert.Equal(t, "Strong Support - Ideal Buy Zone", half.Zone)

	golden, ok := Find(levels, 0.618)
	require.True(t, ok)
	assert.InDelta(t, 69.1, golden.Price, 1e-9)
	assert.Equal(t, "61.8%", golden.Percent)
	assert.Equal(t, HighlightKeyZone, golden.Highlight)
}

func TestRetracementDowntrendExample(t *testing.T) {
	t.Parallel()

	levels, err := Retracement(DefaultRatios(), 100, 50, Downtrend)
	require.NoError(t, err)
	require.Len(t, levels, 7)
	assert.Equal(t, wantRetracementRatios, ratiosOf(levels))

	assert.Equal(t, 50.0, levels[0].Price)
	assert.Equal(t, "Low", levels[0].Position)
	assert.Equal(t, 100.0, levels[6].Price)
	assert.Equal(t, "High", levels[6].Position)

	half, _ := Find(levels, 0.5)
	assert.InDelta(t, 75.0, half.Price, 1e-9)
	assert.Equal(t, "Strong Resistance - Ideal Sell Zone", half.Zone)
	assert.Equal(t, Sell, half.Bias())
}

func TestExtensionExamples(t *testing.T) {
	t.Parallel()

	up, err := Extension(DefaultRatios(), 100, 50, Uptrend)
	require.NoError(t, err)
	require.Len(t, up, 7)
	assert.Equal(t, wantExtensionRatios, ratiosOf(up))

	golden, ok := Find(up, 1.618)
	require.True(t, ok)
	assert.InDelta(t, 130.9, golden.Price, 1e-9)
	assert.Equal(t, "161.8% Extension", golden.Position)
	assert.Equal(t, "TP3 - Golden Target", golden.Zone)
	assert.Equal(t, HighlightGolden, golden.Highlight)

	down, err := Extension(DefaultRatios(), 100, 50, Downtrend)
	require.NoError(t, err)
	golden, _ = Find(down, 1.618)
	assert.InDelta(t, 19.1, golden.Price, 1e-9)
}

func TestRetracementEndpointsAndMonotonicity(t *testing.T) {
	t.Parallel()

	ranges := []PriceRange{
		{High: 100, Low: 50},
		{High: 1.08750, Low: 1.08500},
		{High: 67321.5, Low: 0.00000123},
		{High: 0.00045, Low: 0.00044},
	}

	for _, pr := range ranges {
		for _, trend := range []Trend{Uptrend, Downtrend} {
			levels, err := Retracement(DefaultRatios(), pr.High, pr.Low, trend)
			require.NoError(t, err)
			require.Len(t, levels, 7)

			first, last := levels[0], levels[len(levels)-1]
			if trend == Uptrend {
				assert.Equal(t, pr.High, first.Price)
				assert.Equal(t, pr.Low, last.Price)
			} else {
				assert.Equal(t, pr.Low, first.Price)
				assert.Equal(t, pr.High, last.Price)
			}

			for i := 1; i < len(levels); i++ {
				if trend == Uptrend {
					assert.Less(t, levels[i].Price, levels[i-1].Price, "%v %v idx %d", pr, trend, i)
				} else {
					assert.Greater(t, levels[i].Price, levels[i-1].Price, "%v %v idx %d", pr, trend, i)
				}
			}
		}
	}
}

func TestExtensionBeyondRange(t *testing.T) {
	t.Parallel()

	pr := PriceRange{High: 2.5, Low: 1.25}
	up, err := Extension(DefaultRatios(), pr.High, pr.Low, Uptrend)
	require.NoError(t, err)
	for _, l := range up {
		assert.Greater(t, l.Price, pr.High)
	}

	down, err := Extension(DefaultRatios(), pr.High, pr.Low, Downtrend)
	require.NoError(t, err)
	for _, l := range down {
		assert.Less(t, l.Price, pr.Low)
	}
}

func TestDeterministic(t *testing.T) {
	t.Parallel()

	a, err := Analyze(DefaultRatios(), 1.2345678, 1.1111111, Downtrend)
	require.NoError(t, err)
	b, err := Analyze(DefaultRatios(), 1.2345678, 1.1111111, Downtrend)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestInvalidRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		high, low float64
	}{
		{"equal", 100, 100},
		{"inverted", 50, 100},
		{"nan high", math.NaN(), 1},
		{"inf low", 10, math.Inf(-1)},
		{"inf high", math.Inf(1), 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ret, err := Retracement(DefaultRatios(), tt.high, tt.low, Uptrend)
			assert.ErrorIs(t, err, ErrInvalidRange)
			assert.Nil(t, ret)

			ext, err := Extension(DefaultRatios(), tt.high, tt.low, Downtrend)
			assert.ErrorIs(t, err, ErrInvalidRange)
			assert.Nil(t, ext)

			_, err = Analyze(DefaultRatios(), tt.high, tt.low, Uptrend)
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}

func TestCustomTableFallsBackToPlaceholders(t *testing.T) {
	t.Parallel()

	table := RatioTable{
		Retracement: []float64{0.25, 0.5},
		Extension:   []float64{1.5},
	}
	ret, err := Retracement(table, 10, 0, Uptrend)
	require.NoError(t, err)
	require.Len(t, ret, 2)
	assert.Equal(t, NoZone, ret[0].Zone)
	assert.Equal(t, "25.0% Retracement", ret[0].Position)
	assert.Equal(t, "Strong Support - Ideal Buy Zone", ret[1].Zone)

	ext, err := Extension(table, 10, 0, Uptrend)
	require.NoError(t, err)
	require.Len(t, ext, 1)
	assert.Equal(t, GenericTarget, ext[0].Zone)
	assert.InDelta(t, 15.0, ext[0].Price, 1e-9)
}

func TestDefaultRatiosIsACopy(t *testing.T) {
	t.Parallel()

	a := DefaultRatios()
	a.Retracement[0] = 42
	b := DefaultRatios()
	assert.Equal(t, 0.0, b.Retracement[0])
	assert.NoError(t, b.Validate())
}

func TestRatioTableValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		table  RatioTable
		errMsg string
	}{
		{"empty retracement", RatioTable{Extension: []float64{2}}, "retracement ratios are required"},
		{"empty extension", RatioTable{Retracement: []float64{0.5}}, "extension ratios are required"},
		{"retracement above one", RatioTable{Retracement: []float64{1.2}, Extension: []float64{2}}, "out of [0, 1]"},
		{"retracement unordered", RatioTable{Retracement: []float64{0.5, 0.2}, Extension: []float64{2}}, "strictly ascending"},
		{"extension too small", RatioTable{Retracement: []float64{0.5}, Extension: []float64{1}}, "greater than 1"},
		{"extension unordered", RatioTable{Retracement: []float64{0.5}, Extension: []float64{2, 1.5}}, "strictly ascending"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.table.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
