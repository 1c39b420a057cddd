package curves

import (
	"testing"

	"github.com/markusressel/gpufan2go/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCurve(t *testing.T, points ...Point) *Curve {
	curve, err := NewCurve(points)
	require.NoError(t, err)
	return curve
}

func TestPercentToDuty(t *testing.T) {
	assert.Equal(t, 0, PercentToDuty(0))
	assert.Equal(t, 3, PercentToDuty(1))
	assert.Equal(t, 77, PercentToDuty(30))
	assert.Equal(t, 102, PercentToDuty(40))
	assert.Equal(t, 128, PercentToDuty(50))
	assert.Equal(t, 255, PercentToDuty(100))
}

func TestDutyToPercent(t *testing.T) {
	assert.Equal(t, 0.0, DutyToPercent(0))
	assert.Equal(t, 100.0, DutyToPercent(255))
	assert.InDelta(t, 40.0, DutyToPercent(102), 0.01)
}

func TestNewCurve_TooFewPoints(t *testing.T) {
	// WHEN
	_, err := NewCurve([]Point{{Temperature: 300, Duty: 100}})

	// THEN
	assert.EqualError(t, err, "at least 2 curve points are required")
}

func TestNewCurve_TemperatureNotAscending(t *testing.T) {
	// WHEN
	_, err := NewCurve([]Point{
		{Temperature: 500, Duty: 50},
		{Temperature: 400, Duty: 100},
	})

	// THEN
	assert.EqualError(t, err, "point #2: temperature 400 must be greater than 500")
}

func TestNewCurve_DutyNotAscending(t *testing.T) {
	// WHEN
	_, err := NewCurve([]Point{
		{Temperature: 400, Duty: 100},
		{Temperature: 500, Duty: 100},
	})

	// THEN
	assert.EqualError(t, err, "point #2: duty 100 must be greater than 100")
}

func TestNewCurve_DutyOutOfRange(t *testing.T) {
	// WHEN
	_, err := NewCurve([]Point{
		{Temperature: 400, Duty: 100},
		{Temperature: 500, Duty: 256},
	})

	// THEN
	assert.EqualError(t, err, "point #2: duty 256 out of range [0..255]")
}

func TestNewCurve_DoesNotModifyInput(t *testing.T) {
	// GIVEN
	points := []Point{
		{Temperature: 200, Duty: 0},
		{Temperature: 400, Duty: 77},
	}

	// WHEN
	curve := createCurve(t, points...)

	// THEN
	assert.Equal(t, 200, points[0].Temperature)
	assert.Equal(t, 399, curve.Points()[0].Temperature)
}

func TestNewCurveFromConfig(t *testing.T) {
	// GIVEN
	config := []configuration.CurvePointConfig{
		{Temp: 400, Speed: 30},
		{Temp: 900, Speed: 100},
	}

	// WHEN
	curve, err := NewCurveFromConfig(config)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []Point{
		{Temperature: 400, Duty: 77},
		{Temperature: 900, Duty: 255},
	}, curve.Points())
	assert.False(t, curve.UsesZeroFanMode())
}

func TestEvaluate_ExactPoints(t *testing.T) {
	// GIVEN
	points := []Point{
		{Temperature: 300, Duty: 50},
		{Temperature: 500, Duty: 100},
		{Temperature: 700, Duty: 180},
		{Temperature: 900, Duty: 255},
	}
	curve := createCurve(t, points...)

	for _, p := range points {
		// WHEN
		result := curve.Evaluate(p.Temperature)

		// THEN
		assert.Equal(t, p.Duty, result, "temperature %d", p.Temperature)
	}
}

func TestEvaluate_OutOfRange(t *testing.T) {
	// GIVEN
	curve := createCurve(t,
		Point{Temperature: 300, Duty: 50},
		Point{Temperature: 900, Duty: 255},
	)

	// THEN
	assert.Equal(t, 50, curve.Evaluate(-100))
	assert.Equal(t, 50, curve.Evaluate(299))
	assert.Equal(t, 255, curve.Evaluate(901))
	assert.Equal(t, 255, curve.Evaluate(1500))
}

func TestEvaluate_Interpolation(t *testing.T) {
	// GIVEN
	curve := createCurve(t,
		Point{Temperature: 400, Duty: 100},
		Point{Temperature: 500, Duty: 201},
	)

	// THEN
	// 100 + 101 * 50 / 100 = 150.5
	assert.Equal(t, 151, curve.Evaluate(450))
	// 100 + 101 * 1 / 100 = 101.01
	assert.Equal(t, 101, curve.Evaluate(401))
	// 100 + 101 * 99 / 100 = 199.99
	assert.Equal(t, 200, curve.Evaluate(499))
}

func TestEvaluate_MonotonicAndBounded(t *testing.T) {
	// GIVEN
	points := []Point{
		{Temperature: 250, Duty: 30},
		{Temperature: 430, Duty: 77},
		{Temperature: 610, Duty: 160},
		{Temperature: 830, Duty: 255},
	}
	curve := createCurve(t, points...)

	last := curve.Evaluate(0)
	for temperature := 0; temperature <= 1000; temperature++ {
		// WHEN
		result := curve.Evaluate(temperature)

		// THEN
		assert.GreaterOrEqual(t, result, last, "temperature %d", temperature)
		last = result

		for i := 1; i < len(points); i++ {
			lo, hi := points[i-1], points[i]
			if temperature > lo.Temperature && temperature < hi.Temperature {
				assert.GreaterOrEqual(t, result, lo.Duty)
				assert.LessOrEqual(t, result, hi.Duty)
			}
		}
	}
}

func TestEvaluate_ZeroFanMode(t *testing.T) {
	// GIVEN
	curve := createCurve(t,
		Point{Temperature: 200, Duty: 0},
		Point{Temperature: 400, Duty: PercentToDuty(30)},
	)

	// THEN
	assert.True(t, curve.UsesZeroFanMode())
	assert.Equal(t, 399, curve.Points()[0].Temperature)
	assert.Equal(t, 0, curve.Evaluate(100))
	assert.Equal(t, 0, curve.Evaluate(200))
	assert.Equal(t, 0, curve.Evaluate(399))
	assert.Equal(t, 77, curve.Evaluate(400))
	assert.NotZero(t, curve.Evaluate(401))
}

func TestEvaluate_ZeroFanModeWithFlatPrefix(t *testing.T) {
	// GIVEN
	curve, err := NewCurveFromConfig([]configuration.CurvePointConfig{
		{Temp: 0, Speed: 0},
		{Temp: 300, Speed: 0},
		{Temp: 500, Speed: 40},
		{Temp: 900, Speed: 100},
	})
	require.NoError(t, err)

	// THEN
	assert.Equal(t, 299, curve.Points()[0].Temperature)
	assert.Equal(t, 0, curve.Evaluate(200))
	assert.Equal(t, 0, curve.Evaluate(300))
	// 0 + 102 * 50 / 200 = 25.5
	assert.Equal(t, 26, curve.Evaluate(350))
	assert.Equal(t, 102, curve.Evaluate(500))
	// 102 + 153 * 200 / 400 = 178.5
	assert.Equal(t, 179, curve.Evaluate(700))
	assert.Equal(t, 255, curve.Evaluate(900))
	assert.Equal(t, 255, curve.Evaluate(1200))
}
