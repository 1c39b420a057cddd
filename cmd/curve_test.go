package cmd

import (
	"testing"

	"github.com/markusressel/gpufan2go/internal/curves"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleCurve(t *testing.T) {
	// GIVEN
	curve, err := curves.NewCurve([]curves.Point{
		{Temperature: 300, Duty: 0},
		{Temperature: 500, Duty: 255},
	})
	require.NoError(t, err)

	// WHEN
	values := sampleCurve(curve)

	// THEN
	// 0 .. 60 °C in 1 °C steps
	assert.Len(t, values, 61)
	assert.Equal(t, 0.0, values[0])
	assert.Equal(t, 0.0, values[49])
	assert.Equal(t, 100.0, values[50])
	assert.Equal(t, 100.0, values[60])
}

func TestFormatTemperature(t *testing.T) {
	assert.Equal(t, "45.0", formatTemperature(450))
	assert.Equal(t, "-0.5", formatTemperature(-5))
}
