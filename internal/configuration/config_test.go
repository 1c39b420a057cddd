package configuration

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExampleConfig(t *testing.T) {
	// GIVEN
	viper.Reset()
	setDefaultValues()
	viper.SetConfigType("yaml")
	err := viper.ReadConfig(strings.NewReader(ExampleConfig))
	require.NoError(t, err)

	// WHEN
	LoadConfig()

	// THEN
	assert.Equal(t, 20, CurrentConfig.UpdateInterval)
	assert.Equal(t, 5, CurrentConfig.Hysteresis)
	require.NotNil(t, CurrentConfig.AmdGpu)
	assert.Equal(t, "card0", CurrentConfig.AmdGpu.ID)
	assert.Len(t, CurrentConfig.AmdGpu.Sensors, 2)
	assert.Equal(t, []CurvePointConfig{
		{Temp: 0, Speed: 0},
		{Temp: 500, Speed: 30},
		{Temp: 700, Speed: 60},
		{Temp: 900, Speed: 100},
	}, CurrentConfig.AmdGpu.Curve)
	assert.Equal(t, 9000, CurrentConfig.Statistics.Port)
	assert.NoError(t, Validate())
}

func TestLoadConfigDefaults(t *testing.T) {
	// GIVEN
	viper.Reset()
	setDefaultValues()
	viper.SetConfigType("yaml")
	err := viper.ReadConfig(strings.NewReader("amdgpu:\n  id: card1\n"))
	require.NoError(t, err)

	// WHEN
	LoadConfig()

	// THEN
	assert.Equal(t, "/etc/gpufan2go/gpufan2go.db", CurrentConfig.DbPath)
	assert.Equal(t, 20, CurrentConfig.UpdateInterval)
	assert.Equal(t, 5, CurrentConfig.Hysteresis)
	assert.Equal(t, "localhost", CurrentConfig.Api.Host)
	assert.Equal(t, 9001, CurrentConfig.Api.Port)
	assert.Equal(t, "card1", CurrentConfig.AmdGpu.ID)
}
