package configuration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func createValidConfig() Configuration {
	return Configuration{
		UpdateInterval: 20,
		Hysteresis:     5,
		AmdGpu: &AmdGpuConfig{
			ID:         "card0",
			ModePath:   "/sys/class/drm/card0/device/hwmon/hwmon3/pwm1_enable",
			EnablePath: "/sys/class/drm/card0/device/hwmon/hwmon3/fan1_enable",
			PwmPath:    "/sys/class/drm/card0/device/hwmon/hwmon3/pwm1",
			Sensors: []SensorConfig{
				{ID: "edge", Path: "/sys/class/drm/card0/device/hwmon/hwmon3/temp1_input"},
				{ID: "junction", Path: "/sys/class/drm/card0/device/hwmon/hwmon3/temp2_input"},
			},
			Curve: []CurvePointConfig{
				{Temp: 0, Speed: 0},
				{Temp: 300, Speed: 0},
				{Temp: 500, Speed: 40},
				{Temp: 900, Speed: 100},
			},
		},
	}
}

func TestValidateValidConfig(t *testing.T) {
	// GIVEN
	config := createValidConfig()

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.NoError(t, err)
}

func TestValidateUpdateIntervalTooHigh(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.UpdateInterval = 301

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "updateInterval must be in [0..300] (1/10 s), is: 301")
}

func TestValidateUpdateIntervalBoundaries(t *testing.T) {
	for _, interval := range []int{0, 300} {
		// GIVEN
		config := createValidConfig()
		config.UpdateInterval = interval

		// WHEN
		err := validateConfig(&config)

		// THEN
		assert.NoError(t, err)
	}
}

func TestValidateHysteresisTooHigh(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Hysteresis = 31

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "hysteresis must be in [0..30] %, is: 31")
}

func TestValidateMissingDevice(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.AmdGpu = nil

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "no device configured, add an 'amdgpu' section")
}

func TestValidateMissingPwmPath(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.AmdGpu.PwmPath = ""

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "amdgpu card0: missing pwmPath")
}

func TestValidateNoSensors(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.AmdGpu.Sensors = nil

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "amdgpu card0: between 1 and 10 sensors required, got: 0")
}

func TestValidateTooManySensors(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.AmdGpu.Sensors = nil
	for i := 0; i < 11; i++ {
		config.AmdGpu.Sensors = append(config.AmdGpu.Sensors, SensorConfig{
			ID:   string(rune('a' + i)),
			Path: "/tmp/temp",
		})
	}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "amdgpu card0: between 1 and 10 sensors required, got: 11")
}

func TestValidateDuplicateSensorId(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.AmdGpu.Sensors[1].ID = "edge"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "amdgpu card0: duplicate sensor id detected: edge")
}

func TestValidateTooFewCurvePoints(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.AmdGpu.Curve = []CurvePointConfig{{Temp: 300, Speed: 20}}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "amdgpu card0: between 2 and 32 curve points required, got: 1")
}

func TestValidateCurveTemperatureNotAscending(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.AmdGpu.Curve = []CurvePointConfig{
		{Temp: 500, Speed: 20},
		{Temp: 500, Speed: 30},
	}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "amdgpu card0: curve point #2: temperatures must be in ascending order, 500 is not > 500")
}

func TestValidateCurveSpeedNotAscending(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.AmdGpu.Curve = []CurvePointConfig{
		{Temp: 400, Speed: 30},
		{Temp: 500, Speed: 30},
	}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "amdgpu card0: curve point #2: speeds must be in ascending order, 30 is not > 30")
}

func TestValidateCurveTemperatureTooHigh(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.AmdGpu.Curve = []CurvePointConfig{
		{Temp: 400, Speed: 30},
		{Temp: 1501, Speed: 100},
	}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "amdgpu card0: curve point #2: max. temperature is 1500, is: 1501")
}

func TestValidateCurveSpeedTooHigh(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.AmdGpu.Curve = []CurvePointConfig{
		{Temp: 400, Speed: 101},
		{Temp: 500, Speed: 102},
	}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "amdgpu card0: curve point #1: speed must be in [0..100], is: 101")
}

func TestValidateApiPortOutOfRange(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Api = ApiConfig{Enabled: true, Host: "localhost", Port: 70000}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "api: port must be in [1..65535], is: 70000")
}

func TestValidateDisabledStatisticsPortIgnored(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Statistics = StatisticsConfig{Enabled: false, Port: 0}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.NoError(t, err)
}

func TestValidateStatisticsPortOutOfRange(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Statistics = StatisticsConfig{Enabled: true, Port: 0}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "statistics: port must be in [1..65535], is: 0")
}

func TestListenAddresses(t *testing.T) {
	assert.Equal(t, "localhost:9001", ApiConfig{Host: "localhost", Port: 9001}.Address())
	assert.Equal(t, "[::1]:9001", ApiConfig{Host: "::1", Port: 9001}.Address())
	assert.Equal(t, ":9000", StatisticsConfig{Port: 9000}.Address())
}
