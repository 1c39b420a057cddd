package configuration

import (
	"errors"
	"fmt"

	"github.com/markusressel/gpufan2go/internal/util"
)

const (
	// MaxUpdateInterval in 1/10 seconds
	MaxUpdateInterval = 300
	// MaxHysteresis in percent
	MaxHysteresis = 30
	// MaxTemperature in 1/10 °C
	MaxTemperature = 1500
	MaxSpeed       = 100

	MinSensors     = 1
	MaxSensors     = 10
	MinCurvePoints = 2
	MaxCurvePoints = 32

	MaxPort = 65535
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if config.UpdateInterval < 0 || config.UpdateInterval > MaxUpdateInterval {
		return fmt.Errorf("updateInterval must be in [0..%d] (1/10 s), is: %d", MaxUpdateInterval, config.UpdateInterval)
	}
	if config.Hysteresis < 0 || config.Hysteresis > MaxHysteresis {
		return fmt.Errorf("hysteresis must be in [0..%d] %%, is: %d", MaxHysteresis, config.Hysteresis)
	}

	if config.Statistics.Enabled && (config.Statistics.Port <= 0 || config.Statistics.Port > MaxPort) {
		return fmt.Errorf("statistics: port must be in [1..%d], is: %d", MaxPort, config.Statistics.Port)
	}
	if config.Api.Enabled && (config.Api.Port <= 0 || config.Api.Port > MaxPort) {
		return fmt.Errorf("api: port must be in [1..%d], is: %d", MaxPort, config.Api.Port)
	}

	if config.AmdGpu == nil {
		return errors.New("no device configured, add an 'amdgpu' section")
	}

	return validateAmdGpu(config.AmdGpu)
}

func validateAmdGpu(config *AmdGpuConfig) error {
	if len(config.ID) <= 0 {
		return errors.New("amdgpu: missing id")
	}
	if len(config.ModePath) <= 0 {
		return fmt.Errorf("amdgpu %s: missing modePath", config.ID)
	}
	if len(config.EnablePath) <= 0 {
		return fmt.Errorf("amdgpu %s: missing enablePath", config.ID)
	}
	if len(config.PwmPath) <= 0 {
		return fmt.Errorf("amdgpu %s: missing pwmPath", config.ID)
	}

	err := validateSensors(config)
	if err != nil {
		return err
	}
	return validateCurve(config)
}

func validateSensors(config *AmdGpuConfig) error {
	if len(config.Sensors) < MinSensors || len(config.Sensors) > MaxSensors {
		return fmt.Errorf("amdgpu %s: between %d and %d sensors required, got: %d", config.ID, MinSensors, MaxSensors, len(config.Sensors))
	}

	var ids []string
	for idx, sensorConfig := range config.Sensors {
		if len(sensorConfig.ID) <= 0 {
			return fmt.Errorf("amdgpu %s: sensor #%d: missing id", config.ID, idx+1)
		}
		if util.ContainsString(ids, sensorConfig.ID) {
			return fmt.Errorf("amdgpu %s: duplicate sensor id detected: %s", config.ID, sensorConfig.ID)
		}
		ids = append(ids, sensorConfig.ID)

		if len(sensorConfig.Path) <= 0 {
			return fmt.Errorf("amdgpu %s: sensor %s: missing path", config.ID, sensorConfig.ID)
		}
	}

	return nil
}

// validateCurve checks range and order of all curve points.
// Temperatures have to be strictly ascending, speeds ascending as well,
// except for a leading run of 0% points (zero-fan mode).
func validateCurve(config *AmdGpuConfig) error {
	points := config.Curve
	if len(points) < MinCurvePoints || len(points) > MaxCurvePoints {
		return fmt.Errorf("amdgpu %s: between %d and %d curve points required, got: %d", config.ID, MinCurvePoints, MaxCurvePoints, len(points))
	}

	for idx, point := range points {
		if point.Temp > MaxTemperature {
			return fmt.Errorf("amdgpu %s: curve point #%d: max. temperature is %d, is: %d", config.ID, idx+1, MaxTemperature, point.Temp)
		}
		if point.Speed < 0 || point.Speed > MaxSpeed {
			return fmt.Errorf("amdgpu %s: curve point #%d: speed must be in [0..%d], is: %d", config.ID, idx+1, MaxSpeed, point.Speed)
		}
		if idx == 0 {
			continue
		}

		previous := points[idx-1]
		if point.Temp <= previous.Temp {
			return fmt.Errorf("amdgpu %s: curve point #%d: temperatures must be in ascending order, %d is not > %d", config.ID, idx+1, point.Temp, previous.Temp)
		}
		if point.Speed < previous.Speed || (point.Speed == previous.Speed && point.Speed != 0) {
			return fmt.Errorf("amdgpu %s: curve point #%d: speeds must be in ascending order, %d is not > %d", config.ID, idx+1, point.Speed, previous.Speed)
		}
	}

	return nil
}
