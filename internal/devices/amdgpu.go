package devices

import (
	"fmt"

	"github.com/markusressel/gpufan2go/internal/configuration"
	"github.com/markusressel/gpufan2go/internal/sensors"
	"github.com/markusressel/gpufan2go/internal/util"
)

const (
	amdGpuModeAuto   = "2\n"
	amdGpuModeManual = "1\n"

	amdGpuFanEnable  = "1\n"
	amdGpuFanDisable = "0\n"
)

// AmdGpu controls the fan of an amdgpu card via its hwmon sysfs interface
type AmdGpu struct {
	Config  configuration.AmdGpuConfig `json:"config"`
	Sensors []*sensors.Sensor          `json:"sensors"`
}

func NewAmdGpu(config configuration.AmdGpuConfig) *AmdGpu {
	sensorList := make([]*sensors.Sensor, 0, len(config.Sensors))
	for _, sensorConfig := range config.Sensors {
		sensorList = append(sensorList, sensors.NewSensor(sensorConfig))
	}

	return &AmdGpu{
		Config:  config,
		Sensors: sensorList,
	}
}

func (gpu *AmdGpu) GetId() string {
	return gpu.Config.ID
}

func (gpu *AmdGpu) GetSensors() []*sensors.Sensor {
	return gpu.Sensors
}

func (gpu *AmdGpu) GetMode() (ControlMode, error) {
	path, err := util.ExpandPath(gpu.Config.ModePath)
	if err != nil {
		return 0, err
	}
	value, err := util.ReadIntFromFile(path)
	if err != nil {
		return 0, err
	}
	return ControlMode(value), nil
}

func (gpu *AmdGpu) SetMode(mode ControlMode) error {
	var token string
	switch mode {
	case ControlModeAutomatic:
		token = amdGpuModeAuto
	case ControlModePWM:
		token = amdGpuModeManual
	default:
		return fmt.Errorf("unsupported control mode: %v", mode)
	}
	return write("set mode", gpu.Config.ModePath, token)
}

func (gpu *AmdGpu) SetEnabled(enabled bool) error {
	token := amdGpuFanDisable
	if enabled {
		token = amdGpuFanEnable
	}
	return write("enable fan", gpu.Config.EnablePath, token)
}

func (gpu *AmdGpu) SetDuty(duty int) error {
	return write("set pwm", gpu.Config.PwmPath, fmt.Sprintf("%d\n", duty))
}

func write(op string, path string, content string) error {
	expanded, err := util.ExpandPath(path)
	if err != nil {
		return &WriteError{Op: op, Path: path, Err: err}
	}
	err = util.WriteStringToFile(expanded, content)
	if err != nil {
		return &WriteError{Op: op, Path: path, Err: err}
	}
	return nil
}
