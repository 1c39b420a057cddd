package configuration

// AmdGpuConfig describes the sysfs attributes of an amdgpu hwmon device
// (usually /sys/class/drm/cardX/device/hwmon/hwmonY/...)
type AmdGpuConfig struct {
	ID string `json:"id" yaml:"id"`

	// ModePath points to pwm1_enable
	ModePath string `json:"modePath" yaml:"modePath"`
	// EnablePath points to fan1_enable
	EnablePath string `json:"enablePath" yaml:"enablePath"`
	// PwmPath points to pwm1
	PwmPath string `json:"pwmPath" yaml:"pwmPath"`

	Sensors []SensorConfig     `json:"sensors" yaml:"sensors"`
	Curve   []CurvePointConfig `json:"curve" yaml:"curve,omitempty"`
}

type SensorConfig struct {
	ID string `json:"id" yaml:"id"`
	// Path of a tempX_input file
	Path string `json:"path" yaml:"path"`
}

type CurvePointConfig struct {
	// Temp in 1/10 °C
	Temp int `json:"temp" yaml:"temp"`
	// Speed in percent
	Speed int `json:"speed" yaml:"speed"`
}
