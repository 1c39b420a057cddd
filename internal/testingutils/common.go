package testingutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/markusressel/gpufan2go/internal/configuration"
	"github.com/markusressel/gpufan2go/internal/devices"
	"github.com/markusressel/gpufan2go/internal/sensors"
)

// MockDevice records all writes instead of touching sysfs
type MockDevice struct {
	ID      string
	Sensors []*sensors.Sensor

	Mode    devices.ControlMode
	Modes   []devices.ControlMode
	Enables []bool
	Duties  []int

	GetModeErr error
	// ModeErrors is consumed by SetMode calls in order, a nil entry lets the call pass
	ModeErrors []error
	EnableErr  error
	// EnableErrAfter fails SetEnabled once this many calls succeeded, if EnableErr is set
	EnableErrAfter int
	DutyErr        error
}

func (d *MockDevice) GetId() string {
	return d.ID
}

func (d *MockDevice) GetSensors() []*sensors.Sensor {
	return d.Sensors
}

func (d *MockDevice) GetMode() (devices.ControlMode, error) {
	if d.GetModeErr != nil {
		return 0, d.GetModeErr
	}
	return d.Mode, nil
}

func (d *MockDevice) SetMode(mode devices.ControlMode) error {
	if len(d.ModeErrors) > 0 {
		err := d.ModeErrors[0]
		d.ModeErrors = d.ModeErrors[1:]
		if err != nil {
			return err
		}
	}
	d.Mode = mode
	d.Modes = append(d.Modes, mode)
	return nil
}

func (d *MockDevice) SetEnabled(enabled bool) error {
	if d.EnableErr != nil && len(d.Enables) >= d.EnableErrAfter {
		return d.EnableErr
	}
	d.Enables = append(d.Enables, enabled)
	return nil
}

func (d *MockDevice) SetDuty(duty int) error {
	if d.DutyErr != nil {
		return d.DutyErr
	}
	d.Duties = append(d.Duties, duty)
	return nil
}

// CreateFileSensor creates a sensor reading from a temporary file with the given content
func CreateFileSensor(t *testing.T, id string, content string) *sensors.Sensor {
	path := filepath.Join(t.TempDir(), id+"_input")
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("cannot create sensor file: %v", err)
	}
	return sensors.NewSensor(configuration.SensorConfig{
		ID:   id,
		Path: path,
	})
}
