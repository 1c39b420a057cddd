package devices

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/markusressel/gpufan2go/internal/sensors"
)

type ControlMode int

const (
	// ControlModePWM enables manual, fixed speed control via setting the pwm value
	ControlModePWM ControlMode = 1
	// ControlModeAutomatic enables automatic control by the driver/firmware
	ControlModeAutomatic ControlMode = 2
)

func (m ControlMode) String() string {
	switch m {
	case ControlModePWM:
		return "manual"
	case ControlModeAutomatic:
		return "auto"
	default:
		return fmt.Sprintf("unknown (%d)", int(m))
	}
}

// ParseControlMode accepts the name ("auto", "manual") or the numeric value of a mode
func ParseControlMode(text string) (ControlMode, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "auto", "automatic":
		return ControlModeAutomatic, nil
	case "manual", "pwm":
		return ControlModePWM, nil
	}

	value, err := strconv.Atoi(text)
	if err == nil {
		mode := ControlMode(value)
		switch mode {
		case ControlModeAutomatic, ControlModePWM:
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown mode: %s, must be one of: 'auto' (%d), 'manual' (%d)", text, ControlModeAutomatic, ControlModePWM)
}

// Device is a fan controllable by the control loop
type Device interface {
	GetId() string

	// GetSensors returns the temperature sources belonging to this device
	GetSensors() []*sensors.Sensor

	GetMode() (ControlMode, error)
	SetMode(mode ControlMode) error

	// SetEnabled turns the fan on or off
	SetEnabled(enabled bool) error

	// SetDuty sets the pwm duty cycle in native units
	SetDuty(duty int) error
}

// WriteError is returned when a control file cannot be written
type WriteError struct {
	Op   string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: cannot write %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// PermissionDenied indicates the daemon lacks the privileges to write control files
func (e *WriteError) PermissionDenied() bool {
	return errors.Is(e.Err, fs.ErrPermission)
}

// IsPermissionDenied checks whether err is caused by missing permissions on a control file
func IsPermissionDenied(err error) bool {
	var writeErr *WriteError
	if errors.As(err, &writeErr) {
		return writeErr.PermissionDenied()
	}
	return false
}
