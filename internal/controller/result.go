package controller

import "fmt"

// Result is the outcome of a complete engine run
type Result int

const (
	ResultOk Result = iota
	ResultInitError
	ResultSensorReadError
	ResultFanEnableError
	ResultDutyWriteError
)

func (r Result) String() string {
	switch r {
	case ResultOk:
		return "ok"
	case ResultInitError:
		return "initialization error"
	case ResultSensorReadError:
		return "sensor read error"
	case ResultFanEnableError:
		return "fan enable error"
	case ResultDutyWriteError:
		return "duty write error"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// RequiresReset indicates whether the device may have been left in manual mode
func (r Result) RequiresReset() bool {
	return r != ResultInitError
}
