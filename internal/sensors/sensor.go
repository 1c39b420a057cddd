package sensors

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"syscall"

	"github.com/markusressel/gpufan2go/internal/configuration"
	"github.com/markusressel/gpufan2go/internal/util"
)

const (
	// MaxReadRetries is the number of times a transient read failure
	// is retried (per sensor and control cycle) before giving up
	MaxReadRetries = 3

	// RawToTenthCelsiusDivisor converts the millidegree values of hwmon temp inputs
	// to the 1/10 °C used by fan curves
	RawToTenthCelsiusDivisor = 100

	// maxLineLength limits how much of a sensor file is read
	maxLineLength = 15
)

var (
	ErrInvalidFormat = errors.New("invalid sensor value format")
	ErrEmpty         = errors.New("sensor file is empty")
)

type Outcome int

const (
	OutcomeOk Outcome = iota
	// OutcomeRetry signals a transient I/O failure, the read may succeed when repeated
	OutcomeRetry
	// OutcomeFail signals a permanent failure, repeating the read won't help
	OutcomeFail
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOk:
		return "ok"
	case OutcomeRetry:
		return "retry"
	case OutcomeFail:
		return "fail"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result of a single sensor read
type Result struct {
	Outcome Outcome
	// Temperature in 1/10 °C, only valid for OutcomeOk
	Temperature int
	Err         error
}

// Source is something a raw sensor value can be read from
type Source interface {
	Open() (io.ReadCloser, error)
	String() string
}

// FileSource reads from a sysfs attribute
type FileSource string

func (s FileSource) Open() (io.ReadCloser, error) {
	path, err := util.ExpandPath(string(s))
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (s FileSource) String() string {
	return string(s)
}

type Sensor struct {
	ID     string `json:"id"`
	Source Source `json:"-"`

	// RawValue of the last successful read
	RawValue int64 `json:"rawValue"`
	// Temperature of the last successful read in 1/10 °C
	Temperature int `json:"temperature"`
}

func NewSensor(config configuration.SensorConfig) *Sensor {
	return &Sensor{
		ID:     config.ID,
		Source: FileSource(config.Path),
	}
}

func (s *Sensor) GetId() string {
	return s.ID
}

// Read reads and parses the current value of this sensor.
// On success RawValue and Temperature are updated.
func (s *Sensor) Read() Result {
	reader, err := s.Source.Open()
	if err != nil {
		return Result{Outcome: OutcomeFail, Err: fmt.Errorf("cannot open sensor %s (%s): %w", s.ID, s.Source, err)}
	}
	line, err := readLine(reader)
	_ = reader.Close()
	if err != nil {
		outcome := OutcomeFail
		if errors.Is(err, syscall.EIO) {
			outcome = OutcomeRetry
		}
		return Result{Outcome: outcome, Err: fmt.Errorf("cannot read sensor %s (%s): %w", s.ID, s.Source, err)}
	}

	raw, err := ParseRawValue(line)
	if err != nil {
		return Result{Outcome: OutcomeFail, Err: fmt.Errorf("sensor %s (%s): %w", s.ID, s.Source, err)}
	}

	s.RawValue = raw
	// integer division truncates towards zero
	s.Temperature = int(raw / RawToTenthCelsiusDivisor)
	return Result{Outcome: OutcomeOk, Temperature: s.Temperature}
}

// readLine reads up to maxLineLength bytes, stopping after the first newline
func readLine(reader io.Reader) (string, error) {
	buf := make([]byte, 0, maxLineLength)
	chunk := make([]byte, maxLineLength)
	for len(buf) < maxLineLength {
		n, err := reader.Read(chunk[:maxLineLength-len(buf)])
		buf = append(buf, chunk[:n]...)
		if idx := bytes.IndexByte(buf, '\n'); idx >= 0 {
			return string(buf[:idx+1]), nil
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if n == 0 {
			return "", io.ErrNoProgress
		}
	}
	if len(buf) == 0 {
		return "", ErrEmpty
	}
	return string(buf), nil
}

// ParseRawValue parses a sensor line of the form "<integer>\n".
// Zero and values at the limits of int64 are rejected, they are
// the typical results of a broken driver or an overflow.
func ParseRawValue(line string) (int64, error) {
	if len(line) < 2 || line[len(line)-1] != '\n' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, line)
	}
	value, err := strconv.ParseInt(line[:len(line)-1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, line)
	}
	if value == 0 || value == math.MaxInt64 || value == math.MinInt64 {
		return 0, fmt.Errorf("%w: value out of range: %d", ErrInvalidFormat, value)
	}
	return value, nil
}
