package controller

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/gpufan2go/internal/configuration"
	"github.com/markusressel/gpufan2go/internal/curves"
	"github.com/markusressel/gpufan2go/internal/devices"
	"github.com/markusressel/gpufan2go/internal/persistence"
	"github.com/markusressel/gpufan2go/internal/sensors"
	"github.com/markusressel/gpufan2go/internal/ui"
	"github.com/markusressel/gpufan2go/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/qdm12/reprint"
)

const (
	// MaxInterval is the longest supported update interval in 1/10 s
	MaxInterval = 300
	// MaxHysteresis is the widest supported dead band in percent
	MaxHysteresis = 30

	intervalUnit = 100 * time.Millisecond

	sensorReadTimeWindowSize = 100
)

var (
	// EngineMap holds all running engines by device id
	EngineMap = cmap.New[*Engine]()

	ErrNoDevice            = errors.New("no device attached")
	ErrDeviceAlreadyExists = errors.New("a device is already attached")
)

type State int

const (
	StateInitializing State = iota
	StateRunning
	StateDraining
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Snapshot is a copy of the observable engine state
type Snapshot struct {
	DeviceId string `json:"deviceId"`
	State    State  `json:"-"`
	StateStr string `json:"state"`

	// LastAppliedTemperature is nil until the first cycle completed
	LastAppliedTemperature *int `json:"lastAppliedTemperature"`
	Duty                   int  `json:"duty"`
	FanEnabled             bool `json:"fanEnabled"`

	Cycles        uint64 `json:"cycles"`
	Updates       uint64 `json:"updates"`
	SensorRetries uint64 `json:"sensorRetries"`

	SensorTemperatures map[string]int `json:"sensorTemperatures"`
	AvgSensorReadTime  time.Duration  `json:"avgSensorReadTime"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// subController is the per device state, only touched by the loop goroutine
type subController struct {
	device devices.Device
	curve  *curves.Curve

	lastApplied *int
	fanEnabled  bool
	duty        int
}

type Engine struct {
	interval   time.Duration
	hysteresis int
	stop       StopSignal
	debug      bool

	persistence persistence.Persistence
	sleep       func(time.Duration)

	sub *subController

	mu             sync.RWMutex
	snapshot       Snapshot
	sensorReadTime *rolling.PointPolicy
}

// NewEngine creates an engine that runs a control cycle every interval (in 1/10 s)
// until stop is signaled. Updates are suppressed while the temperature stays within
// hysteresis percent of the last applied value.
func NewEngine(interval int, hysteresis int, stop StopSignal, debug bool) (*Engine, error) {
	if interval < 0 || interval > MaxInterval {
		return nil, fmt.Errorf("interval %d out of range [0..%d]", interval, MaxInterval)
	}
	if hysteresis < 0 || hysteresis > MaxHysteresis {
		return nil, fmt.Errorf("hysteresis %d out of range [0..%d]", hysteresis, MaxHysteresis)
	}
	if stop == nil {
		return nil, errors.New("stop signal is required")
	}

	if debug {
		ui.Debug("Engine: interval=%d (1/10 s), hysteresis=%d%%", interval, hysteresis)
	}

	return &Engine{
		interval:       time.Duration(interval) * intervalUnit,
		hysteresis:     hysteresis,
		stop:           stop,
		debug:          debug,
		sleep:          time.Sleep,
		sensorReadTime: util.CreateRollingWindow(sensorReadTimeWindowSize),
		snapshot: Snapshot{
			State:              StateInitializing,
			StateStr:           StateInitializing.String(),
			SensorTemperatures: map[string]int{},
		},
	}, nil
}

// SetPersistence enables saving the last applied state after each update
func (e *Engine) SetPersistence(p persistence.Persistence) {
	e.persistence = p
}

// InitAmdGpu attaches an amdgpu device built from the given configuration
func (e *Engine) InitAmdGpu(config configuration.AmdGpuConfig) error {
	curve, err := curves.NewCurveFromConfig(config.Curve)
	if err != nil {
		return fmt.Errorf("invalid curve for %s: %w", config.ID, err)
	}
	return e.Attach(devices.NewAmdGpu(config), curve)
}

// Attach registers the device this engine controls. Only a single device is supported.
func (e *Engine) Attach(device devices.Device, curve *curves.Curve) error {
	if e.sub != nil {
		return ErrDeviceAlreadyExists
	}
	if device == nil || curve == nil {
		return errors.New("device and curve are required")
	}
	if len(device.GetSensors()) == 0 {
		return fmt.Errorf("device %s has no sensors", device.GetId())
	}

	if e.debug {
		for _, s := range device.GetSensors() {
			ui.Debug("Engine: %s sensor %s: %s", device.GetId(), s.GetId(), s.Source)
		}
		for _, p := range curve.Points() {
			ui.Debug("Engine: %s curve point: %d -> %d", device.GetId(), p.Temperature, p.Duty)
		}
	}

	e.sub = &subController{
		device: device,
		curve:  curve,
	}

	e.mu.Lock()
	e.snapshot.DeviceId = device.GetId()
	e.mu.Unlock()
	return nil
}

func (e *Engine) GetDeviceId() string {
	if e.sub == nil {
		return ""
	}
	return e.sub.device.GetId()
}

func (e *Engine) GetCurve() *curves.Curve {
	if e.sub == nil {
		return nil
	}
	return e.sub.curve
}

// Run drives the attached device until the stop signal is observed or an error occurs.
// The stop signal is checked once per cycle, before sleeping.
// Restoring automatic mode afterwards is the responsibility of the caller, see ResetDevices.
func (e *Engine) Run() (Result, error) {
	if e.sub == nil {
		return ResultInitError, ErrNoDevice
	}
	sub := e.sub

	e.setState(StateInitializing)
	result, err := e.initialize(sub)
	if err != nil {
		e.setState(StateStopped)
		return result, err
	}

	ui.Info("Starting control loop for %s", sub.device.GetId())
	e.setState(StateRunning)
	for !e.stop.Stopped() {
		e.sleep(e.interval)

		result, err := e.cycle(sub)
		if err != nil {
			e.setState(StateStopped)
			return result, err
		}
	}

	e.setState(StateDraining)
	ui.Info("Stopping control loop for %s", sub.device.GetId())
	e.setState(StateStopped)
	return ResultOk, nil
}

// ResetDevices returns control of the fan to the driver
func (e *Engine) ResetDevices() error {
	if e.sub == nil {
		return ErrNoDevice
	}
	err := e.sub.device.SetMode(devices.ControlModeAutomatic)
	if err != nil {
		logWriteError(err)
		return err
	}
	return nil
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	result := reprint.This(e.snapshot).(Snapshot)
	result.UpdatedAt = e.snapshot.UpdatedAt
	result.AvgSensorReadTime = time.Duration(util.GetWindowAvg(e.sensorReadTime))
	return result
}

// initialize switches the device to manual mode and enables its fan.
// Once manual mode is set, a failure is reported as ResultFanEnableError
// so the caller restores automatic mode.
func (e *Engine) initialize(sub *subController) (Result, error) {
	device := sub.device

	err := device.SetMode(devices.ControlModePWM)
	if err != nil {
		logWriteError(err)
		return ResultInitError, fmt.Errorf("cannot switch %s to manual mode: %w", device.GetId(), err)
	}
	err = device.SetEnabled(true)
	if err != nil {
		logWriteError(err)
		return ResultFanEnableError, fmt.Errorf("cannot enable fan of %s: %w", device.GetId(), err)
	}
	sub.fanEnabled = true

	e.mu.Lock()
	e.snapshot.FanEnabled = true
	e.mu.Unlock()
	return ResultOk, nil
}

func (e *Engine) cycle(sub *subController) (Result, error) {
	device := sub.device

	temperature, err := e.readSensors(sub)
	if err != nil {
		return ResultSensorReadError, err
	}

	if !ShouldUpdate(sub.lastApplied, temperature, e.hysteresis) {
		if e.debug {
			ui.Debug("Engine: %s temperature %d within hysteresis, skipping", device.GetId(), temperature)
		}
		e.finishCycle(sub, false)
		return ResultOk, nil
	}
	sub.lastApplied = &temperature

	duty := sub.curve.Evaluate(temperature)
	enabled := duty > curves.MinDutyValue
	if e.debug {
		ui.Debug("Engine: %s temperature %d -> duty %d", device.GetId(), temperature, duty)
	}

	if enabled != sub.fanEnabled {
		err = device.SetEnabled(enabled)
		if err != nil {
			logWriteError(err)
			return ResultFanEnableError, err
		}
		sub.fanEnabled = enabled
	}

	if enabled {
		err = device.SetDuty(duty)
		if err != nil {
			logWriteError(err)
			return ResultDutyWriteError, err
		}
	}
	sub.duty = duty

	e.finishCycle(sub, true)
	e.persistState(sub)
	return ResultOk, nil
}

// readSensors returns the highest temperature of all sensors of the device
func (e *Engine) readSensors(sub *subController) (int, error) {
	highest := 0
	for idx, s := range sub.device.GetSensors() {
		temperature, err := e.readSensor(s)
		if err != nil {
			return 0, err
		}
		if idx == 0 || temperature > highest {
			highest = temperature
		}
	}
	return highest, nil
}

// readSensor reads a single sensor, retrying transient failures immediately
func (e *Engine) readSensor(s *sensors.Sensor) (int, error) {
	retries := 0
	for {
		start := time.Now()
		result := s.Read()
		elapsed := time.Since(start)

		e.mu.Lock()
		e.sensorReadTime.Append(float64(elapsed))
		e.mu.Unlock()

		switch result.Outcome {
		case sensors.OutcomeOk:
			e.mu.Lock()
			e.snapshot.SensorTemperatures[s.GetId()] = result.Temperature
			e.mu.Unlock()
			return result.Temperature, nil
		case sensors.OutcomeRetry:
			if retries >= sensors.MaxReadRetries {
				return 0, fmt.Errorf("giving up after %d retries: %w", retries, result.Err)
			}
			retries++
			e.mu.Lock()
			e.snapshot.SensorRetries++
			e.mu.Unlock()
			if e.debug {
				ui.Debug("Engine: retrying sensor %s (%d/%d): %v", s.GetId(), retries, sensors.MaxReadRetries, result.Err)
			}
		default:
			return 0, result.Err
		}
	}
}

func (e *Engine) finishCycle(sub *subController, updated bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.snapshot.Cycles++
	if !updated {
		return
	}
	e.snapshot.Updates++
	temperature := *sub.lastApplied
	e.snapshot.LastAppliedTemperature = &temperature
	e.snapshot.Duty = sub.duty
	e.snapshot.FanEnabled = sub.fanEnabled
	e.snapshot.UpdatedAt = time.Now()
}

func (e *Engine) persistState(sub *subController) {
	if e.persistence == nil {
		return
	}
	err := e.persistence.SaveDeviceState(sub.device.GetId(), persistence.DeviceState{
		Temperature: *sub.lastApplied,
		Duty:        sub.duty,
		FanEnabled:  sub.fanEnabled,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		ui.Warning("Unable to save state of %s: %v", sub.device.GetId(), err)
	}
}

func (e *Engine) setState(state State) {
	e.mu.Lock()
	e.snapshot.State = state
	e.snapshot.StateStr = state.String()
	e.mu.Unlock()

	if e.debug {
		ui.Debug("Engine: state %s", state)
	}
}

func logWriteError(err error) {
	ui.Error("%v", err)
	if devices.IsPermissionDenied(err) {
		ui.Error("Missing permissions to control the fan, please run gpufan2go as root")
	}
}
