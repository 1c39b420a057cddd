package statistics

import (
	"github.com/markusressel/gpufan2go/internal/controller"
	"github.com/markusressel/gpufan2go/internal/util"
	"github.com/prometheus/client_golang/prometheus"
)

const engineSubsystem = "engine"

type EngineCollector struct {
	engines []*controller.Engine

	state             *prometheus.Desc
	temperature       *prometheus.Desc
	duty              *prometheus.Desc
	fanEnabled        *prometheus.Desc
	cycles            *prometheus.Desc
	updates           *prometheus.Desc
	sensorRetries     *prometheus.Desc
	sensorTemperature *prometheus.Desc
	sensorReadTime    *prometheus.Desc
}

func NewEngineCollector(engines []*controller.Engine) *EngineCollector {
	return &EngineCollector{
		engines: engines,
		state: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "state"),
			"Current state of the control loop (0=initializing, 1=running, 2=draining, 3=stopped)",
			[]string{"id"}, nil,
		),
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "temperature_celsius"),
			"Temperature the current duty was calculated for",
			[]string{"id"}, nil,
		),
		duty: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "duty"),
			"Current duty of the fan in native pwm units",
			[]string{"id"}, nil,
		),
		fanEnabled: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "fan_enabled"),
			"Whether the fan is currently enabled",
			[]string{"id"}, nil,
		),
		cycles: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "cycles_total"),
			"Number of completed control cycles",
			[]string{"id"}, nil,
		),
		updates: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "updates_total"),
			"Number of control cycles that passed the hysteresis check",
			[]string{"id"}, nil,
		),
		sensorRetries: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "sensor_retries_total"),
			"Number of retried sensor reads",
			[]string{"id"}, nil,
		),
		sensorTemperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, "sensor", "temperature_celsius"),
			"Last temperature read from the sensor",
			[]string{"device", "id"}, nil,
		),
		sensorReadTime: prometheus.NewDesc(prometheus.BuildFQName(namespace, "sensor", "read_duration_seconds"),
			"Average duration of recent sensor reads",
			[]string{"device"}, nil,
		),
	}
}

func (collector *EngineCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.state
	ch <- collector.temperature
	ch <- collector.duty
	ch <- collector.fanEnabled
	ch <- collector.cycles
	ch <- collector.updates
	ch <- collector.sensorRetries
	ch <- collector.sensorTemperature
	ch <- collector.sensorReadTime
}

// Collect implements required collect function for all prometheus collectors
func (collector *EngineCollector) Collect(ch chan<- prometheus.Metric) {
	for _, engine := range collector.engines {
		snapshot := engine.Snapshot()
		id := snapshot.DeviceId

		ch <- prometheus.MustNewConstMetric(collector.state, prometheus.GaugeValue, float64(snapshot.State), id)
		if snapshot.LastAppliedTemperature != nil {
			ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, float64(*snapshot.LastAppliedTemperature)/10, id)
		}
		ch <- prometheus.MustNewConstMetric(collector.duty, prometheus.GaugeValue, float64(snapshot.Duty), id)
		ch <- prometheus.MustNewConstMetric(collector.fanEnabled, prometheus.GaugeValue, boolToFloat(snapshot.FanEnabled), id)
		ch <- prometheus.MustNewConstMetric(collector.cycles, prometheus.CounterValue, float64(snapshot.Cycles), id)
		ch <- prometheus.MustNewConstMetric(collector.updates, prometheus.CounterValue, float64(snapshot.Updates), id)
		ch <- prometheus.MustNewConstMetric(collector.sensorRetries, prometheus.CounterValue, float64(snapshot.SensorRetries), id)
		for _, sensorId := range util.SortedKeys(snapshot.SensorTemperatures) {
			value := snapshot.SensorTemperatures[sensorId]
			ch <- prometheus.MustNewConstMetric(collector.sensorTemperature, prometheus.GaugeValue, float64(value)/10, id, sensorId)
		}
		ch <- prometheus.MustNewConstMetric(collector.sensorReadTime, prometheus.GaugeValue, snapshot.AvgSensorReadTime.Seconds(), id)
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
