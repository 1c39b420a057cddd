package sensor

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/markusressel/gpufan2go/cmd/global"
	"github.com/markusressel/gpufan2go/internal/configuration"
	"github.com/markusressel/gpufan2go/internal/sensors"
	"github.com/markusressel/gpufan2go/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var sensorId string

var Command = &cobra.Command{
	Use:   "sensor",
	Short: "Read the configured temperature sensors once",
	Long: `Reads all configured sensors and prints their values.
With --id only the temperature (in 1/10 °C) of the given sensor is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(sensorId) > 0 {
			pterm.DisableOutput()
		}

		config := global.LoadDeviceConfig()
		sensorList, err := getSensors(config, sensorId)
		if err != nil {
			return err
		}

		if len(sensorId) > 0 {
			result := sensorList[0].Read()
			if result.Outcome != sensors.OutcomeOk {
				return result.Err
			}
			fmt.Printf("%d", result.Temperature)
			return nil
		}

		var rows [][]string
		for _, s := range sensorList {
			rows = append(rows, sensorRow(s, s.Read()))
		}
		tab := table.Table{
			Headers: []string{"Sensor", "Path", "Raw", "Temperature (°C)", "Result"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		if err := tab.WriteTable(&buf, global.TableConfig()); err != nil {
			return err
		}
		ui.Printfln("%s", buf.String())
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		"Sensor ID as specified in the config",
	)
}

func getSensors(config configuration.AmdGpuConfig, id string) ([]*sensors.Sensor, error) {
	var availableSensorIds []string
	var result []*sensors.Sensor
	for _, sensorConfig := range config.Sensors {
		availableSensorIds = append(availableSensorIds, sensorConfig.ID)
		if len(id) <= 0 || sensorConfig.ID == id {
			result = append(result, sensors.NewSensor(sensorConfig))
		}
	}
	if len(result) <= 0 {
		return nil, fmt.Errorf("no sensor with id found: %s, options: %s", id, availableSensorIds)
	}
	return result, nil
}

func sensorRow(s *sensors.Sensor, result sensors.Result) []string {
	raw := "N/A"
	temperature := "N/A"
	status := result.Outcome.String()
	if result.Outcome == sensors.OutcomeOk {
		raw = strconv.FormatInt(s.RawValue, 10)
		temperature = fmt.Sprintf("%.1f", float64(result.Temperature)/10)
	} else if result.Err != nil {
		status = fmt.Sprintf("%s: %v", status, result.Err)
	}
	return []string{s.GetId(), s.Source.String(), raw, temperature, status}
}
