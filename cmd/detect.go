package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/markusressel/gpufan2go/cmd/global"
	"github.com/markusressel/gpufan2go/internal/configuration"
	"github.com/markusressel/gpufan2go/internal/hwmon"
	"github.com/markusressel/gpufan2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"gopkg.in/yaml.v3"
)

var detectAll bool

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Detects all amdgpu devices and their sensors and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		chips := hwmon.GetChips()
		if !detectAll {
			chips = hwmon.FilterAmdGpus(chips)
		}
		if len(chips) <= 0 {
			ui.Warning("No devices found")
			return
		}

		tableConfig := global.TableConfig()
		for _, chip := range chips {
			ui.Printfln("> %s (%s)", chip.Name, chip.Path)

			var sensorRows [][]string
			for _, sensor := range chip.Sensors {
				_, file := filepath.Split(sensor.Input)
				sensorRows = append(sensorRows, []string{
					"", strconv.Itoa(sensor.Index), fmt.Sprintf("%s (%s)", sensor.Label, file), fmt.Sprintf("%.1f", sensor.Value),
				})
			}
			sensorTable := table.Table{
				Headers: []string{"Sensors", "Index", "Label", "Value"},
				Rows:    sensorRows,
			}

			controlTable := table.Table{
				Headers: []string{"Control", "File"},
				Rows: [][]string{
					{"Mode", orNotAvailable(chip.ModePath)},
					{"Enable", orNotAvailable(chip.EnablePath)},
					{"PWM", orNotAvailable(chip.PwmPath)},
				},
			}

			for _, t := range []table.Table{sensorTable, controlTable} {
				var buf bytes.Buffer
				if err := t.WriteTable(&buf, tableConfig); err != nil {
					ui.Fatal("Error printing table: %v", err)
				}
				ui.Printf("%s", buf.String())
			}

			if chip.IsAmdGpu() && chip.IsControllable() {
				snippet, err := configSnippet(chip.ToConfig())
				if err != nil {
					ui.Fatal("Error printing config: %v", err)
				}
				ui.Printfln("Config:")
				ui.Printfln(snippet)
			}
			ui.Printfln("")
		}
	},
}

func orNotAvailable(path string) string {
	if len(path) <= 0 {
		return "N/A"
	}
	return path
}

func configSnippet(config configuration.AmdGpuConfig) (string, error) {
	data, err := yaml.Marshal(map[string]configuration.AmdGpuConfig{
		"amdgpu": config,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	detectCmd.Flags().BoolVarP(&detectAll, "all", "a", false, "Show all hwmon chips, not only amdgpu devices")
	rootCmd.AddCommand(detectCmd)
}
