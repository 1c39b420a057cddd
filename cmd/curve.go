package cmd

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/gpufan2go/cmd/global"
	"github.com/markusressel/gpufan2go/internal/curves"
	"github.com/markusressel/gpufan2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

// temperature step between two graph samples, in 1/10 °C
const curveGraphStep = 10

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the configured fan curve to console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := global.LoadDeviceConfig()

		curve, err := curves.NewCurveFromConfig(config.Curve)
		if err != nil {
			return err
		}

		ui.Printfln(config.ID)
		var rows [][]string
		for idx, point := range curve.Points() {
			rows = append(rows, []string{
				strconv.Itoa(idx + 1),
				formatTemperature(point.Temperature),
				fmt.Sprintf("%.1f", curves.DutyToPercent(point.Duty)),
				strconv.Itoa(point.Duty),
			})
		}
		tab := table.Table{
			Headers: []string{"Point", "Temperature (°C)", "Speed (%)", "Duty"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		if err := tab.WriteTable(&buf, global.TableConfig()); err != nil {
			return err
		}
		ui.Printfln("%s", buf.String())

		if curve.UsesZeroFanMode() {
			ui.Printfln("Fan is turned off below %s °C", formatTemperature(curve.Points()[1].Temperature))
		}

		values := sampleCurve(curve)
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption("Speed (%) / Temperature"))
		ui.Printfln(graph)
		return nil
	},
}

// sampleCurve evaluates the curve from 0 °C up to a bit above the last point
func sampleCurve(curve *curves.Curve) []float64 {
	points := curve.Points()
	last := points[len(points)-1].Temperature

	var values []float64
	for temperature := 0; temperature <= last+10*curveGraphStep; temperature += curveGraphStep {
		values = append(values, curves.DutyToPercent(curve.Evaluate(temperature)))
	}
	return values
}

func formatTemperature(temperature int) string {
	return fmt.Sprintf("%.1f", float64(temperature)/10)
}

func init() {
	rootCmd.AddCommand(curveCmd)
}
