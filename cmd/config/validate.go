package config

import (
	"fmt"

	"github.com/markusressel/gpufan2go/internal/configuration"
	"github.com/markusressel/gpufan2go/internal/curves"
	"github.com/markusressel/gpufan2go/internal/ui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Checks the device, sensor and curve settings of the configuration file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		configPath := configuration.DetectAndReadConfigFile()
		configuration.LoadConfig()

		summary, err := checkConfig()
		if err != nil {
			ui.Fatal("%s is invalid: %v", configPath, err)
		}
		ui.Success("%s: %s", configPath, summary)
	},
}

// checkConfig validates the loaded configuration and builds the curve the daemon
// would apply, returning a one line description of the controlled device.
func checkConfig() (string, error) {
	if err := configuration.Validate(); err != nil {
		return "", err
	}
	config := configuration.CurrentConfig
	device := config.AmdGpu

	curve, err := curves.NewCurveFromConfig(device.Curve)
	if err != nil {
		return "", fmt.Errorf("amdgpu %s: %w", device.ID, err)
	}

	zeroFan := ""
	if curve.UsesZeroFanMode() {
		zeroFan = ", zero-fan mode"
	}
	return fmt.Sprintf("amdgpu %s with %d sensor(s) and %d curve points%s, update every %.1fs, hysteresis %d%%",
		device.ID, len(device.Sensors), len(curve.Points()), zeroFan,
		float64(config.UpdateInterval)/10, config.Hysteresis,
	), nil
}

func init() {
	Command.AddCommand(validateCmd)
}
