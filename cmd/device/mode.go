package device

import (
	"fmt"

	"github.com/markusressel/gpufan2go/internal/devices"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var modeCmd = &cobra.Command{
	Use:   "mode [auto|manual]",
	Short: "Get/Set the current control mode of the device",
	Long:  ``,
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		device, _ := getDevice()
		return runMode(device, args)
	},
}

func runMode(device devices.Device, args []string) error {
	if len(args) > 0 {
		mode, err := devices.ParseControlMode(args[0])
		if err != nil {
			return err
		}
		if err = device.SetMode(mode); err != nil {
			return err
		}
	}

	mode, err := device.GetMode()
	if err != nil {
		return err
	}
	fmt.Println(mode)
	return nil
}

func init() {
	Command.AddCommand(modeCmd)
}
