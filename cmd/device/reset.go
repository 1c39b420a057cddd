package device

import (
	"errors"
	"io/fs"

	"github.com/markusressel/gpufan2go/internal/devices"
	"github.com/markusressel/gpufan2go/internal/persistence"
	"github.com/markusressel/gpufan2go/internal/ui"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Give control of the fan back to the driver and forget the last applied state",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		device, pers := getDevice()
		if err := runReset(device, pers); err != nil {
			return err
		}
		ui.Success("Device %s is in automatic mode again", device.GetId())
		return nil
	},
}

func runReset(device devices.Device, pers persistence.Persistence) error {
	err := device.SetMode(devices.ControlModeAutomatic)
	if err != nil {
		if devices.IsPermissionDenied(err) {
			ui.Error("Missing permissions to control the fan, please run gpufan2go as root")
		}
		return err
	}

	err = pers.DeleteDeviceState(device.GetId())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		ui.Warning("Unable to delete saved state of %s: %v", device.GetId(), err)
	}
	return nil
}

func init() {
	Command.AddCommand(resetCmd)
}
