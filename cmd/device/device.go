package device

import (
	"github.com/markusressel/gpufan2go/cmd/global"
	"github.com/markusressel/gpufan2go/internal/devices"
	"github.com/markusressel/gpufan2go/internal/persistence"
	"github.com/markusressel/gpufan2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "device",
	Short: "Device related commands",
	Long:  ``,
}

func getDevice() (devices.Device, persistence.Persistence) {
	config := global.LoadValidatedConfig()
	if config.AmdGpu == nil {
		ui.Fatal("No device configured")
	}
	return devices.NewAmdGpu(*config.AmdGpu), persistence.NewPersistence(config.DbPath, persistence.DefaultLockTimeout)
}
