package config

import (
	"fmt"
	"os"

	"github.com/markusressel/gpufan2go/cmd/global"
	"github.com/markusressel/gpufan2go/internal/configuration"
	"github.com/markusressel/gpufan2go/internal/ui"
	"github.com/markusressel/gpufan2go/internal/util"
	"github.com/spf13/cobra"
)

var overwrite bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes an example configuration file",
	Long: `Writes an example configuration file to the path given with -c,
or /etc/gpufan2go/gpufan2go.yaml. Use 'gpufan2go detect' to find the
correct sysfs paths of your device.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := global.CfgFile
		if len(path) <= 0 {
			path = configuration.DefaultConfigPath
		}
		err := writeExampleConfig(path, overwrite)
		if err != nil {
			return err
		}
		ui.Success("Example configuration written to %s", path)
		return nil
	},
}

func writeExampleConfig(path string, overwrite bool) error {
	path, err := util.ExpandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("config file %s already exists, use --force to overwrite it", path)
	}
	return util.WriteFileAtomic(path, []byte(configuration.ExampleConfig))
}

func init() {
	initCmd.Flags().BoolVarP(&overwrite, "force", "f", false, "Overwrite an existing config file")
	Command.AddCommand(initCmd)
}
