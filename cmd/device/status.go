package device

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/markusressel/gpufan2go/cmd/global"
	"github.com/markusressel/gpufan2go/internal/curves"
	"github.com/markusressel/gpufan2go/internal/devices"
	"github.com/markusressel/gpufan2go/internal/persistence"
	"github.com/markusressel/gpufan2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current mode and the last fan state applied by the daemon",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		device, pers := getDevice()
		rows, err := statusRows(device, pers)
		if err != nil {
			return err
		}

		tab := table.Table{
			Headers: []string{device.GetId(), ""},
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

func statusRows(device devices.Device, pers persistence.Persistence) ([][]string, error) {
	modeText := "N/A"
	mode, err := device.GetMode()
	if err == nil {
		modeText = mode.String()
	}
	rows := [][]string{
		{"Mode", modeText},
	}

	state, err := pers.LoadDeviceState(device.GetId())
	if errors.Is(err, fs.ErrNotExist) {
		return append(rows, []string{"Last state", "none"}), nil
	}
	if err != nil {
		return nil, err
	}

	return append(rows,
		[]string{"Temperature (°C)", fmt.Sprintf("%.1f", float64(state.Temperature)/10)},
		[]string{"Duty", strconv.Itoa(state.Duty)},
		[]string{"Speed (%)", fmt.Sprintf("%.1f", curves.DutyToPercent(state.Duty))},
		[]string{"Fan enabled", strconv.FormatBool(state.FanEnabled)},
		[]string{"Updated", state.UpdatedAt.Format(time.RFC3339)},
	), nil
}

func init() {
	Command.AddCommand(statusCmd)
}
