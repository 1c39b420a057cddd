package global

import (
	"github.com/markusressel/gpufan2go/internal/configuration"
	"github.com/markusressel/gpufan2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// LoadValidatedConfig reads, parses and validates the configuration file, exiting on failure
func LoadValidatedConfig() *configuration.Configuration {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	if err := configuration.Validate(); err != nil {
		ui.Fatal("Config validation failed: %v", err)
	}
	return &configuration.CurrentConfig
}

// LoadDeviceConfig returns the device configuration, exiting if none is configured
func LoadDeviceConfig() configuration.AmdGpuConfig {
	config := LoadValidatedConfig()
	if config.AmdGpu == nil {
		ui.Fatal("No device configured")
	}
	return *config.AmdGpu
}

func TableConfig() *table.Config {
	return &table.Config{
		ShowIndex:       false,
		Color:           !NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	}
}
