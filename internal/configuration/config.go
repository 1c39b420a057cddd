package configuration

import (
	"os"

	"github.com/markusressel/gpufan2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	DefaultConfigPath = "/etc/gpufan2go/gpufan2go.yaml"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	// UpdateInterval is the time between two control cycles, in 1/10 seconds
	UpdateInterval int `json:"updateInterval"`
	// Hysteresis is the relative temperature change (in percent of the last
	// applied temperature) required to recalculate the fan speed
	Hysteresis int `json:"hysteresis"`

	AmdGpu *AmdGpuConfig `json:"amdgpu"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("gpufan2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/gpufan2go/")
	}

	viper.SetEnvPrefix("gpufan2go")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/gpufan2go/gpufan2go.db")
	viper.SetDefault("UpdateInterval", 20)
	viper.SetDefault("Hysteresis", 5)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)
}

// DetectAndReadConfigFile detects the path of the first existing config file
// and reads it, returning the path that was used
func DetectAndReadConfigFile() string {
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// config file is required, so we fail here
			ui.Fatal("No config file found, create one using 'gpufan2go config init'")
		}
		ui.Fatal("Error reading config file, %s", err)
	}
	return viper.ConfigFileUsed()
}

// LoadConfig populates CurrentConfig from viper.
// Only valid _after_ DetectAndReadConfigFile()
func LoadConfig() {
	CurrentConfig = Configuration{}
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			curvePointHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
