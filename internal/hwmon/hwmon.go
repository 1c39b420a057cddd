package hwmon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/markusressel/gpufan2go/internal/configuration"
	"github.com/md14454/gosensors"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5

	AmdGpuPrefix = "amdgpu"

	pwmFile       = "pwm1"
	pwmEnableFile = "pwm1_enable"
	fanEnableFile = "fan1_enable"
)

type TempSensor struct {
	Label string
	Index int
	// Input is the path of the tempX_input file
	Input string
	// Value in °C at the time of detection
	Value float64
}

type Chip struct {
	Name   string
	Prefix string
	Path   string

	Sensors []*TempSensor

	// control files, empty if the chip doesn't provide them
	PwmPath    string
	ModePath   string
	EnablePath string
}

// IsAmdGpu checks whether the chip is driven by amdgpu
func (c *Chip) IsAmdGpu() bool {
	return c.Prefix == AmdGpuPrefix
}

// IsControllable checks whether the chip offers all control files needed to drive its fan
func (c *Chip) IsControllable() bool {
	return len(c.PwmPath) > 0 && len(c.ModePath) > 0 && len(c.EnablePath) > 0
}

// ToConfig creates a device configuration for this chip, the curve is left empty
func (c *Chip) ToConfig() configuration.AmdGpuConfig {
	config := configuration.AmdGpuConfig{
		ID:         c.Name,
		ModePath:   c.ModePath,
		EnablePath: c.EnablePath,
		PwmPath:    c.PwmPath,
	}
	for _, sensor := range c.Sensors {
		config.Sensors = append(config.Sensors, configuration.SensorConfig{
			ID:   sensorId(sensor),
			Path: sensor.Input,
		})
	}
	return config
}

// GetChips returns all chips with temperature sensors known to libsensors
func GetChips() []*Chip {
	gosensors.Init()
	defer gosensors.Cleanup()
	chips := gosensors.GetDetectedChips()

	var list []*Chip
	for i := 0; i < len(chips); i++ {
		chip := chips[i]

		sensorList := getTempSensors(chip)
		if len(sensorList) <= 0 {
			continue
		}

		c := &Chip{
			Name:    computeIdentifier(chip),
			Prefix:  chip.Prefix,
			Path:    chip.Path,
			Sensors: sensorList,
		}
		findControlFiles(c)
		list = append(list, c)
	}

	return list
}

// FilterAmdGpus returns the amdgpu chips of the given list
func FilterAmdGpus(chips []*Chip) []*Chip {
	var result []*Chip
	for _, chip := range chips {
		if chip.IsAmdGpu() {
			result = append(result, chip)
		}
	}
	return result
}

func getTempSensors(chip gosensors.Chip) []*TempSensor {
	var sensorList []*TempSensor

	features := chip.GetFeatures()
	for j := 0; j < len(features); j++ {
		feature := features[j]
		if feature.Type != gosensors.FeatureTypeTemp {
			continue
		}

		for _, subFeature := range feature.GetSubFeatures() {
			if subFeature.Type != gosensors.SubFeatureTypeTempInput {
				continue
			}
			sensorList = append(sensorList, &TempSensor{
				Label: getLabel(chip.Path, subFeature.Name),
				Index: len(sensorList) + 1,
				Input: filepath.Join(chip.Path, subFeature.Name),
				Value: subFeature.GetValue(),
			})
			break
		}
	}

	return sensorList
}

func findControlFiles(c *Chip) {
	if path := filepath.Join(c.Path, pwmFile); fileExists(path) {
		c.PwmPath = path
	}
	if path := filepath.Join(c.Path, pwmEnableFile); fileExists(path) {
		c.ModePath = path
	}
	if path := filepath.Join(c.Path, fanEnableFile); fileExists(path) {
		c.EnablePath = path
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// getLabel read the label of an input of a device
func getLabel(devicePath string, input string) string {
	labelPath := strings.TrimSuffix(filepath.Join(devicePath, input), "input") + "label"

	content, _ := os.ReadFile(labelPath)
	label := strings.TrimSpace(string(content))
	if len(label) <= 0 {
		label = strings.TrimSuffix(input, "_input")
	}
	return label
}

func sensorId(sensor *TempSensor) string {
	id := strings.ToLower(strings.TrimSpace(sensor.Label))
	id = strings.ReplaceAll(id, " ", "_")
	if len(id) <= 0 {
		id = fmt.Sprintf("temp%d", sensor.Index)
	}
	return id
}

func computeIdentifier(chip gosensors.Chip) (name string) {
	name = chip.Prefix
	if len(name) <= 0 {
		_, name = filepath.Split(chip.Path)
	}

	switch chip.Bus.Type {
	case BusTypeIsa:
		return fmt.Sprintf("%s-isa-%04x", name, chip.Addr)
	case BusTypePci:
		return fmt.Sprintf("%s-pci-%04x", name, chip.Addr)
	case BusTypeAcpi:
		return fmt.Sprintf("%s-acpi-%d", name, chip.Bus.Nr)
	}
	return name
}
