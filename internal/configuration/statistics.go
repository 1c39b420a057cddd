package configuration

import "fmt"

// StatisticsConfig configures the prometheus exporter, which listens on all interfaces
type StatisticsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Port    int  `json:"port" yaml:"port"`
}

func (c StatisticsConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}
