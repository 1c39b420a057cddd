package configuration

import (
	"net"
	"strconv"
)

// ApiConfig configures the read-only REST api exposing the device state
type ApiConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Host    string `json:"host" yaml:"host"`
	Port    int    `json:"port" yaml:"port"`
}

// Address to listen on, IPv6 hosts are bracketed
func (c ApiConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
