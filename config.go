package cachestore

import (
	"net"
	"strconv"
)

const (
	DefaultHost = "localhost"
	DefaultPort = 11211
)

// Config is the connection surface callers usually configure.
type Config struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	Prefix string `mapstructure:"prefix"`
}

func DefaultConfig() Config {
	return Config{Host: DefaultHost, Port: DefaultPort}
}

// Merge returns c with every non-zero field of override applied.
// An empty Prefix in override keeps c's prefix.
func (c Config) Merge(override Config) Config {
	return Config{
		Host:   coalesce(override.Host, c.Host),
		Port:   coalesce(override.Port, c.Port),
		Prefix: coalesce(override.Prefix, c.Prefix),
	}
}

// Addr is host:port, with defaults filled in.
func (c Config) Addr() string {
	host := coalesce(c.Host, DefaultHost)
	port := coalesce(c.Port, DefaultPort)
	return net.JoinHostPort(host, strconv.Itoa(port))
}
