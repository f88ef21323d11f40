// Package config loads the command's settings from cachestore.yaml and
// CACHESTORE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/unkn0wn-root/cachestore"
)

const (
	BackendMemcache = "memcache"
	BackendRedis    = "redis"

	DefaultRedisPort = 6379
)

type Config struct {
	Backend  string        `mapstructure:"backend"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Prefix   string        `mapstructure:"prefix"`
	Timeout  time.Duration `mapstructure:"timeout"`
	LogLevel string        `mapstructure:"log_level"`
	Redis    struct {
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
}

// Store returns the library-level connection settings, defaults applied.
func (c *Config) Store() cachestore.Config {
	return cachestore.DefaultConfig().Merge(cachestore.Config{
		Host:   c.Host,
		Port:   c.Port,
		Prefix: c.Prefix,
	})
}

// Load reads the config file (when present) from the working directory,
// ./config or the explicit path, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("cachestore")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("CACHESTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := cachestore.DefaultConfig()
	v.SetDefault("backend", BackendMemcache)
	v.SetDefault("host", def.Host)
	v.SetDefault("port", 0) // resolved per backend after unmarshal
	v.SetDefault("prefix", "")
	v.SetDefault("timeout", "1s")
	v.SetDefault("log_level", "info")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort(cfg.Backend)
	}
	return &cfg, nil
}

func defaultPort(backend string) int {
	if backend == BackendRedis {
		return DefaultRedisPort
	}
	return cachestore.DefaultPort
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendMemcache, BackendRedis:
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	return nil
}
