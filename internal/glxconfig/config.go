// Package glxconfig loads the optional YAML configuration file merged
// beneath environment variables and CLI flags.
package glxconfig

import (
	"os"

	"gopkg.in/yaml.v3"
)

// There is no default metrics address: the metrics HTTP server is off unless
// an address is given by flag or config file.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultMaxStack  = 256
)

// Config is the VM and ambient-stack tuning surface.
type Config struct {
	LogLevel     string `yaml:"logLevel"`
	LogFormat    string `yaml:"logFormat"`
	MaxStack     int    `yaml:"maxStack"`
	TraceEnabled bool   `yaml:"traceEnabled"`
	MetricsAddr  string `yaml:"metricsAddr"`
}

// Default returns the zero-config baseline.
func Default() Config {
	return Config{
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		MaxStack:  DefaultMaxStack,
	}
}

// Load reads path as YAML over the defaults. A missing path is not an error;
// Default() is returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overlays GLOX_LOG_LEVEL / GLOX_LOG_FORMAT when set, and enables
// tracing when GLOX_TRACE is "1".
func (c *Config) ApplyEnv() {
	if v := os.Getenv("GLOX_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GLOX_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if os.Getenv("GLOX_TRACE") == "1" {
		c.TraceEnabled = true
	}
}
