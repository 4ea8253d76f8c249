// Package config holds leasectl settings: defaults, an optional YAML file
// and LANDLEASE_* environment variables. Command-line flags are applied by
// the cli package on top of the loaded value.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for leasectl.
//
// Fields:
//   - ServerEndpointAddr: host:port of the gRPC endpoint.
//   - AccessToken: JWT sent as access_token metadata; empty sends none.
//   - Timeout: per-command deadline.
//   - Output: table, json or yaml; empty picks table on a terminal.
type Config struct {
	ServerEndpointAddr string        `yaml:"server"`
	AccessToken        string        `yaml:"access_token"`
	Timeout            time.Duration `yaml:"timeout"`
	Output             string        `yaml:"output"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.Timeout = 10 * time.Second
}

// Load applies defaults, then the YAML file at path (skipped when empty),
// then the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path != "" {
		if err := parseYAML(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func parseEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("LANDLEASE_SERVER"); ok {
		cfg.ServerEndpointAddr = v
	}
	if v, ok := os.LookupEnv("LANDLEASE_TOKEN"); ok {
		cfg.AccessToken = v
	}
	if v, ok := os.LookupEnv("LANDLEASE_OUTPUT"); ok {
		cfg.Output = v
	}
	if v, ok := os.LookupEnv("LANDLEASE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LANDLEASE_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	return nil
}
