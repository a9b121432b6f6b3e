package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.AWS.Region == "" {
		cfg.AWS.Region = "eu-west-1"
	}
	if cfg.AWS.VPCCIDR == "" {
		cfg.AWS.VPCCIDR = "192.168.100.0/24"
	}
	if cfg.AWS.SubnetCIDR == "" {
		cfg.AWS.SubnetCIDR = "192.168.100.0/25"
	}
	if cfg.Workspace.Prefix == "" {
		cfg.Workspace.Prefix = "rigcheck"
	}
	if cfg.Nodes.InitialDiskCapacityGiB == 0 {
		cfg.Nodes.InitialDiskCapacityGiB = 10
	}
}
