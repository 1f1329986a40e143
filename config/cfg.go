// Package config holds program configuration and logging setup.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

//go:embed config.yaml
var defaultConfig []byte

type (
	LoggingConfig struct {
		Level string `yaml:"level"` // none, normal, debug
	}

	GeneratorConfig struct {
		Format  string `yaml:"format"`  // list, go
		Package string `yaml:"package"` // package name for generated Go source
	}

	Config struct {
		Version   int             `yaml:"version"`
		Logging   LoggingConfig   `yaml:"logging"`
		Generator GeneratorConfig `yaml:"generator"`
	}
)

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported configuration version %d", cfg.Version)
	}
	switch cfg.Logging.Level {
	case "", "none", "normal", "debug":
	default:
		return fmt.Errorf("unknown logging level '%s'", cfg.Logging.Level)
	}
	switch cfg.Generator.Format {
	case "", "list", "go":
	default:
		return fmt.Errorf("unknown generator format '%s'", cfg.Generator.Format)
	}
	return nil
}

// LoadConfiguration reads configuration from the file at the given path,
// superimposing its values on top of embedded defaults. An empty path returns
// the defaults.
func LoadConfiguration(path string) (*Config, error) {
	cfg, err := unmarshalConfig(defaultConfig, &Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	if len(path) > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if cfg, err = unmarshalConfig(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to process configuration file: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Prepare returns the default embedded configuration.
func Prepare() ([]byte, error) {
	return defaultConfig, nil
}

// Dump serializes the active configuration to YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
