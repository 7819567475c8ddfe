package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-ihex/ihex"
)

// Config represents the ihex configuration file (~/.config/ihex/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Variant is the default output variant for convert (ihx8 or ihx16)
	Variant string `yaml:"variant"`

	// LineLength is the default number of data bytes per written record
	LineLength *int `yaml:"line_length"`

	// Pad is the default fill byte for bin
	Pad *int `yaml:"pad"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ihex", "config.yaml")
}

// LoadConfig reads the config file. A missing file yields a zero Config.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Variant != "" {
		if _, err := ihex.ParseVariant(c.Variant); err != nil {
			return err
		}
	}
	if c.LineLength != nil && (*c.LineLength < 1 || *c.LineLength > ihex.MaxDataLength) {
		return fmt.Errorf("line_length %d out of range 1-%d", *c.LineLength, ihex.MaxDataLength)
	}
	if c.Pad != nil && (*c.Pad < 0 || *c.Pad > 0xFF) {
		return fmt.Errorf("pad %d is not a byte value", *c.Pad)
	}
	return nil
}

// applyLogConfig applies config file defaults to the logging flags
// when they were not set explicitly.
func applyLogConfig(c *cli.Command, cfg Config, level, format *string) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		*level = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		*format = cfg.LogFormat
	}
}

type configKey struct{}

func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) Config {
	cfg, _ := ctx.Value(configKey{}).(Config)
	return cfg
}
