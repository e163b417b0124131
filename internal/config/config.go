package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/mypykaizen/internal/logging"
	"gopkg.in/yaml.v3"
)

// FileName is the optional config file looked up in the working directory.
const FileName = ".mypykaizen.yaml"

// Color modes for the gate report.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the mypykaizen configuration.
type Config struct {
	Checker        []string `yaml:"checker"`
	VersionCommand []string `yaml:"version_command,omitempty"`
	LogLevel       string   `yaml:"log_level"`
	LogFormat      string   `yaml:"log_format"`
	Color          string   `yaml:"color"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Checker:   []string{"mypy"},
		LogLevel:  "warn",
		LogFormat: "text",
		Color:     ColorAuto,
	}
}

// LoadFile loads config from dir/FileName. Returns zero Config and nil error if the file doesn't exist.
func LoadFile(dir string) (Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Load builds the effective config by merging: defaults <- file <- env.
func Load(dir string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile(dir)
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the config describes a runnable checker.
func (c Config) Validate() error {
	if len(c.Checker) == 0 || c.Checker[0] == "" {
		return errors.New("checker command must not be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return err
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unknown color mode: %s", c.Color)
	}
	return nil
}

// EffectiveVersionCommand returns the command used to query the checker version.
func (c Config) EffectiveVersionCommand() []string {
	if len(c.VersionCommand) > 0 {
		return c.VersionCommand
	}
	if len(c.Checker) == 0 {
		return nil
	}
	return []string{c.Checker[0], "--version"}
}

func mergeFile(dst *Config, src Config) {
	if len(src.Checker) > 0 {
		dst.Checker = src.Checker
	}
	if len(src.VersionCommand) > 0 {
		dst.VersionCommand = src.VersionCommand
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.LogFormat != "" {
		dst.LogFormat = src.LogFormat
	}
	if src.Color != "" {
		dst.Color = src.Color
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("MYPYKAIZEN_CHECKER"); v != "" {
		cfg.Checker = strings.Fields(v)
	}
	if v := os.Getenv("MYPYKAIZEN_VERSION_COMMAND"); v != "" {
		cfg.VersionCommand = strings.Fields(v)
	}
	if v := os.Getenv("MYPYKAIZEN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MYPYKAIZEN_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("MYPYKAIZEN_COLOR"); v != "" {
		cfg.Color = strings.ToLower(v)
	}
}
