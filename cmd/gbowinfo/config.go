package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"

	"github.com/danmuck/gbowinfo/internal/logging"
)

type Config struct {
	Color    bool
	Indent   string
	Workers  int
	LogLevel string
}

type fileConfig struct {
	Color    bool   `toml:"color"`
	Indent   string `toml:"indent"`
	Workers  int    `toml:"workers"`
	LogLevel string `toml:"log_level"`
}

func DefaultConfig() Config {
	fd := os.Stdout.Fd()
	return Config{
		Color:   isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		Indent:  "\t",
		Workers: runtime.NumCPU(),
	}
}

// loadConfig overlays the keys present in path onto base.
func loadConfig(path string, base Config) (Config, error) {
	cfg := base

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("color") {
		cfg.Color = raw.Color
	}
	if meta.IsDefined("indent") {
		cfg.Indent = raw.Indent
	}
	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = raw.LogLevel
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	if cfg.Workers < 1 {
		return fmt.Errorf("config: workers must be positive, got %d", cfg.Workers)
	}
	if cfg.LogLevel != "" {
		if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
			return fmt.Errorf("config: unknown log_level %q", cfg.LogLevel)
		}
	}
	return nil
}
