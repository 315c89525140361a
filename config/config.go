// Package config loads user settings from the XDG config directory.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/takoeight0821/tinycc/target"
	"gopkg.in/yaml.v3"
)

const (
	appName  = "tinycc"
	fileName = "config.yaml"
)

type Config struct {
	Target  target.Platform
	CC      string
	Verbose bool
}

// file is the on-disk layout. Empty fields keep their defaults.
type file struct {
	Target  string `yaml:"target"`
	CC      string `yaml:"cc"`
	Verbose bool   `yaml:"verbose"`
}

func Default() Config {
	return Config{Target: target.Host(), CC: "cc"}
}

// Load reads the config file if there is one. A missing file yields the defaults.
func Load() (Config, error) {
	path, err := xdg.SearchConfigFile(filepath.Join(appName, fileName))
	if err != nil {
		return Default(), nil
	}

	return LoadFile(path)
}

func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Default(), fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	var raw file
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return cfg, err
	}

	if raw.Target != "" {
		platform, err := target.Parse(raw.Target)
		if err != nil {
			return cfg, err
		}
		cfg.Target = platform
	}
	if raw.CC != "" {
		cfg.CC = raw.CC
	}
	cfg.Verbose = raw.Verbose

	return cfg, nil
}

// HistoryPath is where the REPL keeps its line history.
func HistoryPath() string {
	return filepath.Join(xdg.DataHome, appName, "."+appName+"_history")
}
