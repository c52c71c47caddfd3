// Package config loads the optional user configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTarget = "16:00"
	DefaultZone   = "Europe/London"
	DefaultFormat = "text"
)

// Config holds user preferences. Interval lengths are not part of it.
type Config struct {
	Target string `yaml:"target"`
	Zone   string `yaml:"zone"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		Target: DefaultTarget,
		Zone:   DefaultZone,
		Format: DefaultFormat,
	}
}

// Load reads the YAML file at path on top of the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns ~/.config/timebox/config.yaml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "timebox", "config.yaml"), nil
}
