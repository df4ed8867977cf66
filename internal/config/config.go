// Package config loads the optional appdeck settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"appdeck/internal/category"
	"appdeck/internal/overrides"
	"appdeck/internal/scanner"
)

// configFileName is the name of the settings file
const configFileName = "config.yaml"

// Settings holds the application configuration. Every field is optional;
// zero values fall back to the built-in defaults.
type Settings struct {
	ScanRoots     []string        `yaml:"scan_roots"`     // Directories scanned for .app bundles
	OverridesPath string          `yaml:"overrides_path"` // Category override file
	ListenAddr    string          `yaml:"listen_addr"`    // HTTP API address for serve mode
	Rules         []category.Rule `yaml:"rules"`          // Extra category rules, checked first
}

// Default returns the default configuration.
func Default() *Settings {
	return &Settings{
		ScanRoots:     scanner.DefaultRoots(),
		OverridesPath: overrides.DefaultPath(),
		ListenAddr:    "127.0.0.1:7155",
	}
}

// Path returns the path to the settings file.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "appdeck", configFileName)
}

// Load reads the settings file at path; an empty path means Path(). A
// missing file yields the defaults. Unlike the override store, a malformed
// settings file is an error: silently ignoring it would run with the wrong
// roots.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = Path()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills fields the file left empty.
func (s *Settings) applyDefaults() {
	if len(s.ScanRoots) == 0 {
		s.ScanRoots = scanner.DefaultRoots()
	}
	if s.OverridesPath == "" {
		s.OverridesPath = overrides.DefaultPath()
	}
	if s.ListenAddr == "" {
		s.ListenAddr = Default().ListenAddr
	}
}

// Scanner builds the scanner described by the settings.
func (s *Settings) Scanner() *scanner.Scanner {
	sc := scanner.New(overrides.New(s.OverridesPath), s.ScanRoots...)
	sc.SetRules(s.Rules)
	return sc
}

// Overrides builds the override store described by the settings.
func (s *Settings) Overrides() *overrides.Store {
	return overrides.New(s.OverridesPath)
}
