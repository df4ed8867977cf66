package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.ScanRoots) != 3 || cfg.ScanRoots[0] != "/Applications" {
		t.Errorf("ScanRoots = %v, want default macOS roots", cfg.ScanRoots)
	}
	if filepath.Base(cfg.OverridesPath) != ".app-launcher-config.json" {
		t.Errorf("OverridesPath = %q", cfg.OverridesPath)
	}
	if cfg.ListenAddr == "" {
		t.Error("ListenAddr should default to a loopback address")
	}
}

func TestLoad_PartialFile_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
listen_addr: "127.0.0.1:9000"
rules:
  - label: Games
    keywords: [steam, epic]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:9000" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if len(cfg.ScanRoots) != 3 {
		t.Errorf("ScanRoots = %v, want defaults", cfg.ScanRoots)
	}
	if len(cfg.Rules) != 1 || cfg.Rules[0].Label != "Games" || len(cfg.Rules[0].Keywords) != 2 {
		t.Errorf("Rules = %+v", cfg.Rules)
	}
}

func TestLoad_CustomRoots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
scan_roots:
  - /opt/apps
overrides_path: /tmp/ov.json
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.ScanRoots) != 1 || cfg.ScanRoots[0] != "/opt/apps" {
		t.Errorf("ScanRoots = %v", cfg.ScanRoots)
	}
	if cfg.OverridesPath != "/tmp/ov.json" {
		t.Errorf("OverridesPath = %q", cfg.OverridesPath)
	}
}

func TestLoad_MalformedFile_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scan_roots: {not: [valid"), 0644); err != nil {
		t.Fatalf("write fixture error = %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should report a malformed settings file")
	}
}

func TestSettings_Builders(t *testing.T) {
	tmp := t.TempDir()
	cfg := &Settings{
		ScanRoots:     []string{tmp},
		OverridesPath: filepath.Join(tmp, "ov.json"),
	}

	store := cfg.Overrides()
	if store.Path() != cfg.OverridesPath {
		t.Errorf("Overrides().Path() = %q, want %q", store.Path(), cfg.OverridesPath)
	}

	if apps := cfg.Scanner().Scan(); len(apps) != 0 {
		t.Errorf("Scan() of empty root = %d records", len(apps))
	}
}
