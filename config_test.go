package unitmenu

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "unitmenu.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Menu != DefaultMenuCommand {
		t.Errorf("Menu = %q, want %q", cfg.Menu, DefaultMenuCommand)
	}
	if cfg.Systemctl != "systemctl" || cfg.Journalctl != "journalctl" || cfg.Pager != "less" {
		t.Errorf("program defaults = %q/%q/%q", cfg.Systemctl, cfg.Journalctl, cfg.Pager)
	}
	if cfg.Notify != NotifyAuto {
		t.Errorf("Notify = %q, want %q", cfg.Notify, NotifyAuto)
	}
	if cfg.ForceUser {
		t.Error("ForceUser should default to false")
	}
	if !equalStrings(cfg.Terminals, DefaultTerminals()) {
		t.Errorf("Terminals = %v, want %v", cfg.Terminals, DefaultTerminals())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("missing config file should yield defaults, got %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("LoadConfig = %+v, want defaults", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfigFile(t, `
menu: rofi -dmenu -i -p unit
pager: more
terminals:
  - foot
user: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Menu != "rofi -dmenu -i -p unit" {
		t.Errorf("Menu = %q", cfg.Menu)
	}
	if cfg.Pager != "more" {
		t.Errorf("Pager = %q, want more", cfg.Pager)
	}
	if !equalStrings(cfg.Terminals, []string{"foot"}) {
		t.Errorf("Terminals = %v, want [foot]", cfg.Terminals)
	}
	if !cfg.ForceUser {
		t.Error("ForceUser not set from config")
	}
	// Untouched keys keep their defaults.
	if cfg.Systemctl != DefaultSystemctl || cfg.Journalctl != DefaultJournalctl {
		t.Errorf("program defaults lost: %q/%q", cfg.Systemctl, cfg.Journalctl)
	}
	if cfg.Notify != NotifyAuto {
		t.Errorf("Notify = %q, want %q", cfg.Notify, NotifyAuto)
	}
}

func TestLoadConfigRejectsUnknownNotify(t *testing.T) {
	path := writeConfigFile(t, "notify: growl")
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "notify") {
		t.Fatalf("expected notify mode error, got %v", err)
	}
}

func TestLoadConfigRejectsEmptyMenu(t *testing.T) {
	path := writeConfigFile(t, `menu: ""`)
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "menu") {
		t.Fatalf("expected menu validation error, got %v", err)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfigFile(t, "menu: [unclosed")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		broken string
	}{
		{name: "empty pager", mutate: func(c *Config) { c.Pager = " " }, broken: "pager"},
		{name: "empty systemctl", mutate: func(c *Config) { c.Systemctl = "" }, broken: "systemctl"},
		{name: "empty journalctl", mutate: func(c *Config) { c.Journalctl = "" }, broken: "journalctl"},
		{name: "bad notify", mutate: func(c *Config) { c.Notify = "beep" }, broken: "notify"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.broken) {
				t.Fatalf("expected %s validation error, got %v", tt.broken, err)
			}
		})
	}
}

func TestConfigPrograms(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Systemctl = "/opt/systemctl"
	cfg.Journalctl = "/opt/journalctl"
	cfg.Pager = "bat"

	prog := cfg.Programs()
	if prog.Systemctl != "/opt/systemctl" || prog.Journalctl != "/opt/journalctl" || prog.Pager != "bat" {
		t.Errorf("Programs() = %+v", prog)
	}
}

func TestWriteDefaultConfigRespectsOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "unitmenu.yaml")

	written, err := WriteDefaultConfig(path, false)
	if err != nil {
		t.Fatalf("write default: %v", err)
	}
	if written != path {
		t.Fatalf("expected path %q, got %q", path, written)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config to exist: %v", err)
	}
	if _, err := WriteDefaultConfig(path, false); err == nil {
		t.Fatal("expected error when config exists")
	}
	if _, err := WriteDefaultConfig(path, true); err != nil {
		t.Fatalf("expected overwrite to succeed: %v", err)
	}
}

func TestWriteDefaultConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unitmenu.yaml")

	if _, err := WriteDefaultConfig(path, false); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("written defaults load as %+v, want %+v", cfg, DefaultConfig())
	}
}
