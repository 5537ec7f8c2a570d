package unitmenu

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default names of the external collaborator programs, resolved against PATH
const (
	// DefaultSystemctl is the default service manager control tool
	DefaultSystemctl = "systemctl"

	// DefaultJournalctl is the default journal query tool
	DefaultJournalctl = "journalctl"

	// DefaultPager is the default pager for status and log output
	DefaultPager = "less"

	// DefaultNotifySend is the default notify-send compatible program
	DefaultNotifySend = "notify-send"
)

// Config file modes
const (
	// ConfigDirMode is the mode for created config directories
	ConfigDirMode = 0o755

	// ConfigFileMode is the mode for the written config file
	ConfigFileMode = 0o644
)

// Config carries everything a session needs that is not chosen
// interactively. The zero value is not usable; start from DefaultConfig.
type Config struct {
	// Menu is the shell-quoted picker invocation
	Menu string `mapstructure:"menu" yaml:"menu"`

	// Terminals is the terminal emulator candidate list in priority order
	Terminals []string `mapstructure:"terminals" yaml:"terminals"`

	// Pager receives status and log output
	Pager string `mapstructure:"pager" yaml:"pager"`

	// Systemctl is the service manager control tool to invoke
	Systemctl string `mapstructure:"systemctl" yaml:"systemctl"`

	// Journalctl is the journal query tool to invoke
	Journalctl string `mapstructure:"journalctl" yaml:"journalctl"`

	// Notify selects the notification sink: auto, dbus, notify-send or none
	Notify string `mapstructure:"notify" yaml:"notify"`

	// ForceUser pins the session to the user manager, skipping the scope
	// picker
	ForceUser bool `mapstructure:"user" yaml:"user"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Menu:       DefaultMenuCommand,
		Terminals:  DefaultTerminals(),
		Pager:      DefaultPager,
		Systemctl:  DefaultSystemctl,
		Journalctl: DefaultJournalctl,
		Notify:     NotifyAuto,
	}
}

// DefaultConfigPath returns the standard config path,
// $XDG_CONFIG_HOME/unitmenu/unitmenu.yaml.
func DefaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "unitmenu", "unitmenu.yaml"), nil
}

// LoadConfig reads configuration from the provided path. If path is empty,
// uses DefaultConfigPath. A missing file yields the defaults; an unreadable,
// malformed or invalid file is an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("menu", cfg.Menu)
	v.SetDefault("terminals", cfg.Terminals)
	v.SetDefault("pager", cfg.Pager)
	v.SetDefault("systemctl", cfg.Systemctl)
	v.SetDefault("journalctl", cfg.Journalctl)
	v.SetDefault("notify", cfg.Notify)
	v.SetDefault("user", cfg.ForceUser)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values a session cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Menu) == "" {
		return errors.New("menu must not be empty")
	}
	if strings.TrimSpace(c.Pager) == "" {
		return errors.New("pager must not be empty")
	}
	if strings.TrimSpace(c.Systemctl) == "" {
		return errors.New("systemctl must not be empty")
	}
	if strings.TrimSpace(c.Journalctl) == "" {
		return errors.New("journalctl must not be empty")
	}
	switch c.Notify {
	case NotifyAuto, NotifyDBus, NotifySend, NotifyNone:
	default:
		return fmt.Errorf("unknown notify mode %q (want %s, %s, %s or %s)",
			c.Notify, NotifyAuto, NotifyDBus, NotifySend, NotifyNone)
	}
	return nil
}

// Programs returns the external tool names the configuration selects.
func (c Config) Programs() Programs {
	return Programs{
		Systemctl:  c.Systemctl,
		Journalctl: c.Journalctl,
		Pager:      c.Pager,
	}
}

// WriteDefaultConfig renders the default configuration as YAML and writes it
// atomically to the target path (DefaultConfigPath if empty). An existing
// file is refused unless overwrite is set. Returns the path written.
func WriteDefaultConfig(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("rendering default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), ConfigDirMode); err != nil {
		return "", err
	}
	if err := renameio.WriteFile(path, data, ConfigFileMode); err != nil {
		return "", fmt.Errorf("writing config %s: %w", path, err)
	}
	return path, nil
}
