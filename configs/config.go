// Package configs provides wizard defaults loaded from the embedded defaults.yaml.
// Load overlays a user config file and KICKSTART_* environment variables.
package configs

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults holds the built-in settings (loaded from defaults.yaml at startup).
var Defaults Settings

// EnvPrefix prefixes environment overrides, e.g. KICKSTART_DISPLAY_PAGE_SIZE.
const EnvPrefix = "KICKSTART"

func init() {
	if err := yaml.Unmarshal(defaultsYAML, &Defaults); err != nil {
		panic("react-kickstart: invalid defaults.yaml: " + err.Error())
	}
}

// Settings holds every configurable wizard setting.
type Settings struct {
	Keys           KeySettings            `yaml:"keys" mapstructure:"keys"`
	Display        DisplaySettings        `yaml:"display" mapstructure:"display"`
	PackageManager PackageManagerSettings `yaml:"package_manager" mapstructure:"package_manager"`
	Output         OutputSettings         `yaml:"output" mapstructure:"output"`
}

// KeySettings holds keyboard shortcuts.
type KeySettings struct {
	Back []string `yaml:"back" mapstructure:"back"`
}

// DisplaySettings holds prompt rendering options.
type DisplaySettings struct {
	ClearScreen    bool   `yaml:"clear_screen" mapstructure:"clear_screen"`
	PageSize       int    `yaml:"page_size" mapstructure:"page_size"`
	BackLabel      string `yaml:"back_label" mapstructure:"back_label"`
	SeparatorLabel string `yaml:"separator_label" mapstructure:"separator_label"`
}

// PackageManagerSettings controls the package manager step.
type PackageManagerSettings struct {
	Preferred  string   `yaml:"preferred" mapstructure:"preferred"`
	Candidates []string `yaml:"candidates" mapstructure:"candidates"`
}

// OutputSettings controls where the answers are handed off.
type OutputSettings struct {
	AnswersPath string `yaml:"answers_path" mapstructure:"answers_path"`
}

// Validate checks the settings the wizard cannot run without.
func (s Settings) Validate() error {
	if len(s.Keys.Back) == 0 {
		return errors.New("keys.back must list at least one key")
	}
	if s.Display.PageSize < 1 {
		return fmt.Errorf("display.page_size must be positive, got %d", s.Display.PageSize)
	}
	if len(s.PackageManager.Candidates) == 0 {
		return errors.New("package_manager.candidates must not be empty")
	}
	if p := s.PackageManager.Preferred; p != "" && !slices.Contains(s.PackageManager.Candidates, p) {
		return fmt.Errorf("package_manager.preferred %q is not one of %v", p, s.PackageManager.Candidates)
	}
	return nil
}

// UserConfigPath returns the default user config file location.
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "react-kickstart", "config.yaml")
}

// Load returns Defaults overlaid with the config file at path and KICKSTART_*
// environment variables. An empty path falls back to UserConfigPath, which is
// optional; an explicit path must exist.
func Load(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v, Defaults)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if p := UserConfigPath(); p != "" {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("parse config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

// setDefaults registers every key so environment variables can override it.
func setDefaults(v *viper.Viper, d Settings) {
	v.SetDefault("keys.back", d.Keys.Back)
	v.SetDefault("display.clear_screen", d.Display.ClearScreen)
	v.SetDefault("display.page_size", d.Display.PageSize)
	v.SetDefault("display.back_label", d.Display.BackLabel)
	v.SetDefault("display.separator_label", d.Display.SeparatorLabel)
	v.SetDefault("package_manager.preferred", d.PackageManager.Preferred)
	v.SetDefault("package_manager.candidates", d.PackageManager.Candidates)
	v.SetDefault("output.answers_path", d.Output.AnswersPath)
}
