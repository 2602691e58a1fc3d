package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for every environment variable read by LoadSettings.
const EnvPrefix = "JJDIVERGE"

// Settings are ambient knobs that never influence resolution decisions.
type Settings struct {
	JJBinary       string
	LogFile        string
	LogMaxSize     int
	LogMaxBackups  int
	LogMaxAge      int
	CommandTimeout time.Duration
	Debug          bool
	Demo           bool
	// DemoDelay slows every simulated jj call in demo mode.
	DemoDelay time.Duration
}

// LoadSettings reads settings from JJDIVERGE_* environment variables.
// DEBUG is honoured as an alias for JJDIVERGE_DEBUG.
func LoadSettings() (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("jj_binary", "jj")
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size", 1)
	v.SetDefault("log_max_backups", 2)
	v.SetDefault("log_max_age", 30)
	v.SetDefault("command_timeout", time.Duration(0))
	v.SetDefault("debug", false)
	v.SetDefault("demo", false)
	v.SetDefault("demo_delay", time.Duration(0))

	if err := v.BindEnv("debug", EnvPrefix+"_DEBUG", "DEBUG"); err != nil {
		return Settings{}, fmt.Errorf("failed to bind debug setting: %w", err)
	}

	s := Settings{
		JJBinary:       v.GetString("jj_binary"),
		LogFile:        v.GetString("log_file"),
		LogMaxSize:     v.GetInt("log_max_size"),
		LogMaxBackups:  v.GetInt("log_max_backups"),
		LogMaxAge:      v.GetInt("log_max_age"),
		CommandTimeout: v.GetDuration("command_timeout"),
		Debug:          v.GetBool("debug"),
		Demo:           v.GetBool("demo"),
		DemoDelay:      v.GetDuration("demo_delay"),
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks that the settings are usable
func (s Settings) Validate() error {
	if s.JJBinary == "" {
		return &SettingsError{Field: "jj_binary", Message: "must not be empty"}
	}
	if s.CommandTimeout < 0 {
		return &SettingsError{Field: "command_timeout", Message: "must not be negative"}
	}
	if s.DemoDelay < 0 {
		return &SettingsError{Field: "demo_delay", Message: "must not be negative"}
	}
	if s.LogMaxSize <= 0 {
		return &SettingsError{Field: "log_max_size", Message: "must be positive"}
	}
	if s.LogMaxBackups < 0 || s.LogMaxAge < 0 {
		return &SettingsError{Field: "log_max_backups", Message: "log retention must not be negative"}
	}
	return nil
}

// SettingsError represents an invalid setting
type SettingsError struct {
	Field   string
	Message string
}

func (e *SettingsError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
