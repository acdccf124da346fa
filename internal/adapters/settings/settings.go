// Package settings resolves optional CLI configuration from
// $HOME/.config/ntn/config.toml and NTN_* environment variables.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".config/ntn"

	baseURLKey = "base_url"
	formatKey  = "format"
	timeoutKey = "timeout_seconds"

	settingsDirMode  = 0o700
	settingsFileMode = 0o600
)

type Settings struct {
	BaseURL        string `toml:"base_url" json:"base_url"`
	Format         string `toml:"format" json:"format"`
	TimeoutSeconds int    `toml:"timeout_seconds" json:"timeout_seconds"`
}

func defaults() Settings {
	return Settings{
		BaseURL:        "https://api.notion.com",
		Format:         "compact",
		TimeoutSeconds: 30,
	}
}

func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.BaseURL, validation.Required),
		validation.Field(&s.Format, validation.Required, validation.In("compact", "json", "plain")),
		validation.Field(&s.TimeoutSeconds, validation.Min(1), validation.Max(600)),
	)
}

func (s Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Load reads the settings file when present and applies NTN_* environment
// overrides (NTN_BASE_URL, NTN_FORMAT, NTN_TIMEOUT_SECONDS). A missing
// file is not an error.
func Load(cfg *viper.Viper) (Settings, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	dir, err := Dir()
	if err != nil {
		return Settings{}, err
	}

	base := defaults()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(dir)
	cfg.SetEnvPrefix("NTN")
	cfg.AutomaticEnv()
	cfg.SetDefault(baseURLKey, base.BaseURL)
	cfg.SetDefault(formatKey, base.Format)
	cfg.SetDefault(timeoutKey, base.TimeoutSeconds)

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read settings file: %w", err)
		}
	}

	settings := Settings{
		BaseURL:        cfg.GetString(baseURLKey),
		Format:         cfg.GetString(formatKey),
		TimeoutSeconds: cfg.GetInt(timeoutKey),
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}

	return settings, nil
}

// Dir is the per-user configuration directory.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, configDir), nil
}

// Init writes a starter settings file with the defaults and returns its
// path. An existing file is left untouched.
func Init() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, configName+"."+configType)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat settings file: %w", err)
	}

	if err := os.MkdirAll(dir, settingsDirMode); err != nil {
		return "", fmt.Errorf("create settings directory: %w", err)
	}

	data, err := toml.Marshal(defaults())
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}

	if err := os.WriteFile(path, data, settingsFileMode); err != nil {
		return "", fmt.Errorf("write settings file: %w", err)
	}

	return path, nil
}
