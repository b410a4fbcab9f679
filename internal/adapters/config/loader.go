package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RRRwang/vxtuisong/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	settingsName  = "settings"
	settingsType  = "toml"
	configPathKey = "config.path"
	configDirName = ".vxtuisong"
	configFile    = "config.toml"
	envPrefix     = "VXTUISONG"
)

// Load reads the push configuration. viper resolves where the config file
// lives (an optional settings file in ~/.vxtuisong, or the VXTUISONG_CONFIG_PATH
// environment variable); go-toml decodes the file itself.
func Load(cfg *viper.Viper) (domain.Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return domain.Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, configDirName, configFile)

	cfg.SetConfigName(settingsName)
	cfg.SetConfigType(settingsType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDirName))
	cfg.SetDefault(configPathKey, defaultPath)
	cfg.SetEnvPrefix(envPrefix)
	_ = cfg.BindEnv(configPathKey, envPrefix+"_CONFIG_PATH")

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return domain.Config{}, fmt.Errorf("read settings file: %w", err)
		}
	}

	path := cfg.GetString(configPathKey)
	if path == "" {
		return domain.Config{}, errors.New("config path is empty")
	}

	return LoadFile(path)
}

// LoadFile decodes and validates the config file at path.
func LoadFile(path string) (domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Config{}, fmt.Errorf("read config file: %w", err)
	}

	var schema fileSchema
	if err := toml.Unmarshal(data, &schema); err != nil {
		return domain.Config{}, fmt.Errorf("decode config file: %w", err)
	}

	loaded := toDomain(schema)
	if err := loaded.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("validate config file %s: %w", path, err)
	}

	return loaded, nil
}

func toDomain(schema fileSchema) domain.Config {
	return domain.Config{
		AppID:         schema.AppID,
		AppSecret:     schema.AppSecret,
		WeatherKey:    schema.WeatherKey,
		TemplateID:    schema.TemplateID,
		Region:        schema.Region,
		Users:         schema.User,
		RedirectURL:   schema.RedirectURL,
		Anniversaries: toEvents(schema.Anniversaries),
		Birthdays:     toEvents(schema.Birthdays),
	}
}

func toEvents(schemas []eventSchema) []domain.DatedEvent {
	if len(schemas) == 0 {
		return nil
	}

	events := make([]domain.DatedEvent, 0, len(schemas))
	for _, s := range schemas {
		events = append(events, domain.DatedEvent{Name: s.Name, Date: s.Date})
	}
	return events
}
