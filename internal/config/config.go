// Package config loads runtime settings from the environment and an optional
// config file.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the service settings.
type Config struct {
	AppPort        string `mapstructure:"APP_PORT" validate:"required"`
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER" validate:"oneof=sqlite postgres"`
	DatabaseDSN    string `mapstructure:"DATABASE_DSN" validate:"required"`
	RabbitMQURL    string `mapstructure:"RABBITMQ_URL" validate:"omitempty,url"`
	RabbitMQQueue  string `mapstructure:"RABBITMQ_QUEUE" validate:"required"`
	LogLevel       string `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
	LogPretty      bool   `mapstructure:"LOG_PRETTY"`
}

// EventsEnabled reports whether a broker is configured.
func (c Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

// Load reads configuration. Environment variables override values from
// configFile, which may be empty.
func Load(configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":30822")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "catalog.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
}
