package config

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"deskbridge/internal/bootstrap/logging"
	"deskbridge/internal/errs"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Staging  StagingConfig  `mapstructure:"staging"`
	Events   EventsConfig   `mapstructure:"events"`
	Push     PushConfig     `mapstructure:"push"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// StagingConfig locates the per-connector export staging directories.
type StagingConfig struct {
	Root string `mapstructure:"root"`
}

// EventsConfig controls the optional cycle-completed event publisher.
// An empty NATSURL disables publishing entirely.
type EventsConfig struct {
	NATSURL string `mapstructure:"nats_url"`
	Subject string `mapstructure:"subject"`
}

// PushConfig holds outbound push tuning.
type PushConfig struct {
	// Profile is an optional toml file overriding the built-in
	// canonical-to-origin vocabulary tables.
	Profile     string `mapstructure:"profile"`
	MaxAttempts int    `mapstructure:"max_attempts"`
}

func Load(ctx context.Context, configFile string) (Config, error) {
	if ctx == nil {
		return Config{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.config"))

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			// Keep default and env-backed config when no file is provided.
			logging.Warn(logCtx, "config file not found, fallback to defaults and env")
		} else {
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}

	if cfg.Database.DSN == "" {
		return Config{}, errors.New("database.dsn is required")
	}
	if cfg.Staging.Root == "" {
		return Config{}, errors.New("staging.root is required")
	}

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("staging_root", cfg.Staging.Root),
	)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "deskbridge")
	v.SetDefault("app.env", "local")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", ".deskbridge/state/canonical.sqlite")
	v.SetDefault("staging.root", ".deskbridge/staging")
	v.SetDefault("events.nats_url", "")
	v.SetDefault("events.subject", "deskbridge.cycle.completed")
	v.SetDefault("push.profile", "")
	v.SetDefault("push.max_attempts", 4)
}
