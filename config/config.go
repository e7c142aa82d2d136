package config

import (
	"log/slog"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/angeloszaimis/gotracer/pkg/logger"
)

const DefaultRootName = "gotracer"

// loggerNamePattern accepts dotted hierarchical names: each segment starts
// with a letter and continues with word characters or dashes.
var loggerNamePattern = regexp.MustCompile(`^[A-Za-z][\w-]*(\.[\w-]+)*$`)

type TracingConfig struct {
	RootName string `mapstructure:"root_name"`
	Level    string `mapstructure:"level"`
	LogFile  string `mapstructure:"log_file"`
	Enabled  bool   `mapstructure:"enabled"`
}

type MetricsConfig struct {
	BufferSize int `mapstructure:"buffer_size"`
}

type Config struct {
	Tracing TracingConfig `mapstructure:"tracing"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

func Load() (*Config, error) {
	viper.SetDefault("tracing.root_name", DefaultRootName)
	viper.SetDefault("tracing.level", logger.LogLevelDebug)
	viper.SetDefault("tracing.log_file", "")
	viper.SetDefault("tracing.enabled", true)
	viper.SetDefault("metrics.buffer_size", 256)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Info("config file not found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", slog.String("file", viper.ConfigFileUsed()))
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Tracing,
			validation.Required,
			validation.By(func(value interface{}) error {
				tc, ok := value.(TracingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a TracingConfig")
				}
				return validation.ValidateStruct(&tc,
					validation.Field(&tc.RootName,
						validation.Required,
						validation.Match(loggerNamePattern),
					),
					validation.Field(&tc.Level,
						validation.Required,
						validation.In(levelNamesAsAny()...),
					),
					validation.Field(&tc.LogFile,
						validation.By(validateLogFile),
					),
				)
			}),
		),
		validation.Field(&c.Metrics,
			validation.Required,
			validation.By(func(value interface{}) error {
				mc, ok := value.(MetricsConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a MetricsConfig")
				}
				return validation.ValidateStruct(&mc,
					validation.Field(&mc.BufferSize,
						validation.Required,
						validation.Min(1),
					),
				)
			}),
		),
	)
}

func validateLogFile(value interface{}) error {
	path, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if path == "" {
		return nil // console-only tracing
	}

	if strings.HasSuffix(path, "/") || path == "." || path == ".." {
		return validation.NewError("validation_invalid_log_file", "must be a file path, not a directory")
	}

	return nil
}

func levelNamesAsAny() []interface{} {
	names := logger.LevelNames()
	out := make([]interface{}, len(names))
	for i, name := range names {
		out[i] = name
	}
	return out
}
