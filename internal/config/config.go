// Package config loads application configuration from file and
// environment and wires the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Kinetics  KineticsConfig  `yaml:"kinetics" mapstructure:"kinetics"`
	Calibrate CalibrateConfig `yaml:"calibrate" mapstructure:"calibrate"`
	Predict   PredictConfig   `yaml:"predict" mapstructure:"predict"`
}

// StoreConfig configures the run-history database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// KineticsConfig overrides the accessibility sigmoid. The defaults are
// the literature values; they live in configuration so a different
// exposure threshold can be tried without a rebuild.
type KineticsConfig struct {
	SigmoidMidpoint  float64 `yaml:"sigmoid_midpoint" mapstructure:"sigmoid_midpoint"`
	SigmoidSteepness float64 `yaml:"sigmoid_steepness" mapstructure:"sigmoid_steepness"`
}

// CalibrateConfig configures the parameter fit.
type CalibrateConfig struct {
	MaxIterations int     `yaml:"max_iterations" mapstructure:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance" mapstructure:"tolerance"`
}

// PredictConfig configures batch prediction.
type PredictConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SIALO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.path", "sialo.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("kinetics.sigmoid_midpoint", 65.0)
	v.SetDefault("kinetics.sigmoid_steepness", 15.0)
	v.SetDefault("calibrate.max_iterations", 2000)
	v.SetDefault("calibrate.tolerance", 1e-10)
	v.SetDefault("predict.concurrency", 4)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
