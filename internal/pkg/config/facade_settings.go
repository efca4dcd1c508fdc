package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default façade settings applied when the configuration file omits them.
const (
	DefaultWorkers        = 8
	DefaultContexts       = 4
	DefaultReseedInterval = 100
	DefaultAddress        = ":8080"
)

// FacadeSettings holds configuration for the cryptographic façade:
// the async worker pool size, the execution-context pool size, the
// secure random reseed interval and the logger settings.
type FacadeSettings struct {
	Workers        int            `mapstructure:"workers" validate:"required,gt=0"`
	Contexts       int            `mapstructure:"contexts" validate:"required,gt=0"`
	ReseedInterval int            `mapstructure:"reseed_interval" validate:"required,gt=0"`
	Address        string         `mapstructure:"address"`
	Logger         LoggerSettings `mapstructure:"logger"`
}

// Validate checks that all fields in FacadeSettings are valid.
func (s *FacadeSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for FacadeSettings: %w", err)
	}

	if err := s.Logger.Validate(); err != nil {
		return fmt.Errorf("invalid logger settings: %w", err)
	}

	return nil
}

// InitializeFacadeConfig loads façade settings from the YAML file at the
// given path, applying defaults and FABRIC_* environment overrides, and
// validates the result.
func InitializeFacadeConfig(configPath string) (*FacadeSettings, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("FABRIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("contexts", DefaultContexts)
	v.SetDefault("reseed_interval", DefaultReseedInterval)
	v.SetDefault("address", DefaultAddress)
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var settings FacadeSettings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &settings, nil
}
