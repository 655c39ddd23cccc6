package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Matching  MatchingConfig
	Costing   CostingConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MatchingConfig holds product-matching thresholds
type MatchingConfig struct {
	MinConfidence   float64 `mapstructure:"min_confidence"`
	HighThreshold   float64 `mapstructure:"high_threshold"`
	MediumThreshold float64 `mapstructure:"medium_threshold"`
	LowThreshold    float64 `mapstructure:"low_threshold"`
}

// CostingConfig holds recipe-costing defaults
type CostingConfig struct {
	DefaultFoodCostPct float64 `mapstructure:"default_food_cost_pct"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerClient int `mapstructure:"per_client"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/lariat/")

	v.SetEnvPrefix("LARIAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("matching.min_confidence", 0.6)
	v.SetDefault("matching.high_threshold", 0.85)
	v.SetDefault("matching.medium_threshold", 0.65)
	v.SetDefault("matching.low_threshold", 0.3)

	v.SetDefault("costing.default_food_cost_pct", 0.28)

	v.SetDefault("ratelimit.per_client", 120)
}

// validate validates the configuration
func validate(config *Config) error {
	m := config.Matching
	if m.MinConfidence <= 0 || m.MinConfidence > 1 {
		return fmt.Errorf("matching.min_confidence must be in (0, 1], got: %v", m.MinConfidence)
	}
	if !(m.LowThreshold < m.MediumThreshold && m.MediumThreshold < m.HighThreshold) {
		return fmt.Errorf("matching thresholds must be ordered low < medium < high")
	}
	if m.HighThreshold > 1 {
		return fmt.Errorf("matching.high_threshold must be <= 1, got: %v", m.HighThreshold)
	}

	if pct := config.Costing.DefaultFoodCostPct; pct <= 0 || pct >= 1 {
		return fmt.Errorf("costing.default_food_cost_pct must be in (0, 1), got: %v", pct)
	}

	if config.RateLimit.PerClient <= 0 {
		return fmt.Errorf("ratelimit.per_client must be positive, got: %d", config.RateLimit.PerClient)
	}

	return nil
}
