package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/basketbridge/backend/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	AH       StoreConfig
	Picnic   StoreConfig
	Cache    CacheConfig
	Matching MatchingConfig
	Checkout CheckoutConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig holds one catalog gateway's connection settings
type StoreConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
}

// CacheConfig holds match-cache configuration
type CacheConfig struct {
	File    string `mapstructure:"file"`
	TTLDays int    `mapstructure:"ttl_days"`
}

// MatchingConfig holds the matcher's scoring and decision knobs
type MatchingConfig struct {
	SearchLimit         int     `mapstructure:"search_limit"`
	AutoAcceptScore     float64 `mapstructure:"auto_accept_score"`
	MinScoreGap         float64 `mapstructure:"min_score_gap"`
	PreferBonusTiebreak bool    `mapstructure:"prefer_bonus_tiebreak"`
	MaxAlternatives     int     `mapstructure:"max_alternatives"`
	EnableDebugLogging  bool    `mapstructure:"enable_debug_logging"`
}

// CheckoutConfig holds checkout comparison settings
type CheckoutConfig struct {
	PicnicPriceUnit string `mapstructure:"picnic_price_unit"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/basketbridge/")

	// Environment variable settings
	v.SetEnvPrefix("BASKETBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Store gateway defaults
	v.SetDefault("ah.base_url", "http://localhost:8181")
	v.SetDefault("picnic.base_url", "http://localhost:8182")

	// Cache defaults
	v.SetDefault("cache.file", "match-cache.json")
	v.SetDefault("cache.ttl_days", 21)

	// Matching defaults
	v.SetDefault("matching.search_limit", 8)
	v.SetDefault("matching.auto_accept_score", 72)
	v.SetDefault("matching.min_score_gap", 8)
	v.SetDefault("matching.prefer_bonus_tiebreak", true)
	v.SetDefault("matching.max_alternatives", 3)

	// Checkout defaults
	v.SetDefault("checkout.picnic_price_unit", "cents")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.AH.BaseURL == "" {
		return fmt.Errorf("AH gateway base URL is required (set BASKETBRIDGE_AH_BASE_URL)")
	}
	if config.Picnic.BaseURL == "" {
		return fmt.Errorf("Picnic gateway base URL is required (set BASKETBRIDGE_PICNIC_BASE_URL)")
	}

	if config.Matching.SearchLimit < 1 {
		return fmt.Errorf("matching search limit must be >= 1, got: %d", config.Matching.SearchLimit)
	}
	if config.Matching.AutoAcceptScore < 0 || config.Matching.AutoAcceptScore > 100 {
		return fmt.Errorf("auto accept score must be in [0, 100], got: %v", config.Matching.AutoAcceptScore)
	}
	if config.Cache.TTLDays < 0 {
		return fmt.Errorf("cache TTL days must be >= 0, got: %d", config.Cache.TTLDays)
	}

	unit := config.Checkout.PicnicPriceUnit
	if unit != "cents" && unit != "eur" {
		return fmt.Errorf("picnic price unit must be 'cents' or 'eur', got: %s", unit)
	}

	return nil
}

// MatchSettings maps the matching and cache sections to the matcher's
// settings shape.
func (c *Config) MatchSettings() domain.MatchSettings {
	return domain.MatchSettings{
		SearchLimit:         c.Matching.SearchLimit,
		AutoAcceptScore:     c.Matching.AutoAcceptScore,
		MinScoreGap:         c.Matching.MinScoreGap,
		PreferBonusTiebreak: c.Matching.PreferBonusTiebreak,
		CacheTTLDays:        c.Cache.TTLDays,
		MaxAlternatives:     c.Matching.MaxAlternatives,
	}
}
