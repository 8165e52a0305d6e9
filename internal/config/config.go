package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Google GoogleConfig `yaml:"google" mapstructure:"google"`
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// GoogleConfig holds Google Maps Platform settings. The API key is left
// unvalidated here so commands that never reach the provider still work;
// commands that do call the provider check it themselves.
type GoogleConfig struct {
	APIKey         string  `yaml:"api_key" mapstructure:"api_key"`
	GeocodeBaseURL string  `yaml:"geocode_base_url" mapstructure:"geocode_base_url" validate:"required,url"`
	PlacesBaseURL  string  `yaml:"places_base_url" mapstructure:"places_base_url" validate:"required,url"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs" validate:"gte=1"`
	RateLimit      float64 `yaml:"rate_limit" mapstructure:"rate_limit" validate:"gt=0"`
}

// SearchConfig configures competitor discovery and profiling.
type SearchConfig struct {
	RadiusMiles   float64 `yaml:"radius_miles" mapstructure:"radius_miles" validate:"gte=1,lte=25"`
	Keyword       string  `yaml:"keyword" mapstructure:"keyword" validate:"required"`
	Category      string  `yaml:"category" mapstructure:"category" validate:"required"`
	PageDelaySecs int     `yaml:"page_delay_secs" mapstructure:"page_delay_secs" validate:"gte=2"`
	DetailPauseMS int     `yaml:"detail_pause_ms" mapstructure:"detail_pause_ms" validate:"gte=0"`
	TaxonomyFile  string  `yaml:"taxonomy_file" mapstructure:"taxonomy_file"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port" validate:"gte=1,lte=65535"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"required"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=json console"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COMPSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. The empty api_key default registers the key with viper so the
	// env variable is visible to Unmarshal.
	v.SetDefault("google.api_key", "")
	v.SetDefault("google.geocode_base_url", "https://maps.googleapis.com/maps/api/geocode")
	v.SetDefault("google.places_base_url", "https://maps.googleapis.com/maps/api/place")
	v.SetDefault("google.timeout_secs", 10)
	v.SetDefault("google.rate_limit", 10)
	v.SetDefault("search.radius_miles", 5)
	v.SetDefault("search.keyword", "roofing contractor")
	v.SetDefault("search.category", "general_contractor")
	v.SetDefault("search.page_delay_secs", 2)
	v.SetDefault("search.detail_pause_ms", 100)
	v.SetDefault("search.taxonomy_file", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: validate")
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
