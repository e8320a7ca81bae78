package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	GeoIP    GeoIPConfig
	Search   SearchConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// DatabaseConfig holds the connection settings for the city store
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// GeoIPConfig holds settings for the IP geolocation resolver
type GeoIPConfig struct {
	BaseURL          string
	TimeoutSeconds   int
	CacheTTLHours    int
	DefaultLatitude  float64
	DefaultLongitude float64
}

// SearchConfig holds settings for candidate retrieval and ranking
type SearchConfig struct {
	PageSize            int
	MaxLimit            int
	CandidateLimit      int
	UseTrigram          bool
	TrigramThreshold    float64
	Weights             WeightsConfig
	FilterCacheTTLHours int
}

// WeightsConfig holds the blend weights for the composite score
type WeightsConfig struct {
	Population float64
	Text       float64
	Distance   float64
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	// Set config file name and paths
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.city-search")

	// Set defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.ginmode", "release")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("database.url", "postgres://localhost:5432/cities?sslmode=disable")
	viper.SetDefault("database.maxOpenConns", 25)
	viper.SetDefault("database.maxIdleConns", 5)
	viper.SetDefault("geoip.baseURL", "http://ip-api.com")
	viper.SetDefault("geoip.timeoutSeconds", 3)
	viper.SetDefault("geoip.cacheTTLHours", 24)
	viper.SetDefault("geoip.defaultLatitude", 48.8566)
	viper.SetDefault("geoip.defaultLongitude", 2.3522)
	viper.SetDefault("search.pageSize", 10)
	viper.SetDefault("search.maxLimit", 100)
	viper.SetDefault("search.candidateLimit", 500)
	viper.SetDefault("search.useTrigram", false)
	viper.SetDefault("search.trigramThreshold", 0.3)
	viper.SetDefault("search.weights.population", 0.2)
	viper.SetDefault("search.weights.text", 0.7)
	viper.SetDefault("search.weights.distance", 0.1)
	viper.SetDefault("search.filterCacheTTLHours", 24)

	// Read from environment variables
	viper.SetEnvPrefix("CITY_SEARCH")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Timeout returns the upstream timeout as a duration
func (c GeoIPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns the geolocation cache TTL as a duration
func (c GeoIPConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

// FilterCacheTTL returns the filters/states cache TTL as a duration
func (c SearchConfig) FilterCacheTTL() time.Duration {
	return time.Duration(c.FilterCacheTTLHours) * time.Hour
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
