// Package config loads proxy configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all environment-configured settings.
type Config struct {
	Port      int
	ValkeyURL string

	OverpassURL   string
	OpenMeteoURL  string
	CanopyTileURL string
	TileDir       string

	OverpassTTL time.Duration
	ClimateTTL  time.Duration
	CanopyTTL   time.Duration

	OverpassTimeout time.Duration
	ClimateTimeout  time.Duration
	CanopyTimeout   time.Duration

	QuotaLimit  int
	QuotaWindow time.Duration

	LogLevel  string
	LogPretty bool
}

// Load reads configuration from the environment, applying defaults.
// TTLs, timeouts and the quota window are given in seconds.
func Load() *Config {
	return &Config{
		Port:      getEnvInt("PORT", 8080),
		ValkeyURL: getEnv("VALKEY_URL", "redis://localhost:6379/0"),

		OverpassURL:   getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		OpenMeteoURL:  getEnv("OPEN_METEO_URL", "https://archive-api.open-meteo.com/v1/archive"),
		CanopyTileURL: getEnv("CANOPY_TILE_URL", "https://dataforgood-fb-data.s3.amazonaws.com/forests/v1/alsgedi_global_v6_float/chm"),
		TileDir:       getEnv("TILE_DIR", "data/canopy"),

		OverpassTTL: getEnvSeconds("CACHE_TTL_OVERPASS", 7*24*time.Hour),
		ClimateTTL:  getEnvSeconds("CACHE_TTL_CLIMATE", 30*24*time.Hour),
		CanopyTTL:   getEnvSeconds("CACHE_TTL_CANOPY", 365*24*time.Hour),

		OverpassTimeout: getEnvSeconds("OVERPASS_TIMEOUT", 60*time.Second),
		ClimateTimeout:  getEnvSeconds("CLIMATE_TIMEOUT", 30*time.Second),
		CanopyTimeout:   getEnvSeconds("CANOPY_TIMEOUT", 60*time.Second),

		QuotaLimit:  getEnvInt("QUOTA_LIMIT", 100),
		QuotaWindow: getEnvSeconds("QUOTA_WINDOW", time.Hour),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvBool("LOG_PRETTY", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.EqualFold(value, "true") || value == "1"
	}
	return defaultValue
}
