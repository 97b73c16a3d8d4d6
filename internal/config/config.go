package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Generator GeneratorConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type LoggingConfig struct {
	Level      string
	Format     string
	Structured bool
}

// GeneratorConfig locates the vein profile and bounds the work a single request may ask for.
type GeneratorConfig struct {
	ProfilePath string
	// SeedOverride replaces the profile seed when VEIN_SEED is set.
	SeedOverride *int64
	Workers      int
	MaxTileSize  int
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnvStr("PORT", "8080"),
			ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvDuration("IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Logging: LoggingConfig{
			Level:      getEnvStr("LOG_LEVEL", "info"),
			Format:     getEnvStr("LOG_FORMAT", "text"),
			Structured: getEnvBool("LOG_STRUCTURED", true),
		},
		Generator: GeneratorConfig{
			ProfilePath:  getEnvStr("VEIN_PROFILE", ""),
			SeedOverride: getEnvInt64Ptr("VEIN_SEED"),
			Workers:      getEnvInt("VEIN_WORKERS", 4),
			MaxTileSize:  getEnvInt("VEIN_MAX_TILE_SIZE", 512),
		},
	}
}

func getEnvStr(key, defaultValue string) string {
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

// getEnvInt64Ptr returns nil when key is unset or not an integer.
func getEnvInt64Ptr(key string) *int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return &intValue
		}
	}
	return nil
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
