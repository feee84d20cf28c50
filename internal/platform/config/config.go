package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server and validation service configuration.
type Server struct {
	Addr             string
	LogLevel         string
	LogFormat        string
	BatchLimit       int
	BatchConcurrency int
	ShutdownTimeout  time.Duration

	// Warnings lists values that were present but unusable and fell back to
	// their defaults. main logs them once the logger exists.
	Warnings []string
}

const (
	defaultAddr             = ":8080"
	defaultLogLevel         = "info"
	defaultLogFormat        = "json"
	defaultBatchLimit       = 1000
	defaultBatchConcurrency = 8
	defaultShutdownTimeout  = 10 * time.Second
)

// Load reads an optional .env file and then builds the config from the
// environment. A missing .env file is not an error; an unreadable or
// malformed one is reported in Warnings.
func Load(envFiles ...string) Server {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	var warnings []string
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		// Existing environment variables win over the file.
		if err := godotenv.Load(f); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s could not be loaded: %v", f, err))
		}
	}
	cfg := FromEnv()
	cfg.Warnings = append(warnings, cfg.Warnings...)
	return cfg
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:      envOr("CADASTRO_ADDR", defaultAddr),
		LogLevel:  envOr("CADASTRO_LOG_LEVEL", defaultLogLevel),
		LogFormat: envOr("CADASTRO_LOG_FORMAT", defaultLogFormat),
	}
	cfg.BatchLimit = cfg.positiveInt("CADASTRO_BATCH_LIMIT", defaultBatchLimit)
	cfg.BatchConcurrency = cfg.positiveInt("CADASTRO_BATCH_CONCURRENCY", defaultBatchConcurrency)
	cfg.ShutdownTimeout = cfg.duration("CADASTRO_SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Server) positiveInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		c.Warnings = append(c.Warnings, fmt.Sprintf("%s=%q is not a positive integer, using %d", key, raw, fallback))
		return fallback
	}
	return n
}

func (c *Server) duration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		c.Warnings = append(c.Warnings, fmt.Sprintf("%s=%q is not a positive duration, using %s", key, raw, fallback))
		return fallback
	}
	return d
}
