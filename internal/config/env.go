package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvLoader loads a .env file into the process environment once, then
// resolves individual BROADLINK_* variables that need to be read before
// viper is configured (the config file path and the active environment
// name both gate how viper itself is set up, so they can't be read
// through viper).
type EnvLoader struct {
	envFiles []string
	loaded   bool
}

// NewEnvLoader builds a loader over the given .env file paths, defaulting
// to ".env" in the working directory when none are given.
func NewEnvLoader(envFiles ...string) *EnvLoader {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	return &EnvLoader{envFiles: envFiles}
}

// Load reads each configured .env file into the process environment. A
// missing file is not an error; .env is optional in every deployment
// this module targets.
func (e *EnvLoader) Load() error {
	if e.loaded {
		return nil
	}

	for _, envFile := range e.envFiles {
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	e.loaded = true
	return nil
}

// GetString returns key's value, or defaultValue if it is unset or empty.
func (e *EnvLoader) GetString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetInt returns key's value parsed as an integer, or defaultValue if it
// is unset or unparsable.
func (e *EnvLoader) GetInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetDuration returns key's value parsed as a duration, or defaultValue
// if it is unset or unparsable.
func (e *EnvLoader) GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// IsSet reports whether key has any value set, including an empty one.
func (e *EnvLoader) IsSet(key string) bool {
	_, exists := os.LookupEnv(key)
	return exists
}

// globalEnvLoader backs the package-level convenience functions below,
// used by ConfigLoader before viper is set up.
var globalEnvLoader *EnvLoader

// envLoader returns the process-wide loader, loading any .env file on
// first use.
func envLoader() *EnvLoader {
	if globalEnvLoader == nil {
		globalEnvLoader = NewEnvLoader()
		_ = globalEnvLoader.Load()
	}
	return globalEnvLoader
}

// EnvString reads a raw environment variable through the shared loader,
// triggering .env loading on first use.
func EnvString(key, defaultValue string) string {
	return envLoader().GetString(key, defaultValue)
}
