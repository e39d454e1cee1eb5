// Copyright (c) 2025 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrEnvFileNotFound is returned by LoadEnvFiles when none of the candidates exist.
var ErrEnvFileNotFound = errors.New("env file not found")

// DefaultEnvPaths are tried in order when no env file is given explicitly.
var DefaultEnvPaths = []string{
	".env",    // Current directory
	"../.env", // From a package directory
}

// Config represents the envcheck configuration
type Config struct {
	Check  CheckConfig  `json:"check"`
	Server ServerConfig `json:"server"`
}

// CheckConfig holds the variable under test and where it is loaded from
type CheckConfig struct {
	Key      string   `json:"key"`
	Expected string   `json:"expected"`
	EnvFiles []string `json:"envFiles"`
	// Loaded is the env file LoadFromEnv actually read, empty if none existed.
	Loaded string `json:"loaded,omitempty"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"readTimeout"`
	WriteTimeout time.Duration `json:"writeTimeout"`
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadEnvFiles loads the first existing env file into the process environment.
// Variables that are already set are left alone, so explicit environment
// variables take precedence over file values. It returns the path it loaded.
func LoadEnvFiles(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = DefaultEnvPaths
	}

	for _, envPath := range paths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return "", fmt.Errorf("load env file %q: %w", envPath, err)
		}
		return envPath, nil
	}

	return "", fmt.Errorf("%w: tried %s", ErrEnvFileNotFound, strings.Join(paths, ", "))
}

// LoadFromEnv loads configuration from the environment.
// It follows a clear precedence:
// 1. Explicit Environment Variables (e.g., set in the shell or by CI)
// 2. Values from the env file (if it exists)
// 3. Hardcoded defaults
//
// With no paths, the candidates come from ENVCHECK_ENV_FILES, falling back to
// DefaultEnvPaths. A missing env file is not an error.
func LoadFromEnv(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		if pre, err := LoadFromMap(environMap(os.Environ())); err == nil {
			paths = pre.Check.EnvFiles
		}
	}

	loaded, err := LoadEnvFiles(paths...)
	if err != nil && !errors.Is(err, ErrEnvFileNotFound) {
		return nil, err
	}

	config, err := LoadFromMap(environMap(os.Environ()))
	if err != nil {
		return nil, err
	}
	if len(paths) > 0 {
		config.Check.EnvFiles = paths
	}
	config.Check.Loaded = loaded
	return config, nil
}

// LoadFromMap loads configuration from an in-memory map.
// It never reads or writes the process environment.
func LoadFromMap(envMap map[string]string) (*Config, error) {
	get := func(key, defaultValue string) string {
		if value, exists := envMap[key]; exists && value != "" {
			return value
		}
		return defaultValue
	}

	getInt := func(key string, defaultValue int) int {
		if value, exists := envMap[key]; exists {
			if intValue, err := strconv.Atoi(value); err == nil {
				return intValue
			}
		}
		return defaultValue
	}

	getDuration := func(key string, defaultValue time.Duration) time.Duration {
		if value, exists := envMap[key]; exists {
			if duration, err := time.ParseDuration(value); err == nil {
				return duration
			}
		}
		return defaultValue
	}

	config := &Config{
		Check: CheckConfig{
			Key:      get("ENVCHECK_KEY", "DJANGO_ENV"),
			Expected: get("ENVCHECK_EXPECTED", "TESTING"),
			EnvFiles: splitList(get("ENVCHECK_ENV_FILES", ".env")),
		},
		Server: ServerConfig{
			Host:         get("HOST", "0.0.0.0"),
			Port:         getInt("SERVER_PORT", 8080),
			ReadTimeout:  getDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDuration("WRITE_TIMEOUT", 30*time.Second),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration for required fields
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Check.Key) == "" {
		errs = append(errs, "ENVCHECK_KEY is required")
	}
	if len(c.Check.EnvFiles) == 0 {
		errs = append(errs, "ENVCHECK_ENV_FILES must name at least one file")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

func environMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if key, value, ok := strings.Cut(kv, "="); ok {
			m[key] = value
		}
	}
	return m
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
