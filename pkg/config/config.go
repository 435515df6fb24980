package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/crypticorn-ai/apiutils/pkg/httputil"
	"github.com/crypticorn-ai/apiutils/pkg/observability"
)

// EnvPrefix prefixes every environment variable the package reads
const EnvPrefix = "APIUTILS_"

// EnvConfigFile names an optional YAML file applied before environment overrides
const EnvConfigFile = EnvPrefix + "CONFIG_FILE"

// Config holds all application configuration
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	CORS    CORSConfig    `yaml:"cors"`
}

// ServiceConfig identifies the running service
type ServiceConfig struct {
	Name        string      `yaml:"name"`
	Version     string      `yaml:"version"`
	Environment Environment `yaml:"environment"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

// Addr returns host:port for http.Server
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	File      string `yaml:"file"`
	FileLevel string `yaml:"file_level"`
}

// MetricsConfig holds Prometheus settings
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Path      string `yaml:"path"`
}

// CORSConfig holds cross-origin settings
type CORSConfig struct {
	Enabled          bool     `yaml:"enabled"`
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowCredentials bool     `yaml:"allow_credentials"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	cors := httputil.DefaultCORSOptions()
	return &Config{
		Service: ServiceConfig{
			Name:        "apiutils",
			Version:     "0.0.0",
			Environment: EnvLocal,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    string(observability.FormatJSON),
			FileLevel: "debug",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		CORS: CORSConfig{
			Enabled:          true,
			AllowedOrigins:   cors.AllowedOrigins,
			AllowCredentials: cors.AllowCredentials,
		},
	}
}

// LoadConfig loads defaults, the optional YAML file named by APIUTILS_CONFIG_FILE
// and environment overrides, in that order.
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadFile overlays the YAML document at path onto c
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Service.Name = getEnv("APIUTILS_SERVICE_NAME", c.Service.Name)
	c.Service.Version = getEnv("APIUTILS_SERVICE_VERSION", c.Service.Version)
	c.Service.Environment = Environment(getEnv("APIUTILS_ENV", string(c.Service.Environment)))

	c.Server.Host = getEnv("APIUTILS_HOST", c.Server.Host)
	c.Server.Port = getEnv("APIUTILS_PORT", c.Server.Port)
	c.Server.ReadTimeout = getEnvDuration("APIUTILS_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvDuration("APIUTILS_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.IdleTimeout = getEnvDuration("APIUTILS_IDLE_TIMEOUT", c.Server.IdleTimeout)
	c.Server.ShutdownTimeout = getEnvDuration("APIUTILS_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.MaxBodyBytes = getEnvInt64("APIUTILS_MAX_BODY_BYTES", c.Server.MaxBodyBytes)

	c.Logging.Level = getEnv("APIUTILS_LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("APIUTILS_LOG_FORMAT", c.Logging.Format)
	c.Logging.File = getEnv("APIUTILS_LOG_FILE", c.Logging.File)
	c.Logging.FileLevel = getEnv("APIUTILS_LOG_FILE_LEVEL", c.Logging.FileLevel)

	c.Metrics.Enabled = getEnvBool("APIUTILS_METRICS_ENABLED", c.Metrics.Enabled)
	c.Metrics.Namespace = getEnv("APIUTILS_METRICS_NAMESPACE", c.Metrics.Namespace)
	c.Metrics.Path = getEnv("APIUTILS_METRICS_PATH", c.Metrics.Path)

	c.CORS.Enabled = getEnvBool("APIUTILS_CORS_ENABLED", c.CORS.Enabled)
	c.CORS.AllowedOrigins = getEnvList("APIUTILS_CORS_ALLOWED_ORIGINS", c.CORS.AllowedOrigins)
	c.CORS.AllowCredentials = getEnvBool("APIUTILS_CORS_ALLOW_CREDENTIALS", c.CORS.AllowCredentials)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Service.Name == "" {
		errs = append(errs, errors.New("service name is required"))
	}
	if _, err := ParseEnvironment(string(c.Service.Environment)); err != nil {
		errs = append(errs, err)
	}

	if c.Server.Port == "" {
		errs = append(errs, errors.New("server port is required"))
	} else if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid server port: %s", c.Server.Port))
	}
	if c.Server.MaxBodyBytes < 0 {
		errs = append(errs, errors.New("max body bytes must not be negative"))
	}

	if _, err := observability.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging level: %w", err))
	}
	if _, err := observability.ParseLevel(c.Logging.FileLevel); err != nil {
		errs = append(errs, fmt.Errorf("logging file level: %w", err))
	}
	switch observability.Format(c.Logging.Format) {
	case observability.FormatJSON, observability.FormatText:
	default:
		errs = append(errs, fmt.Errorf("invalid log format: %s (must be json or text)", c.Logging.Format))
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics path must start with /: %q", c.Metrics.Path))
	}

	return errors.Join(errs...)
}

// LoggerOptions converts the logging section for observability.Configure.
// Call after Validate.
func (c *Config) LoggerOptions() observability.Options {
	level, _ := observability.ParseLevel(c.Logging.Level)
	fileLevel, _ := observability.ParseLevel(c.Logging.FileLevel)
	return observability.Options{
		Name:      c.Service.Name,
		Level:     level,
		Format:    observability.Format(c.Logging.Format),
		FilePath:  c.Logging.File,
		FileLevel: fileLevel,
	}
}

// CORSOptions converts the CORS section for httputil.CORS
func (c *Config) CORSOptions() httputil.CORSOptions {
	opts := httputil.DefaultCORSOptions()
	opts.AllowedOrigins = c.CORS.AllowedOrigins
	opts.AllowCredentials = c.CORS.AllowCredentials
	return opts
}

// Middleware lists the httputil.Stack middleware the configuration enables
func (c *Config) Middleware() []string {
	include := []string{}
	if c.CORS.Enabled {
		include = append(include, httputil.MiddlewareCORS)
	}
	if c.Metrics.Enabled {
		include = append(include, httputil.MiddlewareMetrics)
	}
	return include
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt64 returns an int64 environment variable or a default
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated environment variable, dropping blanks
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
