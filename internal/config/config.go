package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full labor service configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	MongoDB MongoDBConfig `yaml:"mongodb"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Tracing TracingConfig `yaml:"tracing"`
	Labor   LaborConfig   `yaml:"labor"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	AllowedOrigins  []string      `yaml:"allowedOrigins"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// MongoDBConfig holds MongoDB connection settings
type MongoDBConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	AuthDB   string `yaml:"authDb"`
}

// KafkaConfig holds Kafka settings
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Enabled bool     `yaml:"enabled"`
}

// TracingConfig holds OpenTelemetry settings
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled"`
	OTLPEndpoint string  `yaml:"otlpEndpoint"`
	SampleRate   float64 `yaml:"sampleRate"`
}

// LaborConfig holds domain-specific settings
type LaborConfig struct {
	// ShiftCacheTTL bounds how long shift definitions are cached per stage and date.
	ShiftCacheTTL time.Duration `yaml:"shiftCacheTtl"`
	// Holidays lists non-working dates in YYYY-MM-DD format, used for
	// working-day counting in salary costing.
	Holidays []string `yaml:"holidays"`
}

// Default returns a configuration with sensible development defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		MongoDB: MongoDBConfig{
			URI:      "mongodb://localhost:27017",
			Database: "mes_labor",
		},
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
			Enabled: true,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Labor: LaborConfig{
			ShiftCacheTTL: 5 * time.Minute,
		},
	}
}

// Load reads configuration from the given YAML file, falling back to
// defaults when the file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		c.MongoDB.URI = v
	}
	if v := os.Getenv("MONGODB_DATABASE"); v != "" {
		c.MongoDB.Database = v
	}
	if v := os.Getenv("MONGODB_USERNAME"); v != "" {
		c.MongoDB.Username = v
	}
	if v := os.Getenv("MONGODB_PASSWORD"); v != "" {
		c.MongoDB.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		c.Kafka.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		c.Tracing.OTLPEndpoint = v
		c.Tracing.Enabled = true
	}
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s - %s", e.Field, e.Message)
}

// Validate checks the configuration for common issues
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return &ValidationError{Field: "server.port", Message: "port must be between 1 and 65535"}
	}
	if c.MongoDB.URI == "" {
		return &ValidationError{Field: "mongodb.uri", Message: "MongoDB URI is required"}
	}
	if c.MongoDB.Database == "" {
		return &ValidationError{Field: "mongodb.database", Message: "MongoDB database name is required"}
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return &ValidationError{Field: "kafka.brokers", Message: "at least one broker is required when Kafka is enabled"}
	}
	if c.Labor.ShiftCacheTTL < 0 {
		return &ValidationError{Field: "labor.shiftCacheTtl", Message: "cache TTL cannot be negative"}
	}
	for _, h := range c.Labor.Holidays {
		if _, err := time.Parse("2006-01-02", h); err != nil {
			return &ValidationError{Field: "labor.holidays", Message: fmt.Sprintf("invalid holiday date %q, expected YYYY-MM-DD", h)}
		}
	}
	return nil
}

// HolidayDates parses the configured holiday strings into dates
func (c *Config) HolidayDates() []time.Time {
	dates := make([]time.Time, 0, len(c.Labor.Holidays))
	for _, h := range c.Labor.Holidays {
		if d, err := time.Parse("2006-01-02", h); err == nil {
			dates = append(dates, d)
		}
	}
	return dates
}
