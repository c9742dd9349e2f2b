package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	obs "github.com/Black-And-White-Club/mask-tipper/pkg/observability"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	JWT           JWTConfig           `yaml:"jwt"`
	Queue         QueueConfig         `yaml:"queue"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. An empty URL selects the in-process bus.
type NATSConfig struct {
	URL        string `yaml:"url"`
	QueueGroup string `yaml:"queue_group"`
	NKeySeed   string `yaml:"nkey_seed"`
}

// HTTPConfig holds the API server configuration.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	CORSMaxAge     time.Duration `yaml:"cors_max_age"`
	RateLimit      float64       `yaml:"rate_limit"`
	RateBurst      int           `yaml:"rate_burst"`
	RateIdle       time.Duration `yaml:"rate_idle"`
}

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// QueueConfig holds background job configuration.
type QueueConfig struct {
	MaxWorkers int `yaml:"max_workers"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LogLevel       string  `yaml:"log_level"`
	MetricsAddress string  `yaml:"metrics_address"`
	Environment    string  `yaml:"environment"`
	OTLPEndpoint   string  `yaml:"otlp_endpoint"`
	OTLPInsecure   bool    `yaml:"otlp_insecure"`
	SampleRate     float64 `yaml:"sample_rate"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// applyEnvOverrides lets environment variables win over the file.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("NATS_QUEUE_GROUP"); v != "" {
		cfg.NATS.QueueGroup = v
	}
	if v := os.Getenv("NATS_NKEY_SEED"); v != "" {
		cfg.NATS.NKeySeed = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid HTTP_RATE_LIMIT value: %v", err)
		}
		cfg.HTTP.RateLimit = f
	}
	if v := os.Getenv("HTTP_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_RATE_BURST value: %v", err)
		}
		cfg.HTTP.RateBurst = n
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("OTLP_ENDPOINT"); v != "" {
		cfg.Observability.OTLPEndpoint = v
	}
	if v := os.Getenv("OTLP_INSECURE"); v != "" {
		cfg.Observability.OTLPInsecure = v == "true"
	}
	if v := os.Getenv("TRACE_SAMPLE_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid TRACE_SAMPLE_RATE value: %v", err)
		}
		cfg.Observability.SampleRate = f
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_DEFAULT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_DEFAULT_TTL value: %v", err)
		}
		cfg.JWT.DefaultTTL = d
	}
	if v := os.Getenv("QUEUE_MAX_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid QUEUE_MAX_WORKERS value: %v", err)
		}
		cfg.Queue.MaxWorkers = n
	}
	return nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}
	if cfg.HTTP.RateLimit <= 0 {
		cfg.HTTP.RateLimit = 10
	}
	if cfg.HTTP.RateBurst <= 0 {
		cfg.HTTP.RateBurst = 20
	}
	if cfg.HTTP.RateIdle <= 0 {
		cfg.HTTP.RateIdle = 10 * time.Minute
	}
	if cfg.HTTP.CORSMaxAge <= 0 {
		cfg.HTTP.CORSMaxAge = time.Hour
	}
	if cfg.NATS.QueueGroup == "" {
		cfg.NATS.QueueGroup = "mask-tipper"
	}
	if cfg.JWT.DefaultTTL <= 0 {
		cfg.JWT.DefaultTTL = 24 * time.Hour
	}
	if cfg.Queue.MaxWorkers <= 0 {
		cfg.Queue.MaxWorkers = 4
	}
	if cfg.Observability.SampleRate <= 0 {
		cfg.Observability.SampleRate = 0.1
	}
}

func ToObsConfig(appCfg *Config) obs.Config {
	return obs.Config{
		ServiceName:    "mask-tipper",
		Environment:    appCfg.Observability.Environment,
		Version:        Version,
		LogLevel:       appCfg.Observability.LogLevel,
		MetricsAddress: appCfg.Observability.MetricsAddress,
		OTLPEndpoint:   appCfg.Observability.OTLPEndpoint,
		OTLPInsecure:   appCfg.Observability.OTLPInsecure,
		SampleRate:     appCfg.Observability.SampleRate,
	}
}
