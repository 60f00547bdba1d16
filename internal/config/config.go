package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/radar/internal/domain"
)

// Config holds the radar server configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Radar    RadarConfig    `yaml:"radar"`
	Stream   StreamConfig   `yaml:"stream"`
	Events   EventsConfig   `yaml:"events"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds collected-set storage settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, valkey, memory (default: redis)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// RadarConfig holds engine tuning and the catalog source.
type RadarConfig struct {
	MinRadiusMeters        float64 `yaml:"min_radius_m"`
	MaxRadiusMeters        float64 `yaml:"max_radius_m"`
	ArrivalThresholdMeters float64 `yaml:"arrival_threshold_m"`
	FeedbackRangeMeters    float64 `yaml:"feedback_range_m"`
	RearmThresholdSec      float64 `yaml:"rearm_threshold_sec"`
	CatalogPath            string  `yaml:"catalog_path"`         // empty = built-in catalog
	Seed                   uint64  `yaml:"seed"`                 // 0 = random
	SessionIdleTTLSec      int     `yaml:"session_idle_ttl_sec"` // <0 = never evict idle sessions
	SessionSweepSec        int     `yaml:"session_sweep_sec"`
}

// StreamConfig holds websocket feedback stream settings.
type StreamConfig struct {
	PingIntervalSec int      `yaml:"ping_interval_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	BufferSize      int      `yaml:"buffer_size"`
	AllowedOrigins  []string `yaml:"allowed_origins"` // empty = any
}

// EventsConfig holds discovery event publishing settings.
type EventsConfig struct {
	Brokers []string `yaml:"brokers"` // empty = publishing disabled
	Topic   string   `yaml:"topic"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// Engine converts the radar section into engine parameters.
func (r RadarConfig) Engine() domain.EngineConfig {
	return domain.EngineConfig{
		MinRadiusMeters:        r.MinRadiusMeters,
		MaxRadiusMeters:        r.MaxRadiusMeters,
		ArrivalThresholdMeters: r.ArrivalThresholdMeters,
		FeedbackRangeMeters:    r.FeedbackRangeMeters,
		RearmThresholdSeconds:  r.RearmThresholdSec,
	}
}

// SessionIdleTTL returns how long a session may go without fixes before it
// is evicted. Zero disables eviction.
func (r RadarConfig) SessionIdleTTL() time.Duration {
	if r.SessionIdleTTLSec < 0 {
		return 0
	}
	return time.Duration(r.SessionIdleTTLSec) * time.Second
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates a YAML document.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}

	def := domain.DefaultEngineConfig()
	if c.Radar.MinRadiusMeters <= 0 {
		c.Radar.MinRadiusMeters = def.MinRadiusMeters
	}
	if c.Radar.MaxRadiusMeters <= 0 {
		c.Radar.MaxRadiusMeters = def.MaxRadiusMeters
	}
	if c.Radar.ArrivalThresholdMeters <= 0 {
		c.Radar.ArrivalThresholdMeters = def.ArrivalThresholdMeters
	}
	if c.Radar.FeedbackRangeMeters <= 0 {
		c.Radar.FeedbackRangeMeters = def.FeedbackRangeMeters
	}
	if c.Radar.RearmThresholdSec <= 0 {
		c.Radar.RearmThresholdSec = def.RearmThresholdSeconds
	}
	if c.Radar.SessionIdleTTLSec == 0 {
		c.Radar.SessionIdleTTLSec = 900
	}
	if c.Radar.SessionSweepSec <= 0 {
		c.Radar.SessionSweepSec = 30
	}

	if c.Stream.PingIntervalSec <= 0 {
		c.Stream.PingIntervalSec = 30
	}
	if c.Stream.WriteTimeoutSec <= 0 {
		c.Stream.WriteTimeoutSec = 10
	}
	if c.Stream.BufferSize <= 0 {
		c.Stream.BufferSize = 64
	}
	if c.Events.Topic == "" {
		c.Events.Topic = "radar.discoveries"
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "radar:"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "redis", "valkey":
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for driver %q", c.Database.Driver)
		}
	case "memory":
	default:
		return fmt.Errorf("database.driver must be \"redis\", \"valkey\" or \"memory\", got %q", c.Database.Driver)
	}
	if c.Radar.MaxRadiusMeters < c.Radar.MinRadiusMeters {
		return fmt.Errorf(
			"radar.max_radius_m (%g) must not be less than radar.min_radius_m (%g)",
			c.Radar.MaxRadiusMeters, c.Radar.MinRadiusMeters,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
