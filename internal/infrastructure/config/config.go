package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Gray Logic Edge.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Agent    AgentConfig    `yaml:"agent"`
	Manifest ManifestConfig `yaml:"manifest"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	API      APIConfig      `yaml:"api"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AgentConfig identifies this edge unit.
type AgentConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// ManifestConfig locates the static hardware manifest.
type ManifestConfig struct {
	Path string `yaml:"path"`
}

// MonitorConfig contains monitor loop settings.
type MonitorConfig struct {
	// IntervalMS is the fixed iteration period in milliseconds.
	IntervalMS int `yaml:"interval_ms"`

	// IOTimeoutMS bounds each peripheral read/write; expiry is treated
	// as a read/write failure under the fail-soft policy.
	IOTimeoutMS int `yaml:"io_timeout_ms"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled bool             `yaml:"enabled"`
	Broker  MQTTBrokerConfig `yaml:"broker"`
	Auth    MQTTAuthConfig   `yaml:"auth"`
	QoS     int              `yaml:"qos"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// APIConfig contains HTTP status API settings.
type APIConfig struct {
	Enabled  bool             `yaml:"enabled"`
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
}

// APITimeoutConfig contains HTTP timeout settings in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: GRAYEDGE_SECTION_KEY
// For example: GRAYEDGE_MANIFEST_PATH, GRAYEDGE_MQTT_HOST
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default monitor loop timing.
const (
	defaultIntervalMS  = 1000
	defaultIOTimeoutMS = 500
)

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			ID:   "edge-001",
			Name: "Gray Logic Edge",
		},
		Manifest: ManifestConfig{
			Path: "configs/manifest.yaml",
		},
		Monitor: MonitorConfig{
			IntervalMS:  defaultIntervalMS,
			IOTimeoutMS: defaultIOTimeoutMS,
		},
		MQTT: MQTTConfig{
			Enabled: false,
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "grayedge",
			},
			QoS: 1,
		},
		API: APIConfig{
			Enabled: true,
			Host:    "0.0.0.0",
			Port:    8087,
			Timeouts: APITimeoutConfig{
				Read:  10,
				Write: 10,
				Idle:  60,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: GRAYEDGE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GRAYEDGE_AGENT_ID"); v != "" {
		cfg.Agent.ID = v
	}
	if v := os.Getenv("GRAYEDGE_MANIFEST_PATH"); v != "" {
		cfg.Manifest.Path = v
	}
	if v := os.Getenv("GRAYEDGE_MONITOR_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Monitor.IntervalMS = n
		}
	}
	if v := os.Getenv("GRAYEDGE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("GRAYEDGE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("GRAYEDGE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}
	if v := os.Getenv("GRAYEDGE_API_HOST"); v != "" {
		cfg.API.Host = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Agent.ID == "" {
		errs = append(errs, "agent.id is required")
	}

	if c.Manifest.Path == "" {
		errs = append(errs, "manifest.path is required")
	}

	if c.Monitor.IntervalMS <= 0 {
		errs = append(errs, "monitor.interval_ms must be positive")
	}
	if c.Monitor.IOTimeoutMS <= 0 {
		errs = append(errs, "monitor.io_timeout_ms must be positive")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	if c.API.Enabled && (c.API.Port < 1 || c.API.Port > 65535) {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// Interval returns the monitor loop period as a Duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Monitor.IntervalMS) * time.Millisecond
}

// IOTimeout returns the per-call peripheral I/O bound as a Duration.
func (c *Config) IOTimeout() time.Duration {
	return time.Duration(c.Monitor.IOTimeoutMS) * time.Millisecond
}

// ReadTimeout returns the API read timeout as a Duration.
func (c APIConfig) ReadTimeout() time.Duration {
	return time.Duration(c.Timeouts.Read) * time.Second
}

// WriteTimeout returns the API write timeout as a Duration.
func (c APIConfig) WriteTimeout() time.Duration {
	return time.Duration(c.Timeouts.Write) * time.Second
}

// IdleTimeout returns the API idle timeout as a Duration.
func (c APIConfig) IdleTimeout() time.Duration {
	return time.Duration(c.Timeouts.Idle) * time.Second
}
