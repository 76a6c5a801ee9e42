package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/micro/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "micro.json"

	// YAMLConfigFileName is the name of the YAML configuration file. It is
	// used when no JSON file exists.
	YAMLConfigFileName = "micro.yaml"

	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// DefaultReadLimit is the default maximum client frame size in bytes.
	DefaultReadLimit = 64 << 10

	// DefaultPingInterval is the default WebSocket keepalive interval.
	DefaultPingInterval = "30s"

	// DefaultShutdownTimeout is the default graceful shutdown timeout.
	DefaultShutdownTimeout = "10s"

	// DefaultSQLiteDSN is the database file used by the sqlite driver.
	DefaultSQLiteDSN = "micro.db"

	// DefaultS3Prefix is the object key prefix used by the s3 driver.
	DefaultS3Prefix = "micro/"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverS3     = "s3"
)

// Config represents the complete micro configuration.
type Config struct {
	// Name is the application name shown in the page title.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Server contains HTTP and WebSocket settings.
	Server ServerConfig `json:"server" yaml:"server"`

	// Store selects the persistence backend.
	Store StoreConfig `json:"store" yaml:"store"`

	// MountPolicy is "ignore" or "error".
	MountPolicy string `json:"mountPolicy,omitempty" yaml:"mountPolicy,omitempty"`

	// Reactive contains signal engine settings.
	Reactive ReactiveConfig `json:"reactive" yaml:"reactive"`

	// Log contains logging settings.
	Log LogConfig `json:"log" yaml:"log"`

	// Dev enables development behavior: debug logging and no client caching.
	Dev bool `json:"dev,omitempty" yaml:"dev,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP and WebSocket settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// ReadLimit is the maximum size of one client frame in bytes.
	ReadLimit int64 `json:"readLimit,omitempty" yaml:"readLimit,omitempty"`

	// PingInterval is the keepalive interval (e.g., "30s").
	PingInterval string `json:"pingInterval,omitempty" yaml:"pingInterval,omitempty"`

	// ShutdownTimeout bounds graceful shutdown (e.g., "10s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty" yaml:"shutdownTimeout,omitempty"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	// Driver is "memory", "sqlite" or "s3".
	Driver string `json:"driver,omitempty" yaml:"driver,omitempty"`

	// DSN is the SQLite database path.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty"`

	// Bucket is the S3 bucket.
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`

	// Prefix is prepended to S3 object keys.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Region is the S3 region.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Endpoint overrides the S3 endpoint.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// PathStyle enables path-style S3 addressing.
	PathStyle bool `json:"pathStyle,omitempty" yaml:"pathStyle,omitempty"`

	// AccessKeyID and SecretAccessKey default to AWS_ACCESS_KEY_ID and
	// AWS_SECRET_ACCESS_KEY.
	AccessKeyID     string `json:"accessKeyId,omitempty" yaml:"accessKeyId,omitempty"`
	SecretAccessKey string `json:"secretAccessKey,omitempty" yaml:"secretAccessKey,omitempty"`
}

// ReactiveConfig contains signal engine settings.
type ReactiveConfig struct {
	// MaxUpdateDepth limits nested write cascades. Zero keeps the engine
	// default.
	MaxUpdateDepth int `json:"maxUpdateDepth,omitempty" yaml:"maxUpdateDepth,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Name: "micro",
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadLimit:       DefaultReadLimit,
			PingInterval:    DefaultPingInterval,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Store: StoreConfig{
			Driver: DriverMemory,
		},
		MountPolicy: "ignore",
		Log: LogConfig{
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for micro.json, then micro.yaml.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(dir, YAMLConfigFileName)
	}
	return LoadFile(path)
}

// LoadOrDefault behaves like Load but returns the defaults when dir holds
// no configuration file.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		cfg := New()
		cfg.applyDefaults()
		return cfg, nil
	}
	return Load(dir)
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are decoded as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("M007").
				WithDetail("No " + ConfigFileName + " or " + YAMLConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create micro.json or run without --config to use the defaults")
		}
		return nil, errors.New("M007").WithDetail(err.Error()).Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("M007").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid " + formatName(path)).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func formatName(path string) string {
	if isYAML(path) {
		return "YAML"
	}
	return "JSON"
}

// SaveTo writes the configuration to the specified path in the format its
// extension selects.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("M007").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("M007").WithDetail(err.Error()).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadLimit == 0 {
		c.Server.ReadLimit = DefaultReadLimit
	}
	if c.Server.PingInterval == "" {
		c.Server.PingInterval = DefaultPingInterval
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	c.Store.Driver = strings.ToLower(c.Store.Driver)
	if c.Store.Driver == "" {
		c.Store.Driver = DriverMemory
	}
	if c.Store.Driver == DriverSQLite && c.Store.DSN == "" {
		c.Store.DSN = DefaultSQLiteDSN
	}
	if c.Store.Driver == DriverS3 {
		if c.Store.Prefix == "" {
			c.Store.Prefix = DefaultS3Prefix
		}
		if c.Store.Region == "" {
			c.Store.Region = os.Getenv("AWS_REGION")
		}
		if c.Store.AccessKeyID == "" {
			c.Store.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
		}
		if c.Store.SecretAccessKey == "" {
			c.Store.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
		}
	}

	if c.MountPolicy == "" {
		c.MountPolicy = "ignore"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
		if c.Dev {
			c.Log.Level = "debug"
		}
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// ApplyDefaults fills in defaults after fields were set programmatically,
// e.g. from command-line flags.
func (c *Config) ApplyDefaults() {
	c.applyDefaults()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	invalid := func(detail string) error {
		return errors.New("M007").WithDetail(detail)
	}

	if c.Server.Addr == "" {
		return invalid("server.addr must not be empty")
	}
	if c.Server.ReadLimit < 0 {
		return invalid("server.readLimit must not be negative")
	}
	for name, v := range map[string]string{
		"server.pingInterval":    c.Server.PingInterval,
		"server.shutdownTimeout": c.Server.ShutdownTimeout,
	} {
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			return invalid(name + " must be a positive duration, got " + quote(v))
		}
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.DSN == "" {
			return invalid("store.dsn is required for the sqlite driver")
		}
	case DriverS3:
		if c.Store.Bucket == "" {
			return invalid("store.bucket is required for the s3 driver")
		}
		if c.Store.Region == "" {
			return invalid("store.region is required for the s3 driver")
		}
	default:
		return invalid("store.driver must be memory, sqlite or s3, got " + quote(c.Store.Driver))
	}

	switch c.MountPolicy {
	case "ignore", "error":
	default:
		return invalid("mountPolicy must be ignore or error, got " + quote(c.MountPolicy))
	}

	if c.Reactive.MaxUpdateDepth < 0 {
		return invalid("reactive.maxUpdateDepth must not be negative")
	}

	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok && c.Log.Level != "" {
		return invalid("log.level must be debug, info, warn or error, got " + quote(c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid("log.format must be text or json, got " + quote(c.Log.Format))
	}
	return nil
}

func quote(s string) string {
	return `"` + s + `"`
}

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// LogLevel returns the configured slog level. Without a level it is debug
// in dev mode and info otherwise.
func (c *Config) LogLevel() slog.Level {
	if l, ok := levels[strings.ToLower(c.Log.Level)]; ok {
		return l
	}
	if c.Dev {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// PingInterval returns the keepalive interval.
func (c *Config) PingInterval() time.Duration {
	return parseDuration(c.Server.PingInterval, DefaultPingInterval)
}

// ShutdownTimeout returns the graceful shutdown timeout.
func (c *Config) ShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, DefaultShutdownTimeout)
}

func parseDuration(v, def string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(def)
	}
	return d
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
