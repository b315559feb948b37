// Package config loads the server configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Log formats.
const (
	FormatText   = "text"
	FormatLogfmt = "logfmt"
	FormatJSON   = "json"
)

// Defaults.
const (
	DefaultAddr            = "0.0.0.0:8080"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultDBPath          = "./db.sqlite"
	DefaultLogLevel        = "info"
	DefaultServiceName     = "todo-api"
	DefaultMetricsInterval = 30 * time.Second
)

// Config is the full server configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	Log       LogConfig       `toml:"log"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// StorageConfig selects and configures the todo store.
type StorageConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
	DSN    string `toml:"dsn"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// TelemetryConfig configures OpenTelemetry export. Exporter endpoints come from
// the standard OTEL_EXPORTER_OTLP_* environment variables.
type TelemetryConfig struct {
	Enabled         bool     `toml:"enabled"`
	ServiceName     string   `toml:"service_name"`
	MetricsInterval Duration `toml:"metrics_interval"`
}

// Duration is a time.Duration that decodes from strings like "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ShutdownTimeout: Duration{DefaultShutdownTimeout},
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   DefaultDBPath,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: FormatText,
		},
		Telemetry: TelemetryConfig{
			ServiceName:     DefaultServiceName,
			MetricsInterval: Duration{DefaultMetricsInterval},
		},
	}
}

// Load builds the configuration from, in increasing priority:
// 1. Defaults
// 2. The TOML file named by -config or TODO_CONFIG
// 3. Environment variables
// 4. Flags set explicitly in args
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	if fs == nil {
		fs = flag.NewFlagSet("todo-api", flag.ContinueOnError)
	}

	cfg := Default()
	f := bindFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	path := f.configFile
	if path == "" {
		path = os.Getenv("TODO_CONFIG")
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	f.apply(fs, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TODO_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TODO_DB_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("TODO_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("TODO_DB_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("TODO_TELEMETRY"); v != "" {
		enabled, err := boolFromString(v)
		if err != nil {
			return fmt.Errorf("TODO_TELEMETRY: %w", err)
		}
		cfg.Telemetry.Enabled = enabled
	}
	return nil
}

// flagValues holds flag targets until parsing tells us which were set.
type flagValues struct {
	configFile string
	addr       string
	driver     string
	path       string
	dsn        string
	level      string
	format     string
	telemetry  bool
}

func bindFlags(fs *flag.FlagSet) *flagValues {
	f := &flagValues{}
	fs.StringVar(&f.configFile, "config", "", "Path to a TOML config file")
	fs.StringVar(&f.addr, "addr", DefaultAddr, "HTTP server address")
	fs.StringVar(&f.driver, "db-driver", DriverSQLite, "Storage driver (sqlite, postgres, memory)")
	fs.StringVar(&f.path, "db-path", DefaultDBPath, "SQLite database file")
	fs.StringVar(&f.dsn, "db-dsn", "", "PostgreSQL connection string")
	fs.StringVar(&f.level, "log-level", DefaultLogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&f.format, "log-format", FormatText, "Log format (text, logfmt, json)")
	fs.BoolVar(&f.telemetry, "telemetry", false, "Export traces and metrics over OTLP/HTTP")
	return f
}

// apply copies only the flags the user set, so a flag default never hides a
// value from the file or the environment.
func (f *flagValues) apply(fs *flag.FlagSet, cfg *Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "addr":
			cfg.Server.Addr = f.addr
		case "db-driver":
			cfg.Storage.Driver = f.driver
		case "db-path":
			cfg.Storage.Path = f.path
		case "db-dsn":
			cfg.Storage.DSN = f.dsn
		case "log-level":
			cfg.Log.Level = f.level
		case "log-format":
			cfg.Log.Format = f.format
		case "telemetry":
			cfg.Telemetry.Enabled = f.telemetry
		}
	})
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Server.ShutdownTimeout.Duration <= 0 {
		return errors.New("server.shutdown_timeout must be positive")
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return errors.New("storage.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch c.Log.Format {
	case FormatText, FormatLogfmt, FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	if c.Telemetry.Enabled {
		if c.Telemetry.ServiceName == "" {
			return errors.New("telemetry.service_name must not be empty")
		}
		if c.Telemetry.MetricsInterval.Duration <= 0 {
			return errors.New("telemetry.metrics_interval must be positive")
		}
	}

	return nil
}

func boolFromString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
