// Package config loads and validates the archsrv configuration. Values come from an
// optional TOML file, a .env file in the working directory and the process environment,
// in increasing order of precedence for DATABASE_URL.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jackc/pgconn"
	"github.com/joho/godotenv"
)

// Version is the configuration file format version.
const Version = "0.1.0"

const (
	DatabaseURLEnv       = "DATABASE_URL"
	DefaultDatabaseURL   = "postgres://localhost:5432/arch_db"
	DefaultServerPort    = "9091"
	DefaultMaxBodySize   = 1 << 20
	DefaultLogLevel      = "info"
	DriverPostgres       = "pgx"
	DriverSQLite         = "sqlite"
	sqliteScheme         = "sqlite://"
	sqliteBusyTimeoutArg = "_pragma=busy_timeout(5000)"
)

// ConfigParam holds all configuration parameters for the service.
type ConfigParam struct {
	FormatVersion string `toml:"format_version"`

	ServerHostName     string `toml:"server_hostname"` // empty listens on all interfaces
	ServerPort         string `toml:"server_port"`
	HandleCORS         bool   `toml:"handle_cors"`
	MaxRequestBodySize int64  `toml:"max_request_body_size"` // bytes
	LogLevel           string `toml:"log_level"`

	DB struct {
		URL string `toml:"url"`
	} `toml:"db"`
}

// DatabaseTarget is a validated database location.
type DatabaseTarget struct {
	Driver   string // database/sql driver name
	DSN      string // data source name handed to the driver
	Database string // database name or file path
}

// Default returns a configuration with every default applied and no file or environment
// consulted.
func Default() *ConfigParam {
	c := &ConfigParam{
		FormatVersion:      Version,
		ServerPort:         DefaultServerPort,
		HandleCORS:         true,
		MaxRequestBodySize: DefaultMaxBodySize,
		LogLevel:           DefaultLogLevel,
	}
	c.DB.URL = DefaultDatabaseURL
	return c
}

// Address returns the listen address.
func (c *ConfigParam) Address() string {
	return c.ServerHostName + ":" + c.ServerPort
}

// Database parses the configured database URL.
func (c *ConfigParam) Database() (DatabaseTarget, error) {
	return ParseDatabaseURL(c.DB.URL)
}

// Load reads the config file, if any, then applies the environment and validates the result.
func Load(filename string) (*ConfigParam, error) {
	c := Default()
	if filename != "" {
		content, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
		if _, err := toml.Decode(string(content), c); err != nil {
			return nil, fmt.Errorf("error parsing config file: %v", err)
		}
	}

	// a missing .env is not an error; real environment variables win
	_ = godotenv.Load()
	if url, ok := os.LookupEnv(DatabaseURLEnv); ok {
		c.DB.URL = url
	}

	if err := ValidateConfig(c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}
	return c, nil
}

// ValidateConfig checks that all required values are present and valid.
func ValidateConfig(c *ConfigParam) error {
	if c.FormatVersion != Version {
		return fmt.Errorf("unsupported config file format version: %s", c.FormatVersion)
	}
	if c.ServerPort == "" {
		return fmt.Errorf("server_port is required")
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("max_request_body_size must be positive")
	}
	if _, err := c.Database(); err != nil {
		return err
	}
	return nil
}

// ParseDatabaseURL validates a database URL and resolves the driver for it. Supported forms
// are postgres://... / postgresql://... and sqlite://<path>. The URL must name a database.
func ParseDatabaseURL(url string) (DatabaseTarget, error) {
	switch {
	case url == "":
		return DatabaseTarget{}, fmt.Errorf("database url is required")

	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		pgCfg, err := pgconn.ParseConfig(url)
		if err != nil {
			return DatabaseTarget{}, fmt.Errorf("invalid database url: %v", err)
		}
		if pgCfg.Database == "" {
			return DatabaseTarget{}, fmt.Errorf("database name is required")
		}
		return DatabaseTarget{Driver: DriverPostgres, DSN: url, Database: pgCfg.Database}, nil

	case strings.HasPrefix(url, sqliteScheme):
		dsn := strings.TrimPrefix(url, sqliteScheme)
		path, query, _ := strings.Cut(dsn, "?")
		if path == "" {
			return DatabaseTarget{}, fmt.Errorf("database name is required")
		}
		if path == ":memory:" || strings.Contains(query, "mode=memory") {
			return DatabaseTarget{}, fmt.Errorf("in-memory sqlite databases cannot be shared by a connection pool")
		}
		if !strings.Contains(query, "busy_timeout") {
			if query == "" {
				dsn = path + "?" + sqliteBusyTimeoutArg
			} else {
				dsn = dsn + "&" + sqliteBusyTimeoutArg
			}
		}
		return DatabaseTarget{Driver: DriverSQLite, DSN: dsn, Database: path}, nil
	}
	return DatabaseTarget{}, fmt.Errorf("unsupported database url scheme: %s", url)
}
