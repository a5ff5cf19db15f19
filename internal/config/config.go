// Package config loads wolfden settings from an optional YAML file and the
// environment. Environment values win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"wolfden/internal/domain/predator"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	DefaultAddr       = ":5000"
	DefaultServerURL  = "http://127.0.0.1:5000"
	DefaultSQLitePath = "./data/wolfden.db"
	DefaultRetryDelay = 2 * time.Second
)

type Config struct {
	Server  Server          `yaml:"server"`
	Wolf    predator.Tuning `yaml:"wolf"`
	Journal Journal         `yaml:"journal"`
	Client  Client          `yaml:"client"`
	Log     Log             `yaml:"log"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type Journal struct {
	Driver     string `yaml:"driver"`
	DSN        string `yaml:"dsn"`
	SQLitePath string `yaml:"sqlite_path"`
	ArchiveDir string `yaml:"archive_dir"`
	MaxEvents  int    `yaml:"max_events"`
	Migrate    bool   `yaml:"migrate"`
}

type Client struct {
	ServerURL  string        `yaml:"server_url"`
	Timeout    time.Duration `yaml:"timeout"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		Server:  Server{Addr: DefaultAddr},
		Wolf:    predator.DefaultTuning(),
		Journal: Journal{Driver: DriverMemory, SQLitePath: DefaultSQLitePath, Migrate: true},
		Client:  Client{ServerURL: DefaultServerURL, Timeout: 3 * time.Second, RetryDelay: DefaultRetryDelay},
		Log:     Log{Level: "info", Format: "text"},
	}
}

// Load reads path when it is non-empty, applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Wolf.ProximityThreshold = intEnv("WOLF_PROXIMITY_THRESHOLD", c.Wolf.ProximityThreshold)
	c.Wolf.SatiationCap = intEnv("WOLF_SATIATION_CAP", c.Wolf.SatiationCap)
	c.Wolf.AreaSize = intEnv("WOLF_AREA_SIZE", c.Wolf.AreaSize)
	c.Wolf.MoveInterval = durationEnv("WOLF_MOVE_INTERVAL", c.Wolf.MoveInterval)
	c.Wolf.DigestPause = durationEnv("WOLF_DIGEST_PAUSE", c.Wolf.DigestPause)
	c.Wolf.SettleDelay = durationEnv("WOLF_SETTLE_DELAY", c.Wolf.SettleDelay)

	c.Server.Addr = stringEnv("WOLFDEN_ADDR", c.Server.Addr)
	c.Journal.DSN = stringEnv("WOLFDEN_DB_DSN", c.Journal.DSN)
	c.Journal.Driver = stringEnv("WOLFDEN_JOURNAL_DRIVER", c.Journal.Driver)
	c.Journal.SQLitePath = stringEnv("WOLFDEN_SQLITE_PATH", c.Journal.SQLitePath)
	c.Journal.ArchiveDir = stringEnv("WOLFDEN_ARCHIVE_DIR", c.Journal.ArchiveDir)
	c.Client.ServerURL = stringEnv("WOLFDEN_SERVER_URL", c.Client.ServerURL)
	c.Log.Level = stringEnv("WOLFDEN_LOG_LEVEL", c.Log.Level)
	c.Log.Format = stringEnv("WOLFDEN_LOG_FORMAT", c.Log.Format)

	// A DSN alone selects postgres, matching how the server was run before
	// the driver switch existed.
	if os.Getenv("WOLFDEN_JOURNAL_DRIVER") == "" && c.Journal.Driver == DriverMemory && c.Journal.DSN != "" {
		c.Journal.Driver = DriverPostgres
	}
}

func (c Config) Validate() error {
	w := c.Wolf
	if w.ProximityThreshold <= 0 || w.SatiationCap <= 0 || w.AreaSize <= 0 {
		return fmt.Errorf("%w: wolf threshold, cap and area must be positive", ErrInvalidConfig)
	}
	if w.MoveInterval <= 0 || w.DigestPause <= 0 || w.SettleDelay < 0 {
		return fmt.Errorf("%w: wolf durations must be positive", ErrInvalidConfig)
	}
	switch c.Journal.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Journal.DSN == "" {
			return fmt.Errorf("%w: postgres journal needs WOLFDEN_DB_DSN", ErrInvalidConfig)
		}
	case DriverSQLite:
		if c.Journal.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite journal needs a path", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown journal driver %q", ErrInvalidConfig, c.Journal.Driver)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: empty server addr", ErrInvalidConfig)
	}
	if c.Client.ServerURL == "" {
		return fmt.Errorf("%w: empty server url", ErrInvalidConfig)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

func stringEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// durationEnv accepts Go durations ("750ms") or bare milliseconds.
func durationEnv(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
