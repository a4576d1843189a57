// Package config loads planner settings from YAML layered over embedded defaults.
package config

import (
	_ "embed"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/dna-planner/internal/engine"
	"github.com/KirkDiggler/dna-planner/internal/errors"
	"github.com/KirkDiggler/dna-planner/internal/repositories/history"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every planner setting
type Config struct {
	DataDir string        `yaml:"data_dir"`
	Files   FilesConfig   `yaml:"files"`
	History HistoryConfig `yaml:"history"`
	Engine  EngineConfig  `yaml:"engine"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// FilesConfig names the flat files inside the data directory
type FilesConfig struct {
	Roster   string `yaml:"roster"`
	Recipes  string `yaml:"recipes"`
	Wishlist string `yaml:"wishlist"`
	History  string `yaml:"history"`
}

// HistoryConfig selects the amount history backend
type HistoryConfig struct {
	Store      string      `yaml:"store"`
	SQLitePath string      `yaml:"sqlite_path"`
	Redis      RedisConfig `yaml:"redis"`
}

// RedisConfig holds the Redis history backend connection
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	DB        int    `yaml:"db"`
	Password  string `yaml:"password"`
	KeyPrefix string `yaml:"key_prefix"`
}

// EngineConfig tunes the requirement engine
type EngineConfig struct {
	ParentLevel string `yaml:"parent_level"`
}

// MetricsConfig holds the metrics textfile location
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Load reads the embedded defaults, then overlays path when it is set.
// Keys missing from the file keep their default.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "parse embedded defaults")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("config file %s does not exist", path)
		}
		if err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "read config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "parse config %s", path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enums and required values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("data_dir", c.DataDir, vb)
	errors.ValidateRequired("files.roster", c.Files.Roster, vb)
	errors.ValidateRequired("files.recipes", c.Files.Recipes, vb)
	errors.ValidateRequired("files.wishlist", c.Files.Wishlist, vb)
	errors.ValidateEnum("history.store", c.History.Store, history.Backends, vb)

	switch c.History.Store {
	case history.BackendFile:
		errors.ValidateRequired("files.history", c.Files.History, vb)
	case history.BackendSQLite:
		errors.ValidateRequired("history.sqlite_path", c.History.SQLitePath, vb)
	case history.BackendRedis:
		errors.ValidateRequired("history.redis.addr", c.History.Redis.Addr, vb)
		errors.ValidateNonNegative("history.redis.db", c.History.Redis.DB, vb)
	}

	if _, ok := engine.ParseParentLevel(c.Engine.ParentLevel); !ok {
		vb.Fieldf("engine.parent_level", "must be own or child, got %q", c.Engine.ParentLevel)
	}
	if _, ok := logLevels[strings.ToLower(c.Log.Level)]; !ok {
		vb.Fieldf("log.level", "must be debug, info, warn or error, got %q", c.Log.Level)
	}

	return vb.Build()
}

// Resolve joins a relative path onto the data directory
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}

// HistoryFile is the resolved flat-file history path
func (c *Config) HistoryFile() string {
	return c.Resolve(c.Files.History)
}

// SQLitePath is the resolved SQLite database path
func (c *Config) SQLitePath() string {
	return c.Resolve(c.History.SQLitePath)
}

// MetricsTextfile is the resolved metrics path, empty when disabled
func (c *Config) MetricsTextfile() string {
	return c.Resolve(c.Metrics.Textfile)
}

// ParentLevel returns the configured engine parent level
func (c *Config) ParentLevel() engine.ParentLevel {
	level, _ := engine.ParseParentLevel(c.Engine.ParentLevel)
	return level
}

// LogLevel returns the slog level, info when unset
func (c *Config) LogLevel() slog.Level {
	if level, ok := logLevels[strings.ToLower(c.Log.Level)]; ok {
		return level
	}
	return slog.LevelInfo
}
