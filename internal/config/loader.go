package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configFile string
	envFile    string
	lookupEnv  func(string) (string, bool)
}

// LoaderOption customizes a Loader
type LoaderOption func(*Loader)

// WithConfigFile reads the TOML file at path instead of the default location
func WithConfigFile(path string) LoaderOption {
	return func(l *Loader) { l.configFile = path }
}

// WithEnvFile reads dotenv values from path instead of ./.env
func WithEnvFile(path string) LoaderOption {
	return func(l *Loader) { l.envFile = path }
}

// WithLookupEnv replaces os.LookupEnv, mostly for tests
func WithLookupEnv(lookup func(string) (string, bool)) LoaderOption {
	return func(l *Loader) { l.lookupEnv = lookup }
}

// NewLoader creates a new configuration loader
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		config:    NewConfig(),
		envFile:   ".env",
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DefaultConfigFile returns $WT_CONFIG or <user config dir>/worktime/config.toml
func DefaultConfigFile(lookup func(string) (string, bool)) string {
	if path, ok := lookup("WT_CONFIG"); ok && path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "worktime", "config.toml")
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, if present
// 3. Override with environment variables, then .env values for unset keys
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	dotenv, err := l.readEnvFile()
	if err != nil {
		return nil, err
	}
	lookup := func(key string) (string, bool) {
		if value, ok := l.lookupEnv(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	}
	if err := l.config.loadFromLookup(lookup); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) loadFile() error {
	path := l.configFile
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile(l.lookupEnv)
	}
	if path == "" {
		return nil
	}

	meta, err := toml.DecodeFile(path, l.config)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return &ConfigError{Field: undecoded[0].String(), Message: "unknown setting in " + path}
	}
	return nil
}

func (l *Loader) readEnvFile() (map[string]string, error) {
	if l.envFile == "" {
		return nil, nil
	}
	values, err := godotenv.Read(l.envFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", l.envFile, err)
	}
	return values, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir            *string
	DBFilename       *string
	DBQueryTimeout   *time.Duration
	DBWriteTimeout   *time.Duration
	DBDirPermissions *uint32

	// Timesheet overrides
	HideRegistered *bool
	TimeFormat     *string
	Location       *string

	// Summary overrides
	StartingPoint *string

	// Clock overrides
	ConfirmClockOut *bool

	// Validation overrides
	ProjectNameMinLength *int
	ProjectNameMaxLength *int
	MaxIntervalDuration  *time.Duration

	// Server overrides
	ServerAddr *string

	// Application overrides
	Env      *string
	Timeout  *time.Duration
	Verbose  *bool
	LogLevel *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Database overrides
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		config.Database.WriteTimeout = *overrides.DBWriteTimeout
	}
	if overrides.DBDirPermissions != nil {
		config.Database.DirPermissions = *overrides.DBDirPermissions
	}

	// Timesheet overrides
	if overrides.HideRegistered != nil {
		config.Timesheet.HideRegistered = *overrides.HideRegistered
	}
	if overrides.TimeFormat != nil {
		config.Timesheet.TimeFormat = *overrides.TimeFormat
	}
	if overrides.Location != nil {
		config.Timesheet.Location = *overrides.Location
	}

	if overrides.StartingPoint != nil {
		config.Summary.StartingPoint = *overrides.StartingPoint
	}
	if overrides.ConfirmClockOut != nil {
		config.Clock.ConfirmClockOut = *overrides.ConfirmClockOut
	}

	// Validation overrides
	if overrides.ProjectNameMinLength != nil {
		config.Validation.ProjectNameMinLength = *overrides.ProjectNameMinLength
	}
	if overrides.ProjectNameMaxLength != nil {
		config.Validation.ProjectNameMaxLength = *overrides.ProjectNameMaxLength
	}
	if overrides.MaxIntervalDuration != nil {
		config.Validation.MaxIntervalDuration = *overrides.MaxIntervalDuration
	}

	if overrides.ServerAddr != nil {
		config.Server.Addr = *overrides.ServerAddr
	}

	// Application overrides
	if overrides.Env != nil {
		config.Application.Env = strings.ToLower(*overrides.Env)
	}
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	if overrides.LogLevel != nil {
		config.Application.LogLevel = *overrides.LogLevel
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseFloatWithFallback parses a float string with a fallback value
func ParseFloatWithFallback(s string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
