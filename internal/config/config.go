package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"worktime/internal/domain"
)

// Environments select the storage backend.
const (
	EnvProduction = "production"
	EnvTest       = "test"
	EnvMemory     = "memory"
)

// Config holds all configuration options for the worktime application
type Config struct {
	Database    DatabaseConfig    `toml:"database"`
	Timesheet   TimesheetConfig   `toml:"timesheet"`
	Summary     SummaryConfig     `toml:"summary"`
	Clock       ClockConfig       `toml:"clock"`
	Validation  ValidationConfig  `toml:"validation"`
	Server      ServerConfig      `toml:"server"`
	Application ApplicationConfig `toml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `toml:"dir" env:"WT_DB_DIR"`
	Filename       string        `toml:"filename" env:"WT_DB_FILENAME"`
	QueryTimeout   time.Duration `toml:"query_timeout" env:"WT_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `toml:"write_timeout" env:"WT_DB_WRITE_TIMEOUT"`
	BusyTimeout    time.Duration `toml:"busy_timeout" env:"WT_DB_BUSY_TIMEOUT"`
	DirPermissions uint32        `toml:"dir_permissions" env:"WT_DB_DIR_PERMISSIONS"`
}

// TimesheetConfig controls how timesheets are read and shown
type TimesheetConfig struct {
	HideRegistered bool `toml:"hide_registered" env:"WT_TIMESHEET_HIDE_REGISTERED"`
	// TimeFormat is "digital" (1:05) or "fraction" (1.08).
	TimeFormat string `toml:"time_format" env:"WT_TIMESHEET_TIME_FORMAT"`
	// Location is an IANA zone name used to split days; empty means local time.
	Location string `toml:"location" env:"WT_TIMESHEET_LOCATION"`
}

// SummaryConfig controls the window of time shown per project
type SummaryConfig struct {
	StartingPoint string `toml:"starting_point" env:"WT_SUMMARY_STARTING_POINT"`
	Width         int    `toml:"width" env:"WT_SUMMARY_WIDTH"`
}

type ClockConfig struct {
	ConfirmClockOut bool `toml:"confirm_clock_out" env:"WT_CLOCK_CONFIRM_CLOCK_OUT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	ProjectNameMinLength int           `toml:"project_name_min_length" env:"WT_VALIDATION_PROJECT_NAME_MIN"`
	ProjectNameMaxLength int           `toml:"project_name_max_length" env:"WT_VALIDATION_PROJECT_NAME_MAX"`
	MaxIntervalDuration  time.Duration `toml:"max_interval_duration" env:"WT_VALIDATION_MAX_INTERVAL_DURATION"`
}

// ServerConfig configures `wt serve`
type ServerConfig struct {
	Addr           string   `toml:"addr" env:"WT_SERVER_ADDR"`
	AllowedOrigins []string `toml:"allowed_origins" env:"WT_SERVER_ALLOWED_ORIGINS"`
	// RateLimit is requests per second across all clients; zero disables it.
	RateLimit float64 `toml:"rate_limit" env:"WT_SERVER_RATE_LIMIT"`
	RateBurst int     `toml:"rate_burst" env:"WT_SERVER_RATE_BURST"`
	// MaintenanceSchedule is a cron expression; empty disables maintenance.
	MaintenanceSchedule string `toml:"maintenance_schedule" env:"WT_SERVER_MAINTENANCE_SCHEDULE"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Env      string        `toml:"env" env:"WT_ENV"`
	Timeout  time.Duration `toml:"timeout" env:"WT_APP_TIMEOUT"`
	Verbose  bool          `toml:"verbose" env:"WT_APP_VERBOSE"`
	LogLevel string        `toml:"log_level" env:"WT_LOG_LEVEL"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Dir:            filepath.Join(homeDir, ".worktime"),
			Filename:       "worktime.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			BusyTimeout:    5 * time.Second,
			DirPermissions: 0755,
		},
		Timesheet: TimesheetConfig{
			HideRegistered: false,
			TimeFormat:     "digital",
		},
		Summary: SummaryConfig{
			StartingPoint: "week",
			Width:         60,
		},
		Clock: ClockConfig{
			ConfirmClockOut: true,
		},
		Validation: ValidationConfig{
			ProjectNameMinLength: 1,
			ProjectNameMaxLength: 255,
			MaxIntervalDuration:  0,
		},
		Server: ServerConfig{
			Addr:      "127.0.0.1:8080",
			RateLimit: 20,
			RateBurst: 40,
		},
		Application: ApplicationConfig{
			Env:      EnvProduction,
			Timeout:  60 * time.Second,
			LogLevel: "info",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetStartingPoint parses the configured summary window
func (c *Config) GetStartingPoint() (domain.StartingPoint, error) {
	return domain.ParseStartingPoint(c.Summary.StartingPoint)
}

// GetHoursMinutesFormat returns the configured duration format, digital when unknown
func (c *Config) GetHoursMinutesFormat() domain.HoursMinutesFormat {
	if format, ok := domain.ParseHoursMinutesFormat(c.Timesheet.TimeFormat); ok {
		return format
	}
	return domain.DigitalHoursMinutesFormat
}

// GetLocation loads the configured time zone
func (c *Config) GetLocation() (*time.Location, error) {
	if strings.TrimSpace(c.Timesheet.Location) == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timesheet.Location)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	return c.loadFromLookup(os.LookupEnv)
}

// loadFromLookup applies every WT_* variable lookup can resolve. Values that
// fail to parse keep the current setting, matching the flag fallbacks.
func (c *Config) loadFromLookup(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		value, ok := lookup(key)
		if !ok || value == "" {
			return "", false
		}
		return value, true
	}

	// Database configuration
	if v, ok := get("WT_DB_DIR"); ok {
		c.Database.Dir = v
	}
	if v, ok := get("WT_DB_FILENAME"); ok {
		c.Database.Filename = v
	}
	if v, ok := get("WT_DB_QUERY_TIMEOUT"); ok {
		c.Database.QueryTimeout = ParseDurationWithFallback(v, c.Database.QueryTimeout)
	}
	if v, ok := get("WT_DB_WRITE_TIMEOUT"); ok {
		c.Database.WriteTimeout = ParseDurationWithFallback(v, c.Database.WriteTimeout)
	}
	if v, ok := get("WT_DB_BUSY_TIMEOUT"); ok {
		c.Database.BusyTimeout = ParseDurationWithFallback(v, c.Database.BusyTimeout)
	}
	if v, ok := get("WT_DB_DIR_PERMISSIONS"); ok {
		c.Database.DirPermissions = ParseUint32WithFallback(v, 8, c.Database.DirPermissions)
	}

	// Timesheet configuration
	if v, ok := get("WT_TIMESHEET_HIDE_REGISTERED"); ok {
		c.Timesheet.HideRegistered = ParseBoolWithFallback(v, c.Timesheet.HideRegistered)
	}
	if v, ok := get("WT_TIMESHEET_TIME_FORMAT"); ok {
		c.Timesheet.TimeFormat = v
	}
	if v, ok := get("WT_TIMESHEET_LOCATION"); ok {
		c.Timesheet.Location = v
	}

	// Summary configuration
	if v, ok := get("WT_SUMMARY_STARTING_POINT"); ok {
		c.Summary.StartingPoint = v
	}
	if v, ok := get("WT_SUMMARY_WIDTH"); ok {
		c.Summary.Width = ParseIntWithFallback(v, c.Summary.Width)
	}

	// Clock configuration
	if v, ok := get("WT_CLOCK_CONFIRM_CLOCK_OUT"); ok {
		c.Clock.ConfirmClockOut = ParseBoolWithFallback(v, c.Clock.ConfirmClockOut)
	}

	// Validation configuration
	if v, ok := get("WT_VALIDATION_PROJECT_NAME_MIN"); ok {
		c.Validation.ProjectNameMinLength = ParseIntWithFallback(v, c.Validation.ProjectNameMinLength)
	}
	if v, ok := get("WT_VALIDATION_PROJECT_NAME_MAX"); ok {
		c.Validation.ProjectNameMaxLength = ParseIntWithFallback(v, c.Validation.ProjectNameMaxLength)
	}
	if v, ok := get("WT_VALIDATION_MAX_INTERVAL_DURATION"); ok {
		c.Validation.MaxIntervalDuration = ParseDurationWithFallback(v, c.Validation.MaxIntervalDuration)
	}

	// Server configuration
	if v, ok := get("WT_SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := get("WT_SERVER_ALLOWED_ORIGINS"); ok {
		c.Server.AllowedOrigins = splitList(v)
	}
	if v, ok := get("WT_SERVER_RATE_LIMIT"); ok {
		c.Server.RateLimit = ParseFloatWithFallback(v, c.Server.RateLimit)
	}
	if v, ok := get("WT_SERVER_RATE_BURST"); ok {
		c.Server.RateBurst = ParseIntWithFallback(v, c.Server.RateBurst)
	}
	if v, ok := get("WT_SERVER_MAINTENANCE_SCHEDULE"); ok {
		c.Server.MaintenanceSchedule = v
	}

	// Application configuration
	if v, ok := get("WT_ENV"); ok {
		c.Application.Env = strings.ToLower(v)
	}
	if v, ok := get("WT_APP_TIMEOUT"); ok {
		c.Application.Timeout = ParseDurationWithFallback(v, c.Application.Timeout)
	}
	if v, ok := get("WT_APP_VERBOSE"); ok {
		c.Application.Verbose = ParseBoolWithFallback(v, c.Application.Verbose)
	}
	if v, ok := get("WT_LOG_LEVEL"); ok {
		c.Application.LogLevel = v
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Database configuration is irrelevant to the in-memory backends
	if c.Application.Env == EnvProduction {
		if c.Database.Dir == "" {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	if _, ok := domain.ParseHoursMinutesFormat(c.Timesheet.TimeFormat); !ok {
		return &ConfigError{Field: "timesheet.time_format", Message: "time format must be digital or fraction"}
	}
	if _, err := c.GetLocation(); err != nil {
		return &ConfigError{Field: "timesheet.location", Message: "unknown time zone " + c.Timesheet.Location}
	}

	if _, err := c.GetStartingPoint(); err != nil {
		return &ConfigError{Field: "summary.starting_point", Message: "starting point must be day, week or month"}
	}
	if c.Summary.Width < 10 {
		return &ConfigError{Field: "summary.width", Message: "summary width must be at least 10"}
	}

	if c.Validation.ProjectNameMinLength < 1 {
		return &ConfigError{Field: "validation.project_name_min_length", Message: "project name minimum length must be at least 1"}
	}
	if c.Validation.ProjectNameMaxLength < c.Validation.ProjectNameMinLength {
		return &ConfigError{Field: "validation.project_name_max_length", Message: "project name maximum length must be greater than minimum length"}
	}
	if c.Validation.MaxIntervalDuration < 0 {
		return &ConfigError{Field: "validation.max_interval_duration", Message: "max interval duration must not be negative"}
	}

	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "server address cannot be empty"}
	}
	if c.Server.RateLimit < 0 {
		return &ConfigError{Field: "server.rate_limit", Message: "rate limit cannot be negative"}
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		return &ConfigError{Field: "server.rate_burst", Message: "rate burst must be at least 1 when rate limiting"}
	}

	switch c.Application.Env {
	case EnvProduction, EnvTest, EnvMemory:
	default:
		return &ConfigError{Field: "application.env", Message: "env must be production, test or memory"}
	}
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
