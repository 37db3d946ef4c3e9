package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"equipment-rental-manager/internal/storage"

	"gopkg.in/yaml.v3"
)

// AppIdentifier names the per-user application directories
const AppIdentifier = "equipment-rental-manager"

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Business  BusinessConfig  `yaml:"business"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig selects and configures the document store
type StorageConfig struct {
	Type             string           `yaml:"type"` // "file" or "postgres"
	FileName         string           `yaml:"file_name"`
	Locations        []LocationConfig `yaml:"locations"`
	IOTimeoutSeconds int              `yaml:"io_timeout_seconds"`
	BackupDir        string           `yaml:"backup_dir"`
}

// LocationConfig is one candidate directory for the database file
type LocationConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// BusinessConfig holds settings of the rental business itself
type BusinessConfig struct {
	Timezone string `yaml:"timezone"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings (with seconds field)
type SchedulerConfig struct {
	ReportOverdueRentals string `yaml:"report_overdue_rentals"`
	BackupDatabase       string `yaml:"backup_database"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Storage
	if val := os.Getenv("STORAGE_TYPE"); val != "" {
		c.Storage.Type = val
	}
	if val := os.Getenv("DATA_FILE"); val != "" {
		c.Storage.FileName = val
	}
	if val := os.Getenv("BACKUP_DIR"); val != "" {
		c.Storage.BackupDir = val
	}

	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Business
	if val := os.Getenv("BUSINESS_TIMEZONE"); val != "" {
		c.Business.Timezone = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Storage validation
	c.Storage.Type = strings.ToLower(c.Storage.Type)
	if c.Storage.Type == "" {
		c.Storage.Type = "file"
	}
	if c.Storage.FileName == "" {
		c.Storage.FileName = "database.json"
	}
	if c.Storage.IOTimeoutSeconds == 0 {
		c.Storage.IOTimeoutSeconds = 5
	}
	if c.Storage.IOTimeoutSeconds < 0 {
		return fmt.Errorf("invalid storage io timeout: %d", c.Storage.IOTimeoutSeconds)
	}
	if len(c.Storage.Locations) == 0 {
		c.Storage.Locations = DefaultLocations()
	}
	for i, loc := range c.Storage.Locations {
		if loc.Path == "" {
			return fmt.Errorf("storage location %d has no path", i)
		}
		if loc.Name == "" {
			c.Storage.Locations[i].Name = fmt.Sprintf("location-%d", i)
		}
	}
	if c.Storage.BackupDir == "" {
		c.Storage.BackupDir = filepath.Join(c.Storage.Locations[0].Path, "backups")
	}

	switch c.Storage.Type {
	case "file":
	case "postgres":
		// Database validation
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.Port == 0 {
			c.Database.Port = 5432
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	default:
		return fmt.Errorf("unsupported storage type: %q", c.Storage.Type)
	}

	// Business defaults
	if c.Business.Timezone == "" {
		c.Business.Timezone = "Local"
	}
	if _, err := time.LoadLocation(c.Business.Timezone); err != nil {
		return fmt.Errorf("invalid business timezone %q: %w", c.Business.Timezone, err)
	}

	// Scheduler defaults
	if c.Scheduler.ReportOverdueRentals == "" {
		c.Scheduler.ReportOverdueRentals = "0 0 8 * * *" // Daily at 8 AM
	}
	if c.Scheduler.BackupDatabase == "" {
		c.Scheduler.BackupDatabase = "0 0 23 * * *" // Daily at 11 PM
	}

	return nil
}

// DefaultLocations returns the three candidate roots, in search order:
// the per-user app data directory, the per-user local data directory and
// the documents folder.
func DefaultLocations() []LocationConfig {
	home, _ := os.UserHomeDir()

	appData, err := os.UserConfigDir()
	if err != nil {
		appData = filepath.Join(home, ".config")
	}
	localData := os.Getenv("XDG_DATA_HOME")
	if localData == "" {
		localData = filepath.Join(home, ".local", "share")
	}

	return []LocationConfig{
		{Name: "app-data", Path: filepath.Join(appData, AppIdentifier)},
		{Name: "app-local-data", Path: filepath.Join(localData, AppIdentifier)},
		{Name: "documents", Path: filepath.Join(home, "Documents")},
	}
}

// IOTimeout returns the per-operation storage timeout
func (c *Config) IOTimeout() time.Duration {
	return time.Duration(c.Storage.IOTimeoutSeconds) * time.Second
}

// StorageSettings converts the storage section for storage.NewLocations
func (c *Config) StorageSettings() storage.Config {
	locations := make([]storage.LocationConfig, 0, len(c.Storage.Locations))
	for _, loc := range c.Storage.Locations {
		locations = append(locations, storage.LocationConfig{Name: loc.Name, Path: loc.Path})
	}
	return storage.Config{
		Type:      c.Storage.Type,
		FileName:  c.Storage.FileName,
		Locations: locations,
		IOTimeout: c.IOTimeout(),
	}
}

// BusinessLocation returns the configured business timezone
func (c *Config) BusinessLocation() *time.Location {
	loc, err := time.LoadLocation(c.Business.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
