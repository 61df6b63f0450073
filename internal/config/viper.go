// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"fjacquet/biztrack/internal/kvstore"
	"fjacquet/biztrack/internal/models"
	"fjacquet/biztrack/internal/share"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BIZTRACK_LOG_LEVEL.
const EnvPrefix = "BIZTRACK"

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DataConfig locates the persisted data.
type DataConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	Backend    string `mapstructure:"backend" yaml:"backend"`
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

// CSVConfig controls CSV export.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// ExportConfig controls where export artifacts go.
type ExportConfig struct {
	Mode         string `mapstructure:"mode" yaml:"mode"`
	OutputDir    string `mapstructure:"output_dir" yaml:"output_dir"`
	ShareCommand string `mapstructure:"share_command" yaml:"share_command"`
}

// AttachmentConfig limits receipt images.
type AttachmentConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes" yaml:"max_bytes"`
}

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	Data       DataConfig       `mapstructure:"data" yaml:"data"`
	Storage    StorageConfig    `mapstructure:"storage" yaml:"storage"`
	CSV        CSVConfig        `mapstructure:"csv" yaml:"csv"`
	Export     ExportConfig     `mapstructure:"export" yaml:"export"`
	Attachment AttachmentConfig `mapstructure:"attachment" yaml:"attachment"`
}

// CSVDelimiter returns the configured delimiter as a rune.
func (c *Config) CSVDelimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// StoreOptions maps the storage settings onto kvstore options.
func (c *Config) StoreOptions() kvstore.Options {
	return kvstore.Options{
		Backend:    c.Storage.Backend,
		DataDir:    c.Data.Directory,
		SQLitePath: c.Storage.SQLitePath,
	}
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
// configFile, when non-empty, replaces the search path lookup.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.biztrack")
		v.AddConfigPath(".biztrack")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration built from defaults alone, ignoring files and environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "~/.biztrack")

	v.SetDefault("storage.backend", kvstore.BackendFile)
	v.SetDefault("storage.sqlite_path", "")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("export.mode", share.ModeDirect)
	v.SetDefault("export.output_dir", ".")
	v.SetDefault("export.share_command", "")

	v.SetDefault("attachment.max_bytes", models.DefaultPhotoMaxBytes)
}

// Validate re-checks the configuration, e.g. after command-line flags were applied.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	switch config.Storage.Backend {
	case kvstore.BackendFile, kvstore.BackendSQLite, kvstore.BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend: %s (must be 'file', 'sqlite' or 'memory')", config.Storage.Backend)
	}

	if config.Storage.Backend != kvstore.BackendMemory && config.Data.Directory == "" {
		return fmt.Errorf("data.directory must be set for the %s backend", config.Storage.Backend)
	}

	switch config.Export.Mode {
	case share.ModeDirect, share.ModeShare:
	default:
		return fmt.Errorf("invalid export mode: %s (must be 'direct' or 'share')", config.Export.Mode)
	}

	if config.Attachment.MaxBytes <= 0 {
		return fmt.Errorf("attachment.max_bytes must be positive, got: %d", config.Attachment.MaxBytes)
	}

	return nil
}
