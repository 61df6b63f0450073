package config

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/biztrack/internal/kvstore"
	"fjacquet/biztrack/internal/models"
	"fjacquet/biztrack/internal/share"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(originalDir)
	})
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "~/.biztrack", config.Data.Directory)
	assert.Equal(t, kvstore.BackendFile, config.Storage.Backend)
	assert.Equal(t, "", config.Storage.SQLitePath)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, ',', config.CSVDelimiter())
	assert.Equal(t, share.ModeDirect, config.Export.Mode)
	assert.Equal(t, ".", config.Export.OutputDir)
	assert.Equal(t, models.DefaultPhotoMaxBytes, config.Attachment.MaxBytes)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	testEnvVars := map[string]string{
		"BIZTRACK_LOG_LEVEL":            "debug",
		"BIZTRACK_LOG_FORMAT":           "json",
		"BIZTRACK_CSV_DELIMITER":        ";",
		"BIZTRACK_STORAGE_BACKEND":      "sqlite",
		"BIZTRACK_STORAGE_SQLITE_PATH":  "/tmp/biz.db",
		"BIZTRACK_EXPORT_MODE":          "share",
		"BIZTRACK_ATTACHMENT_MAX_BYTES": "1024",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ';', config.CSVDelimiter())
	assert.Equal(t, kvstore.BackendSQLite, config.Storage.Backend)
	assert.Equal(t, "/tmp/biz.db", config.StoreOptions().SQLitePath)
	assert.Equal(t, share.ModeShare, config.Export.Mode)
	assert.Equal(t, int64(1024), config.Attachment.MaxBytes)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()

	configContent := `
log:
  level: "warn"
  format: "json"
data:
  directory: "/srv/biztrack"
csv:
  delimiter: "|"
export:
  output_dir: "/srv/reports"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600))
	chdir(t, tempDir)

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "/srv/biztrack", config.Data.Directory)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "/srv/reports", config.Export.OutputDir)
}

func TestInitializeConfig_ExplicitFile(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: memory\n"), 0600))

	config, err := InitializeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, kvstore.BackendMemory, config.Storage.Backend)

	_, err = InitializeConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()

	configContent := `
log:
  level: "warn"
csv:
  delimiter: "|"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600))
	t.Setenv("BIZTRACK_LOG_LEVEL", "error")
	chdir(t, tempDir)

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level) // env var wins
	assert.Equal(t, "|", config.CSV.Delimiter) // config file value
}

func validConfig() *Config {
	return &Config{
		Log:        LogConfig{Level: "info", Format: "text"},
		Data:       DataConfig{Directory: "/tmp/biztrack"},
		Storage:    StorageConfig{Backend: kvstore.BackendFile},
		CSV:        CSVConfig{Delimiter: ","},
		Export:     ExportConfig{Mode: share.ModeDirect, OutputDir: "."},
		Attachment: AttachmentConfig{MaxBytes: 1},
	}
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{"invalid log level", func(c *Config) { c.Log.Level = "invalid" }, "invalid log level"},
		{"invalid log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"invalid CSV delimiter", func(c *Config) { c.CSV.Delimiter = "abc" }, "CSV delimiter must be a single character"},
		{"empty CSV delimiter", func(c *Config) { c.CSV.Delimiter = "" }, "CSV delimiter must be a single character"},
		{"invalid backend", func(c *Config) { c.Storage.Backend = "redis" }, "invalid storage backend"},
		{"missing data directory", func(c *Config) { c.Data.Directory = "" }, "data.directory must be set"},
		{"invalid export mode", func(c *Config) { c.Export.Mode = "email" }, "invalid export mode"},
		{"non-positive photo limit", func(c *Config) { c.Attachment.MaxBytes = 0 }, "attachment.max_bytes must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestValidateConfig_MemoryBackendNeedsNoDirectory(t *testing.T) {
	config := validConfig()
	config.Storage.Backend = kvstore.BackendMemory
	config.Data.Directory = ""
	assert.NoError(t, validateConfig(config))
}

func TestCSVDelimiter_MultiByte(t *testing.T) {
	config := validConfig()
	config.CSV.Delimiter = "§"
	assert.NoError(t, validateConfig(config))
	assert.Equal(t, '§', config.CSVDelimiter())
}

func TestNewLogger(t *testing.T) {
	config := validConfig()
	config.Log.Format = "json"
	assert.NotNil(t, NewLogger(config))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("BIZTRACK_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("BIZTRACK_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("BIZTRACK_TEST_UNSET_VALUE", "fallback"))
}

// clearTestEnvVars blanks every BIZTRACK_ variable for the duration of the test.
func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"BIZTRACK_LOG_LEVEL",
		"BIZTRACK_LOG_FORMAT",
		"BIZTRACK_DATA_DIRECTORY",
		"BIZTRACK_STORAGE_BACKEND",
		"BIZTRACK_STORAGE_SQLITE_PATH",
		"BIZTRACK_CSV_DELIMITER",
		"BIZTRACK_EXPORT_MODE",
		"BIZTRACK_EXPORT_OUTPUT_DIR",
		"BIZTRACK_EXPORT_SHARE_COMMAND",
		"BIZTRACK_ATTACHMENT_MAX_BYTES",
	}

	for _, envVar := range envVars {
		t.Setenv(envVar, "")
		_ = os.Unsetenv(envVar)
	}
}

func TestDefault(t *testing.T) {
	config := Default()
	require.NoError(t, config.Validate())
	assert.Equal(t, kvstore.BackendFile, config.Storage.Backend)
	assert.Equal(t, models.DefaultPhotoMaxBytes, config.Attachment.MaxBytes)
}

func TestValidate_AfterOverride(t *testing.T) {
	config := Default()
	config.Log.Level = "loud"
	err := config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
