package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/biztrack/internal/config"
	"fjacquet/biztrack/internal/kvstore"
	"fjacquet/biztrack/internal/logging"
	"fjacquet/biztrack/internal/models"
	"fjacquet/biztrack/internal/share"
	"fjacquet/biztrack/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log:        config.LogConfig{Level: "info", Format: "text"},
		Data:       config.DataConfig{Directory: t.TempDir()},
		Storage:    config.StorageConfig{Backend: kvstore.BackendFile},
		CSV:        config.CSVConfig{Delimiter: ";"},
		Export:     config.ExportConfig{Mode: share.ModeDirect, OutputDir: t.TempDir()},
		Attachment: config.AttachmentConfig{MaxBytes: models.DefaultPhotoMaxBytes},
	}
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      func(t *testing.T) *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      func(*testing.T) *config.Config { return nil },
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "file backend",
			config: testConfig,
		},
		{
			name: "sqlite backend",
			config: func(t *testing.T) *config.Config {
				cfg := testConfig(t)
				cfg.Storage.Backend = kvstore.BackendSQLite
				cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "biz.db")
				return cfg
			},
		},
		{
			name: "unknown backend",
			config: func(t *testing.T) *config.Config {
				cfg := testConfig(t)
				cfg.Storage.Backend = "redis"
				return cfg
			},
			expectError: true,
			errorMsg:    "failed to open redis storage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config(t), WithLogger(logging.NewMockLogger()))
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			defer c.Close()

			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetConfig())
			assert.NotNil(t, c.GetLedger())
			assert.NotNil(t, c.GetSettings())
			assert.NotNil(t, c.GetExporter())
			assert.IsType(t, &share.DirectSaver{}, c.GetDeliverer())
		})
	}
}

func TestContainer_LedgerAndSettingsShareTheStore(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	c, err := NewContainer(testConfig(t), WithStore(kv), WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	ctx := context.Background()

	var events []store.ChangeEvent
	c.GetLedger().Subscribe(func(ev store.ChangeEvent) { events = append(events, ev) })

	tx, err := models.NewTransaction(models.TransactionParams{
		Date:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Type:   models.TypeIncome,
		Amount: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	require.NoError(t, c.GetLedger().Upsert(ctx, tx))
	_, err = c.GetSettings().AddCategory(ctx, models.TypeIncome, "Propinas")
	require.NoError(t, err)

	assert.NotEmpty(t, kv.Raw(models.KeyTransactions))
	assert.Contains(t, kv.Raw(models.KeySettings), "Propinas")
	assert.Len(t, events, 1)
}

func TestContainer_ShareMode(t *testing.T) {
	if _, err := os.UserCacheDir(); err != nil {
		t.Skip("no user cache dir on this machine")
	}
	cfg := testConfig(t)
	cfg.Export.Mode = share.ModeShare
	launcher := &share.MockLauncher{}

	c, err := NewContainer(cfg, WithStore(kvstore.NewMemoryStore()), WithLauncher(launcher), WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	assert.IsType(t, &share.CacheSharer{}, c.GetDeliverer())
}

func TestContainer_Clock(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c, err := NewContainer(testConfig(t), WithStore(kvstore.NewMemoryStore()), WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)
	assert.Equal(t, fixed, c.Now())
}

func TestContainer_Close(t *testing.T) {
	c, err := NewContainer(testConfig(t), WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}
