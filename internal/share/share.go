// Package share delivers export artifacts, either straight into an output directory or into
// the user cache followed by a hand-off to an external opener.
package share

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/biztrack/internal/fileutils"
	"fjacquet/biztrack/internal/logging"
	"fjacquet/biztrack/internal/models"
)

// Delivery modes.
const (
	ModeDirect = "direct"
	ModeShare  = "share"
)

// DirectSaver writes artifacts into a fixed directory.
type DirectSaver struct {
	dir    string
	logger logging.Logger
}

// NewDirectSaver creates a DirectSaver writing into dir.
func NewDirectSaver(dir string, logger logging.Logger) *DirectSaver {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &DirectSaver{dir: dir, logger: logger}
}

// Deliver writes data to <dir>/<name> and returns the path.
func (d *DirectSaver) Deliver(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir, err := fileutils.ExpandHome(d.dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := fileutils.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return "", err
	}
	d.logger.Debug("Saved artifact", logging.F(logging.FieldOutputFile, path), logging.F(logging.FieldBytes, len(data)))
	return path, nil
}

// CacheSharer writes artifacts into an app-scoped cache directory, then asks a Launcher to
// hand the file to the platform (opener, share sheet, mail client).
type CacheSharer struct {
	dir      string
	launcher Launcher
	logger   logging.Logger
}

// NewCacheSharer creates a CacheSharer. An empty dir resolves to <user cache>/biztrack/exports.
func NewCacheSharer(dir string, launcher Launcher, logger logging.Logger) (*CacheSharer, error) {
	if dir == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve cache directory: %w", err)
		}
		dir = filepath.Join(cache, "biztrack", "exports")
	}
	if launcher == nil {
		return nil, fmt.Errorf("share mode requires a launcher")
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &CacheSharer{dir: dir, launcher: launcher, logger: logger}, nil
}

// Dir returns the cache directory artifacts are written to.
func (c *CacheSharer) Dir() string {
	return c.dir
}

// Deliver writes data into the cache directory and launches the hand-off. A launch failure is
// returned as is; the cached file is left in place.
func (c *CacheSharer) Deliver(ctx context.Context, name string, data []byte) (string, error) {
	path := filepath.Join(c.dir, filepath.Base(name))
	if err := fileutils.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return "", err
	}
	if err := c.launcher.Launch(ctx, path); err != nil {
		c.logger.WithError(err).Warn("Share hand-off failed", logging.F(logging.FieldOutputFile, path))
		return path, fmt.Errorf("share hand-off failed: %w", err)
	}
	c.logger.Info("Shared artifact", logging.F(logging.FieldOutputFile, path))
	return path, nil
}
