package kvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"fjacquet/biztrack/internal/fileutils"
	"fjacquet/biztrack/internal/logging"
	"fjacquet/biztrack/internal/models"
	"fjacquet/biztrack/internal/validation"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// FileStore persists each key as <dir>/<key>.json.
type FileStore struct {
	dir    string
	logger logging.Logger
}

// NewFileStore creates the data directory if needed and returns a FileStore rooted there.
func NewFileStore(dir string, logger logging.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file store requires a data directory")
	}
	if err := fileutils.EnsureDirectoryExists(dir); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Path returns the file backing key.
func (f *FileStore) Path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get implements Store.
func (f *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if !validKey.MatchString(key) {
		return nil, false, fmt.Errorf("invalid key: %q", key)
	}

	data, err := os.ReadFile(f.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", f.Path(key), err)
	}
	if info, statErr := os.Stat(f.Path(key)); statErr == nil {
		if permErr := validation.IsValidFilePermissions(info.Mode().Perm()); permErr != nil {
			f.logger.WithError(permErr).Warn("Data file is readable by other users", logging.F(logging.FieldKey, key))
		}
	}
	return data, true, nil
}

// Put implements Store.
func (f *FileStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid key: %q", key)
	}

	if err := fileutils.WriteFileAtomic(f.Path(key), value, models.PermissionDataFile); err != nil {
		return err
	}
	f.logger.WithFields(
		logging.F(logging.FieldKey, key),
		logging.F(logging.FieldBytes, len(value)),
	).Debug("Wrote key")
	return nil
}

// Close implements Store.
func (f *FileStore) Close() error {
	return nil
}
