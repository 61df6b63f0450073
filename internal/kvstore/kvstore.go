// Package kvstore provides the raw key-value backends the ledger and settings store persist through.
// Values are opaque byte blobs (JSON in practice); decoding is left to the caller.
package kvstore

import (
	"context"
	"fmt"
	"path/filepath"

	"fjacquet/biztrack/internal/fileutils"
	"fjacquet/biztrack/internal/logging"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store is a durable string-keyed blob store.
type Store interface {
	// Get returns the value under key. found is false, with a nil error, when the key was never written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Put replaces the value under key. The write is durable when Put returns.
	Put(ctx context.Context, key string, value []byte) error
	// Close releases backend resources.
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend    string
	DataDir    string
	SQLitePath string
}

// Open builds the backend named in opts.
func Open(opts Options, logger logging.Logger) (Store, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	dataDir, err := fileutils.ExpandHome(opts.DataDir)
	if err != nil {
		return nil, err
	}

	switch opts.Backend {
	case "", BackendFile:
		logger.Debug("Opening file store", logging.F(logging.FieldBackend, BackendFile), logging.F("dir", dataDir))
		return NewFileStore(dataDir, logger)
	case BackendSQLite:
		path := opts.SQLitePath
		if path == "" {
			path = filepath.Join(dataDir, "biztrack.db")
		}
		path, err = fileutils.ExpandHome(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("Opening sqlite store", logging.F(logging.FieldBackend, BackendSQLite), logging.F("path", path))
		return NewSQLiteStore(path, logger)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", opts.Backend)
	}
}
