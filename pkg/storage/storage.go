// Package storage persists model artifacts as flat named objects, either in a
// local directory or in an Azure Blob Storage container.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// System reads and writes flat artifact objects.
type System interface {
	// Upload streams data to the object at key, replacing any existing object.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download returns a stream for the object at key. The caller must close the reader.
	// Returns ErrNotFound if the object does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object at key. Returns ErrNotFound if the object does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object exists at key.
	Exists(ctx context.Context, key string) (bool, error)
	// Location describes where objects are stored, for logging.
	Location() string
}

// New creates the storage system selected by cfg.Backend.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case BackendFilesystem, "":
		return newFilesystem(cfg.ModelDir, logger), nil
	case BackendAzure:
		return newAzure(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") || strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}
