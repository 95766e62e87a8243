package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"buildxpert/internal/config"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Storage persists uploaded files and serves them back.
type Storage interface {
	// Save writes the content under key and returns the public URL.
	Save(ctx context.Context, key string, contentType string, r io.Reader, size int64) (string, error)
	// Open returns a reader for the stored content.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// New builds the backend named in the config: "local" or "s3".
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg), nil
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Type)
	}
}
