package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"buildxpert/internal/config"
)

// LocalStorage keeps files on the server filesystem. Default backend
// for development and single-host deployments.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(cfg config.StorageConfig) *LocalStorage {
	return &LocalStorage{
		basePath: cfg.BasePath,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
	}
}

func (s *LocalStorage) Save(ctx context.Context, key string, contentType string, r io.Reader, size int64) (string, error) {
	path, err := s.safePath(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *LocalStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.safePath(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	path, err := s.safePath(key)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// safePath rejects keys that would escape the base directory.
func (s *LocalStorage) safePath(key string) (string, error) {
	cleaned := filepath.Clean("/" + key)
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return filepath.Join(s.basePath, cleaned), nil
}
