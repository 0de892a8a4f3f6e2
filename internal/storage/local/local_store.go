package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mediscribe/internal/config"
	"mediscribe/internal/port"
)

type localStore struct {
	baseDir string
}

// NewLocalStore creates an ObjectStorage backed by a directory on disk.
// Object keys map to paths under the base directory.
func NewLocalStore(cfg *config.StorageConfig) (port.ObjectStorage, error) {
	if err := os.MkdirAll(cfg.LocalDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &localStore{baseDir: cfg.LocalDir}, nil
}

// resolve maps a key to a path under baseDir, rejecting traversal outside it.
func (s *localStore) resolve(key string) (string, error) {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	base, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", fmt.Errorf("resolving storage dir: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving key %q: %w", key, err)
	}
	if abs != base && !strings.HasPrefix(abs, base+string(os.PathSeparator)) {
		return "", fmt.Errorf("key %q escapes storage dir", key)
	}
	return path, nil
}

func (s *localStore) Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("local upload mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("local upload create: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("local upload write: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("local upload close: %w", err)
	}
	return nil
}

func (s *localStore) Download(ctx context.Context, key string) ([]byte, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("local download: %w", err)
	}
	return data, nil
}

func (s *localStore) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("local delete: %w", err)
	}
	return nil
}
