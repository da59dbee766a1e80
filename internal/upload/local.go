package upload

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sosiol/sosiol/internal/adapter"
)

// LocalStorage writes uploads to a directory served by the API under /uploads
type LocalStorage struct {
	fs            adapter.FileSystem
	dir           string
	publicBaseURL string
}

// NewLocalStorage creates a local disk storage. publicBaseURL may be empty, in which case
// returned URLs are root-relative.
func NewLocalStorage(fs adapter.FileSystem, dir string, publicBaseURL string) *LocalStorage {
	return &LocalStorage{
		fs:            fs,
		dir:           dir,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

func (s *LocalStorage) Save(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(s.dir, name)
	f, err := s.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = s.fs.Remove(path)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s", s.publicBaseURL, name), nil
}

func (s *LocalStorage) Name() string {
	return PROVIDER_LOCAL
}
