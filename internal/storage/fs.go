package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FSStore writes images under a local directory served at PublicBaseURL.
type FSStore struct {
	dir     string
	baseURL string
}

func NewFSStore(dir, publicBaseURL string) (*FSStore, error) {
	if dir == "" {
		dir = "./uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &FSStore{dir: dir, baseURL: publicBaseURL}, nil
}

func (s *FSStore) Dir() string {
	return s.dir
}

func (s *FSStore) Upload(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error) {
	if err := CheckType(contentType); err != nil {
		return "", err
	}

	object := ObjectName(name)
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("creating upload: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, object)); err != nil {
		return "", fmt.Errorf("storing upload: %w", err)
	}

	storageLogger.Info().Str("object", object).Str("driver", "fs").Msg("Image uploaded")
	return publicURL(s.baseURL, object), nil
}
