package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// BlobStore saves an uploaded binary payload and returns a URL it can later
// be served from. Images and documents are stored as blobs behind this
// capability; only the URL is persisted on the entity.
type BlobStore interface {
	Save(name string, data []byte) (string, error)
}

// LocalStore writes blobs to a directory on the local filesystem.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save writes the payload under a timestamp-prefixed name so repeated uploads
// of the same filename never overwrite each other.
func (s *LocalStore) Save(name string, data []byte) (string, error) {
	fileName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(name))
	path := filepath.Join(s.dir, fileName)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	return s.baseURL + "/" + fileName, nil
}
