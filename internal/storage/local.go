package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type localStore struct {
	dir string
}

// NewLocalStore creates a Store writing files under the given directory,
// creating it if necessary.
func NewLocalStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &localStore{dir: dir}, nil
}

func (s *localStore) Save(_ context.Context, name string, data []byte) (string, error) {
	key := storageKey(name)

	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return "", err
	}

	return key, nil
}
