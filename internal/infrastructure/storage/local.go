package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore keeps cover files on disk under <root>/images/books and hands
// out site-relative paths like /images/books/<uuid>.jpg. The directory is
// created on first use.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Save(_ context.Context, data []byte, originalName string) (string, error) {
	dir := filepath.Join(s.root, filepath.FromSlash(coverFolder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrWrite, dir, err)
	}

	// uuid v4 makes name collisions practically impossible, not merely
	// unlikely; concurrent writers never race on the same path.
	fileName := uuid.New().String() + strings.ToLower(filepath.Ext(originalName))
	fullPath := filepath.Join(dir, fileName)

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrWrite, fullPath, err)
	}

	return "/" + coverFolder + "/" + fileName, nil
}

func (s *LocalStore) DeleteIfExists(_ context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	fullPath := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(path, "/")))

	if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %v", ErrWrite, fullPath, err)
	}

	return nil
}
