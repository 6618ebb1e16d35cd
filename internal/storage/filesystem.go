package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore persists uploaded images on the local filesystem under a
// <identity>/<entry date>/<unique filename> hierarchy.
type FileStore struct {
	basePath string
}

// NewFileStore initializes a FileStore rooted at basePath.
func NewFileStore(basePath string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// BasePath returns the configured root directory.
func (s *FileStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// SaveUpload persists one uploaded image under identity/entryDate, prefixing
// the client filename with a unique hex string so repeated uploads of the
// same name never collide. It returns the absolute path for the detector.
func (s *FileStore) SaveUpload(ctx context.Context, identity, entryDate, filename string, data []byte) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Base(filepath.FromSlash(filename))
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "upload"
	}
	unique := strings.ReplaceAll(uuid.NewString(), "-", "")
	key, err := sanitizeKey(path.Join(identity, entryDate, unique+"_"+name))
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write image: %w", err)
	}

	abs, err := filepath.Abs(fullPath)
	if err != nil {
		return fullPath, nil
	}
	return abs, nil
}

// sanitizeKey normalizes a storage key and prevents escaping the store root.
// Identities are free-form strings, so traversal sequences must be rejected.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := filepath.Clean(key)
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: invalid key")
	}
	return cleaned, nil
}
