// Package assets stores uploaded product images and hands back stable URLs.
// The record service and the catalog only ever see those URLs, never the
// bytes.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Config holds the asset host settings. It is injected at construction so
// the uploader never reads ambient environment state itself.
type Config struct {
	Dir     string // local directory objects are written to
	BaseURL string // public prefix under which objects are served
}

// Uploader persists raw image bytes and returns the URL they are served at.
type Uploader struct {
	cfg Config
}

// NewUploader creates an Uploader and ensures the storage directory exists.
func NewUploader(cfg Config) (*Uploader, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", cfg.Dir, err)
	}
	return &Uploader{cfg: cfg}, nil
}

// Upload writes the bytes under a fresh name, keeping the extension of the
// original filename, and returns the stable URL of the stored object.
func (u *Uploader) Upload(filename string, data []byte) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(u.cfg.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store asset %s: %w", name, err)
	}
	return strings.TrimRight(u.cfg.BaseURL, "/") + "/" + name, nil
}
