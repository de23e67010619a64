// Package imagestore persists uploaded recipe images on disk and hands back
// stable URLs. The core only ever stores and forwards the returned reference;
// no image processing happens here.
package imagestore

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
)

// Store writes images under Dir and serves them under BaseURL.
type Store struct {
	dir     string
	baseURL string
}

// New constructs a Store rooted at dir. Files are addressed as
// baseURL + "/" + filename. The directory is created if missing.
func New(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("imagestore.New: %w", err)
	}
	return &Store{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// SaveDataURL decodes a "data:image/<ext>;base64,<data>" payload, writes it
// under a fresh random name, and returns the stable URL.
// Returns domain.ErrValidation for malformed payloads.
func (s *Store) SaveDataURL(dataURL string) (string, error) {
	meta, encoded, ok := strings.Cut(dataURL, ";base64,")
	if !ok || !strings.HasPrefix(meta, "data:image/") {
		return "", fmt.Errorf("%w: image must be a base64 data URL", domain.ErrValidation)
	}
	ext := strings.TrimPrefix(meta, "data:image/")
	if ext == "" || strings.ContainsAny(ext, "/\\.") {
		return "", fmt.Errorf("%w: invalid image type", domain.ErrValidation)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64 image data", domain.ErrValidation)
	}

	name := uuid.NewString() + "." + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return "", fmt.Errorf("imagestore.Store.SaveDataURL: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

// Dir returns the directory images are written to, for static file serving.
func (s *Store) Dir() string {
	return s.dir
}
