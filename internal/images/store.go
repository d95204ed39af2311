package images

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

const Extension = ".webp"

var (
	// ErrNotFound means the requested file does not exist in the store.
	ErrNotFound = errors.New("image not found")
	// ErrForbidden means the requested name fails the extension or
	// containment check.
	ErrForbidden = errors.New("access to image denied")
)

// Store is the on-disk image store. The directory is resolved once at
// construction and never changes; it is created lazily on first write.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("cannot create image directory %q: %w", s.dir, err)
	}
	return nil
}

// NewFilename derives a storage name from the uploaded file's original
// name: a URL/filesystem-safe slug of the base name, a random suffix
// so concurrent uploads never collide, and the forced target
// extension.
func (s *Store) NewFilename(original string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	safe := slug.Make(base)
	if safe == "" {
		safe = "image"
	}
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("cannot generate filename suffix: %w", err)
	}
	return safe + "-" + hex.EncodeToString(suffix) + Extension, nil
}

func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}

// Resolve validates a client-supplied filename and returns its path
// inside the store. The name is reduced to its base component, must
// exist, must carry the target extension, and its resolved real path
// must lie inside the store directory.
func (s *Store) Resolve(filename string) (string, error) {
	name := filepath.Base(filename)
	path := filepath.Join(s.dir, name)

	if _, err := os.Stat(path); err != nil {
		return "", ErrNotFound
	}

	if !strings.HasSuffix(name, Extension) {
		return "", ErrForbidden
	}

	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", ErrNotFound
	}
	realDir, err := filepath.EvalSymlinks(s.dir)
	if err != nil {
		return "", ErrForbidden
	}
	if realPath != realDir && !strings.HasPrefix(realPath, realDir+string(filepath.Separator)) {
		return "", ErrForbidden
	}

	return path, nil
}

// Remove deletes a stored file after the same checks Resolve applies.
func (s *Store) Remove(filename string) error {
	path, err := s.Resolve(filename)
	if err != nil {
		return err
	}
	return os.Remove(path)
}
