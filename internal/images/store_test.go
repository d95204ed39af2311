package images

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStoreFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("RIFF0000WEBP"), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestNewFilename(t *testing.T) {
	store := NewStore(t.TempDir())

	t.Run("SlugsTheBaseName", func(t *testing.T) {
		name, err := store.NewFilename("My Summer Photo.JPG")
		if err != nil {
			t.Fatalf("NewFilename returned error: %v", err)
		}
		if !strings.HasPrefix(name, "my-summer-photo-") {
			t.Errorf("expected a slugged prefix, got %q", name)
		}
		if !strings.HasSuffix(name, Extension) {
			t.Errorf("expected the %s extension, got %q", Extension, name)
		}
	})

	t.Run("FallsBackForUnsluggableNames", func(t *testing.T) {
		name, err := store.NewFilename("....png")
		if err != nil {
			t.Fatalf("NewFilename returned error: %v", err)
		}
		if !strings.HasPrefix(name, "image-") {
			t.Errorf("expected the fallback base, got %q", name)
		}
	})

	t.Run("UniquePerCall", func(t *testing.T) {
		a, _ := store.NewFilename("photo.png")
		b, _ := store.NewFilename("photo.png")
		if a == b {
			t.Errorf("expected distinct names, got %q twice", a)
		}
	})

	t.Run("StripsDirectoryComponents", func(t *testing.T) {
		name, err := store.NewFilename("../../etc/passwd.png")
		if err != nil {
			t.Fatalf("NewFilename returned error: %v", err)
		}
		if strings.ContainsAny(name, "/\\") {
			t.Errorf("expected a bare filename, got %q", name)
		}
	})
}

func TestStoreResolve(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	writeStoreFile(t, dir, "beach.webp")
	writeStoreFile(t, dir, "notes.txt")

	t.Run("Found", func(t *testing.T) {
		path, err := store.Resolve("beach.webp")
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		if filepath.Base(path) != "beach.webp" {
			t.Errorf("unexpected path %q", path)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := store.Resolve("gone.webp")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("WrongExtension", func(t *testing.T) {
		_, err := store.Resolve("notes.txt")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("TraversalReducedToBase", func(t *testing.T) {
		// Directory components are stripped, so this resolves to the
		// stored file rather than escaping the store.
		path, err := store.Resolve("../../beach.webp")
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		if filepath.Base(path) != "beach.webp" {
			t.Errorf("unexpected path %q", path)
		}
	})

	t.Run("SymlinkEscapeDenied", func(t *testing.T) {
		outside := filepath.Join(t.TempDir(), "outside.webp")
		if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write outside file: %v", err)
		}
		link := filepath.Join(dir, "sneaky.webp")
		if err := os.Symlink(outside, link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}
		_, err := store.Resolve("sneaky.webp")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestStoreRemove(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	path := writeStoreFile(t, dir, "old.webp")

	if err := store.Remove("old.webp"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected the file to be gone")
	}

	if err := store.Remove("old.webp"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestStoreEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")
	store := NewStore(dir)

	if err := store.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir returned error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected the directory to exist, got %v", err)
	}

	// Idempotent.
	if err := store.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir on existing directory returned error: %v", err)
	}
}
