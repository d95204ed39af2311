package images

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	// Decoders for every accepted input type. jpeg/png/gif come from
	// the standard library, bmp and webp from golang.org/x/image.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Backend is one webp encoder implementation. Two are wired: the
// libwebp-backed lossy encoder and the pure-Go lossless one. The
// converter prefers the first available backend in its list.
type Backend interface {
	Name() string
	Available() bool
	Encode(w io.Writer, img image.Image) error
}

// ConversionError is the structured diagnostic surfaced when the
// pipeline cannot produce a webp file: which backend was tried, why it
// failed, and whatever filesystem state helps diagnose it.
type ConversionError struct {
	Backend string         `json:"backend"`
	Reason  string         `json:"reason"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("webp conversion failed (backend %s): %s", e.Backend, e.Reason)
}

type Converter struct {
	backends []Backend
}

func NewConverter(backends ...Backend) *Converter {
	return &Converter{backends: backends}
}

// DefaultConverter prefers the lossy libwebp encoder and falls back to
// the native lossless one.
func DefaultConverter() *Converter {
	return NewConverter(&LossyBackend{}, &NativeBackend{})
}

func (c *Converter) pick() (Backend, *ConversionError) {
	availability := make(map[string]any, len(c.backends))
	for _, b := range c.backends {
		ok := b.Available()
		availability[b.Name()] = ok
		if ok {
			return b, nil
		}
	}
	return nil, &ConversionError{
		Backend: "none",
		Reason:  "no webp encoder backend available",
		Details: availability,
	}
}

// Convert decodes the source image and writes its webp encoding to
// dstPath. Any failure is reported as a *ConversionError; on failure
// no file is left at dstPath.
func (c *Converter) Convert(src io.Reader, dstPath string) error {
	img, format, err := image.Decode(src)
	if err != nil {
		return &ConversionError{
			Backend: "none",
			Reason:  "cannot decode source image",
			Details: map[string]any{"error": err.Error(), "detected_format": format},
		}
	}

	backend, convErr := c.pick()
	if convErr != nil {
		return convErr
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		details := map[string]any{"destination": dstPath, "error": err.Error()}
		if info, statErr := os.Stat(filepath.Dir(dstPath)); statErr == nil {
			details["directory_mode"] = info.Mode().String()
		}
		return &ConversionError{
			Backend: backend.Name(),
			Reason:  "cannot create destination file",
			Details: details,
		}
	}

	if err := backend.Encode(dst, img); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return &ConversionError{
			Backend: backend.Name(),
			Reason:  "encoding failed",
			Details: map[string]any{"error": err.Error(), "source_format": format},
		}
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return &ConversionError{
			Backend: backend.Name(),
			Reason:  "cannot finish writing destination file",
			Details: map[string]any{"destination": dstPath, "error": err.Error()},
		}
	}

	if _, err := os.Stat(dstPath); err != nil {
		return &ConversionError{
			Backend: backend.Name(),
			Reason:  "destination file missing after conversion",
			Details: map[string]any{"destination": dstPath},
		}
	}

	return nil
}
