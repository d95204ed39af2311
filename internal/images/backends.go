package images

import (
	"image"
	"io"
	"sync"

	"github.com/HugoSmits86/nativewebp"
	"github.com/gen2brain/webp"
)

// Quality for lossy encoding, same compromise the usual tooling picks.
const lossyQuality = 80

// LossyBackend encodes through libwebp (compiled to wasm, run in
// process). More capable of the two: real lossy compression with a
// quality setting. Availability is probed once, the runtime can fail
// to instantiate on exotic platforms.
type LossyBackend struct {
	probe     sync.Once
	available bool
}

func (b *LossyBackend) Name() string {
	return "libwebp"
}

func (b *LossyBackend) Available() bool {
	b.probe.Do(func() {
		img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		b.available = webp.Encode(io.Discard, img, webp.Options{Quality: lossyQuality}) == nil
	})
	return b.available
}

func (b *LossyBackend) Encode(w io.Writer, img image.Image) error {
	return webp.Encode(w, img, webp.Options{Quality: lossyQuality})
}

// NativeBackend is the pure-Go fallback. Lossless only, no quality
// knob, but always present.
type NativeBackend struct{}

func (b *NativeBackend) Name() string {
	return "nativewebp"
}

func (b *NativeBackend) Available() bool {
	return true
}

func (b *NativeBackend) Encode(w io.Writer, img image.Image) error {
	return nativewebp.Encode(w, img, nil)
}
