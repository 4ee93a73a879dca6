// Package texture adapts rasterized canvas exports into sampleable textures
// for the preview renderer.
package texture

import (
	"image"
	"log"
	"sync"

	"print-studio/internal/dataurl"
)

// WrapMode controls sampling outside [0,1]. Print decals never tile, so the
// only mode implemented is clamp-to-edge.
type WrapMode int

const (
	WrapClamp WrapMode = iota
)

// FilterMode controls how texels are interpolated.
type FilterMode int

const (
	FilterLinear FilterMode = iota
	FilterNearest
)

// Options configures a texture created by the bridge.
type Options struct {
	Wrap   WrapMode
	Filter FilterMode

	// FlipV mirrors the V coordinate at sample time. The decal geometry
	// authors V from bottom to top, while raster rows run top to bottom,
	// so decal textures are created with this set.
	FlipV bool
}

// DecalOptions returns the configuration used for print decals: clamped
// wrapping, linear filtering, no mipmaps, V flipped to match the decal UVs.
func DecalOptions() Options {
	return Options{Wrap: WrapClamp, Filter: FilterLinear, FlipV: true}
}

// Decoder resolves a data URL to a decoded image. Swappable for tests.
type Decoder func(url string) (image.Image, error)

// Bridge owns the texture bound to the preview renderer and keeps it in sync
// with canvas exports. Updates decode asynchronously; a decode that has been
// superseded by a newer update is discarded, never bound (last write wins).
type Bridge struct {
	mu         sync.Mutex
	generation uint64
	current    *Texture
	opts       Options
	decode     Decoder
	onBind     func(*Texture)
	wg         sync.WaitGroup
}

// NewBridge creates a bridge. onBind is invoked with the newly bound texture
// (or nil when the decal is cleared) after every applied update.
func NewBridge(opts Options, onBind func(*Texture)) *Bridge {
	return &Bridge{
		opts:   opts,
		decode: dataurl.Decode,
		onBind: onBind,
	}
}

// SetDecoder overrides how data URLs are decoded.
func (b *Bridge) SetDecoder(d Decoder) {
	b.decode = d
}

// Current returns the texture bound right now, which may be nil.
func (b *Bridge) Current() *Texture {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Update points the bridge at a new canvas export. An empty URL clears the
// decal synchronously. A non-empty URL is decoded on a separate goroutine so
// the editor stays interactive; the result is applied only if no newer
// update has been issued in the meantime.
func (b *Bridge) Update(url string) {
	b.mu.Lock()
	b.generation++
	gen := b.generation
	b.mu.Unlock()

	if url == "" {
		b.bind(gen, nil)
		return
	}

	decode := b.decode
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		img, err := decode(url)
		if err != nil {
			// Leave the last good texture in place.
			log.Printf("texture: decode failed: %v", err)
			return
		}
		b.bind(gen, NewTexture(img, b.opts))
	}()
}

// bind swaps in tex if gen is still the newest update, disposing the
// replaced texture. A stale gen disposes tex instead.
func (b *Bridge) bind(gen uint64, tex *Texture) {
	b.mu.Lock()
	if gen != b.generation {
		b.mu.Unlock()
		if tex != nil {
			tex.Dispose()
		}
		return
	}

	old := b.current
	b.current = tex
	onBind := b.onBind
	b.mu.Unlock()

	if old != nil {
		old.Dispose()
	}
	if onBind != nil {
		onBind(tex)
	}
}

// Wait blocks until all in-flight decodes have settled. Used by teardown and
// tests.
func (b *Bridge) Wait() {
	b.wg.Wait()
}

// Close waits for in-flight decodes and releases the bound texture.
func (b *Bridge) Close() {
	b.wg.Wait()

	b.mu.Lock()
	b.generation++
	old := b.current
	b.current = nil
	b.mu.Unlock()

	if old != nil {
		old.Dispose()
	}
}
