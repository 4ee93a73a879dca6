package texture

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"
)

// Texture is an owned raster resource sampled by the preview renderer.
//
// Lifecycle: created by the bridge, bound to the renderer, and disposed when
// replaced or when the bridge is closed. Replacement goes through exactly one
// code path (Bridge.bind) so a texture can never be disposed twice by
// competing owners.
type Texture struct {
	mu       sync.RWMutex
	pix      *image.NRGBA
	width    int
	height   int
	opts     Options
	disposed bool
}

// NewTexture copies img into a texture configured by opts.
func NewTexture(img image.Image, opts Options) *Texture {
	bounds := img.Bounds()
	pix := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(pix, pix.Bounds(), img, bounds.Min, draw.Src)

	return &Texture{
		pix:    pix,
		width:  bounds.Dx(),
		height: bounds.Dy(),
		opts:   opts,
	}
}

// Width returns the texture width in texels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in texels.
func (t *Texture) Height() int { return t.height }

// Disposed reports whether the texture has been released.
func (t *Texture) Disposed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.disposed
}

// Dispose releases the pixel storage. Sampling a disposed texture returns
// transparent black.
func (t *Texture) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.disposed = true
	t.pix = nil
}

// Sample returns the color at texture coordinate (u, v) with the texture's
// configured wrapping, filtering, and V orientation.
func (t *Texture) Sample(u, v float64) color.NRGBA {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.disposed || t.width == 0 || t.height == 0 {
		return color.NRGBA{}
	}

	if t.opts.FlipV {
		v = 1 - v
	}

	// Clamp wrapping: coordinates outside [0,1] stick to the edge texel.
	u = clamp01(u)
	v = clamp01(v)

	fx := u * float64(t.width-1)
	fy := v * float64(t.height-1)

	if t.opts.Filter == FilterNearest {
		return t.texel(int(math.Round(fx)), int(math.Round(fy)))
	}

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	x1 := minInt(x0+1, t.width-1)
	y1 := minInt(y0+1, t.height-1)
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	c00 := t.texel(x0, y0)
	c10 := t.texel(x1, y0)
	c01 := t.texel(x0, y1)
	c11 := t.texel(x1, y1)

	return color.NRGBA{
		R: lerp2(c00.R, c10.R, c01.R, c11.R, tx, ty),
		G: lerp2(c00.G, c10.G, c01.G, c11.G, tx, ty),
		B: lerp2(c00.B, c10.B, c01.B, c11.B, tx, ty),
		A: lerp2(c00.A, c10.A, c01.A, c11.A, tx, ty),
	}
}

func (t *Texture) texel(x, y int) color.NRGBA {
	return t.pix.NRGBAAt(x, y)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// lerp2 bilinearly interpolates four channel values.
func lerp2(c00, c10, c01, c11 uint8, tx, ty float64) uint8 {
	top := float64(c00)*(1-tx) + float64(c10)*tx
	bottom := float64(c01)*(1-tx) + float64(c11)*tx
	return uint8(math.Round(top*(1-ty) + bottom*ty))
}
