package preview

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"print-studio/internal/catalog"
	"print-studio/internal/texture"
)

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "Unloaded", PhaseUnloaded.String())
	assert.Equal(t, "Loading", PhaseLoading.String())
	assert.Equal(t, "Ready", PhaseReady.String())
	assert.Equal(t, "Failed", PhaseFailed.String())
	assert.Equal(t, "Unknown", Phase(42).String())
}

func TestSetVariantTransitions(t *testing.T) {
	r := NewRenderer(160, 160)
	defer r.Close()
	assert.Equal(t, PhaseUnloaded, r.Phase())

	r.SetVariant(catalog.Get("mug-11oz"))
	assert.Equal(t, PhaseReady, r.Phase())
	assert.Equal(t, "mug-11oz", r.Variant().ID)

	bad := *catalog.Get("mug-11oz")
	bad.Kind = "lampshade"
	r.SetVariant(&bad)
	assert.Equal(t, PhaseFailed, r.Phase())
}

func TestOpsOutsideReadyAreNoOps(t *testing.T) {
	r := NewRenderer(160, 160)
	defer r.Close()

	// None of these may panic before a scene exists.
	r.Rotate(0.5, 0.1)
	r.ZoomIn()
	r.ZoomOut()
	r.ResetCamera()
	r.SetDragging(true)
	r.SetTexture(nil)

	frame := r.Frame(0)
	require.NotNil(t, frame)
	assert.Equal(t, 160, frame.Bounds().Dx())
}

func TestPlaceholderFrames(t *testing.T) {
	r := NewRenderer(120, 120)
	defer r.Close()

	frame := r.Frame(100 * time.Millisecond)
	// Background fill with a spinner ring; the corner is pure background.
	assert.Equal(t, color.RGBA{32, 34, 40, 255}, frame.RGBAAt(0, 0))

	bad := *catalog.Get("mug-11oz")
	bad.PrintArea.WidthPx = 0
	r.SetVariant(&bad)
	require.Equal(t, PhaseFailed, r.Phase())
	frame = r.Frame(200 * time.Millisecond)
	assert.Equal(t, color.RGBA{32, 34, 40, 255}, frame.RGBAAt(0, 0))
}

func TestFrameRendersProduct(t *testing.T) {
	r := NewRenderer(240, 240)
	defer r.Close()
	r.SetVariant(catalog.Get("mug-11oz"))

	frame := r.Frame(0)
	require.NotNil(t, frame)

	// The mug covers the frame center with a shaded non-background color.
	center := frame.RGBAAt(120, 120)
	assert.NotEqual(t, color.RGBA{32, 34, 40, 255}, center)
	assert.Greater(t, center.R, uint8(60))
}

func TestResize(t *testing.T) {
	r := NewRenderer(100, 100)
	defer r.Close()
	r.SetVariant(catalog.Get("mug-11oz"))

	r.Resize(60, 80)
	frame := r.Frame(0)
	assert.Equal(t, image.Rect(0, 0, 60, 80), frame.Bounds())

	r.Resize(0, -5) // rejected
	frame = r.Frame(time.Millisecond)
	assert.Equal(t, image.Rect(0, 0, 60, 80), frame.Bounds())
}

// splitTexture is red in the top half and blue in the bottom half.
func splitTexture() *texture.Texture {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		c := color.NRGBA{R: 255, A: 255}
		if y >= 32 {
			c = color.NRGBA{B: 255, A: 255}
		}
		for x := 0; x < 64; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return texture.NewTexture(img, texture.DecalOptions())
}

func TestDecalOrientationOnScreen(t *testing.T) {
	r := NewRenderer(300, 300)
	defer r.Close()
	r.SetVariant(catalog.Get("mug-11oz"))
	r.SetTexture(splitTexture())

	frame := r.Frame(0)

	redY, redN := 0.0, 0
	blueY, blueN := 0.0, 0
	for y := 0; y < 300; y++ {
		for x := 0; x < 300; x++ {
			c := frame.RGBAAt(x, y)
			switch {
			case c.R > 100 && int(c.R) > int(c.B)+60:
				redY += float64(y)
				redN++
			case c.B > 100 && int(c.B) > int(c.R)+60:
				blueY += float64(y)
				blueN++
			}
		}
	}
	require.NotZero(t, redN, "no red decal pixels rendered")
	require.NotZero(t, blueN, "no blue decal pixels rendered")

	// The texture's top half must appear above its bottom half.
	assert.Less(t, redY/float64(redN), blueY/float64(blueN))
}

func TestDisposedTextureIsSkipped(t *testing.T) {
	r := NewRenderer(200, 200)
	defer r.Close()
	r.SetVariant(catalog.Get("mug-11oz"))

	tex := splitTexture()
	r.SetTexture(tex)
	tex.Dispose()

	frame := r.Frame(0)
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			c := frame.RGBAAt(x, y)
			assert.False(t, c.R > 100 && int(c.R) > int(c.B)+60, "decal drawn from disposed texture at %d,%d", x, y)
		}
	}
}

func TestSetBodyColorTintsProduct(t *testing.T) {
	r := NewRenderer(240, 240)
	defer r.Close()
	r.SetVariant(catalog.Get("tee-classic"))
	r.SetBodyColor(color.NRGBA{R: 182, G: 46, B: 46, A: 255})

	frame := r.Frame(0)
	center := frame.RGBAAt(120, 120)
	assert.Greater(t, int(center.R), int(center.G)+20)

	// The tint persists across variant changes.
	r.SetVariant(catalog.Get("hoodie-pullover"))
	frame = r.Frame(time.Millisecond)
	center = frame.RGBAAt(120, 120)
	assert.Greater(t, int(center.R), int(center.G)+20)
}

func TestIdleRotationPausesWhileDragging(t *testing.T) {
	r := NewRenderer(100, 100)
	defer r.Close()
	r.SetVariant(catalog.Get("mug-11oz"))

	r.SetDragging(true)
	r.Frame(0)
	r.Frame(500 * time.Millisecond)
	r.mu.Lock()
	paused := r.idleAccum
	r.mu.Unlock()
	assert.Zero(t, paused)

	r.SetDragging(false)
	r.Frame(700 * time.Millisecond)
	r.mu.Lock()
	resumed := r.idleAccum
	r.mu.Unlock()
	assert.Equal(t, 200*time.Millisecond, resumed)
}
