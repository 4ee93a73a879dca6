package viewport

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"print-studio/internal/catalog"
	"print-studio/internal/preview"
)

func TestFrameGeneratorTracksSize(t *testing.T) {
	r := preview.NewRenderer(10, 10)
	defer r.Close()
	r.SetVariant(catalog.Get("mug-11oz"))

	v := New(r)
	img := v.frame(200, 150)
	require.NotNil(t, img)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())

	// Degenerate sizes never reach the renderer.
	img = v.frame(0, 0)
	assert.Equal(t, 1, img.Bounds().Dx())
}

func TestDragOrbitsAndPausesIdle(t *testing.T) {
	r := preview.NewRenderer(100, 100)
	defer r.Close()
	r.SetVariant(catalog.Get("mug-11oz"))

	v := New(r)
	v.Dragged(&fyne.DragEvent{Dragged: fyne.Delta{DX: 10, DY: -5}})
	v.DragEnd()

	// Scroll zoom must not panic in any phase.
	v.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 1}})
	v.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: -1}})
}

func TestStartStopIdempotent(t *testing.T) {
	r := preview.NewRenderer(50, 50)
	defer r.Close()

	v := New(r)
	v.Start()
	v.Start() // second call is a no-op
	v.Stop()
	v.Stop()
}
