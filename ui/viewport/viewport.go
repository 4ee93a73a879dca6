// Package viewport provides the interactive 3D preview viewport widget.
package viewport

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"print-studio/internal/preview"
)

const (
	frameInterval = 33 * time.Millisecond

	// Drag sensitivity in radians per pixel.
	orbitPerPixel = 0.008
)

// Viewport hosts the preview renderer as a Fyne widget with drag-to-orbit
// and wheel-to-zoom interaction and a continuous animation loop.
type Viewport struct {
	widget.BaseWidget

	renderer *preview.Renderer
	raster   *fynecanvas.Raster
	started  time.Time
	stop     chan struct{}
}

// New creates a viewport over the given renderer. Call Start to begin the
// animation loop and Stop on teardown.
func New(renderer *preview.Renderer) *Viewport {
	v := &Viewport{
		renderer: renderer,
		started:  time.Now(),
	}
	v.raster = fynecanvas.NewRaster(v.frame)
	v.ExtendBaseWidget(v)
	return v
}

// frame is the raster generator: it resizes the renderer to the current
// pixel dimensions and produces the frame for "now".
func (v *Viewport) frame(w, h int) image.Image {
	if w < 1 || h < 1 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	v.renderer.Resize(w, h)
	return v.renderer.Frame(time.Since(v.started))
}

// Start launches the per-frame refresh loop.
func (v *Viewport) Start() {
	if v.stop != nil {
		return
	}
	stop := make(chan struct{})
	v.stop = stop
	go func() {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				v.raster.Refresh()
			case <-stop:
				return
			}
		}
	}()
}

// Stop halts the refresh loop. The renderer's resources are released by the
// application state, not here.
func (v *Viewport) Stop() {
	if v.stop != nil {
		close(v.stop)
		v.stop = nil
	}
}

// CreateRenderer implements fyne.Widget.
func (v *Viewport) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

// MinSize implements fyne.Widget.
func (v *Viewport) MinSize() fyne.Size {
	return fyne.NewSize(320, 320)
}

// Dragged orbits the camera; the idle spin pauses while dragging.
func (v *Viewport) Dragged(ev *fyne.DragEvent) {
	v.renderer.SetDragging(true)
	v.renderer.Rotate(
		-float64(ev.Dragged.DX)*orbitPerPixel,
		-float64(ev.Dragged.DY)*orbitPerPixel,
	)
}

// DragEnd resumes the idle spin.
func (v *Viewport) DragEnd() {
	v.renderer.SetDragging(false)
}

// Scrolled zooms along the view direction.
func (v *Viewport) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		v.renderer.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		v.renderer.ZoomOut()
	}
}
