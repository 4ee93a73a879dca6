package design

import (
	"fmt"
	"image"
	"log"
	"os"

	"print-studio/internal/catalog"
	"print-studio/internal/dataurl"
	"print-studio/pkg/geometry"

	_ "image/jpeg"
	_ "image/png"
)

const (
	// Maximum display bounding box for the canvas. The variant's print-area
	// aspect ratio is fit inside this box, shrinking whichever dimension
	// would overflow.
	maxDisplayWidth  = 500.0
	maxDisplayHeight = 350.0

	// Newly placed images are scaled so their longer relative dimension
	// fills this fraction of the corresponding canvas dimension.
	placementFill = 0.9

	// Export multiplier cap. Prevents runaway memory on variants whose
	// physical print resolution is far above the display size.
	maxExportMultiplier = 4.0
)

// UpdateFunc receives the canvas export after every mutation. This is the
// mechanism that keeps the 3D preview live; there is no manual sync step.
type UpdateFunc func(dataURL string)

// ImageLoader resolves an image source (file path or data URL) to a decoded
// image. Swappable for tests.
type ImageLoader func(src string) (image.Image, error)

// ExportOptions configures a canvas export.
type ExportOptions struct {
	// Multiplier scales the display resolution. Zero means the variant's
	// natural ratio (print pixels / display pixels). Values above the cap
	// are clamped.
	Multiplier float64
}

// Editor lets the user place and manipulate exactly one raster image within
// a print-safe area sized to the active product variant, and notifies the
// update callback with every resulting raster state.
type Editor struct {
	variant  *catalog.Variant
	display  geometry.Size
	doc      *Document
	selected *Object
	ready    bool

	onUpdate UpdateFunc
	loader   ImageLoader
}

// NewEditor creates an editor. Operations are no-ops until Initialize.
func NewEditor(onUpdate UpdateFunc) *Editor {
	return &Editor{
		onUpdate: onUpdate,
		loader:   LoadImageSource,
	}
}

// SetImageLoader overrides how image sources are resolved.
func (e *Editor) SetImageLoader(loader ImageLoader) {
	e.loader = loader
}

// Initialize sizes the canvas to the variant's print-area aspect ratio and
// creates the document with its border overlay.
func (e *Editor) Initialize(variant *catalog.Variant) {
	aspect := geometry.Size{
		Width:  float64(variant.PrintArea.WidthPx),
		Height: float64(variant.PrintArea.HeightPx),
	}
	e.display = aspect.FitWithin(geometry.Size{Width: maxDisplayWidth, Height: maxDisplayHeight})
	e.variant = variant
	e.doc = NewDocument(e.display)
	e.selected = nil
	e.ready = true

	e.exportAndNotify()
}

// Ready reports whether Initialize has been called.
func (e *Editor) Ready() bool {
	return e.ready
}

// Variant returns the active variant, or nil before Initialize.
func (e *Editor) Variant() *catalog.Variant {
	return e.variant
}

// DisplaySize returns the canvas display size.
func (e *Editor) DisplaySize() geometry.Size {
	return e.display
}

// Document returns the live document. Callers must treat it as read-only.
func (e *Editor) Document() *Document {
	return e.doc
}

// HasUserImage reports whether a user image is placed on the canvas.
func (e *Editor) HasUserImage() bool {
	return e.ready && e.doc.UserImage() != nil
}

// AddImage loads an image, scales it to fill 90% of the constraining canvas
// dimension, centers it, and replaces any prior user image. A failed load is
// logged and leaves the canvas unchanged.
func (e *Editor) AddImage(src string) {
	if !e.ready {
		return
	}

	img, err := e.loader(src)
	if err != nil {
		log.Printf("design: failed to load image %q: %v", truncateSource(src), err)
		return
	}

	bounds := img.Bounds()
	imgW := float64(bounds.Dx())
	imgH := float64(bounds.Dy())
	if imgW == 0 || imgH == 0 {
		log.Printf("design: ignoring empty image %q", truncateSource(src))
		return
	}

	// The axis whose relative extent is larger constrains the fit.
	var scale float64
	if imgW/imgH > e.display.AspectRatio() {
		scale = placementFill * e.display.Width / imgW
	} else {
		scale = placementFill * e.display.Height / imgH
	}

	obj := &Object{
		Kind:   KindUserImage,
		Image:  img,
		Source: src,
		Transform: Transform{
			X:      e.display.Width / 2,
			Y:      e.display.Height / 2,
			ScaleX: scale,
			ScaleY: scale,
		},
	}
	e.doc.SetUserImage(obj)
	e.selected = obj

	e.exportAndNotify()
}

// RemoveSelected removes the active object.
func (e *Editor) RemoveSelected() {
	if !e.ready || e.selected == nil {
		return
	}
	e.doc.RemoveUserImage()
	e.selected = nil
	e.exportAndNotify()
}

// ClearCanvas removes all non-border objects.
func (e *Editor) ClearCanvas() {
	if !e.ready {
		return
	}
	e.doc.RemoveUserImage()
	e.selected = nil
	e.exportAndNotify()
}

// CenterSelected moves the active object back to the canvas center.
func (e *Editor) CenterSelected() {
	if !e.ready || e.selected == nil {
		return
	}
	e.selected.Transform.X = e.display.Width / 2
	e.selected.Transform.Y = e.display.Height / 2
	e.exportAndNotify()
}

// MoveSelected translates the active object by the given display-space delta.
func (e *Editor) MoveSelected(dx, dy float64) {
	if !e.ready || e.selected == nil {
		return
	}
	e.selected.Transform.X += dx
	e.selected.Transform.Y += dy
	e.exportAndNotify()
}

// RotateSelected rotates the active object by the given degrees, cumulative
// with its current rotation. Positive is clockwise.
func (e *Editor) RotateSelected(degrees float64) {
	if !e.ready || e.selected == nil {
		return
	}
	e.selected.Transform.RotationDegrees += degrees
	e.exportAndNotify()
}

// ScaleSelected multiplies the active object's scale by factor.
func (e *Editor) ScaleSelected(factor float64) {
	if !e.ready || e.selected == nil || factor <= 0 {
		return
	}
	e.selected.Transform.ScaleX *= factor
	e.selected.Transform.ScaleY *= factor
	e.exportAndNotify()
}

// SetTransform replaces the active object's transform wholesale. Used by
// session restore.
func (e *Editor) SetTransform(t Transform) {
	if !e.ready || e.selected == nil {
		return
	}
	e.selected.Transform = t
	e.exportAndNotify()
}

// NaturalMultiplier returns the ratio between the variant's physical print
// width and the display width, before capping.
func (e *Editor) NaturalMultiplier() float64 {
	if !e.ready || e.display.Width == 0 {
		return 1
	}
	return float64(e.variant.PrintArea.WidthPx) / e.display.Width
}

// Export rasterizes the document to a PNG data URL at the requested
// multiplier, excluding the border overlay, and invokes the update callback
// with the result.
func (e *Editor) Export(opts ExportOptions) (string, error) {
	if !e.ready {
		return "", fmt.Errorf("editor not initialized")
	}

	mult := opts.Multiplier
	if mult <= 0 {
		mult = e.NaturalMultiplier()
	}
	if mult > maxExportMultiplier {
		mult = maxExportMultiplier
	}

	img := renderDocument(e.doc, mult, false)
	url, err := dataurl.Encode(img)
	if err != nil {
		return "", err
	}

	if e.onUpdate != nil {
		e.onUpdate(url)
	}
	return url, nil
}

// PrintReadyExport produces the true physical-resolution export, subject to
// the standard multiplier cap.
func (e *Editor) PrintReadyExport() (string, error) {
	return e.Export(ExportOptions{Multiplier: e.NaturalMultiplier()})
}

// Render rasterizes the document at display resolution with the border
// overlay visible, for on-screen display.
func (e *Editor) Render() image.Image {
	if !e.ready {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}
	return renderDocument(e.doc, 1, true)
}

// exportAndNotify performs the automatic export-on-change that keeps the
// preview synchronized. Raster export is synchronous relative to the
// mutation that triggered it.
func (e *Editor) exportAndNotify() {
	if _, err := e.Export(ExportOptions{Multiplier: 1}); err != nil {
		log.Printf("design: export failed: %v", err)
	}
}

// LoadImageSource is the default ImageLoader: it accepts data URLs and file
// paths.
func LoadImageSource(src string) (image.Image, error) {
	if dataurl.IsDataURL(src) {
		return dataurl.Decode(src)
	}

	file, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// truncateSource keeps log lines readable when the source is a data URL.
func truncateSource(src string) string {
	if len(src) > 48 {
		return src[:48] + "..."
	}
	return src
}
