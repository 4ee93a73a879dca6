package design

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

var (
	canvasBackground = color.NRGBA{255, 255, 255, 255}
	borderColor      = color.NRGBA{120, 120, 120, 255}
	transparent      = color.NRGBA{0, 0, 0, 0}
)

const (
	borderDashLength = 6
	borderGapLength  = 4
	borderInset      = 1
)

// renderDocument rasterizes a document at the given resolution multiplier.
// The border overlay is drawn only when includeBorder is set; exports always
// pass false so the border can never leak into a print file.
func renderDocument(doc *Document, mult float64, includeBorder bool) *image.NRGBA {
	w := int(math.Round(doc.Display.Width * mult))
	h := int(math.Round(doc.Display.Height * mult))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := imaging.New(w, h, canvasBackground)

	for _, obj := range doc.Objects {
		switch obj.Kind {
		case KindBorder:
			if includeBorder {
				drawDashedRect(dst, borderColor)
			}
		case KindUserImage:
			dst = compositeUserImage(dst, obj, mult)
		}
	}

	return dst
}

// compositeUserImage scales, rotates, and alpha-blends the user image onto
// the canvas at its transform position.
func compositeUserImage(dst *image.NRGBA, obj *Object, mult float64) *image.NRGBA {
	src := obj.Image
	bounds := src.Bounds()
	t := obj.Transform

	scaledW := int(math.Round(float64(bounds.Dx()) * t.ScaleX * mult))
	scaledH := int(math.Round(float64(bounds.Dy()) * t.ScaleY * mult))
	if scaledW < 1 || scaledH < 1 {
		return dst
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, scaledW, scaledH))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, xdraw.Over, nil)

	// Positive rotation is clockwise on screen; imaging rotates
	// counter-clockwise, hence the sign flip. The rotated frame grows to
	// hold the corners, so paste by its own center.
	placed := imaging.Rotate(scaled, -t.RotationDegrees, transparent)

	cx := int(math.Round(t.X * mult))
	cy := int(math.Round(t.Y * mult))
	topLeft := image.Pt(cx-placed.Bounds().Dx()/2, cy-placed.Bounds().Dy()/2)

	return imaging.Overlay(dst, placed, topLeft, 1.0)
}

// drawDashedRect draws the dashed print-area border just inside the canvas
// edge.
func drawDashedRect(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	x1 := b.Min.X + borderInset
	y1 := b.Min.Y + borderInset
	x2 := b.Max.X - 1 - borderInset
	y2 := b.Max.Y - 1 - borderInset
	if x2 <= x1 || y2 <= y1 {
		return
	}

	period := borderDashLength + borderGapLength
	onDash := func(i int) bool { return i%period < borderDashLength }

	for x := x1; x <= x2; x++ {
		if onDash(x - x1) {
			img.SetNRGBA(x, y1, c)
			img.SetNRGBA(x, y2, c)
		}
	}
	for y := y1; y <= y2; y++ {
		if onDash(y - y1) {
			img.SetNRGBA(x1, y, c)
			img.SetNRGBA(x2, y, c)
		}
	}
}
