// Package design provides the print-area canvas editor: document model,
// rendering, and raster export.
package design

import (
	"image"

	"print-studio/pkg/geometry"
)

// ObjectKind discriminates the object variants a document can hold.
type ObjectKind int

const (
	// KindBorder is the print-area border overlay. It is always present,
	// never selectable, and excluded from every export.
	KindBorder ObjectKind = iota

	// KindUserImage is the single user-supplied raster image.
	KindUserImage
)

func (k ObjectKind) String() string {
	switch k {
	case KindBorder:
		return "Border"
	case KindUserImage:
		return "UserImage"
	default:
		return "Unknown"
	}
}

// Transform holds the placement of an object on the canvas. X and Y locate
// the object's center in display coordinates.
type Transform struct {
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	ScaleX          float64 `json:"scale_x"`
	ScaleY          float64 `json:"scale_y"`
	RotationDegrees float64 `json:"rotation_degrees"`
}

// Object is one entry in a Document. Image is set only for KindUserImage.
type Object struct {
	Kind      ObjectKind
	Image     image.Image
	Transform Transform
	Source    string // origin of the image (path or data URL), for session persistence
}

// Document is the live editable canvas state: the border overlay plus at
// most one user image. It is owned exclusively by the Editor and never
// persisted directly; only its rasterized projection is.
type Document struct {
	Display geometry.Size
	Objects []*Object
}

// NewDocument creates a document holding only the border overlay.
func NewDocument(display geometry.Size) *Document {
	return &Document{
		Display: display,
		Objects: []*Object{{Kind: KindBorder}},
	}
}

// UserImage returns the document's user image object, or nil.
func (d *Document) UserImage() *Object {
	for _, obj := range d.Objects {
		switch obj.Kind {
		case KindUserImage:
			return obj
		case KindBorder:
			// never selectable
		}
	}
	return nil
}

// SetUserImage replaces any existing user image with obj.
func (d *Document) SetUserImage(obj *Object) {
	d.RemoveUserImage()
	d.Objects = append(d.Objects, obj)
}

// RemoveUserImage drops the user image, keeping the border overlay.
func (d *Document) RemoveUserImage() {
	kept := d.Objects[:0]
	for _, obj := range d.Objects {
		switch obj.Kind {
		case KindBorder:
			kept = append(kept, obj)
		case KindUserImage:
			// dropped
		}
	}
	d.Objects = kept
}
