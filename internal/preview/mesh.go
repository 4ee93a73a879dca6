// Package preview renders a parametric 3D model of the selected product
// with the live canvas texture wrapped onto its printable surface.
package preview

import (
	"fmt"
	"image/color"
	"math"

	"print-studio/internal/catalog"
	"print-studio/pkg/geometry"
)

// Vertex is a mesh vertex with position, normal, and texture coordinate.
// V is authored bottom-to-top; the decal texture flips V at sample time so
// the texture's top edge lands on the geometry's top edge.
type Vertex struct {
	Pos    geometry.Vec3
	Normal geometry.Vec3
	UV     geometry.UV
}

// Triangle indexes three vertices of a mesh.
type Triangle struct {
	A, B, C int
}

// Mesh is a triangle mesh with a base color. Textured meshes sample the
// bound decal texture; untextured meshes shade the base color only.
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle
	Base      color.NRGBA
	Textured  bool
}

const (
	latheSegments   = 48
	profileRows     = 12
	decalRows       = 8
	decalOffset     = 1.012 // radial offset keeping the decal clear of the body surface
	decalBottomFrac = 0.10  // vertical inset of the decal band
	decalTopFrac    = 0.90
	garmentFlatten  = 0.62 // depth squash applied to garment bodies
)

var (
	bodyColor    = color.NRGBA{242, 242, 240, 255}
	garmentColor = color.NRGBA{228, 228, 232, 255}
)

// Scene holds the meshes built for one variant.
type Scene struct {
	Body   *Mesh
	Decal  *Mesh
	Handle *Mesh // nil for garments
	// Extent is the largest distance from origin, used to frame the camera.
	Extent float64
}

// BuildScene constructs the parametric geometry for a variant. Variant
// selection changes profile parameters; no authored assets are involved.
func BuildScene(v *catalog.Variant) (*Scene, error) {
	if v == nil {
		return nil, fmt.Errorf("nil variant")
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}

	phys := v.Physical
	scene := &Scene{}

	switch v.Kind {
	case catalog.KindMug:
		scene.Body = buildLatheBody(phys, 1, bodyColor)
		scene.Decal = buildDecalBand(phys, 1)
		scene.Handle = buildHandle(phys)
	case catalog.KindGarment:
		scene.Body = buildLatheBody(phys, garmentFlatten, garmentColor)
		scene.Decal = buildDecalBand(phys, garmentFlatten)
	default:
		return nil, fmt.Errorf("unknown variant kind %q", v.Kind)
	}

	scene.Extent = math.Sqrt(math.Pow(phys.HeightMM/2, 2) + math.Pow(maxRadius(phys)*1.3, 2))
	return scene, nil
}

func maxRadius(p catalog.Physical) float64 {
	return math.Max(p.TopRadiusMM, p.BottomRadiusMM)
}

// profileRadius interpolates the lathe profile radius at height fraction
// t in [0,1] (bottom to top), with a slight barrel bulge at mid height.
func profileRadius(p catalog.Physical, t float64) float64 {
	r := p.BottomRadiusMM + (p.TopRadiusMM-p.BottomRadiusMM)*t
	bulge := 1 + 0.015*math.Sin(t*math.Pi)
	return r * bulge
}

// buildLatheBody revolves the profile curve into a closed surface with a
// bottom cap. flatten squashes the Z axis (1 = round).
func buildLatheBody(p catalog.Physical, flatten float64, base color.NRGBA) *Mesh {
	m := &Mesh{Base: base}

	h := p.HeightMM
	for row := 0; row <= profileRows; row++ {
		t := float64(row) / profileRows
		y := -h/2 + h*t
		r := profileRadius(p, t)
		for seg := 0; seg <= latheSegments; seg++ {
			theta := 2 * math.Pi * float64(seg) / latheSegments
			sin, cos := math.Sin(theta), math.Cos(theta)
			m.Vertices = append(m.Vertices, Vertex{
				Pos:    geometry.Vec3{X: r * sin, Y: y, Z: r * cos * flatten},
				Normal: geometry.Vec3{X: sin, Y: 0, Z: cos / flatten}.Normalize(),
			})
		}
	}

	stride := latheSegments + 1
	for row := 0; row < profileRows; row++ {
		for seg := 0; seg < latheSegments; seg++ {
			a := row*stride + seg
			b := a + 1
			c := a + stride
			d := c + 1
			m.Triangles = append(m.Triangles, Triangle{a, c, b}, Triangle{b, c, d})
		}
	}

	addBottomCap(m, p, flatten)
	return m
}

// addBottomCap closes the underside with a triangle fan.
func addBottomCap(m *Mesh, p catalog.Physical, flatten float64) {
	h := p.HeightMM
	r := profileRadius(p, 0)
	down := geometry.Vec3{Y: -1}

	center := len(m.Vertices)
	m.Vertices = append(m.Vertices, Vertex{
		Pos:    geometry.Vec3{Y: -h / 2},
		Normal: down,
	})
	for seg := 0; seg <= latheSegments; seg++ {
		theta := 2 * math.Pi * float64(seg) / latheSegments
		m.Vertices = append(m.Vertices, Vertex{
			Pos:    geometry.Vec3{X: r * math.Sin(theta), Y: -h / 2, Z: r * math.Cos(theta) * flatten},
			Normal: down,
		})
	}
	for seg := 0; seg < latheSegments; seg++ {
		m.Triangles = append(m.Triangles, Triangle{center, center + 1 + seg, center + 2 + seg})
	}
}

// buildDecalBand builds the thin printable surface: a band offset slightly
// outward from the body, covering the angular arc that excludes the handle
// gap. The gap is centered behind the product (theta = pi); the decal is
// centered on the viewer-facing front (theta = 0).
//
// UVs: U runs across the arc, V runs bottom (0) to top (1). The decal
// texture is created with FlipV so raster row 0 (image top) samples at the
// band's top edge.
func buildDecalBand(p catalog.Physical, flatten float64) *Mesh {
	m := &Mesh{Base: color.NRGBA{255, 255, 255, 255}, Textured: true}

	arc := (360 - p.HandleGapDegrees) * math.Pi / 180
	start := -arc / 2
	h := p.HeightMM
	y0 := -h/2 + h*decalBottomFrac
	y1 := -h/2 + h*decalTopFrac

	segs := latheSegments
	for row := 0; row <= decalRows; row++ {
		tv := float64(row) / decalRows
		y := y0 + (y1-y0)*tv
		t := (y + h/2) / h
		r := profileRadius(p, t) * decalOffset
		for seg := 0; seg <= segs; seg++ {
			tu := float64(seg) / float64(segs)
			theta := start + arc*tu
			sin, cos := math.Sin(theta), math.Cos(theta)
			m.Vertices = append(m.Vertices, Vertex{
				Pos:    geometry.Vec3{X: r * sin, Y: y, Z: r * cos * flatten},
				Normal: geometry.Vec3{X: sin, Y: 0, Z: cos / flatten}.Normalize(),
				UV:     geometry.UV{U: tu, V: tv},
			})
		}
	}

	stride := segs + 1
	for row := 0; row < decalRows; row++ {
		for seg := 0; seg < segs; seg++ {
			a := row*stride + seg
			b := a + 1
			c := a + stride
			d := c + 1
			m.Triangles = append(m.Triangles, Triangle{a, c, b}, Triangle{b, c, d})
		}
	}

	return m
}

// buildHandle builds a partial torus in the handle gap behind the mug.
func buildHandle(p catalog.Physical) *Mesh {
	m := &Mesh{Base: bodyColor}

	major := p.HeightMM * 0.30
	tube := p.HeightMM * 0.045
	// Path center sits at mid height, just inside the back wall.
	cz := -profileRadius(p, 0.5) + tube/2

	const (
		pathSegs = 16
		tubeSegs = 10
	)

	for i := 0; i <= pathSegs; i++ {
		phi := -math.Pi/2 + math.Pi*float64(i)/pathSegs
		sinP, cosP := math.Sin(phi), math.Cos(phi)
		center := geometry.Vec3{Y: major * sinP, Z: cz - major*cosP}
		// In-plane outward normal and the out-of-plane binormal frame the
		// tube cross-section.
		n := geometry.Vec3{Y: sinP, Z: -cosP}
		b := geometry.Vec3{X: 1}

		for j := 0; j <= tubeSegs; j++ {
			psi := 2 * math.Pi * float64(j) / tubeSegs
			dir := n.Scale(math.Cos(psi)).Add(b.Scale(math.Sin(psi)))
			m.Vertices = append(m.Vertices, Vertex{
				Pos:    center.Add(dir.Scale(tube)),
				Normal: dir,
			})
		}
	}

	stride := tubeSegs + 1
	for i := 0; i < pathSegs; i++ {
		for j := 0; j < tubeSegs; j++ {
			a := i*stride + j
			b := a + 1
			c := a + stride
			d := c + 1
			m.Triangles = append(m.Triangles, Triangle{a, c, b}, Triangle{b, c, d})
		}
	}

	return m
}
