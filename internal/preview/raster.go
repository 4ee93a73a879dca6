package preview

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"gonum.org/v1/gonum/mat"

	"print-studio/internal/texture"
)

// projected is a mesh vertex after model/view/projection and viewport
// transform. UVs and 1/w are kept separately for perspective-correct
// interpolation.
type projected struct {
	sx, sy    float64
	depth     float64
	invW      float64
	uOverW    float64
	vOverW    float64
	intensity float64
}

// renderScene rasterizes the scene with a z-buffer at the given model yaw.
// Called with the renderer lock held.
func (r *Renderer) renderScene(yawDegrees float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), &image.Uniform{viewportBackground}, image.Point{}, draw.Src)

	zbuf := make([]float64, r.width*r.height)
	for i := range zbuf {
		zbuf[i] = math.Inf(1)
	}

	aspect := float64(r.width) / float64(r.height)
	vp := r.camera.ViewProjection(aspect)

	yaw := yawDegrees * math.Pi / 180
	sinY, cosY := math.Sin(yaw), math.Cos(yaw)

	r.rasterMesh(img, zbuf, r.scene.Body, vp, sinY, cosY, nil)
	if r.scene.Handle != nil {
		r.rasterMesh(img, zbuf, r.scene.Handle, vp, sinY, cosY, nil)
	}
	// Texture decode failure leaves tex nil: base product, no decal.
	if r.scene.Decal != nil && r.tex != nil && !r.tex.Disposed() {
		r.rasterMesh(img, zbuf, r.scene.Decal, vp, sinY, cosY, r.tex)
	}

	return img
}

// rasterMesh projects and fills one mesh. tex is nil for untextured meshes.
func (r *Renderer) rasterMesh(img *image.RGBA, zbuf []float64, m *Mesh, vp *mat.Dense, sinY, cosY float64, tex *texture.Texture) {
	var e [16]float64
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			e[row*4+col] = vp.At(row, col)
		}
	}

	verts := make([]projected, len(m.Vertices))
	behind := make([]bool, len(m.Vertices))

	for i, v := range m.Vertices {
		// Model transform: yaw rotation about Y.
		px := v.Pos.X*cosY + v.Pos.Z*sinY
		py := v.Pos.Y
		pz := -v.Pos.X*sinY + v.Pos.Z*cosY

		nx := v.Normal.X*cosY + v.Normal.Z*sinY
		ny := v.Normal.Y
		nz := -v.Normal.X*sinY + v.Normal.Z*cosY

		cx := e[0]*px + e[1]*py + e[2]*pz + e[3]
		cy := e[4]*px + e[5]*py + e[6]*pz + e[7]
		cz := e[8]*px + e[9]*py + e[10]*pz + e[11]
		cw := e[12]*px + e[13]*py + e[14]*pz + e[15]

		if cw < near {
			behind[i] = true
			continue
		}

		invW := 1 / cw
		diffuse := nx*lightDir.X + ny*lightDir.Y + nz*lightDir.Z
		if diffuse < 0 {
			diffuse = 0
		}

		verts[i] = projected{
			sx:        (cx*invW*0.5 + 0.5) * float64(r.width),
			sy:        (0.5 - cy*invW*0.5) * float64(r.height),
			depth:     cz * invW,
			invW:      invW,
			uOverW:    v.UV.U * invW,
			vOverW:    v.UV.V * invW,
			intensity: ambientLight + diffuseLight*diffuse,
		}
	}

	for _, tri := range m.Triangles {
		if behind[tri.A] || behind[tri.B] || behind[tri.C] {
			continue
		}
		r.fillTriangle(img, zbuf, &verts[tri.A], &verts[tri.B], &verts[tri.C], m, tex)
	}
}

// fillTriangle scan-fills one projected triangle with z-buffering and
// perspective-correct texture lookup.
func (r *Renderer) fillTriangle(img *image.RGBA, zbuf []float64, a, b, c *projected, m *Mesh, tex *texture.Texture) {
	area := (b.sx-a.sx)*(c.sy-a.sy) - (b.sy-a.sy)*(c.sx-a.sx)
	if math.Abs(area) < 1e-9 {
		return
	}

	minX := maxInt(int(math.Floor(min3(a.sx, b.sx, c.sx))), 0)
	maxX := minInt(int(math.Ceil(max3(a.sx, b.sx, c.sx))), r.width-1)
	minY := maxInt(int(math.Floor(min3(a.sy, b.sy, c.sy))), 0)
	maxY := minInt(int(math.Ceil(max3(a.sy, b.sy, c.sy))), r.height-1)
	if minX > maxX || minY > maxY {
		return
	}

	invArea := 1 / area

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5

			l0 := ((b.sx-px)*(c.sy-py) - (b.sy-py)*(c.sx-px)) * invArea
			l1 := ((c.sx-px)*(a.sy-py) - (c.sy-py)*(a.sx-px)) * invArea
			l2 := 1 - l0 - l1
			if l0 < 0 || l1 < 0 || l2 < 0 {
				continue
			}

			depth := l0*a.depth + l1*b.depth + l2*c.depth
			idx := y*r.width + x
			if depth >= zbuf[idx] {
				continue
			}

			shade := clampF(l0*a.intensity+l1*b.intensity+l2*c.intensity, 0, 1)

			var base color.NRGBA
			if tex != nil {
				invW := l0*a.invW + l1*b.invW + l2*c.invW
				u := (l0*a.uOverW + l1*b.uOverW + l2*c.uOverW) / invW
				v := (l0*a.vOverW + l1*b.vOverW + l2*c.vOverW) / invW
				base = tex.Sample(u, v)
				if base.A < 8 {
					base = m.Base
				}
			} else {
				base = m.Base
			}

			zbuf[idx] = depth
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(float64(base.R) * shade),
				G: uint8(float64(base.G) * shade),
				B: uint8(float64(base.B) * shade),
				A: 255,
			})
		}
	}
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
