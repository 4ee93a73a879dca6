package preview

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"sync"
	"time"

	"print-studio/internal/catalog"
	"print-studio/internal/texture"
	"print-studio/pkg/colorutil"
	"print-studio/pkg/geometry"
)

// Phase is the renderer readiness state. Operations outside PhaseReady are
// no-ops; a failed scene build leaves the placeholder frame visible rather
// than taking down the surrounding application.
type Phase int

const (
	PhaseUnloaded Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseUnloaded:
		return "Unloaded"
	case PhaseLoading:
		return "Loading"
	case PhaseReady:
		return "Ready"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Idle rotation speed. The yaw is a pure function of accumulated idle time,
// so there is no per-frame drift to accumulate.
const idleDegreesPerSecond = 14.0

// IdleYaw returns the idle rotation in degrees after the given active time.
func IdleYaw(elapsed time.Duration) float64 {
	return math.Mod(idleDegreesPerSecond*elapsed.Seconds(), 360)
}

// Lighting rig: one key directional light plus ambient fill.
var lightDir = geometry.Vec3{X: 0.35, Y: 0.65, Z: 0.67}.Normalize()

const (
	ambientLight = 0.38
	diffuseLight = 0.62
)

var (
	viewportBackground = color.NRGBA{32, 34, 40, 255}
	placeholderRing    = color.NRGBA{110, 116, 130, 255}
	failedRing         = color.NRGBA{70, 72, 80, 255}
)

// Renderer draws the parametric product scene into a plain RGBA frame.
type Renderer struct {
	mu sync.Mutex

	phase   Phase
	variant *catalog.Variant
	scene   *Scene
	camera  *OrbitCamera
	tex     *texture.Texture

	width, height int

	body color.NRGBA

	dragging  bool
	idleAccum time.Duration
	lastFrame time.Duration
	hasFrame  bool
}

// NewRenderer creates a renderer for the given viewport size. The renderer
// starts Unloaded and shows a placeholder until a variant is set.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		phase:  PhaseUnloaded,
		width:  width,
		height: height,
	}
}

// Phase returns the current readiness state.
func (r *Renderer) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// SetVariant builds the scene for a variant. On failure the renderer enters
// PhaseFailed and keeps serving placeholder frames.
func (r *Renderer) SetVariant(v *catalog.Variant) {
	r.mu.Lock()
	r.phase = PhaseLoading
	r.mu.Unlock()

	scene, err := BuildScene(v)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		log.Printf("preview: scene build failed: %v", err)
		r.phase = PhaseFailed
		r.scene = nil
		return
	}
	r.variant = v
	r.scene = scene
	r.camera = NewOrbitCamera(scene.Extent)
	r.phase = PhaseReady
	if r.body != (color.NRGBA{}) {
		r.applyBodyColor()
	}
}

// SetBodyColor tints the product body (and the handle, when present).
// The tint survives variant changes.
func (r *Renderer) SetBodyColor(c color.NRGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.body = c
	if r.phase == PhaseReady {
		r.applyBodyColor()
	}
}

func (r *Renderer) applyBodyColor() {
	r.scene.Body.Base = r.body
	if r.scene.Handle != nil {
		r.scene.Handle.Base = colorutil.Darken(r.body, 0.08)
	}
}

// Variant returns the variant whose scene is loaded, or nil.
func (r *Renderer) Variant() *catalog.Variant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.variant
}

// SetTexture binds the decal texture. A nil texture renders the base product
// without a decal. No-op outside PhaseReady.
func (r *Renderer) SetTexture(tex *texture.Texture) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseReady {
		return
	}
	r.tex = tex
}

// SetDragging suspends the idle rotation while the user orbits.
func (r *Renderer) SetDragging(dragging bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dragging = dragging
}

// Rotate forwards an orbit delta to the camera. No-op outside PhaseReady.
func (r *Renderer) Rotate(dAzimuth, dPolar float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase == PhaseReady {
		r.camera.Rotate(dAzimuth, dPolar)
	}
}

// ResetCamera, ZoomIn, and ZoomOut are the external camera commands. All are
// no-ops outside PhaseReady.
func (r *Renderer) ResetCamera() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase == PhaseReady {
		r.camera.Reset()
	}
}

func (r *Renderer) ZoomIn() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase == PhaseReady {
		r.camera.ZoomIn()
	}
}

func (r *Renderer) ZoomOut() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase == PhaseReady {
		r.camera.ZoomOut()
	}
}

// Resize changes the viewport dimensions.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width > 0 && height > 0 {
		r.width = width
		r.height = height
	}
}

// Close drops scene and texture references. The bridge owns texture
// disposal; the renderer only lets go of its reference.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scene = nil
	r.tex = nil
	r.phase = PhaseUnloaded
}

// Frame renders the scene at monotonic time t. Outside PhaseReady it renders
// the placeholder so the viewport region always has content.
func (r *Renderer) Frame(t time.Duration) *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	dt := time.Duration(0)
	if r.hasFrame && t > r.lastFrame {
		dt = t - r.lastFrame
	}
	r.lastFrame = t
	r.hasFrame = true

	if r.phase != PhaseReady {
		return r.placeholderFrame(t)
	}

	if !r.dragging {
		r.idleAccum += dt
	}
	r.camera.Update(dt.Seconds())

	return r.renderScene(IdleYaw(r.idleAccum))
}

// placeholderFrame draws the loading/fallback viewport content.
func (r *Renderer) placeholderFrame(t time.Duration) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), &image.Uniform{viewportBackground}, image.Point{}, draw.Src)

	cx, cy := r.width/2, r.height/2
	radius := minInt(r.width, r.height) / 8

	if r.phase == PhaseFailed {
		drawArc(img, cx, cy, radius, 0, 2*math.Pi, failedRing)
		return img
	}

	// Spinner: a 270-degree arc whose start angle advances with time.
	start := 2 * math.Pi * math.Mod(t.Seconds(), 1.2) / 1.2
	drawArc(img, cx, cy, radius, start, start+1.5*math.Pi, placeholderRing)
	return img
}

// drawArc plots an arc with short line steps.
func drawArc(img *image.RGBA, cx, cy, radius int, from, to float64, c color.NRGBA) {
	steps := 96
	for i := 0; i <= steps; i++ {
		a := from + (to-from)*float64(i)/float64(steps)
		x := cx + int(math.Round(float64(radius)*math.Cos(a)))
		y := cy + int(math.Round(float64(radius)*math.Sin(a)))
		for dx := -1; dx <= 0; dx++ {
			for dy := -1; dy <= 0; dy++ {
				setPixel(img, x+dx, y+dy, c)
			}
		}
	}
}

func setPixel(img *image.RGBA, x, y int, c color.NRGBA) {
	b := img.Bounds()
	if x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
		img.SetRGBA(x, y, color.RGBA{c.R, c.G, c.B, c.A})
	}
}
