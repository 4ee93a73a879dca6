package preview

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"print-studio/pkg/geometry"
)

// Orbit camera limits. The polar clamp keeps the viewer from flipping under
// the product or looking straight down its axis.
const (
	minPolar = 0.35
	maxPolar = math.Pi - 0.85

	defaultAzimuth = 0.0
	defaultPolar   = math.Pi / 2.2

	// Damping rate per second for the eased orbit; higher snaps faster.
	orbitDamping = 8.0

	// Fixed dolly step for external zoom commands, as a fraction of the
	// default distance.
	dollyStepFrac = 0.12

	fovY = 40 * math.Pi / 180
	near = 1.0
	far  = 10000.0
)

// OrbitCamera is a damped orbit/zoom camera around a fixed target. Rotate
// and zoom adjust target values; Update eases the live values toward them so
// camera movement never snaps.
type OrbitCamera struct {
	target geometry.Vec3

	azimuth, polar, radius          float64
	wantAzimuth, wantPolar, wantRad float64

	minRadius, maxRadius, homeRadius float64
}

// NewOrbitCamera creates a camera framing an object of the given extent.
func NewOrbitCamera(extent float64) *OrbitCamera {
	home := extent * 3.2
	c := &OrbitCamera{
		homeRadius: home,
		minRadius:  extent * 1.4,
		maxRadius:  extent * 7,
	}
	c.Reset()
	c.snap()
	return c
}

// Reset returns the camera to its home orientation and distance. The move is
// damped like any other.
func (c *OrbitCamera) Reset() {
	c.wantAzimuth = defaultAzimuth
	c.wantPolar = defaultPolar
	c.wantRad = c.homeRadius
}

// snap jumps the live values onto the targets, skipping the easing.
func (c *OrbitCamera) snap() {
	c.azimuth = c.wantAzimuth
	c.polar = c.wantPolar
	c.radius = c.wantRad
}

// Rotate orbits by the given azimuth/polar deltas in radians, clamping the
// polar angle to its bounds.
func (c *OrbitCamera) Rotate(dAzimuth, dPolar float64) {
	c.wantAzimuth += dAzimuth
	c.wantPolar = clampF(c.wantPolar+dPolar, minPolar, maxPolar)
}

// Dolly moves the camera along its current view direction by step world
// units (positive moves closer), clamped to the zoom bounds.
func (c *OrbitCamera) Dolly(step float64) {
	c.wantRad = clampF(c.wantRad-step, c.minRadius, c.maxRadius)
}

// ZoomIn moves one fixed step toward the target.
func (c *OrbitCamera) ZoomIn() {
	c.Dolly(c.homeRadius * dollyStepFrac)
}

// ZoomOut moves one fixed step away from the target.
func (c *OrbitCamera) ZoomOut() {
	c.Dolly(-c.homeRadius * dollyStepFrac)
}

// Update advances the damped easing by dt seconds.
func (c *OrbitCamera) Update(dt float64) {
	if dt <= 0 {
		return
	}
	k := 1 - math.Exp(-orbitDamping*dt)
	c.azimuth += (c.wantAzimuth - c.azimuth) * k
	c.polar += (c.wantPolar - c.polar) * k
	c.radius += (c.wantRad - c.radius) * k
}

// Polar returns the live polar angle in radians.
func (c *OrbitCamera) Polar() float64 { return c.polar }

// Radius returns the live orbit distance.
func (c *OrbitCamera) Radius() float64 { return c.radius }

// Eye returns the camera position in world space.
func (c *OrbitCamera) Eye() geometry.Vec3 {
	sinP := math.Sin(c.polar)
	return geometry.Vec3{
		X: c.target.X + c.radius*sinP*math.Sin(c.azimuth),
		Y: c.target.Y + c.radius*math.Cos(c.polar),
		Z: c.target.Z + c.radius*sinP*math.Cos(c.azimuth),
	}
}

// ViewProjection returns the combined projection*view matrix for the given
// viewport aspect ratio.
func (c *OrbitCamera) ViewProjection(aspect float64) *mat.Dense {
	view := lookAt(c.Eye(), c.target, geometry.Vec3{Y: 1})
	proj := perspective(fovY, aspect, near, far)

	var vp mat.Dense
	vp.Mul(proj, view)
	return &vp
}

// lookAt builds a right-handed view matrix.
func lookAt(eye, target, up geometry.Vec3) *mat.Dense {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return mat.NewDense(4, 4, []float64{
		s.X, s.Y, s.Z, -s.Dot(eye),
		u.X, u.Y, u.Z, -u.Dot(eye),
		-f.X, -f.Y, -f.Z, f.Dot(eye),
		0, 0, 0, 1,
	})
}

// perspective builds a perspective projection matrix.
func perspective(fovy, aspect, near, far float64) *mat.Dense {
	t := 1 / math.Tan(fovy/2)
	return mat.NewDense(4, 4, []float64{
		t / aspect, 0, 0, 0,
		0, t, 0, 0,
		0, 0, (far + near) / (near - far), 2 * far * near / (near - far),
		0, 0, -1, 0,
	})
}

func clampF(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
