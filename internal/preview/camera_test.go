package preview

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settle advances the damped easing until it converges.
func settle(c *OrbitCamera) {
	for i := 0; i < 600; i++ {
		c.Update(1.0 / 60)
	}
}

func TestNewOrbitCameraStartsAtHome(t *testing.T) {
	c := NewOrbitCamera(100)
	assert.InDelta(t, 320, c.Radius(), 1e-9)
	assert.InDelta(t, defaultPolar, c.Polar(), 1e-9)
}

func TestPolarClamp(t *testing.T) {
	c := NewOrbitCamera(100)

	c.Rotate(0, -10)
	settle(c)
	assert.InDelta(t, minPolar, c.Polar(), 1e-6)

	c.Rotate(0, 20)
	settle(c)
	assert.InDelta(t, maxPolar, c.Polar(), 1e-6)
}

func TestZoomClamp(t *testing.T) {
	c := NewOrbitCamera(100)

	for i := 0; i < 100; i++ {
		c.ZoomIn()
	}
	settle(c)
	assert.InDelta(t, 140, c.Radius(), 1e-6)

	for i := 0; i < 100; i++ {
		c.ZoomOut()
	}
	settle(c)
	assert.InDelta(t, 700, c.Radius(), 1e-6)
}

func TestResetReturnsHome(t *testing.T) {
	c := NewOrbitCamera(100)
	c.Rotate(1.3, 0.2)
	c.ZoomIn()
	settle(c)

	c.Reset()
	settle(c)
	assert.InDelta(t, 320, c.Radius(), 1e-6)
	assert.InDelta(t, defaultPolar, c.Polar(), 1e-6)
}

func TestUpdateIsDamped(t *testing.T) {
	c := NewOrbitCamera(100)
	c.Rotate(0, 0.3)

	before := c.Polar()
	c.Update(1.0 / 60)
	after := c.Polar()

	// One small step moves toward the target but does not snap onto it.
	assert.Greater(t, after, before)
	assert.Less(t, after, before+0.3)

	c.Update(0)
	assert.Equal(t, after, c.Polar())
}

func TestEyeRespectsSphericalCoordinates(t *testing.T) {
	c := NewOrbitCamera(100)

	eye := c.Eye()
	assert.InDelta(t, c.Radius(), eye.Length(), 1e-9)

	// At azimuth zero the camera sits on the +Z side.
	assert.Greater(t, eye.Z, 0.0)
	assert.InDelta(t, 0, eye.X, 1e-9)
}

func TestViewProjectionMapsTargetToCenter(t *testing.T) {
	c := NewOrbitCamera(100)
	vp := c.ViewProjection(1)

	// The orbit target (origin) projects to NDC x = y = 0.
	x := vp.At(0, 3)
	y := vp.At(1, 3)
	w := vp.At(3, 3)
	require.NotZero(t, w)
	assert.InDelta(t, 0, x/w, 1e-9)
	assert.InDelta(t, 0, y/w, 1e-9)
}

func TestIdleYawIsPure(t *testing.T) {
	assert.Equal(t, 0.0, IdleYaw(0))
	assert.InDelta(t, 28, IdleYaw(2*time.Second), 1e-9)
	assert.InDelta(t, 60, IdleYaw(30*time.Second), 1e-9)

	// Same input, same output: no hidden per-frame state.
	assert.Equal(t, IdleYaw(7*time.Second), IdleYaw(7*time.Second))
	assert.Less(t, IdleYaw(1000*time.Second), 360.0)
}

func TestClampF(t *testing.T) {
	assert.Equal(t, 2.0, clampF(1, 2, 5))
	assert.Equal(t, 5.0, clampF(9, 2, 5))
	assert.Equal(t, math.Pi, clampF(math.Pi, 2, 5))
}
