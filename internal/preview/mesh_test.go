package preview

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"print-studio/internal/catalog"
)

func TestBuildSceneMug(t *testing.T) {
	scene, err := BuildScene(catalog.Get("mug-11oz"))
	require.NoError(t, err)

	require.NotNil(t, scene.Body)
	require.NotNil(t, scene.Decal)
	require.NotNil(t, scene.Handle)
	assert.Greater(t, scene.Extent, 0.0)

	assert.NotEmpty(t, scene.Body.Triangles)
	assert.NotEmpty(t, scene.Handle.Triangles)
	assert.True(t, scene.Decal.Textured)
	assert.False(t, scene.Body.Textured)
}

func TestBuildSceneGarmentHasNoHandle(t *testing.T) {
	scene, err := BuildScene(catalog.Get("tee-classic"))
	require.NoError(t, err)
	assert.Nil(t, scene.Handle)
	require.NotNil(t, scene.Decal)
}

func TestBuildSceneRejectsBadInput(t *testing.T) {
	_, err := BuildScene(nil)
	assert.Error(t, err)

	bad := *catalog.Get("mug-11oz")
	bad.Physical.HeightMM = 0
	_, err = BuildScene(&bad)
	assert.Error(t, err)
}

func TestDecalUVOrientation(t *testing.T) {
	scene, err := BuildScene(catalog.Get("mug-11oz"))
	require.NoError(t, err)

	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, vert := range scene.Decal.Vertices {
		require.GreaterOrEqual(t, vert.UV.U, 0.0)
		require.LessOrEqual(t, vert.UV.U, 1.0)
		minV = math.Min(minV, vert.UV.V)
		maxV = math.Max(maxV, vert.UV.V)
	}
	assert.Equal(t, 0.0, minV)
	assert.Equal(t, 1.0, maxV)

	// V grows with height: the top edge of the band carries V=1.
	var topY, bottomY float64 = math.Inf(-1), math.Inf(1)
	for _, vert := range scene.Decal.Vertices {
		topY = math.Max(topY, vert.Pos.Y)
		bottomY = math.Min(bottomY, vert.Pos.Y)
	}
	for _, vert := range scene.Decal.Vertices {
		if vert.Pos.Y == topY {
			assert.Equal(t, 1.0, vert.UV.V)
		}
		if vert.Pos.Y == bottomY {
			assert.Equal(t, 0.0, vert.UV.V)
		}
	}
}

func TestDecalAvoidsHandleGap(t *testing.T) {
	v := catalog.Get("mug-11oz")
	scene, err := BuildScene(v)
	require.NoError(t, err)

	// The gap is centered behind the mug (theta = pi). No decal vertex may
	// fall inside it.
	halfArc := (360 - v.Physical.HandleGapDegrees) / 2 * math.Pi / 180
	for _, vert := range scene.Decal.Vertices {
		theta := math.Atan2(vert.Pos.X, vert.Pos.Z)
		assert.LessOrEqual(t, math.Abs(theta), halfArc+1e-9)
	}
}

func TestDecalSitsOutsideBody(t *testing.T) {
	v := catalog.Get("mug-15oz")
	scene, err := BuildScene(v)
	require.NoError(t, err)

	// Every decal vertex sits slightly off the surface so the band always
	// wins the depth test against the body it covers.
	for _, vert := range scene.Decal.Vertices {
		radial := math.Hypot(vert.Pos.X, vert.Pos.Z)
		h := v.Physical.HeightMM
		tv := (vert.Pos.Y + h/2) / h
		assert.Greater(t, radial, profileRadius(v.Physical, tv)*1.005)
	}
}

func TestGarmentBodyIsFlattened(t *testing.T) {
	scene, err := BuildScene(catalog.Get("hoodie-pullover"))
	require.NoError(t, err)

	var maxX, maxZ float64
	for _, vert := range scene.Body.Vertices {
		maxX = math.Max(maxX, math.Abs(vert.Pos.X))
		maxZ = math.Max(maxZ, math.Abs(vert.Pos.Z))
	}
	assert.Less(t, maxZ, maxX)
}
