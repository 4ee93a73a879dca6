package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	assert.Equal(t, NewVec3(0, 0, 1), x.Cross(y))
	assert.Equal(t, NewVec3(0, 0, -1), y.Cross(x))
}

func TestVec3Normalize(t *testing.T) {
	n := NewVec3(3, 0, 4).Normalize()
	assert.InDelta(t, 1, n.Length(), 1e-12)
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Z, 1e-12)

	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestVec3DotOrthogonal(t *testing.T) {
	a := NewVec3(2, -1, 3)
	b := a.Cross(NewVec3(0, 1, 0))
	assert.InDelta(t, 0, a.Dot(b), 1e-12)
}
