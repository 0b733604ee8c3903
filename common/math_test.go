package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-5

func assertPoint(t *testing.T, wantX, wantY, wantZ, x, y, z float32) {
	t.Helper()
	assert.InDelta(t, wantX, x, epsilon, "x")
	assert.InDelta(t, wantY, y, epsilon, "y")
	assert.InDelta(t, wantZ, z, epsilon, "z")
}

func TestMul4_Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}

	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)

	Mul4(out[:], m[:], id[:])
	assert.Equal(t, m, out)
}

func TestMul4_Aliasing(t *testing.T) {
	var m [16]float32
	Identity(m[:])
	Translate(m[:], 1, 2, 3)

	var expected [16]float32
	Mul4(expected[:], m[:], m[:])
	Mul4(m[:], m[:], m[:])
	assert.Equal(t, expected, m)
}

func TestTranslate(t *testing.T) {
	var m [16]float32
	Identity(m[:])
	Translate(m[:], 1, -2, 3)

	x, y, z := TransformPoint(m[:], 0, 0, 0)
	assertPoint(t, 1, -2, 3, x, y, z)
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name                string
		rotate              func(m []float32, angle float32)
		inX, inY, inZ       float32
		wantX, wantY, wantZ float32
	}{
		{name: "x axis", rotate: RotateX, inY: 1, wantZ: 1},
		{name: "y axis", rotate: RotateY, inX: 1, wantZ: -1},
		{name: "z axis", rotate: RotateZ, inX: 1, wantY: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m [16]float32
			Identity(m[:])
			tt.rotate(m[:], math32.Pi/2)

			x, y, z := TransformPoint(m[:], tt.inX, tt.inY, tt.inZ)
			assertPoint(t, tt.wantX, tt.wantY, tt.wantZ, x, y, z)
		})
	}
}

func TestTranslateThenRotate_AppliesRotationFirst(t *testing.T) {
	// m = T * Ry, so a point is rotated in object space and then moved.
	var m [16]float32
	Identity(m[:])
	Translate(m[:], 0, 0, -3)
	RotateY(m[:], math32.Pi/2)

	x, y, z := TransformPoint(m[:], 1, 0, 0)
	assertPoint(t, 0, 0, -4, x, y, z)
}

func TestPerspective_DepthRange(t *testing.T) {
	const near, far = 1, 100
	var p [16]float32
	Perspective(p[:], 2*math32.Pi/5, 16.0/9.0, near, far)

	clipDepth := func(viewZ float32) float32 {
		z := p[10]*viewZ + p[14]
		w := p[11]*viewZ + p[15]
		return z / w
	}

	assert.InDelta(t, 0, clipDepth(-near), epsilon)
	assert.InDelta(t, 1, clipDepth(-far), epsilon)
	assert.Equal(t, float32(-1), p[11])
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))

	data := []float32{1, 2, 3}
	b := SliceToBytes(data)
	require.Len(t, b, 12)

	u16 := SliceToBytes([]uint16{1, 2, 3, 4, 5})
	assert.Len(t, u16, 10)
}
