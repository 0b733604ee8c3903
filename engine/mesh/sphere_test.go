package mesh

import (
	"math/rand/v2"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vertexAt(s *Sphere, i int) (pos, normal [3]float32, uv [2]float32) {
	v := s.Vertices[i*floatsPerVertex : (i+1)*floatsPerVertex]
	return [3]float32{v[0], v[1], v[2]}, [3]float32{v[3], v[4], v[5]}, [2]float32{v[6], v[7]}
}

func length(v [3]float32) float32 {
	return math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func TestNewSphere_Counts(t *testing.T) {
	tests := []struct {
		name          string
		radius        float32
		width, height int
	}{
		{name: "planet", radius: 1, width: 32, height: 16},
		{name: "small asteroid", radius: 0.01, width: 8, height: 6},
		{name: "large asteroid", radius: 0.03, width: 16, height: 8},
		{name: "minimum", radius: 2, width: 3, height: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSphere(tt.radius, tt.width, tt.height, 0)
			require.NoError(t, err)

			assert.Equal(t, (tt.width+1)*(tt.height+1), s.VertexCount())
			assert.Equal(t, uint32(tt.width*tt.height*6), s.IndexCount())

			for i := 0; i < s.VertexCount(); i++ {
				pos, _, _ := vertexAt(s, i)
				assert.InDelta(t, tt.radius, length(pos), 1e-5, "vertex %d", i)
			}
			for _, idx := range s.Indices {
				assert.Less(t, int(idx), s.VertexCount())
			}
		})
	}
}

func TestNewSphere_ClampsSegments(t *testing.T) {
	s, err := NewSphere(1, 1, 0, 0)
	require.NoError(t, err)

	w, h := s.Segments()
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, 12, s.VertexCount())
}

func TestNewSphere_SeamAndPoles(t *testing.T) {
	const w, h = 8, 6
	s, err := NewSphere(1, w, h, 0.15, WithRandomSource(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)

	for iy := 0; iy <= h; iy++ {
		first, _, _ := vertexAt(s, iy*(w+1))
		seam, _, _ := vertexAt(s, iy*(w+1)+w)
		assert.Equal(t, first, seam, "row %d seam", iy)
	}

	for _, iy := range []int{0, h} {
		first, _, _ := vertexAt(s, iy*(w+1))
		for ix := 1; ix <= w; ix++ {
			pos, _, _ := vertexAt(s, iy*(w+1)+ix)
			assert.Equal(t, first, pos, "pole row %d column %d", iy, ix)
		}
	}
}

func TestNewSphere_Randomness(t *testing.T) {
	const radius, randomness = 1.0, 0.15
	s, err := NewSphere(radius, 16, 8, randomness, WithRandomSource(rand.New(rand.NewPCG(7, 7))))
	require.NoError(t, err)

	perturbed := false
	for i := 0; i < s.VertexCount(); i++ {
		pos, normal, _ := vertexAt(s, i)
		l := length(pos)
		assert.GreaterOrEqual(t, l, float32(radius*(1-randomness))-1e-5)
		assert.LessOrEqual(t, l, float32(radius*(1+randomness))+1e-5)
		assert.InDelta(t, 1, length(normal), 1e-5)
		if math32.Abs(l-radius) > 1e-4 {
			perturbed = true
		}
	}
	assert.True(t, perturbed)
}

func TestNewSphere_ReproducibleWithSeed(t *testing.T) {
	a, err := NewSphere(0.02, 8, 6, 0.15, WithRandomSource(rand.New(rand.NewPCG(3, 4))))
	require.NoError(t, err)
	b, err := NewSphere(0.02, 8, 6, 0.15, WithRandomSource(rand.New(rand.NewPCG(3, 4))))
	require.NoError(t, err)

	assert.Equal(t, a.Vertices, b.Vertices)
	assert.Equal(t, a.Indices, b.Indices)
}

func TestNewSphere_UVs(t *testing.T) {
	const w, h = 4, 2
	s, err := NewSphere(1, w, h, 0)
	require.NoError(t, err)

	_, _, top := vertexAt(s, 0)
	assert.InDelta(t, 0.5/w, top[0], 1e-6)
	assert.InDelta(t, 1, top[1], 1e-6)

	_, _, mid := vertexAt(s, (w+1)+2)
	assert.InDelta(t, 0.5, mid[0], 1e-6)
	assert.InDelta(t, 0.5, mid[1], 1e-6)

	_, _, bottom := vertexAt(s, h*(w+1))
	assert.InDelta(t, -0.5/w, bottom[0], 1e-6)
	assert.InDelta(t, 0, bottom[1], 1e-6)
}

func TestNewSphere_TooManyVertices(t *testing.T) {
	_, err := NewSphere(1, 512, 256, 0)
	assert.ErrorIs(t, err, ErrTooManyVertices)
}

func TestSphere_Bytes(t *testing.T) {
	s, err := NewSphere(1, 3, 2, 0)
	require.NoError(t, err)

	assert.Len(t, s.VertexBytes(), s.VertexCount()*VertexStride)
	assert.Zero(t, len(s.IndexBytes())%4)
	assert.GreaterOrEqual(t, len(s.IndexBytes()), int(s.IndexCount())*2)
}
