// Package mesh generates procedural triangle meshes in the interleaved vertex layout consumed by the mesh pipeline.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/chewxy/math32"
)

const (
	// VertexStride is the size in bytes of one interleaved vertex (position, normal, uv).
	VertexStride = 32
	// PositionOffset is the byte offset of the float32x3 position attribute.
	PositionOffset = 0
	// NormalOffset is the byte offset of the float32x3 normal attribute.
	NormalOffset = 12
	// UVOffset is the byte offset of the float32x2 uv attribute.
	UVOffset = 24

	floatsPerVertex = VertexStride / 4

	minWidthSegments  = 3
	minHeightSegments = 2
)

// ErrTooManyVertices is returned when a sphere would need more vertices than a 16-bit index can address.
var ErrTooManyVertices = errors.New("sphere exceeds 16-bit index range")

// Sphere is CPU-side UV-sphere geometry ready for upload into vertex and index buffers.
type Sphere struct {
	// Vertices holds interleaved position(3), normal(3), uv(2) floats per vertex.
	Vertices []float32
	// Indices holds triangle-list indices into Vertices.
	Indices []uint16

	radius         float32
	widthSegments  int
	heightSegments int
	randomness     float32
	float          func() float32
}

// NewSphere generates a UV-sphere centered on the origin.
// Every vertex radius is perturbed by up to +/- randomness*radius along its normal. The seam column
// duplicates the first column and each pole row collapses onto a single position.
// Segment counts below 3 (width) and 2 (height) are raised to those minimums.
//
// Parameters:
//   - radius: the nominal sphere radius
//   - widthSegments: number of segments around the equator
//   - heightSegments: number of segments from pole to pole
//   - randomness: relative radial jitter, 0 for a perfect sphere
//   - options: functional options such as WithRandomSource
//
// Returns:
//   - *Sphere: the generated geometry
//   - error: ErrTooManyVertices if the vertex count exceeds the uint16 index range
func NewSphere(radius float32, widthSegments, heightSegments int, randomness float32, options ...SphereBuilderOption) (*Sphere, error) {
	s := &Sphere{
		radius:         radius,
		widthSegments:  max(widthSegments, minWidthSegments),
		heightSegments: max(heightSegments, minHeightSegments),
		randomness:     randomness,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.float == nil {
		s.float = defaultFloat
	}

	vertexCount := (s.widthSegments + 1) * (s.heightSegments + 1)
	if vertexCount > math.MaxUint16+1 {
		return nil, fmt.Errorf("%w: %d vertices", ErrTooManyVertices, vertexCount)
	}

	s.generate(vertexCount)
	return s, nil
}

func (s *Sphere) generate(vertexCount int) {
	w, h := s.widthSegments, s.heightSegments
	s.Vertices = make([]float32, 0, vertexCount*floatsPerVertex)
	s.Indices = make([]uint16, 0, w*h*6)

	grid := make([][]uint16, 0, h+1)
	var index uint16
	var vertex, first [3]float32

	for iy := 0; iy <= h; iy++ {
		row := make([]uint16, 0, w+1)
		v := float32(iy) / float32(h)

		var uOffset float32
		switch iy {
		case 0:
			uOffset = 0.5 / float32(w)
		case h:
			uOffset = -0.5 / float32(w)
		}
		pole := iy == 0 || iy == h

		for ix := 0; ix <= w; ix++ {
			u := float32(ix) / float32(w)

			switch {
			case ix == w:
				vertex = first
			case ix == 0 || !pole:
				rr := s.radius + (s.float()-0.5)*2*s.randomness*s.radius
				sinTheta, cosTheta := math32.Sincos(v * math32.Pi)
				sinPhi, cosPhi := math32.Sincos(u * 2 * math32.Pi)
				vertex = [3]float32{-rr * cosPhi * sinTheta, rr * cosTheta, rr * sinPhi * sinTheta}
				if ix == 0 {
					first = vertex
				}
			}

			normal := normalize(vertex)
			s.Vertices = append(s.Vertices,
				vertex[0], vertex[1], vertex[2],
				normal[0], normal[1], normal[2],
				u+uOffset, 1-v,
			)
			row = append(row, index)
			index++
		}
		grid = append(grid, row)
	}

	for iy := 0; iy < h; iy++ {
		for ix := 0; ix < w; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			s.Indices = append(s.Indices, a, b, d, b, c, d)
		}
	}
}

// Radius returns the nominal radius the sphere was generated with.
func (s *Sphere) Radius() float32 { return s.radius }

// Segments returns the effective width and height segment counts after clamping.
func (s *Sphere) Segments() (width, height int) { return s.widthSegments, s.heightSegments }

// VertexCount returns the number of vertices in the sphere.
func (s *Sphere) VertexCount() int { return len(s.Vertices) / floatsPerVertex }

// IndexCount returns the number of indices in the sphere.
func (s *Sphere) IndexCount() uint32 { return uint32(len(s.Indices)) }

// VertexBytes returns the vertex data as a byte slice view for GPU upload.
func (s *Sphere) VertexBytes() []byte { return common.SliceToBytes(s.Vertices) }

// IndexBytes returns the index data as a byte slice view for GPU upload.
// The length is padded to a multiple of 4 bytes as required by buffer writes.
func (s *Sphere) IndexBytes() []byte {
	b := common.SliceToBytes(s.Indices)
	if rem := len(b) % 4; rem != 0 {
		padded := make([]byte, len(b)+4-rem)
		copy(padded, b)
		return padded
	}
	return b
}

func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
