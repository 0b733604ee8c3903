package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (WebGPU convention).
// Result: out = a * b. out may alias a or b.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix with a finite far plane,
// mapping view depth into the WebGPU clip space range [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Translate post-multiplies m by a translation matrix: m = m * T(x, y, z).
//
// Parameters:
//   - m: the matrix to modify in place (16 elements, column-major)
//   - x, y, z: the translation
func Translate(m []float32, x, y, z float32) {
	for row := 0; row < 4; row++ {
		m[12+row] += m[row]*x + m[4+row]*y + m[8+row]*z
	}
}

// RotateX post-multiplies m by a rotation about the X axis: m = m * Rx(angle).
//
// Parameters:
//   - m: the matrix to modify in place (16 elements, column-major)
//   - angle: rotation in radians
func RotateX(m []float32, angle float32) {
	s, c := math32.Sincos(angle)
	r := [16]float32{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
	Mul4(m, m, r[:])
}

// RotateY post-multiplies m by a rotation about the Y axis: m = m * Ry(angle).
//
// Parameters:
//   - m: the matrix to modify in place (16 elements, column-major)
//   - angle: rotation in radians
func RotateY(m []float32, angle float32) {
	s, c := math32.Sincos(angle)
	r := [16]float32{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
	Mul4(m, m, r[:])
}

// RotateZ post-multiplies m by a rotation about the Z axis: m = m * Rz(angle).
//
// Parameters:
//   - m: the matrix to modify in place (16 elements, column-major)
//   - angle: rotation in radians
func RotateZ(m []float32, angle float32) {
	s, c := math32.Sincos(angle)
	r := [16]float32{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	Mul4(m, m, r[:])
}

// TransformPoint multiplies the point (x, y, z, 1) by m and returns the resulting xyz.
// The w component is not divided out.
func TransformPoint(m []float32, x, y, z float32) (float32, float32, float32) {
	return m[0]*x + m[4]*y + m[8]*z + m[12],
		m[1]*x + m[5]*y + m[9]*z + m[13],
		m[2]*x + m[6]*y + m[10]*z + m[14]
}
