package camera

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUFrameUniform is the GPU-aligned representation of the per-frame uniform buffer (group 0, binding 0).
// Size: 64 bytes.
type GPUFrameUniform struct {
	ViewProj [16]float32 // offset 0: combined view-projection matrix (mat4x4f)
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameUniform struct into a little-endian byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	return buf
}
