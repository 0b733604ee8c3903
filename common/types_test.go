package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImportedTexture_Decode(t *testing.T) {
	tex := &ImportedTexture{
		Name:   "moon",
		Source: "img/moon.png",
		Data:   encodePNG(t, 3, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255}),
	}

	staging, err := tex.Decode()
	require.NoError(t, err)

	assert.Equal(t, uint32(3), staging.Width)
	assert.Equal(t, uint32(2), staging.Height)
	assert.Equal(t, 3, tex.Width)
	assert.Equal(t, 2, tex.Height)
	require.Len(t, staging.Pixels, 3*2*4)
	assert.Equal(t, []byte{10, 20, 30, 255}, staging.Pixels[:4])
}

func TestImportedTexture_DecodeErrors(t *testing.T) {
	var nilTex *ImportedTexture
	_, err := nilTex.Decode()
	assert.Error(t, err)

	_, err = (&ImportedTexture{Source: "empty.jpg"}).Decode()
	assert.ErrorIs(t, err, ErrEmptyTexture)

	_, err = (&ImportedTexture{Source: "garbage.jpg", Data: []byte("not an image")}).Decode()
	assert.Error(t, err)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
	assert.Equal(t, float32(32), Coalesce(float32(0), 32.0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1000, Clamp(14, 1000, 10000))
	assert.Equal(t, 10000, Clamp(20000, 1000, 10000))
	assert.Equal(t, 5000, Clamp(5000, 1000, 10000))
}
