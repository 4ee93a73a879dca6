package dataurl

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	src.SetNRGBA(7, 3, color.NRGBA{B: 255, A: 128})

	url, err := Encode(src)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	decoded, err := Decode(url)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), decoded.Bounds())

	r, _, _, a := decoded.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
}

func TestEncodeIsDeterministic(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), A: 255})
		}
	}

	a, err := Encode(src)
	require.NoError(t, err)
	b, err := Encode(src)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("hello")
	assert.Error(t, err)

	_, err = Decode("data:image/png;base64,!!!notbase64!!!")
	assert.Error(t, err)

	_, err = Decode("data:image/png;base64,aGVsbG8=")
	assert.Error(t, err)
}

func TestIsDataURL(t *testing.T) {
	assert.True(t, IsDataURL("data:image/png;base64,AAAA"))
	assert.True(t, IsDataURL("data:image/jpeg;base64,AAAA"))
	assert.False(t, IsDataURL("/tmp/photo.png"))
}
