package tile

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlipVertical(t *testing.T) {
	data := []byte{1, 2, 3, 4} // two 2-byte-wide rows
	FlipVertical(data, 2, 2, 1)
	assert.Equal(t, []byte{3, 4, 1, 2}, data)
}

func TestFlipVertical_SingleRowNoOp(t *testing.T) {
	data := []byte{9}
	FlipVertical(data, 1, 1, 1)
	assert.Equal(t, []byte{9}, data)
}

func TestToImage_8bppUsesPalette(t *testing.T) {
	palette := make(color.Palette, 256)
	for i := range palette {
		palette[i] = color.RGBA{A: 255}
	}
	palette[1] = color.RGBA{R: 200, A: 255}

	src := []byte{
		SpecialBlack, SpecialWhite, SpecialBlack, SpecialWhite,
		SpecialBlack, SpecialWhite, SpecialBlack, SpecialWhite,
	}
	img, err := ToImage(src, 4, 2, 8, palette)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestToImage_InvalidDimensions(t *testing.T) {
	_, err := ToImage(nil, 0, 2, 8, nil)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, err = ToImage(nil, 4, 0, 8, nil)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestToImage_OddDimensionsAccepted(t *testing.T) {
	// Neither width%4 nor height%2 is a decode-side requirement: only
	// the compressor is bound to tile-size/multiple-of-4 constraints.
	src := []byte{
		SpecialWhite, SpecialWhite, SpecialWhite,
		SpecialWhite, SpecialWhite, SpecialWhite,
	}
	img, err := ToImage(src, 3, 2, 8, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestToImage_16bppRGB565(t *testing.T) {
	src := []byte{SpecialWhite, SpecialWhite, SpecialWhite, SpecialWhite, SpecialWhite, SpecialWhite, SpecialWhite, SpecialWhite}
	img, err := ToImage(src, 4, 2, 16, nil)
	require.NoError(t, err)
	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0xFFFF), g)
	assert.Equal(t, uint32(0xFFFF), b)
	assert.Equal(t, uint32(0xFFFF), a)
}
