package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompressPlanar_RawNoAlpha(t *testing.T) {
	const w, h = 2, 2
	planeSize := w * h
	src := []byte{PlanarFlagNoAlpha}
	src = append(src, make([]byte, planeSize)...) // R = 0
	r := make([]byte, planeSize)
	for i := range r {
		r[i] = 10
	}
	g := make([]byte, planeSize)
	for i := range g {
		g[i] = 20
	}
	b := make([]byte, planeSize)
	for i := range b {
		b[i] = 30
	}

	src = []byte{PlanarFlagNoAlpha}
	src = append(src, r...)
	src = append(src, g...)
	src = append(src, b...)

	rgba := DecompressPlanar(src, w, h)
	require.NotNil(t, rgba)
	assert.Equal(t, []byte{10, 20, 30, 255}, rgba[0:4])
}

func TestDecompressPlanar_TooShort(t *testing.T) {
	assert.Nil(t, DecompressPlanar(nil, 2, 2))
	assert.Nil(t, DecompressPlanar([]byte{PlanarFlagNoAlpha}, 2, 2))
}

func TestDecompressPlanar_InvalidDimensions(t *testing.T) {
	assert.Nil(t, DecompressPlanar([]byte{0}, 0, 2))
	assert.Nil(t, DecompressPlanar([]byte{0}, 2, -1))
}

func TestClampPlanarDelta(t *testing.T) {
	assert.Equal(t, byte(0), clampPlanarDelta(10, -20))
	assert.Equal(t, byte(255), clampPlanarDelta(250, 20))
	assert.Equal(t, byte(15), clampPlanarDelta(10, 5))
}
