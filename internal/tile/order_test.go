package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCodeID(t *testing.T) {
	tests := []struct {
		name string
		hdr  byte
		want uint
	}{
		{"regular bg run", 0x00, RegularBgRun},
		{"regular color run with length", 0x63, RegularColorRun}, // 011 00011
		{"lite set-fg fg run", 0xC3, LiteSetFgFgRun},
		{"mega mega color run", 0xF3, MegaMegaColorRun},
		{"special white", 0xFD, SpecialWhite},
		{"special black", 0xFE, SpecialBlack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCodeID(tt.hdr))
		})
	}
}

func TestIsKnownCode(t *testing.T) {
	assert.True(t, isKnownCode(RegularColorRun))
	assert.True(t, isKnownCode(LiteDitheredRun))
	assert.True(t, isKnownCode(MegaMegaSetFgBgImage))
	assert.True(t, isKnownCode(SpecialFgBg2))
	assert.False(t, isKnownCode(0x05)) // unmapped regular-family code
	assert.False(t, isKnownCode(0xFB))
}

func TestExtractRunLength_RegularInline(t *testing.T) {
	n, next, err := extractRunLength(RegularColorRun, []byte{0x03 | (RegularColorRun << 5), 0xAA}, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, next)
}

func TestExtractRunLength_RegularExtension(t *testing.T) {
	src := []byte{byte(RegularColorRun << 5), 10} // low 5 bits zero -> extension
	n, next, err := extractRunLength(RegularColorRun, src, 0)
	require.NoError(t, err)
	assert.Equal(t, 10+32, n)
	assert.Equal(t, 2, next)
}

func TestExtractRunLength_RegularExtensionTruncated(t *testing.T) {
	src := []byte{byte(RegularColorRun << 5)}
	_, _, err := extractRunLength(RegularColorRun, src, 0)
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestExtractRunLength_FgBgImageInline(t *testing.T) {
	src := []byte{byte(RegularFgBgImage<<5) | 0x02}
	n, next, err := extractRunLength(RegularFgBgImage, src, 0)
	require.NoError(t, err)
	assert.Equal(t, 16, n) // 2 * 8
	assert.Equal(t, 1, next)
}

func TestExtractRunLength_FgBgImageExtension(t *testing.T) {
	src := []byte{byte(RegularFgBgImage << 5), 3}
	n, next, err := extractRunLength(RegularFgBgImage, src, 0)
	require.NoError(t, err)
	assert.Equal(t, (3+1)*8, n)
	assert.Equal(t, 2, next)
}

func TestExtractRunLength_LiteInline(t *testing.T) {
	src := []byte{0xC0 | 0x05}
	n, next, err := extractRunLength(LiteSetFgFgRun, src, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 1, next)
}

func TestExtractRunLength_LiteExtension(t *testing.T) {
	src := []byte{0xC0, 7}
	n, next, err := extractRunLength(LiteSetFgFgRun, src, 0)
	require.NoError(t, err)
	assert.Equal(t, 7+16, n)
	assert.Equal(t, 2, next)
}

func TestExtractRunLength_MegaMega(t *testing.T) {
	src := []byte{MegaMegaColorRun, 0x34, 0x12}
	n, next, err := extractRunLength(MegaMegaColorRun, src, 0)
	require.NoError(t, err)
	assert.Equal(t, 0x1234, n)
	assert.Equal(t, 3, next)
}

func TestExtractRunLength_MegaMegaTruncated(t *testing.T) {
	src := []byte{MegaMegaColorRun, 0x34}
	_, _, err := extractRunLength(MegaMegaColorRun, src, 0)
	assert.ErrorIs(t, err, ErrTruncatedInput)
}
