package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPalette(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries:\n  - \"255,0,0\"\n  - \"0,255,0\"\n  - \"0,0,255\"\n"), 0o600))

	palette, err := LoadPalette(path)
	require.NoError(t, err)
	assert.Len(t, palette, 256)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, palette[0])
	assert.Equal(t, color.RGBA{G: 255, A: 255}, palette[1])
	assert.Equal(t, color.RGBA{B: 255, A: 255}, palette[2])
	assert.Equal(t, color.RGBA{A: 255}, palette[3])
}

func TestLoadPaletteTooManyEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.yaml")

	content := "entries:\n"
	for i := 0; i < 257; i++ {
		content += "  - \"0,0,0\"\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := LoadPalette(path)
	assert.Error(t, err)
}

func TestLoadPaletteMissingFile(t *testing.T) {
	_, err := LoadPalette("/nonexistent/palette.yaml")
	assert.Error(t, err)
}
