package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// paletteFile is the on-disk shape of a TILE_PALETTE_FILE: a flat list
// of up to 256 "r,g,b" byte triples, index 0 first.
type paletteFile struct {
	Entries []string `yaml:"entries"`
}

// LoadPalette reads the 256-entry color palette an 8bpp tile indexes
// into from a YAML file. A tile using fewer than 256 colors may supply
// fewer entries; the remainder of the returned palette is black.
func LoadPalette(path string) (color.Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette file: %w", err)
	}

	var pf paletteFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse palette file: %w", err)
	}
	if len(pf.Entries) > 256 {
		return nil, fmt.Errorf("palette file has %d entries, max 256", len(pf.Entries))
	}

	palette := make(color.Palette, 256)
	for i := range palette {
		palette[i] = color.RGBA{A: 255}
	}

	for i, entry := range pf.Entries {
		var r, g, b uint8
		if _, err := fmt.Sscanf(entry, "%d,%d,%d", &r, &g, &b); err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}
		palette[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}

	return palette, nil
}
