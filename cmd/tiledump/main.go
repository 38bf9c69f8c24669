// Command tiledump decodes a single captured bitmap tile and writes it
// out as a PNG, for inspecting what a codec actually produced.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/rcarmo/go-rdp-codec/internal/codec"
	"github.com/rcarmo/go-rdp-codec/internal/config"
	"github.com/rcarmo/go-rdp-codec/internal/logging"
	"github.com/rcarmo/go-rdp-codec/internal/tile"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "tiledump:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("tiledump", flag.ContinueOnError)
	in := fs.String("in", "", "path to the raw compressed tile (required)")
	out := fs.String("out", "out.png", "path to write the decoded PNG to")
	width := fs.Int("width", 64, "tile width in pixels")
	height := fs.Int("height", 64, "tile height in pixels")
	bpp := fs.Int("bpp", 16, "pixel depth: 8, 15, 16 or 24 (Interleaved RLE), or any other when -codec is set")
	codecName := fs.String("codec", "rle", "codec the tile was compressed with: rle, nscodec, planar")
	logLevel := fs.String("log-level", "", "override the configured log level")
	paletteFile := fs.String("palette", "", "override the configured 8bpp palette file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("-in is required")
	}

	cfg, err := config.LoadWithOverrides(config.LoadOptions{LogLevel: *logLevel, PaletteFile: *paletteFile})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logging.SetLevelFromString(cfg.Logging.Level)

	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read tile: %w", err)
	}

	img, err := decodeTile(data, *width, *height, *bpp, *codecName, cfg)
	if err != nil {
		return fmt.Errorf("decode tile: %w", err)
	}

	outFile, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer outFile.Close()

	if err := png.Encode(outFile, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	logging.Info("wrote %s (%dx%d, codec=%s)", *out, *width, *height, *codecName)
	return nil
}

func decodeTile(data []byte, width, height, bpp int, codecName string, cfg *config.Config) (image.Image, error) {
	switch codecName {
	case "rle":
		var palette color.Palette
		if bpp == 8 && cfg.Tile.PaletteFile != "" {
			p, err := config.LoadPalette(cfg.Tile.PaletteFile)
			if err != nil {
				return nil, err
			}
			palette = p
		}
		return tile.ToImage(data, width, height, bpp, palette)

	case "nscodec", "planar":
		reg := codec.NewRegistry()
		reg.Register(0, codecFor(codecName))
		rgba, err := reg.Decode(0, data, width, height)
		if err != nil {
			return nil, err
		}
		return rgbaToImage(rgba, width, height), nil

	default:
		return nil, fmt.Errorf("unknown codec %q", codecName)
	}
}

func codecFor(name string) codec.Codec {
	if name == "planar" {
		return codec.Planar{}
	}
	return codec.NSCodec{}
}

func rgbaToImage(rgba []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, rgba)
	return img
}
