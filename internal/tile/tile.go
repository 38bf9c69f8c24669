package tile

import (
	"image"
	"image/color"
)

// FlipVertical flips a rowDelta-stride pixel buffer in place. RDP sends
// tile data bottom scanline first; callers that hand the result to
// image/color need it top-down.
func FlipVertical(data []byte, width, height, bytesPerPixel int) {
	if height <= 1 {
		return
	}

	rowDelta := width * bytesPerPixel
	if rowDelta <= 0 || len(data) < height*rowDelta {
		return
	}

	tmp := make([]byte, rowDelta)
	half := height / 2

	for i := 0; i < half; i++ {
		topLine := i * rowDelta
		bottomLine := (height - 1 - i) * rowDelta

		copy(tmp, data[topLine:topLine+rowDelta])
		copy(data[topLine:topLine+rowDelta], data[bottomLine:bottomLine+rowDelta])
		copy(data[bottomLine:bottomLine+rowDelta], tmp)
	}
}

// ToImage decompresses an Interleaved RLE tile of the given bpp and
// converts it to a top-down image.Image. width and height need only be
// positive: unlike the compressor, decompression has no multiple-of-4
// or tile-size ceiling (those constrain what an encoder may produce,
// not what a decoder must accept). palette is required (and used) only
// when bpp is 8.
func ToImage(src []byte, width, height, bpp int, palette color.Palette) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidParameters
	}

	bytesPerPixel := bpp / 8
	if bpp == 15 {
		bytesPerPixel = 2
	}
	if bytesPerPixel == 0 {
		return nil, ErrInvalidParameters
	}

	rowDelta := width * bytesPerPixel
	raw := make([]byte, rowDelta*height)

	var ok bool
	switch bpp {
	case 8:
		ok = Decompress8(src, raw, rowDelta)
	case 15:
		ok = Decompress15(src, raw, rowDelta)
	case 16:
		ok = Decompress16(src, raw, rowDelta)
	case 24:
		ok = Decompress24(src, raw, rowDelta)
	default:
		return nil, ErrInvalidParameters
	}
	if !ok {
		return nil, ErrTruncatedInput
	}

	FlipVertical(raw, width, height, bytesPerPixel)

	switch bpp {
	case 8:
		return paletted(raw, width, height, palette), nil
	case 15:
		return rgb555ToNRGBA(raw, width, height), nil
	case 16:
		return rgb565ToNRGBA(raw, width, height), nil
	case 24:
		return bgrToNRGBA(raw, width, height), nil
	default:
		return nil, ErrInvalidParameters
	}
}

func paletted(raw []byte, width, height int, palette color.Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, width, height), palette)
	copy(img.Pix, raw)
	return img
}

func rgb565ToNRGBA(raw []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i+1 < len(raw); i += 2 {
		pel := uint16(raw[i]) | uint16(raw[i+1])<<8
		r := (pel & 0xF800) >> 11
		g := (pel & 0x07E0) >> 5
		b := pel & 0x001F

		r = (r << 3) | (r >> 2)
		g = (g << 2) | (g >> 4)
		b = (b << 3) | (b >> 2)

		off := (i / 2) * 4
		img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3] = byte(r), byte(g), byte(b), 255
	}
	return img
}

func rgb555ToNRGBA(raw []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i+1 < len(raw); i += 2 {
		pel := uint16(raw[i]) | uint16(raw[i+1])<<8
		r := (pel & 0x7C00) >> 10
		g := (pel & 0x03E0) >> 5
		b := pel & 0x001F

		r = (r << 3) | (r >> 2)
		g = (g << 3) | (g >> 2)
		b = (b << 3) | (b >> 2)

		off := (i / 2) * 4
		img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3] = byte(r), byte(g), byte(b), 255
	}
	return img
}

func bgrToNRGBA(raw []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i+2 < len(raw); i += 3 {
		off := (i / 3) * 4
		img.Pix[off] = raw[i+2]   // R
		img.Pix[off+1] = raw[i+1] // G
		img.Pix[off+2] = raw[i]   // B
		img.Pix[off+3] = 255
	}
	return img
}
