package tile

import "github.com/rcarmo/go-rdp-codec/internal/logging"

// Decompress8 decompresses 8-bit (indexed) Interleaved RLE data into
// dest, a rowDelta-stride scratch buffer. Reports the failure cause at
// debug level before collapsing to false.
func Decompress8(src, dest []byte, rowDelta int) bool {
	return logDecodeResult("8bpp", decompress(pixel8, src, dest, rowDelta))
}

// Decompress16 decompresses 16-bit (RGB565) Interleaved RLE data.
func Decompress16(src, dest []byte, rowDelta int) bool {
	return logDecodeResult("16bpp", decompress(pixel16, src, dest, rowDelta))
}

// Decompress15 decompresses 15-bit (RGB555) Interleaved RLE data. 15
// and 16 bit share the exact same RLE wire format: only the downstream
// format-conversion step treats the two bits differently.
func Decompress15(src, dest []byte, rowDelta int) bool {
	return logDecodeResult("15bpp", decompress(pixel16, src, dest, rowDelta))
}

// Decompress24 decompresses 24-bit (BGR) Interleaved RLE data.
func Decompress24(src, dest []byte, rowDelta int) bool {
	return logDecodeResult("24bpp", decompress(pixel24, src, dest, rowDelta))
}

func logDecodeResult(depth string, err error) bool {
	if err != nil {
		logging.Default().Debug("rle decompress (%s) failed: %v", depth, err)
		return false
	}
	return true
}
