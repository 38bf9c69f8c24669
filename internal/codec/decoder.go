// Package codec holds the bitmap codecs a tile can be negotiated to
// beyond Interleaved RLE (internal/tile), and a Registry dispatching a
// decode to whichever one a SetSurfaceBitsCommand.CodecID names.
//
// NSCodec (this file) compresses 24/32bpp images using AYCoCg color
// space conversion, RLE-compressed planes, and optional chroma
// subsampling, as specified in MS-RDPNSC.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rcarmo/go-rdp-codec/internal/logging"
)

var (
	ErrInvalidStream     = errors.New("nscodec: stream shorter than its own header")
	ErrInvalidPlaneSize  = errors.New("nscodec: plane byte count overruns the stream")
	ErrInvalidColorLoss  = errors.New("nscodec: color loss level out of range 1-7")
	ErrDecompressionFail = errors.New("nscodec: RLE segment truncated")
)

// nsHeaderSize is the fixed NSCODEC_BITMAP_STREAM header: four plane
// byte counts, color loss level, chroma subsampling level, 2 reserved.
const nsHeaderSize = 20

// BitmapStream is a parsed NSCODEC_BITMAP_STREAM (MS-RDPNSC 2.2.1):
// a fixed header followed by up to four variable-length planes in
// luma, orange-chroma, green-chroma, alpha order. Its codec GUID
// (CA8D1BB9-000F-154F-589F-AE2D1A87E2D6) is pdu.NSCodecGUID.
type BitmapStream struct {
	LumaPlaneByteCount         uint32
	OrangeChromaPlaneByteCount uint32
	GreenChromaPlaneByteCount  uint32
	AlphaPlaneByteCount        uint32
	ColorLossLevel             uint8
	ChromaSubsamplingLevel     uint8
	LumaPlane                  []byte
	OrangeChromaPlane          []byte
	GreenChromaPlane           []byte
	AlphaPlane                 []byte
}

// nsPlaneSlot binds one of the four plane slices to the byte count
// that governs how much of the stream it consumes, so ParseBitmapStream
// can walk all four with one loop instead of four copy-pasted blocks.
type nsPlaneSlot struct {
	name      string
	byteCount uint32
	dst       *[]byte
}

// ParseBitmapStream reads an NSCODEC_BITMAP_STREAM out of data,
// slicing its planes from data rather than copying them.
func ParseBitmapStream(data []byte) (*BitmapStream, error) {
	if len(data) < nsHeaderSize {
		return nil, ErrInvalidStream
	}

	s := &BitmapStream{
		LumaPlaneByteCount:         binary.LittleEndian.Uint32(data[0:4]),
		OrangeChromaPlaneByteCount: binary.LittleEndian.Uint32(data[4:8]),
		GreenChromaPlaneByteCount:  binary.LittleEndian.Uint32(data[8:12]),
		AlphaPlaneByteCount:        binary.LittleEndian.Uint32(data[12:16]),
		ColorLossLevel:             data[16],
		ChromaSubsamplingLevel:     data[17],
		// data[18:20] reserved
	}

	if s.ColorLossLevel < 1 || s.ColorLossLevel > 7 {
		return nil, ErrInvalidColorLoss
	}

	slots := [...]nsPlaneSlot{
		{"luma", s.LumaPlaneByteCount, &s.LumaPlane},
		{"orange chroma", s.OrangeChromaPlaneByteCount, &s.OrangeChromaPlane},
		{"green chroma", s.GreenChromaPlaneByteCount, &s.GreenChromaPlane},
		{"alpha", s.AlphaPlaneByteCount, &s.AlphaPlane},
	}

	offset := uint32(nsHeaderSize)
	total := uint32(len(data)) // #nosec G115
	for _, slot := range slots {
		if slot.byteCount == 0 {
			continue
		}
		if total < offset+slot.byteCount {
			logging.Default().Debug("nscodec: %s plane wants %d bytes, only %d remain", slot.name, slot.byteCount, total-offset)
			return nil, ErrInvalidPlaneSize
		}
		*slot.dst = data[offset : offset+slot.byteCount]
		offset += slot.byteCount
	}

	return s, nil
}

// Decode parses and decodes an NSCodec bitmap stream to RGBA pixels in
// one call.
func Decode(data []byte, width, height int) ([]byte, error) {
	stream, err := ParseBitmapStream(data)
	if err != nil {
		return nil, err
	}
	return stream.Decode(width, height)
}

// Decode reconstructs RGBA pixels (4 bytes per pixel, top-down) from an
// already-parsed stream.
func (s *BitmapStream) Decode(width, height int) ([]byte, error) {
	subsampled := s.ChromaSubsamplingLevel != 0

	lumaWidth, lumaHeight := width, height
	chromaWidth, chromaHeight := width, height
	if subsampled {
		lumaWidth = roundUpToMultiple(width, 8)
		chromaWidth = lumaWidth / 2
		chromaHeight = roundUpToMultiple(height, 2) / 2
	}

	luma, err := decompressPlane(s.LumaPlane, lumaWidth*lumaHeight)
	if err != nil {
		return nil, fmt.Errorf("luma plane: %w", err)
	}
	orange, err := decompressPlane(s.OrangeChromaPlane, chromaWidth*chromaHeight)
	if err != nil {
		return nil, fmt.Errorf("orange chroma plane: %w", err)
	}
	green, err := decompressPlane(s.GreenChromaPlane, chromaWidth*chromaHeight)
	if err != nil {
		return nil, fmt.Errorf("green chroma plane: %w", err)
	}

	var alpha []byte
	if s.AlphaPlaneByteCount > 0 {
		alpha, err = decompressPlane(s.AlphaPlane, width*height)
		if err != nil {
			return nil, fmt.Errorf("alpha plane: %w", err)
		}
	}

	if subsampled {
		orange = chromaSuperSample(orange, chromaWidth, chromaHeight, lumaWidth, lumaHeight)
		green = chromaSuperSample(green, chromaWidth, chromaHeight, lumaWidth, lumaHeight)
	}

	if s.ColorLossLevel > 1 {
		orange = restoreColorLoss(orange, s.ColorLossLevel)
		green = restoreColorLoss(green, s.ColorLossLevel)
	}

	return aycoCgToRGBA(luma, orange, green, alpha, lumaWidth, lumaHeight, width, height)
}

// decompressPlane returns data as-is if it is already exactly
// expectedSize (the stream carried it raw), otherwise RLE-decompresses
// it. A plane longer than expected is always malformed: RLE output
// never exceeds what it was asked to produce.
func decompressPlane(data []byte, expectedSize int) ([]byte, error) {
	switch {
	case len(data) == expectedSize:
		return data, nil
	case len(data) > expectedSize:
		return nil, ErrInvalidPlaneSize
	default:
		return rleDecompress(data, expectedSize)
	}
}

// rleDecompress decodes an NSCodec RLE plane: a sequence of run/literal
// segments followed by a trailing 4-byte EndData that is appended
// verbatim (MS-RDPNSC 2.2.2.1). A segment header's high bit selects
// run (repeat one byte) vs. literal (copy bytes); a zero-valued
// in-header length means "read one more byte, add 128".
func rleDecompress(data []byte, expectedSize int) ([]byte, error) {
	if len(data) < 4 {
		return nil, ErrDecompressionFail
	}

	out := make([]byte, 0, expectedSize)
	segments := data[:len(data)-4]
	endData := data[len(data)-4:]

	idx := 0
	for idx < len(segments) && len(out) < expectedSize-4 {
		header := segments[idx]
		idx++

		if header&0x80 != 0 {
			runLen := int(header & 0x7F)
			if runLen == 0 {
				if idx >= len(segments) {
					return nil, ErrDecompressionFail
				}
				runLen = int(segments[idx]) + 128
				idx++
			}
			if idx >= len(segments) {
				return nil, ErrDecompressionFail
			}
			runValue := segments[idx]
			idx++
			for i := 0; i < runLen && len(out) < expectedSize-4; i++ {
				out = append(out, runValue)
			}
			continue
		}

		litLen := int(header)
		if litLen == 0 {
			if idx >= len(segments) {
				return nil, ErrDecompressionFail
			}
			litLen = int(segments[idx]) + 128
			idx++
		}
		if idx+litLen > len(segments) {
			return nil, ErrDecompressionFail
		}
		out = append(out, segments[idx:idx+litLen]...)
		idx += litLen
	}

	for _, b := range endData {
		if len(out) < expectedSize {
			out = append(out, b)
		}
	}
	for len(out) < expectedSize {
		out = append(out, 0)
	}

	return out[:expectedSize], nil
}

// chromaSuperSample upsamples a 4:2:0-subsampled chroma plane to the
// luma plane's resolution by nearest-neighbor replication.
func chromaSuperSample(plane []byte, srcW, srcH, dstW, dstH int) []byte {
	out := make([]byte, dstW*dstH)
	for y := 0; y < dstH; y++ {
		srcY := y / 2
		if srcY >= srcH {
			srcY = srcH - 1
		}
		for x := 0; x < dstW; x++ {
			srcX := x / 2
			if srcX >= srcW {
				srcX = srcW - 1
			}
			if i := srcY*srcW + srcX; i < len(plane) {
				out[y*dstW+x] = plane[i]
			}
		}
	}
	return out
}

// restoreColorLoss undoes the right-shift a color loss level above 1
// applies to chroma planes during compression.
func restoreColorLoss(plane []byte, level uint8) []byte {
	if level <= 1 {
		return plane
	}
	shift := level - 1
	out := make([]byte, len(plane))
	for i, v := range plane {
		out[i] = byte(clamp(int(v) << shift))
	}
	return out
}

// aycoCgToRGBA reconstructs RGBA from AYCoCg (Y = luma, Co = orange
// chroma, Cg = green chroma, A = alpha), per MS-RDPNSC 3.1.9.1.3.
// The chroma planes arrive centered on 128; luma does not.
func aycoCgToRGBA(luma, co, cg, alpha []byte, planeWidth, planeHeight, width, height int) ([]byte, error) {
	rgba := make([]byte, width*height*4)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			planeIdx := y*planeWidth + x
			if planeIdx >= len(luma) || planeIdx >= len(co) || planeIdx >= len(cg) {
				continue
			}

			yVal := int(luma[planeIdx])
			coVal := int(co[planeIdx]) - 128
			cgVal := int(cg[planeIdx]) - 128

			t := yVal - cgVal
			rgbaIdx := (y*width + x) * 4
			rgba[rgbaIdx+0] = byte(clamp(t + coVal))
			rgba[rgbaIdx+1] = byte(clamp(yVal + cgVal))
			rgba[rgbaIdx+2] = byte(clamp(t - coVal))
			if alpha != nil && planeIdx < len(alpha) {
				rgba[rgbaIdx+3] = alpha[planeIdx]
			} else {
				rgba[rgbaIdx+3] = 255
			}
		}
	}

	return rgba, nil
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// roundUpToMultiple rounds n up to the nearest multiple of m. An m of
// zero returns n unchanged.
func roundUpToMultiple(n, m int) int {
	if m == 0 {
		return n
	}
	if r := n % m; r != 0 {
		return n + m - r
	}
	return n
}
