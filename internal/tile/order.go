package tile

// Package tile implements the Interleaved RLE bitmap codec core, as
// specified in MS-RDPBCGR 2.2.9.1.1.3.1.2.4: the order parser, the
// decoder engine, and the three pixel-width specializations (8, 15/16,
// 24 bit) that rebuild a scanline-addressed tile from a compact
// tagged-order bytecode.

// Order codes (the header byte's "code", after classification below).
const (
	RegularBgRun         = 0x00
	RegularFgRun         = 0x01
	RegularFgBgImage     = 0x02
	RegularColorRun      = 0x03
	RegularColorImage    = 0x04
	LiteSetFgFgRun       = 0x0C
	LiteSetFgFgBgImage   = 0x0D
	LiteDitheredRun      = 0x0E
	MegaMegaBgRun        = 0xF0
	MegaMegaFgRun        = 0xF1
	MegaMegaFgBgImage    = 0xF2
	MegaMegaColorRun     = 0xF3
	MegaMegaColorImage   = 0xF4
	MegaMegaSetFgRun     = 0xF6
	MegaMegaSetFgBgImage = 0xF7
	MegaMegaDitheredRun  = 0xF8
	SpecialFgBg1         = 0xF9
	SpecialFgBg2         = 0xFA
	SpecialWhite         = 0xFD
	SpecialBlack         = 0xFE
)

const (
	maskRegularRunLength = 0x1F
	maskLiteRunLength    = 0x0F
	// SpecialFgBg1Mask and SpecialFgBg2Mask are the fixed per-8-pixel
	// bitmap bytes the two SPECIAL_FGBG_* orders imply.
	SpecialFgBg1Mask = 0x03
	SpecialFgBg2Mask = 0x05
)

// extractCodeID classifies a header byte into its order code: REGULAR
// (top two bits not both set), MEGA/SPECIAL (top four bits all set),
// else LITE.
func extractCodeID(h byte) uint {
	if h&0xC0 != 0xC0 {
		return uint(h >> 5)
	}
	if h&0xF0 == 0xF0 {
		return uint(h)
	}
	return uint(h >> 4)
}

func isRegularCode(code uint) bool {
	switch code {
	case RegularBgRun, RegularFgRun, RegularFgBgImage, RegularColorRun, RegularColorImage:
		return true
	}
	return false
}

func isLiteCode(code uint) bool {
	switch code {
	case LiteSetFgFgRun, LiteSetFgFgBgImage, LiteDitheredRun:
		return true
	}
	return false
}

func isMegaMegaCode(code uint) bool {
	switch code {
	case MegaMegaBgRun, MegaMegaFgRun, MegaMegaFgBgImage, MegaMegaColorRun,
		MegaMegaColorImage, MegaMegaSetFgRun, MegaMegaSetFgBgImage, MegaMegaDitheredRun:
		return true
	}
	return false
}

func isSpecialCode(code uint) bool {
	switch code {
	case SpecialFgBg1, SpecialFgBg2, SpecialWhite, SpecialBlack:
		return true
	}
	return false
}

// isKnownCode reports whether code maps to a defined order at all; an
// unmapped code is ErrUnrecognizedOrder.
func isKnownCode(code uint) bool {
	return isRegularCode(code) || isLiteCode(code) || isMegaMegaCode(code) || isSpecialCode(code)
}

// extractRunLength reads the run-length for code out of src starting at
// idx (idx points at the header byte already consumed by the caller's
// classification: the header's low bits carry the in-line run length
// for REGULAR/LITE codes, so idx is re-read here). It returns the
// number of pixels the order produces and the index of the first byte
// past the header+extension. A required extension byte missing from
// src is ErrTruncatedInput.
//
// The run-length policy, bit-exact:
//
//	REGULAR bg/fg/color-run, REGULAR color-image: low 5 bits, 0 -> next byte +32
//	REGULAR fg/bg image:                          low 5 bits, 0 -> (next byte +1) * 8
//	LITE set-fg-fg-run, LITE dithered-run:        low 4 bits, 0 -> next byte +16
//	LITE set-fg fg/bg image:                      low 4 bits, 0 -> (next byte +1) * 8
//	MEGA_MEGA (all variants):                     next two bytes LE, verbatim
func extractRunLength(code uint, src []byte, idx int) (length int, nextIdx int, err error) {
	header := src[idx]

	switch {
	case code == RegularFgBgImage || code == LiteSetFgFgBgImage:
		var mask byte
		if code == RegularFgBgImage {
			mask = maskRegularRunLength
		} else {
			mask = maskLiteRunLength
		}
		length = int(header & mask)
		if length != 0 {
			return length * 8, idx + 1, nil
		}
		if idx+1 >= len(src) {
			return 0, 0, ErrTruncatedInput
		}
		return (int(src[idx+1]) + 1) * 8, idx + 2, nil

	case isRegularCode(code):
		length = int(header & maskRegularRunLength)
		if length != 0 {
			return length, idx + 1, nil
		}
		if idx+1 >= len(src) {
			return 0, 0, ErrTruncatedInput
		}
		return int(src[idx+1]) + 32, idx + 2, nil

	case isLiteCode(code):
		length = int(header & maskLiteRunLength)
		if length != 0 {
			return length, idx + 1, nil
		}
		if idx+1 >= len(src) {
			return 0, 0, ErrTruncatedInput
		}
		return int(src[idx+1]) + 16, idx + 2, nil

	case isMegaMegaCode(code):
		// Two extension bytes at idx+1, idx+2: require both present.
		if idx+2 >= len(src) {
			return 0, 0, ErrTruncatedInput
		}
		length = int(src[idx+1]) | int(src[idx+2])<<8
		return length, idx + 3, nil
	}

	return 0, 0, ErrUnrecognizedOrder
}

// fgBgBitmasks is the per-bit selector table for foreground/background
// image orders: bit i (LSB-first) of a bitmap byte selects foreground
// when (bitmask & fgBgBitmasks[i]) != 0.
var fgBgBitmasks = [8]byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80}
