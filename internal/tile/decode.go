package tile

// decompress drives the order parser in a loop, writing pixels into
// dest (a scanline-addressed scratch buffer, rowDelta bytes per line)
// until dest is completely full. It is the single generic decoder
// engine behind Decompress8/Decompress16/Decompress24: pf supplies the
// pixel-width-specific load/store, stride, and white constant, and
// everything else is identical across widths.
//
// Any truncated read, unrecognized order, or write that would cross
// dest's bound aborts the whole decode; the partial contents of dest
// are unspecified on failure.
func decompress[T uint8 | uint16 | uint32](pf pixelFormat[T], src []byte, dest []byte, rowDelta int) error {
	bpp := pf.bytesPerPixel
	srcIdx, destIdx := 0, 0
	fg := pf.white
	lastWasFgRun := false

	for destIdx < len(dest) {
		if srcIdx >= len(src) {
			return ErrTruncatedInput
		}

		code := extractCodeID(src[srcIdx])
		if !isKnownCode(code) {
			return ErrUnrecognizedOrder
		}

		switch {
		case code == RegularBgRun || code == MegaMegaBgRun:
			n, next, err := extractRunLength(code, src, srcIdx)
			if err != nil {
				return err
			}
			srcIdx = next

			if destIdx+n*bpp > len(dest) {
				return ErrDestinationOverrun
			}
			for i := 0; i < n; i++ {
				if destIdx < rowDelta {
					if lastWasFgRun {
						pf.write(dest, destIdx, fg)
					} else {
						pf.write(dest, destIdx, 0)
					}
				} else {
					pf.write(dest, destIdx, pf.read(dest, destIdx-rowDelta))
				}
				destIdx += bpp
			}
			lastWasFgRun = false

		case code == RegularFgRun || code == MegaMegaFgRun ||
			code == LiteSetFgFgRun || code == MegaMegaSetFgRun:
			n, next, err := extractRunLength(code, src, srcIdx)
			if err != nil {
				return err
			}
			srcIdx = next

			if code == LiteSetFgFgRun || code == MegaMegaSetFgRun {
				if srcIdx+bpp > len(src) {
					return ErrTruncatedInput
				}
				fg = pf.read(src, srcIdx)
				srcIdx += bpp
			}

			if destIdx+n*bpp > len(dest) {
				return ErrDestinationOverrun
			}
			for i := 0; i < n; i++ {
				if destIdx < rowDelta {
					pf.write(dest, destIdx, fg)
				} else {
					prev := pf.read(dest, destIdx-rowDelta)
					pf.write(dest, destIdx, prev^fg)
				}
				destIdx += bpp
			}
			lastWasFgRun = true

		case code == LiteDitheredRun || code == MegaMegaDitheredRun:
			n, next, err := extractRunLength(code, src, srcIdx)
			if err != nil {
				return err
			}
			srcIdx = next

			if srcIdx+2*bpp > len(src) {
				return ErrTruncatedInput
			}
			p1 := pf.read(src, srcIdx)
			p2 := pf.read(src, srcIdx+bpp)
			srcIdx += 2 * bpp

			if destIdx+n*2*bpp > len(dest) {
				return ErrDestinationOverrun
			}
			for i := 0; i < n; i++ {
				pf.write(dest, destIdx, p1)
				pf.write(dest, destIdx+bpp, p2)
				destIdx += 2 * bpp
			}
			lastWasFgRun = false

		case code == RegularColorRun || code == MegaMegaColorRun:
			n, next, err := extractRunLength(code, src, srcIdx)
			if err != nil {
				return err
			}
			srcIdx = next

			if srcIdx+bpp > len(src) {
				return ErrTruncatedInput
			}
			p := pf.read(src, srcIdx)
			srcIdx += bpp

			if destIdx+n*bpp > len(dest) {
				return ErrDestinationOverrun
			}
			for i := 0; i < n; i++ {
				pf.write(dest, destIdx, p)
				destIdx += bpp
			}
			lastWasFgRun = false

		case code == RegularColorImage || code == MegaMegaColorImage:
			n, next, err := extractRunLength(code, src, srcIdx)
			if err != nil {
				return err
			}
			srcIdx = next

			if srcIdx+n*bpp > len(src) {
				return ErrTruncatedInput
			}
			if destIdx+n*bpp > len(dest) {
				return ErrDestinationOverrun
			}
			for i := 0; i < n; i++ {
				pf.write(dest, destIdx, pf.read(src, srcIdx))
				srcIdx += bpp
				destIdx += bpp
			}
			lastWasFgRun = false

		case code == RegularFgBgImage || code == MegaMegaFgBgImage ||
			code == LiteSetFgFgBgImage || code == MegaMegaSetFgBgImage:
			n, next, err := extractRunLength(code, src, srcIdx)
			if err != nil {
				return err
			}
			srcIdx = next

			if code == LiteSetFgFgBgImage || code == MegaMegaSetFgBgImage {
				if srcIdx+bpp > len(src) {
					return ErrTruncatedInput
				}
				fg = pf.read(src, srcIdx)
				srcIdx += bpp
			}

			if destIdx+n*bpp > len(dest) {
				return ErrDestinationOverrun
			}
			remaining := n
			for remaining > 0 {
				if srcIdx >= len(src) {
					return ErrTruncatedInput
				}
				bitmask := src[srcIdx]
				srcIdx++

				cBits := 8
				if remaining < 8 {
					cBits = remaining
				}
				destIdx = writeFgBgGroup(pf, dest, destIdx, rowDelta, bitmask, fg, cBits)
				remaining -= cBits
			}
			lastWasFgRun = false

		case code == SpecialFgBg1 || code == SpecialFgBg2:
			mask := byte(SpecialFgBg1Mask)
			if code == SpecialFgBg2 {
				mask = SpecialFgBg2Mask
			}
			if destIdx+8*bpp > len(dest) {
				return ErrDestinationOverrun
			}
			destIdx = writeFgBgGroup(pf, dest, destIdx, rowDelta, mask, fg, 8)
			srcIdx++
			lastWasFgRun = false

		case code == SpecialWhite:
			if destIdx+bpp > len(dest) {
				return ErrDestinationOverrun
			}
			pf.write(dest, destIdx, pf.white)
			destIdx += bpp
			srcIdx++
			lastWasFgRun = false

		case code == SpecialBlack:
			if destIdx+bpp > len(dest) {
				return ErrDestinationOverrun
			}
			pf.write(dest, destIdx, 0)
			destIdx += bpp
			srcIdx++
			lastWasFgRun = false
		}
	}

	return nil
}

// writeFgBgGroup writes cBits (<=8) pixels selected by bitmask, LSB
// first, at destIdx. Bit set -> foreground (fg on the first scanline,
// fg XOR previous-scanline pixel otherwise); bit clear -> background
// (black on the first scanline, the previous-scanline pixel otherwise).
// The first-scanline decision is made per pixel, since a single group
// straddling the scanline boundary is legal.
func writeFgBgGroup[T uint8 | uint16 | uint32](pf pixelFormat[T], dest []byte, destIdx, rowDelta int, bitmask byte, fg T, cBits int) int {
	bpp := pf.bytesPerPixel
	for i := 0; i < cBits; i++ {
		fgBit := bitmask&fgBgBitmasks[i] != 0
		if destIdx < rowDelta {
			if fgBit {
				pf.write(dest, destIdx, fg)
			} else {
				pf.write(dest, destIdx, 0)
			}
		} else {
			prev := pf.read(dest, destIdx-rowDelta)
			if fgBit {
				pf.write(dest, destIdx, prev^fg)
			} else {
				pf.write(dest, destIdx, prev)
			}
		}
		destIdx += bpp
	}
	return destIdx
}
