package pdu

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Bitmap update rectangle flags (MS-RDPBCGR 2.2.9.1.1.3.1.2.2).
const (
	// BitmapCompression marks BitmapDataStream as compressed (Interleaved
	// RLE unless the codec negotiation above selected a different codec).
	BitmapCompression uint16 = 0x0001
	// NoBitmapCompressionHdr means the 8-byte BITMAP_COMPRESSED_DATA_HEADER
	// is omitted and BitmapLength covers BitmapDataStream alone.
	NoBitmapCompressionHdr uint16 = 0x0400
)

// BitmapUpdateData is one TS_BITMAP_DATA rectangle (MS-RDPBCGR
// 2.2.9.1.1.3.1.2.2): the framing that wraps a single compressed tile
// for the classic (non-fastpath) Bitmap Update PDU. DestLeft/Top/Right/
// Bottom place the tile on the remote surface; Width/Height are the
// tile's own dimensions, at most 64x64 for a compressed tile.
type BitmapUpdateData struct {
	DestLeft        uint16
	DestTop         uint16
	DestRight       uint16
	DestBottom      uint16
	Width           uint16
	Height          uint16
	BitsPerPixel    uint16
	Flags           uint16
	BitmapLength    uint16
	BitmapDataStream []byte
}

// Serialize encodes the rectangle, omitting the optional compression
// header (NoBitmapCompressionHdr is always set): callers that need the
// header's per-row byte counts compute them at the transport layer.
func (d *BitmapUpdateData) Serialize() []byte {
	buf := new(bytes.Buffer)

	d.Flags |= NoBitmapCompressionHdr
	d.BitmapLength = uint16(len(d.BitmapDataStream)) // #nosec G115

	_ = binary.Write(buf, binary.LittleEndian, d.DestLeft)
	_ = binary.Write(buf, binary.LittleEndian, d.DestTop)
	_ = binary.Write(buf, binary.LittleEndian, d.DestRight)
	_ = binary.Write(buf, binary.LittleEndian, d.DestBottom)
	_ = binary.Write(buf, binary.LittleEndian, d.Width)
	_ = binary.Write(buf, binary.LittleEndian, d.Height)
	_ = binary.Write(buf, binary.LittleEndian, d.BitsPerPixel)
	_ = binary.Write(buf, binary.LittleEndian, d.Flags)
	_ = binary.Write(buf, binary.LittleEndian, d.BitmapLength)
	buf.Write(d.BitmapDataStream)

	return buf.Bytes()
}

// Deserialize decodes a rectangle. If Flags has BitmapCompression set
// but NOT NoBitmapCompressionHdr, the leading 8-byte
// BITMAP_COMPRESSED_DATA_HEADER is consumed and discarded (this module
// does not use its per-row size fields; the decoder reconstructs row
// boundaries itself from Width/BitsPerPixel).
func (d *BitmapUpdateData) Deserialize(wire io.Reader) error {
	fields := []interface{}{
		&d.DestLeft, &d.DestTop, &d.DestRight, &d.DestBottom,
		&d.Width, &d.Height, &d.BitsPerPixel, &d.Flags, &d.BitmapLength,
	}
	for _, f := range fields {
		if err := binary.Read(wire, binary.LittleEndian, f); err != nil {
			return err
		}
	}

	payloadLength := int(d.BitmapLength)

	if d.Flags&BitmapCompression != 0 && d.Flags&NoBitmapCompressionHdr == 0 {
		var hdr [8]byte
		if _, err := io.ReadFull(wire, hdr[:]); err != nil {
			return err
		}
		payloadLength -= 8
	}

	if payloadLength < 0 {
		return io.ErrUnexpectedEOF
	}

	d.BitmapDataStream = make([]byte, payloadLength)
	_, err := io.ReadFull(wire, d.BitmapDataStream)
	return err
}

// IsCompressed reports whether BitmapDataStream needs to be run through
// a codec before use, rather than copied in as raw top-down pixels.
func (d *BitmapUpdateData) IsCompressed() bool {
	return d.Flags&BitmapCompression != 0
}
