package pdu

import (
	"encoding/binary"
	"io"
)

// Surface command types (MS-RDPBCGR 2.2.9.2).
const (
	CmdTypeSetSurfaceBits    uint16 = 0x0001
	CmdTypeFrameMarker       uint16 = 0x0004
	CmdTypeStreamSurfaceBits uint16 = 0x0006
)

// Codec IDs referenced by SetSurfaceBitsCommand.CodecID. 0 means "no
// codec" (raw or Interleaved-RLE, selected instead by the legacy
// BitmapCompression flag on the classic path); any other value is
// negotiated ad hoc via BitmapCodecsCapabilitySet and looked up in a
// codec Registry.
const CodecIDUncompressed uint8 = 0

// SetSurfaceBitsCommand represents CMDTYPE_SET_SURFACE_BITS /
// CMDTYPE_STREAM_SURFACE_BITS (MS-RDPBCGR 2.2.9.2.1): the fastpath
// framing that wraps a single encoded tile, naming which codec (by ID)
// produced BitmapData.
type SetSurfaceBitsCommand struct {
	DestLeft   uint16
	DestTop    uint16
	DestRight  uint16
	DestBottom uint16
	BPP        uint8
	CodecID    uint8
	Width      uint16
	Height     uint16
	BitmapData []byte
}

// Serialize encodes the command body (without the leading CmdType,
// which the fastpath update header carries separately).
func (c *SetSurfaceBitsCommand) Serialize() []byte {
	buf := make([]byte, 20+len(c.BitmapData))

	binary.LittleEndian.PutUint16(buf[0:2], c.DestLeft)
	binary.LittleEndian.PutUint16(buf[2:4], c.DestTop)
	binary.LittleEndian.PutUint16(buf[4:6], c.DestRight)
	binary.LittleEndian.PutUint16(buf[6:8], c.DestBottom)
	buf[8] = c.BPP
	buf[9] = 0 // flags
	buf[10] = 0 // reserved
	buf[11] = c.CodecID
	binary.LittleEndian.PutUint16(buf[12:14], c.Width)
	binary.LittleEndian.PutUint16(buf[14:16], c.Height)
	binary.LittleEndian.PutUint32(buf[16:20], uint32(len(c.BitmapData))) // #nosec G115
	copy(buf[20:], c.BitmapData)

	return buf
}

// ParseSetSurfaceBits decodes a SetSurfaceBits/StreamSurfaceBits command body.
func ParseSetSurfaceBits(data []byte) (*SetSurfaceBitsCommand, error) {
	if len(data) < 20 {
		return nil, io.ErrUnexpectedEOF
	}

	cmd := &SetSurfaceBitsCommand{
		DestLeft:   binary.LittleEndian.Uint16(data[0:2]),
		DestTop:    binary.LittleEndian.Uint16(data[2:4]),
		DestRight:  binary.LittleEndian.Uint16(data[4:6]),
		DestBottom: binary.LittleEndian.Uint16(data[6:8]),
		BPP:        data[8],
		CodecID:    data[11],
		Width:      binary.LittleEndian.Uint16(data[12:14]),
		Height:     binary.LittleEndian.Uint16(data[14:16]),
	}

	bitmapDataLength := binary.LittleEndian.Uint32(data[16:20])
	if uint32(len(data)) < 20+bitmapDataLength { // #nosec G115
		return nil, io.ErrUnexpectedEOF
	}

	cmd.BitmapData = data[20 : 20+bitmapDataLength]
	return cmd, nil
}
