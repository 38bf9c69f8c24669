// Package pdu implements the wire framing that wraps compressed bitmap
// tiles for transport: the Bitmap Capability Set and Bitmap Codecs
// Capability Set (MS-RDPBCGR 2.2.7.1.2, 2.2.7.2.10) used to negotiate
// which codec a tile was encoded with, and the per-rectangle bitmap
// update / surface-bits framing that carries the encoded bytes.
package pdu

import (
	"bytes"
	"encoding/binary"
	"io"
)

// CapabilitySetType identifies the kind of capability set carried in a
// Demand/Confirm Active PDU (MS-RDPBCGR 2.2.1.13.1.1.1).
type CapabilitySetType uint16

const (
	CapabilitySetTypeBitmap       CapabilitySetType = 2
	CapabilitySetTypeBitmapCodecs CapabilitySetType = 28
)

// CapabilitySet is a tagged union over the capability sets this module
// negotiates. Only one of the pointer fields is non-nil for a given
// CapabilitySetType, mirroring the wider Demand Active PDU's capability
// array without pulling in the capabilities this module never touches
// (orders, glyph cache, sound, rail, ...).
type CapabilitySet struct {
	CapabilitySetType         CapabilitySetType
	BitmapCapabilitySet       *BitmapCapabilitySet
	BitmapCodecsCapabilitySet *BitmapCodecsCapabilitySet
}

// Serialize encodes the capability set header (type + length, MS-RDPBCGR
// 2.2.1.13.1.1.1) followed by whichever payload CapabilitySetType selects.
func (s *CapabilitySet) Serialize() []byte {
	var payload []byte

	switch s.CapabilitySetType {
	case CapabilitySetTypeBitmap:
		payload = s.BitmapCapabilitySet.Serialize()
	case CapabilitySetTypeBitmapCodecs:
		payload = s.BitmapCodecsCapabilitySet.Serialize()
	}

	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.LittleEndian, s.CapabilitySetType)
	_ = binary.Write(buf, binary.LittleEndian, uint16(4+len(payload))) // #nosec G115
	buf.Write(payload)

	return buf.Bytes()
}

// BitmapCapabilitySet represents the Bitmap Capability Set (MS-RDPBCGR 2.2.7.1.2).
type BitmapCapabilitySet struct {
	PreferredBitsPerPixel uint16
	Receive1BitPerPixel   uint16
	Receive4BitsPerPixel  uint16
	Receive8BitsPerPixel  uint16
	DesktopWidth          uint16
	DesktopHeight         uint16
	DesktopResizeFlag     uint16
	DrawingFlags          uint8
}

// NewBitmapCapabilitySet creates a Bitmap Capability Set advertising
// support for the three depths the Interleaved RLE codec handles.
func NewBitmapCapabilitySet(desktopWidth, desktopHeight uint16) CapabilitySet {
	return CapabilitySet{
		CapabilitySetType: CapabilitySetTypeBitmap,
		BitmapCapabilitySet: &BitmapCapabilitySet{
			PreferredBitsPerPixel: 24,
			Receive1BitPerPixel:   0x0001,
			Receive4BitsPerPixel:  0x0001,
			Receive8BitsPerPixel:  0x0001,
			DesktopWidth:          desktopWidth,
			DesktopHeight:         desktopHeight,
			DesktopResizeFlag:     0x0001,
		},
	}
}

func (s *BitmapCapabilitySet) Serialize() []byte {
	buf := new(bytes.Buffer)

	_ = binary.Write(buf, binary.LittleEndian, s.PreferredBitsPerPixel)
	_ = binary.Write(buf, binary.LittleEndian, s.Receive1BitPerPixel)
	_ = binary.Write(buf, binary.LittleEndian, s.Receive4BitsPerPixel)
	_ = binary.Write(buf, binary.LittleEndian, s.Receive8BitsPerPixel)
	_ = binary.Write(buf, binary.LittleEndian, s.DesktopWidth)
	_ = binary.Write(buf, binary.LittleEndian, s.DesktopHeight)
	_ = binary.Write(buf, binary.LittleEndian, uint16(0)) // padding
	_ = binary.Write(buf, binary.LittleEndian, s.DesktopResizeFlag)
	_ = binary.Write(buf, binary.LittleEndian, uint16(0x0001)) // bitmapCompressionFlag
	_ = binary.Write(buf, binary.LittleEndian, uint8(0))       // highColorFlags
	_ = binary.Write(buf, binary.LittleEndian, s.DrawingFlags)
	_ = binary.Write(buf, binary.LittleEndian, uint16(0x0001)) // multipleRectangleSupport
	_ = binary.Write(buf, binary.LittleEndian, uint16(0))      // padding

	return buf.Bytes()
}

func (s *BitmapCapabilitySet) Deserialize(wire io.Reader) error {
	fields := []interface{}{
		&s.PreferredBitsPerPixel, &s.Receive1BitPerPixel, &s.Receive4BitsPerPixel,
		&s.Receive8BitsPerPixel, &s.DesktopWidth, &s.DesktopHeight,
	}
	for _, f := range fields {
		if err := binary.Read(wire, binary.LittleEndian, f); err != nil {
			return err
		}
	}

	var padding uint16
	if err := binary.Read(wire, binary.LittleEndian, &padding); err != nil {
		return err
	}

	return binary.Read(wire, binary.LittleEndian, &s.DesktopResizeFlag)
}

// BitmapCodec represents a bitmap codec entry (MS-RDPBCGR 2.2.7.2.10.1):
// the GUID identifying the codec family, the short CodecID a surface
// command references it by on the wire, and codec-specific properties.
type BitmapCodec struct {
	CodecGUID       [16]byte
	CodecID         uint8
	CodecProperties []byte
}

func (c *BitmapCodec) Serialize() []byte {
	buf := new(bytes.Buffer)

	_ = binary.Write(buf, binary.LittleEndian, c.CodecGUID)
	_ = binary.Write(buf, binary.LittleEndian, c.CodecID)
	_ = binary.Write(buf, binary.LittleEndian, uint16(len(c.CodecProperties)))
	buf.Write(c.CodecProperties)

	return buf.Bytes()
}

func (c *BitmapCodec) Deserialize(wire io.Reader) error {
	if err := binary.Read(wire, binary.LittleEndian, &c.CodecGUID); err != nil {
		return err
	}
	if err := binary.Read(wire, binary.LittleEndian, &c.CodecID); err != nil {
		return err
	}

	var codecPropertiesLength uint16
	if err := binary.Read(wire, binary.LittleEndian, &codecPropertiesLength); err != nil {
		return err
	}

	c.CodecProperties = make([]byte, codecPropertiesLength)
	_, err := io.ReadFull(wire, c.CodecProperties)
	return err
}

// BitmapCodecsCapabilitySet represents the Bitmap Codecs Capability Set
// (MS-RDPBCGR 2.2.7.2.10): the set of codec IDs a peer is willing to
// decode, beyond the always-available uncompressed/Interleaved-RLE path.
type BitmapCodecsCapabilitySet struct {
	BitmapCodecArray []BitmapCodec
}

func (s *BitmapCodecsCapabilitySet) Serialize() []byte {
	buf := new(bytes.Buffer)

	_ = binary.Write(buf, binary.LittleEndian, uint8(len(s.BitmapCodecArray)))
	for _, codec := range s.BitmapCodecArray {
		buf.Write(codec.Serialize())
	}

	return buf.Bytes()
}

func (s *BitmapCodecsCapabilitySet) Deserialize(wire io.Reader) error {
	var bitmapCodecCount uint8
	if err := binary.Read(wire, binary.LittleEndian, &bitmapCodecCount); err != nil {
		return err
	}

	s.BitmapCodecArray = make([]BitmapCodec, bitmapCodecCount)
	for i := range s.BitmapCodecArray {
		if err := s.BitmapCodecArray[i].Deserialize(wire); err != nil {
			return err
		}
	}

	return nil
}

// NSCodecGUID is the GUID for NSCodec (CA8D1BB9-000F-154F-589F-AE2D1A87E2D6).
var NSCodecGUID = [16]byte{
	0xB9, 0x1B, 0x8D, 0xCA, 0x0F, 0x00, 0x4F, 0x15,
	0x58, 0x9F, 0xAE, 0x2D, 0x1A, 0x87, 0xE2, 0xD6,
}

// NSCodecCapabilitySet carries NSCodec's codec-specific properties,
// serialized into BitmapCodec.CodecProperties.
type NSCodecCapabilitySet struct {
	FAllowDynamicFidelity uint8
	FAllowSubsampling     uint8
	ColorLossLevel        uint8
}

func (c *NSCodecCapabilitySet) Serialize() []byte {
	return []byte{c.FAllowDynamicFidelity, c.FAllowSubsampling, c.ColorLossLevel}
}

func (c *NSCodecCapabilitySet) Deserialize(data []byte) error {
	if len(data) < 3 {
		return io.ErrUnexpectedEOF
	}
	c.FAllowDynamicFidelity = data[0]
	c.FAllowSubsampling = data[1]
	c.ColorLossLevel = data[2]
	return nil
}

// NewBitmapCodecsCapabilitySet creates a capability set advertising
// NSCodec support under codec ID id, alongside the always-available
// Interleaved RLE path (which has no codec ID: it is selected by the
// TS_BITMAP_DATA BITMAP_COMPRESSION flag, not by BitmapCodecsCapabilitySet).
func NewBitmapCodecsCapabilitySet(id uint8) CapabilitySet {
	nscodecProps := NSCodecCapabilitySet{
		FAllowDynamicFidelity: 1,
		FAllowSubsampling:     1,
		ColorLossLevel:        3,
	}

	return CapabilitySet{
		CapabilitySetType: CapabilitySetTypeBitmapCodecs,
		BitmapCodecsCapabilitySet: &BitmapCodecsCapabilitySet{
			BitmapCodecArray: []BitmapCodec{
				{
					CodecGUID:       NSCodecGUID,
					CodecID:         id,
					CodecProperties: nscodecProps.Serialize(),
				},
			},
		},
	}
}
