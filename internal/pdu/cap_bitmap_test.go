package pdu

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_BitmapCapabilitySet_Serialize(t *testing.T) {
	set := CapabilitySet{
		CapabilitySetType: CapabilitySetTypeBitmap,
		BitmapCapabilitySet: &BitmapCapabilitySet{
			PreferredBitsPerPixel: 0x18,
			Receive1BitPerPixel:   1,
			Receive4BitsPerPixel:  1,
			Receive8BitsPerPixel:  1,
			DesktopWidth:          1280,
			DesktopHeight:         1024,
			DesktopResizeFlag:     1,
		},
	}

	encoded := set.Serialize()

	require.Equal(t, uint16(CapabilitySetTypeBitmap), uint16(encoded[0])|uint16(encoded[1])<<8)

	var roundtrip BitmapCapabilitySet
	require.NoError(t, roundtrip.Deserialize(bytes.NewReader(encoded[4:])))
	require.Equal(t, set.BitmapCapabilitySet.PreferredBitsPerPixel, roundtrip.PreferredBitsPerPixel)
	require.Equal(t, set.BitmapCapabilitySet.DesktopWidth, roundtrip.DesktopWidth)
	require.Equal(t, set.BitmapCapabilitySet.DesktopHeight, roundtrip.DesktopHeight)
}

func Test_BitmapCodecsCapabilitySet_RoundTrip(t *testing.T) {
	set := NewBitmapCodecsCapabilitySet(3)

	require.Equal(t, CapabilitySetTypeBitmapCodecs, set.CapabilitySetType)
	require.Len(t, set.BitmapCodecsCapabilitySet.BitmapCodecArray, 1)
	require.Equal(t, NSCodecGUID, set.BitmapCodecsCapabilitySet.BitmapCodecArray[0].CodecGUID)
	require.Equal(t, uint8(3), set.BitmapCodecsCapabilitySet.BitmapCodecArray[0].CodecID)

	encoded := set.BitmapCodecsCapabilitySet.Serialize()

	var roundtrip BitmapCodecsCapabilitySet
	require.NoError(t, roundtrip.Deserialize(bytes.NewReader(encoded)))
	require.Len(t, roundtrip.BitmapCodecArray, 1)
	require.Equal(t, NSCodecGUID, roundtrip.BitmapCodecArray[0].CodecGUID)

	var props NSCodecCapabilitySet
	require.NoError(t, props.Deserialize(roundtrip.BitmapCodecArray[0].CodecProperties))
	require.Equal(t, uint8(1), props.FAllowDynamicFidelity)
	require.Equal(t, uint8(3), props.ColorLossLevel)
}
