package codec

import (
	"errors"
	"fmt"
)

// ErrUnknownCodec is returned by Registry.Decode when no codec is
// registered under the requested ID.
var ErrUnknownCodec = errors.New("codec: no codec registered for id")

// Codec decodes a single compressed tile to top-down RGBA pixels.
// Interleaved RLE (internal/tile) is not a Codec: it is addressed by
// pixel depth rather than by negotiated codec ID (MS-RDPBCGR leaves it
// out of BitmapCodecsCapabilitySet, selecting it instead through the
// classic BITMAP_COMPRESSION flag), so it is called directly rather
// than registered here.
type Codec interface {
	Decode(data []byte, width, height int) ([]byte, error)
}

// NSCodec adapts the MS-RDPNSC decoder to the Codec interface.
type NSCodec struct{}

func (NSCodec) Decode(data []byte, width, height int) ([]byte, error) {
	return Decode(data, width, height)
}

// Planar adapts the RDP6 Planar decoder to the Codec interface.
type Planar struct{}

func (Planar) Decode(data []byte, width, height int) ([]byte, error) {
	rgba := DecompressPlanar(data, width, height)
	if rgba == nil {
		return nil, fmt.Errorf("planar: decompress failed for %dx%d tile", width, height)
	}
	return rgba, nil
}

// Registry maps negotiated codec IDs (BitmapCodecsCapabilitySet /
// SetSurfaceBitsCommand.CodecID) to the Codec that decodes them.
type Registry struct {
	codecs map[uint8]Codec
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[uint8]Codec)}
}

// Register associates a codec ID with the Codec that decodes it. A
// later call for the same id replaces the earlier registration.
func (r *Registry) Register(id uint8, c Codec) {
	r.codecs[id] = c
}

// Decode looks up the codec registered for id and decodes data with it.
func (r *Registry) Decode(id uint8, data []byte, width, height int) ([]byte, error) {
	c, ok := r.codecs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, id)
	}
	return c.Decode(data, width, height)
}
