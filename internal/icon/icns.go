package icon

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
)

// iconFamily is a parsed .icns container: a flat set of elements keyed by
// their four-byte OSType. Only the element types the extractor selects are
// ever decoded; everything else is carried opaquely.
type iconFamily struct {
	elements map[string][]byte
}

const (
	icnsMagic     = "icns"
	headerSize    = 8
	it32Size      = 128 // it32 edge length in pixels
	it32Pixels    = it32Size * it32Size
	it32ChanBytes = 3 * it32Pixels // packed R, G, B channel data
)

// parseFamily reads an icns container: an 8-byte header ("icns" magic plus
// big-endian total length) followed by elements, each an OSType, a length
// that includes the 8-byte element header, and the payload.
func parseFamily(data []byte) (*iconFamily, error) {
	if len(data) < headerSize || string(data[:4]) != icnsMagic {
		return nil, fmt.Errorf("not an icns container")
	}
	total := binary.BigEndian.Uint32(data[4:8])
	if total < headerSize || int(total) > len(data) {
		return nil, fmt.Errorf("icns header claims %d bytes, have %d", total, len(data))
	}

	fam := &iconFamily{elements: make(map[string][]byte)}
	rest := data[headerSize:total]
	for len(rest) > 0 {
		if len(rest) < headerSize {
			return nil, fmt.Errorf("truncated icns element header")
		}
		ostype := string(rest[:4])
		size := binary.BigEndian.Uint32(rest[4:8])
		if size < headerSize || int(size) > len(rest) {
			return nil, fmt.Errorf("icns element %q has invalid size %d", ostype, size)
		}
		fam.elements[ostype] = rest[headerSize:size]
		rest = rest[size:]
	}
	return fam, nil
}

// decode returns the image stored under the given OSType. PNG-bearing
// elements (ic13, ic12 and friends) decode directly; it32 goes through the
// legacy packed-channel path.
func (f *iconFamily) decode(ostype string) (image.Image, error) {
	data, ok := f.elements[ostype]
	if !ok {
		return nil, fmt.Errorf("icns element %q not present", ostype)
	}
	if ostype == "it32" {
		return f.decodeIt32(data)
	}
	return png.Decode(bytes.NewReader(data))
}

// decodeIt32 unpacks the legacy 128x128 element: RLE-compressed R, G and B
// channels, with the alpha channel stored separately in the t8mk mask.
// Some writers prefix the compressed stream with four zero bytes.
func (f *iconFamily) decodeIt32(data []byte) (image.Image, error) {
	if len(data) >= 4 && data[0] == 0 && data[1] == 0 && data[2] == 0 && data[3] == 0 {
		data = data[4:]
	}
	channels, err := unpackRLE(data, it32ChanBytes)
	if err != nil {
		return nil, err
	}

	mask := f.elements["t8mk"]
	if mask != nil && len(mask) < it32Pixels {
		return nil, fmt.Errorf("t8mk mask has %d bytes, want %d", len(mask), it32Pixels)
	}

	img := image.NewNRGBA(image.Rect(0, 0, it32Size, it32Size))
	for i := 0; i < it32Pixels; i++ {
		alpha := byte(0xff)
		if mask != nil {
			alpha = mask[i]
		}
		img.Pix[i*4+0] = channels[i]
		img.Pix[i*4+1] = channels[it32Pixels+i]
		img.Pix[i*4+2] = channels[2*it32Pixels+i]
		img.Pix[i*4+3] = alpha
	}
	return img, nil
}

// unpackRLE decompresses the icns run-length scheme: a control byte below
// 0x80 copies control+1 literal bytes; otherwise the next byte repeats
// control-0x80+3 times.
func unpackRLE(data []byte, want int) ([]byte, error) {
	out := make([]byte, 0, want)
	i := 0
	for len(out) < want {
		if i >= len(data) {
			return nil, fmt.Errorf("rle stream ended at %d of %d bytes", len(out), want)
		}
		ctrl := data[i]
		i++
		if ctrl < 0x80 {
			n := int(ctrl) + 1
			if i+n > len(data) {
				return nil, fmt.Errorf("rle literal run of %d overruns input", n)
			}
			out = append(out, data[i:i+n]...)
			i += n
		} else {
			if i >= len(data) {
				return nil, fmt.Errorf("rle repeat run missing value byte")
			}
			n := int(ctrl) - 0x80 + 3
			for j := 0; j < n; j++ {
				out = append(out, data[i])
			}
			i++
		}
	}
	if len(out) > want {
		out = out[:want]
	}
	return out, nil
}
