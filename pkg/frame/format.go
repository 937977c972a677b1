package frame

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Descriptor describes the memory layout of a pixel format.
type Descriptor struct {
	// Planar is true when every component lives in its own plane.
	Planar bool
	// UVFlip stores the V plane before the U plane.
	UVFlip bool
	// HasAlpha adds a full resolution alpha plane.
	HasAlpha bool
	// HighBitDepth stores every sample in 2 bytes.
	HighBitDepth bool

	// XChromaShift and YChromaShift are log2 of the chroma subsampling factors.
	XChromaShift int
	YChromaShift int

	// BitDepth is the size of a sample in bits.
	BitDepth int
	// BitsPerPixel is the average storage cost of a pixel over all planes.
	BitsPerPixel int
}

// ByteDepth returns the size of a sample in bytes.
func (d Descriptor) ByteDepth() int {
	return d.BitDepth / 8
}

var descriptors = map[Format]Descriptor{
	FormatRGB24:    packed(24),
	FormatRGB32:    packed(32),
	FormatRGB565:   packed(16),
	FormatRGB555:   packed(16),
	FormatUYVY:     packed(16),
	FormatYUY2:     packed(16),
	FormatYVYU:     packed(16),
	FormatBGR24:    packed(24),
	FormatRGB32LE:  packed(32),
	FormatARGB:     packed(32),
	FormatARGBLE:   packed(32),
	FormatRGB565LE: packed(16),
	FormatRGB555LE: packed(16),

	FormatYV12:    {Planar: true, UVFlip: true, XChromaShift: 1, YChromaShift: 1, BitDepth: 8, BitsPerPixel: 12},
	FormatI420:    {Planar: true, XChromaShift: 1, YChromaShift: 1, BitDepth: 8, BitsPerPixel: 12},
	FormatVPXYV12: {Planar: true, UVFlip: true, XChromaShift: 1, YChromaShift: 1, BitDepth: 8, BitsPerPixel: 12},
	FormatVPXI420: {Planar: true, XChromaShift: 1, YChromaShift: 1, BitDepth: 8, BitsPerPixel: 12},
	FormatI422:    {Planar: true, XChromaShift: 1, BitDepth: 8, BitsPerPixel: 16},
	FormatI444:    {Planar: true, BitDepth: 8, BitsPerPixel: 24},
	FormatI440:    {Planar: true, YChromaShift: 1, BitDepth: 8, BitsPerPixel: 16},
	FormatI444A:   {Planar: true, HasAlpha: true, BitDepth: 8, BitsPerPixel: 32},

	FormatI42016: {Planar: true, HighBitDepth: true, XChromaShift: 1, YChromaShift: 1, BitDepth: 16, BitsPerPixel: 24},
	FormatI42216: {Planar: true, HighBitDepth: true, XChromaShift: 1, BitDepth: 16, BitsPerPixel: 32},
	FormatI44416: {Planar: true, HighBitDepth: true, BitDepth: 16, BitsPerPixel: 48},
	FormatI44016: {Planar: true, HighBitDepth: true, YChromaShift: 1, BitDepth: 16, BitsPerPixel: 32},
}

func packed(bpp int) Descriptor {
	return Descriptor{BitDepth: 8, BitsPerPixel: bpp}
}

// Lookup returns the layout of f. Semi-planar input formats and FormatNone
// have no descriptor.
func Lookup(f Format) (Descriptor, bool) {
	d, ok := descriptors[f]
	return d, ok
}

// Formats returns every format with a descriptor, sorted by name.
func Formats() []Format {
	formats := lo.Keys(descriptors)
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// ParseFormat accepts format names case-insensitively, with or without the
// VPX_IMG_FMT_ prefix.
func ParseFormat(name string) (Format, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	s = strings.TrimPrefix(s, namePrefix)
	switch s {
	case string(FormatNone):
		return FormatNone, nil
	case "I444A", "YUVA444":
		return FormatI444A, nil
	}

	f := Format(s)
	if _, ok := descriptors[f]; ok {
		return f, nil
	}
	switch f {
	case FormatNV21, FormatNV12:
		return f, nil
	}
	return FormatNone, fmt.Errorf("%s is not a known pixel format", name)
}

const namePrefix = "VPX_IMG_FMT_"

// Name returns the display name of f used in diagnostics.
func Name(f Format) string {
	if f == FormatNone {
		return namePrefix + "NONE"
	}
	if _, ok := descriptors[f]; !ok {
		return namePrefix + "UNKNOWN"
	}
	return namePrefix + string(f)
}
