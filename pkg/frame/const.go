package frame

type Format string

const (
	// FormatNone is the placeholder for an image without a pixel format.
	FormatNone Format = "NONE"

	// Packed Formats

	FormatRGB24    Format = "RGB24"
	FormatRGB32    Format = "RGB32"
	FormatRGB565   Format = "RGB565"
	FormatRGB555   Format = "RGB555"
	FormatUYVY     Format = "UYVY"
	FormatYUY2     Format = "YUY2"
	FormatYVYU     Format = "YVYU"
	FormatBGR24    Format = "BGR24"
	FormatRGB32LE  Format = "RGB32_LE"
	FormatARGB     Format = "ARGB"
	FormatARGBLE   Format = "ARGB_LE"
	FormatRGB565LE Format = "RGB565_LE"
	FormatRGB555LE Format = "RGB555_LE"

	// Planar YUV Formats

	// FormatYV12 is 4:2:0 with the V plane stored before the U plane
	FormatYV12 Format = "YV12"
	// FormatI420 https://www.fourcc.org/pixel-format/yuv-i420/
	FormatI420    Format = "I420"
	FormatVPXYV12 Format = "VPXYV12"
	FormatVPXI420 Format = "VPXI420"
	// FormatI422 is subsampled horizontally only
	FormatI422 Format = "I422"
	// FormatI444 is a YUV format without sub-sampling
	FormatI444 Format = "I444"
	// FormatI440 is subsampled vertically only
	FormatI440 Format = "I440"
	// FormatI444A is FormatI444 with an extra alpha plane
	FormatI444A Format = "444A"

	// High bit depth variants store every sample in 2 bytes.
	FormatI42016 Format = "I42016"
	FormatI42216 Format = "I42216"
	FormatI44416 Format = "I44416"
	FormatI44016 Format = "I44016"

	// Semi-planar Formats, only accepted as raw decoder input

	// FormatNV21 https://www.fourcc.org/pixel-format/yuv-nv21/
	FormatNV21 Format = "NV21"
	// FormatNV12 https://www.fourcc.org/pixel-format/yuv-nv12/
	FormatNV12 Format = "NV12"
)

// YUV aliases

// FormatYUYV is an alias of FormatYUY2
const FormatYUYV = FormatYUY2
