package transpose

import "fmt"

// sampleKind selects the narrow (1 byte) or wide (2 byte) plane kernels.
// It is picked once per image, never per sample.
type sampleKind int

const (
	narrow sampleKind = iota
	wide
)

func kindOf(byteDepth int) sampleKind {
	if byteDepth == 2 {
		return wide
	}
	return narrow
}

func (k sampleKind) size() int {
	if k == wide {
		return 2
	}
	return 1
}

func (k sampleKind) String() string {
	if k == wide {
		return "wide"
	}
	return "narrow"
}

// transposePlane writes the transpose of the n columns x m rows plane in src
// into dst, so dst holds m columns x n rows. Only the logical rectangles are
// read and written; bytes past the last column of a row are left alone.
func transposePlane(k sampleKind, dst []byte, dstStride int, src []byte, srcStride int, n, m int) {
	if n <= 0 || m <= 0 {
		return
	}
	if debugBounds {
		assertFits("transpose source", src, srcStride, n, m, k.size())
		assertFits("transpose destination", dst, dstStride, m, n, k.size())
	}

	switch k {
	case wide:
		for i := 0; i < m; i++ {
			row := src[i*srcStride : i*srcStride+2*n]
			for j := 0; j < n; j++ {
				d := j*dstStride + 2*i
				dst[d] = row[2*j]
				dst[d+1] = row[2*j+1]
			}
		}
	default:
		for i := 0; i < m; i++ {
			row := src[i*srcStride : i*srcStride+n]
			for j, v := range row {
				dst[j*dstStride+i] = v
			}
		}
	}
}

// resizePlane point samples the oldWidth x oldHeight plane in src into the
// newWidth x newHeight plane in dst. Corners map onto corners: destination
// (i, j) reads source (round(Ki*i), round(Kj*j)) with
// Ki = (oldHeight-1)/(newHeight-1) and Kj = (oldWidth-1)/(newWidth-1).
// It returns false, without touching either plane, when there is nothing to
// sample from or nothing to sample into.
func resizePlane(k sampleKind, dst []byte, dstStride, newWidth, newHeight int,
	src []byte, srcStride, oldWidth, oldHeight int) bool {
	if newHeight == 0 || oldHeight == 0 {
		return false
	}
	if newWidth == 0 {
		return true
	}
	if oldWidth == 0 {
		return false
	}
	if debugBounds {
		assertFits("resize source", src, srcStride, oldWidth, oldHeight, k.size())
		assertFits("resize destination", dst, dstStride, newWidth, newHeight, k.size())
	}

	ki := ratio(oldHeight, newHeight)
	kj := ratio(oldWidth, newWidth)

	// Column lookups are the same for every row.
	cols := make([]int, newWidth)
	for j := range cols {
		cols[j] = nearest(kj, j, oldWidth) * k.size()
	}

	for i := 0; i < newHeight; i++ {
		srow := src[nearest(ki, i, oldHeight)*srcStride:]
		drow := dst[i*dstStride:]
		switch k {
		case wide:
			for j, c := range cols {
				drow[2*j] = srow[c]
				drow[2*j+1] = srow[c+1]
			}
		default:
			for j, c := range cols {
				drow[j] = srow[c]
			}
		}
	}
	return true
}

func ratio(oldSize, newSize int) float64 {
	if newSize == 1 {
		return 1
	}
	return float64(oldSize-1) / float64(newSize-1)
}

// nearest rounds k*i half up and clamps it into [0, limit).
func nearest(k float64, i, limit int) int {
	v := int(k*float64(i) + 0.5)
	if v >= limit {
		v = limit - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

func assertFits(what string, b []byte, stride, width, height, size int) {
	if stride < width*size {
		panic(fmt.Sprintf("%s: stride %d shorter than %d samples of %d bytes", what, stride, width, size))
	}
	if need := stride*(height-1) + width*size; need > len(b) {
		panic(fmt.Sprintf("%s: %dx%d plane needs %d bytes, have %d", what, width, height, need, len(b)))
	}
}
