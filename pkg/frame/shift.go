package frame

// CeilingShift returns ceil(size / 2^shift), the smallest x such that
// x<<shift >= size. A zero shift returns size unchanged.
func CeilingShift(size, shift int) int {
	return (size + (1 << shift) - 1) >> shift
}

// ChromaSize returns the logical size of a chroma plane of a width x height
// image in this format.
func (d Descriptor) ChromaSize(width, height int) (int, int) {
	return CeilingShift(width, d.XChromaShift), CeilingShift(height, d.YChromaShift)
}
