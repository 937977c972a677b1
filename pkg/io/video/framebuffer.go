package video

import (
	"github.com/pion/planetranspose/pkg/planar"
)

// FrameBuffer is a buffer that can store a copy of any planar image.
type FrameBuffer struct {
	buffer []uint8
	tmp    *planar.Image
}

// NewFrameBuffer creates a new FrameBuffer instance and initialize internal buffer
// with initialSize
func NewFrameBuffer(initialSize int) *FrameBuffer {
	return &FrameBuffer{
		buffer: make([]uint8, initialSize),
	}
}

// Load loads the current owned image
func (buff *FrameBuffer) Load() *planar.Image {
	return buff.tmp
}

// StoreCopy makes a copy of src and store its copy. StoreCopy will reuse as much memory as it can
// from the previous copies. For example, if StoreCopy is given an image that has the same resolution
// and format from the previous call, StoreCopy will not allocate extra memory and only copy the content
// from src to the previous buffer.
//
// The copy is tightly laid out, padding of src is not preserved.
func (buff *FrameBuffer) StoreCopy(src *planar.Image) error {
	neededSize, err := planar.Size(src.Format, src.DW, src.DH, 0)
	if err != nil {
		return err
	}

	if len(buff.buffer) < neededSize {
		if cap(buff.buffer) >= neededSize {
			buff.buffer = buff.buffer[:neededSize]
		} else {
			buff.buffer = make([]uint8, neededSize)
		}
	}

	clone, err := planar.Wrap(src.Format, src.DW, src.DH, 0, buff.buffer)
	if err != nil {
		return err
	}
	clone.BitDepth = src.BitDepth
	if err := planar.CopyPixels(clone, src); err != nil {
		return err
	}

	buff.tmp = clone
	return nil
}
