package video

import (
	"errors"
	"fmt"
	"io"

	"github.com/pion/planetranspose/pkg/frame"
	"github.com/pion/planetranspose/pkg/planar"
)

// ErrPackedFormat is returned for packed RGB layouts. Only packed 4:2:2 YUV is
// unpacked into planes before transposing.
var ErrPackedFormat = errors.New("video: packed RGB frames can't be transposed")

// NewRawReader reads consecutive raw frames of format f from r. Read returns
// io.EOF after the last complete frame and io.ErrUnexpectedEOF when the input
// ends in the middle of a frame.
func NewRawReader(r io.Reader, f frame.Format, width, height int) (Reader, error) {
	if d, ok := frame.Lookup(f); ok && !d.Planar && !unpacked(f) {
		return nil, fmt.Errorf("%w: %s", ErrPackedFormat, frame.Name(f))
	}
	size, err := planar.FrameSize(f, width, height)
	if err != nil {
		return nil, err
	}
	decoder, err := planar.NewDecoder(f)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	return ReaderFunc(func() (*planar.Image, func(), error) {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, func() {}, err
		}
		return decoder.Decode(buf, width, height)
	}), nil
}

// unpacked reports whether the decoder for f spreads its samples over planes.
func unpacked(f frame.Format) bool {
	switch f {
	case frame.FormatYUY2, frame.FormatUYVY, frame.FormatYVYU:
		return true
	}
	return false
}

// Copy writes every frame of r to w as raw frames until r is exhausted and
// returns the number of frames written.
func Copy(w io.Writer, r Reader) (int, error) {
	var n int
	for {
		img, release, err := r.Read()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("frame %d: %w", n, err)
		}

		err = planar.Encode(w, img)
		if release != nil {
			release()
		}
		if err != nil {
			return n, fmt.Errorf("frame %d: %w", n, err)
		}
		n++
	}
}
