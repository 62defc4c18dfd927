package rawpix

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
)

// MaxValue is the largest per-channel maximum an [RGB] may declare.
// Samples are single bytes so anything above it cannot be represented.
const MaxValue = 255

var (
	ErrDims   = errors.New("rawpix: width and height must be positive")
	ErrMaxVal = errors.New("rawpix: max channel value out of range")
	ErrAlloc  = errors.New("rawpix: cannot allocate samples")
	ErrLayout = errors.New("rawpix: sample count does not match dimensions")
)

// RGB is an in-memory 8-bit RGB pixel buffer. The pixel at (x, y) starts at
// Pix[(y*Width+x)*3] and its channels follow in R, G, B order.
//
// RGB implements [ImageBuffered] with shape [ShapeRGB888] and no row padding.
type RGB struct {
	Width  int
	Height int
	// MaxVal is the declared maximum channel value, usually 255.
	MaxVal int
	Pix    []byte // len = Width * Height * 3
}

// NewRGB allocates a zeroed buffer of the given dimensions.
func NewRGB(width, height, maxVal int) (*RGB, error) {
	n, err := SampleCount(width, height)
	if err != nil {
		return nil, err
	}
	if maxVal <= 0 || maxVal > MaxValue {
		return nil, fmt.Errorf("%w: %d", ErrMaxVal, maxVal)
	}
	pix, err := allocSamples(n)
	if err != nil {
		return nil, err
	}
	return &RGB{Width: width, Height: height, MaxVal: maxVal, Pix: pix}, nil
}

// SampleCount returns width*height*3, failing with [ErrAlloc] when the
// product does not fit in an int.
func SampleCount(width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrDims, width, height)
	}
	if width > math.MaxInt/3/height {
		return 0, fmt.Errorf("%w: %dx%d overflows", ErrAlloc, width, height)
	}
	return width * height * 3, nil
}

// allocSamples turns the runtime's recoverable allocation panics into an error.
// Exhausting the heap itself still aborts the process.
func allocSamples(n int) (pix []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			pix, err = nil, fmt.Errorf("%w: %d bytes: %v", ErrAlloc, n, r)
		}
	}()
	return make([]byte, n), nil
}

// Dims implements [Image].
func (img *RGB) Dims() Dims {
	return Dims{
		Width:  img.Width,
		Height: img.Height,
		Stride: img.Width * 3,
		Shape:  ShapeRGB888,
	}
}

// ReadAt implements [io.ReaderAt] over the sample buffer.
func (img *RGB) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("rawpix: negative offset")
	}
	if off >= int64(len(img.Pix)) {
		return 0, io.EOF
	}
	n := copy(p, img.Pix[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Buffer implements [ImageBuffered].
func (img *RGB) Buffer() []byte { return img.Pix }

// Validate reports whether the buffer is consistent with its dimensions.
func (img *RGB) Validate() error {
	n, err := SampleCount(img.Width, img.Height)
	if err != nil {
		return err
	}
	if img.MaxVal <= 0 || img.MaxVal > MaxValue {
		return fmt.Errorf("%w: %d", ErrMaxVal, img.MaxVal)
	}
	if len(img.Pix) != n {
		return fmt.Errorf("%w: have %d samples, want %d", ErrLayout, len(img.Pix), n)
	}
	return nil
}

// At returns the channels of the pixel at (x, y).
func (img *RGB) At(x, y int) (r, g, b uint8) {
	i := (y*img.Width + x) * 3
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
}

// Clone returns a deep copy of img.
func (img *RGB) Clone() *RGB {
	cp := *img
	cp.Pix = bytes.Clone(img.Pix)
	return &cp
}

// Equal reports whether both buffers have the same dimensions, max value and samples.
func (img *RGB) Equal(other *RGB) bool {
	return img.Width == other.Width && img.Height == other.Height &&
		img.MaxVal == other.MaxVal && bytes.Equal(img.Pix, other.Pix)
}
