package filters

import (
	"errors"
	"image"

	"github.com/soypat/rawpix"
)

var errShapeMismatch = errors.New("pixel shape mismatch")

// PointFunc processes a contiguous run of whole pixels.
// dst and src hold the same number of pixels; they may alias for in-place processing.
type PointFunc func(dst, src []byte)

// PointFilter applies a per-pixel transformation sequentially, one row at a time.
// It handles the iteration, buffering, and ROI logic common to all per-pixel filters.
type PointFilter struct {
	In    rawpix.Shape
	Out   rawpix.Shape
	Fn    PointFunc
	Ctrls []rawpix.Control
}

// ShapeIO implements [rawpix.Filter].
func (f *PointFilter) ShapeIO() (output, input rawpix.Shape) {
	return f.Out, f.In
}

// Controls implements [rawpix.Filter].
func (f *PointFilter) Controls() []rawpix.Control {
	return f.Ctrls
}

// Process implements [rawpix.Filter].
func (f *PointFilter) Process(dst []byte, src rawpix.Image, roi *image.Rectangle) (rawpix.Dims, error) {
	if f.Fn == nil {
		return rawpix.Dims{}, errNilPointFunc
	}

	outShape, inShape := f.ShapeIO()
	srcDims := src.Dims()
	if srcDims.Shape != inShape {
		return rawpix.Dims{}, errShapeMismatch
	}

	inBytesPerPixel := inShape.BytesPerPixel()
	outBytesPerPixel := outShape.BytesPerPixel()

	var outWidth, outHeight int
	if roi != nil {
		outWidth, outHeight = roi.Dx(), roi.Dy()
	} else {
		outWidth, outHeight = srcDims.Width, srcDims.Height
	}
	outStride := outWidth * outBytesPerPixel

	dstDims := rawpix.Dims{
		Width:  outWidth,
		Height: outHeight,
		Stride: outStride,
		Shape:  outShape,
	}

	dst, _, err := rawpix.ValidateProcessArgs(dst, dstDims, src, roi)
	if err != nil {
		return rawpix.Dims{}, err
	}

	startX, startY := 0, 0
	endX, endY := srcDims.Width, srcDims.Height
	if roi != nil {
		startX, startY = roi.Min.X, roi.Min.Y
		endX, endY = roi.Max.X, roi.Max.Y
	}

	rowBuf := make([]byte, srcDims.SizeRow()) // Fallback buffer for unbuffered sources.
	for y := startY; y < endY; y++ {
		srcRow, err := rawpix.ImageRow(rowBuf, src, y)
		if err != nil {
			return rawpix.Dims{}, err
		}
		dstRowStart := (y - startY) * outStride
		f.Fn(dst[dstRowStart:dstRowStart+outStride], srcRow[startX*inBytesPerPixel:endX*inBytesPerPixel])
	}
	return dstDims, nil
}

var errNilPointFunc = errorString("nil PointFunc")

type errorString string

func (e errorString) Error() string { return string(e) }
