package filters

import "github.com/soypat/rawpix"

// Luma weights. They sum to exactly 1 so a gray input maps onto itself.
const (
	lumaR = 0.30
	lumaG = 0.59
	lumaB = 0.11
)

// Luma returns the luminance-weighted gray level of an RGB triplet.
//
// The weighted sum is accumulated in float64, narrowed to float32 and then
// truncated toward zero. Truncation, not rounding, is what keeps every
// scheduling of the transform bit-exact, so (255,0,0) yields 76 and (10,10,10) yields 10.
func Luma(r, g, b uint8) uint8 {
	// Explicit conversions round each product on its own and forbid fused multiply-add.
	y := float64(float64(r)*lumaR) + float64(float64(g)*lumaG) + float64(float64(b)*lumaB)
	return truncLuma(float32(y))
}

// truncLuma drops the fractional part of a luma value in [0, 255].
func truncLuma(y float32) uint8 {
	return uint8(y)
}

// ApplyGrayscale replaces every pixel of samples within r by its [Luma].
// It does not allocate and is safe to call concurrently on disjoint ranges.
// A malformed range panics.
func ApplyGrayscale(samples []byte, r ChunkRange) {
	if err := r.check(len(samples)); err != nil {
		panic(err)
	}
	grayscale(samples[r.Start:r.End])
}

// grayscale transforms a slice holding whole pixels.
func grayscale(px []byte) {
	for i := 0; i+2 < len(px); i += 3 {
		gray := Luma(px[i], px[i+1], px[i+2])
		px[i], px[i+1], px[i+2] = gray, gray, gray
	}
}

// NewGrayscale creates a sequential grayscale filter using PointFilter.
// It supports ROI and out-of-place processing.
func NewGrayscale() *PointFilter {
	return &PointFilter{
		In:  rawpix.ShapeRGB888,
		Out: rawpix.ShapeRGB888,
		Fn: func(dst, src []byte) {
			for i := 0; i+2 < len(src); i += 3 {
				gray := Luma(src[i], src[i+1], src[i+2])
				dst[i], dst[i+1], dst[i+2] = gray, gray, gray
			}
		},
	}
}
