package rawpix

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestNewRGB(t *testing.T) {
	img, err := NewRGB(4, 3, 255)
	if err != nil {
		t.Fatalf("NewRGB: %v", err)
	}
	if len(img.Pix) != 4*3*3 {
		t.Fatalf("got %d samples, want %d", len(img.Pix), 36)
	}
	for i, v := range img.Pix {
		if v != 0 {
			t.Fatalf("sample %d not zeroed: %d", i, v)
		}
	}
	if err := img.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	d := img.Dims()
	if d.Stride != 12 || d.Shape != ShapeRGB888 || d.Size() != 36 {
		t.Errorf("unexpected dims %+v size=%d", d, d.Size())
	}
}

func TestNewRGBInvalid(t *testing.T) {
	tests := []struct {
		name         string
		w, h, maxVal int
		want         error
	}{
		{"zero width", 0, 3, 255, ErrDims},
		{"negative height", 3, -1, 255, ErrDims},
		{"zero maxval", 1, 1, 0, ErrMaxVal},
		{"wide maxval", 1, 1, 256, ErrMaxVal},
		{"overflow", math.MaxInt / 2, 4, 255, ErrAlloc},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			img, err := NewRGB(tc.w, tc.h, tc.maxVal)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got err %v, want %v", err, tc.want)
			}
			if img != nil {
				t.Fatal("expected nil image on error")
			}
		})
	}
}

func TestRGBValidateLayout(t *testing.T) {
	img := &RGB{Width: 2, Height: 2, MaxVal: 255, Pix: make([]byte, 11)}
	if err := img.Validate(); !errors.Is(err, ErrLayout) {
		t.Fatalf("got %v, want ErrLayout", err)
	}
}

func TestRGBReadAt(t *testing.T) {
	img := &RGB{Width: 2, Height: 1, MaxVal: 255, Pix: []byte{1, 2, 3, 4, 5, 6}}
	buf := make([]byte, 4)
	n, err := img.ReadAt(buf, 3)
	if n != 3 || err != io.EOF {
		t.Fatalf("ReadAt short: n=%d err=%v", n, err)
	}
	if buf[0] != 4 || buf[2] != 6 {
		t.Errorf("wrong data %v", buf[:n])
	}
	row, err := ImageRow(make([]byte, 6), img, 0)
	if err != nil {
		t.Fatalf("ImageRow: %v", err)
	}
	if &row[0] != &img.Pix[0] {
		t.Error("ImageRow should return a view into buffered images")
	}
}

func TestRGBCloneEqual(t *testing.T) {
	img := &RGB{Width: 1, Height: 2, MaxVal: 200, Pix: []byte{1, 2, 3, 4, 5, 6}}
	cp := img.Clone()
	if !img.Equal(cp) {
		t.Fatal("clone differs from original")
	}
	cp.Pix[5] = 0
	if img.Equal(cp) {
		t.Fatal("clone shares storage with original")
	}
	if r, g, b := img.At(0, 1); r != 4 || g != 5 || b != 6 {
		t.Errorf("At(0,1) = %d,%d,%d", r, g, b)
	}
}
