package ppm

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/soypat/rawpix"
)

// ZstdExt marks paths holding a zstd compressed PPM stream.
const ZstdExt = ".zst"

// Load decodes the image stored at path, decompressing it if path ends in [ZstdExt].
func Load(path string) (*rawpix.RGB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioErr("open", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ZstdExt) {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, ioErr("zstd reader", err)
		}
		defer zr.Close()
		r = zr
	}
	return Decode(r)
}

// Save encodes img to path, truncating any existing file. Paths ending in
// [ZstdExt] are zstd compressed. On failure the file contents are undefined.
func Save(path string, img *rawpix.RGB) (err error) {
	if err := img.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return ioErr("create", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = ioErr("close", cerr)
		}
	}()

	if !strings.HasSuffix(path, ZstdExt) {
		return Encode(f, img)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		return ioErr("zstd writer", err)
	}
	if err := Encode(zw, img); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return ioErr("zstd close", err)
	}
	return nil
}
