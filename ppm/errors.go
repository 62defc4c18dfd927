package ppm

import (
	"errors"
	"fmt"
)

// Every error returned by this package wraps exactly one of these; match with [errors.Is].
var (
	// ErrFormat reports a bad magic, a missing or invalid header value,
	// or a buffer that cannot be encoded.
	ErrFormat = errors.New("ppm: format error")
	// ErrTruncated reports fewer pixel bytes than the header declares.
	ErrTruncated = errors.New("ppm: truncated pixel data")
	// ErrResource reports an image too large to allocate.
	ErrResource = errors.New("ppm: resource exhausted")
	// ErrIO reports a failure of the underlying stream or file.
	ErrIO = errors.New("ppm: i/o error")
)

func formatErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrFormat}, args...)...)
}

func ioErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}
