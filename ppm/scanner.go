package ppm

import (
	"bufio"
	"errors"
	"io"
	"strconv"
)

// maxDigits bounds a header token; larger values cannot describe a real image.
const maxDigits = 10

// headerScanner tokenizes the text header one byte at a time over a buffered
// reader. It only consumes a byte after peeking at it, so it never reads
// past the single separator that precedes the pixel data.
type headerScanner struct {
	r *bufio.Reader
}

func (s *headerScanner) peek() (byte, error) {
	b, err := s.r.Peek(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (s *headerScanner) consume() {
	s.r.Discard(1)
}

// skipFiller consumes whitespace and comments. A comment runs from '#' to the
// end of the line, newline included.
func (s *headerScanner) skipFiller() error {
	for {
		c, err := s.peek()
		if err != nil {
			return err
		}
		switch {
		case c == '#':
			if err := s.skipComment(); err != nil {
				return err
			}
		case isSpace(c):
			s.consume()
		default:
			return nil
		}
	}
}

func (s *headerScanner) skipComment() error {
	for {
		c, err := s.r.ReadByte()
		if err != nil {
			return err
		}
		if c == '\n' {
			return nil
		}
	}
}

// positive reads the next header token as a decimal integer greater than zero.
func (s *headerScanner) positive(name string) (int, error) {
	err := s.skipFiller()
	if errors.Is(err, io.EOF) {
		return 0, formatErr("missing %s", name)
	} else if err != nil {
		return 0, ioErr("read header", err)
	}

	var tok []byte
	for {
		c, err := s.peek()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return 0, ioErr("read header", err)
		}
		if isSpace(c) || c == '#' {
			break
		}
		if len(tok) == maxDigits {
			return 0, formatErr("%s %q... too long", name, tok)
		}
		tok = append(tok, c)
		s.consume()
	}

	n, err := strconv.Atoi(string(tok))
	if err != nil {
		return 0, formatErr("%s %q is not a decimal integer", name, tok)
	}
	if n <= 0 {
		return 0, formatErr("%s must be positive, got %d", name, n)
	}
	return n, nil
}

// separator consumes the single whitespace byte between header and pixel data.
func (s *headerScanner) separator() error {
	c, err := s.peek()
	if errors.Is(err, io.EOF) {
		return ErrTruncated
	} else if err != nil {
		return ioErr("read header", err)
	}
	if !isSpace(c) {
		return formatErr("expected whitespace before pixel data, got %q", c)
	}
	s.consume()
	return nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
