package inflate

import (
	"fmt"
	"io"
)

// Decode decompresses a complete raw DEFLATE stream.
// Bytes after the end of the stream are an error; use DecodePrefix to ignore them.
func Decode(src []byte) ([]byte, error) {
	return decodeAll(src, DefaultOptions())
}

// DecodeZlib decompresses a complete zlib stream and verifies its Adler-32 trailer.
func DecodeZlib(src []byte) ([]byte, error) {
	return decodeAll(src, ZlibOptions())
}

// DecodeWithOptions decompresses a complete stream described by opts. Nil opts means DefaultOptions.
func DecodeWithOptions(src []byte, opts *Options) ([]byte, error) {
	return decodeAll(src, opts)
}

func decodeAll(src []byte, opts *Options) ([]byte, error) {
	if len(src) == 0 {
		return nil, ErrEmptyInput
	}

	out, consumed, err := DecodePrefix(src, opts)
	if err != nil {
		return nil, err
	}

	if consumed != len(src) {
		return nil, fmt.Errorf("%w: consumed=%d input=%d", ErrTrailingData, consumed, len(src))
	}

	return out, nil
}

// DecodePrefix decompresses one stream from the beginning of src.
// It returns decompressed bytes and the number of consumed bytes (header, payload and trailer).
// Unlike Decode, this function ignores trailing bytes after the stream.
func DecodePrefix(src []byte, opts *Options) ([]byte, int, error) {
	e := NewWithOptions(opts)
	out := make([]byte, 0, len(src)*3)
	pos := 0

	// Loop Update to exhaustion; a call without progress means the input ended early.
	for {
		n, chunk, err := e.Update(src[pos:])
		pos += n
		out = append(out, chunk...)
		if err != nil {
			return nil, pos, err
		}
		if e.Done() {
			return out, pos, nil
		}
		if n == 0 && len(chunk) == 0 {
			return nil, pos, fmt.Errorf("%w: stopped in %s after %d bytes", ErrUnexpectedEOF, e.step, pos)
		}
	}
}

// DecodeFromReader decompresses one stream from r and returns consumed bytes.
// When r is a *bufio.Reader, bytes after the stream stay buffered in it for the caller.
func DecodeFromReader(r io.Reader, opts *Options) ([]byte, int64, error) {
	if r == nil {
		return nil, 0, ErrNilReader
	}

	zr := NewReader(r, opts)
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, zr.TotalIn(), err
	}

	return out, zr.TotalIn(), nil
}
