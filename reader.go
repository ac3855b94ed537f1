package inflate

import (
	"bufio"
	"errors"
	"io"
)

// Reader decompresses a stream pulled from an io.Reader. It feeds buffered compressed
// bytes to an Engine and hands out output that did not fit a previous Read first.
type Reader struct {
	src     *bufio.Reader // Compressed input; Peek and Discard expose its buffer.
	owned   bool          // src was allocated by Reader and may be re-targeted by Reset.
	engine  *Engine
	pending []byte // Output of the last Update not yet copied out.
	err     error  // Sticky error after pending is drained.

	totalIn  int64
	totalOut int64
}

// NewReader returns a Reader decoding from r. Nil opts means DefaultOptions.
// If r is a *bufio.Reader it is used directly and never read past the stream end
// by more than its own buffering.
func NewReader(r io.Reader, opts *Options) *Reader {
	zr := &Reader{engine: NewWithOptions(opts)}
	zr.setSource(r)

	return zr
}

func (z *Reader) setSource(r io.Reader) {
	switch src := r.(type) {
	case nil:
		z.src = nil
	case *bufio.Reader:
		z.src, z.owned = src, false
	default:
		if z.owned && z.src != nil {
			z.src.Reset(r)
		} else {
			z.src, z.owned = bufio.NewReader(r), true
		}
	}
}

// Read implements io.Reader. It returns io.EOF after the end of the stream and
// ErrUnexpectedEOF when the source ends first. A decode error is returned once
// all output produced before it has been read.
func (z *Reader) Read(p []byte) (int, error) {
	if z.src == nil {
		return 0, ErrNilReader
	}

	for {
		if len(z.pending) > 0 {
			n := copy(p, z.pending)
			z.pending = z.pending[n:]
			z.totalOut += int64(n)
			return n, nil
		}
		if z.err != nil {
			return 0, z.err
		}
		if z.engine.Done() {
			return 0, io.EOF
		}
		if len(p) == 0 {
			return 0, nil
		}

		z.err = z.fill()
	}
}

// fill runs one Update over whatever the source has buffered, reading from
// upstream only when the Engine could not progress without more input.
func (z *Reader) fill() error {
	input, _ := z.src.Peek(z.src.Buffered())
	n, out, err := z.engine.Update(input)
	if _, derr := z.src.Discard(n); derr != nil && err == nil {
		err = derr
	}
	z.totalIn += int64(n)
	z.pending = out
	if err != nil {
		return err
	}

	if n == 0 && len(out) == 0 && !z.engine.Done() {
		if _, perr := z.src.Peek(1); perr != nil {
			if errors.Is(perr, io.EOF) {
				return ErrUnexpectedEOF
			}
			return perr
		}
	}

	return nil
}

// Reset discards decode state and pending output and continues with r as the source.
func (z *Reader) Reset(r io.Reader) {
	z.setSource(r)
	z.ResetData()
}

// ResetData discards decode state and pending output but keeps reading from the same source.
func (z *Reader) ResetData() {
	z.engine.Reset()
	z.pending = nil
	z.err = nil
}

// TotalIn returns the compressed bytes consumed from the source.
func (z *Reader) TotalIn() int64 {
	return z.totalIn
}

// TotalOut returns the decompressed bytes returned by Read.
func (z *Reader) TotalOut() int64 {
	return z.totalOut
}

// Engine returns the underlying Engine, for Checksum or Done queries.
func (z *Reader) Engine() *Engine {
	return z.engine
}
