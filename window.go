package inflate

import "fmt"

// window is the LZ77 sliding history and, at the same time, the buffer Update returns
// output from. Writes stop at the end of buf; drain hands out the unread run and wraps
// the cursor, so bytes are never overwritten before the caller has seen them.
type window struct {
	buf   []byte
	wrPos int  // Next write position.
	rdPos int  // buf[rdPos:wrPos] has not been drained yet.
	full  bool // Cursor has wrapped at least once; all of buf is history.
}

func newWindow(size int) window {
	return window{buf: make([]byte, size)}
}

// histSize reports how many bytes back-references may reach.
func (w *window) histSize() int {
	if w.full {
		return len(w.buf)
	}

	return w.wrPos
}

// availWrite reports how many bytes fit before the next drain is required.
func (w *window) availWrite() int {
	return len(w.buf) - w.wrPos
}

// emitLiteral writes one byte. This invariant must be kept: availWrite() > 0.
func (w *window) emitLiteral(c byte) {
	w.buf[w.wrPos] = c
	w.wrPos++
}

// emitCopy copies up to length bytes from dist bytes behind the cursor and returns how
// many were written; fewer than length means the window must be drained first.
// Overlapping copies (dist < length) repeat the bytes just written.
func (w *window) emitCopy(dist, length int) (int, error) {
	if dist <= 0 || dist > w.histSize() {
		return 0, fmt.Errorf("%w: distance=%d history=%d", ErrInvalidDistance, dist, w.histSize())
	}

	n := min(length, w.availWrite())
	src := w.wrPos - dist
	if src < 0 {
		src += len(w.buf)
	}
	for i := 0; i < n; i++ {
		w.buf[w.wrPos] = w.buf[src]
		w.wrPos++
		src++
		if src == len(w.buf) {
			src = 0
		}
	}

	return n, nil
}

// writeSlice returns the free space for bulk writes; writeMark commits cnt of it.
func (w *window) writeSlice() []byte {
	return w.buf[w.wrPos:]
}

func (w *window) writeMark(cnt int) {
	w.wrPos += cnt
}

// drain returns the bytes written since the previous drain. The slice stays valid
// until the next write. When the cursor reached the end of buf it wraps to the start.
func (w *window) drain() []byte {
	out := w.buf[w.rdPos:w.wrPos]
	w.rdPos = w.wrPos
	if w.wrPos == len(w.buf) {
		w.wrPos, w.rdPos = 0, 0
		w.full = true
	}

	return out
}

// reset forgets all history and keeps the allocation.
func (w *window) reset() {
	w.wrPos, w.rdPos = 0, 0
	w.full = false
}
