package inflate

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/adler32"
)

// checksum accumulates Adler-32 over produced output and checks it against the zlib trailer.
// A zero checksum (nil hash) is used for raw streams and accepts anything.
type checksum struct {
	h       hash.Hash32
	trailer [zlibTrailerSize]byte // Trailer bytes collected so far.
	n       int                   // Number of valid bytes in trailer.
}

func newChecksum(format Format) checksum {
	if format == FormatZlib {
		return checksum{h: adler32.New()}
	}

	return checksum{}
}

// update adds one drained output chunk.
func (c *checksum) update(out []byte) {
	if c.h == nil || len(out) == 0 {
		return
	}
	_, _ = c.h.Write(out)
}

// collect appends one trailer byte and reports whether the trailer is complete.
func (c *checksum) collect(b byte) bool {
	c.trailer[c.n] = b
	c.n++

	return c.n == zlibTrailerSize
}

// value returns the running Adler-32, or 0 for raw streams.
func (c *checksum) value() uint32 {
	if c.h == nil {
		return 0
	}

	return c.h.Sum32()
}

// verify compares the running checksum with the big-endian trailer.
func (c *checksum) verify() error {
	if c.h == nil {
		return nil
	}

	want := binary.BigEndian.Uint32(c.trailer[:])
	if got := c.h.Sum32(); got != want {
		return fmt.Errorf("%w: got=0x%08x expected=0x%08x", ErrChecksumMismatch, got, want)
	}

	return nil
}

func (c *checksum) reset() {
	if c.h != nil {
		c.h.Reset()
	}
	c.n = 0
}

// checkZlibHeader validates CMF and FLG (RFC 1950 section 2.2).
func checkZlibHeader(cmf, flg byte) error {
	switch {
	case cmf&0x0F != zlibMethodDeflate:
		return fmt.Errorf("%w: compression method %d", ErrInvalidZlibHeader, cmf&0x0F)
	case cmf>>4 > zlibMaxWindowLog:
		return fmt.Errorf("%w: window log %d", ErrInvalidZlibHeader, cmf>>4+8)
	case (uint16(cmf)<<8|uint16(flg))%31 != 0:
		return fmt.Errorf("%w: check bits cmf=0x%02x flg=0x%02x", ErrInvalidZlibHeader, cmf, flg)
	case flg&zlibFlagDict != 0:
		return fmt.Errorf("%w: preset dictionary not supported", ErrInvalidZlibHeader)
	}

	return nil
}
