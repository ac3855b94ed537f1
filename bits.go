package inflate

// bitReader extracts LSB-first bit fields from the chunk passed to the current Update call.
// Input bytes move into acc only while a field still needs bits, so after every
// successful take fewer than 8 unread bits stay buffered. A starved take leaves the
// moved bytes in acc; they count as consumed and are used by the retry.
type bitReader struct {
	in  []byte // Chunk of the current Update call.
	pos int    // Bytes of in already moved into acc or copied out.
	acc uint64 // Buffered bits, next bit in the lowest position.
	nb  uint   // Number of valid bits in acc.
}

// setInput installs the chunk for the next round of reads. Buffered bits carry over.
func (br *bitReader) setInput(in []byte) {
	br.in = in
	br.pos = 0
}

// take returns the next n bits (n <= 32), first bit in the least significant position.
// It reports false when the chunk runs out before n bits are available; nothing is lost.
func (br *bitReader) take(n uint) (uint32, bool) {
	for br.nb < n {
		if br.pos >= len(br.in) {
			return 0, false
		}
		br.acc |= uint64(br.in[br.pos]) << br.nb
		br.pos++
		br.nb += 8
	}

	v := uint32(br.acc & (1<<n - 1))
	br.acc >>= n
	br.nb -= n

	return v, true
}

// alignToByte drops the bits left over from a partially read byte.
func (br *bitReader) alignToByte() {
	drop := br.nb % 8
	br.acc >>= drop
	br.nb -= drop
}

// copyBytes fills dst with whole bytes from a byte-aligned position and returns the count copied.
func (br *bitReader) copyBytes(dst []byte) int {
	n := 0
	for n < len(dst) && br.nb >= 8 {
		dst[n] = byte(br.acc)
		br.acc >>= 8
		br.nb -= 8
		n++
	}

	m := copy(dst[n:], br.in[br.pos:])
	br.pos += m

	return n + m
}

// bytesConsumed reports how many bytes of the current chunk have been retired.
func (br *bitReader) bytesConsumed() int {
	return br.pos
}

// reset drops all buffered bits and the current chunk.
func (br *bitReader) reset() {
	*br = bitReader{}
}
