package inflate

import "math/bits"

// bitWriter packs LSB-first bit fields the way a DEFLATE encoder does.
// Tests use it to hand-build streams, mostly malformed ones no encoder would emit.
type bitWriter struct {
	out []byte
	acc uint64
	nb  uint
}

func (w *bitWriter) bits(v uint32, n uint) {
	w.acc |= uint64(v) << w.nb
	w.nb += n
	for w.nb >= 8 {
		w.out = append(w.out, byte(w.acc))
		w.acc >>= 8
		w.nb -= 8
	}
}

// code writes a huffman code, most significant bit first.
func (w *bitWriter) code(c uint32, n uint) {
	if n == 0 {
		return
	}
	w.bits(bits.Reverse32(c)>>(32-n), n)
}

func (w *bitWriter) align() {
	if w.nb > 0 {
		w.bits(0, 8-w.nb)
	}
}

func (w *bitWriter) raw(p []byte) {
	w.align()
	w.out = append(w.out, p...)
}

func (w *bitWriter) bytes() []byte {
	w.align()
	return w.out
}

// fixedLit writes a literal/length symbol with the fixed table of RFC 1951 section 3.2.6.
func (w *bitWriter) fixedLit(sym int) {
	switch {
	case sym < 144:
		w.code(uint32(0x30+sym), 8)
	case sym < 256:
		w.code(uint32(0x190+sym-144), 9)
	case sym < 280:
		w.code(uint32(sym-256), 7)
	default:
		w.code(uint32(0xC0+sym-280), 8)
	}
}

// blockHeader writes BFINAL and BTYPE.
func (w *bitWriter) blockHeader(final bool, typ uint32) {
	var f uint32
	if final {
		f = 1
	}
	w.bits(f, 1)
	w.bits(typ, 2)
}

// dynamicHeader writes a final dynamic block header with the given code-length code lengths.
func (w *bitWriter) dynamicHeader(nlit, ndist int, clens map[int]uint32) {
	nclen := 4
	for i, sym := range codeOrder {
		if clens[int(sym)] != 0 && i+1 > nclen {
			nclen = i + 1
		}
	}

	w.blockHeader(true, blockDynamic)
	w.bits(uint32(nlit-257), 5)
	w.bits(uint32(ndist-1), 5)
	w.bits(uint32(nclen-4), 4)
	for i := 0; i < nclen; i++ {
		w.bits(clens[int(codeOrder[i])], 3)
	}
}

// degenerateDynamicStream is a final dynamic block whose distance table has a single
// one-bit code. Literal 'a' is code 0, end of block 10, length 3 is 11. Decodes to "aaaa".
func degenerateDynamicStream() []byte {
	var w bitWriter
	// Code-length codes: 1 -> 0, 2 -> 10, 18 -> 11.
	w.dynamicHeader(258, 1, map[int]uint32{1: 1, 2: 2, 18: 2})
	w.code(3, 2)
	w.bits(97-11, 7) // 97 zeros
	w.code(0, 1)     // 'a' has length 1
	w.code(3, 2)
	w.bits(127, 7) // 138 zeros
	w.code(3, 2)
	w.bits(9, 7) // 20 zeros, up to 255
	w.code(2, 2) // 256 has length 2
	w.code(2, 2) // 257 has length 2
	w.code(0, 1) // distance 0 has length 1
	w.code(0, 1) // 'a'
	w.code(3, 2) // length 3
	w.code(0, 1) // distance 1
	w.code(2, 2) // end of block

	return w.bytes()
}
