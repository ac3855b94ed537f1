package inflate

import (
	"fmt"
	"sync"
)

// huffmanTable decodes a canonical prefix code (RFC 1951 section 3.2.2).
// Codes are assigned in order of increasing length, then increasing symbol;
// count and symbol hold exactly that ordering so the code of each symbol is implicit.
//
// A table is empty (no symbols), a single symbol with any code length, or a complete
// prefix code. Over-subscribed and other incomplete length sets are rejected by init.
type huffmanTable struct {
	count  [maxCodeLen + 1]uint16 // Number of codes of each length.
	symbol []uint16               // Symbols ordered by code.
	maxLen uint                   // Longest code length, 0 for an empty table.
}

// huffmanCursor is the in-progress state of one symbol decode, kept across Update calls.
type huffmanCursor struct {
	code   int  // Bits matched so far, first bit most significant.
	first  int  // First code of the current length.
	index  int  // Index in symbol of the first code of the current length.
	length uint // Bits matched so far.
}

// init builds the table from per-symbol code lengths. A zero length means the symbol is unused.
func (h *huffmanTable) init(lengths []uint8) error {
	var count [maxCodeLen + 1]int
	maxLen := 0
	for _, n := range lengths {
		if int(n) > maxCodeLen {
			return fmt.Errorf("%w: code length %d", ErrInvalidHuffmanTable, n)
		}
		count[n]++
		if int(n) > maxLen {
			maxLen = int(n)
		}
	}

	h.count = [maxCodeLen + 1]uint16{}
	h.symbol = h.symbol[:0]
	h.maxLen = 0

	used := len(lengths) - count[0]
	if used == 0 {
		return nil
	}

	// Unassigned code space at the deepest length; negative means over-subscribed.
	left := 1
	for l := 1; l <= maxCodeLen; l++ {
		left <<= 1
		left -= count[l]
		if left < 0 {
			return fmt.Errorf("%w: over-subscribed at length %d", ErrInvalidHuffmanTable, l)
		}
	}
	if left > 0 && used != 1 {
		return fmt.Errorf("%w: incomplete code with %d symbols", ErrInvalidHuffmanTable, used)
	}

	var offs [maxCodeLen + 2]int
	for l := 1; l <= maxCodeLen; l++ {
		h.count[l] = uint16(count[l]) // #nosec G115 -- bounded by len(lengths) <= numFixedLit
		offs[l+1] = offs[l] + count[l]
	}

	if cap(h.symbol) < used {
		h.symbol = make([]uint16, used)
	}
	h.symbol = h.symbol[:used]
	for sym, n := range lengths {
		if n != 0 {
			h.symbol[offs[n]] = uint16(sym) // #nosec G115 -- at most numFixedLit symbols
			offs[n]++
		}
	}
	h.maxLen = uint(maxLen)

	return nil
}

// decode reads one bit at a time until a code matches. It returns ok=false when the
// input runs dry; cur then holds the matched prefix and the next call continues from it.
func (h *huffmanTable) decode(br *bitReader, cur *huffmanCursor) (sym int, ok bool, err error) {
	if h.maxLen == 0 {
		return 0, true, fmt.Errorf("%w: empty table", ErrInvalidCode)
	}

	for {
		b, more := br.take(1)
		if !more {
			return 0, false, nil
		}

		cur.length++
		cur.code |= int(b)
		count := int(h.count[cur.length])
		if cur.code-count < cur.first {
			sym = int(h.symbol[cur.index+cur.code-cur.first])
			*cur = huffmanCursor{}
			return sym, true, nil
		}

		if cur.length >= h.maxLen {
			*cur = huffmanCursor{}
			return 0, true, ErrInvalidCode
		}
		cur.index += count
		cur.first += count
		cur.first <<= 1
		cur.code <<= 1
	}
}

// Fixed tables are built once on first use and shared by every Engine.
var (
	fixedOnce    sync.Once
	fixedLitLen  huffmanTable
	fixedDistTbl huffmanTable
)

// fixedTables returns the literal/length and distance tables of RFC 1951 section 3.2.6.
func fixedTables() (*huffmanTable, *huffmanTable) {
	fixedOnce.Do(func() {
		var lengths [numFixedLit]uint8
		for i := 0; i < 144; i++ {
			lengths[i] = 8
		}
		for i := 144; i < 256; i++ {
			lengths[i] = 9
		}
		for i := 256; i < 280; i++ {
			lengths[i] = 7
		}
		for i := 280; i < numFixedLit; i++ {
			lengths[i] = 8
		}
		if err := fixedLitLen.init(lengths[:]); err != nil {
			panic(err)
		}

		var dist [numFixedDist]uint8
		for i := range dist {
			dist[i] = 5
		}
		if err := fixedDistTbl.init(dist[:]); err != nil {
			panic(err)
		}
	})

	return &fixedLitLen, &fixedDistTbl
}
