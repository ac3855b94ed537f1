package inflate

// DEFLATE (RFC 1951) and zlib (RFC 1950) format constants.
const (
	WindowSize = 1 << 15 // Sliding window size; also the largest back-reference distance.
	MinMatch   = 3       // Shortest back-reference length.
	MaxMatch   = 258     // Longest back-reference length.

	maxCodeLen     = 15  // Longest huffman code in any DEFLATE table.
	maxNumLit      = 286 // Literal/length symbols that may appear in a valid stream.
	maxNumDist     = 30  // Distance symbols that may appear in a valid stream.
	numCodes       = 19  // Symbols of the code-length alphabet.
	numFixedLit    = 288 // Fixed literal/length table includes the two unused codes 286 and 287.
	numFixedDist   = 32  // Fixed distance table includes the two unused codes 30 and 31.
	endBlockMarker = 256

	zlibMethodDeflate = 8
	zlibMaxWindowLog  = 7 // CINFO; window is 1<<(CINFO+8).
	zlibFlagDict      = 0x20
	zlibTrailerSize   = 4
)

// Block types from the 2-bit BTYPE header field.
const (
	blockStored  = 0
	blockFixed   = 1
	blockDynamic = 2
)

// codeOrder is the order code-length code lengths are transmitted in (RFC 1951 section 3.2.7).
var codeOrder = [numCodes]uint8{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// Length codes 257..285: base length and extra bit count (RFC 1951 section 3.2.5).
var (
	lengthBase = [maxNumLit - 257]uint16{
		3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
		35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
	}
	lengthExtra = [maxNumLit - 257]uint8{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
	}
)

// Distance codes 0..29: base distance and extra bit count.
var (
	distBase = [maxNumDist]uint16{
		1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
		257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
	}
	distExtra = [maxNumDist]uint8{
		0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
		7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	}
)
