/*
Package inflate implements incremental DEFLATE (RFC 1951) decompression with an optional zlib envelope (RFC 1950).

The Engine is a resumable state machine. Compressed bytes are pushed in chunks of any size,
split anywhere, even inside a Huffman code or the zlib trailer; each Update returns how many
bytes were retired and the output produced so far. Nothing blocks and nothing is read ahead.
Sliding window: 32 KiB, shared between back-reference history and returned output, so one
Update returns at most the run up to the end of the window.
zlib mode: 2-byte header check, Adler-32 over all output, 4-byte big-endian trailer.

Use New or NewZlib for an Engine and drive it with Update.
Use Decode or DecodeZlib to decompress a complete buffer.
Use DecodePrefix to decode one stream from the beginning of src and get consumed bytes.
Use NewReader for an io.Reader over a compressed source.
Use DecodeFromReader to decode one stream from r without reading past it (given a *bufio.Reader).
Use ZlibLenientOptions() for zlib data with unreliable checksums.

# Examples

Decompress a complete zlib buffer:

	out, err := inflate.DecodeZlib(encoded)
	if err != nil {
		return err
	}

Push chunks as they arrive; Update again until a call neither consumes nor produces,
since a call that fills the window returns early:

	e := inflate.New()
	for chunk := range chunks {
		for {
			n, out, err := e.Update(chunk)
			w.Write(out)
			if err != nil {
				return err
			}
			if n == 0 && len(out) == 0 {
				break
			}
			chunk = chunk[n:]
		}
	}
	if !e.Done() {
		return inflate.ErrUnexpectedEOF
	}

Stream through io.Reader:

	zr := inflate.NewReader(f, inflate.ZlibOptions())
	if _, err := io.Copy(dst, zr); err != nil {
		return err
	}
	_ = zr.TotalIn()

Decode one raw stream and continue after it:

	out, consumed, err := inflate.DecodePrefix(src, nil)
	if err != nil {
		return err
	}
	rest := src[consumed:]

Errors are sentinels and may be wrapped with details; test with errors.Is:

	if errors.Is(err, inflate.ErrChecksumMismatch) {
		// output returned so far is still valid
	}
*/
package inflate
