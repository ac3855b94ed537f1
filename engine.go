// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/inflate

package inflate

import (
	"io"

	"github.com/sirupsen/logrus"
)

// step is the resumable checkpoint of the decoder. Exactly one is active; every
// suspension point of the block state machine has its own value.
type step int

const (
	stepZlibHeader        step = iota // Awaiting the 2-byte zlib header.
	stepBlockHeader                   // Awaiting BFINAL and BTYPE.
	stepStoredHeader                  // Stored block: awaiting LEN and NLEN.
	stepStoredCopy                    // Stored block: copying storedLeft raw bytes.
	stepDynamicHeader                 // Dynamic block: awaiting HLIT, HDIST, HCLEN.
	stepCodeLengthLengths             // Dynamic block: reading 3-bit code-length code lengths.
	stepCodeLengths                   // Dynamic block: decoding literal/length and distance code lengths.
	stepCodeLengthRepeat              // Dynamic block: awaiting extra bits of symbol 16, 17 or 18.
	stepLiteral                       // Huffman block: decoding a literal/length symbol.
	stepLengthExtra                   // Huffman block: awaiting length extra bits.
	stepDistance                      // Huffman block: decoding a distance symbol.
	stepDistanceExtra                 // Huffman block: awaiting distance extra bits.
	stepCopy                          // Copying the rest of a back-reference.
	stepChecksum                      // Collecting the zlib trailer.
	stepVerify                        // Trailer complete, compared once the output is hashed.
	stepDone                          // End of stream.
	stepFailed                        // Terminal error.
)

var stepNames = [...]string{
	stepZlibHeader:        "zlib-header",
	stepBlockHeader:       "block-header",
	stepStoredHeader:      "stored-header",
	stepStoredCopy:        "stored-copy",
	stepDynamicHeader:     "dynamic-header",
	stepCodeLengthLengths: "code-length-lengths",
	stepCodeLengths:       "code-lengths",
	stepCodeLengthRepeat:  "code-length-repeat",
	stepLiteral:           "literal",
	stepLengthExtra:       "length-extra",
	stepDistance:          "distance",
	stepDistanceExtra:     "distance-extra",
	stepCopy:              "copy",
	stepChecksum:          "checksum",
	stepVerify:            "verify",
	stepDone:              "done",
	stepFailed:            "failed",
}

func (s step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "unknown"
	}

	return stepNames[s]
}

// Engine is an incremental DEFLATE decoder. Feed it compressed bytes in chunks of any
// size with Update; it never blocks and never reads ahead of what it was given.
// An Engine is not safe for concurrent use.
type Engine struct {
	opts  Options
	log   *logrus.Entry
	debug bool

	br   bitReader
	win  window
	sum  checksum
	step step
	err  error

	final bool // BFINAL of the current block.

	storedLeft int

	nlit, ndist, nclen int
	lenIdx             int
	repeatSym          int
	clLens             [numCodes]uint8
	lengths            [maxNumLit + maxNumDist]uint8
	clTable            huffmanTable
	litTable           huffmanTable
	distTable          huffmanTable

	hl, hd   *huffmanTable // Tables of the current Huffman block.
	cur      huffmanCursor
	lenSym   int
	distSym  int
	copyLen  int
	copyDist int

	totalIn  int64
	totalOut int64
}

// New returns an Engine for raw DEFLATE streams.
func New() *Engine {
	return NewWithOptions(DefaultOptions())
}

// NewZlib returns an Engine for zlib streams with strict Adler-32 verification.
func NewZlib() *Engine {
	return NewWithOptions(ZlibOptions())
}

// NewWithOptions returns an Engine configured by opts. Nil opts means DefaultOptions.
func NewWithOptions(opts *Options) *Engine {
	if opts == nil {
		opts = DefaultOptions()
	}

	e := &Engine{
		opts: *opts,
		win:  newWindow(WindowSize),
		sum:  newChecksum(opts.Format),
	}

	logger := opts.Logger
	if logger == nil {
		logger = discardLogger
	}
	e.log = logger.WithField("pkg", "inflate")
	e.debug = logger.IsLevelEnabled(logrus.DebugLevel)

	e.Reset()

	return e
}

var discardLogger = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

// Reset returns the Engine to its initial state for a new stream, keeping its buffers.
func (e *Engine) Reset() {
	e.br.reset()
	e.win.reset()
	e.sum.reset()
	e.err = nil
	e.final = false
	e.cur = huffmanCursor{}
	e.copyLen, e.copyDist = 0, 0
	e.totalIn, e.totalOut = 0, 0

	if e.opts.Format == FormatZlib {
		e.step = stepZlibHeader
	} else {
		e.step = stepBlockHeader
	}
}

// Update decodes as much as possible from input. It returns how many input bytes were
// retired and the output produced by this call, which stays valid until the next call
// to Update or Reset. Input that was not consumed must be passed again.
//
// Running out of input is not an error: the Engine keeps its position, including bits
// of a partly read field, and continues on the next call. Output is returned in runs
// of at most WindowSize bytes; a call that fills the window returns early and the rest
// comes from the following calls. Output produced before an error is still returned
// together with it. Every call after an error returns the same error.
func (e *Engine) Update(input []byte) (int, []byte, error) {
	if e.err != nil {
		return 0, nil, e.err
	}
	if e.step == stepDone {
		return 0, nil, nil
	}

	e.br.setInput(input)
	err := e.run()
	consumed := e.br.bytesConsumed()
	e.br.setInput(nil)

	out := e.win.drain()
	e.sum.update(out)
	e.totalIn += int64(consumed)
	e.totalOut += int64(len(out))

	if err == nil && e.step == stepVerify {
		err = e.verify()
	}
	if err != nil {
		e.fail(err)
	}

	return consumed, out, err
}

// Done reports whether the end of the stream (and of the zlib trailer) was reached.
func (e *Engine) Done() bool {
	return e.step == stepDone
}

// Err returns the error that stopped the Engine, if any.
func (e *Engine) Err() error {
	return e.err
}

// Format returns the envelope the Engine expects.
func (e *Engine) Format() Format {
	return e.opts.Format
}

// TotalIn returns the compressed bytes consumed since creation or the last Reset.
func (e *Engine) TotalIn() int64 {
	return e.totalIn
}

// TotalOut returns the bytes produced since creation or the last Reset.
func (e *Engine) TotalOut() int64 {
	return e.totalOut
}

// Checksum returns the running Adler-32 of the output in zlib mode, 0 otherwise.
func (e *Engine) Checksum() uint32 {
	return e.sum.value()
}

func (e *Engine) verify() error {
	err := e.sum.verify()
	if err != nil && !e.opts.VerifyChecksum {
		e.log.WithError(err).Warn("ignoring checksum mismatch")
		err = nil
	}
	if err == nil {
		e.step = stepDone
		if e.debug {
			e.log.WithFields(logrus.Fields{
				"in":       e.totalIn,
				"out":      e.totalOut,
				"checksum": e.sum.value(),
			}).Debug("end of stream")
		}
	}

	return err
}

func (e *Engine) fail(err error) {
	if e.debug {
		e.log.WithFields(logrus.Fields{
			"step": e.step.String(),
			"in":   e.totalIn,
			"out":  e.totalOut,
		}).WithError(err).Debug("decode failed")
	}
	e.step = stepFailed
	e.err = err
}
