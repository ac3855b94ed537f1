package inflate

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// run advances the state machine until input runs out, the window needs draining,
// the stream ends, or a decode error occurs. Each step returns more=false to suspend.
func (e *Engine) run() error {
	for {
		var (
			more bool
			err  error
		)

		switch e.step {
		case stepZlibHeader:
			more, err = e.zlibHeader()
		case stepBlockHeader:
			more, err = e.blockHeader()
		case stepStoredHeader:
			more, err = e.storedHeader()
		case stepStoredCopy:
			more = e.storedCopy()
		case stepDynamicHeader:
			more, err = e.dynamicHeader()
		case stepCodeLengthLengths:
			more, err = e.codeLengthLengths()
		case stepCodeLengths:
			more, err = e.codeLengths()
		case stepCodeLengthRepeat:
			more, err = e.codeLengthRepeat()
		case stepLiteral:
			more, err = e.literal()
		case stepLengthExtra:
			more = e.lengthExtra()
		case stepDistance:
			more, err = e.distance()
		case stepDistanceExtra:
			more, err = e.distanceExtra()
		case stepCopy:
			more, err = e.copyBackreference()
		case stepChecksum:
			more = e.trailer()
		default:
			return nil
		}

		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (e *Engine) zlibHeader() (bool, error) {
	v, ok := e.br.take(16)
	if !ok {
		return false, nil
	}

	cmf, flg := byte(v), byte(v>>8)
	if err := checkZlibHeader(cmf, flg); err != nil {
		return false, err
	}
	if e.debug {
		e.log.WithFields(logrus.Fields{
			"cmf":    fmt.Sprintf("0x%02x", cmf),
			"flg":    fmt.Sprintf("0x%02x", flg),
			"window": 1 << (cmf>>4 + 8),
		}).Debug("zlib header")
	}
	e.step = stepBlockHeader

	return true, nil
}

func (e *Engine) blockHeader() (bool, error) {
	v, ok := e.br.take(3)
	if !ok {
		return false, nil
	}

	e.final = v&1 == 1
	typ := v >> 1
	if e.debug {
		e.log.WithFields(logrus.Fields{
			"final": e.final,
			"type":  typ,
			"out":   e.totalOut + int64(e.win.wrPos-e.win.rdPos),
		}).Debug("block header")
	}

	switch typ {
	case blockStored:
		e.br.alignToByte()
		e.step = stepStoredHeader
	case blockFixed:
		e.hl, e.hd = fixedTables()
		e.step = stepLiteral
	case blockDynamic:
		e.step = stepDynamicHeader
	default:
		return false, fmt.Errorf("%w: %d", ErrInvalidBlockType, typ)
	}

	return true, nil
}

// endBlock moves past a block terminator to the next header or the stream end.
func (e *Engine) endBlock() {
	switch {
	case !e.final:
		e.step = stepBlockHeader
	case e.opts.Format == FormatZlib:
		e.br.alignToByte()
		e.step = stepChecksum
	default:
		e.step = stepDone
		if e.debug {
			e.log.WithFields(logrus.Fields{
				"in":  e.totalIn + int64(e.br.bytesConsumed()),
				"out": e.totalOut + int64(e.win.wrPos-e.win.rdPos),
			}).Debug("end of stream")
		}
	}
}

func (e *Engine) storedHeader() (bool, error) {
	v, ok := e.br.take(32)
	if !ok {
		return false, nil
	}

	n, nn := uint16(v), uint16(v>>16)
	if nn != ^n {
		return false, fmt.Errorf("%w: len=0x%04x nlen=0x%04x", ErrStoredLengthMismatch, n, nn)
	}
	if e.debug {
		e.log.WithField("len", n).Debug("stored block")
	}

	e.storedLeft = int(n)
	e.step = stepStoredCopy

	return true, nil
}

func (e *Engine) storedCopy() bool {
	for e.storedLeft > 0 {
		dst := e.win.writeSlice()
		if len(dst) == 0 {
			return false
		}
		if len(dst) > e.storedLeft {
			dst = dst[:e.storedLeft]
		}

		n := e.br.copyBytes(dst)
		e.win.writeMark(n)
		e.storedLeft -= n
		if n == 0 {
			return false
		}
	}
	e.endBlock()

	return true
}

func (e *Engine) dynamicHeader() (bool, error) {
	v, ok := e.br.take(5 + 5 + 4)
	if !ok {
		return false, nil
	}

	e.nlit = int(v&0x1F) + 257
	e.ndist = int(v>>5&0x1F) + 1
	e.nclen = int(v>>10&0xF) + 4
	if e.debug {
		e.log.WithFields(logrus.Fields{
			"hlit":  e.nlit,
			"hdist": e.ndist,
			"hclen": e.nclen,
		}).Debug("dynamic tables")
	}
	if e.nlit > maxNumLit {
		return false, fmt.Errorf("%w: %d literal/length codes", ErrInvalidHuffmanTable, e.nlit)
	}
	if e.ndist > maxNumDist {
		return false, fmt.Errorf("%w: %d distance codes", ErrInvalidHuffmanTable, e.ndist)
	}

	e.clLens = [numCodes]uint8{}
	e.lenIdx = 0
	e.step = stepCodeLengthLengths

	return true, nil
}

func (e *Engine) codeLengthLengths() (bool, error) {
	for e.lenIdx < e.nclen {
		v, ok := e.br.take(3)
		if !ok {
			return false, nil
		}
		e.clLens[codeOrder[e.lenIdx]] = uint8(v)
		e.lenIdx++
	}

	if err := e.clTable.init(e.clLens[:]); err != nil {
		return false, fmt.Errorf("code length table: %w", err)
	}
	e.lenIdx = 0
	e.cur = huffmanCursor{}
	e.step = stepCodeLengths

	return true, nil
}

func (e *Engine) codeLengths() (bool, error) {
	n := e.nlit + e.ndist
	for e.lenIdx < n {
		sym, ok, err := e.clTable.decode(&e.br, &e.cur)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}

		if sym < 16 {
			e.lengths[e.lenIdx] = uint8(sym)
			e.lenIdx++
			continue
		}
		if sym == 16 && e.lenIdx == 0 {
			return false, fmt.Errorf("%w: repeat with no previous length", ErrInvalidCodeLengthRepeat)
		}
		e.repeatSym = sym
		e.step = stepCodeLengthRepeat

		return true, nil
	}

	return true, e.buildTables()
}

func (e *Engine) codeLengthRepeat() (bool, error) {
	var (
		nb  uint
		rep int
		val uint8
	)
	switch e.repeatSym {
	case 16:
		nb, rep, val = 2, 3, e.lengths[e.lenIdx-1]
	case 17:
		nb, rep = 3, 3
	case 18:
		nb, rep = 7, 11
	default:
		return false, fmt.Errorf("%w: code length symbol %d", ErrInvalidSymbol, e.repeatSym)
	}

	v, ok := e.br.take(nb)
	if !ok {
		return false, nil
	}
	rep += int(v)

	n := e.nlit + e.ndist
	if e.lenIdx+rep > n {
		return false, fmt.Errorf("%w: %d lengths overrun %d", ErrInvalidCodeLengthRepeat, e.lenIdx+rep, n)
	}
	for i := 0; i < rep; i++ {
		e.lengths[e.lenIdx] = val
		e.lenIdx++
	}
	e.step = stepCodeLengths

	return true, nil
}

// buildTables turns the decoded code lengths into the block's Huffman tables.
func (e *Engine) buildTables() error {
	lit := e.lengths[:e.nlit]
	dist := e.lengths[e.nlit : e.nlit+e.ndist]
	if lit[endBlockMarker] == 0 {
		return fmt.Errorf("%w: no code for end of block", ErrInvalidHuffmanTable)
	}
	if err := e.litTable.init(lit); err != nil {
		return fmt.Errorf("literal/length table: %w", err)
	}
	if err := e.distTable.init(dist); err != nil {
		return fmt.Errorf("distance table: %w", err)
	}

	e.hl, e.hd = &e.litTable, &e.distTable
	e.cur = huffmanCursor{}
	e.step = stepLiteral

	return nil
}

// literal is the hot loop: literals go straight to the window until a length
// code, the end of the block, a full window or a starved read.
func (e *Engine) literal() (bool, error) {
	for {
		if e.win.availWrite() == 0 {
			return false, nil
		}

		sym, ok, err := e.hl.decode(&e.br, &e.cur)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}

		switch {
		case sym < endBlockMarker:
			e.win.emitLiteral(byte(sym))
		case sym == endBlockMarker:
			e.endBlock()
			return true, nil
		case sym < maxNumLit:
			e.lenSym = sym - 257
			e.step = stepLengthExtra
			return true, nil
		default:
			return false, fmt.Errorf("%w: literal/length %d", ErrInvalidSymbol, sym)
		}
	}
}

func (e *Engine) lengthExtra() bool {
	v, ok := e.br.take(uint(lengthExtra[e.lenSym]))
	if !ok {
		return false
	}

	e.copyLen = int(lengthBase[e.lenSym]) + int(v)
	e.step = stepDistance

	return true
}

func (e *Engine) distance() (bool, error) {
	sym, ok, err := e.hd.decode(&e.br, &e.cur)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if sym >= maxNumDist {
		return false, fmt.Errorf("%w: distance %d", ErrInvalidSymbol, sym)
	}

	e.distSym = sym
	e.step = stepDistanceExtra

	return true, nil
}

func (e *Engine) distanceExtra() (bool, error) {
	v, ok := e.br.take(uint(distExtra[e.distSym]))
	if !ok {
		return false, nil
	}

	e.copyDist = int(distBase[e.distSym]) + int(v)
	if e.copyDist > e.win.histSize() {
		return false, fmt.Errorf("%w: distance=%d history=%d", ErrInvalidDistance, e.copyDist, e.win.histSize())
	}
	e.step = stepCopy

	return true, nil
}

func (e *Engine) copyBackreference() (bool, error) {
	n, err := e.win.emitCopy(e.copyDist, e.copyLen)
	if err != nil {
		return false, err
	}

	e.copyLen -= n
	if e.copyLen > 0 {
		return false, nil
	}
	e.step = stepLiteral

	return true, nil
}

func (e *Engine) trailer() bool {
	for {
		v, ok := e.br.take(8)
		if !ok {
			return false
		}
		if e.sum.collect(byte(v)) {
			e.step = stepVerify
			return false
		}
	}
}
