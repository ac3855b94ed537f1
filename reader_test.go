package inflate

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/klauspost/compress/flate"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderHelloWorld(t *testing.T) {
	zr := NewReader(bytes.NewReader(mustHex("F348CDC9C9D75128CF2FCA490100")), nil)
	out, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", string(out))
	assert.EqualValues(t, 14, zr.TotalIn())
	assert.EqualValues(t, 12, zr.TotalOut())
}

func TestReaderSmallReads(t *testing.T) {
	data := testCorpus["mixed"]
	src := compressZlib(t, data, flate.BestCompression)

	// One byte of input per upstream read and seven bytes of output per Read.
	zr := NewReader(iotest.OneByteReader(bytes.NewReader(src)), ZlibOptions())
	var out bytes.Buffer
	buf := make([]byte, 7)
	for {
		n, err := zr.Read(buf)
		out.Write(buf[:n])
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}

	assert.True(t, bytes.Equal(data, out.Bytes()), "decoded output differs")
	assert.EqualValues(t, len(src), zr.TotalIn())
	assert.EqualValues(t, len(data), zr.TotalOut())
	assert.True(t, zr.Engine().Done())
}

func TestReaderPassesIOTest(t *testing.T) {
	data := testCorpus["text"]
	src := compressRaw(t, data, flate.BestSpeed)
	require.NoError(t, iotest.TestReader(NewReader(bytes.NewReader(src), nil), data))
}

func TestReaderUnexpectedEOF(t *testing.T) {
	src := compressZlib(t, testCorpus["text"], flate.BestSpeed)
	zr := NewReader(bytes.NewReader(src[:len(src)-2]), ZlibOptions())
	_, err := io.ReadAll(zr)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReaderErrorAfterOutput(t *testing.T) {
	src := fixedStream(func(w *bitWriter) {
		w.fixedLit('o')
		w.fixedLit('k')
		w.fixedLit(286)
	})
	zr := NewReader(bytes.NewReader(src), nil)

	buf := make([]byte, 16)
	n, err := zr.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(buf[:n]))

	_, err = zr.Read(buf)
	assert.ErrorIs(t, err, ErrInvalidSymbol)
	_, err = zr.Read(buf)
	assert.ErrorIs(t, err, ErrInvalidSymbol, "error is sticky")
}

func TestReaderReset(t *testing.T) {
	a := compressRaw(t, []byte("first stream"), flate.BestSpeed)
	b := compressRaw(t, []byte("second stream"), flate.BestCompression)

	zr := NewReader(bytes.NewReader(a), nil)
	out, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "first stream", string(out))

	zr.Reset(bytes.NewReader(b))
	out, err = io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "second stream", string(out))
	assert.EqualValues(t, len(a)+len(b), zr.TotalIn(), "totals survive reset")
}

func TestReaderResetDataConcatenated(t *testing.T) {
	a := compressZlib(t, []byte("one"), flate.BestSpeed)
	b := compressZlib(t, []byte("two"), flate.BestSpeed)
	zr := NewReader(bytes.NewReader(append(append([]byte(nil), a...), b...)), ZlibOptions())

	out, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "one", string(out))

	zr.ResetData()
	out, err = io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "two", string(out))
}

func TestReaderNilSource(t *testing.T) {
	_, err := NewReader(nil, nil).Read(make([]byte, 1))
	assert.ErrorIs(t, err, ErrNilReader)

	_, _, err = DecodeFromReader(nil, nil)
	assert.ErrorIs(t, err, ErrNilReader)
}

func TestDecodeFromReaderLeavesTrailingBytes(t *testing.T) {
	src := compressRaw(t, []byte("payload"), flate.BestSpeed)
	br := bufio.NewReader(io.MultiReader(bytes.NewReader(src), strings.NewReader("rest")))

	out, consumed, err := DecodeFromReader(br, nil)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(out))
	assert.EqualValues(t, len(src), consumed)

	rest, err := io.ReadAll(br)
	require.NoError(t, err)
	assert.Equal(t, "rest", string(rest))
}

func TestEngineDebugLogging(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	opts := ZlibOptions()
	opts.Logger = logger
	out, _, err := DecodePrefix(compressZlib(t, []byte("logged"), flate.BestSpeed), opts)
	require.NoError(t, err)
	assert.Equal(t, "logged", string(out))

	var messages []string
	for _, entry := range hook.AllEntries() {
		messages = append(messages, entry.Message)
		assert.Equal(t, "inflate", entry.Data["pkg"])
	}
	assert.Contains(t, messages, "zlib header")
	assert.Contains(t, messages, "block header")
	assert.Contains(t, messages, "end of stream")
}

func TestLenientChecksumIsLogged(t *testing.T) {
	logger, hook := logtest.NewNullLogger()

	src := compressZlib(t, []byte("lenient"), flate.BestSpeed)
	src[len(src)-2] ^= 0x01

	opts := ZlibLenientOptions()
	opts.Logger = logger
	out, err := DecodeWithOptions(src, opts)
	require.NoError(t, err)
	assert.Equal(t, "lenient", string(out))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.ErrorIs(t, hook.LastEntry().Data[logrus.ErrorKey].(error), ErrChecksumMismatch)
}
