// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/inflate

package inflate

import "github.com/sirupsen/logrus"

// Format selects the envelope around the DEFLATE payload.
type Format int

// Format constants.
const (
	FormatRaw  Format = iota // Bare RFC 1951 stream, no header or checksum.
	FormatZlib               // RFC 1950: 2-byte header, DEFLATE payload, big-endian Adler-32 trailer.
)

// String returns the format name used in log fields.
func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatZlib:
		return "zlib"
	default:
		return "unknown"
	}
}

// Options configures an Engine and the helpers built on it.
type Options struct {
	// Format sets raw DEFLATE or zlib envelope.
	Format Format
	// VerifyChecksum: if true, a zlib trailer that does not match the output fails with ErrChecksumMismatch.
	// If false, mismatch is logged and ignored. Raw streams carry no checksum.
	VerifyChecksum bool
	// Logger receives debug entries for block headers, stream end and failures. Nil disables logging.
	Logger *logrus.Logger
}

// DefaultOptions returns options for a raw DEFLATE stream with strict verification.
func DefaultOptions() *Options {
	return &Options{
		Format:         FormatRaw,
		VerifyChecksum: true,
	}
}

// ZlibOptions returns options for a zlib stream with strict checksum verification.
func ZlibOptions() *Options {
	return &Options{
		Format:         FormatZlib,
		VerifyChecksum: true,
	}
}

// ZlibLenientOptions returns options for a zlib stream that does not fail on checksum mismatch.
func ZlibLenientOptions() *Options {
	return &Options{
		Format:         FormatZlib,
		VerifyChecksum: false,
	}
}
