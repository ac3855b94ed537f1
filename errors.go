// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/inflate

package inflate

import "errors"

// Package errors. Use errors.New for static messages, fmt.Errorf with %w when values are needed.
// Every decode error is terminal for the Engine that returned it.
var (
	ErrInvalidBlockType        = errors.New("reserved block type")
	ErrStoredLengthMismatch    = errors.New("stored block length does not match its complement")
	ErrInvalidHuffmanTable     = errors.New("invalid huffman code lengths")
	ErrInvalidCode             = errors.New("no huffman code matches input bits")
	ErrInvalidSymbol           = errors.New("symbol out of range")
	ErrInvalidCodeLengthRepeat = errors.New("invalid code length repeat")
	ErrInvalidDistance         = errors.New("back-reference distance exceeds window history")
	ErrInvalidZlibHeader       = errors.New("invalid zlib header")
	ErrChecksumMismatch        = errors.New("adler32 checksum mismatch")

	ErrUnexpectedEOF = errors.New("unexpected end of compressed input")
	ErrTrailingData  = errors.New("trailing bytes after compressed stream")
	ErrNilReader     = errors.New("reader is nil")
	ErrEmptyInput    = errors.New("input is empty")
)
