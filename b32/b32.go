// #region <editor-fold desc="Preamble">
// Copyright (c) 2022 Teal.Finance contributors
//
// This file is part of Teal.Finance/B32x, a tolerant Base32 decoder and server.
// Teal.Finance/B32x is free software: you can redistribute it
// and/or modify it under the terms of the GNU Lesser General Public License
// either version 3 or any later version, at the licensee’s option.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// Teal.Finance/B32x is distributed WITHOUT ANY WARRANTY.
// For more details, see the LICENSE file (alongside the source files)
// or online at <https://www.gnu.org/licenses/lgpl-3.0.html>
// #endregion </editor-fold>

// Package b32 decodes Base32 text typed or transmitted by humans.
//
// The alphabet is the RFC 4648 one (A-Z then 2-7).
// Decoding is permissive: every padding '=' is removed wherever it appears
// and the characters outside the alphabet are skipped without error.
// DecodeStrict is the opt-in mode rejecting such input.
//
// The Crockford-style tolerance ('u' and 'U' decoding as 'V')
// and the case folding are enabled with WithTolerance and WithCaseFolding.
package b32

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// StdDecoder is the default lenient decoder:
// RFC 4648 alphabet, case-sensitive, no 'U' tolerance,
// output truncated to the written bytes.
var StdDecoder = NewDecoder()

// Decoder converts Base32 strings into bytes.
// A Decoder holds no decoding state: it is safe for concurrent use.
type Decoder struct {
	alphabet *Alphabet
	fold     bool
	zeroTail bool
}

// Option configures a Decoder.
type Option func(*Decoder)

// NewDecoder creates a lenient decoder using StdAlphabet by default.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		alphabet: StdAlphabet,
		fold:     false,
		zeroTail: false,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// WithAlphabet replaces the alphabet. A nil alphabet keeps the current one.
func WithAlphabet(a *Alphabet) Option {
	return func(d *Decoder) {
		if a != nil {
			d.alphabet = a
		}
	}
}

// WithTolerance decodes 'u' and 'U' as 'V'.
func WithTolerance() Option {
	return WithAlphabet(TolerantAlphabet)
}

// WithCaseFolding looks up the lowercase ASCII letters as uppercase
// when the alphabet does not recognize them as is.
func WithCaseFolding() Option {
	return func(d *Decoder) { d.fold = true }
}

// WithZeroTail keeps the output buffer at its pre-computed size
// (from the input length, skipped characters included)
// instead of truncating it to the decoded bytes.
// The unwritten tail is zero bytes.
func WithZeroTail() Option {
	return func(d *Decoder) { d.zeroTail = true }
}

// Alphabet returns the alphabet used by the decoder.
func (d *Decoder) Alphabet() *Alphabet { return d.alphabet }

// CaseFolding reports whether WithCaseFolding is enabled.
func (d *Decoder) CaseFolding() bool { return d.fold }

// ZeroTail reports whether WithZeroTail is enabled.
func (d *Decoder) ZeroTail() bool { return d.zeroTail }

// Stats describes what Decode did with an input string.
type Stats struct {
	Symbols       int // characters decoded as 5-bit values
	Skipped       int // characters not recognized by the alphabet
	Padding       int // removed '=' characters
	Bytes         int // bytes written by the decoding
	Size          int // pre-computed output size, see WithZeroTail
	DiscardedBits int // trailing bits too few to form a byte
}

// DecodedLen returns the output size for n characters (padding excluded).
func DecodedLen(n int) int { return n * 5 / 8 }

// Decode decodes a Base32 string using StdDecoder.
func Decode(str string) []byte { return StdDecoder.Decode(str) }

// DecodeToText decodes a Base32 string into UTF-8 text using StdDecoder.
func DecodeToText(str string) string { return StdDecoder.DecodeToText(str) }

// DecodeStrict decodes a Base32 string using StdDecoder in strict mode.
func DecodeStrict(str string) ([]byte, error) { return StdDecoder.DecodeStrict(str) }

// Decode decodes a Base32 string into a slice of bytes.
// Decode never fails: the padding is removed, the unknown characters are skipped
// and the trailing bits not forming a complete byte are discarded.
// The returned slice is never nil.
func (d *Decoder) Decode(str string) []byte {
	return d.decode(str, nil)
}

// Stats decodes str and reports the counters without returning the bytes.
func (d *Decoder) Stats(str string) Stats {
	var st Stats
	d.decode(str, &st)
	return st
}

// DecodeWithStats decodes str and also returns its counters.
func (d *Decoder) DecodeWithStats(str string) ([]byte, Stats) {
	var st Stats
	bin := d.decode(str, &st)
	return bin, st
}

// DecodeToText decodes str and reinterprets the bytes as UTF-8 text.
// The invalid UTF-8 sequences are replaced by U+FFFD.
func (d *Decoder) DecodeToText(str string) string {
	return ToText(d.Decode(str))
}

func (d *Decoder) decode(str string, st *Stats) []byte {
	w := str
	if strings.IndexByte(str, Padding) >= 0 {
		w = strings.ReplaceAll(str, string(Padding), "")
	}

	size := DecodedLen(utf8.RuneCountInString(w))
	bin := make([]byte, size)

	var acc uint32 // bit accumulator
	var bits uint  // number of pending bits in acc
	n := 0

	for _, r := range w {
		v, ok := d.value(r)
		if !ok {
			if st != nil {
				st.Skipped++
			}
			continue
		}
		if st != nil {
			st.Symbols++
		}

		acc = acc<<5 | uint32(v)
		bits += 5

		for bits >= 8 {
			bits -= 8
			bin[n] = byte(acc >> bits)
			n++
		}

		acc &= 1<<bits - 1
	}

	if st != nil {
		st.Padding = len(str) - len(w)
		st.Bytes = n
		st.Size = size
		st.DiscardedBits = int(bits)
	}

	if d.zeroTail {
		return bin
	}
	return bin[:n]
}

func (d *Decoder) value(r rune) (byte, bool) {
	v, ok := d.alphabet.Value(r)
	if !ok && d.fold && 'a' <= r && r <= 'z' {
		v, ok = d.alphabet.Value(r - 'a' + 'A')
	}
	return v, ok
}

// ToText reinterprets bytes as UTF-8 text,
// replacing the invalid sequences by U+FFFD.
func ToText(bin []byte) string {
	txt, err := unicode.UTF8.NewDecoder().Bytes(bin)
	if err != nil {
		return string(bytes.ToValidUTF8(bin, []byte(string(utf8.RuneError))))
	}
	return string(txt)
}
