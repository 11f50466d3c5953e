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

package b32

import "log"

// StdChars is the RFC 4648 Base32 alphabet, symbol values 0 to 31.
const StdChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// Padding is removed before decoding, it never carries a value.
const Padding = '='

// base is 32.
const base = len(StdChars)

var (
	// StdAlphabet recognizes exactly the 32 symbols of StdChars.
	StdAlphabet = NewAlphabet(StdChars)

	// TolerantAlphabet decodes 'u' and 'U' as 'V',
	// as coined by Douglas Crockford for human input.
	// 'U' loses its own value 20: the decoding is lossy for input
	// produced by a standard RFC 4648 encoder.
	TolerantAlphabet = StdAlphabet.Alias('u', 'V').Alias('U', 'V')
)

// Alphabet is an optimized form of the decoding characters.
// An Alphabet is never modified once created:
// it can be shared by concurrent decoders without locking.
type Alphabet struct {
	decode  [128]int8
	encode  [base]byte
	aliases [][2]byte
}

// NewAlphabet creates a new alphabet.
//
// It panics if the passed string is not 32 bytes long, isn't valid ASCII,
// contains the padding character or does not contain 32 distinct characters.
func NewAlphabet(s string) *Alphabet {
	if len(s) != base {
		log.Panicf("alphabets must be %d bytes long", base)
	}

	ret := new(Alphabet)
	copy(ret.encode[:], s)
	for i := range ret.decode {
		ret.decode[i] = -1
	}

	distinct := 0
	for i, b := range ret.encode {
		if b >= 128 {
			log.Panicf("alphabet contains the non-ASCII byte 0x%x", b)
		}
		if b == Padding {
			log.Panicf("alphabet must not contain the padding %q", Padding)
		}
		if ret.decode[b] == -1 {
			distinct++
		}
		ret.decode[b] = int8(i)
	}

	if distinct != base {
		log.Panicf("provided alphabet does not consist of %d distinct characters", base)
	}

	return ret
}

// Alias returns a copy of the alphabet where the character from
// decodes as the symbol to. The receiver is left untouched.
// When from is itself a symbol, it decodes as to from now on
// but String() still lists it.
//
// It panics if from is not ASCII, is the padding, or if to is not a symbol.
func (a *Alphabet) Alias(from, to byte) *Alphabet {
	if from >= 128 || to >= 128 {
		log.Panicf("alias %q->%q must be ASCII", from, to)
	}
	if from == Padding {
		log.Panicf("padding %q cannot be an alias", Padding)
	}
	if !a.isSymbol(to) {
		log.Panicf("alias target %q is not a symbol of %s", to, a)
	}

	ret := *a
	ret.aliases = make([][2]byte, len(a.aliases), len(a.aliases)+1)
	copy(ret.aliases, a.aliases)
	ret.aliases = append(ret.aliases, [2]byte{from, to})
	ret.decode[from] = a.decode[to]

	return &ret
}

// Value returns the 5-bit value of r and
// false when r is not recognized by the alphabet.
func (a *Alphabet) Value(r rune) (byte, bool) {
	if r < 0 || r >= 128 {
		return 0, false
	}
	v := a.decode[r]
	if v < 0 {
		return 0, false
	}
	return byte(v), true
}

func (a *Alphabet) isSymbol(b byte) bool {
	for _, s := range a.encode {
		if s == b {
			return true
		}
	}
	return false
}

// Aliases lists the extra characters (first) and the symbol they decode as (second).
func (a *Alphabet) Aliases() [][2]byte {
	return append([][2]byte{}, a.aliases...)
}

// String returns the 32 symbols in value order.
func (a *Alphabet) String() string { return string(a.encode[:]) }
