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

import (
	"encoding/base32"
	"math/rand"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"
)

var cases = []struct {
	name string
	str  string
	want []byte
}{
	{"empty", "", []byte{}},
	{"one-symbol", "A", []byte{}},
	{"two-symbols", "AB", []byte{0x00}},
	{"ones", "7777", []byte{0xff, 0xff}},
	{"full-block", "77777777", []byte{0xff, 0xff, 0xff, 0xff, 0xff}},
	{"f", "MY======", []byte("f")},
	{"foobar", "MZXW6YTBOI======", []byte("foobar")},
	{"sure", "ON2XEZJO", []byte("sure.")},
	{"hello", "JBSWY3DPEBLW64TMMQ======", []byte("Hello World")},
	{"padded", "IFBEGRCFIZDUQSKKJNGE2UCPI===", []byte("ABCDEFGHIJKLMPO")},
	{"unpadded", "IFBEGRCFIZDUQSKKJNGE2UCPI", []byte("ABCDEFGHIJKLMPO")},
	{"inner-padding", "MZ=XW6=YTB", []byte("fooba")},
	{"only-padding", "========", []byte{}},
	{"skip", "A!A", []byte{0x00}},
	{"skip-many", "B!!!B", []byte{0x08}},
	{"spaces", "MZXW 6YTB", []byte("fooba")},
	{"lowercase", "mzxw6ytb", []byte{}},
	{"lowercase-u", "uu", []byte{}},
	{"uppercase-u", "UU", []byte{0xa5}},
	{"vv", "VV", []byte{0xad}},
	{"non-ascii", "MZXWé6YTB", []byte("fooba")},
	{"garbage", "!@#$%^&*()", []byte{}},
}

func TestDecode(t *testing.T) {
	t.Parallel()

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := Decode(c.str)
			if got == nil {
				t.Fatal("Decode() returned nil")
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("Decode(%q) = %v, want %v", c.str, got, c.want)
			}
		})
	}
}

func TestDecodeZeroTail(t *testing.T) {
	t.Parallel()

	d := NewDecoder(WithZeroTail())

	for _, c := range []struct {
		name string
		str  string
		want []byte
	}{
		{"empty", "", []byte{}},
		{"skip", "A!A", []byte{0x00}},
		{"skip-many", "B!!!B", []byte{0x08, 0x00, 0x00}},
		{"lowercase-u", "uu", []byte{0x00}},
		{"no-skip", "MZXW6YTB", []byte("fooba")},
		{"padding-not-counted", "MY======", []byte("f")},
		{"garbage", "!!!!!!!!", []byte{0, 0, 0, 0, 0}},
	} {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := d.Decode(c.str)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("Decode(%q) = %v, want %v", c.str, got, c.want)
			}
			if len(got) != DecodedLen(utf8.RuneCountInString(strings.ReplaceAll(c.str, "=", ""))) {
				t.Errorf("len(Decode(%q)) = %d, want pre-computed size", c.str, len(got))
			}
		})
	}
}

// pack concatenates the 5-bit values as a string of binary digits
// and cuts it into bytes, discarding the trailing bits.
func pack(str string) []byte {
	var sb strings.Builder
	for _, r := range str {
		i := strings.IndexRune(StdChars, r)
		if i < 0 {
			continue
		}
		s := strconv.FormatInt(int64(i), 2)
		sb.WriteString(strings.Repeat("0", 5-len(s)) + s)
	}

	bits := sb.String()
	bin := make([]byte, 0, len(bits)/8)
	for i := 0; i+8 <= len(bits); i += 8 {
		b, err := strconv.ParseUint(bits[i:i+8], 2, 8)
		if err != nil {
			panic(err)
		}
		bin = append(bin, byte(b))
	}
	return bin
}

func randomString(rnd *rand.Rand, n int, chars string) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = chars[rnd.Intn(len(chars))]
	}
	return string(b)
}

func TestDecodeBitPacking(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(32))

	for k := 1; k <= 40; k++ {
		str := randomString(rnd, 8*k, StdChars)

		got := Decode(str)

		if len(got) != 5*k {
			t.Fatalf("len(Decode(%q)) = %d, want %d", str, len(got), 5*k)
		}
		if want := pack(str); !reflect.DeepEqual(got, want) {
			t.Errorf("Decode(%q) = %v, want %v", str, got, want)
		}
		want, err := base32.StdEncoding.DecodeString(str)
		if err != nil {
			t.Fatalf("encoding/base32 %q: %v", str, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Decode(%q) = %v, encoding/base32 = %v", str, got, want)
		}
	}
}

func TestDecodeAnyLength(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(5))

	for n := 0; n < 100; n++ {
		str := randomString(rnd, n, StdChars+"=!-_ abc")
		if got, want := Decode(str), pack(str); !reflect.DeepEqual(got, want) {
			t.Errorf("Decode(%q) = %v, want %v", str, got, want)
		}
	}
}

func TestPaddingIsIgnored(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(61))

	for n := 0; n < 64; n++ {
		str := randomString(rnd, n, StdChars+"==")
		got := Decode(str)
		want := Decode(strings.ReplaceAll(str, "=", ""))
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Decode(%q) = %v, without padding = %v", str, got, want)
		}
	}
}

func TestDecodeOptions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		opts []Option
		str  string
		want []byte
	}{
		{"tolerance-u", []Option{WithTolerance()}, "uU", []byte{0xad}},
		{"tolerance-mixed", []Option{WithTolerance()}, "AAUU", []byte{0x00, 0x2b}},
		{"tolerance-lowercase-v", []Option{WithTolerance()}, "vv", []byte{}},
		{"folding", []Option{WithCaseFolding()}, "on2xezjo", []byte("sure.")},
		{"folding-mixed", []Option{WithCaseFolding()}, "On2XeZjO", []byte("sure.")},
		{"folding-u", []Option{WithCaseFolding()}, "uv", []byte{0xa5}},
		{"folding-digits", []Option{WithCaseFolding()}, "77", []byte{0xff}},
		{"both", []Option{WithTolerance(), WithCaseFolding()}, "uv", []byte{0xad}},
		{"nil-alphabet", []Option{WithAlphabet(nil)}, "AB", []byte{0x00}},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			d := NewDecoder(c.opts...)
			if got := d.Decode(c.str); !reflect.DeepEqual(got, c.want) {
				t.Errorf("Decode(%q) = %v, want %v", c.str, got, c.want)
			}
		})
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want Stats
	}{
		{"empty", "", Stats{}},
		{"one", "A", Stats{Symbols: 1, DiscardedBits: 5}},
		{"padded", "MY======", Stats{Symbols: 2, Padding: 6, Bytes: 1, Size: 1, DiscardedBits: 2}},
		{"skip", "B!!!B", Stats{Symbols: 2, Skipped: 3, Bytes: 1, Size: 3, DiscardedBits: 2}},
		{"block", "MZXW6YTB", Stats{Symbols: 8, Bytes: 5, Size: 5}},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			bin, st := StdDecoder.DecodeWithStats(c.str)
			if st != c.want {
				t.Errorf("DecodeWithStats(%q) stats = %+v, want %+v", c.str, st, c.want)
			}
			if len(bin) != st.Bytes {
				t.Errorf("len(bin) = %d, want %d", len(bin), st.Bytes)
			}
			if got := StdDecoder.Stats(c.str); got != c.want {
				t.Errorf("Stats(%q) = %+v, want %+v", c.str, got, c.want)
			}
		})
	}
}

func TestDecodeToText(t *testing.T) {
	t.Parallel()

	if got := DecodeToText("JBSWY3DPEBLW64TMMQ======"); got != "Hello World" {
		t.Errorf("DecodeToText() = %q, want %q", got, "Hello World")
	}

	if got := DecodeToText(""); got != "" {
		t.Errorf("DecodeToText(\"\") = %q, want empty", got)
	}

	// "77" decodes as 0xff which is not valid UTF-8
	got := DecodeToText("77")
	if !utf8.ValidString(got) {
		t.Errorf("DecodeToText() = %q is not valid UTF-8", got)
	}
	if got != "�" {
		t.Errorf("DecodeToText() = %q, want the replacement character", got)
	}

	if got := DecodeToText("I5QXFQ5HN5XA===="); got != "Garçon" {
		t.Errorf("DecodeToText() = %q, want %q", got, "Garçon")
	}
}

func TestConcurrentDecode(t *testing.T) {
	t.Parallel()

	done := make(chan []byte)
	for i := 0; i < 16; i++ {
		go func() { done <- Decode("MZXW6YTBOI======") }()
	}
	for i := 0; i < 16; i++ {
		if got := <-done; string(got) != "foobar" {
			t.Errorf("Decode() = %q, want foobar", got)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	str := strings.Repeat("IFBEGRCFIZDUQSKKJNGE2UCP", 100)
	b.SetBytes(int64(len(str)))
	for i := 0; i < b.N; i++ {
		_ = Decode(str)
	}
}
