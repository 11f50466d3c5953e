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

package security

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPrintableRune(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		r    rune
		want bool
	}{
		{"valid", 't', true},
		{"space", ' ', true},
		{"tab", '\t', false},
		{"lf", '\n', false},
		{"del", 127, false},
		{"surrogate", 0xD800, false},
	}
	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := PrintableRune(c.r); got != c.want {
				t.Errorf("PrintableRune(%v) = %v, want %v", c.r, got, c.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	if got := Sanitize("MZ\r\nXW\t6"); strings.ContainsAny(got, "\r\n\t") {
		t.Errorf("Sanitize() = %q still contains control codes", got)
	}

	long := strings.Repeat("A", 3*maxLogLen)
	if got := Sanitize(long); len(got) > maxLogLen+len("…") {
		t.Errorf("len(Sanitize()) = %d, want truncated", len(got))
	}

	if got := Printable("/v1/decode/MZXW6==="); got != -1 {
		t.Errorf("Printable() = %d, want -1", got)
	}
	if got := Printable("/v1/decode/MZ\nXW"); got != 13 {
		t.Errorf("Printable() = %d, want 13", got)
	}
}

func TestETag(t *testing.T) {
	t.Parallel()

	a := ETag([]byte("foobar"))
	if a != ETag([]byte("foobar")) {
		t.Error("ETag() is not deterministic")
	}
	if a == ETag([]byte("fooba")) {
		t.Error("ETag() collides for different payloads")
	}
	if !strings.HasPrefix(a, `"`) || !strings.HasSuffix(a, `"`) {
		t.Errorf("ETag() = %s is not quoted", a)
	}

	cases := []struct {
		header string
		want   bool
	}{
		{"", false},
		{a, true},
		{"W/" + a, true},
		{`"x", ` + a, true},
		{"*", true},
		{`"other"`, false},
	}
	for _, c := range cases {
		if got := MatchETag(c.header, a); got != c.want {
			t.Errorf("MatchETag(%q) = %v, want %v", c.header, got, c.want)
		}
	}
}

func TestHasher(t *testing.T) {
	t.Parallel()

	h, err := NewHasher()
	if err != nil {
		t.Fatal(err)
	}

	if h.Obfuscate("secret") != h.Obfuscate("secret") {
		t.Error("Obfuscate() is not deterministic for a given Hasher")
	}
	if strings.Contains(h.Obfuscate("secret"), "secret") {
		t.Error("Obfuscate() leaks its input")
	}
}

func TestRejectUnprintableURI(t *testing.T) {
	t.Parallel()

	h := RejectUnprintableURI("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/alphabet", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	req.RequestURI = "/v1/decode/A\rB"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
