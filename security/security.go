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

// Package security protects the logs against injection
// and computes the ETag of the decoded payloads.
package security

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/minio/highwayhash"
	"github.com/teal-finance/emo"

	"github.com/teal-finance/b32x/reserr"
)

var log = emo.NewZone("security")

// The code points in the surrogate range are not valid for UTF-8.
const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// maxLogLen truncates the sanitized strings, the decode input may be large.
const maxLogLen = 200

// etagKey is constant so that the ETag survives a restart.
const etagKey = "B32x-ETag-HighwayHash-Key-32byte"

// Sanitize replaces control codes by the tofu symbol
// and invalid UTF-8 codes by the replacement character.
// Long strings are truncated.
func Sanitize(str string) string {
	if len(str) > maxLogLen {
		str = str[:maxLogLen] + "…"
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case surrogateMin <= r && r <= surrogateMax, r > utf8.MaxRune:
			return '�'
		case unicode.IsPrint(r):
			return r
		default: // r < 32, r == 127
			return '􏿮'
		}
	}, str)
}

// PrintableRune returns false if rune is
// a Carriage Return "\r", a Line Feed "\n",
// another ASCII control code (except space),
// or an invalid UTF-8 code.
func PrintableRune(r rune) bool {
	switch {
	case r < 32:
		return false
	case r == 127:
		return false
	case surrogateMin <= r && r <= surrogateMax:
		return false
	case r >= utf8.MaxRune:
		return false
	}
	return true
}

// Printable returns the position of the first non printable character
// or -1 if the string is safely printable.
func Printable(s string) int {
	for p, r := range s {
		if !PrintableRune(r) {
			return p
		}
	}
	return -1
}

// RejectUnprintableURI is a middleware rejecting HTTP requests having
// a Carriage Return "\r", a Line Feed "\n" or another control code
// within the URI to prevent log injection.
func RejectUnprintableURI(resErr reserr.ResErr) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log.Info("Middleware RejectUnprintableURI rejects URI having line breaks or unprintable characters")

		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				if i := Printable(r.RequestURI); i >= 0 {
					resErr.Write(w, r, http.StatusBadRequest, "Invalid URI with non-printable symbol")
					log.Warn("reject non-printable URI at ", i, ": ", Sanitize(r.RequestURI))
					return
				}

				next.ServeHTTP(w, r)
			})
	}
}

// ETag returns a strong entity tag of the decoded bytes.
// HighwayHash is a hashing algorithm enabling high speed (especially on AMD64).
func ETag(bin []byte) string {
	sum := highwayhash.Sum64(bin, []byte(etagKey))

	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)

	return `"` + base64.RawURLEncoding.EncodeToString(b[:]) + `"`
}

// MatchETag reports whether the If-None-Match header contains etag.
func MatchETag(ifNoneMatch, etag string) bool {
	for _, tag := range strings.Split(ifNoneMatch, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || tag == etag || strings.TrimPrefix(tag, "W/") == etag {
			return true
		}
	}
	return false
}

// Hasher obfuscates the inputs before logging them.
// Its key is random: the digests cannot be compared across restarts.
type Hasher struct {
	key []byte
}

func NewHasher() (Hasher, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return Hasher{}, err
	}
	return Hasher{key: key}, nil
}

// Obfuscate hashes the input string to prevent logging sensitive information.
func (h Hasher) Obfuscate(s string) string {
	sum := highwayhash.Sum64([]byte(s), h.key)

	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)

	return base64.RawURLEncoding.EncodeToString(b[:])
}
