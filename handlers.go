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

package b32x

import (
	"encoding/base64"
	"encoding/hex"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/mailru/easyjson"

	"github.com/teal-finance/b32x/b32"
	"github.com/teal-finance/b32x/iec"
	"github.com/teal-finance/b32x/metrics"
	"github.com/teal-finance/b32x/security"
)

func (s *Server) postDecode(w http.ResponseWriter, r *http.Request) {
	input, ok := s.readBody(w, r)
	if !ok {
		return
	}
	s.decodeJSON(w, r, input)
}

func (s *Server) getDecode(w http.ResponseWriter, r *http.Request) {
	input, err := url.PathUnescape(chi.URLParam(r, "input"))
	if err != nil {
		s.resErr.Write(w, r, http.StatusBadRequest, "Invalid escaped input in URL path")
		return
	}
	s.decodeJSON(w, r, input)
}

func (s *Server) postText(w http.ResponseWriter, r *http.Request) {
	input, ok := s.readBody(w, r)
	if !ok {
		return
	}

	bin, _, ok := s.decode(w, r, input, metrics.Text)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, b32.ToText(bin)); err != nil {
		log.Warn("postText Write: ", err)
	}
}

func (s *Server) getAlphabet(w http.ResponseWriter, r *http.Request) {
	a := s.decoder.Alphabet()

	resp := alphabetResponse{
		Symbols:     a.String(),
		Padding:     string(b32.Padding),
		Aliases:     make(map[string]string, len(a.Aliases())),
		CaseFolding: s.decoder.CaseFolding(),
		ZeroTail:    s.decoder.ZeroTail(),
	}
	for _, alias := range a.Aliases() {
		resp.Aliases[string(alias[0])] = string(alias[1])
	}

	s.writeJSON(w, resp)
}

func (s *Server) getVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, Version("")+"\n")
}

// readBody replies 413 when the body exceeds the max size.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	buf, err := io.ReadAll(io.LimitReader(r.Body, int64(s.maxBody)+1))
	if err != nil {
		s.resErr.Write(w, r, http.StatusBadRequest, "Cannot read the request body")
		log.Warn("readBody: ", err)
		return "", false
	}

	if len(buf) > s.maxBody {
		s.resErr.Write(w, r, http.StatusRequestEntityTooLarge, "Request body exceeds "+iec.Convert(s.maxBody))
		log.Warn("readBody: reject body exceeding " + iec.Convert(s.maxBody))
		return "", false
	}

	// tolerate the final line break of a copy-paste or "echo | curl"
	return strings.TrimRight(string(buf), "\r\n"), true
}

// decode decodes input in lenient or strict mode (query parameter "strict"),
// updates the metrics and replies the strict errors.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, input, mode string) ([]byte, b32.Stats, bool) {
	if isStrict(r) {
		if mode == metrics.Lenient {
			mode = metrics.Strict
		}

		if err := s.decoder.Validate(input); err != nil {
			s.metrics.ObserveDecode(mode, b32.Stats{}, err)
			s.resErr.WriteErr(w, r, err)
			log.Print("strict ", s.hasher.Obfuscate(input), " ", err)
			return nil, b32.Stats{}, false
		}
	}

	bin, st := s.decoder.DecodeWithStats(input)
	s.metrics.ObserveDecode(mode, st, nil)

	etag := security.ETag(bin)
	w.Header().Set("ETag", etag)

	if security.MatchETag(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return nil, st, false
	}

	return bin, st, true
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, input string) {
	bin, st, ok := s.decode(w, r, input, metrics.Lenient)
	if !ok {
		return
	}
	s.writeJSON(w, newDecodeResponse(bin, st))
}

func (s *Server) writeJSON(w http.ResponseWriter, v easyjson.Marshaler) {
	if _, _, err := easyjson.MarshalToHTTPResponseWriter(v, w); err != nil {
		log.Warn("writeJSON: ", err)
	}
}

func isStrict(r *http.Request) bool {
	switch strings.ToLower(r.URL.Query().Get("strict")) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func newDecodeResponse(bin []byte, st b32.Stats) decodeResponse {
	return decodeResponse{
		Hex:       hex.EncodeToString(bin),
		Base64:    base64.StdEncoding.EncodeToString(bin),
		Text:      b32.ToText(bin),
		ValidUTF8: utf8.Valid(bin),
		Stats: statsResponse{
			Symbols:       st.Symbols,
			Skipped:       st.Skipped,
			Padding:       st.Padding,
			Bytes:         st.Bytes,
			Size:          st.Size,
			DiscardedBits: st.DiscardedBits,
		},
	}
}
