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

// Package reserr writes the JSON error replies of the decode service.
package reserr

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/teal-finance/emo"

	"github.com/teal-finance/b32x/b32"
)

var log = emo.NewZone("reserr")

const (
	pathReserved = "Path is reserved for future use. Please contact us to share your ideas."
	pathInvalid  = "Path is not valid. Please refer to the documentation."
)

// ResErr is the URL of the API documentation
// added to every error reply.
type ResErr string

func New(docURL string) ResErr {
	return ResErr(docURL)
}

func (resErr ResErr) NotImplemented(w http.ResponseWriter, r *http.Request) {
	resErr.Write(w, r, http.StatusNotImplemented, pathReserved)
}

func (resErr ResErr) InvalidPath(w http.ResponseWriter, r *http.Request) {
	resErr.Write(w, r, http.StatusBadRequest, pathInvalid)
}

//easyjson:json
type msg struct {
	Error  string `json:"error"`
	Doc    string `json:"doc,omitempty"`
	Path   string `json:"path,omitempty"`
	Query  string `json:"query,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Char   string `json:"char,omitempty"`
	Offset *int   `json:"offset,omitempty"`
}

func (resErr ResErr) newMsg(r *http.Request, text string) msg {
	m := msg{
		Error:  text,
		Doc:    string(resErr),
		Path:   "",
		Query:  "",
		Kind:   "",
		Char:   "",
		Offset: nil,
	}

	if r != nil {
		m.Path = r.URL.Path
		m.Query = r.URL.RawQuery
	}

	return m
}

// Write replies the JSON error message with the status code.
func (resErr ResErr) Write(w http.ResponseWriter, r *http.Request, statusCode int, text string) {
	resErr.write(w, statusCode, resErr.newMsg(r, text))
}

// WriteErr replies err: a *b32.DecodeError gives details
// about the rejected character, any other error is a bad request.
func (resErr ResErr) WriteErr(w http.ResponseWriter, r *http.Request, err error) {
	m := resErr.newMsg(r, err.Error())

	var de *b32.DecodeError
	if errors.As(err, &de) {
		m.Kind = de.Kind.String()
		if de.Kind != b32.EmptyInput {
			offset := de.Offset
			m.Char = string(de.Char)
			m.Offset = &offset
		}
	}

	resErr.write(w, http.StatusBadRequest, m)
}

func (resErr ResErr) write(w http.ResponseWriter, statusCode int, m msg) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	b, err := m.MarshalJSON()
	if err != nil {
		log.Warn("ResErr MarshalJSON ", m, " err: ", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Length", strconv.Itoa(len(b)+1))
	w.WriteHeader(statusCode)

	if _, err = w.Write(append(b, '\n')); err != nil {
		log.Warn("ResErr Write ", m, " err: ", err)
	}
}

func Write(w http.ResponseWriter, r *http.Request, statusCode int, text string) {
	ResErr("").Write(w, r, statusCode, text)
}

func NotImplemented(w http.ResponseWriter, r *http.Request) {
	ResErr("").NotImplemented(w, r)
}

func InvalidPath(w http.ResponseWriter, r *http.Request) {
	ResErr("").InvalidPath(w, r)
}
