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

package reserr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teal-finance/b32x/b32"
	"github.com/teal-finance/b32x/reserr"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	m := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestWrite(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/nope?a=1", nil)

	reserr.New("https://doc").Write(rec, req, http.StatusTeapot, "short and stout")

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	m := decodeBody(t, rec)
	assert.Equal(t, "short and stout", m["error"])
	assert.Equal(t, "https://doc", m["doc"])
	assert.Equal(t, "/v1/nope", m["path"])
	assert.Equal(t, "a=1", m["query"])
	assert.NotContains(t, m, "kind")
	assert.NotContains(t, m, "offset")
}

func TestWriteErr(t *testing.T) {
	t.Parallel()

	_, err := b32.DecodeStrict("!ABC")
	require.Error(t, err)

	rec := httptest.NewRecorder()
	reserr.ResErr("").WriteErr(rec, httptest.NewRequest(http.MethodPost, "/v1/decode", nil), err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	m := decodeBody(t, rec)
	assert.Equal(t, "InvalidCharacter", m["kind"])
	assert.Equal(t, "!", m["char"])
	assert.EqualValues(t, 0, m["offset"])
	assert.NotContains(t, m, "doc")
}

func TestWriteErrEmpty(t *testing.T) {
	t.Parallel()

	_, err := b32.DecodeStrict("")
	require.Error(t, err)

	rec := httptest.NewRecorder()
	reserr.ResErr("").WriteErr(rec, nil, err)

	m := decodeBody(t, rec)
	assert.Equal(t, "EmptyInput", m["kind"])
	assert.NotContains(t, m, "offset")
	assert.NotContains(t, m, "path")
}

func TestWriteErrOther(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	reserr.ResErr("").WriteErr(rec, nil, errors.New(`quote " and \ backslash`))

	m := decodeBody(t, rec)
	assert.Equal(t, `quote " and \ backslash`, m["error"])
	assert.NotContains(t, m, "kind")
}

func TestInvalidPath(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	reserr.InvalidPath(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	reserr.NotImplemented(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}
