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

package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teal-finance/b32x/b32"
)

func TestObserveDecode(t *testing.T) {
	t.Parallel()

	m := New("test")

	_, st := b32.StdDecoder.DecodeWithStats("MZ!XW6YTB=")
	m.ObserveDecode(Lenient, st, nil)
	m.ObserveDecode(Strict, b32.Stats{}, errors.New("bad"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.decodes.WithLabelValues(Lenient, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decodes.WithLabelValues(Strict, "error")))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.symbols))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.skipped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.padding))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.bytes))
}

func TestConnState(t *testing.T) {
	t.Parallel()

	m := New("test")
	m.ConnState(nil, http.StateNew)
	m.ConnState(nil, http.StateNew)
	m.ConnState(nil, http.StateActive)
	m.ConnState(nil, http.StateIdle)
	m.ConnState(nil, http.StateClosed)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.connGauge))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.iniCounter))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reqCounter))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resCounter))
}

func TestCountAndExport(t *testing.T) {
	t.Parallel()

	m := New("b32x")

	r := chi.NewRouter()
	r.Use(m.Count)
	r.Get("/v1/decode/{input}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/decode/MY", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `b32x_http_request_duration_seconds_count{code="418",method="GET",route="/v1/decode/{input}"} 1`), body)
	assert.Contains(t, body, "b32x_http_conn 0")
}
