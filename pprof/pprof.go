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

// Package pprof serves the /debug/pprof endpoints
// and probes the CPU of the decoding.
package pprof

import (
	"net/http"
	"net/http/pprof"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/profile"
	"github.com/teal-finance/emo"
)

var log = emo.NewZone("pprof")

// ProbeCPU is used like the following:
//
//	defer pprof.ProbeCPU(".").Stop()
//
// When the caller reaches its function end,
// the defer executes Stop() that writes the file "cpu.pprof".
// To visualize "cpu.pprof" use the pprof tool:
//
//	go run github.com/google/pprof@latest -http=: cpu.pprof
func ProbeCPU(dir string) interface{ Stop() } {
	log.Info("Probing CPU. To visualize the profile: pprof -http=: " + dir + "/cpu.pprof")
	return profile.Start(profile.ProfilePath(dir), profile.Quiet)
}

// StartServer starts a PProf server in background.
// Endpoints usage example:
//
//	curl http://localhost:6063/debug/pprof/allocs > allocs.pprof
//	pprof -http=: allocs.pprof
//
// A zero port disables the PProf endpoints.
func StartServer(port int) {
	if port == 0 {
		return
	}

	addr := "localhost:" + strconv.Itoa(port)

	go func() {
		log.Info("Enable PProf endpoints: http://" + addr + "/debug/pprof")
		err := http.ListenAndServe(addr, Handler())
		log.Error("PProf server stopped: ", err)
	}()
}

// Handler serves the /debug/pprof/* endpoints.
func Handler() http.Handler {
	r := chi.NewRouter()
	r.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	r.HandleFunc("/debug/pprof/profile", pprof.Profile)
	r.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	r.HandleFunc("/debug/pprof/trace", pprof.Trace)
	r.NotFound(pprof.Index) // also serves /debug/pprof/{heap,goroutine,block...}
	return r
}
