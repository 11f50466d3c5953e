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

// Package main runs the tolerant Base32 decode server.
package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/teal-finance/emo"

	"github.com/teal-finance/b32x"
	"github.com/teal-finance/b32x/b32"
	"github.com/teal-finance/b32x/pprof"
)

var log = emo.NewZone("main")

const (
	defaultPort    = 8032
	defaultExpPort = 9032
)

func main() {
	port := flag.Int("port", envInt("PORT", defaultPort), "API server port")
	expPort := flag.Int("exp", envInt("EXP_PORT", defaultExpPort), "Prometheus export port, 0 disables it")
	pprofPort := flag.Int("pprof", 0, "PProf port, 0 disables it")
	burst := flag.Int("burst", 20, "Max requests in a burst per remote IP")
	perMinute := flag.Int("rate", 80, "Max requests per minute per remote IP, 0 disables the limiter")
	dev := flag.Bool("dev", false, "Development mode (more requests, local CORS origins)")
	tolerant := flag.Bool("tolerant", false, "Decode 'u' and 'U' as 'V'")
	fold := flag.Bool("fold", false, "Decode the lowercase letters as uppercase")
	zeroTail := flag.Bool("zero-tail", false, "Keep the zero bytes of the skipped characters")
	origins := flag.String("origins", "", "Comma-separated CORS origins")
	docURL := flag.String("doc", "", "Documentation URL added to the error replies")
	verbosity := flag.Int("log", 1, "Request logs: 0=none, 1=URL, 2=URL+headers")
	cpu := flag.String("cpuprofile", "", "Directory where to write cpu.pprof on exit")
	flag.Parse()

	if *cpu != "" {
		defer pprof.ProbeCPU(*cpu).Stop()
	}

	var opts []b32.Option
	if *tolerant {
		opts = append(opts, b32.WithTolerance())
	}
	if *fold {
		opts = append(opts, b32.WithCaseFolding())
	}
	if *zeroTail {
		opts = append(opts, b32.WithZeroTail())
	}

	serverOpts := []b32x.Option{
		b32x.WithDecoder(b32.NewDecoder(opts...)),
		b32x.WithServerHeader("B32x"),
		b32x.WithDocURL(*docURL),
		b32x.WithProm(*expPort, "b32x"),
		b32x.WithPProf(*pprofPort),
		b32x.WithDev(*dev),
		b32x.WithReqLogs(*verbosity),
	}
	if *perMinute > 0 {
		serverOpts = append(serverOpts, b32x.WithLimiter(*burst, *perMinute))
	}
	if *origins != "" {
		serverOpts = append(serverOpts, b32x.WithOrigins(strings.Split(*origins, ",")...))
	}

	server := b32x.New(serverOpts...)

	log.Info("Alphabet " + server.Decoder().Alphabet().String() +
		" tolerant=" + strconv.FormatBool(*tolerant) +
		" fold=" + strconv.FormatBool(*fold) +
		" zero-tail=" + strconv.FormatBool(*zeroTail))

	err := server.Run(*port)
	log.Error("Server stopped: ", err)
}

// envInt returns the integer environment variable or def when unset or invalid.
func envInt(name string, def int) int {
	str, ok := os.LookupEnv(name)
	if !ok {
		return def
	}

	v, err := strconv.Atoi(str)
	if err != nil {
		log.Warnf("Invalid %s=%q, use default %d", name, str, def)
		return def
	}

	return v
}
