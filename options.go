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
	"github.com/teal-finance/b32x/b32"
	"github.com/teal-finance/b32x/reserr"
)

// defaultMaxBody limits the POST bodies to 64 KiB.
const defaultMaxBody = 64 << 10

type Option func(*Server)

// WithDecoder replaces b32.StdDecoder. A nil decoder is ignored.
func WithDecoder(d *b32.Decoder) Option {
	return func(s *Server) {
		if d != nil {
			s.decoder = d
		}
	}
}

func WithDocURL(docURL string) Option {
	return func(s *Server) {
		s.resErr = reserr.New(docURL)
	}
}

func WithDev(enable ...bool) Option {
	devMode := true
	if len(enable) > 0 {
		devMode = enable[0]

		if len(enable) >= 2 {
			log.Warn("b32x.WithDev() must be called with zero or one argument, ignoring ", enable[1:])
		}
	}

	return func(s *Server) {
		s.devMode = devMode
	}
}

// WithReqLogs logs the incoming requests:
// verbosity 1 (default) logs the URL, 2 also logs some headers.
func WithReqLogs(verbosity ...int) Option {
	v := 1
	if len(verbosity) > 0 {
		v = verbosity[0]
		if v < 0 || v > 2 {
			log.Warnf("b32x.WithReqLogs(verbosity=%v) accepts values [0, 1, 2] only, use 1", v)
			v = 1
		}
	}

	return func(s *Server) { s.verbosity = v }
}

func WithPProf(port int) Option {
	return func(s *Server) {
		s.pprofPort = port
	}
}

// WithProm exports the Prometheus metrics on port.
// An empty namespace keeps "b32x".
func WithProm(port int, namespace string) Option {
	return func(s *Server) {
		s.expPort = port
		if namespace != "" {
			s.namespace = namespace
		}
	}
}

// WithLimiter accepts zero, one (burst) or two (burst, perMinute) values.
func WithLimiter(values ...int) Option {
	var burst, perMinute int

	switch len(values) {
	case 0:
		burst = 20
		perMinute = 4 * burst
	case 1:
		burst = values[0]
		perMinute = 4 * burst
	default:
		burst = values[0]
		perMinute = values[1]
		if len(values) > 2 {
			log.Warn("b32x.WithLimiter() uses only two arguments, ignoring ", values[2:])
		}
	}

	return func(s *Server) {
		s.reqBurst = burst
		s.reqMinute = perMinute
	}
}

// WithOrigins enables CORS for the origins (or origin prefixes).
func WithOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = append(s.origins, origins...)
	}
}

func WithServerHeader(program string) Option {
	return func(s *Server) {
		s.version = Version(program)
	}
}

// WithMaxBody limits the size of the POST bodies (in bytes).
func WithMaxBody(maxBytes int) Option {
	return func(s *Server) {
		if maxBytes > 0 {
			s.maxBody = maxBytes
		}
	}
}
