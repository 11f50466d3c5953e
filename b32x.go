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

// Package b32x serves the tolerant Base32 decoding over HTTP.
//
//	POST /v1/decode          body = Base32 text, reply = JSON (hex, base64, text, stats)
//	GET  /v1/decode/{input}  same with the input in the URL path
//	POST /v1/text            reply = the decoded bytes as UTF-8 text
//	GET  /v1/alphabet        reply = the active alphabet
//	GET  /version            reply = the server version
//
// The query parameter "strict=1" rejects the input the lenient decoding would fix.
package b32x

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/teal-finance/emo"

	"github.com/teal-finance/b32x/b32"
	"github.com/teal-finance/b32x/cors"
	"github.com/teal-finance/b32x/limiter"
	"github.com/teal-finance/b32x/metrics"
	"github.com/teal-finance/b32x/pprof"
	"github.com/teal-finance/b32x/reqlog"
	"github.com/teal-finance/b32x/reserr"
	"github.com/teal-finance/b32x/security"
)

var log = emo.NewZone("b32x")

// DevOrigins provides the development origins:
//   - yarn run vite --port 3000
//   - 192.168.1.x + any port on tablet
var DevOrigins = []string{"http://localhost:", "http://192.168.1."}

type Server struct {
	decoder *b32.Decoder
	resErr  reserr.ResErr
	metrics *metrics.Metrics
	limiter *limiter.ReqLimiter
	hasher  security.Hasher

	origins   []string
	version   string
	namespace string
	maxBody   int
	expPort   int
	pprofPort int
	reqBurst  int
	reqMinute int
	verbosity int
	devMode   bool
}

// New creates the decode server. Without options,
// it uses b32.StdDecoder with no rate limiter, no CORS and no metrics export.
func New(opts ...Option) *Server {
	s := &Server{
		decoder:   b32.StdDecoder,
		resErr:    "",
		metrics:   nil,
		limiter:   nil,
		hasher:    security.Hasher{},
		origins:   nil,
		version:   "",
		namespace: "b32x",
		maxBody:   defaultMaxBody,
		expPort:   0,
		pprofPort: 0,
		reqBurst:  0,
		reqMinute: 0,
		verbosity: 0,
		devMode:   false,
	}

	for _, opt := range opts {
		opt(s)
	}

	hasher, err := security.NewHasher()
	if err != nil {
		panic("b32x: cannot create the log hasher: " + err.Error())
	}
	s.hasher = hasher

	s.metrics = metrics.New(s.namespace)

	if s.reqMinute > 0 {
		s.limiter = limiter.New(s.reqBurst, s.reqMinute, s.devMode, s.resErr)
	}

	if s.devMode {
		s.origins = append(s.origins, DevOrigins...)
	}

	return s
}

// Decoder returns the decoder used by the handlers.
func (s *Server) Decoder() *b32.Decoder { return s.decoder }

// Metrics returns the Prometheus collectors of the server.
func (s *Server) Metrics() *metrics.Metrics { return s.metrics }

// Handler builds the router and its middlewares:
// metrics, request logs, URI check, rate limiter, Server header and CORS.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.metrics.Count)
	if mw := reqlog.Middleware(s.verbosity); mw != nil {
		r.Use(mw)
	}
	r.Use(security.RejectUnprintableURI(s.resErr))
	if s.limiter != nil {
		r.Use(s.limiter.Limit)
	}
	if s.version != "" {
		r.Use(ServerHeader(s.version))
	}
	if len(s.origins) > 0 {
		r.Use(cors.Handler(s.origins, s.devMode))
	}

	r.NotFound(s.resErr.InvalidPath)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.resErr.Write(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/decode", s.postDecode)
		r.Get("/decode/{input}", s.getDecode)
		r.Post("/text", s.postText)
		r.Get("/alphabet", s.getAlphabet)
	})
	r.Get("/version", s.getVersion)

	return r
}

// Run runs the HTTP server in foreground.
// It also starts the metrics and PProf servers in background when their ports are set.
func (s *Server) Run(port int) error {
	s.metrics.StartServer(s.expPort)
	pprof.StartServer(s.pprofPort)

	addr := ":" + strconv.Itoa(port)

	server := http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		TLSConfig:         nil,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       time.Minute,
		MaxHeaderBytes:    16 << 10, // the GET input is in the request line
		TLSNextProto:      nil,
		ConnState:         s.metrics.ConnState,
		ErrorLog:          nil,
		BaseContext:       nil,
		ConnContext:       nil,
	}

	log.Info("Server listening on http://localhost" + addr)

	if err := server.ListenAndServe(); err != nil {
		log.Warnf("Get the process using port %v: sudo ss -pan | grep %v", port, port)
		return fmt.Errorf("ListenAndServe %s: %w", addr, err)
	}

	return nil
}

// ServerHeader sets the Server HTTP header in the response.
func ServerHeader(version string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log.Info("Middleware response HTTP header: Set Server " + version)

		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Server", version)
				next.ServeHTTP(w, r)
			})
	}
}
