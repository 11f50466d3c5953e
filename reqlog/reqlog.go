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

// Package reqlog logs the incoming requests of the decode service.
package reqlog

import (
	"net/http"

	"github.com/teal-finance/emo"

	"github.com/teal-finance/b32x/security"
)

var log = emo.NewZone("reqlog")

// Middleware returns the request logger for the verbosity:
// 0 = no logs (nil), 1 = LogRequests, 2 = LogVerbose.
func Middleware(verbosity int) func(next http.Handler) http.Handler {
	switch verbosity {
	case 1:
		return LogRequests
	case 2:
		return LogVerbose
	}
	return nil
}

// LogRequests is the middleware to log the incoming HTTP requests.
func LogRequests(next http.Handler) http.Handler {
	log.Info("Middleware logger: requester IP and requested URL")

	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			log.Print(Line(r))
			next.ServeHTTP(w, r)
		})
}

// LogVerbose is the middleware to log the incoming HTTP requests and verbose requester information.
func LogVerbose(next http.Handler) http.Handler {
	log.Info("Middleware logger: requested URL, remote IP and also: " + RequesterInfoExplanation)

	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			log.Print(VerboseLine(r))
			next.ServeHTTP(w, r)
		})
}

// Line is the requester IP and the sanitized requested URL.
// The GET input being in the URL, it may be truncated.
func Line(r *http.Request) string {
	return "in  " + r.RemoteAddr + " " + r.Method + " " + security.Sanitize(r.RequestURI)
}

// VerboseLine is similar to Line, but also contains the requester headers.
func VerboseLine(r *http.Request) string {
	return Line(r) +
		" O=" + security.Sanitize(r.Header.Get("Origin")) +
		" T=" + security.Sanitize(r.Header.Get("Content-Type")) +
		" N=" + security.Sanitize(r.Header.Get("Content-Length")) +
		" U=" + security.Sanitize(r.Header.Get("User-Agent")) +
		" E=" + security.Sanitize(r.Header.Get("If-None-Match"))
}

// RequesterInfoExplanation provides a description of the logged HTTP headers.
const RequesterInfoExplanation = `
O=Origin, the website from which the request originated.
T=Content-Type of the posted Base32 text.
N=Content-Length of the posted Base32 text.
U=User-Agent, name and version of the browser and OS.
E=If-None-Match, the ETag already known by the requester.`
