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

// Package cors only lets the configured origins call the decode API.
package cors

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
	"github.com/teal-finance/emo"
)

var log = emo.NewZone("cors")

// Handler uses restrictive CORS values: the decode API is read-only,
// without credentials, and only accepts GET and POST.
func Handler(origins []string, debug bool) func(next http.Handler) http.Handler {
	options := cors.Options{
		AllowedOrigins:         []string{},
		AllowOriginFunc:        nil,
		AllowOriginRequestFunc: nil,
		AllowedMethods:         []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:         []string{"Origin", "Accept", "Content-Type", "If-None-Match"},
		ExposedHeaders:         []string{"ETag"},
		MaxAge:                 24 * 3600, // https://developer.mozilla.org/docs/Web/HTTP/Headers/Access-Control-Max-Age
		AllowCredentials:       false,
		OptionsPassthrough:     false,
		OptionsSuccessStatus:   http.StatusNoContent,
		Debug:                  debug, // verbose logs
	}

	origins = InsertSchema(origins)

	if len(origins) == 1 {
		options.AllowOriginFunc = oneOrigin(origins[0])
	} else {
		options.AllowOriginFunc = multipleOriginPrefixes(origins)
	}

	log.Printf("CORS: Methods=%v Headers=%v Credentials=%v MaxAge=%v",
		options.AllowedMethods, options.AllowedHeaders, options.AllowCredentials, options.MaxAge)

	return cors.New(options).Handler
}

// InsertSchema returns a copy of origins where "http://"
// prefixes the origins without schema.
func InsertSchema(origins []string) []string {
	ret := make([]string, 0, len(origins))
	for _, o := range origins {
		if !strings.HasPrefix(o, "https://") &&
			!strings.HasPrefix(o, "http://") {
			o = "http://" + o
		}
		ret = append(ret, o)
	}
	return ret
}

func oneOrigin(addr string) func(string) bool {
	log.Print("CORS: Set one origin: ", addr)

	return func(origin string) bool {
		return origin == addr
	}
}

func multipleOriginPrefixes(addrPrefixes []string) func(origin string) bool {
	log.Print("CORS: Set origin prefixes: ", addrPrefixes)

	return func(origin string) bool {
		for _, prefix := range addrPrefixes {
			if strings.HasPrefix(origin, prefix) {
				return true
			}
		}

		log.Print("CORS: Refuse ", origin, " without prefixes ", addrPrefixes)

		return false
	}
}
