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

// Package limiter throttles the incoming requests per remote IP.
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/teal-finance/emo"
	"golang.org/x/time/rate"

	"github.com/teal-finance/b32x/reserr"
)

var log = emo.NewZone("limiter")

const (
	evictPeriod = 1 * time.Minute
	maxIdle     = 3 * time.Minute
)

type ReqLimiter struct {
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	mu       sync.Mutex
	resErr   reserr.ResErr
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a limiter allowing each remote IP maxReqBurst requests at once
// and maxReqPerMinute on average. The dev mode multiplies both by 10.
func New(maxReqBurst, maxReqPerMinute int, devMode bool, resErr reserr.ResErr) *ReqLimiter {
	if devMode {
		maxReqBurst *= 10
		maxReqPerMinute *= 10
	}

	return &ReqLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(maxReqPerMinute) / 60),
		burst:    maxReqBurst,
		mu:       sync.Mutex{},
		resErr:   resErr,
	}
}

// Limit is the middleware rejecting with 429 the requests exceeding the rate.
// The idle visitors are evicted in background.
func (rl *ReqLimiter) Limit(next http.Handler) http.Handler {
	log.Printf("Middleware RateLimiter: burst=%v rate=%.2f/s", rl.burst, rl.limit)

	go rl.removeOldVisitors()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			rl.resErr.Write(w, r, http.StatusInternalServerError, "Internal Server Error #3")
			log.Warnf("in  %v %v %v - Error SplitHostPort %v", r.Method, r.RemoteAddr, r.RequestURI, err)
			return
		}

		if !rl.Allow(ip) {
			rl.resErr.Write(w, r, http.StatusTooManyRequests, "Too Many Requests")
			log.Warnf("rej %v %v %v TooManyRequests", r.Method, r.RemoteAddr, r.RequestURI)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Allow consumes one token of the visitor ip.
func (rl *ReqLimiter) Allow(ip string) bool {
	return rl.getVisitor(ip).Allow()
}

// Visitors returns the number of tracked remote IPs.
func (rl *ReqLimiter) Visitors() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

func (rl *ReqLimiter) removeOldVisitors() {
	ticker := time.NewTicker(evictPeriod)
	for ; true; <-ticker.C {
		rl.evict(time.Now())
	}
}

func (rl *ReqLimiter) evict(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > maxIdle {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *ReqLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{
			limiter:  rate.NewLimiter(rl.limit, rl.burst),
			lastSeen: time.Time{},
		}
		rl.visitors[ip] = v
	}

	v.lastSeen = time.Now()

	return v.limiter
}
