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

// Package metrics exports the decode service counters to Prometheus.
package metrics

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/teal-finance/emo"

	"github.com/teal-finance/b32x/b32"
	"github.com/teal-finance/b32x/security"
)

var log = emo.NewZone("metrics")

// Decode modes used as label values.
const (
	Lenient = "lenient"
	Strict  = "strict"
	Text    = "text"
)

type Metrics struct {
	reg *prometheus.Registry

	connGauge  prometheus.Gauge
	iniCounter prometheus.Counter
	reqCounter prometheus.Counter
	resCounter prometheus.Counter
	hijCounter prometheus.Counter

	decodes  *prometheus.CounterVec
	symbols  prometheus.Counter
	skipped  prometheus.Counter
	padding  prometheus.Counter
	bytes    prometheus.Counter
	duration *prometheus.HistogramVec
}

// New registers the collectors in a dedicated registry
// so that several servers can live in the same process.
func New(namespace string) *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),

		connGauge:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Subsystem: "http", Name: "conn", Help: "Number of current active HTTP connections"}),
		iniCounter: prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Subsystem: "http", Name: "new_total", Help: "Total initiated HTTP connections since startup"}),
		reqCounter: prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Subsystem: "http", Name: "req_total", Help: "Total requested HTTP connections since startup"}),
		resCounter: prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Subsystem: "http", Name: "res_total", Help: "Total responded HTTP connections since startup"}),
		hijCounter: prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Subsystem: "http", Name: "hij_total", Help: "Total hijacked HTTP connections since startup"}),

		decodes: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Subsystem: "b32", Name: "decodes_total", Help: "Decoded strings by mode and status"}, []string{"mode", "status"}),
		symbols: prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Subsystem: "b32", Name: "symbols_total", Help: "Base32 symbols decoded"}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Subsystem: "b32", Name: "skipped_total", Help: "Characters skipped because not in the alphabet"}),
		padding: prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Subsystem: "b32", Name: "padding_total", Help: "Padding characters removed"}),
		bytes:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Subsystem: "b32", Name: "bytes_total", Help: "Bytes produced by the decoding"}),

		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help: "Duration of the HTTP requests", Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}

	m.reg.MustRegister(
		m.connGauge, m.iniCounter, m.reqCounter, m.resCounter, m.hijCounter,
		m.decodes, m.symbols, m.skipped, m.padding, m.bytes, m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)

	return m
}

// Registry is used by the tests to gather the metrics.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// ObserveDecode counts one decoding: its mode, its status and its stats.
func (m *Metrics) ObserveDecode(mode string, st b32.Stats, err error) {
	if err != nil {
		m.decodes.WithLabelValues(mode, "error").Inc()
		return
	}

	m.decodes.WithLabelValues(mode, "ok").Inc()
	m.symbols.Add(float64(st.Symbols))
	m.skipped.Add(float64(st.Skipped))
	m.padding.Add(float64(st.Padding))
	m.bytes.Add(float64(st.Bytes))
}

// StartServer serves the endpoint "/metrics" in background.
// A port <= 0 disables the export.
func (m *Metrics) StartServer(port int) {
	if port <= 0 {
		log.Info("Disable Prometheus, export port=", port)
		return
	}

	addr := ":" + strconv.Itoa(port)

	go func() {
		err := http.ListenAndServe(addr, m.Handler())
		log.Error("Prometheus export stopped: ", err)
	}()

	log.Info("Prometheus export http://localhost" + addr + "/metrics")
}

// Handler returns the endpoint "/metrics".
func (m *Metrics) Handler() http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
	return r
}

// Count measures the duration of the requests
// and logs the outgoing responses.
// Count must be mounted within the chi router to label the route pattern.
func (m *Metrics) Count(next http.Handler) http.Handler {
	log.Info("Middleware metrics: count requests and log responses")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		record := &statusRecorder{ResponseWriter: w, Code: http.StatusOK}

		next.ServeHTTP(record, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		duration := time.Since(start)
		code := strconv.Itoa(record.Code)
		m.duration.WithLabelValues(r.Method, route, code).Observe(duration.Seconds())

		log.Print("out ", r.RemoteAddr, " ", r.Method, " ", security.Sanitize(r.RequestURI), " ", code, " ", duration)
	})
}

// ConnState counts the HTTP client connections.
func (m *Metrics) ConnState(_ net.Conn, cs http.ConnState) {
	switch cs {
	// StateNew: the client just connects, the server expects its request.
	case http.StateNew:
		m.iniCounter.Inc()
		m.connGauge.Inc()

	// StateActive: a request is being received.
	case http.StateActive:
		m.reqCounter.Inc()

	// StateIdle: the server has handled the request and waits in keep-alive.
	case http.StateIdle:
		m.resCounter.Inc()

	// StateHijacked: terminal state.
	case http.StateHijacked:
		m.hijCounter.Inc()
		m.connGauge.Dec()

	// StateClosed: terminal state.
	case http.StateClosed:
		m.connGauge.Dec()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	Code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.Code = code
	r.ResponseWriter.WriteHeader(code)
}
