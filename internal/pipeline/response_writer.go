// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"sync"
)

// responseWriter is a decorator around [http.ResponseWriter] that turns the
// first WriteHeader (or implicit WriteHeader via Write) into the response
// finalization event.
//
// onFinalize runs exactly once with the status about to be sent, before the
// status line reaches the client, so it may still add headers. Subsequent
// WriteHeader calls are silently ignored, mirroring the behaviour documented
// by the [http.ResponseWriter] interface.
type responseWriter struct {
	http.ResponseWriter

	once       sync.Once
	onFinalize func(status int)

	// status is the HTTP status code recorded on finalization.
	// It is zero until the response is committed.
	status int

	// size is the running total of bytes successfully written to the body.
	size int

	wroteHeader bool
}

func newResponseWriter(w http.ResponseWriter, onFinalize func(status int)) *responseWriter {
	return &responseWriter{ResponseWriter: w, onFinalize: onFinalize}
}

// WriteHeader finalizes the response with statusCode. Informational 1xx
// headers other than 101 are forwarded without finalizing.
func (w *responseWriter) WriteHeader(statusCode int) {
	if statusCode >= 100 && statusCode < 200 && statusCode != http.StatusSwitchingProtocols {
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}

	w.once.Do(func() {
		w.status = statusCode
		if w.onFinalize != nil {
			w.onFinalize(statusCode)
		}
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	})
}

// Write implicitly finalizes with [http.StatusOK] when nothing was written
// yet, then forwards b and accumulates the number of bytes written.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Committed reports whether the status line was already sent.
func (w *responseWriter) Committed() bool {
	return w.wroteHeader
}

func (w *responseWriter) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("underlying response writer does not support hijacking")
	}
	conn, buf, err := h.Hijack()
	if err == nil {
		// the connection now belongs to the caller, finalize without a status line
		w.once.Do(func() {
			w.status = http.StatusSwitchingProtocols
			if w.onFinalize != nil {
				w.onFinalize(w.status)
			}
			w.wroteHeader = true
		})
	}
	return conn, buf, err
}

// Unwrap exposes the underlying writer to [http.ResponseController].
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// committer is implemented by writers that know whether the response was
// already sent. Middlewares wrapping the chain writer should forward it.
type committer interface {
	Committed() bool
}

// IsCommitted reports whether w, or a writer it wraps, already sent the
// status line.
func IsCommitted(w http.ResponseWriter) bool {
	for w != nil {
		if c, ok := w.(committer); ok {
			return c.Committed()
		}
		u, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			return false
		}
		w = u.Unwrap()
	}
	return false
}
