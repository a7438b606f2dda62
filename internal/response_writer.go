package internal

import (
	"bufio"
	"net"
	"net/http"
	"sync/atomic"
)

// ResponseWriter remembers what a handler sent so the outbound half of the
// middleware chain (logging, metrics, error handler) can look at it. The
// status line goes out at most once.
type ResponseWriter struct {
	http.ResponseWriter
	sent   atomic.Bool
	status atomic.Int32
	size   atomic.Int64
}

// NewResponseWriter wraps w.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	rw := &ResponseWriter{ResponseWriter: w}
	rw.status.Store(http.StatusOK)
	return rw
}

// WriteHeader forwards only the first call.
func (w *ResponseWriter) WriteHeader(code int) {
	if !w.sent.CompareAndSwap(false, true) {
		return
	}
	w.status.Store(int32(code))
	w.ResponseWriter.WriteHeader(code)
}

// Write commits an implicit 200 if no status was sent.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if w.sent.CompareAndSwap(false, true) {
		w.ResponseWriter.WriteHeader(int(w.status.Load()))
	}
	n, err := w.ResponseWriter.Write(b)
	w.size.Add(int64(n))
	return n, err
}

// Status is 200 until something else has been sent.
func (w *ResponseWriter) Status() int { return int(w.status.Load()) }

// Size counts body bytes.
func (w *ResponseWriter) Size() int64 { return w.size.Load() }

// Written reports whether the status line is committed.
func (w *ResponseWriter) Written() bool { return w.sent.Load() }

func (w *ResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Unwrap is used by http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
