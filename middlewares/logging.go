package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sashkashishka/balakanyna-sub000/internal"
)

var errPanicked = errors.New("panic in request chain")

// Logging logs one record per request once the rest of the chain returns.
// When the chain fails, the status is the one the error will be answered with.
// A panic passing through is logged as a 500 and keeps unwinding.
func Logging() Middleware {
	return func(c *internal.Context, next internal.Next[*internal.Context]) (err error) {
		start := time.Now()
		status := http.StatusInternalServerError
		failure := errPanicked
		defer func() { logRequest(c, start, status, failure) }()

		err = next(c)
		status, failure = responseStatus(c, err), err
		return err
	}
}

func logRequest(c *internal.Context, start time.Time, status int, err error) {
	attrs := []any{
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)),
		slog.Int64("size", c.Response().Size()),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}
	c.Logger().Log(c.Context(), level, "request", attrs...)
}

func responseStatus(c *internal.Context, err error) int {
	if err != nil && !c.Written() {
		return internal.ToHTTPError(err).StatusCode()
	}
	return c.Response().Status()
}
