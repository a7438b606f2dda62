package middlewares

import (
	"net/http"

	"github.com/sashkashishka/balakanyna-sub000/internal"
)

// UnmatchedRoute labels every request that no registered route claimed:
// 404s, CORS preflights and anything else answered before routing.
const UnmatchedRoute = "unmatched"

// RequestRecorder is satisfied by *metrics.Metrics.
type RequestRecorder interface {
	Begin(method string) func(route string, status int)
}

// Metrics records request count, latency and the in-flight gauge per route.
// A panic passing through is recorded as a 500 and keeps unwinding.
func Metrics(rec RequestRecorder) Middleware {
	return func(c *internal.Context, next internal.Next[*internal.Context]) (err error) {
		done := rec.Begin(c.Method())
		status := http.StatusInternalServerError
		defer func() { done(routeLabel(c), status) }()

		err = next(c)
		status = responseStatus(c, err)
		return err
	}
}

func routeLabel(c *internal.Context) string {
	if r := c.Route(); r != "" {
		return r
	}
	return UnmatchedRoute
}
