package middlewares

import (
	"errors"

	"github.com/sashkashishka/balakanyna-sub000/internal"
)

// Middleware is what every constructor in this package returns.
type Middleware = internal.MiddlewareFunc[*internal.Context]

// PanicError is a panic value captured by Recover or the router.
type PanicError = internal.PanicError

// AsPanicError digs a recovered panic out of an error chain.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	ok := errors.As(err, &pe)
	return pe, ok
}

// IsPanicError reports whether err carries a recovered panic.
func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}
