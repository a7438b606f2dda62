package middlewares

import (
	"github.com/sashkashishka/balakanyna-sub000/internal"
)

// NotFound is the terminal fallback of the chain. It answers every request
// that reached it with 404 NOT_FOUND, so it must be added after all routes.
func NotFound() internal.HandlerFunc {
	return func(*internal.Context) error {
		return internal.ErrNotFound("route not found",
			internal.WithErrorCode(internal.CodeNotFound),
		)
	}
}
