package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/sashkashishka/balakanyna-sub000/internal"
)

// ErrorHandler answers a failed request with the JSON error envelope.
// Server errors are logged with their cause; client errors are not.
// Nothing is written when the response has already started.
func ErrorHandler() internal.ErrorHandler {
	return func(c *internal.Context, err error) error {
		httpErr := internal.ToHTTPError(err)

		if httpErr.StatusCode() >= http.StatusInternalServerError {
			attrs := []any{
				slog.String("error", err.Error()),
				slog.String("code", httpErr.ErrorCode),
			}
			if pe, ok := AsPanicError(err); ok && len(pe.Stack) > 0 {
				attrs = append(attrs, slog.String("stack", string(pe.Stack)))
			}
			c.Logger().ErrorContext(c.Context(), "request failed", attrs...)
		}

		if c.Written() {
			return nil
		}
		return c.Throw(httpErr)
	}
}
