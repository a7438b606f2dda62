package middlewares

import (
	"log/slog"
	"runtime"

	"github.com/sashkashishka/balakanyna-sub000/internal"
)

// DefaultStackSize caps the captured stack trace, in bytes.
const DefaultStackSize = 4 << 10

// RecoverConfig configures Recover.
type RecoverConfig struct {
	StackSize         int
	DisablePrintStack bool
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize ignores non-positive sizes.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		if size > 0 {
			cfg.StackSize = size
		}
	}
}

// WithRecoverDisablePrintStack keeps stack traces out of the log record.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) { cfg.DisablePrintStack = true }
}

// Recover turns a panic further down the chain into a 500 with code PANIC.
// The PanicError stays in the chain for the error handler.
func Recover(opts ...RecoverOption) Middleware {
	cfg := RecoverConfig{StackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	capture := func() []byte {
		if cfg.DisablePrintStack {
			return nil
		}
		buf := make([]byte, cfg.StackSize)
		return buf[:runtime.Stack(buf, false)]
	}

	return func(c *internal.Context, next internal.Next[*internal.Context]) (err error) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			stack := capture()

			attrs := []any{slog.Any("panic", v), slog.String("path", c.Path())}
			if stack != nil {
				attrs = append(attrs, slog.String("stack", string(stack)))
			}
			c.Logger().ErrorContext(c.Context(), "panic recovered", attrs...)

			err = internal.ErrInternal("internal server error",
				internal.WithErrorCode(internal.CodePanic),
				internal.WithError(&PanicError{Value: v, Stack: stack}),
			)
		}()

		return next(c)
	}
}
