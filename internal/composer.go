package internal

import (
	"errors"
	"net/http"
	"strings"
)

// ErrNextCalledTwice is returned when a middleware invokes its continuation
// more than once during a single chain run.
var ErrNextCalledTwice = errors.New("next() called multiple times")

// Routable is the constraint on contexts a Composer can dispatch.
// Method and Path feed the method and route filters.
type Routable interface {
	comparable
	Method() string
	Path() string
}

// Next continues the chain. Passing the zero value of C continues with the
// context the current middleware received.
type Next[C Routable] func(ctx C) error

// Middleware is a unit of request processing. Code before next runs on the
// way in, code after next runs on the way out.
type Middleware[C Routable] interface {
	Invoke(ctx C, next Next[C]) error
}

// MiddlewareFunc adapts a plain function to Middleware.
type MiddlewareFunc[C Routable] func(ctx C, next Next[C]) error

// Invoke calls f.
func (f MiddlewareFunc[C]) Invoke(ctx C, next Next[C]) error {
	return f(ctx, next)
}

// PassThrough returns a middleware that only calls next.
func PassThrough[C Routable]() MiddlewareFunc[C] {
	return func(ctx C, next Next[C]) error {
		if next == nil {
			return nil
		}
		return next(ctx)
	}
}

// Unwrap normalises any middleware shape to a MiddlewareFunc.
// A nil middleware behaves like PassThrough.
func Unwrap[C Routable](m Middleware[C]) MiddlewareFunc[C] {
	switch mw := m.(type) {
	case nil:
		return PassThrough[C]()
	case MiddlewareFunc[C]:
		if mw == nil {
			return PassThrough[C]()
		}
		return mw
	default:
		return mw.Invoke
	}
}

// Optional runs m only when pred accepts the context; otherwise it calls next.
func Optional[C Routable](pred func(ctx C) bool, m Middleware[C]) MiddlewareFunc[C] {
	run := Unwrap(m)
	return func(ctx C, next Next[C]) error {
		if pred(ctx) {
			return run(ctx, next)
		}
		if next == nil {
			return nil
		}
		return next(ctx)
	}
}

// Compose merges mw into a single middleware that runs them in order.
// Each run tracks the highest dispatched index; going back or repeating
// an index fails with ErrNextCalledTwice before anything else executes.
func Compose[C Routable](mw ...Middleware[C]) MiddlewareFunc[C] {
	switch len(mw) {
	case 0:
		return PassThrough[C]()
	case 1:
		return Unwrap(mw[0])
	}

	chain := make([]MiddlewareFunc[C], len(mw))
	for i, m := range mw {
		chain[i] = Unwrap(m)
	}

	return func(ctx C, next Next[C]) error {
		last := -1

		var dispatch func(i int, c C) error
		dispatch = func(i int, c C) error {
			if i <= last {
				return ErrNextCalledTwice
			}
			last = i

			if i == len(chain) {
				if next == nil {
					return nil
				}
				return next(c)
			}

			return chain[i](c, func(nc C) error {
				var zero C
				if nc == zero {
					nc = c
				}
				return dispatch(i+1, nc)
			})
		}

		return dispatch(0, ctx)
	}
}

// MethodIs matches the request method case-insensitively.
func MethodIs[C Routable](method string) func(C) bool {
	return func(ctx C) bool {
		return strings.EqualFold(ctx.Method(), method)
	}
}

// RouteIs matches the request path exactly.
func RouteIs[C Routable](route string) func(C) bool {
	return func(ctx C) bool {
		return ctx.Path() == route
	}
}

// Composer collects middlewares and keeps a composed chain ready to run.
// Registration is not synchronised; finish it before serving traffic.
type Composer[C Routable] struct {
	middlewares []Middleware[C]
	chain       MiddlewareFunc[C]
}

// NewComposer returns an empty Composer.
func NewComposer[C Routable]() *Composer[C] {
	return &Composer[C]{chain: PassThrough[C]()}
}

// Use appends mw and recomposes the chain.
func (c *Composer[C]) Use(mw ...Middleware[C]) *Composer[C] {
	c.middlewares = append(c.middlewares, mw...)
	c.chain = Compose(c.middlewares...)
	return c
}

// Route registers mw to run only for the given method and exact path.
func (c *Composer[C]) Route(method, route string, mw ...Middleware[C]) *Composer[C] {
	return c.Use(Optional(MethodIs[C](method), Optional(RouteIs[C](route), Compose(mw...))))
}

func (c *Composer[C]) Get(route string, mw ...Middleware[C]) *Composer[C] {
	return c.Route(http.MethodGet, route, mw...)
}

func (c *Composer[C]) Post(route string, mw ...Middleware[C]) *Composer[C] {
	return c.Route(http.MethodPost, route, mw...)
}

func (c *Composer[C]) Put(route string, mw ...Middleware[C]) *Composer[C] {
	return c.Route(http.MethodPut, route, mw...)
}

func (c *Composer[C]) Patch(route string, mw ...Middleware[C]) *Composer[C] {
	return c.Route(http.MethodPatch, route, mw...)
}

func (c *Composer[C]) Delete(route string, mw ...Middleware[C]) *Composer[C] {
	return c.Route(http.MethodDelete, route, mw...)
}

// Invoke runs the composed chain, so a Composer nests inside another.
func (c *Composer[C]) Invoke(ctx C, next Next[C]) error {
	if c.chain == nil {
		return PassThrough[C]()(ctx, next)
	}
	return c.chain(ctx, next)
}
