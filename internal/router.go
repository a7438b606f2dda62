package internal

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/sashkashishka/balakanyna-sub000/pkg/config"
	"github.com/sashkashishka/balakanyna-sub000/pkg/cookie"
	"github.com/sashkashishka/balakanyna-sub000/pkg/logger"
)

// RequestIDHeader carries the correlation id in both directions.
const RequestIDHeader = "X-Request-ID"

// Deps are shared by every request of a router.
type Deps struct {
	Store  Store
	Logger *slog.Logger
	Config *config.Config
}

// Router dispatches requests through a middleware chain and reports
// failures to a single error handler.
type Router struct {
	composer       *Composer[*Context]
	errorHandler   ErrorHandler
	jwt            *JWT
	newID          func() string
	clock          func() time.Time
	deps           Deps
	cookieDefaults cookie.Options
}

// NewRouter builds a Router. A nil Logger discards output and a nil Config
// falls back to config.Defaults. The JWT helper is built from Config.JWT.
func NewRouter(deps Deps, opts ...RouterOption) (*Router, error) {
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}
	if deps.Config == nil {
		cfg := config.Defaults()
		deps.Config = &cfg
	}

	r := &Router{
		composer:     NewComposer[*Context](),
		errorHandler: func(*Context, error) error { return nil },
		newID:        logger.NewRequestID,
		clock:        time.Now,
		deps:         deps,
	}
	r.cookieDefaults = cookie.NewOptions(cookie.DefaultOptions(),
		cookie.WithDomain(deps.Config.Cookie.Domain),
		cookie.WithSecure(deps.Config.Cookie.Secure),
		cookie.WithSameSite(cookie.ParseSameSite(deps.Config.Cookie.SameSite)),
	)
	for _, opt := range opts {
		opt(r)
	}

	jwt, err := NewJWT(deps.Config.JWT.Key, deps.Config.JWT.ExpirationTime, r.clock)
	if err != nil {
		return nil, err
	}
	r.jwt = jwt

	return r, nil
}

// Use appends middlewares to the chain.
func (r *Router) Use(mw ...Middleware[*Context]) *Router {
	r.composer.Use(mw...)
	return r
}

func (r *Router) Get(route string, mw ...Middleware[*Context]) *Router {
	return r.route(http.MethodGet, route, mw)
}

func (r *Router) Post(route string, mw ...Middleware[*Context]) *Router {
	return r.route(http.MethodPost, route, mw)
}

func (r *Router) Put(route string, mw ...Middleware[*Context]) *Router {
	return r.route(http.MethodPut, route, mw)
}

func (r *Router) Patch(route string, mw ...Middleware[*Context]) *Router {
	return r.route(http.MethodPatch, route, mw)
}

func (r *Router) Delete(route string, mw ...Middleware[*Context]) *Router {
	return r.route(http.MethodDelete, route, mw)
}

// route registers mw behind a marker that records the matched pattern on
// the context, so outbound middlewares can tell matched requests apart.
func (r *Router) route(method, pattern string, mw []Middleware[*Context]) *Router {
	mark := MiddlewareFunc[*Context](func(c *Context, next Next[*Context]) error {
		c.route = pattern
		return next(c)
	})
	r.composer.Route(method, pattern, append([]Middleware[*Context]{mark}, mw...)...)
	return r
}

// Mount lets each handler register its routes.
func (r *Router) Mount(handlers ...Handler) *Router {
	for _, h := range handlers {
		h.Routes(r)
	}
	return r
}

// HandleError replaces the error handler. The default ignores errors.
func (r *Router) HandleError(h ErrorHandler) *Router {
	if h != nil {
		r.errorHandler = h
	}
	return r
}

// JWT returns the token helper shared with every request context.
func (r *Router) JWT() *JWT {
	return r.jwt
}

// Logger returns the router logger.
func (r *Router) Logger() *slog.Logger {
	return r.deps.Logger
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.Handle(w, req)
}

// Handle runs the chain for one request with a terminal continuation that
// does nothing. A returned error or a panic goes to the error handler.
func (r *Router) Handle(w http.ResponseWriter, req *http.Request) {
	id := req.Header.Get(RequestIDHeader)
	if id == "" || len(id) > 128 {
		id = r.newID()
	}
	req = req.WithContext(logger.WithRequestID(req.Context(), id))
	w.Header().Set(RequestIDHeader, id)

	ctx := newContext(r, w, req, id)
	if err := r.dispatch(ctx); err != nil {
		if herr := r.handleError(ctx, err); herr != nil {
			r.deps.Logger.ErrorContext(ctx.Context(), "error handler failed",
				slog.String("error", herr.Error()),
				slog.String("cause", err.Error()),
			)
		}
	}
}

func (r *Router) dispatch(ctx *Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &PanicError{Value: rec, Stack: debug.Stack()}
		}
	}()
	return r.composer.Invoke(ctx, func(*Context) error { return nil })
}

func (r *Router) handleError(ctx *Context, cause error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("error handler panic: %v", rec)
		}
	}()
	return r.errorHandler(ctx, cause)
}
