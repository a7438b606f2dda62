package balakanyna

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sashkashishka/balakanyna-sub000/internal"
	"github.com/sashkashishka/balakanyna-sub000/pkg/cookie"
	"github.com/sashkashishka/balakanyna-sub000/pkg/health"
)

// Type aliases - public API
type (
	// Router dispatches requests through the middleware chain.
	Router = internal.Router

	// Context is the per-request state handed to every middleware.
	Context = internal.Context

	// Server owns the listener and the shutdown order of shared resources.
	Server = internal.Server

	// ServerConfig is the listener configuration.
	ServerConfig = internal.ServerConfig

	// Deps are shared by every request of a router.
	Deps = internal.Deps

	// Store is the data store handle closed on shutdown.
	Store = internal.Store

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is a terminal middleware.
	HandlerFunc = internal.HandlerFunc

	// Next continues the chain.
	Next = internal.Next[*internal.Context]

	// Middleware is anything that can be placed in a router chain.
	Middleware = internal.Middleware[*internal.Context]

	// MiddlewareFunc adapts a function to Middleware.
	MiddlewareFunc = internal.MiddlewareFunc[*internal.Context]

	// ErrorHandler receives every error the chain returns.
	ErrorHandler = internal.ErrorHandler

	// HTTPError carries a status and an error code to the error handler.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// PanicError wraps a recovered panic.
	PanicError = internal.PanicError

	// ErrorResponse is the JSON error envelope.
	ErrorResponse = internal.ErrorResponse

	// Payload is the claim set of a token.
	Payload = internal.Payload

	// RouterOption configures a Router.
	RouterOption = internal.RouterOption

	// ServerOption configures a Server.
	ServerOption = internal.ServerOption

	// CookieOption overrides a cookie attribute.
	CookieOption = cookie.Option

	// ExtractorSource reads one candidate value from the request.
	ExtractorSource = internal.ExtractorSource

	// Extractor tries sources in order.
	Extractor = internal.Extractor
)

// Error codes
const (
	CodeUnknown             = internal.CodeUnknown
	CodeFailedSerialization = internal.CodeFailedSerialization
	CodeInvalidBody         = internal.CodeInvalidBody
	CodeNotFound            = internal.CodeNotFound
	CodeUnauthorized        = internal.CodeUnauthorized
	CodePanic               = internal.CodePanic

	// RequestIDHeader carries the correlation id.
	RequestIDHeader = internal.RequestIDHeader
)

// HashSize is the length of ids produced by Context.Hash().Update.
var HashSize = internal.HashSize

// Sentinel errors
var (
	ErrNextCalledTwice      = internal.ErrNextCalledTwice
	ErrFailedSerialization  = internal.ErrFailedSerialization
	ErrServerAlreadyRunning = internal.ErrServerAlreadyRunning
	ErrListen               = internal.ErrListen
	ErrEmptyJWTKey          = internal.ErrEmptyJWTKey
	ErrInvalidJWTKey        = internal.ErrInvalidJWTKey
)

// Constructors

// NewRouter builds a Router from shared dependencies.
//
// Example:
//
//	r, err := balakanyna.NewRouter(balakanyna.Deps{
//	    Store:  pool,
//	    Logger: log,
//	    Config: &cfg,
//	})
//	r.Use(middlewares.Recover(), middlewares.Logging())
//	r.Mount(auth.New(repo), task.New(repo, cache))
//	r.Use(middlewares.NotFound())
//	r.HandleError(middlewares.ErrorHandler())
func NewRouter(deps Deps, opts ...RouterOption) (*Router, error) {
	return internal.NewRouter(deps, opts...)
}

// NewServer prepares a server for h. Nothing is bound until Listen.
func NewServer(cfg ServerConfig, h http.Handler, opts ...ServerOption) *Server {
	return internal.NewServer(cfg, h, opts...)
}

// Compose chains middlewares into one, outermost first.
func Compose(mw ...Middleware) MiddlewareFunc {
	return internal.Compose(mw...)
}

// Router options

// WithClock replaces the time source of the JWT and Hash helpers.
func WithClock(now func() time.Time) RouterOption {
	return internal.WithClock(now)
}

// WithIDGenerator replaces the correlation id generator.
func WithIDGenerator(fn func() string) RouterOption {
	return internal.WithIDGenerator(fn)
}

// WithCookieDefaults overrides configured cookie attributes.
func WithCookieDefaults(opts ...CookieOption) RouterOption {
	return internal.WithCookieDefaults(opts...)
}

// Server options

// WithServerLogger sets the lifecycle logger.
func WithServerLogger(l *slog.Logger) ServerOption {
	return internal.WithServerLogger(l)
}

// WithStore sets the store closed after in-flight requests finish.
func WithStore(st Store) ServerOption {
	return internal.WithStore(st)
}

// WithCloser adds a resource closed after the store.
//
// Example:
//
//	balakanyna.WithCloser("redis", func(context.Context) error {
//	    return rdb.Close()
//	})
func WithCloser(name string, fn func(ctx context.Context) error) ServerOption {
	return internal.WithCloser(name, fn)
}

// WithLoggerFlush sets the last step of shutdown, typically logger.Flush.
func WithLoggerFlush(fn func(ctx context.Context) error) ServerOption {
	return internal.WithLoggerFlush(fn)
}

// WithHealthChecks serves /health/live and /health/ready.
// Readiness runs every check and answers 503 if any fails.
func WithHealthChecks(checks health.Checks) ServerOption {
	return internal.WithHealthChecks(checks)
}

// WithOpsHandler mounts h for GET requests on path, outside the router chain.
func WithOpsHandler(path string, h http.Handler) ServerOption {
	return internal.WithOpsHandler(path, h)
}

// Errors

// NewHTTPError creates an HTTPError with the given status.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithErrorCode sets the machine-readable code of an HTTPError.
func WithErrorCode(code string) HTTPErrorOption {
	return internal.WithErrorCode(code)
}

// WithError attaches the underlying cause of an HTTPError.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// AsHTTPError returns the first HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrConflict(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// Extractors

// NewExtractor creates an Extractor trying sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

func FromHeader(name string) ExtractorSource { return internal.FromHeader(name) }
func FromQuery(name string) ExtractorSource  { return internal.FromQuery(name) }
func FromCookie(name string) ExtractorSource { return internal.FromCookie(name) }
func FromBearerToken() ExtractorSource       { return internal.FromBearerToken() }

// Generic helpers

// Query returns a typed query parameter, or the zero value.
func Query[T internal.Scalar](c *Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault returns a typed query parameter, or def.
func QueryDefault[T internal.Scalar](c *Context, name string, def T) T {
	return internal.QueryDefault(c, name, def)
}

// Value returns a request-scoped value stored with Context.Set.
func Value[T any](c *Context, key any) T {
	return internal.Value[T](c, key)
}
