package internal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sashkashishka/balakanyna-sub000/pkg/config"
)

// maxBodySize caps request bodies read by Bind.
const maxBodySize = 1 << 20

// Store is the shared data store handle owned by the router and closed by
// the server on shutdown. *pgxpool.Pool satisfies it.
type Store interface {
	Ping(ctx context.Context) error
	Close()
}

// ErrorResponse is the JSON envelope written by Throw.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Context is the per-request state handed to every middleware.
// It must not be retained after the request completes.
type Context struct {
	request  *http.Request
	response *ResponseWriter
	router   *Router
	query    url.Values
	cookie   *Cookie
	hash     *Hash
	id       string
	route    string
}

func newContext(r *Router, w http.ResponseWriter, req *http.Request, id string) *Context {
	return &Context{
		request:  req,
		response: NewResponseWriter(w),
		router:   r,
		id:       id,
	}
}

// Method returns the request method.
func (c *Context) Method() string {
	return c.request.Method
}

// Path returns the request URL path without the query string.
func (c *Context) Path() string {
	return c.request.URL.Path
}

// Route returns the pattern of the registered route that matched the
// request, or "" when no route matched (yet).
func (c *Context) Route() string {
	return c.route
}

// ID returns the correlation id of the request.
func (c *Context) ID() string {
	return c.id
}

func (c *Context) Request() *http.Request {
	return c.request
}

func (c *Context) Response() *ResponseWriter {
	return c.response
}

// Context returns the request context. It carries the correlation id for logging.
func (c *Context) Context() context.Context {
	return c.request.Context()
}

func (c *Context) URL() *url.URL {
	return c.request.URL
}

// Query returns the first value of a query parameter.
func (c *Context) Query(name string) string {
	if c.query == nil {
		c.query = c.request.URL.Query()
	}
	return c.query.Get(name)
}

// Header returns a request header value.
func (c *Context) Header(name string) string {
	return c.request.Header.Get(name)
}

// Bind decodes a single JSON value from the request body into v. Unknown
// fields and anything after the value are rejected.
func (c *Context) Bind(v any) error {
	dec := json.NewDecoder(io.LimitReader(c.request.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		msg := "invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "request body is empty"
		}
		return ErrBadRequest(msg, WithErrorCode(CodeInvalidBody), WithError(err))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ErrBadRequest("unexpected data after JSON body",
			WithErrorCode(CodeInvalidBody), WithError(ErrTrailingData))
	}
	return nil
}

// JSON serializes v and writes it with status code. Serialization happens
// before anything is sent, so a failure leaves the response untouched.
func (c *Context) JSON(code int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, ErrFailedSerialization.Error(),
			WithErrorCode(CodeFailedSerialization),
			WithError(errors.Join(ErrFailedSerialization, err)),
		)
	}

	c.Logger().DebugContext(c.Context(), "response",
		slog.Int("status", code),
		slog.String("body", string(body)),
	)

	c.response.Header().Set("Content-Type", "application/json")
	c.response.WriteHeader(code)
	_, err = c.response.Write(body)
	return err
}

// NoContent writes a status without a body.
func (c *Context) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

// Throw writes err as the error envelope. The status and code come from an
// HTTPError in err's chain, or default to 500 and "Unknown".
func (c *Context) Throw(err error) error {
	httpErr := ToHTTPError(err)
	return c.JSON(httpErr.StatusCode(), ErrorResponse{
		Error:   httpErr.ErrorCode,
		Message: httpErr.Message,
	})
}

// Written reports whether a response status has been sent.
func (c *Context) Written() bool {
	return c.response.Written()
}

// Cookie returns the cookie helper, building it on first use.
func (c *Context) Cookie() *Cookie {
	if c.cookie == nil {
		c.cookie = newCookie(c.request, c.response, c.router.cookieDefaults)
	}
	return c.cookie
}

// JWT returns the token helper shared by all requests of the router.
func (c *Context) JWT() *JWT {
	return c.router.jwt
}

// Hash returns the short-id helper, building it on first use.
func (c *Context) Hash() *Hash {
	if c.hash == nil {
		c.hash = NewHash(c.router.clock)
	}
	return c.hash
}

// Logger returns the router logger. Records logged with c.Context()
// carry the correlation id.
func (c *Context) Logger() *slog.Logger {
	return c.router.deps.Logger
}

// Store returns the shared data store handle.
func (c *Context) Store() Store {
	return c.router.deps.Store
}

// Config returns the application configuration.
func (c *Context) Config() *config.Config {
	return c.router.deps.Config
}

// Now returns the router clock reading.
func (c *Context) Now() time.Time {
	return c.router.clock()
}

// Set stores a request-scoped value.
func (c *Context) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

// Get returns a value stored with Set.
func (c *Context) Get(key any) any {
	return c.request.Context().Value(key)
}
