// Package internal holds the request dispatch core: the generic middleware
// composer, the Router built on it, the per-request Context and the Server
// that owns the listener and shutdown order.
//
// Import "github.com/sashkashishka/balakanyna-sub000" instead, which re-exports the public API.
//
// # Middleware
//
// Everything in a chain is a Middleware. A middleware receives the request
// context and a continuation; it either answers and returns, or calls next
// to hand control to the rest of the chain. A HandlerFunc is a middleware
// that never calls next.
//
//	r.Use(middlewares.Recover(), middlewares.Logging())
//	r.Post("/api/auth/login", internal.HandlerFunc(h.login))
//	r.Use(middlewares.NotFound())
//
// Routes are registered in order and matched by exact method and path.
// A request that matches nothing falls through to whatever was added last.
//
// # Errors
//
// A middleware that returns an error, or panics, ends the chain. The error
// goes to the function set with Router.HandleError, which usually calls
// Context.Throw to write the JSON envelope:
//
//	{"error": "NOT_FOUND", "message": "task not found"}
//
// # Shutdown
//
// Server.Destroy stops accepting connections, gives in-flight requests the
// close timeout, closes the store and any registered closers, then flushes
// the logger. It is safe to call more than once.
package internal
