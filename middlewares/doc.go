// Package middlewares provides the standard middlewares of a balakanyna router.
//
// Every constructor returns a value that can be passed to Router.Use or to a
// route registration:
//
//	r.Use(
//	    middlewares.Logging(),
//	    middlewares.Metrics(m),
//	    middlewares.Recover(),
//	    middlewares.CORS(middlewares.WithAllowOrigins(cfg.CORS.Origins...)),
//	)
//	r.Get("/api/admin/auth/me", middlewares.Auth(), internal.HandlerFunc(h.me))
//	r.Use(middlewares.NotFound())
//	r.HandleError(middlewares.ErrorHandler())
//
// # Order
//
// Logging and Metrics go first and record on the way out; a panic that
// reaches them is still recorded as a 500. Recover sits right after them
// so a panicking handler turns into an error they can inspect.
// Metrics labels requests by the registered route pattern and everything
// unrouted as "unmatched".
// CORS answers preflight requests before any route sees them.
// NotFound is terminal and must be added after every route.
//
// # Errors
//
// Middlewares report failures by returning an *internal.HTTPError rather than
// writing a response. ErrorHandler turns any error into the JSON envelope
// and logs server errors.
//
// # Auth
//
// Auth reads a token from the "token" cookie or a Bearer header and checks
// it with the router JWT helper. Handlers read the verified claims with Claims:
//
//	claims, _ := middlewares.Claims(c)
//	name, _ := claims["name"].(string)
package middlewares
