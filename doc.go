// Package balakanyna is the HTTP backend of the balakanyna task service.
//
// It is built around a small request-dispatch core: a generic middleware
// composer, a Router that runs one chain per request, a Context with JSON,
// cookie, token and short-id helpers, and a Server that owns graceful
// shutdown of the listener and shared resources.
//
// # Quick Start
//
//	r, err := balakanyna.NewRouter(balakanyna.Deps{Store: pool, Logger: log, Config: &cfg})
//	if err != nil {
//	    return err
//	}
//	r.Use(middlewares.Logging(), middlewares.Recover())
//	r.Post("/echo", balakanyna.HandlerFunc(func(c *balakanyna.Context) error {
//	    return c.JSON(http.StatusOK, map[string]bool{"ok": true})
//	}))
//	r.Use(middlewares.NotFound())
//	r.HandleError(middlewares.ErrorHandler())
//
//	srv := balakanyna.NewServer(cfg.Server, r, balakanyna.WithStore(pool))
//	return balakanyna.Run(ctx, srv)
//
// # Middleware
//
// A middleware receives the context and a continuation. Calling next hands
// control to the rest of the chain and returns when it finishes, so code
// after next runs on the way out:
//
//	func timing(c *balakanyna.Context, next balakanyna.Next) error {
//	    start := time.Now()
//	    err := next(c)
//	    c.Logger().InfoContext(c.Context(), "took", "d", time.Since(start))
//	    return err
//	}
//
//	r.Use(balakanyna.MiddlewareFunc(timing))
//
// Calling next twice yields [ErrNextCalledTwice].
//
// # Handlers
//
// Handlers implement the [Handler] interface to declare routes:
//
//	type TaskHandler struct{ repo *repository.Tasks }
//
//	func (h *TaskHandler) Routes(r *balakanyna.Router) {
//	    r.Get("/api/task", balakanyna.HandlerFunc(h.get))
//	}
//
// Routes match on exact method and path. Register them with [Router.Mount].
//
// # Errors
//
// Return an [HTTPError] to control the status and the "error" code of the
// response envelope; anything else becomes a 500 with code "Unknown":
//
//	return balakanyna.ErrNotFound("task not found", balakanyna.WithErrorCode("TASK_NOT_FOUND"))
//
// # Shutdown
//
// [Run] listens, waits for SIGINT, SIGTERM or SIGUSR2, then calls
// [Server.Destroy], which drains requests for the close timeout, closes the
// store and extra closers, and flushes the logger.
package balakanyna
