package internal

// Handler declares routes on a router.
//
// Example:
//
//	type TaskHandler struct {
//	    repo *repository.Queries
//	}
//
//	func (h *TaskHandler) Routes(r *internal.Router) {
//	    r.Get("/api/task", internal.HandlerFunc(h.get))
//	}
type Handler interface {
	Routes(r *Router)
}

// HandlerFunc is a terminal middleware: it handles the request and never
// continues the chain. Returning a non-nil error reaches the error handler.
type HandlerFunc func(c *Context) error

// Invoke calls h and ignores next.
func (h HandlerFunc) Invoke(c *Context, _ Next[*Context]) error {
	return h(c)
}

// ErrorHandler receives any error returned by the chain, including recovered panics.
type ErrorHandler func(c *Context, err error) error
