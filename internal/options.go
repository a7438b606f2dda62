package internal

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sashkashishka/balakanyna-sub000/pkg/cookie"
	"github.com/sashkashishka/balakanyna-sub000/pkg/health"
)

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithClock replaces the time source used by the JWT and Hash helpers.
func WithClock(now func() time.Time) RouterOption {
	return func(r *Router) {
		if now != nil {
			r.clock = now
		}
	}
}

// WithIDGenerator replaces the correlation id generator.
func WithIDGenerator(fn func() string) RouterOption {
	return func(r *Router) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// WithCookieDefaults applies opts on top of the configured cookie attributes.
func WithCookieDefaults(opts ...cookie.Option) RouterOption {
	return func(r *Router) {
		r.cookieDefaults = cookie.NewOptions(r.cookieDefaults, opts...)
	}
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets the lifecycle logger.
func WithServerLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the store closed during Destroy.
func WithStore(st Store) ServerOption {
	return func(s *Server) {
		s.store = st
	}
}

// WithCloser adds a resource closed after the store during Destroy.
func WithCloser(name string, fn func(ctx context.Context) error) ServerOption {
	return func(s *Server) {
		if fn != nil {
			s.closers = append(s.closers, namedCloser{name: name, fn: fn})
		}
	}
}

// WithLoggerFlush sets the final step of Destroy.
func WithLoggerFlush(fn func(ctx context.Context) error) ServerOption {
	return func(s *Server) {
		s.flush = fn
	}
}

// WithHealthChecks serves /health/live and /health/ready running checks.
func WithHealthChecks(checks health.Checks) ServerOption {
	return func(s *Server) {
		s.health = checks
		s.healthEnabled = true
	}
}

// WithOpsHandler mounts h for GET requests on path in front of the router.
func WithOpsHandler(path string, h http.Handler) ServerOption {
	return func(s *Server) {
		if path != "" && h != nil {
			s.ops = append(s.ops, opsRoute{path: path, handler: h})
		}
	}
}
