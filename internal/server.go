package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"github.com/sashkashishka/balakanyna-sub000/pkg/config"
	"github.com/sashkashishka/balakanyna-sub000/pkg/health"
	"github.com/sashkashishka/balakanyna-sub000/pkg/logger"
)

const defaultMaxHeaderBytes = 1 << 20 // 1 MB

var (
	ErrServerAlreadyRunning = errors.New("server: already running")
	ErrListen               = errors.New("server: failed to listen")
)

// ServerConfig is the listener configuration.
type ServerConfig = config.Server

type namedCloser struct {
	name string
	fn   func(ctx context.Context) error
}

type opsRoute struct {
	path    string
	handler http.Handler
}

// Server owns the HTTP listener and the shutdown order of shared resources:
// in-flight requests, then the store, then extra closers, then the logger.
type Server struct {
	cfg           ServerConfig
	router        http.Handler
	httpServer    *http.Server
	logger        *slog.Logger
	store         Store
	flush         func(ctx context.Context) error
	addr          atomic.Value
	errCh         chan error
	health        health.Checks
	closers       []namedCloser
	ops           []opsRoute
	destroyErr    error
	destroyOnce   sync.Once
	running       atomic.Bool
	forcedCloses  atomic.Int32
	healthEnabled bool
}

// NewServer prepares a server for router. Nothing is bound until Listen.
//
// Request bounds reading a request (headers included); Connection bounds
// writing the response and keep-alive idling.
func NewServer(cfg ServerConfig, router http.Handler, opts ...ServerOption) *Server {
	s := &Server{
		cfg:    cfg,
		router: router,
		logger: logger.Discard(),
		errCh:  make(chan error, 1),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Handler:           s.handler(),
		ReadTimeout:       cfg.Timeouts.Request,
		ReadHeaderTimeout: cfg.Timeouts.Request,
		WriteTimeout:      cfg.Timeouts.Connection,
		IdleTimeout:       cfg.Timeouts.Connection,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	return s
}

// handler serves operational endpoints and hands everything else to the router.
func (s *Server) handler() http.Handler {
	if !s.healthEnabled && len(s.ops) == 0 {
		return s.router
	}

	mux := chi.NewRouter()
	if s.healthEnabled {
		mux.Get("/health/live", health.LivenessHandler())
		mux.Get("/health/ready", health.ReadinessHandler(s.health, health.WithLogger(s.logger)))
	}
	for _, r := range s.ops {
		mux.Method(http.MethodGet, r.path, r.handler)
	}
	mux.NotFound(s.router.ServeHTTP)
	mux.MethodNotAllowed(s.router.ServeHTTP)
	return mux
}

// Listen binds the configured port on all interfaces and serves in the
// background. Serve failures are reported on Errors.
func (s *Server) Listen() error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerAlreadyRunning
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		s.running.Store(false)
		return errors.Join(ErrListen, err)
	}
	s.addr.Store(ln.Addr().String())

	s.logger.Info("server starting", slog.String("address", ln.Addr().String()))

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errCh <- err
		}
	}()
	return nil
}

// Errors delivers a fatal serve error, at most once.
func (s *Server) Errors() <-chan error {
	return s.errCh
}

// Addr returns the bound address, or "" before Listen.
func (s *Server) Addr() string {
	addr, _ := s.addr.Load().(string)
	return addr
}

// Destroy stops the server and releases resources. In-flight requests get
// the close timeout to finish, after which remaining connections are
// closed forcibly. Then the store, extra closers and the logger are closed.
// A server that never started counts as already stopped. Only the first
// call does any work; later calls return its result.
func (s *Server) Destroy(ctx context.Context, sig os.Signal) error {
	s.destroyOnce.Do(func() {
		s.destroyErr = s.destroy(ctx, sig)
	})
	return s.destroyErr
}

func (s *Server) destroy(ctx context.Context, sig os.Signal) error {
	sigName := "none"
	if sig != nil {
		sigName = sig.String()
	}
	s.logger.Info("shutting down server", slog.String("signal", sigName))

	var errs []error
	if err := s.shutdown(ctx); err != nil {
		s.logger.Error("server close failed", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if s.store != nil {
		s.store.Close()
	}

	for _, c := range s.closers {
		if err := c.fn(ctx); err != nil {
			s.logger.Error("resource close failed",
				slog.String("resource", c.name),
				slog.String("error", err.Error()),
			)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		s.logger.Error("shutdown completed with errors")
	} else {
		s.logger.Info("shutdown completed")
	}

	if s.flush != nil {
		if err := s.flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (s *Server) shutdown(ctx context.Context) error {
	if !s.running.Load() {
		return nil
	}
	defer s.running.Store(false)

	shutdownCtx := ctx
	if s.cfg.Timeouts.Close > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeouts.Close)
		defer cancel()
	}

	err := s.httpServer.Shutdown(shutdownCtx)
	switch {
	case err == nil, errors.Is(err, http.ErrServerClosed):
		return nil
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		s.logger.Warn("forcing connection close", slog.Duration("timeout", s.cfg.Timeouts.Close))
		s.forcedCloses.Add(1)
		if cerr := s.httpServer.Close(); cerr != nil && !errors.Is(cerr, http.ErrServerClosed) {
			return cerr
		}
		return nil
	default:
		return err
	}
}
