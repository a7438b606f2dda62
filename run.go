package balakanyna

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// ShutdownSignals are the signals Run treats as a shutdown request.
var ShutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGUSR2}

// Run starts srv and blocks until a shutdown signal arrives, the server
// fails, or ctx is cancelled. Then it destroys srv and stops listening
// for signals.
//
// Returns nil on clean shutdown, or the serve error joined with any
// shutdown error.
func Run(ctx context.Context, srv *Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, ShutdownSignals...)
	defer signal.Stop(sigCh)

	if err := srv.Listen(); err != nil {
		return err
	}

	var sig os.Signal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case s := <-sigCh:
			sig = s
			return nil
		case err := <-srv.Errors():
			return err
		case <-gctx.Done():
			return nil
		}
	})
	serveErr := g.Wait()

	// A fresh context: the parent may already be cancelled.
	if err := srv.Destroy(context.WithoutCancel(ctx), sig); err != nil {
		if serveErr != nil {
			return errors.Join(serveErr, err)
		}
		return err
	}
	return serveErr
}
