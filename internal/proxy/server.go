package proxy

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/julianstephens/omayami/internal/logger"
)

const defaultShutdownTimeout = 10 * time.Second

type Server struct {
	addr            string
	handler         http.Handler
	shutdownTimeout time.Duration
}

func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		addr:            addr,
		handler:         handler,
		shutdownTimeout: defaultShutdownTimeout,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests. A
// listen failure is returned immediately.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("Advice proxy listening", "addr", s.addr)
	err := httpServer.ListenAndServe()
	cancel()
	<-done
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("Advice proxy stopped")
	return nil
}
