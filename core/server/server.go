package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// ErrServerClosed is returned by Serve after Shutdown has been called.
var ErrServerClosed = errors.New("server closed")

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// Handler serves one accepted connection. The handler owns the connection
// and must close it before returning.
type Handler interface {
	Handle(conn net.Conn)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(conn net.Conn)

// Handle calls f(conn).
func (f HandlerFunc) Handle(conn net.Conn) {
	f(conn)
}

// Server accepts connections and dispatches each one to the handler on a
// bounded pool of goroutines.
type Server struct {
	handler Handler
	logger  *zap.Logger
	pool    *pool.Pool

	mu      sync.Mutex
	ln      net.Listener
	conns   map[*trackedConn]struct{}
	serving bool
	closing bool
	done    chan struct{}
}

// New creates a server running at most cfg.MaxConnections handlers at once.
func New(cfg Config, handler Handler, logger *zap.Logger) *Server {
	limit := cfg.MaxConnections
	if limit < 1 {
		limit = 1
	}

	return &Server{
		handler: handler,
		logger:  logger,
		pool:    pool.New().WithMaxGoroutines(limit),
		conns:   make(map[*trackedConn]struct{}),
		done:    make(chan struct{}),
	}
}

// Serve accepts connections on ln until Shutdown is called. Accept errors are
// logged and retried. When the pool is saturated, accepting pauses until a
// handler finishes. Serve returns ErrServerClosed once every handler has
// returned.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.serving {
		s.mu.Unlock()
		return errors.New("server is already serving")
	}
	s.serving = true
	if s.closing {
		s.mu.Unlock()
		_ = ln.Close()
		close(s.done)
		return ErrServerClosed
	}
	s.ln = ln
	s.mu.Unlock()

	defer close(s.done)

	s.logger.Info("Accepting connections", zap.String("addr", ln.Addr().String()))

	var delay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isClosing() {
				s.pool.Wait()
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				s.pool.Wait()
				return fmt.Errorf("listener closed: %w", err)
			}

			if delay == 0 {
				delay = minAcceptDelay
			} else {
				delay *= 2
			}
			if delay > maxAcceptDelay {
				delay = maxAcceptDelay
			}
			s.logger.Warn("Accept failed", zap.Error(err), zap.Duration("retry_in", delay))
			time.Sleep(delay)
			continue
		}
		delay = 0

		tc := s.track(conn)
		s.pool.Go(func() {
			s.serveConn(tc)
		})
	}
}

// Shutdown stops accepting new connections and waits for in-flight handlers.
// If ctx expires first, the deadlines of the remaining connections are
// expired so blocked handlers return and close them, and ctx.Err() is
// returned after those handlers have finished.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing = true
	ln := s.ln
	serving := s.serving
	s.mu.Unlock()

	if !serving {
		return nil
	}
	if ln != nil {
		if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.logger.Warn("Closing listener failed", zap.Error(err))
		}
	}

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		n := s.cancelConns()
		s.logger.Warn("Shutdown grace period exceeded, cancelling connections", zap.Int("connections", n))
		<-s.done
		return ctx.Err()
	}
}

// ActiveConnections returns the number of accepted connections not yet released.
func (s *Server) ActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) serveConn(conn *trackedConn) {
	defer s.untrack(conn)

	var pc panics.Catcher
	pc.Try(func() {
		s.handler.Handle(conn)
	})
	if r := pc.Recovered(); r != nil {
		s.logger.Error("Connection handler panicked",
			zap.String("remote", conn.RemoteAddr().String()),
			zap.Error(r.AsError()),
			zap.ByteString("stack", r.Stack),
		)
	}
}

func (s *Server) isClosing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closing
}

func (s *Server) track(conn net.Conn) *trackedConn {
	tc := &trackedConn{Conn: conn}
	s.mu.Lock()
	s.conns[tc] = struct{}{}
	s.mu.Unlock()
	return tc
}

func (s *Server) untrack(conn *trackedConn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

func (s *Server) cancelConns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		conn.cancel()
	}
	return len(s.conns)
}
