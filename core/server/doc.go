// Package server owns the listening socket and the accept loop.
//
// It creates the IPv6 socket by hand so the bind address, port and backlog
// are applied exactly as configured, and it hands every accepted connection
// to a Handler running on a bounded, supervised pool of goroutines.
//
// # Startup errors
//
// Listen classifies failures with sentinel errors. ErrInvalidAddress,
// ErrSocket and ErrBind are fatal (see IsFatal); ErrListen is reported to the
// caller, which decides how to abort startup.
//
// # Concurrency
//
// At most Config.MaxConnections handlers run at once. When the pool is full
// the accept loop pauses and pending connections wait in the kernel backlog.
// Accept errors are logged and retried with a growing delay.
//
// # Shutdown
//
// Shutdown closes the listener and waits for running handlers. When its
// context expires, the deadlines of the remaining connections are expired so
// blocked handlers return; handlers still close their own connection, so
// every connection is closed exactly once.
//
// # Usage
//
//	ln, err := server.Listen(cfg.Server)
//	if err != nil {
//	    return err
//	}
//	srv := server.New(cfg.Server, handler, logger)
//	go srv.Serve(ln)
//	defer srv.Shutdown(ctx)
package server
