// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production).
//
// # Connection Awareness
//
// Every accepted connection gets its own id. The WithConn helper attaches the
// id and the peer address to the log entry, so all lines written while
// serving one connection can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// While serving a connection:
//	l := logger.WithConn(log, id, conn.RemoteAddr())
//	l.Error("Failed to load page", zap.Error(err))
package logger
