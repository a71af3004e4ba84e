package server

import (
	"fmt"
	"time"
)

// RequestBufferSize is the number of bytes read from a connection for a single request.
const RequestBufferSize = 4096

// Config holds configuration for the page server.
type Config struct {
	// Port is the TCP port where the server will listen. 0 picks a free port.
	Port uint16 `mapstructure:"port" default:"8080"`
	// Backlog is the pending connection queue length. 0 or less uses the system maximum.
	Backlog int `mapstructure:"backlog" default:"0"`
	// BindAddress is a literal IPv6 address. Empty binds the wildcard address.
	BindAddress string `mapstructure:"bind_address" default:""`
	// DocRoot is the directory holding the served pages.
	DocRoot string `mapstructure:"doc_root" default:"."`
	// MaxConnections caps the number of connections handled at the same time.
	MaxConnections int `mapstructure:"max_connections" default:"1024"`
	// MaxRequestLine is the longest request line accepted, in bytes.
	MaxRequestLine int `mapstructure:"max_request_line" default:"2048"`
	// ReadTimeoutSeconds bounds the wait for a request. 0 disables it.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"30"`
	// WriteTimeoutSeconds bounds the time spent writing a response. 0 disables it.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"30"`
	// ShutdownTimeoutSeconds is how long shutdown waits for in-flight connections.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"10"`
}

// Validate checks that the configured limits are usable.
func (c Config) Validate() error {
	if c.MaxConnections < 1 {
		return fmt.Errorf("max_connections must be at least 1, got %d", c.MaxConnections)
	}
	if c.MaxRequestLine < 1 || c.MaxRequestLine > RequestBufferSize {
		return fmt.Errorf("max_request_line must be between 1 and %d, got %d", RequestBufferSize, c.MaxRequestLine)
	}
	if c.ReadTimeoutSeconds < 0 || c.WriteTimeoutSeconds < 0 || c.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if c.DocRoot == "" {
		return fmt.Errorf("doc_root must not be empty")
	}
	return nil
}

// ReadTimeout returns the per-connection read deadline duration.
func (c Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the per-connection write deadline duration.
func (c Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns the graceful shutdown grace period.
func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
