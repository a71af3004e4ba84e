package server

import (
	"net"
	"sync"
	"time"
)

// expired is a deadline that has always already passed.
var expired = time.Unix(1, 0)

// trackedConn is the connection handed to a Handler. Once cancelled, every
// deadline is pinned to the past so pending and future I/O fails, while
// closing stays the handler's job.
type trackedConn struct {
	net.Conn

	mu        sync.Mutex
	cancelled bool
}

func (c *trackedConn) cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelled = true
	_ = c.Conn.SetDeadline(expired)
}

func (c *trackedConn) SetDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelled {
		t = expired
	}
	return c.Conn.SetDeadline(t)
}

func (c *trackedConn) SetReadDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelled {
		t = expired
	}
	return c.Conn.SetReadDeadline(t)
}

func (c *trackedConn) SetWriteDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelled {
		t = expired
	}
	return c.Conn.SetWriteDeadline(t)
}
