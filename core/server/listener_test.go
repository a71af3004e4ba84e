package server_test

import (
	"fmt"
	"io"
	"net"
	"net/netip"
	"testing"

	"tinyhttpd/core/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireIPv6 skips the test when the host has no IPv6 loopback.
func requireIPv6(t *testing.T) {
	t.Helper()
	ln, err := net.Listen("tcp6", "[::1]:0")
	if err != nil {
		t.Skipf("IPv6 loopback unavailable: %v", err)
	}
	ln.Close()
}

func TestResolveAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    netip.Addr
		wantErr bool
	}{
		{"Wildcard", "", netip.IPv6Unspecified(), false},
		{"Loopback", "::1", netip.IPv6Loopback(), false},
		{"Mapped", "::ffff:127.0.0.1", netip.MustParseAddr("::ffff:127.0.0.1"), false},
		{"IPv4", "127.0.0.1", netip.Addr{}, true},
		{"Garbage", "not-an-address", netip.Addr{}, true},
		{"Zone", "fe80::1%eth0", netip.Addr{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := server.ResolveAddress(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, server.ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsFatal(t *testing.T) {
	wrap := func(err error) error { return fmt.Errorf("%w: cause", err) }

	assert.True(t, server.IsFatal(wrap(server.ErrInvalidAddress)))
	assert.True(t, server.IsFatal(wrap(server.ErrSocket)))
	assert.True(t, server.IsFatal(wrap(server.ErrBind)))
	assert.False(t, server.IsFatal(wrap(server.ErrListen)))
	assert.False(t, server.IsFatal(nil))
}

func TestListen_InvalidAddress(t *testing.T) {
	cfg := validConfig()
	cfg.BindAddress = "192.168.0.1"

	ln, err := server.Listen(cfg)
	assert.Nil(t, ln)
	assert.ErrorIs(t, err, server.ErrInvalidAddress)
	assert.True(t, server.IsFatal(err))
}

func TestListen_Loopback(t *testing.T) {
	requireIPv6(t)

	cfg := validConfig()
	cfg.Port = 0
	cfg.BindAddress = "::1"
	cfg.Backlog = 16

	ln, err := server.Listen(cfg)
	require.NoError(t, err)
	defer ln.Close()

	addr, ok := ln.Addr().(*net.TCPAddr)
	require.True(t, ok)
	assert.True(t, addr.IP.Equal(net.IPv6loopback))
	assert.NotZero(t, addr.Port)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		_, _ = conn.Write([]byte("hello"))
		conn.Close()
	}()

	conn, err := net.Dial("tcp6", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	data, err := io.ReadAll(conn)
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestListen_BindConflict(t *testing.T) {
	requireIPv6(t)

	cfg := validConfig()
	cfg.Port = 0
	cfg.BindAddress = "::1"

	first, err := server.Listen(cfg)
	require.NoError(t, err)
	defer first.Close()

	cfg.Port = uint16(first.Addr().(*net.TCPAddr).Port)
	second, err := server.Listen(cfg)
	assert.Nil(t, second)
	assert.ErrorIs(t, err, server.ErrBind)
	assert.True(t, server.IsFatal(err))
}
