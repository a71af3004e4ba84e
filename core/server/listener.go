package server

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"os"

	"golang.org/x/sys/unix"
)

var (
	// ErrInvalidAddress is returned when the bind address is not a literal IPv6 address.
	ErrInvalidAddress = errors.New("invalid bind address")
	// ErrSocket is returned when the listening socket cannot be created.
	ErrSocket = errors.New("unable to create socket")
	// ErrBind is returned when the socket cannot be bound to the address.
	ErrBind = errors.New("unable to bind socket")
	// ErrListen is returned when the bound socket refuses to listen.
	ErrListen = errors.New("unable to listen on socket")
)

// IsFatal reports whether a startup error must terminate the process.
// Listen failures are reported to the caller instead.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidAddress) ||
		errors.Is(err, ErrSocket) ||
		errors.Is(err, ErrBind)
}

// ResolveAddress parses the configured bind address.
// An empty string selects the IPv6 wildcard address.
func ResolveAddress(s string) (netip.Addr, error) {
	if s == "" {
		return netip.IPv6Unspecified(), nil
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if !addr.Is6() || addr.Zone() != "" {
		return netip.Addr{}, fmt.Errorf("%w: %q is not a literal IPv6 address", ErrInvalidAddress, s)
	}
	return addr, nil
}

// Listen creates an IPv6 stream socket, binds it to the configured address and
// port and starts listening with the configured backlog.
func Listen(cfg Config) (net.Listener, error) {
	addr, err := ResolveAddress(cfg.BindAddress)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Socket(unix.AF_INET6, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSocket, err)
	}
	unix.CloseOnExec(fd)

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("%w: set SO_REUSEADDR: %w", ErrSocket, err)
	}

	sa := &unix.SockaddrInet6{Port: int(cfg.Port), Addr: addr.As16()}
	if err := unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("%w: [%s]:%d: %w", ErrBind, addr, cfg.Port, err)
	}

	backlog := cfg.Backlog
	if backlog <= 0 {
		backlog = unix.SOMAXCONN
	}
	if err := unix.Listen(fd, backlog); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("%w: %w", ErrListen, err)
	}

	// net.FileListener duplicates the descriptor, so the file is closed either way.
	f := os.NewFile(uintptr(fd), fmt.Sprintf("tcp6:[%s]:%d", addr, cfg.Port))
	defer f.Close()

	ln, err := net.FileListener(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListen, err)
	}
	return ln, nil
}
