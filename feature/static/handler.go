package static

import (
	"bytes"
	"net"
	"net/http"
	"time"

	"tinyhttpd/core/logger"
	"tinyhttpd/core/server"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options tune how a connection is read and answered.
type Options struct {
	// MaxRequestLine is the longest accepted request line in bytes.
	MaxRequestLine int
	// ReadTimeout bounds the wait for the request. Zero means no deadline.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing the response. Zero means no deadline.
	WriteTimeout time.Duration
}

// OptionsFromConfig derives handler options from the server configuration.
func OptionsFromConfig(cfg server.Config) Options {
	return Options{
		MaxRequestLine: cfg.MaxRequestLine,
		ReadTimeout:    cfg.ReadTimeout(),
		WriteTimeout:   cfg.WriteTimeout(),
	}
}

// Handler answers one request per connection with a page from the loader.
type Handler struct {
	loader *Loader
	opts   Options
	logger *zap.Logger
}

// NewHandler creates a connection handler.
func NewHandler(loader *Loader, opts Options, logger *zap.Logger) *Handler {
	if opts.MaxRequestLine <= 0 || opts.MaxRequestLine > server.RequestBufferSize {
		opts.MaxRequestLine = server.RequestBufferSize
	}
	return &Handler{
		loader: loader,
		opts:   opts,
		logger: logger,
	}
}

// Handle reads a single request from conn, writes the response and closes
// conn. Errors are logged and never returned.
func (h *Handler) Handle(conn net.Conn) {
	defer conn.Close()

	log := logger.WithConn(h.logger, uuid.NewString(), conn.RemoteAddr())

	if h.opts.ReadTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(h.opts.ReadTimeout)); err != nil {
			log.Warn("Failed to set read deadline", zap.Error(err))
			return
		}
	}

	buf := make([]byte, server.RequestBufferSize)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		log.Debug("Connection closed before a request was read", zap.Error(err))
		return
	}
	data := buf[:n]

	if h.opts.WriteTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(h.opts.WriteTimeout)); err != nil {
			log.Warn("Failed to set write deadline", zap.Error(err))
			return
		}
	}

	req, err := ParseRequest(data, h.opts.MaxRequestLine)
	if err == nil && n == len(buf) && bytes.IndexByte(bytes.TrimLeft(data, "\r\n"), '\n') < 0 {
		err = ErrRequestLineTooLong
	}
	if err != nil {
		log.Warn("Rejecting request", zap.Error(err), zap.Int("bytes", n))
		if err := WriteBadRequest(conn); err != nil {
			log.Debug("Failed to send bad request page", zap.Error(err))
		}
		return
	}

	log.Debug("Request", zap.String("method", req.Method), zap.String("path", req.Path))

	if req.Method != http.MethodGet {
		return
	}

	route := RouteFor(req.Path)
	body, err := h.loader.Load(route.Filename)
	if err != nil {
		// A missing 404 page also ends up here and is answered with 500.
		log.Error("Failed to load page",
			zap.String("file", route.Filename),
			zap.Int("intended_status", route.Status),
			zap.Error(err),
		)
		if err := WriteInternalError(conn); err != nil {
			log.Debug("Failed to send error page", zap.Error(err))
		}
		return
	}

	if err := WriteResponse(conn, route.Status, body); err != nil {
		log.Warn("Failed to send response", zap.Error(err))
		return
	}
	log.Debug("Response sent", zap.Int("status", route.Status), zap.Int("bytes", len(body)))
}
