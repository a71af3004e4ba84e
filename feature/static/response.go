package static

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/valyala/bytebufferpool"
)

const internalErrorResponse = "HTTP/1.1 500 Internal Server Error\r\n" +
	"Content-Type: text/html\r\n" +
	"Connection: close\r\n" +
	"\r\n" +
	"<html><body><h1>500 Internal Server Error</h1></body></html>"

const badRequestResponse = "HTTP/1.1 400 Bad Request\r\n" +
	"Content-Type: text/html\r\n" +
	"Connection: close\r\n" +
	"\r\n" +
	"<html><body><h1>400 Bad Request</h1></body></html>"

// WriteResponse writes the status line and headers, then the body, as two
// separate writes. Content-Length always equals len(body).
func WriteResponse(w io.Writer, status int, body []byte) error {
	text := http.StatusText(status)
	if text == "" {
		return fmt.Errorf("unknown status code %d", status)
	}

	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	bb.WriteString("HTTP/1.1 ")
	bb.B = strconv.AppendInt(bb.B, int64(status), 10)
	bb.WriteString(" ")
	bb.WriteString(text)
	bb.WriteString("\r\nContent-Type: text/html\r\nContent-Length: ")
	bb.B = strconv.AppendInt(bb.B, int64(len(body)), 10)
	bb.WriteString("\r\nConnection: close\r\n\r\n")

	if _, err := w.Write(bb.B); err != nil {
		return fmt.Errorf("failed to write response header: %w", err)
	}
	if len(body) == 0 {
		return nil
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write response body: %w", err)
	}
	return nil
}

// WriteInternalError writes the fixed 500 page. It carries no Content-Length.
func WriteInternalError(w io.Writer) error {
	if _, err := io.WriteString(w, internalErrorResponse); err != nil {
		return fmt.Errorf("failed to write error response: %w", err)
	}
	return nil
}

// WriteBadRequest writes the fixed 400 page. It carries no Content-Length.
func WriteBadRequest(w io.Writer) error {
	if _, err := io.WriteString(w, badRequestResponse); err != nil {
		return fmt.Errorf("failed to write error response: %w", err)
	}
	return nil
}
