package static

import (
	"bytes"
	"errors"
	"strings"
)

// ErrRequestLineTooLong is returned when the request line exceeds the configured limit.
var ErrRequestLineTooLong = errors.New("request line too long")

// Request is the part of an HTTP request the server looks at.
type Request struct {
	Method string
	Path   string
}

// ParseRequest extracts the method and path from the first line of data.
// Empty lines before the request line are skipped. Missing tokens are left
// empty; everything after the path is ignored.
func ParseRequest(data []byte, maxLine int) (Request, error) {
	data = bytes.TrimLeft(data, "\r\n")
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	line = bytes.TrimSuffix(line, []byte{'\r'})

	if len(line) > maxLine {
		return Request{}, ErrRequestLineTooLong
	}

	var req Request
	fields := strings.Fields(string(line))
	if len(fields) > 0 {
		req.Method = fields[0]
	}
	if len(fields) > 1 {
		req.Path = fields[1]
	}
	return req, nil
}
