package static

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		method string
		path   string
	}{
		{"Full", "GET /about HTTP/1.1\r\nHost: x\r\n\r\n", "GET", "/about"},
		{"NoVersion", "GET /\r\n", "GET", "/"},
		{"NoTerminator", "POST /submit HTTP/1.1", "POST", "/submit"},
		{"BareNewline", "GET /about HTTP/1.0\nHost: x\n\n", "GET", "/about"},
		{"ExtraSpaces", "  GET    /   HTTP/1.1\r\n", "GET", "/"},
		{"MethodOnly", "GET\r\n/about\r\n", "GET", ""},
		{"Empty", "", "", ""},
		{"LeadingCRLF", "\r\nGET /about HTTP/1.1\r\n", "GET", "/about"},
		{"SeveralBlankLines", "\r\n\n\r\nGET / HTTP/1.1\r\n", "GET", "/"},
		{"OnlyBlankLines", "\r\n\r\n", "", ""},
		{"Garbage", "\x00\x01 zz", "\x00\x01", "zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseRequest([]byte(tt.input), 2048)
			require.NoError(t, err)
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.path, req.Path)
		})
	}
}

func TestParseRequest_LineLimit(t *testing.T) {
	path := "/" + strings.Repeat("a", 100)
	line := "GET " + path + " HTTP/1.1"

	t.Run("AtLimit", func(t *testing.T) {
		req, err := ParseRequest([]byte(line+"\r\n"), len(line))
		require.NoError(t, err)
		assert.Equal(t, path, req.Path)
	})

	t.Run("OverLimit", func(t *testing.T) {
		_, err := ParseRequest([]byte(line+"\r\n"), len(line)-1)
		assert.ErrorIs(t, err, ErrRequestLineTooLong)
	})

	t.Run("LeadingBlankLinesDoNotCount", func(t *testing.T) {
		req, err := ParseRequest([]byte("\r\n\r\n"+line+"\r\n"), len(line))
		require.NoError(t, err)
		assert.Equal(t, "GET", req.Method)
	})

	t.Run("HeadersDoNotCount", func(t *testing.T) {
		data := line + "\r\nX-Long: " + strings.Repeat("b", 500) + "\r\n\r\n"
		_, err := ParseRequest([]byte(data), len(line))
		assert.NoError(t, err)
	})
}
