package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutesCmd(t *testing.T) {
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs([]string{"routes"})
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetArgs(nil)
	})

	require.NoError(t, RootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"PATH", "FILE", "STATUS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"/", "index.html", "200"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"/about", "about.html", "200"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"*", "404.html", "404"}, strings.Fields(lines[3]))
}
