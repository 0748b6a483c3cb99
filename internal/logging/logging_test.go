package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer

	quiet := New(&buf, false)
	assert.Equal(t, log.InfoLevel, quiet.GetLevel())
	quiet.Debug("skipping source file", "path", "a.go")
	assert.Empty(t, buf.String(), "debug output is hidden unless verbose")

	verbose := New(&buf, true)
	assert.Equal(t, log.DebugLevel, verbose.GetLevel())
	verbose.Debug("skipping source file", "path", "a.go")
	out := buf.String()
	assert.Contains(t, out, Prefix)
	assert.Contains(t, out, "skipping source file")
	assert.Contains(t, out, "a.go")
}

func TestNew_NilWriter(t *testing.T) {
	assert.NotNil(t, New(nil, false))
}
