package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/sinklog/core"
)

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sinklog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
handlers:
  - {type: console, level: debug, template: "[{level}] {msg}"}
  - {type: file, name: app, level: error, dir: `+dir+`}
`), 0644))

	var out bytes.Buffer
	log, err := build(path, &out)
	require.NoError(t, err)
	defer log.Close()

	assert.True(t, execute(log, &out, "  "))
	assert.True(t, execute(log, &out, "notice hello world"))
	assert.Equal(t, "[NOTICE] hello world\n", out.String())

	out.Reset()
	assert.True(t, execute(log, &out, "shout nope"))
	assert.Contains(t, out.String(), `unknown command "shout"`)

	out.Reset()
	assert.True(t, execute(log, &out, "threshold app debug"))
	h, ok := log.Handler("app")
	require.True(t, ok)
	assert.Equal(t, core.DebugLevel, h.Level())

	assert.True(t, execute(log, &out, "error written to file"))
	assert.True(t, execute(log, &out, "rotate app"))
	assert.FileExists(t, filepath.Join(dir, "app.log.1"))

	out.Reset()
	assert.True(t, execute(log, &out, "rotate console"))
	assert.Contains(t, out.String(), "does not keep files")

	assert.True(t, execute(log, &out, "reset app"))
	assert.NoFileExists(t, filepath.Join(dir, "app.log.1"))

	out.Reset()
	assert.True(t, execute(log, &out, "handlers"))
	assert.Contains(t, out.String(), "console")
	assert.Contains(t, out.String(), "app")

	assert.False(t, execute(log, &out, "quit"))
}

func TestBuild_DefaultConsole(t *testing.T) {
	var out bytes.Buffer
	log, err := build("", &out)
	require.NoError(t, err)

	log.Debug("visible")
	assert.Contains(t, out.String(), "[DEBUG] GENERAL visible")
}
