package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/Cyclone1070/lookout/internal/server"
	"github.com/Cyclone1070/lookout/internal/session"
	"github.com/Cyclone1070/lookout/internal/tool/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBatch(t *testing.T) {
	batch := session.Batch{
		Query:   search.Query{Mode: search.ModeContentLiteral, Text: "foo"},
		Matches: []search.Match{{Path: "a.go", Line: 3, Col: 1}, {Path: "b.go"}},
		Outcome: session.OutcomeCompleted,
		Elapsed: 5 * time.Millisecond,
	}

	t.Run("Plain", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeBatch(&out, batch, "plain"))
		assert.Equal(t, "a.go:3:2\nb.go\n", out.String())
	})

	t.Run("JSON", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeBatch(&out, batch, "json"))

		var got server.ListOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, "foo", got.Search)
		assert.Equal(t, batch.Matches, got.Matches)
		assert.Equal(t, int64(5), got.ElapsedMs)
	})
}

func TestQuerySink(t *testing.T) {
	var diag bytes.Buffer
	sink := newQuerySink(&diag)

	sink.Results(session.Batch{SessionID: "first"})
	sink.Results(session.Batch{SessionID: "second"}) // dropped, never blocks
	sink.Diagnostic(session.Diagnostic{Source: "stderr", Message: "permission denied"})

	assert.Equal(t, "first", (<-sink.batches).SessionID)
	assert.Equal(t, "stderr: permission denied\n", diag.String())
}

func TestNewLogger(t *testing.T) {
	t.Run("Off", func(t *testing.T) {
		logger, closeLog, err := newLogger("off")
		require.NoError(t, err)
		assert.Nil(t, closeLog)
		assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
	})

	t.Run("WritesToStateDir", func(t *testing.T) {
		state := t.TempDir()
		t.Setenv("XDG_STATE_HOME", state)

		logger, closeLog, err := newLogger("debug")
		require.NoError(t, err)
		logger.Debug("hello", "k", "v")
		require.NoError(t, closeLog())

		data, err := os.ReadFile(filepath.Join(state, "lookout", "lookout.log"))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"hello"`)
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		_, _, err := newLogger("loud")
		assert.Error(t, err)
	})
}

// fakeRipgrep writes a script that ignores its arguments and prints rg-style JSON.
func fakeRipgrep(t *testing.T, dir string) string {
	t.Helper()
	script := filepath.Join(dir, "fake-rg")
	body := `#!/bin/sh
echo '{"type":"begin","data":{"path":{"text":"a.go"}}}'
echo '{"type":"match","data":{"path":{"text":"a.go"},"line_number":3,"submatches":[{"start":1}]}}'
echo '{"type":"match","data":{"path":{"text":"b.go"},"line_number":7,"submatches":[{"start":0}]}}'
exit 0
`
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	return script
}

func TestQueryCommand_EndToEnd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	cfg := `{"search": {"grep_binary": "` + fakeRipgrep(t, dir) + `"}}`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run([]string{"lookout", "--config", cfgPath, "--root", dir, "--log-level", "off", "query", "--format", "plain", "needle"})

	require.NoError(t, err)
	assert.Equal(t, "a.go:3:2\nb.go:7:1\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestQueryCommand_Errors(t *testing.T) {
	t.Run("MissingText", func(t *testing.T) {
		err := newApp().Run([]string{"lookout", "query"})
		assert.ErrorIs(t, err, errQueryRequired)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		err := newApp().Run([]string{"lookout", "query", "--format", "xml", "x"})
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "xml"))
	})

	t.Run("BadMode", func(t *testing.T) {
		err := newApp().Run([]string{"lookout", "--mode", "fuzzy", "--log-level", "off", "--root", t.TempDir(), "query", "x"})
		var modeErr *search.UnknownModeError
		assert.ErrorAs(t, err, &modeErr)
	})
}
