package executor

import (
	"context"
	"errors"
	"io"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

type chunkRecorder struct {
	mu     sync.Mutex
	chunks []string
}

func (r *chunkRecorder) emit(chunk []byte) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chunks = append(r.chunks, string(chunk))
	return true
}

func (r *chunkRecorder) joined() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.chunks, "")
}

func TestStart(t *testing.T) {
	skipOnWindows(t)
	starter := NewOSStarter()

	t.Run("StreamsStdoutAndStderr", func(t *testing.T) {
		proc, stdout, stderr, err := starter.Start(context.Background(), []string{"sh", "-c", "printf 'a\\nb\\n'; printf oops >&2"}, t.TempDir(), nil)
		require.NoError(t, err)

		var out, errOut chunkRecorder
		readErr, waitErr := Stream(proc, stdout, stderr, 4, Handlers{Stdout: out.emit, Stderr: errOut.emit})

		require.NoError(t, readErr)
		require.NoError(t, waitErr)
		assert.Equal(t, "a\nb\n", out.joined())
		assert.Equal(t, "oops", errOut.joined())
	})

	t.Run("RunsInDir", func(t *testing.T) {
		dir := t.TempDir()
		proc, stdout, stderr, err := starter.Start(context.Background(), []string{"pwd"}, dir, nil)
		require.NoError(t, err)

		var out chunkRecorder
		_, waitErr := Stream(proc, stdout, stderr, 0, Handlers{Stdout: out.emit, Stderr: out.emit})

		require.NoError(t, waitErr)
		assert.Contains(t, out.joined(), strings.TrimPrefix(dir, "/private"))
	})

	t.Run("EmptyCommand", func(t *testing.T) {
		_, _, _, err := starter.Start(context.Background(), nil, "", nil)
		assert.ErrorIs(t, err, ErrEmptyCommand)
	})

	t.Run("MissingBinary", func(t *testing.T) {
		_, _, _, err := starter.Start(context.Background(), []string{"lookout-definitely-missing-binary"}, "", nil)

		var cmdErr *CommandError
		require.True(t, errors.As(err, &cmdErr))
		assert.Equal(t, "start", cmdErr.Stage)
	})

	t.Run("NonZeroExit", func(t *testing.T) {
		proc, stdout, stderr, err := starter.Start(context.Background(), []string{"sh", "-c", "exit 3"}, "", nil)
		require.NoError(t, err)

		_, waitErr := Stream(proc, stdout, stderr, 0, Handlers{Stdout: discard, Stderr: discard})

		assert.Equal(t, 3, ExitCode(waitErr))
	})

	t.Run("KillStopsLongRunningProcess", func(t *testing.T) {
		proc, stdout, stderr, err := starter.Start(context.Background(), []string{"sh", "-c", "echo ready; exec sleep 30"}, "", nil)
		require.NoError(t, err)

		ready := make(chan struct{})
		var once sync.Once
		done := make(chan error, 1)
		go func() {
			_, waitErr := Stream(proc, stdout, stderr, 0, Handlers{
				Stdout: func([]byte) bool { once.Do(func() { close(ready) }); return true },
				Stderr: discard,
			})
			done <- waitErr
		}()

		<-ready
		require.NoError(t, proc.Kill())

		select {
		case waitErr := <-done:
			assert.Error(t, waitErr)
		case <-time.After(5 * time.Second):
			t.Fatal("process was not killed")
		}
		assert.NoError(t, proc.Kill(), "killing an exited process is a no-op")
	})
}

func discard([]byte) bool { return true }

func TestPump(t *testing.T) {
	t.Run("ChunksAreCopies", func(t *testing.T) {
		var chunks [][]byte
		err := Pump(strings.NewReader("abcdefgh"), 3, func(c []byte) bool {
			chunks = append(chunks, c)
			return true
		})

		require.NoError(t, err)
		require.Len(t, chunks, 3)
		assert.Equal(t, "abc", string(chunks[0]))
		assert.Equal(t, "def", string(chunks[1]))
		assert.Equal(t, "gh", string(chunks[2]))
	})

	t.Run("StopDrainsRemainder", func(t *testing.T) {
		r := strings.NewReader("0123456789")
		calls := 0
		err := Pump(r, 2, func([]byte) bool {
			calls++
			return false
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Zero(t, r.Len())
	})

	t.Run("ReadError", func(t *testing.T) {
		boom := errors.New("boom")
		r := io.MultiReader(strings.NewReader("x"), &failingReader{err: boom})

		err := Pump(r, 8, discard)

		assert.ErrorIs(t, err, boom)
	})
}

type failingReader struct{ err error }

func (r *failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, -1, ExitCode(errors.New("plain")))
}
