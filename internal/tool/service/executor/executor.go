package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the read buffer used by Pump when none is configured.
const DefaultChunkSize = 32 * 1024

// Process is a started command that can be waited on or killed.
type Process interface {
	Wait() error
	Kill() error
}

// OSProcess implements Process for real OS processes.
type OSProcess struct {
	cmd *exec.Cmd
}

func (p *OSProcess) Wait() error {
	return p.cmd.Wait()
}

// Kill sends SIGKILL (TerminateProcess on Windows).
func (p *OSProcess) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	err := p.cmd.Process.Kill()
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

// OSStarter launches commands with os/exec and exposes their output as pipes.
type OSStarter struct{}

// NewOSStarter creates a new OSStarter.
func NewOSStarter() *OSStarter {
	return &OSStarter{}
}

// Start launches command in dir with stdin closed. A nil env inherits the parent environment.
// The caller must drain both readers before calling Wait on the returned Process.
func (s *OSStarter) Start(ctx context.Context, command []string, dir string, env []string) (Process, io.ReadCloser, io.ReadCloser, error) {
	if len(command) == 0 {
		return nil, nil, nil, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = nil

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, nil, nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}

	return &OSProcess{cmd: cmd}, stdout, stderr, nil
}

// Pump reads r in chunks of at most size bytes and passes each to emit as a fresh slice.
// Once emit returns false the rest of r is discarded so the writer never blocks on a full pipe.
// Reaching EOF is not an error.
func Pump(r io.Reader, size int, emit func(chunk []byte) bool) error {
	if size <= 0 {
		size = DefaultChunkSize
	}
	buf := make([]byte, size)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if !emit(chunk) {
				_, err := io.Copy(io.Discard, r)
				return err
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Handlers receive output chunks from Stream. Returning false stops delivery for that stream.
type Handlers struct {
	Stdout func(chunk []byte) bool
	Stderr func(chunk []byte) bool
}

// Stream pumps stdout and stderr concurrently until both reach EOF, then waits for the process.
// readErr reports a pipe failure; waitErr is the process exit error.
func Stream(proc Process, stdout, stderr io.Reader, chunkSize int, h Handlers) (readErr, waitErr error) {
	var g errgroup.Group
	g.Go(func() error {
		return Pump(stdout, chunkSize, h.Stdout)
	})
	g.Go(func() error {
		return Pump(stderr, chunkSize, h.Stderr)
	})
	readErr = g.Wait()
	waitErr = proc.Wait()
	return readErr, waitErr
}

// ExitCode extracts the exit code from an error returned by Wait.
// Returns 0 if err is nil, the exit code if err carries one, or -1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	type exitCoder interface {
		ExitCode() int
	}
	if ec, ok := err.(exitCoder); ok {
		return ec.ExitCode()
	}
	return -1
}
