package ytdlp

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// limitedBuffer keeps the head of subprocess output for error reporting
type limitedBuffer struct {
	mu  sync.Mutex
	buf []byte
}

const outputKeep = 8192

func (b *limitedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if remain := outputKeep - len(b.buf); remain > 0 {
		if len(p) > remain {
			b.buf = append(b.buf, p[:remain]...)
		} else {
			b.buf = append(b.buf, p...)
		}
	}
	return len(p), nil
}

func (b *limitedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}

// Process is one delegated download subprocess. It is owned exclusively by
// the download job it was started for.
type Process struct {
	cmd      *exec.Cmd
	output   limitedBuffer
	killOnce sync.Once
}

// Wait blocks until the subprocess exits. A non-zero exit code is returned
// as an error carrying the captured tool output.
func (p *Process) Wait() error {
	if err := p.cmd.Wait(); err != nil {
		return fmt.Errorf("extraction tool failed: %w: %s", err, trimOutput(p.output.String()))
	}
	return nil
}

// Suspend pauses the subprocess without discarding its state. Unsupported on
// platforms without a process suspend primitive.
func (p *Process) Suspend() error {
	return suspendProcessGroup(p.cmd.Process.Pid)
}

// Resume continues a suspended subprocess
func (p *Process) Resume() error {
	return resumeProcessGroup(p.cmd.Process.Pid)
}

// Kill forcibly terminates the subprocess and all its descendants. Safe to
// call at any state and more than once.
func (p *Process) Kill() {
	p.killOnce.Do(func() {
		killProcessTree(p.cmd.Process.Pid)
	})
}

// execCommand adapts exec.Cmd to the stream's command interface
type execCommand struct {
	cmd *exec.Cmd
}

func newExecCommand(ctx context.Context, name string, args []string) *execCommand {
	cmd := exec.CommandContext(ctx, name, args...)
	setProcessGroup(cmd)
	return &execCommand{cmd: cmd}
}

func (c *execCommand) StdoutPipe() (io.ReadCloser, error) {
	return c.cmd.StdoutPipe()
}

func (c *execCommand) Start() error {
	return c.cmd.Start()
}

func (c *execCommand) Wait() error {
	return c.cmd.Wait()
}

func (c *execCommand) KillTree() {
	if c.cmd.Process != nil {
		killProcessTree(c.cmd.Process.Pid)
	}
}
