package ytdlp

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tiktoksage/tiksage/internal/errs"
)

// Scanner buffer sizing for metadata lines; flat-extract records for long
// videos can exceed the default token size.
const (
	scanInitialBuffer = 64 * 1024
	scanMaxToken      = 1024 * 1024
)

// Stream is one running metadata extraction: newline-delimited JSON records
// on Lines, with subprocess lifecycle owned by the stream.
type Stream struct {
	cmd      command
	lines    chan []byte
	killOnce sync.Once
	waitOnce sync.Once
	waitErr  error
}

// command is the slice of exec.Cmd the stream drives, separated for tests
type command interface {
	Wait() error
	KillTree()
}

// Lines returns the channel of raw JSON records. It is closed when the
// subprocess closes its stdout.
func (st *Stream) Lines() <-chan []byte {
	return st.lines
}

// Kill forcibly terminates the subprocess and all its descendants. Safe to
// call at any time and more than once.
func (st *Stream) Kill() {
	st.killOnce.Do(func() {
		st.cmd.KillTree()
	})
}

// Wait blocks until the subprocess exits, bounded by timeout. On timeout the
// process tree is killed before returning. Wait may be called after Kill; a
// kill-induced exit error is still reported and callers that killed
// deliberately should ignore it.
func (st *Stream) Wait(timeout time.Duration) error {
	st.waitOnce.Do(func() {
		done := make(chan error, 1)
		go func() { done <- st.cmd.Wait() }()

		select {
		case err := <-done:
			st.waitErr = err
		case <-time.After(timeout):
			logrus.Warnf("Extraction tool did not exit within %s, killing", timeout)
			st.Kill()
			if exitErr := <-done; exitErr != nil {
				st.waitErr = fmt.Errorf("extraction tool timed out after %s: %w", timeout, exitErr)
			} else {
				st.waitErr = fmt.Errorf("extraction tool timed out after %s", timeout)
			}
		}
	})
	return st.waitErr
}

// StreamMetadata launches the tool in streaming metadata mode for url:
// one JSON record per stdout line. Malformed lines are the consumer's
// concern; the stream delivers raw bytes.
func (r *Runner) StreamMetadata(ctx context.Context, url string, opts Options) (*Stream, error) {
	if !r.Available() {
		return nil, fmt.Errorf("%s: %w", r.binary, errs.ErrToolUnavailable)
	}

	args := []string{"--dump-json", "--no-warnings", "--ignore-errors"}
	if opts.FlatExtract {
		args = append(args, "--flat-playlist")
	}
	if opts.PagedExtract {
		args = append(args, "--lazy-playlist")
	}
	if opts.MaxItems > 0 {
		args = append(args, "--playlist-end", fmt.Sprint(opts.MaxItems))
	}
	args = append(args, r.commonArgs(opts)...)
	args = append(args, url)

	cmd := newExecCommand(ctx, r.binary, args)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("setup stdout pipe: %w", err)
	}

	logrus.Debugf("Streaming metadata: %s %s", r.binary, strings.Join(args, " "))
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", r.binary, err)
	}

	lines := make(chan []byte)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, scanInitialBuffer), scanMaxToken)
		for scanner.Scan() {
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	return &Stream{cmd: cmd, lines: lines}, nil
}
