// Package ytdlp invokes the external yt-dlp extraction tool as a subprocess:
// newline-delimited JSON metadata streaming for channel enumeration, a
// single-video probe, and delegated downloads with process lifecycle control
// (pause, resume, process-group kill).
package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tiktoksage/tiksage/internal/errs"
)

// DefaultBinary is the extraction tool executable resolved on PATH
const DefaultBinary = "yt-dlp"

// DefaultSocketTimeout bounds each network read inside the tool
const DefaultSocketTimeout = 30 * time.Second

// Output template and format selectors. The selectors are exported because
// history records which one a download used.
const (
	outputTemplate = "%(title)s.%(ext)s"
	FormatVideo    = "best[ext=mp4]"
	FormatAudio    = "bestaudio[ext=m4a]"
)

// Options configures one tool invocation. The zero value requests default
// identity, non-flat extraction, no item limit, and no proxy.
type Options struct {
	UserAgent     string
	Referer       string
	FlatExtract   bool // metadata-only flat extraction (--flat-playlist)
	PagedExtract  bool // lazy pagination (--lazy-playlist)
	MaxItems      int  // 0 = unbounded
	SocketTimeout time.Duration
	Proxy         string
	AudioOnly     bool
	OutputStem    string // file name without extension; empty uses the tool's title template
}

// Info is the decoded metadata record the tool emits, one JSON object per
// line in streaming mode. Absent fields decode to zero values.
type Info struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Uploader     string  `json:"uploader"`
	Description  string  `json:"description"`
	Duration     float64 `json:"duration"`
	Thumbnail    string  `json:"thumbnail"`
	WebpageURL   string  `json:"webpage_url"`
	URL          string  `json:"url"`
	ViewCount    int64   `json:"view_count"`
	LikeCount    int64   `json:"like_count"`
	CommentCount int64   `json:"comment_count"`
	RepostCount  int64   `json:"repost_count"`
	UploadDate   string  `json:"upload_date"`
}

// Runner invokes the extraction tool. One Runner is shared by the resolver,
// the channel enumerator and the download engine.
type Runner struct {
	binary string
}

// NewRunner creates a runner for the default binary
func NewRunner() *Runner {
	return &Runner{binary: DefaultBinary}
}

// Available reports whether the extraction tool is installed on PATH
func (r *Runner) Available() bool {
	_, err := exec.LookPath(r.binary)
	return err == nil
}

// Probe fetches metadata for a single URL as one JSON document. A missing
// tool yields errs.ErrToolUnavailable; a run that produces no usable output
// yields a soft error the caller may treat as a fallback trigger.
func (r *Runner) Probe(ctx context.Context, url string, opts Options) (*Info, error) {
	if !r.Available() {
		return nil, fmt.Errorf("%s: %w", r.binary, errs.ErrToolUnavailable)
	}

	args := []string{"-J", "--no-warnings", "--no-playlist"}
	args = append(args, r.commonArgs(opts)...)
	args = append(args, url)

	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logrus.Debugf("Probing metadata: %s %s", r.binary, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s probe failed: %w: %s", r.binary, err, trimOutput(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%s returned empty output for %s", r.binary, url)
	}

	var info Info
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("decode probe output: %w", errs.ErrParse)
	}
	return &info, nil
}

// StartDownload launches a delegated download: the tool fetches the media
// itself and the process exit code is the outcome. The returned Process
// exposes suspend/resume/kill for the engine's pause and cancel paths.
func (r *Runner) StartDownload(ctx context.Context, url, dir string, opts Options) (*Process, error) {
	if !r.Available() {
		return nil, fmt.Errorf("%s: %w", r.binary, errs.ErrToolUnavailable)
	}

	args := append(r.downloadArgs(dir, opts), url)

	cmd := exec.CommandContext(ctx, r.binary, args...)
	setProcessGroup(cmd)

	proc := &Process{cmd: cmd}
	cmd.Stdout = &proc.output
	cmd.Stderr = &proc.output

	logrus.Infof("Starting delegated download: %s", url)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", r.binary, err)
	}
	return proc, nil
}

// downloadArgs renders the flags for a delegated download. A caller-supplied
// OutputStem pins the file name, so the final path is known without guessing
// at the tool's own title sanitization.
func (r *Runner) downloadArgs(dir string, opts Options) []string {
	format := FormatVideo
	if opts.AudioOnly {
		format = FormatAudio
	}

	template := outputTemplate
	if opts.OutputStem != "" {
		template = opts.OutputStem + ".%(ext)s"
	}

	args := []string{
		"--no-warnings",
		"--no-playlist",
		"--newline",
		"-f", format,
		"-o", filepath.Join(dir, template),
	}
	return append(args, r.commonArgs(opts)...)
}

// commonArgs renders the option set into tool flags shared by all modes
func (r *Runner) commonArgs(opts Options) []string {
	timeout := opts.SocketTimeout
	if timeout <= 0 {
		timeout = DefaultSocketTimeout
	}
	args := []string{"--socket-timeout", strconv.Itoa(int(timeout.Seconds()))}

	if opts.UserAgent != "" {
		args = append(args, "--user-agent", opts.UserAgent)
	}
	if opts.Referer != "" {
		args = append(args, "--add-headers", "Referer:"+opts.Referer)
	}
	if opts.Proxy != "" {
		args = append(args, "--proxy", opts.Proxy)
	}
	return args
}

// trimOutput caps captured subprocess output for error messages
func trimOutput(s string) string {
	s = strings.TrimSpace(s)
	const maxKeep = 512
	if len(s) > maxKeep {
		return s[:maxKeep]
	}
	return s
}
